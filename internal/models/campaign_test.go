package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestIsValidCampaignTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{CampaignStatusUpcoming, CampaignStatusRunning, true},
		{CampaignStatusRunning, CampaignStatusCompleted, true},

		// Cancellation paths
		{CampaignStatusUpcoming, CampaignStatusCancelled, true},
		{CampaignStatusRunning, CampaignStatusCancelled, true},

		// Terminal states
		{CampaignStatusCompleted, CampaignStatusRunning, false},
		{CampaignStatusCompleted, CampaignStatusCancelled, false},
		{CampaignStatusCancelled, CampaignStatusRunning, false},
		{CampaignStatusCancelled, CampaignStatusUpcoming, false},

		// Skips
		{CampaignStatusUpcoming, CampaignStatusCompleted, false},
		{"nonexistent", CampaignStatusRunning, false},
		{CampaignStatusUpcoming, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			if got := IsValidCampaignTransition(tt.from, tt.to); got != tt.expected {
				t.Errorf("IsValidCampaignTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestCampaignStatusFor(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		today    time.Time
		expected string
	}{
		{"before start", time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), CampaignStatusUpcoming},
		{"on start", start, CampaignStatusRunning},
		{"mid period", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), CampaignStatusRunning},
		{"on end", end, CampaignStatusRunning},
		{"after end", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), CampaignStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CampaignStatusFor(start, end, tt.today); got != tt.expected {
				t.Errorf("CampaignStatusFor(..., %v) = %q, want %q", tt.today, got, tt.expected)
			}
		})
	}
}

func TestRecalculateTotals(t *testing.T) {
	c := Campaign{
		Subtotal:      decimal.RequireFromString("80000"),
		PrintingTotal: decimal.RequireFromString("5000"),
		MountingTotal: decimal.RequireFromString("3000"),
		GSTPercent:    decimal.RequireFromString("18"),
	}
	c.RecalculateTotals()

	if got := c.TotalAmount.String(); got != "88000" {
		t.Errorf("TotalAmount = %s, want 88000", got)
	}
	if got := c.GSTAmount.String(); got != "15840" {
		t.Errorf("GSTAmount = %s, want 15840", got)
	}
	if got := c.GrandTotal.String(); got != "103840" {
		t.Errorf("GrandTotal = %s, want 103840", got)
	}
}

func TestIsValidInvoiceTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		{InvoiceStatusDraft, InvoiceStatusIssued, true},
		{InvoiceStatusIssued, InvoiceStatusPaid, true},
		{InvoiceStatusIssued, InvoiceStatusOverdue, true},
		{InvoiceStatusOverdue, InvoiceStatusPaid, true},
		{InvoiceStatusIssued, InvoiceStatusCancelled, true},
		{InvoiceStatusPaid, InvoiceStatusIssued, false},
		{InvoiceStatusPaid, InvoiceStatusOverdue, false},
		{InvoiceStatusCancelled, InvoiceStatusIssued, false},
		{InvoiceStatusDraft, InvoiceStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			if got := IsValidInvoiceTransition(tt.from, tt.to); got != tt.expected {
				t.Errorf("IsValidInvoiceTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}
