package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ooh-media/backend/internal/models"
)

// ReconcileSources is the layered source material for invoice line
// reconciliation, fetched in bulk by the invoice service. Missing records
// are simply absent from the maps — never an error.
type ReconcileSources struct {
	// CampaignBookings in display order, used only when a legacy
	// summary-only item set must be regenerated from scratch.
	CampaignBookings []models.CampaignAsset

	BookingsByID map[uuid.UUID]models.CampaignAsset
	AssetsByID   map[uuid.UUID]models.Asset
	AssetsByCode map[string]models.Asset
	Snapshots    []models.InvoiceItemSnapshot
}

// ReconciliationGap records a line item that matched no source after all
// hydration passes. Informational: the build never fails because of it.
type ReconciliationGap struct {
	Position int    `json:"position"`
	Reason   string `json:"reason"`
}

// ReconcileResult carries the display-ready item set. Items are never
// dropped or reordered relative to the input.
type ReconcileResult struct {
	Items       []models.InvoiceItem
	Regenerated bool
	Gaps        []ReconciliationGap
}

// ReconcileItems produces a complete, display-ready item set for an invoice.
//
// If every existing item lacks any asset/location identifier the set is a
// legacy summary and is fully regenerated from the campaign's bookings —
// the only path that computes monetary fields. Otherwise each item is
// hydrated descriptively, snapshot first, live records second, filling gaps
// and never overwriting a value the item already carries. Rate and Amount
// are never touched on the hydration paths.
//
// The merge is a deterministic fold: priority comes from pass order, not
// from the arrival order of the concurrently fetched sources.
func ReconcileItems(items []models.InvoiceItem, src ReconcileSources) ReconcileResult {
	if isSummaryOnly(items) {
		return ReconcileResult{
			Items:       regenerateItems(src),
			Regenerated: true,
		}
	}

	snapByBooking := make(map[uuid.UUID]models.InvoiceItemSnapshot)
	snapByAsset := make(map[uuid.UUID]models.InvoiceItemSnapshot)
	snapByCode := make(map[string]models.InvoiceItemSnapshot)
	for _, s := range src.Snapshots {
		if s.CampaignAssetID != nil {
			snapByBooking[*s.CampaignAssetID] = s
		}
		if s.AssetID != nil {
			snapByAsset[*s.AssetID] = s
		}
		if s.AssetCode != nil && *s.AssetCode != "" {
			snapByCode[*s.AssetCode] = s
		}
	}

	out := make([]models.InvoiceItem, len(items))
	copy(out, items)

	var gaps []ReconciliationGap
	for i := range out {
		it := &out[i]

		matched := false
		if snap, ok := matchSnapshot(*it, snapByBooking, snapByAsset, snapByCode); ok {
			hydrateFromSnapshot(it, snap)
			matched = true
		}
		if hydrateFromLive(it, src) {
			matched = true
		}

		if !matched && it.HasSourceIdentifier() {
			gaps = append(gaps, ReconciliationGap{
				Position: it.Position,
				Reason:   "no snapshot, booking or asset record matched",
			})
		}
	}

	return ReconcileResult{Items: out, Gaps: gaps}
}

// isSummaryOnly reports whether every item lacks both a source identifier
// and a location — the signature of legacy summary-level invoices.
func isSummaryOnly(items []models.InvoiceItem) bool {
	for _, it := range items {
		if it.HasSourceIdentifier() {
			return false
		}
		if it.Location != nil && *it.Location != "" {
			return false
		}
	}
	return true
}

// regenerateItems synthesizes full line items from the campaign's current
// bookings, monetary fields included.
func regenerateItems(src ReconcileSources) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(src.CampaignBookings))
	for i, booking := range src.CampaignBookings {
		b := booking
		var asset *models.Asset
		if a, ok := src.AssetsByID[b.AssetID]; ok {
			asset = &a
		}

		rate := b.RentAmount
		if rate.Sign() <= 0 {
			rate = b.EffectiveRate(asset)
		}
		amount := b.RentAmount.Add(b.PrintingCost).Add(b.MountingCost).Round(2)

		item := models.InvoiceItem{
			Position:        i + 1,
			CampaignAssetID: &b.ID,
			AssetID:         &b.AssetID,
			BookingStart:    timePtr(b.StartDate),
			BookingEnd:      timePtr(b.EndDate),
			Rate:            rate,
			Amount:          amount,
		}
		if asset != nil {
			item.AssetCode = strPtr(asset.Code)
			item.Description = strPtr(asset.Location)
			item.Location = strPtr(asset.Location)
			item.Area = asset.Area
			item.Direction = asset.Direction
			item.MediaType = strPtr(asset.MediaType)
			item.Illumination = asset.Illumination
			item.Dimensions = strPtr(asset.Dimensions())
			item.TotalSqft = decPtr(asset.TotalSqft)
			item.HSNSAC = asset.HSNSAC
		}
		items = append(items, item)
	}
	return items
}

// matchSnapshot resolves the identifier priority: campaign_asset_id first,
// then asset_id, then asset_code. First match wins.
func matchSnapshot(
	it models.InvoiceItem,
	byBooking map[uuid.UUID]models.InvoiceItemSnapshot,
	byAsset map[uuid.UUID]models.InvoiceItemSnapshot,
	byCode map[string]models.InvoiceItemSnapshot,
) (models.InvoiceItemSnapshot, bool) {
	if it.CampaignAssetID != nil {
		if s, ok := byBooking[*it.CampaignAssetID]; ok {
			return s, true
		}
	}
	if it.AssetID != nil {
		if s, ok := byAsset[*it.AssetID]; ok {
			return s, true
		}
	}
	if it.AssetCode != nil && *it.AssetCode != "" {
		if s, ok := byCode[*it.AssetCode]; ok {
			return s, true
		}
	}
	return models.InvoiceItemSnapshot{}, false
}

func hydrateFromSnapshot(it *models.InvoiceItem, s models.InvoiceItemSnapshot) {
	it.Location = fillStr(it.Location, s.Location)
	it.Area = fillStr(it.Area, s.Area)
	it.Direction = fillStr(it.Direction, s.Direction)
	it.MediaType = fillStr(it.MediaType, s.MediaType)
	it.Illumination = fillStr(it.Illumination, s.Illumination)
	it.Dimensions = fillStr(it.Dimensions, s.DimensionText)
	it.HSNSAC = fillStr(it.HSNSAC, s.HSNSAC)
	it.BookingStart = fillTime(it.BookingStart, s.BookingStart)
	it.BookingEnd = fillTime(it.BookingEnd, s.BookingEnd)
}

// hydrateFromLive joins the item against live booking and asset records by
// the same identifier priority. Best effort: live records may have changed
// since issue time, so this runs after the snapshot pass.
func hydrateFromLive(it *models.InvoiceItem, src ReconcileSources) bool {
	var booking *models.CampaignAsset
	var asset *models.Asset

	if it.CampaignAssetID != nil {
		if b, ok := src.BookingsByID[*it.CampaignAssetID]; ok {
			booking = &b
			if a, ok := src.AssetsByID[b.AssetID]; ok {
				asset = &a
			}
		}
	}
	if asset == nil && it.AssetID != nil {
		if a, ok := src.AssetsByID[*it.AssetID]; ok {
			asset = &a
		}
	}
	if asset == nil && it.AssetCode != nil && *it.AssetCode != "" {
		if a, ok := src.AssetsByCode[*it.AssetCode]; ok {
			asset = &a
		}
	}
	if booking == nil && asset == nil {
		return false
	}

	if booking != nil {
		it.BookingStart = fillTime(it.BookingStart, timePtr(booking.StartDate))
		it.BookingEnd = fillTime(it.BookingEnd, timePtr(booking.EndDate))
	}
	if asset != nil {
		it.AssetID = fillUUID(it.AssetID, &asset.ID)
		it.AssetCode = fillStr(it.AssetCode, strPtr(asset.Code))
		it.Location = fillStr(it.Location, strPtr(asset.Location))
		it.Area = fillStr(it.Area, asset.Area)
		it.Direction = fillStr(it.Direction, asset.Direction)
		it.MediaType = fillStr(it.MediaType, strPtr(asset.MediaType))
		it.Illumination = fillStr(it.Illumination, asset.Illumination)
		it.Dimensions = fillStr(it.Dimensions, strPtr(asset.Dimensions()))
		it.TotalSqft = fillDec(it.TotalSqft, decPtr(asset.TotalSqft))
		it.HSNSAC = fillStr(it.HSNSAC, asset.HSNSAC)
	}
	return true
}

// fill helpers: first non-empty wins, current value always kept.

func fillStr(current *string, sources ...*string) *string {
	if current != nil && *current != "" {
		return current
	}
	for _, s := range sources {
		if s != nil && *s != "" {
			return s
		}
	}
	return current
}

func fillTime(current *time.Time, sources ...*time.Time) *time.Time {
	if current != nil && !current.IsZero() {
		return current
	}
	for _, s := range sources {
		if s != nil && !s.IsZero() {
			return s
		}
	}
	return current
}

func fillDec(current *decimal.Decimal, sources ...*decimal.Decimal) *decimal.Decimal {
	if current != nil {
		return current
	}
	for _, s := range sources {
		if s != nil {
			return s
		}
	}
	return current
}

func fillUUID(current *uuid.UUID, sources ...*uuid.UUID) *uuid.UUID {
	if current != nil {
		return current
	}
	for _, s := range sources {
		if s != nil {
			return s
		}
	}
	return current
}

func strPtr(s string) *string          { return &s }
func timePtr(t time.Time) *time.Time   { return &t }
func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }
