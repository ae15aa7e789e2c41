package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ooh-media/backend/internal/models"
)

func sampleData() DocumentData {
	location := "MG Road Junction"
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	return DocumentData{
		Invoice: models.Invoice{
			InvoiceNo:   "INV/2025-26/0042",
			IssueDate:   start,
			DueDate:     end,
			SubTotal:    decimal.RequireFromString("31000"),
			GSTPercent:  decimal.RequireFromString("18"),
			GSTAmount:   decimal.RequireFromString("5580"),
			TotalAmount: decimal.RequireFromString("36580"),
			BalanceDue:  decimal.RequireFromString("36580"),
		},
		Client: models.Client{Name: "Acme Retail"},
		Campaign: models.Campaign{
			Name:      "Acme Summer Launch",
			StartDate: start,
			EndDate:   end,
		},
		Items: []models.InvoiceItem{
			{
				ID:           uuid.New(),
				Position:     1,
				Location:     &location,
				BookingStart: &start,
				BookingEnd:   &end,
				Rate:         decimal.RequireFromString("31000"),
				Amount:       decimal.RequireFromString("31000"),
			},
		},
		Org: models.OrgSettings{CompanyName: "Skyline Media"},
	}
}

func TestRenderTemplates(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	for _, id := range []string{TemplateClassic, TemplateCompact} {
		t.Run(id, func(t *testing.T) {
			out, err := r.Render(sampleData(), id)
			require.NoError(t, err)

			html := string(out)
			assert.Contains(t, html, "INV/2025-26/0042")
			assert.Contains(t, html, "Acme Retail")
			assert.Contains(t, html, "MG Road Junction")
			assert.Contains(t, html, "31000.00")
			assert.Contains(t, html, "36580.00")
			assert.Contains(t, html, "Skyline Media")
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	_, err = r.Render(sampleData(), "letterhead")
	assert.Error(t, err)
}

func TestTemplateIDs(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{TemplateClassic, TemplateCompact}, r.TemplateIDs())
}

func TestLogoCacheResolve(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	cache := NewLogoCache(srv.Client(), time.Minute)
	ctx := context.Background()

	uri := cache.Resolve(ctx, srv.URL)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"), "got %q", uri)

	// Second resolve is served from cache.
	again := cache.Resolve(ctx, srv.URL)
	assert.Equal(t, uri, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestLogoCacheFailuresAreEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cache := NewLogoCache(srv.Client(), time.Minute)
	assert.Equal(t, "", cache.Resolve(context.Background(), srv.URL))
	assert.Equal(t, "", cache.Resolve(context.Background(), ""))
}
