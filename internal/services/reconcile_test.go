package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ooh-media/backend/internal/billing"
	"github.com/ooh-media/backend/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testAsset(code, location string) models.Asset {
	area := "Hebbal"
	direction := "towards airport"
	illum := "lit"
	hsn := "998361"
	return models.Asset{
		ID:           uuid.New(),
		Code:         code,
		Location:     location,
		Area:         &area,
		Direction:    &direction,
		MediaType:    models.MediaTypeHoarding,
		Illumination: &illum,
		WidthFt:      dec("40"),
		HeightFt:     dec("20"),
		TotalSqft:    dec("800"),
		CardRate:     dec("45000"),
		HSNSAC:       &hsn,
	}
}

func testBooking(assetID uuid.UUID) models.CampaignAsset {
	return models.CampaignAsset{
		ID:          uuid.New(),
		CampaignID:  uuid.New(),
		AssetID:     assetID,
		StartDate:   day(2025, 1, 1),
		EndDate:     day(2025, 1, 31),
		BillingMode: billing.BillingModeThirtyDay,
		MonthlyRate: dec("30000"),
		BookedDays:  31,
		DailyRate:   dec("1000"),
		RentAmount:  dec("31000"),
	}
}

func TestReconcileNeverTouchesMonetaryFields(t *testing.T) {
	asset := testAsset("HB-001", "Ring Road Junction")
	booking := testBooking(asset.ID)

	items := []models.InvoiceItem{{
		Position:        1,
		CampaignAssetID: &booking.ID,
		Rate:            dec("15000"),
		Amount:          dec("15000"),
	}}

	loc := "Main Road"
	src := ReconcileSources{
		BookingsByID: map[uuid.UUID]models.CampaignAsset{booking.ID: booking},
		AssetsByID:   map[uuid.UUID]models.Asset{asset.ID: asset},
		AssetsByCode: map[string]models.Asset{asset.Code: asset},
		Snapshots: []models.InvoiceItemSnapshot{{
			CampaignAssetID: &booking.ID,
			Location:        &loc,
		}},
	}

	res := ReconcileItems(items, src)
	require.Len(t, res.Items, 1)
	got := res.Items[0]

	assert.True(t, got.Rate.Equal(dec("15000")), "rate changed to %s", got.Rate)
	assert.True(t, got.Amount.Equal(dec("15000")), "amount changed to %s", got.Amount)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Main Road", *got.Location)
	assert.False(t, res.Regenerated)
}

func TestReconcileSnapshotBeatsLiveSource(t *testing.T) {
	// The asset's location was corrected after issue; the snapshot keeps the
	// historical invoice stable.
	asset := testAsset("HB-002", "Corrected Location")
	booking := testBooking(asset.ID)

	historical := "Original Location"
	src := ReconcileSources{
		BookingsByID: map[uuid.UUID]models.CampaignAsset{booking.ID: booking},
		AssetsByID:   map[uuid.UUID]models.Asset{asset.ID: asset},
		AssetsByCode: map[string]models.Asset{asset.Code: asset},
		Snapshots: []models.InvoiceItemSnapshot{{
			CampaignAssetID: &booking.ID,
			Location:        &historical,
		}},
	}

	items := []models.InvoiceItem{{Position: 1, CampaignAssetID: &booking.ID, Amount: dec("31000")}}
	res := ReconcileItems(items, src)

	require.NotNil(t, res.Items[0].Location)
	assert.Equal(t, "Original Location", *res.Items[0].Location)
	// Fields absent from the snapshot still hydrate from live records.
	require.NotNil(t, res.Items[0].MediaType)
	assert.Equal(t, models.MediaTypeHoarding, *res.Items[0].MediaType)
}

func TestReconcileIdentifierPriority(t *testing.T) {
	assetA := testAsset("HB-010", "By Asset ID")
	assetB := testAsset("HB-011", "By Asset Code")

	code := assetB.Code
	item := models.InvoiceItem{
		Position:  1,
		AssetID:   &assetA.ID,
		AssetCode: &code,
		Amount:    dec("1000"),
	}

	src := ReconcileSources{
		AssetsByID:   map[uuid.UUID]models.Asset{assetA.ID: assetA, assetB.ID: assetB},
		AssetsByCode: map[string]models.Asset{assetA.Code: assetA, assetB.Code: assetB},
	}

	res := ReconcileItems([]models.InvoiceItem{item}, src)
	require.NotNil(t, res.Items[0].Location)
	assert.Equal(t, "By Asset ID", *res.Items[0].Location, "asset_id must win over asset_code")
}

func TestReconcileFillsGapsOnly(t *testing.T) {
	asset := testAsset("HB-003", "Live Location")
	existing := "Keep Me"

	items := []models.InvoiceItem{{
		Position: 1,
		AssetID:  &asset.ID,
		Location: &existing,
		Amount:   dec("500"),
	}}
	src := ReconcileSources{
		AssetsByID:   map[uuid.UUID]models.Asset{asset.ID: asset},
		AssetsByCode: map[string]models.Asset{asset.Code: asset},
	}

	res := ReconcileItems(items, src)
	assert.Equal(t, "Keep Me", *res.Items[0].Location)
	require.NotNil(t, res.Items[0].Area)
	assert.Equal(t, "Hebbal", *res.Items[0].Area)
}

func TestReconcileIdempotent(t *testing.T) {
	asset := testAsset("HB-004", "Somewhere")
	booking := testBooking(asset.ID)

	items := []models.InvoiceItem{{Position: 1, CampaignAssetID: &booking.ID, Amount: dec("31000")}}
	src := ReconcileSources{
		BookingsByID: map[uuid.UUID]models.CampaignAsset{booking.ID: booking},
		AssetsByID:   map[uuid.UUID]models.Asset{asset.ID: asset},
		AssetsByCode: map[string]models.Asset{asset.Code: asset},
	}

	first := ReconcileItems(items, src)
	second := ReconcileItems(first.Items, src)

	assert.Equal(t, first.Items, second.Items)
	assert.Len(t, second.Gaps, 0)
}

func TestReconcileRegeneratesSummaryOnlyItems(t *testing.T) {
	asset := testAsset("HB-005", "MG Road")
	booking := testBooking(asset.ID)
	booking.PrintingCost = dec("2000")
	booking.MountingCost = dec("1000")

	// Legacy summary line: no identifiers, no location.
	desc := "Advertising charges for January"
	items := []models.InvoiceItem{{Position: 1, Description: &desc, Amount: dec("99999")}}

	src := ReconcileSources{
		CampaignBookings: []models.CampaignAsset{booking},
		AssetsByID:       map[uuid.UUID]models.Asset{asset.ID: asset},
		AssetsByCode:     map[string]models.Asset{asset.Code: asset},
	}

	res := ReconcileItems(items, src)
	assert.True(t, res.Regenerated)
	require.Len(t, res.Items, 1)

	got := res.Items[0]
	assert.True(t, got.Rate.Equal(dec("31000")), "rate = %s", got.Rate)
	assert.True(t, got.Amount.Equal(dec("34000")), "amount = %s", got.Amount)
	require.NotNil(t, got.Location)
	assert.Equal(t, "MG Road", *got.Location)
	require.NotNil(t, got.Dimensions)
	assert.Equal(t, "40 x 20 ft", *got.Dimensions)
	require.NotNil(t, got.BookingStart)
	assert.Equal(t, day(2025, 1, 1), *got.BookingStart)
}

func TestReconcileRegenerationRateFallsBackToNegotiatedRate(t *testing.T) {
	asset := testAsset("HB-006", "Outer Ring Road")
	booking := testBooking(asset.ID)
	booking.RentAmount = decimal.Zero

	src := ReconcileSources{
		CampaignBookings: []models.CampaignAsset{booking},
		AssetsByID:       map[uuid.UUID]models.Asset{asset.ID: asset},
	}

	res := ReconcileItems(nil, src)
	require.Len(t, res.Items, 1)
	assert.True(t, res.Items[0].Rate.Equal(dec("30000")), "rate = %s", res.Items[0].Rate)
}

func TestReconcileUnmatchedItemPassesThroughWithGap(t *testing.T) {
	orphan := uuid.New()
	loc := "Lost Hoarding"
	items := []models.InvoiceItem{
		{Position: 1, CampaignAssetID: &orphan, Location: &loc, Amount: dec("7000")},
		{Position: 2, Location: &loc, Amount: dec("3000")},
	}

	res := ReconcileItems(items, ReconcileSources{})
	require.Len(t, res.Items, 2)
	assert.True(t, res.Items[0].Amount.Equal(dec("7000")))
	assert.Equal(t, 1, res.Items[0].Position)
	assert.Equal(t, 2, res.Items[1].Position)

	// Only the item that carried an identifier counts as a gap.
	require.Len(t, res.Gaps, 1)
	assert.Equal(t, 1, res.Gaps[0].Position)
}

func TestReconcilePreservesItemOrder(t *testing.T) {
	assetA := testAsset("HB-007", "First")
	assetB := testAsset("HB-008", "Second")

	items := []models.InvoiceItem{
		{Position: 1, AssetID: &assetA.ID, Amount: dec("1")},
		{Position: 2, AssetID: &assetB.ID, Amount: dec("2")},
	}
	src := ReconcileSources{
		AssetsByID: map[uuid.UUID]models.Asset{assetA.ID: assetA, assetB.ID: assetB},
	}

	res := ReconcileItems(items, src)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "First", *res.Items[0].Location)
	assert.Equal(t, "Second", *res.Items[1].Location)
}
