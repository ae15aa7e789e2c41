package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ooh-media/backend/internal/events"
	"github.com/ooh-media/backend/internal/models"
	"github.com/ooh-media/backend/internal/render"
	"github.com/ooh-media/backend/internal/repositories"
)

// InvoiceService builds, reconciles and renders invoices. It fails fast
// only when the invoice or its client cannot be found; every other missing
// source degrades to best-effort enrichment.
type InvoiceService struct {
	invoiceRepo  *repositories.InvoiceRepo
	snapshotRepo *repositories.SnapshotRepo
	campaignRepo *repositories.CampaignRepo
	bookingRepo  *repositories.BookingRepo
	assetRepo    *repositories.AssetRepo
	clientRepo   *repositories.ClientRepo
	orgRepo      *repositories.OrgRepo
	auditRepo    *repositories.AuditRepo
	renderer     render.Renderer
	logoCache    *render.LogoCache
	publisher    events.Publisher
	now          func() time.Time
	log          *zap.Logger
}

func NewInvoiceService(
	invoiceRepo *repositories.InvoiceRepo,
	snapshotRepo *repositories.SnapshotRepo,
	campaignRepo *repositories.CampaignRepo,
	bookingRepo *repositories.BookingRepo,
	assetRepo *repositories.AssetRepo,
	clientRepo *repositories.ClientRepo,
	orgRepo *repositories.OrgRepo,
	auditRepo *repositories.AuditRepo,
	renderer render.Renderer,
	logoCache *render.LogoCache,
	publisher events.Publisher,
	log *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		snapshotRepo: snapshotRepo,
		campaignRepo: campaignRepo,
		bookingRepo:  bookingRepo,
		assetRepo:    assetRepo,
		clientRepo:   clientRepo,
		orgRepo:      orgRepo,
		auditRepo:    auditRepo,
		renderer:     renderer,
		logoCache:    logoCache,
		publisher:    publisher,
		now:          time.Now,
		log:          log,
	}
}

// CreateFromCampaign issues an invoice for a campaign: line items generated
// from its bookings, descriptive snapshots written alongside so the
// document stays stable against later asset edits.
func (s *InvoiceService) CreateFromCampaign(ctx context.Context, userID, campaignID uuid.UUID, dueInDays int, notes *string) (*models.Invoice, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found")
	}
	client, err := s.clientRepo.GetByID(ctx, campaign.ClientID)
	if err != nil {
		return nil, fmt.Errorf("client not found")
	}
	org, orgErr := s.orgRepo.Get(ctx)

	bookings, err := s.bookingRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, fmt.Errorf("campaign has no bookings to invoice")
	}

	assetIDs := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		assetIDs = append(assetIDs, b.AssetID)
	}
	assets, err := s.assetRepo.GetByIDs(ctx, assetIDs)
	if err != nil {
		return nil, err
	}

	// Reuse the regeneration path: it synthesizes full items, monetary
	// fields included, from bookings and asset master records.
	items := regenerateItems(ReconcileSources{
		CampaignBookings: bookings,
		AssetsByID:       assets,
	})

	subTotal := decimal.Zero
	for _, it := range items {
		subTotal = subTotal.Add(it.Amount)
	}
	subTotal = subTotal.Round(2)

	gstPercent := campaign.GSTPercent
	if gstPercent.IsZero() && orgErr == nil {
		gstPercent = org.DefaultGST
	}
	gstAmount := subTotal.Mul(gstPercent).Div(decimal.NewFromInt(100)).Round(2)
	total := subTotal.Add(gstAmount)

	prefix := "INV/"
	if orgErr == nil {
		prefix = org.InvoicePrefix
	}
	invoiceNo, err := s.invoiceRepo.NextInvoiceNo(ctx, prefix)
	if err != nil {
		return nil, err
	}

	if dueInDays <= 0 {
		dueInDays = 30
	}
	issueDate := s.now()
	inv := &models.Invoice{
		InvoiceNo:   invoiceNo,
		CampaignID:  campaign.ID,
		ClientID:    client.ID,
		Status:      models.InvoiceStatusIssued,
		IssueDate:   issueDate,
		DueDate:     issueDate.AddDate(0, 0, dueInDays),
		SubTotal:    subTotal,
		GSTPercent:  gstPercent,
		GSTAmount:   gstAmount,
		TotalAmount: total,
		AmountPaid:  decimal.Zero,
		BalanceDue:  total,
		Notes:       notes,
	}

	snapshots := snapshotItems(items)
	if err := s.invoiceRepo.CreateWithItems(ctx, inv, items, snapshots); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "staff",
		Action:      "invoice_issued",
		EntityType:  "invoice",
		EntityID:    &inv.ID,
		Meta:        map[string]any{"invoice_no": inv.InvoiceNo, "total": inv.TotalAmount.String()},
	})
	_ = s.publisher.Publish(ctx, events.StreamBilling, events.Event{
		Type: events.EventInvoiceGenerated,
		Payload: map[string]any{
			"invoice_id": inv.ID.String(),
			"invoice_no": inv.InvoiceNo,
			"client_id":  client.ID.String(),
			"total":      inv.TotalAmount.String(),
		},
	})

	return inv, nil
}

// snapshotItems copies each generated item's descriptive fields into an
// issue-time snapshot keyed by the item's identifiers.
func snapshotItems(items []models.InvoiceItem) []models.InvoiceItemSnapshot {
	snaps := make([]models.InvoiceItemSnapshot, 0, len(items))
	for _, it := range items {
		if !it.HasSourceIdentifier() {
			continue
		}
		snaps = append(snaps, models.InvoiceItemSnapshot{
			CampaignAssetID: it.CampaignAssetID,
			AssetID:         it.AssetID,
			AssetCode:       it.AssetCode,
			Location:        it.Location,
			Area:            it.Area,
			Direction:       it.Direction,
			MediaType:       it.MediaType,
			Illumination:    it.Illumination,
			DimensionText:   it.Dimensions,
			HSNSAC:          it.HSNSAC,
			BookingStart:    it.BookingStart,
			BookingEnd:      it.BookingEnd,
		})
	}
	return snaps
}

func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, []models.InvoiceItem, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("invoice not found")
	}
	items, err := s.invoiceRepo.GetItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

func (s *InvoiceService) List(ctx context.Context, f repositories.InvoiceFilter) ([]models.Invoice, error) {
	return s.invoiceRepo.List(ctx, f)
}

func (s *InvoiceService) RecordPayment(ctx context.Context, userID, invoiceID uuid.UUID, amount decimal.Decimal) (*models.Invoice, error) {
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	if _, err := s.invoiceRepo.GetByID(ctx, invoiceID); err != nil {
		return nil, fmt.Errorf("invoice not found")
	}
	if err := s.invoiceRepo.RecordPayment(ctx, invoiceID, amount); err != nil {
		return nil, err
	}
	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "staff",
		Action:      "payment_recorded",
		EntityType:  "invoice",
		EntityID:    &invoiceID,
		Meta:        map[string]any{"amount": amount.String()},
	})
	return s.invoiceRepo.GetByID(ctx, invoiceID)
}

// BuildDocument reconciles the invoice's line items against snapshots and
// live records, assembles the document data object and renders it.
//
// Source reads are batched by distinct identifier and issued concurrently;
// the merge itself is the deterministic fold in ReconcileItems, so arrival
// order never changes the output.
func (s *InvoiceService) BuildDocument(ctx context.Context, invoiceID uuid.UUID, templateID string) ([]byte, *ReconcileResult, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("invoice not found")
	}
	client, err := s.clientRepo.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, nil, fmt.Errorf("client not found")
	}

	items, err := s.invoiceRepo.GetItems(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}

	src, err := s.fetchSources(ctx, inv, items)
	if err != nil {
		return nil, nil, err
	}

	result := ReconcileItems(items, *src)
	if len(result.Gaps) > 0 {
		s.log.Warn("invoice reconciliation gaps",
			zap.String("invoice_id", invoiceID.String()),
			zap.Int("gaps", len(result.Gaps)))
		_ = s.publisher.Publish(ctx, events.StreamBilling, events.Event{
			Type: events.EventReconciliationGap,
			Payload: map[string]any{
				"invoice_id": invoiceID.String(),
				"gaps":       len(result.Gaps),
			},
		})
	}

	data := render.DocumentData{
		Invoice: *inv,
		Client:  *client,
		Items:   result.Items,
	}
	if campaign, err := s.campaignRepo.GetByID(ctx, inv.CampaignID); err == nil {
		data.Campaign = *campaign
	}
	if org, err := s.orgRepo.Get(ctx); err == nil {
		data.Org = *org
		if org.LogoURL != nil {
			data.LogoDataURI = s.logoCache.Resolve(ctx, *org.LogoURL)
		}
	}

	doc, err := s.renderer.Render(data, templateID)
	if err != nil {
		return nil, nil, err
	}
	return doc, &result, nil
}

// fetchSources gathers the deduplicated identifier sets from the items and
// bulk-fetches each source once. The snapshot and live lookups are
// independent until the merge, so they run concurrently.
func (s *InvoiceService) fetchSources(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) (*ReconcileSources, error) {
	bookingIDs := make(map[uuid.UUID]struct{})
	assetIDs := make(map[uuid.UUID]struct{})
	assetCodes := make(map[string]struct{})
	for _, it := range items {
		if it.CampaignAssetID != nil {
			bookingIDs[*it.CampaignAssetID] = struct{}{}
		}
		if it.AssetID != nil {
			assetIDs[*it.AssetID] = struct{}{}
		}
		if it.AssetCode != nil && *it.AssetCode != "" {
			assetCodes[*it.AssetCode] = struct{}{}
		}
	}

	src := &ReconcileSources{}
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	record := func(err error) {
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		snaps, err := s.snapshotRepo.ListByInvoice(ctx, inv.ID)
		record(err)
		src.Snapshots = snaps
	}()
	go func() {
		defer wg.Done()

		bookings, err := s.bookingRepo.ListByCampaign(ctx, inv.CampaignID)
		record(err)
		src.CampaignBookings = bookings

		ids := keysOf(bookingIDs)
		byID, err := s.bookingRepo.GetByIDs(ctx, ids)
		record(err)
		src.BookingsByID = byID

		// Assets referenced by items or by any fetched booking.
		for _, b := range bookings {
			assetIDs[b.AssetID] = struct{}{}
		}
		for _, b := range byID {
			assetIDs[b.AssetID] = struct{}{}
		}
		assets, err := s.assetRepo.GetByIDs(ctx, keysOf(assetIDs))
		record(err)
		src.AssetsByID = assets

		byCode, err := s.assetRepo.GetByCodes(ctx, stringKeysOf(assetCodes))
		record(err)
		src.AssetsByCode = byCode
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if src.BookingsByID == nil {
		src.BookingsByID = map[uuid.UUID]models.CampaignAsset{}
	}
	if src.AssetsByID == nil {
		src.AssetsByID = map[uuid.UUID]models.Asset{}
	}
	if src.AssetsByCode == nil {
		src.AssetsByCode = map[string]models.Asset{}
	}
	return src, nil
}

func keysOf(m map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func stringKeysOf(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
