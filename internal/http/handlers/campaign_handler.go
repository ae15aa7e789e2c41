package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ooh-media/backend/internal/billing"
	"github.com/ooh-media/backend/internal/config"
	"github.com/ooh-media/backend/internal/http/dto"
	"github.com/ooh-media/backend/internal/middleware"
	"github.com/ooh-media/backend/internal/models"
	"github.com/ooh-media/backend/internal/repositories"
	"github.com/ooh-media/backend/internal/services"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	bookingService  *services.BookingService
	cfg             *config.Config
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, bookingService *services.BookingService, cfg *config.Config, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, bookingService: bookingService, cfg: cfg, log: log}
}

func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	var req dto.CampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if err := dto.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}

	gstPercent := req.GSTPercent
	if gstPercent.IsZero() {
		gstPercent = h.cfg.DefaultGSTPercent
	}
	campaign := &models.Campaign{
		ClientID:   clientID,
		Name:       req.Name,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		GSTPercent: gstPercent,
		Notes:      req.Notes,
	}
	if err := h.campaignService.Create(c.Context(), middleware.GetUserID(c), campaign); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}
	campaign, err := h.campaignService.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}
	var req dto.CampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if err := dto.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}

	campaign := &models.Campaign{
		ClientID:   clientID,
		Name:       req.Name,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		GSTPercent: req.GSTPercent,
		Notes:      req.Notes,
	}
	if err := h.campaignService.Update(c.Context(), id, campaign); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}
	if err := h.campaignService.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *CampaignHandler) List(c *fiber.Ctx) error {
	filter := repositories.CampaignFilter{Limit: 50}
	if v := c.Query("client_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.ClientID = &id
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("search"); v != "" {
		filter.Search = &v
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	campaigns, err := h.campaignService.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list campaigns failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

// Bookings

func (h *CampaignHandler) ListBookings(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}
	bookings, err := h.bookingService.ListByCampaign(c.Context(), id)
	if err != nil {
		h.log.Error("list bookings failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: bookings})
}

func (h *CampaignHandler) BookAsset(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}
	in, err := h.bookingInputFromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	booking, err := h.bookingService.Book(c.Context(), middleware.GetUserID(c), campaignID, *in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: booking})
}

func (h *CampaignHandler) UpdateBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid booking id"})
	}
	in, err := h.bookingInputFromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	booking, err := h.bookingService.UpdateBooking(c.Context(), middleware.GetUserID(c), bookingID, *in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: booking})
}

func (h *CampaignHandler) RemoveBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid booking id"})
	}
	if err := h.bookingService.RemoveBooking(c.Context(), middleware.GetUserID(c), bookingID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// PreviewBooking computes rent for a candidate booking without persisting.
func (h *CampaignHandler) PreviewBooking(c *fiber.Ctx) error {
	in, err := h.bookingInputFromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	breakdown, err := h.bookingService.Preview(c.Context(), *in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: breakdown})
}

// Renewal

func (h *CampaignHandler) PreviewRenewal(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}
	req, opts, err := renewalFromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	preview, err := h.campaignService.PreviewRenewal(c.Context(), campaignID, *req, *opts)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: preview})
}

func (h *CampaignHandler) SubmitRenewal(c *fiber.Ctx) error {
	campaignID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}
	req, opts, err := renewalFromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	campaign, preview, err := h.campaignService.SubmitRenewal(c.Context(), middleware.GetUserID(c), campaignID, *req, *opts)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{
		"campaign": campaign,
		"preview":  preview,
	}})
}

func (h *CampaignHandler) bookingInputFromRequest(c *fiber.Ctx) (*services.BookingInput, error) {
	var req dto.BookAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid asset id")
	}

	mode := billing.BillingMode(req.BillingMode)
	if req.BillingMode == "" {
		mode = billing.BillingMode(h.cfg.DefaultBillingMode)
		if !billing.ValidBillingMode(mode) {
			mode = billing.BillingModeThirtyDay
		}
	}
	return &services.BookingInput{
		AssetID:      assetID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		BillingMode:  mode,
		MonthlyRate:  req.MonthlyRate,
		PrintingCost: req.PrintingCost,
		MountingCost: req.MountingCost,
	}, nil
}

func renewalFromRequest(c *fiber.Ctx) (*billing.RenewalRequest, *billing.EstimateOptions, error) {
	var req dto.RenewalRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := dto.Validate(req); err != nil {
		return nil, nil, err
	}

	duration := billing.DurationOption(req.Duration)
	if req.Duration == "" {
		duration = billing.Duration1Month
	}
	planReq := &billing.RenewalRequest{
		Action:    billing.ActionType(req.Action),
		Duration:  duration,
		CustomEnd: normalizeDate(req.CustomEnd),
		NewStart:  normalizeDate(req.NewStart),
		NewEnd:    normalizeDate(req.NewEnd),
	}
	opts := &billing.EstimateOptions{ProrateOneTimeCosts: req.ProrateOneTimeCosts}
	return planReq, opts, nil
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := t.UTC().Truncate(24 * time.Hour)
	return &d
}
