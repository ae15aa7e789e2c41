package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ooh-media/backend/internal/config"
	"github.com/ooh-media/backend/internal/http/dto"
	"github.com/ooh-media/backend/internal/middleware"
	"github.com/ooh-media/backend/internal/render"
	"github.com/ooh-media/backend/internal/repositories"
	"github.com/ooh-media/backend/internal/services"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
	cfg            *config.Config
	log            *zap.Logger
}

func NewInvoiceHandler(invoiceService *services.InvoiceService, cfg *config.Config, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, cfg: cfg, log: log}
}

func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if err := dto.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	dueInDays := req.DueInDays
	if dueInDays <= 0 {
		dueInDays = h.cfg.DefaultDueInDays
	}

	inv, err := h.invoiceService.CreateFromCampaign(c.Context(), middleware.GetUserID(c), campaignID, dueInDays, req.Notes)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: inv})
}

func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid invoice id"})
	}
	inv, items, err := h.invoiceService.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "invoice not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.InvoiceResponse{Invoice: inv, Items: items}})
}

func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	filter := repositories.InvoiceFilter{Limit: 50}
	if v := c.Query("campaign_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.CampaignID = &id
		}
	}
	if v := c.Query("client_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.ClientID = &id
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
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

	invoices, err := h.invoiceService.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list invoices failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: invoices})
}

func (h *InvoiceHandler) RecordPayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid invoice id"})
	}
	var req dto.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if err := dto.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	inv, err := h.invoiceService.RecordPayment(c.Context(), middleware.GetUserID(c), id, req.Amount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: inv})
}

// Document reconciles the invoice against snapshots and live records, then
// renders it as HTML. `?template=` picks the layout, `?report=1` returns
// JSON diagnostics instead of the document.
func (h *InvoiceHandler) Document(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid invoice id"})
	}

	templateID := c.Query("template", render.TemplateClassic)
	doc, result, err := h.invoiceService.BuildDocument(c.Context(), id, templateID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	if c.Query("report") == "1" {
		return c.JSON(dto.SuccessResponse{OK: true, Data: dto.ReconciliationReport{
			Regenerated: result.Regenerated,
			Gaps:        result.Gaps,
		}})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(doc)
}
