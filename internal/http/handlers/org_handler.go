package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ooh-media/backend/internal/http/dto"
	"github.com/ooh-media/backend/internal/models"
	"github.com/ooh-media/backend/internal/repositories"
)

// OrgHandler manages the single organization profile that appears on
// rendered invoices.
type OrgHandler struct {
	orgRepo *repositories.OrgRepo
	log     *zap.Logger
}

func NewOrgHandler(orgRepo *repositories.OrgRepo, log *zap.Logger) *OrgHandler {
	return &OrgHandler{orgRepo: orgRepo, log: log}
}

func (h *OrgHandler) Get(c *fiber.Ctx) error {
	org, err := h.orgRepo.Get(c.Context())
	if err != nil {
		h.log.Error("get org settings failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: org})
}

type orgUpdateRequest struct {
	CompanyName   string           `json:"company_name" validate:"required"`
	Address       *string          `json:"address,omitempty"`
	GSTIN         *string          `json:"gstin,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	Email         *string          `json:"email,omitempty" validate:"omitempty,email"`
	BankName      *string          `json:"bank_name,omitempty"`
	BankAccountNo *string          `json:"bank_account_no,omitempty"`
	BankIFSC      *string          `json:"bank_ifsc,omitempty"`
	LogoURL       *string          `json:"logo_url,omitempty" validate:"omitempty,url"`
	InvoicePrefix string           `json:"invoice_prefix" validate:"required"`
	DefaultGST    *decimal.Decimal `json:"default_gst_percent,omitempty"`
}

func (h *OrgHandler) Update(c *fiber.Ctx) error {
	var req orgUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if err := dto.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	current, err := h.orgRepo.Get(c.Context())
	if err != nil {
		h.log.Error("get org settings failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	org := &models.OrgSettings{
		ID:            current.ID,
		CompanyName:   req.CompanyName,
		Address:       req.Address,
		GSTIN:         req.GSTIN,
		Phone:         req.Phone,
		Email:         req.Email,
		BankName:      req.BankName,
		BankAccountNo: req.BankAccountNo,
		BankIFSC:      req.BankIFSC,
		LogoURL:       req.LogoURL,
		InvoicePrefix: req.InvoicePrefix,
		DefaultGST:    current.DefaultGST,
	}
	if req.DefaultGST != nil {
		org.DefaultGST = *req.DefaultGST
	}

	if err := h.orgRepo.Update(c.Context(), org); err != nil {
		h.log.Error("update org settings failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: org})
}
