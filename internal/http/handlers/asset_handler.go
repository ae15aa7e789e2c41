package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ooh-media/backend/internal/http/dto"
	"github.com/ooh-media/backend/internal/models"
	"github.com/ooh-media/backend/internal/repositories"
)

type AssetHandler struct {
	assetRepo *repositories.AssetRepo
	log       *zap.Logger
}

func NewAssetHandler(assetRepo *repositories.AssetRepo, log *zap.Logger) *AssetHandler {
	return &AssetHandler{assetRepo: assetRepo, log: log}
}

func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var req dto.AssetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if err := dto.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	asset := assetFromRequest(req)
	asset.Status = models.AssetStatusAvailable
	if req.Status != nil {
		asset.Status = *req.Status
	}
	if err := h.assetRepo.Create(c.Context(), asset); err != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "asset code already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: asset})
}

func (h *AssetHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid asset id"})
	}
	asset, err := h.assetRepo.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "asset not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: asset})
}

func (h *AssetHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid asset id"})
	}
	var req dto.AssetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if err := dto.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	existing, err := h.assetRepo.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "asset not found"})
	}

	asset := assetFromRequest(req)
	asset.ID = id
	asset.Status = existing.Status
	if req.Status != nil {
		asset.Status = *req.Status
	}
	if err := h.assetRepo.Update(c.Context(), asset); err != nil {
		h.log.Error("update asset failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: asset})
}

func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid asset id"})
	}
	if err := h.assetRepo.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *AssetHandler) List(c *fiber.Ctx) error {
	filter := repositories.AssetFilter{Limit: 50}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("media_type"); v != "" {
		filter.MediaType = &v
	}
	if v := c.Query("city"); v != "" {
		filter.City = &v
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

	assets, err := h.assetRepo.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list assets failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: assets})
}

func assetFromRequest(req dto.AssetRequest) *models.Asset {
	return &models.Asset{
		Code:         req.Code,
		Location:     req.Location,
		Area:         req.Area,
		City:         req.City,
		Direction:    req.Direction,
		MediaType:    req.MediaType,
		Illumination: req.Illumination,
		WidthFt:      req.WidthFt,
		HeightFt:     req.HeightFt,
		TotalSqft:    req.WidthFt.Mul(req.HeightFt),
		CardRate:     req.CardRate,
		HSNSAC:       req.HSNSAC,
	}
}
