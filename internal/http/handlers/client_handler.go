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

type ClientHandler struct {
	clientRepo *repositories.ClientRepo
	log        *zap.Logger
}

func NewClientHandler(clientRepo *repositories.ClientRepo, log *zap.Logger) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo, log: log}
}

func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if err := dto.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	client := clientFromRequest(req)
	if err := h.clientRepo.Create(c.Context(), client); err != nil {
		h.log.Error("create client failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}
	client, err := h.clientRepo.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}
	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if err := dto.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	client := clientFromRequest(req)
	client.ID = id
	if err := h.clientRepo.Update(c.Context(), client); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}
	if err := h.clientRepo.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "client has linked campaigns"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	filter := repositories.ClientFilter{Limit: 50}
	if v := c.Query("search"); v != "" {
		filter.Search = &v
	}
	if v := c.Query("city"); v != "" {
		filter.City = &v
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

	clients, err := h.clientRepo.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list clients failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: clients})
}

func clientFromRequest(req dto.ClientRequest) *models.Client {
	return &models.Client{
		Name:           req.Name,
		ContactPerson:  req.ContactPerson,
		Phone:          req.Phone,
		Email:          req.Email,
		GSTIN:          req.GSTIN,
		BillingAddress: req.BillingAddress,
		City:           req.City,
		State:          req.State,
	}
}
