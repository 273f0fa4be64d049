package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/locavor/account-service/internal/apperr"
	"github.com/locavor/account-service/internal/dto"
	"github.com/locavor/account-service/internal/middleware"
	"github.com/locavor/account-service/internal/services"
)

type StripeHandler struct {
	connectService *services.StripeConnectService
}

func NewStripeHandler(connectService *services.StripeConnectService) *StripeHandler {
	return &StripeHandler{connectService: connectService}
}

func (h *StripeHandler) CreateConnectedAccount(c *fiber.Ctx) error {
	// The body is optional; defaults match the platform's primary market.
	req := dto.ConnectedAccountRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperr.BadRequest("invalid request body")
		}
	}
	if req.Country == "" {
		req.Country = "FR"
	}
	if req.BusinessType == "" {
		req.BusinessType = "individual"
	}

	resp, err := h.connectService.CreateConnectedAccount(c.Context(), middleware.KeycloakID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *StripeHandler) GetConnectedAccount(c *fiber.Ctx) error {
	resp, err := h.connectService.GetConnectedAccountInfo(c.Context(), middleware.KeycloakID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *StripeHandler) RefreshOnboardingLink(c *fiber.Ctx) error {
	resp, err := h.connectService.RefreshOnboardingLink(c.Context(), middleware.KeycloakID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *StripeHandler) SyncAccountStatus(c *fiber.Ctx) error {
	resp, err := h.connectService.SyncAccountStatus(c.Context(), middleware.KeycloakID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *StripeHandler) DeleteConnectedAccount(c *fiber.Ctx) error {
	if err := h.connectService.DeleteConnectedAccount(c.Context(), middleware.KeycloakID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
