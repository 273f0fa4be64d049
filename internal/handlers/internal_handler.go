package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/locavor/account-service/internal/apperr"
	"github.com/locavor/account-service/internal/dto"
	"github.com/locavor/account-service/internal/services"
)

// InternalHandler serves trusted service-to-service endpoints. These are
// not exposed through the public gateway.
type InternalHandler struct {
	userService *services.UserService
}

func NewInternalHandler(userService *services.UserService) *InternalHandler {
	return &InternalHandler{userService: userService}
}

// GetOrCreateUser resolves a keycloak id to a local profile, materializing
// the row on first reference.
func (h *InternalHandler) GetOrCreateUser(c *fiber.Ctx) error {
	keycloakID, err := uuid.Parse(c.Params("keycloakId"))
	if err != nil {
		return apperr.BadRequest("invalid keycloak id %q", c.Params("keycloakId"))
	}
	profile, err := h.userService.GetOrCreate(c.Context(), keycloakID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *InternalHandler) GetKeycloakIDByUserID(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	resp, err := h.userService.GetKeycloakIDByUserID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RegisterIdentity handles the identity provider's provisioning
// notification for a freshly registered subject.
func (h *InternalHandler) RegisterIdentity(c *fiber.Ctx) error {
	var req dto.RegisterIdentityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	keycloakID, err := uuid.Parse(req.KeycloakID)
	if err != nil {
		return apperr.BadRequest("invalid keycloak id %q", req.KeycloakID)
	}
	profile, err := h.userService.RegisterIdentity(c.Context(), keycloakID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// UpdateRestaurantByID is the trusted ID-scoped update; it does not enforce
// profile-type exclusivity (see UserService.UpdateRestaurantByID).
func (h *InternalHandler) UpdateRestaurantByID(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	var req dto.RestaurantProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	profile, err := h.userService.UpdateRestaurantByID(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *InternalHandler) DeleteRestaurantByID(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	if err := h.userService.DeleteRestaurantByID(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *InternalHandler) UpdateProducerByID(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	var req dto.ProducerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	profile, err := h.userService.UpdateProducerByID(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *InternalHandler) DeleteProducerByID(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	if err := h.userService.DeleteProducerByID(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
