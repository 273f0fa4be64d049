package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/locavor/account-service/internal/apperr"
	"github.com/locavor/account-service/internal/dto"
	"github.com/locavor/account-service/internal/middleware"
	"github.com/locavor/account-service/internal/services"
)

type AccountHandler struct {
	userService *services.UserService
}

func NewAccountHandler(userService *services.UserService) *AccountHandler {
	return &AccountHandler{userService: userService}
}

func (h *AccountHandler) GetMyProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.Context(), middleware.KeycloakID(c))
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *AccountHandler) UpdatePersonalInfo(c *fiber.Ctx) error {
	var req dto.UpdatePersonalInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	profile, err := h.userService.UpdatePersonalInfo(c.Context(), middleware.KeycloakID(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *AccountHandler) GetRestaurantProfile(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	profile, err := h.userService.GetRestaurantProfile(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *AccountHandler) CreateRestaurantProfile(c *fiber.Ctx) error {
	profile, err := h.upsertRestaurant(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (h *AccountHandler) UpdateMyRestaurantProfile(c *fiber.Ctx) error {
	profile, err := h.upsertRestaurant(c)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *AccountHandler) upsertRestaurant(c *fiber.Ctx) (*dto.UserProfileResponse, error) {
	var req dto.RestaurantProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperr.BadRequest("invalid request body")
	}
	return h.userService.UpsertRestaurant(c.Context(), middleware.KeycloakID(c), &req)
}

func (h *AccountHandler) DeleteMyRestaurantProfile(c *fiber.Ctx) error {
	if err := h.userService.DeleteRestaurantByKeycloakID(c.Context(), middleware.KeycloakID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AccountHandler) GetProducerProfile(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	profile, err := h.userService.GetProducerProfile(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *AccountHandler) CreateProducerProfile(c *fiber.Ctx) error {
	profile, err := h.upsertProducer(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (h *AccountHandler) UpdateMyProducerProfile(c *fiber.Ctx) error {
	profile, err := h.upsertProducer(c)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *AccountHandler) upsertProducer(c *fiber.Ctx) (*dto.UserProfileResponse, error) {
	var req dto.ProducerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperr.BadRequest("invalid request body")
	}
	return h.userService.UpsertProducer(c.Context(), middleware.KeycloakID(c), &req)
}

func (h *AccountHandler) DeleteMyProducerProfile(c *fiber.Ctx) error {
	if err := h.userService.DeleteProducerByKeycloakID(c.Context(), middleware.KeycloakID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AccountHandler) AddProfession(c *fiber.Ctx) error {
	professionID, err := parseProfessionID(c)
	if err != nil {
		return err
	}
	profile, err := h.userService.AddProfession(c.Context(), middleware.KeycloakID(c), professionID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *AccountHandler) RemoveProfession(c *fiber.Ctx) error {
	professionID, err := parseProfessionID(c)
	if err != nil {
		return err
	}
	profile, err := h.userService.RemoveProfession(c.Context(), middleware.KeycloakID(c), professionID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("invalid user id %q", c.Params("id"))
	}
	return id, nil
}

func parseProfessionID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("professionId"), 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("invalid profession id %q", c.Params("professionId"))
	}
	return id, nil
}
