package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/locavor/account-service/internal/apperr"
	"github.com/locavor/account-service/internal/dto"
	"github.com/locavor/account-service/internal/models"
	"github.com/locavor/account-service/internal/repository"
	"gorm.io/gorm"
)

// ProfessionHandler serves the read-only profession catalog straight from
// the repository; there is no domain logic behind it.
type ProfessionHandler struct {
	professions *repository.ProfessionRepository
}

func NewProfessionHandler(professions *repository.ProfessionRepository) *ProfessionHandler {
	return &ProfessionHandler{professions: professions}
}

func (h *ProfessionHandler) List(c *fiber.Ctx) error {
	professions, err := h.professions.FindAll(c.Context())
	if err != nil {
		return err
	}
	out := make([]dto.ProfessionResponse, 0, len(professions))
	for _, p := range professions {
		out = append(out, toProfessionResponse(p))
	}
	return c.JSON(out)
}

func (h *ProfessionHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperr.BadRequest("invalid profession id %q", c.Params("id"))
	}
	p, err := h.professions.FindByID(c.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("profession not found with id %d", id)
	}
	if err != nil {
		return err
	}
	return c.JSON(toProfessionResponse(*p))
}

func toProfessionResponse(p models.Profession) dto.ProfessionResponse {
	return dto.ProfessionResponse{ID: p.ID, Code: p.Code, NameEn: p.NameEn, NameFr: p.NameFr}
}
