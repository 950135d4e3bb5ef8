package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gripe-service/internal/api/dto"
	"github.com/spec-kit/gripe-service/internal/auth"
	"github.com/spec-kit/gripe-service/internal/service"
	apperrors "github.com/spec-kit/gripe-service/pkg/util/errorutil"
)

const firstRunMessage = "You don't have any stresses and gripes yet, try adding a stress and then venting a gripe about it."

// StressHandler exposes the stress and gripe CRUD surface.
type StressHandler struct {
	stresses *service.StressService
}

// NewStressHandler constructs handler.
func NewStressHandler(stressService *service.StressService) *StressHandler {
	return &StressHandler{stresses: stressService}
}

// List handles GET /stresses. The optional selected query parameter pins
// that stress to the top of the returned list.
func (h *StressHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}

	stresses, err := h.stresses.ListStresses(c.Context(), identity)
	if err != nil {
		return err
	}
	stresses = service.ReorderWithFirst(stresses, c.Query("selected"))

	resp := dto.StressListResponse{Stresses: dto.FromStresses(stresses)}
	if len(resp.Stresses) == 0 {
		resp.Message = firstRunMessage
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Add handles POST /stresses. Duplicate names are a quiet no-op; the
// response always carries the current list.
func (h *StressHandler) Add(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}

	var req dto.AddStressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if _, err := h.stresses.AddStress(c.Context(), identity, req.Name); err != nil {
		return err
	}

	stresses, err := h.stresses.ListStresses(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.StressListResponse{Stresses: dto.FromStresses(stresses)},
	})
}

// Delete handles DELETE /stresses/:name, removing the stress with its
// embedded gripes.
func (h *StressHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}

	if err := h.stresses.DeleteStress(c.Context(), identity, c.Params("name")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddGripe handles POST /stresses/:name/gripes.
func (h *StressHandler) AddGripe(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}

	var req dto.AddGripeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	gripe, err := h.stresses.AddGripe(c.Context(), identity, c.Params("name"), req.Text)
	if err != nil {
		return err
	}
	if gripe == nil {
		// empty or duplicate text: nothing was added
		return c.SendStatus(http.StatusNoContent)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.GripeResponse{Number: gripe.Number, Text: gripe.Text},
	})
}

// RandomGripe handles GET /stresses/:name/gripes/random.
func (h *StressHandler) RandomGripe(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}

	stress, err := h.stresses.GetStress(c.Context(), identity, c.Params("name"))
	if err != nil {
		return err
	}

	gripe, err := h.stresses.PickRandomGripe(stress)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.GripeResponse{Number: gripe.Number, Text: gripe.Text},
	})
}
