package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gripe-service/internal/api/dto"
	"github.com/spec-kit/gripe-service/internal/auth"
	"github.com/spec-kit/gripe-service/internal/service"
	apperrors "github.com/spec-kit/gripe-service/pkg/util/errorutil"
)

// RewardHandler serves the happy page data: the user's stresses plus a
// cheerful image from the external search API.
type RewardHandler struct {
	stresses *service.StressService
	rewards  *service.RewardService
}

// NewRewardHandler constructs handler.
func NewRewardHandler(stressService *service.StressService, rewardService *service.RewardService) *RewardHandler {
	return &RewardHandler{stresses: stressService, rewards: rewardService}
}

// Happy handles GET /happy. A failed image fetch is not an error; the
// response simply omits the image URL.
func (h *RewardHandler) Happy(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated()
	}

	stresses, err := h.stresses.ListStresses(c.Context(), identity)
	if err != nil {
		return err
	}

	imageURL := h.rewards.FetchCheerfulImage(c.Context())
	return c.JSON(fiber.Map{
		"data": dto.HappyResponse{
			Stresses: dto.FromStresses(stresses),
			ImageURL: imageURL,
		},
	})
}
