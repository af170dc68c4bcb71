package handlers

import (
	"equiptrack/internal/dto"
	"equiptrack/internal/models"
	"equiptrack/internal/repository"
	"equiptrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecommendationHandler struct {
	recService *service.RecommendationService
	logger     *zap.Logger
}

func NewRecommendationHandler(recService *service.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
		logger:     logger,
	}
}

// ListRecommendations godoc
// @Summary List stored recommendations
// @Description Newest batch first, highest staff-hour savings first within a batch.
// @Tags recommendations
// @Produce json
// @Param type query string false "placement, purchase or maintenance"
// @Param device_id query string false "Device ID"
// @Success 200 {array} dto.RecommendationResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/recommendations [get]
func (h *RecommendationHandler) ListRecommendations(c *fiber.Ctx) error {
	recType := models.RecommendationType(c.Query("type"))
	switch recType {
	case "", models.RecommendationPlacement, models.RecommendationPurchase, models.RecommendationMaintenance:
	default:
		return errorResponse(c, fiber.StatusBadRequest, "Invalid recommendation type")
	}

	recs, err := h.recService.List(c.Context(), repository.RecommendationFilter{
		Type:     recType,
		DeviceID: c.Query("device_id"),
	})
	if err != nil {
		h.logger.Error("Failed to list recommendations", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list recommendations")
	}

	return c.JSON(dto.NewRecommendationList(recs))
}

// Generate godoc
// @Summary Generate recommendations
// @Description Recompute placement, purchase and maintenance recommendations from stored movements, replacing the previous batch.
// @Tags recommendations
// @Produce json
// @Success 200 {object} dto.GenerateResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/recommendations/generate [post]
func (h *RecommendationHandler) Generate(c *fiber.Ctx) error {
	res, err := h.recService.Generate(c.Context())
	if err != nil {
		h.logger.Error("Failed to generate recommendations", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to generate recommendations")
	}

	recs := dto.NewRecommendationList(res.Recommendations)
	return c.JSON(dto.GenerateResponse{
		Declined:        res.Declined,
		Reason:          res.Reason,
		Count:           len(recs),
		ByType:          res.ByType,
		SkippedDevices:  res.SkippedDevices,
		Recommendations: recs,
	})
}

// Apply godoc
// @Summary Apply a recommendation
// @Description Carry out one recommendation against device state and remove it.
// @Tags recommendations
// @Produce json
// @Param id path string true "Recommendation ID"
// @Success 200 {object} dto.ApplyResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/recommendations/{id}/apply [post]
func (h *RecommendationHandler) Apply(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid recommendation ID")
	}

	res, err := h.recService.Apply(c.Context(), id)
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to apply recommendation", zap.String("id", id.String()), zap.Error(err))
			return errorResponse(c, status, "Failed to apply recommendation")
		}
		return errorResponse(c, status, err.Error())
	}

	out := dto.ApplyResponse{Recommendation: dto.NewRecommendationResponse(res.Recommendation)}
	if res.Device != nil {
		out.Device = dto.NewDeviceResponse(res.Device)
	}
	return c.JSON(out)
}

// ApplyAll godoc
// @Summary Apply every stored recommendation
// @Tags recommendations
// @Produce json
// @Success 200 {object} dto.ApplyAllResponse
// @Router /api/v1/recommendations/apply-all [post]
func (h *RecommendationHandler) ApplyAll(c *fiber.Ctx) error {
	res, err := h.recService.ApplyAll(c.Context())
	if err != nil {
		h.logger.Error("Failed to apply recommendations", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to apply recommendations")
	}

	return c.JSON(dto.ApplyAllResponse{
		ImplementedCount: res.ImplementedCount,
		NumRemoved:       res.NumRemoved,
		Failed:           res.Failed,
	})
}

// Reset godoc
// @Summary Remove all data
// @Description Delete every device, location, movement, recommendation and import record.
// @Tags admin
// @Success 204
// @Router /api/v1/data [delete]
func (h *RecommendationHandler) Reset(c *fiber.Ctx) error {
	if err := h.recService.Reset(c.Context()); err != nil {
		h.logger.Error("Failed to reset data", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to reset data")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
