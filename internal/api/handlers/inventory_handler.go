package handlers

import (
	"bytes"

	"equiptrack/internal/dto"
	"equiptrack/internal/repository"
	"equiptrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	inventory *service.InventoryService
	logger    *zap.Logger
}

func NewInventoryHandler(inventory *service.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		logger:    logger,
	}
}

// ListDevices godoc
// @Summary List devices
// @Tags inventory
// @Produce json
// @Param type query string false "Device type"
// @Success 200 {array} dto.DeviceResponse
// @Router /api/v1/devices [get]
func (h *InventoryHandler) ListDevices(c *fiber.Ctx) error {
	devices, err := h.inventory.Devices(c.Context(), repository.DeviceFilter{
		DeviceType: c.Query("type"),
	})
	if err != nil {
		h.logger.Error("Failed to list devices", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list devices")
	}

	out := make([]*dto.DeviceResponse, len(devices))
	for i, d := range devices {
		out[i] = dto.NewDeviceResponse(d)
	}
	return c.JSON(out)
}

// GetDevice godoc
// @Summary Get one device
// @Tags inventory
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} dto.DeviceResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/devices/{id} [get]
func (h *InventoryHandler) GetDevice(c *fiber.Ctx) error {
	devices, err := h.inventory.Devices(c.Context(), repository.DeviceFilter{DeviceID: c.Params("id")})
	if err != nil {
		h.logger.Error("Failed to get device", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to get device")
	}
	if len(devices) == 0 {
		return errorResponse(c, fiber.StatusNotFound, "Device not found")
	}
	return c.JSON(dto.NewDeviceResponse(devices[0]))
}

// ListLocations godoc
// @Summary List locations
// @Tags inventory
// @Produce json
// @Param known query bool false "Only rooms present in the location graph"
// @Success 200 {array} dto.LocationResponse
// @Router /api/v1/locations [get]
func (h *InventoryHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.inventory.Locations(c.Context(), repository.LocationFilter{
		KnownOnly: c.QueryBool("known", false),
	})
	if err != nil {
		h.logger.Error("Failed to list locations", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list locations")
	}

	out := make([]dto.LocationResponse, len(locations))
	for i, loc := range locations {
		out[i] = dto.LocationResponse{
			ID:            loc.ID,
			DisplayName:   loc.DisplayName,
			IsStorageType: loc.IsStorageType,
			IsKnown:       loc.IsKnown,
		}
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary List movements, newest first
// @Tags inventory
// @Produce json
// @Param device_id query string false "Device ID"
// @Param unknown query bool false "Only movements touching an unknown location"
// @Param limit query int false "Limit" default(100)
// @Success 200 {array} dto.MovementResponse
// @Router /api/v1/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit < 0 {
		limit = 0
	}

	movements, err := h.inventory.Movements(c.Context(), repository.MovementFilter{
		DeviceID:    c.Query("device_id"),
		UnknownOnly: c.QueryBool("unknown", false),
		Limit:       uint64(limit),
	})
	if err != nil {
		h.logger.Error("Failed to list movements", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list movements")
	}

	out := make([]dto.MovementResponse, len(movements))
	for i, m := range movements {
		out[i] = dto.NewMovementResponse(m)
	}
	return c.JSON(out)
}

// ExportUnknown godoc
// @Summary Export movements with unknown locations as CSV
// @Tags inventory
// @Produce text/csv
// @Success 200 {string} string
// @Router /api/v1/movements/unknown.csv [get]
func (h *InventoryHandler) ExportUnknown(c *fiber.Ctx) error {
	var buf bytes.Buffer
	n, err := h.inventory.ExportUnknown(c.Context(), &buf)
	if err != nil {
		h.logger.Error("Failed to export unknown movements", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to export movements")
	}

	h.logger.Info("Unknown-location movements exported", zap.Int("count", n))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="unknown_locations.csv"`)
	return c.Send(buf.Bytes())
}
