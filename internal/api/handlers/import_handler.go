package handlers

import (
	"equiptrack/internal/dto"
	"equiptrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ImportHandler struct {
	importService *service.ImportService
	logger        *zap.Logger
}

func NewImportHandler(importService *service.ImportService, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		logger:        logger,
	}
}

// UploadCSV godoc
// @Summary Import a location event log
// @Description Upload a CSV export of device location events. Movements are built, deduplicated and stored; bad rows are reported.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV event log"
// @Param skip_seen formData bool false "Refuse files whose content was imported before"
// @Success 201 {object} dto.ImportResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/imports [post]
func (h *ImportHandler) UploadCSV(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "File is required")
	}

	src, err := file.Open()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Failed to open file")
	}
	defer src.Close()

	opts := service.ImportOptions{SkipSeen: c.FormValue("skip_seen") == "true"}
	res, err := h.importService.ImportCSV(c.Context(), file.Filename, src, opts)
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to import file", zap.String("file", file.Filename), zap.Error(err))
			return errorResponse(c, status, "Failed to import file")
		}
		return errorResponse(c, status, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// ImportRecords godoc
// @Summary Import location events as JSON
// @Description Import keyed event records (device, location, status, in, out).
// @Tags imports
// @Accept json
// @Produce json
// @Param request body dto.ImportRecordsRequest true "Event records"
// @Success 201 {object} dto.ImportResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/imports/records [post]
func (h *ImportHandler) ImportRecords(c *fiber.Ctx) error {
	var req dto.ImportRecordsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.Records) == 0 {
		return errorResponse(c, fiber.StatusBadRequest, "Records are required")
	}

	res, err := h.importService.ImportRecords(c.Context(), "api", req.Records)
	if err != nil {
		h.logger.Error("Failed to import records", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to import records")
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// ListImports godoc
// @Summary List import runs
// @Tags imports
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Success 200 {array} dto.ImportRunResponse
// @Router /api/v1/imports [get]
func (h *ImportHandler) ListImports(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 0 {
		limit = 0
	}

	runs, err := h.importService.ListImports(c.Context(), uint64(limit))
	if err != nil {
		h.logger.Error("Failed to list imports", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list imports")
	}

	out := make([]dto.ImportRunResponse, len(runs))
	for i, run := range runs {
		out[i] = dto.NewImportRunResponse(run)
	}
	return c.JSON(out)
}
