package integrity

import (
	"errors"

	"raidtrack/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/poller", h.HandlePollerCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Checks the database schema, the snapshot bucket and the export poller.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]any)

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = errorEntry(err)
	} else {
		report["schema"] = schema
	}

	if st, err := h.service.CheckStorage(c.Context()); err != nil {
		report["storage"] = errorEntry(err)
	} else {
		report["storage"] = st
	}

	if poller, err := h.service.CheckPoller(); err != nil {
		report["poller"] = errorEntry(err)
	} else {
		report["poller"] = poller
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks the raid tables.
// @Summary Check Database Schema
// @Description Checks that the raid, signup and profile tables match the models.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Check Disabled"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return failure(c, err)
	}
	if !report.Matched {
		l.Warn("Schema drift detected", zap.Strings("errors", report.Errors))
	}
	return c.JSON(report)
}

// HandleStorageCheck checks and optionally fixes the snapshot bucket.
// @Summary Check Snapshot Storage
// @Description Checks that the snapshot bucket exists. Optionally creates it.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} checks.StorageReport "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Check Disabled"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckStorage(c.Context())
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return failure(c, err)
	}

	if !report.Exists && fix {
		l.Info("Creating missing snapshot bucket", zap.String("bucket", report.Bucket))
		if err := h.service.FixStorage(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create bucket",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "fixed", "bucket": report.Bucket})
	}

	return c.JSON(report)
}

// HandlePollerCheck grades the export poller.
// @Summary Check Export Poller
// @Description Reports whether the export file is being polled and when it last changed.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.PollerReport "Poller Report"
// @Failure 503 {object} map[string]string "Check Disabled"
// @Router /integrity/poller [get]
func (h *Handler) HandlePollerCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckPoller()
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(report)
}

func failure(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, ErrCheckDisabled) {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func errorEntry(err error) fiber.Map {
	status := "error"
	if errors.Is(err, ErrCheckDisabled) {
		status = "disabled"
	}
	return fiber.Map{"status": status, "error": err.Error()}
}

