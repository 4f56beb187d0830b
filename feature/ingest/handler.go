package ingest

import (
	"errors"

	"raidtrack/core/logger"
	"raidtrack/feature/raid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for ingestion.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the ingest routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/ingest")
	group.Get("/status", h.HandleStatus)
	group.Post("/rescan", h.HandleRescan)
	group.Post("/raid", h.HandleIngest)
	group.Get("/snapshots", h.HandleSnapshots)
}

// HandleStatus returns the poller status.
// @Summary Poller Status
// @Description Returns the last check, last change, last error and processed count of the file poller.
// @Tags ingest
// @Produce json
// @Success 200 {object} ingest.Status
// @Router /ingest/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleRescan forces a decode cycle.
// @Summary Rescan Export File
// @Description Forgets the file signature and runs a decode cycle immediately.
// @Tags ingest
// @Produce json
// @Success 200 {object} ingest.CycleReport
// @Failure 500 {object} map[string]string "Cycle failed"
// @Router /ingest/rescan [post]
func (h *Handler) HandleRescan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Rescan(c.Context())
	if err != nil {
		l.Error("Rescan failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	l.Info("Rescan finished", zap.String("cycle_id", report.CycleID), zap.Int("processed", report.Processed))
	return c.JSON(report)
}

// HandleIngest reconciles one raid posted as {scope|guildId, raid}.
// @Summary Ingest Raid
// @Description Reconciles a single raid envelope without going through the export file.
// @Tags ingest
// @Accept json
// @Produce json
// @Param envelope body ingest.Envelope true "Raid envelope"
// @Success 200 {object} raid.Outcome
// @Failure 400 {object} map[string]string "Invalid envelope"
// @Failure 422 {object} map[string]string "Destination unresolved"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ingest/raid [post]
func (h *Handler) HandleIngest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	outcome, err := h.service.Ingest(c.Context(), c.Body())
	var mappingErr *MappingError
	switch {
	case errors.Is(err, raid.ErrDestinationUnresolved):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &mappingErr), errors.Is(err, ErrUnsupportedShape), raid.IsValidationError(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("API ingest failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Raid ingested", zap.String("raid_id", outcome.RaidID), zap.String("scope", outcome.Scope))
	return c.JSON(outcome)
}

// HandleSnapshots lists archived exports.
// @Summary List Archived Exports
// @Description Lists export files archived to object storage, newest first.
// @Tags ingest
// @Produce json
// @Success 200 {array} ingest.Snapshot
// @Failure 404 {object} map[string]string "Archive disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ingest/snapshots [get]
func (h *Handler) HandleSnapshots(c *fiber.Ctx) error {
	snapshots, err := h.service.Snapshots(c.Context())
	if errors.Is(err, ErrArchiveDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list snapshots", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if snapshots == nil {
		snapshots = []Snapshot{}
	}
	return c.JSON(snapshots)
}
