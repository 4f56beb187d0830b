package raid

import (
	"errors"

	"raidtrack/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for raids.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the raid routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/raids")
	group.Get("/:raidId", h.HandleGet)
	group.Post("/:raidId/refresh", h.HandleRefresh)
}

// HandleGet returns a stored raid.
// @Summary Get Raid
// @Description Returns the stored raid record, including artifact ids, and its signups in signup order.
// @Tags raids
// @Produce json
// @Param raidId path string true "Raid ID"
// @Success 200 {object} raid.Detail
// @Failure 404 {object} map[string]string "Raid not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /raids/{raidId} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	raidID := c.Params("raidId")

	detail, err := h.service.Get(c.Context(), raidID)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to load raid", zap.String("raid_id", raidID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(detail)
}

// HandleRefresh re-renders a raid's announcement.
// @Summary Refresh Raid Announcement
// @Description Re-renders the announcement from the stored record and roster. A deleted message is recreated.
// @Tags raids
// @Produce json
// @Param raidId path string true "Raid ID"
// @Success 200 {object} raid.Outcome
// @Failure 404 {object} map[string]string "Raid not found"
// @Failure 422 {object} map[string]string "Destination unresolved"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /raids/{raidId}/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	raidID := c.Params("raidId")

	outcome, err := h.service.Refresh(c.Context(), raidID)
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrDestinationUnresolved):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Raid refresh failed", zap.String("raid_id", raidID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Raid refreshed", zap.String("raid_id", raidID), zap.String("announcement", string(outcome.Announcement.Action)))
	return c.JSON(outcome)
}
