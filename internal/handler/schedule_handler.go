package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/middleware"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/utils"
)

// ScheduleHandler serves the weekly schedule.
type ScheduleHandler struct {
	service service.ScheduleService
	logger  zerolog.Logger
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(service service.ScheduleService, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		logger:  logger.With().Str("component", "schedule_handler").Logger(),
	}
}

// Register attaches routes.
func (h *ScheduleHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Patch("/cell", middleware.RequireRole(service.RoleAdmin), h.updateCell)
	router.Put("", middleware.RequireRole(service.RoleAdmin), h.replace)
}

func (h *ScheduleHandler) get(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	schedule, err := h.service.Get(c.UserContext())
	if err != nil {
		return respondError(c, logger, err, "failed to load schedule")
	}

	markDegraded(c, schedule.Degraded)
	return utils.SendSuccess(c, "schedule retrieved", schedule)
}

func (h *ScheduleHandler) updateCell(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	var payload dto.ScheduleCellRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	schedule, err := h.service.UpdateCell(c.UserContext(), actorFromContext(c), payload)
	if err != nil {
		return respondError(c, logger, err, "failed to update schedule")
	}
	return utils.SendSuccess(c, "schedule updated", schedule)
}

func (h *ScheduleHandler) replace(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	var payload dto.ScheduleReplaceRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	schedule, err := h.service.Replace(c.UserContext(), actorFromContext(c), payload)
	if err != nil {
		return respondError(c, logger, err, "failed to replace schedule")
	}
	return utils.SendSuccess(c, "schedule replaced", schedule)
}
