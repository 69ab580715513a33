package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/utils"
)

// HistoryHandler exposes the activity log. Routes are mounted behind the admin gate.
type HistoryHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewHistoryHandler constructs the handler.
func NewHistoryHandler(service service.ActivityService, logger zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		service: service,
		logger:  logger.With().Str("component", "history_handler").Logger(),
	}
}

// Register attaches routes.
func (h *HistoryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("/guest", h.guestLesson)
}

func (h *HistoryHandler) list(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	limit, err := parseQueryInt(c, "limit")
	if err != nil || limit < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	req := dto.HistoryRequest{Student: c.Query("student"), Limit: limit}
	history, err := h.service.History(c.UserContext(), actorFromContext(c), req)
	if err != nil {
		return respondError(c, logger, err, "failed to load history")
	}

	markDegraded(c, history.Degraded)
	return utils.OK(c, history.Entries, "history retrieved", fiber.Map{
		"total":    history.Total,
		"degraded": history.Degraded,
		"filters":  fiber.Map{"student": req.Student, "limit": req.Limit},
	})
}

func (h *HistoryHandler) guestLesson(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	var payload dto.GuestLessonRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry, err := h.service.RecordGuestLesson(c.UserContext(), actorFromContext(c), payload)
	if err != nil {
		return respondError(c, logger, err, "failed to record guest lesson")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "guest lesson recorded", entry)
}
