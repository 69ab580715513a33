package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/middleware"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/utils"
)

// CourtHandler serves the court panel and the lesson buttons.
type CourtHandler struct {
	court    service.CourtService
	students service.StudentService
	logger   zerolog.Logger
}

// NewCourtHandler constructs the handler.
func NewCourtHandler(court service.CourtService, students service.StudentService, logger zerolog.Logger) *CourtHandler {
	return &CourtHandler{
		court:    court,
		students: students,
		logger:   logger.With().Str("component", "court_handler").Logger(),
	}
}

// Register attaches routes.
func (h *CourtHandler) Register(router fiber.Router) {
	router.Get("", h.panel)

	admin := middleware.RequireRole(service.RoleAdmin)
	router.Post("/:key/consume", admin, h.consume)
	router.Post("/:key/restore", admin, h.restore)
}

func (h *CourtHandler) panel(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	panel, err := h.court.Panel(c.UserContext())
	if err != nil {
		return respondError(c, logger, err, "failed to load court panel")
	}

	markDegraded(c, panel.Degraded)
	return utils.SendSuccess(c, "court panel retrieved", panel)
}

func (h *CourtHandler) consume(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	key, ok := studentKeyParam(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "student key is required")
	}

	result, err := h.students.ConsumeLesson(c.UserContext(), actorFromContext(c), key)
	if err != nil {
		return respondError(c, logger, err, "failed to consume lesson")
	}

	message := "lesson consumed"
	if !result.Consumed {
		message = "no lessons remaining"
	}
	return utils.SendSuccess(c, message, result)
}

func (h *CourtHandler) restore(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	key, ok := studentKeyParam(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "student key is required")
	}

	student, err := h.students.RestoreLesson(c.UserContext(), actorFromContext(c), key)
	if err != nil {
		return respondError(c, logger, err, "failed to restore lesson")
	}
	return utils.SendSuccess(c, "lesson restored", student)
}
