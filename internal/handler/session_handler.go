package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/utils"
)

// SessionHandler opens admin sessions.
type SessionHandler struct {
	service service.SessionService
	logger  zerolog.Logger
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(service service.SessionService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger.With().Str("component", "session_handler").Logger(),
	}
}

// Register attaches routes; limiter guards the passphrase check.
func (h *SessionHandler) Register(router fiber.Router, limiter fiber.Handler) {
	if limiter != nil {
		router.Post("", limiter, h.open)
		return
	}
	router.Post("", h.open)
}

func (h *SessionHandler) open(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	var payload dto.SessionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.service.Open(c.UserContext(), payload)
	if err != nil {
		return respondError(c, logger, err, "failed to open session")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "session opened", session)
}
