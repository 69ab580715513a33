package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/utils"
)

// AdminHandler exposes maintenance commands.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Post("/reset", h.reset)
}

func (h *AdminHandler) reset(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	result, err := h.service.Reset(c.UserContext(), actorFromContext(c))
	if err != nil {
		return respondError(c, logger, err, "reset failed")
	}
	return utils.SendSuccess(c, "all tables reset", result)
}
