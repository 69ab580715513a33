package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/utils"
)

// CashboxHandler exposes the ledger. Routes are mounted behind the admin gate.
type CashboxHandler struct {
	service service.LedgerService
	logger  zerolog.Logger
}

// NewCashboxHandler constructs the handler.
func NewCashboxHandler(service service.LedgerService, logger zerolog.Logger) *CashboxHandler {
	return &CashboxHandler{
		service: service,
		logger:  logger.With().Str("component", "cashbox_handler").Logger(),
	}
}

// Register attaches routes.
func (h *CashboxHandler) Register(router fiber.Router) {
	router.Get("", h.summary)
	router.Post("/entries", h.addEntry)
}

func (h *CashboxHandler) summary(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	cashbox, err := h.service.Cashbox(c.UserContext(), actorFromContext(c))
	if err != nil {
		return respondError(c, logger, err, "failed to load cashbox")
	}

	markDegraded(c, cashbox.Degraded)
	return utils.SendSuccess(c, "cashbox retrieved", cashbox)
}

func (h *CashboxHandler) addEntry(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	var payload dto.LedgerEntryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry, err := h.service.AddEntry(c.UserContext(), actorFromContext(c), payload)
	if err != nil {
		return respondError(c, logger, err, "failed to add ledger entry")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "ledger entry added", entry)
}
