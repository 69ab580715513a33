package handler

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/middleware"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/utils"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func studentKeyParam(c *fiber.Ctx) (string, bool) {
	key, err := url.PathUnescape(c.Params("key"))
	if err != nil {
		key = c.Params("key")
	}
	key = strings.TrimSpace(key)
	return key, key != ""
}

func actorFromContext(c *fiber.Ctx) service.Actor {
	return middleware.ActorFromContext(c)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func markDegraded(c *fiber.Ctx, degraded bool) {
	if degraded {
		c.Set(middleware.DegradedHeader, "true")
	}
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func validationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[strings.ToLower(fieldErr.Field())] = fieldErr.Tag()
	}
	return details
}

// respondError maps service errors to HTTP responses; anything unknown is
// logged and reported as a 500 with fallback as the message.
func respondError(c *fiber.Ctx, logger *zerolog.Logger, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(err))
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidPassphrase):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrStudentExists),
		errors.Is(err, service.ErrStudentFrozen),
		errors.Is(err, service.ErrInvalidTransition):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, sheets.ErrRevisionConflict):
		logger.Warn().Err(err).Msg("write rejected by revision check")
		return utils.SendError(c, fiber.StatusConflict, "data changed since it was read, reload and retry")
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidScheduleCell):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTableUnavailable):
		logger.Warn().Err(err).Msg("write refused, store unavailable")
		return utils.SendError(c, fiber.StatusServiceUnavailable, "data store unavailable, try again shortly")
	}

	logger.Error().Err(err).Msg(fallback)
	return utils.SendError(c, fiber.StatusInternalServerError, fallback)
}
