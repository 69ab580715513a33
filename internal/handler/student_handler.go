package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/middleware"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/utils"
)

// StudentHandler exposes the student roster and its commands.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches routes. Listing is public; everything else needs an admin session.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)

	admin := middleware.RequireRole(service.RoleAdmin)
	router.Post("", admin, h.create)
	router.Get("/:key", admin, h.get)
	router.Patch("/:key", admin, h.update)
	router.Delete("/:key", admin, h.delete)
	router.Post("/:key/package", admin, h.addPackage)
	router.Post("/:key/payment", admin, h.recordPayment)
	router.Post("/:key/status", admin, h.changeStatus)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	result, err := h.service.List(c.UserContext(), actorFromContext(c))
	if err != nil {
		return respondError(c, logger, err, "failed to list students")
	}

	markDegraded(c, result.Degraded)
	return utils.SendSuccess(c, "students retrieved", result)
}

func (h *StudentHandler) get(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	key, ok := studentKeyParam(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "student key is required")
	}

	detail, err := h.service.Get(c.UserContext(), actorFromContext(c), key)
	if err != nil {
		return respondError(c, logger, err, "failed to fetch student")
	}
	return utils.SendSuccess(c, "student retrieved", detail)
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.Create(c.UserContext(), actorFromContext(c), payload)
	if err != nil {
		return respondError(c, logger, err, "failed to create student")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student created", student)
}

func (h *StudentHandler) update(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	key, ok := studentKeyParam(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "student key is required")
	}

	var payload dto.StudentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.Update(c.UserContext(), actorFromContext(c), key, payload)
	if err != nil {
		return respondError(c, logger, err, "failed to update student")
	}
	return utils.SendSuccess(c, "student updated", student)
}

func (h *StudentHandler) delete(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	key, ok := studentKeyParam(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "student key is required")
	}

	if err := h.service.Delete(c.UserContext(), actorFromContext(c), key); err != nil {
		return respondError(c, logger, err, "failed to delete student")
	}
	return utils.SendSuccess(c, "student deleted", nil)
}

func (h *StudentHandler) addPackage(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	key, ok := studentKeyParam(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "student key is required")
	}

	var payload dto.PackageRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.AddPackage(c.UserContext(), actorFromContext(c), key, payload)
	if err != nil {
		return respondError(c, logger, err, "failed to add package")
	}
	return utils.SendSuccess(c, "package added", student)
}

func (h *StudentHandler) recordPayment(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	key, ok := studentKeyParam(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "student key is required")
	}

	var payload dto.PaymentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.RecordPayment(c.UserContext(), actorFromContext(c), key, payload)
	if err != nil {
		return respondError(c, logger, err, "failed to record payment")
	}
	return utils.SendSuccess(c, "payment recorded", student)
}

func (h *StudentHandler) changeStatus(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	key, ok := studentKeyParam(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "student key is required")
	}

	var payload dto.StatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.ChangeStatus(c.UserContext(), actorFromContext(c), key, payload)
	if err != nil {
		return respondError(c, logger, err, "failed to change status")
	}
	return utils.SendSuccess(c, "status changed", student)
}
