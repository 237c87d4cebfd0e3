// Package web provides HTTP handlers and REST API endpoints for course management.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dukex/rocklms/pkg/models"
	"github.com/dukex/rocklms/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	courseService *services.Course
	validator     *validator.Validate
	logger        *slog.Logger
}

func NewAPIHandlers(
	courseService *services.Course,
	validator *validator.Validate,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		courseService: courseService,
		validator:     validator,
		logger:        logger,
	}
}

// Register mounts the course routes on router.
func (h *APIHandlers) Register(router fiber.Router) {
	c := router.Group("/courses")
	c.Get("/", h.GetCourses)
	c.Post("/", h.CreateCourse)
	c.Get("/:id", h.GetCourse)
	c.Patch("/:id", h.UpdateCourse)
	c.Put("/:id", h.UpdateCourse)
	c.Delete("/:id", h.DeleteCourse)
	c.Post("/:id/publish", h.PublishCourse)
	c.Post("/:id/archive", h.ArchiveCourse)
}

func (h *APIHandlers) GetCourses(c fiber.Ctx) error {
	var filter *models.CourseStatus

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := models.ParseCourseStatus(statusStr)
		if err != nil {
			return badRequest(c, "Invalid query parameters: "+err.Error())
		}

		filter = &status
	}

	courses, err := h.courseService.List(c.Context(), filter)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(courses)
}

func (h *APIHandlers) GetCourse(c fiber.Ctx) error {
	course, err := h.courseService.FetchByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(course)
}

func (h *APIHandlers) CreateCourse(c fiber.Ctx) error {
	if err := validateCourseBody(c.Body()); err != nil {
		return badRequest(c, err.Error())
	}

	var req CreateCourseRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.courseService.Create(c.Context(), req.Title, req.Description, req.Duration)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateCourse(c fiber.Ctx) error {
	if err := validateCourseBody(c.Body()); err != nil {
		return badRequest(c, err.Error())
	}

	var req UpdateCourseRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.courseService.Update(c.Context(), c.Params("id"), models.CourseChanges{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
	})
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteCourse(c fiber.Ctx) error {
	err := h.courseService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) PublishCourse(c fiber.Ctx) error {
	published, err := h.courseService.Publish(c.Context(), c.Params("id"))
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(published)
}

func (h *APIHandlers) ArchiveCourse(c fiber.Ctx) error {
	archived, err := h.courseService.Archive(c.Context(), c.Params("id"))
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(archived)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.courseService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "RockLMS API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "RockLMS API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) serviceError(c fiber.Ctx, err error) error {
	if !services.IsNotFound(err) && !services.IsInvalidState(err) {
		h.logger.ErrorContext(c.Context(), "Course request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}

	return handleServiceError(c, err)
}
