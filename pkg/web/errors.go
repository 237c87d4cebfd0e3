package web

import (
	"github.com/dukex/rocklms/pkg/services"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

// handleServiceError provides typed error handling for service layer errors.
func handleServiceError(c fiber.Ctx, err error) error {
	if reason, ok := services.InvalidStateReason(err); ok {
		problem := problems.NewStatusProblem(400).
			WithInstance(c.Path()).
			WithType("invalid_state").
			WithDetail(reason)

		return c.Status(fiber.StatusBadRequest).JSON(problem)
	}

	if services.IsNotFound(err) {
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("course_not_found").
			WithDetail("course not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)
	}

	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}
