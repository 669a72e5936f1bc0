package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/socialdash/internal/repository"
	"github.com/maheshrc27/socialdash/internal/service"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

// statusFromError maps the service error taxonomy onto HTTP: caller
// mistakes are 4xx, upstream platform failures and everything else 5xx.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrDuplicateAccount):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrTokenInvalid), errors.Is(err, service.ErrTokenRefreshFailed):
		return fiber.StatusBadRequest
	}

	var graphErr *service.GraphError
	if errors.As(err, &graphErr) {
		return fiber.StatusBadGateway
	}
	if errors.Is(err, service.ErrMissingID) {
		return fiber.StatusBadGateway
	}

	return fiber.StatusInternalServerError
}

func errorJSON(c *fiber.Ctx, err error, message string) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{
		"error": message,
	})
}

// AppErrorHandler is the app-level fallback for errors that escape the
// handlers, such as the ones returned by middleware. Fiber's own errors
// keep their status; anything else is a 500.
func AppErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
