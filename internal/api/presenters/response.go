package presenters

import (
	"Recipe-Website/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes the error envelope. Internal errors are logged and
// replaced by a generic message.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	if statusCode >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %s: %v", c.Method(), c.Path(), message, err)
		detail = domain.MessageInternalServerError
	}
	return c.Status(statusCode).JSON(Response{
		Status:  false,
		Message: message,
		Error:   detail,
	})
}

// FailedResponse maps err to its status code and writes the error envelope.
func FailedResponse(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFromError(err), message, err)
}

func StatusFromError(err error) int {
	var fiberErr *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders errors returned from handlers and middleware through
// the same envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := StatusFromError(err)
	message := domain.MessageFailedProcessRequest
	if status == fiber.StatusNotFound {
		message = "resource not found"
	}
	return ErrorResponse(c, status, message, err)
}
