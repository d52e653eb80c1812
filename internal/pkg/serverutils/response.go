package serverutils

import (
	"errors"

	"placement-mentor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ResponseEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) ResponseEnvelope {
	return ResponseEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string) ResponseEnvelope {
	return ResponseEnvelope{
		Success: false,
		Message: message,
	}
}

// ErrorHandlerMiddleware maps the service failure taxonomy onto HTTP
// statuses. Unrecognized errors stay opaque 500s.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		switch {
		case errors.Is(err, service.ErrStoryNotFound),
			errors.Is(err, service.ErrSessionNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrSlugTaken):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrChatBusy):
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrEmptyChat):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrAssetUpload),
			errors.Is(err, service.ErrSummaryWrite),
			errors.Is(err, service.ErrDetailWrite):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(err.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
	}
}
