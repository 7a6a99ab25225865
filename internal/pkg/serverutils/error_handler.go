package serverutils

import (
	"errors"

	"hotel-booking-be/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// statusForKind maps the domain failure taxonomy onto HTTP statuses. The
// kind string itself is part of the response so clients never parse messages.
func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	case apperr.KindValidation, apperr.KindMissingCheckIn:
		return fiber.StatusBadRequest
	case apperr.KindPolicyViolation, apperr.KindAlreadyIssued, apperr.KindNoRefundDue:
		return fiber.StatusConflict
	case apperr.KindCapacityExceeded:
		return fiber.StatusConflict
	case apperr.KindPaymentIncomplete, apperr.KindPaymentMismatch:
		return fiber.StatusUnprocessableEntity
	case apperr.KindGatewayUnavailable:
		return fiber.StatusServiceUnavailable
	case apperr.KindGatewayFailure:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware converts errors bubbling out of handlers into a
// stable JSON shape. Domain errors keep their kind and meta; everything else
// becomes a 500 with a generic message.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			status := statusForKind(appErr.Kind)
			body := ErrorResponse(status, appErr.Message)
			body.Kind = string(appErr.Kind)
			body.Meta = appErr.Meta
			return ctx.Status(status).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
