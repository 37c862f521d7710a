package serverutils

import (
	"errors"

	"subscription-be/internal/pkg/apperror"
	"subscription-be/internal/pkg/logger"
	"subscription-be/pkg/billing"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware recovers panics and maps typed errors escaping
// the handlers to HTTP codes. Internal detail never reaches the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("http", "panic recovered", map[string]interface{}{
					"panic": r,
					"path":  ctx.Path(),
				})
				err = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse("internal server error"))
			}
		}()

		err = ctx.Next()
		if err == nil {
			return nil
		}

		status, message := mapError(err)
		if status == fiber.StatusInternalServerError {
			log.Error("http", "request failed", map[string]interface{}{
				"error": err.Error(),
				"path":  ctx.Path(),
			})
		}
		return ctx.Status(status).JSON(ErrorResponse(message))
	}
}

func mapError(err error) (int, string) {
	var ve *apperror.ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest, ve.Message
	}
	var nf *apperror.NotFoundError
	if errors.As(err, &nf) {
		return fiber.StatusNotFound, nf.Error()
	}
	var cf *apperror.ConflictError
	if errors.As(err, &cf) {
		return fiber.StatusConflict, cf.Message
	}
	if errors.Is(err, billing.ErrInvalidSignature) {
		return fiber.StatusBadRequest, "invalid signature"
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}
	return fiber.StatusInternalServerError, "internal server error"
}
