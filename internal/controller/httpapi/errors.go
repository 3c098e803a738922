package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/megaschedule/megaschedule/internal/apperr"
)

var codeStatus = map[apperr.Code]int{
	apperr.CodeUnauthenticated: fiber.StatusUnauthorized,
	apperr.CodeForbidden:       fiber.StatusForbidden,
	apperr.CodeNotFound:        fiber.StatusNotFound,
	apperr.CodeInvalidRange:    fiber.StatusBadRequest,
	apperr.CodeSlotUnavailable: fiber.StatusBadRequest,
	apperr.CodeAlreadyAccepted: fiber.StatusConflict,
	apperr.CodeHasAssignments:  fiber.StatusBadRequest,
	apperr.CodeInvalidRole:     fiber.StatusBadRequest,
	apperr.CodeConflict:        fiber.StatusConflict,
}

type errorBody struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

// errorHandler turns any error escaping a handler into the stable JSON shape
// {"error":{"code":...,"message":...}}.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status, ok := codeStatus[appErr.Code]
		if !ok {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(fiber.Map{
			"error": errorBody{Code: appErr.Code, Message: appErr.Message},
		})
	}

	var valErr validator.ValidationErrors
	if errors.As(err, &valErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errorBody{Code: "validation_failed", Message: valErr.Error()},
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": errorBody{Code: apperr.CodeInternal, Message: fiberErr.Message},
		})
	}

	s.logger.Error("unhandled error", zap.Error(err), zap.String("path", c.Path()))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": errorBody{Code: apperr.CodeInternal, Message: "internal server error"},
	})
}
