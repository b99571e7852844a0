package http

import (
	"github.com/furluv/furluv/internal/middleware"
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// sendError answers validation errors with the status their code maps to and
// logs everything else as an internal failure on the request's trace logger.
func sendError(ctx *fiber.Ctx, log *zap.Logger, err error) error {
	if validationErr, ok := model.AsValidationError(err); ok {
		return util.SendValidationError(ctx, validationErr)
	}

	return util.SendErrorResponseInternalServer(ctx, middleware.GetLoggerFromContext(ctx, log), err)
}

func ownerIdFromLocals(ctx *fiber.Ctx) int64 {
	ownerId, _ := ctx.Locals("ownerId").(int64)
	return ownerId
}
