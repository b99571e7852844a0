package util

import (
	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/model"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ReadRequestBody(ctx *fiber.Ctx, result interface{}) error {
	err := ctx.BodyParser(result)
	if err != nil {
		return &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
			Param:   "body",
		}
	}
	return nil
}

func SendSuccessResponseNoData(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "OK",
	})
}

func SendSuccessResponseWithData(ctx *fiber.Ctx, data interface{}) error {
	return ctx.Status(fiber.StatusOK).JSON(data)
}

func SendCreatedResponseWithData(ctx *fiber.Ctx, data interface{}) error {
	return ctx.Status(fiber.StatusCreated).JSON(data)
}

func SendErrorResponse(ctx *fiber.Ctx, error error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": error,
	})
}

func SendErrorResponseUnauthorized(ctx *fiber.Ctx, error error) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": error,
	})
}

func SendErrorResponseNotFound(ctx *fiber.Ctx, error error) error {
	return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": error,
	})
}

func SendErrorResponseConflict(ctx *fiber.Ctx, error error) error {
	return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error": error,
	})
}

func SendErrorResponseTooManyRequests(ctx *fiber.Ctx, error error) error {
	return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"error": error,
	})
}

// SendValidationError picks the status from the error code.
func SendValidationError(ctx *fiber.Ctx, err *model.ValidationError) error {
	switch err.Code {
	case constant.ERR_NOT_FOUND_ERROR:
		return SendErrorResponseNotFound(ctx, err)
	case constant.ERR_UNATHORIZED_ERROR:
		return SendErrorResponseUnauthorized(ctx, err)
	case constant.ERR_CONFLICT_ERROR:
		return SendErrorResponseConflict(ctx, err)
	case constant.ERR_TOO_MANY_REQUESTS_ERROR:
		return SendErrorResponseTooManyRequests(ctx, err)
	default:
		return SendErrorResponse(ctx, err)
	}
}

func SendErrorResponseInternalServer(ctx *fiber.Ctx, log *zap.Logger, error error) error {
	log.Error("internal server error occured", zap.Error(error))
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
			"message": constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE,
		},
	})
}
