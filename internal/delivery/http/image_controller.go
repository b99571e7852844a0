package http

import (
	"github.com/furluv/furluv/internal/usecase"
	"github.com/furluv/furluv/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type ImageController struct {
	ImageUsecase *usecase.ImageUsecase
	Log          *zap.Logger
	Config       *koanf.Koanf
}

func NewImageController(imageUsecase *usecase.ImageUsecase, zap *zap.Logger, koanf *koanf.Koanf) *ImageController {
	return &ImageController{
		ImageUsecase: imageUsecase,
		Log:          zap,
		Config:       koanf,
	}
}

func (controller ImageController) UploadImage(ctx *fiber.Ctx) error {
	response, err := controller.ImageUsecase.UploadImage(ctx)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}
