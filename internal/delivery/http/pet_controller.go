package http

import (
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/usecase"
	"github.com/furluv/furluv/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type PetController struct {
	PetUsecase *usecase.PetUsecase
	Log        *zap.Logger
	Config     *koanf.Koanf
}

func NewPetController(petUsecase *usecase.PetUsecase, zap *zap.Logger, koanf *koanf.Koanf) *PetController {
	return &PetController{
		PetUsecase: petUsecase,
		Log:        zap,
		Config:     koanf,
	}
}

func (controller PetController) GetPets(ctx *fiber.Ctx) error {
	response, err := controller.PetUsecase.GetPets(ctx)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PetController) GetPet(ctx *fiber.Ctx) error {
	response, err := controller.PetUsecase.GetPet(ctx, ctx.Params("petId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PetController) CreatePet(ctx *fiber.Ctx) error {
	var payload model.PetRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.PetUsecase.CreatePet(ctx, payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller PetController) UpdatePet(ctx *fiber.Ctx) error {
	var payload model.PetRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.PetUsecase.UpdatePet(ctx, ctx.Params("petId"), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}
