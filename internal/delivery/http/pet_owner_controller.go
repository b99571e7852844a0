package http

import (
	"strconv"

	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/usecase"
	"github.com/furluv/furluv/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type PetOwnerController struct {
	PetOwnerUsecase *usecase.PetOwnerUsecase
	Log             *zap.Logger
	Config          *koanf.Koanf
}

func NewPetOwnerController(petOwnerUsecase *usecase.PetOwnerUsecase, zap *zap.Logger, koanf *koanf.Koanf) *PetOwnerController {
	return &PetOwnerController{
		PetOwnerUsecase: petOwnerUsecase,
		Log:             zap,
		Config:          koanf,
	}
}

func (controller PetOwnerController) Register(ctx *fiber.Ctx) error {
	var payload model.PetOwnerRegisterRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.PetOwnerUsecase.Register(ctx, payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller PetOwnerController) Login(ctx *fiber.Ctx) error {
	var payload model.PetOwnerLoginRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.PetOwnerUsecase.Login(ctx, payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PetOwnerController) SearchPetOwners(ctx *fiber.Ctx) error {
	response, err := controller.PetOwnerUsecase.SearchPetOwners(ctx, ctx.Query("name"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PetOwnerController) GetPetOwner(ctx *fiber.Ctx) error {
	response, err := controller.PetOwnerUsecase.GetPetOwner(ctx, ctx.Params("ownerId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PetOwnerController) UpdatePetOwner(ctx *fiber.Ctx) error {
	var payload model.PetOwnerUpdateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.PetOwnerUsecase.UpdatePetOwner(ctx, ownerIdFromLocals(ctx), ctx.Params("ownerId"), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PetOwnerController) GetMe(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	response, err := controller.PetOwnerUsecase.GetPetOwner(ctx, strconv.FormatInt(ownerId, 10))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PetOwnerController) Logout(ctx *fiber.Ctx) error {
	err := controller.PetOwnerUsecase.Logout(ctx, ownerIdFromLocals(ctx))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
