package http

import (
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/usecase"
	"github.com/furluv/furluv/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type ListingController struct {
	ListingUsecase *usecase.ListingUsecase
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewListingController(listingUsecase *usecase.ListingUsecase, zap *zap.Logger, koanf *koanf.Koanf) *ListingController {
	return &ListingController{
		ListingUsecase: listingUsecase,
		Log:            zap,
		Config:         koanf,
	}
}

func (controller ListingController) GetListings(ctx *fiber.Ctx) error {
	response, err := controller.ListingUsecase.GetListings(ctx, ctx.Query("q"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ListingController) GetListing(ctx *fiber.Ctx) error {
	response, err := controller.ListingUsecase.GetListing(ctx, ctx.Params("listingId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ListingController) CreateListing(ctx *fiber.Ctx) error {
	var payload model.PetListingRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.ListingUsecase.CreateListing(ctx, payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller ListingController) UpdateListing(ctx *fiber.Ctx) error {
	var payload model.PetListingRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.ListingUsecase.UpdateListing(ctx, ctx.Params("listingId"), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ListingController) DeleteListing(ctx *fiber.Ctx) error {
	err := controller.ListingUsecase.DeleteListing(ctx, ctx.Params("listingId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
