package http

import (
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/usecase"
	"github.com/furluv/furluv/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type PostController struct {
	PostUsecase *usecase.PostUsecase
	Log         *zap.Logger
	Config      *koanf.Koanf
}

func NewPostController(postUsecase *usecase.PostUsecase, zap *zap.Logger, koanf *koanf.Koanf) *PostController {
	return &PostController{
		PostUsecase: postUsecase,
		Log:         zap,
		Config:      koanf,
	}
}

func (controller PostController) GetPosts(ctx *fiber.Ctx) error {
	response, err := controller.PostUsecase.GetPosts(ctx)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PostController) GetPost(ctx *fiber.Ctx) error {
	response, err := controller.PostUsecase.GetPost(ctx, ctx.Params("postId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PostController) CreatePost(ctx *fiber.Ctx) error {
	var payload model.PostCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.PostUsecase.CreatePost(ctx, payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller PostController) UpdatePost(ctx *fiber.Ctx) error {
	var payload model.PostUpdateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.PostUsecase.UpdatePost(ctx, ctx.Params("postId"), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller PostController) DeletePost(ctx *fiber.Ctx) error {
	err := controller.PostUsecase.DeletePost(ctx, ctx.Params("postId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
