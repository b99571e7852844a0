package http

import (
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/usecase"
	"github.com/furluv/furluv/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// FeedController serves the signed-in viewer's feed. Every handler answers the
// rendered feed so clients can replace what they display in one step.
type FeedController struct {
	FeedUsecase *usecase.FeedUsecase
	Log         *zap.Logger
	Config      *koanf.Koanf
}

func NewFeedController(feedUsecase *usecase.FeedUsecase, zap *zap.Logger, koanf *koanf.Koanf) *FeedController {
	return &FeedController{
		FeedUsecase: feedUsecase,
		Log:         zap,
		Config:      koanf,
	}
}

func (controller FeedController) GetFeed(ctx *fiber.Ctx) error {
	response, err := controller.FeedUsecase.GetFeed(ctx.UserContext(), ownerIdFromLocals(ctx))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller FeedController) Refresh(ctx *fiber.Ctx) error {
	response, err := controller.FeedUsecase.Refresh(ctx.UserContext(), ownerIdFromLocals(ctx))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller FeedController) CreatePost(ctx *fiber.Ctx) error {
	var payload model.FeedPostCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.FeedUsecase.CreatePost(ctx.UserContext(), ownerIdFromLocals(ctx), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller FeedController) DeletePost(ctx *fiber.Ctx) error {
	response, err := controller.FeedUsecase.DeletePost(ctx.UserContext(), ownerIdFromLocals(ctx), ctx.Params("postId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller FeedController) ToggleLike(ctx *fiber.Ctx) error {
	response, err := controller.FeedUsecase.ToggleLike(ctx.UserContext(), ownerIdFromLocals(ctx), ctx.Params("postId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller FeedController) ToggleComments(ctx *fiber.Ctx) error {
	response, err := controller.FeedUsecase.ToggleComments(ctx.UserContext(), ownerIdFromLocals(ctx), ctx.Params("postId"))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller FeedController) AddComment(ctx *fiber.Ctx) error {
	var payload model.CommentCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.FeedUsecase.AddComment(ctx.UserContext(), ownerIdFromLocals(ctx), ctx.Params("postId"), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller FeedController) React(ctx *fiber.Ctx) error {
	var payload model.ReactionCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	response, err := controller.FeedUsecase.React(ctx.UserContext(), ownerIdFromLocals(ctx), ctx.Params("postId"), ctx.Params("commentId"), payload)
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller FeedController) Reset(ctx *fiber.Ctx) error {
	err := controller.FeedUsecase.Reset(ctx.UserContext(), ownerIdFromLocals(ctx))
	if err != nil {
		return sendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller FeedController) GetReactions(ctx *fiber.Ctx) error {
	return util.SendSuccessResponseWithData(ctx, fiber.Map{
		"reactions": controller.FeedUsecase.Reactions(),
	})
}
