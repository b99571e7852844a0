package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type PostUsecase struct {
	PostRepository *repository.PostRepository
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewPostUsecase(postRepository *repository.PostRepository, zap *zap.Logger, koanf *koanf.Koanf) *PostUsecase {
	return &PostUsecase{
		PostRepository: postRepository,
		Log:            zap,
		Config:         koanf,
	}
}

func (usecase *PostUsecase) GetPosts(ctx *fiber.Ctx) ([]model.PostResponse, error) {
	posts, err := usecase.PostRepository.GetPosts(ctx.Context())
	if err != nil {
		return nil, err
	}

	response := make([]model.PostResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, model.NewPostResponse(post))
	}

	return response, nil
}

func (usecase *PostUsecase) GetPost(ctx *fiber.Ctx, postIdParam string) (model.PostResponse, error) {
	postId, err := parseId(postIdParam, "postId")
	if err != nil {
		return model.PostResponse{}, err
	}

	post, err := usecase.PostRepository.GetPost(ctx.Context(), postId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PostResponse{}, postNotFound()
		}

		return model.PostResponse{}, err
	}

	return model.NewPostResponse(post), nil
}

func (usecase *PostUsecase) CreatePost(ctx *fiber.Ctx, payload model.PostCreateRequest) (model.PostResponse, error) {
	content := strings.TrimSpace(payload.Content)

	err := validatePostContent(content)
	if err != nil {
		return model.PostResponse{}, err
	}

	creatorName, err := normalizeCreatorName(payload.CreatorName)
	if err != nil {
		return model.PostResponse{}, err
	}

	now := time.Now().UTC()
	post := model.Post{
		Content:        content,
		ImageUrl:       model.ResolvedImage(payload.Image, payload.ImageUrl),
		CreatorName:    creatorName,
		CreateDatetime: now,
		UpdateDatetime: now,
	}

	post.Id, err = usecase.PostRepository.CreatePost(ctx.Context(), post)
	if err != nil {
		return model.PostResponse{}, err
	}

	usecase.Log.Debug("post created", zap.Int64("postId", post.Id))

	return model.NewPostResponse(post), nil
}

func (usecase *PostUsecase) UpdatePost(ctx *fiber.Ctx, postIdParam string, payload model.PostUpdateRequest) (model.PostResponse, error) {
	ctxContext := ctx.Context()

	postId, err := parseId(postIdParam, "postId")
	if err != nil {
		return model.PostResponse{}, err
	}

	content := strings.TrimSpace(payload.Content)

	err = validatePostContent(content)
	if err != nil {
		return model.PostResponse{}, err
	}

	creatorName, err := normalizeCreatorName(payload.CreatorName)
	if err != nil {
		return model.PostResponse{}, err
	}

	imageUrl := model.ResolvedImage(payload.Image, payload.ImageUrl)

	affected, err := usecase.PostRepository.UpdatePost(ctxContext, postId, content, imageUrl, creatorName, time.Now().UTC())
	if err != nil {
		return model.PostResponse{}, err
	}

	if affected == 0 {
		return model.PostResponse{}, postNotFound()
	}

	post, err := usecase.PostRepository.GetPost(ctxContext, postId)
	if err != nil {
		return model.PostResponse{}, err
	}

	return model.NewPostResponse(post), nil
}

func (usecase *PostUsecase) DeletePost(ctx *fiber.Ctx, postIdParam string) error {
	postId, err := parseId(postIdParam, "postId")
	if err != nil {
		return err
	}

	affected, err := usecase.PostRepository.DeletePost(ctx.Context(), postId)
	if err != nil {
		return err
	}

	if affected == 0 {
		return postNotFound()
	}

	return nil
}

func validatePostContent(content string) error {
	if content == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Post cannot be empty",
			Param:   "content",
		}
	} else if len(content) > constant.MAX_POST_CONTENT_LENGTH {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Post must be at most %d characters", constant.MAX_POST_CONTENT_LENGTH),
			Param:   "content",
		}
	}

	return nil
}

func normalizeCreatorName(creatorName *string) (*string, error) {
	if creatorName == nil {
		return nil, nil
	}

	name := strings.TrimSpace(*creatorName)
	if name == "" {
		return nil, nil
	}

	if len(name) > constant.MAX_CREATOR_NAME_LENGTH {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Creator name must be at most %d characters", constant.MAX_CREATOR_NAME_LENGTH),
			Param:   "creatorName",
		}
	}

	return &name, nil
}

func postNotFound() error {
	return &model.ValidationError{
		Code:    constant.ERR_NOT_FOUND_ERROR,
		Message: "Post not found",
		Param:   "postId",
	}
}
