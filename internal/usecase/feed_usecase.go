package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/furluv/furluv/internal/backend"
	"github.com/furluv/furluv/internal/commenttree"
	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/feed"
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/observability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeedStore persists one feed state per viewer. Update runs apply against the
// latest stored state and may call it more than once.
type FeedStore interface {
	Load(ctx context.Context, ownerId int64) (*feed.State, error)
	Update(ctx context.Context, ownerId int64, apply func(state *feed.State) (bool, error)) (*feed.State, error)
	Delete(ctx context.Context, ownerId int64) error
}

// PostSource is the posts backend as seen from the feed.
type PostSource interface {
	GetPosts(ctx context.Context) ([]model.Post, error)
	CreatePost(ctx context.Context, request model.PostCreateRequest) (model.Post, error)
	DeletePost(ctx context.Context, postId int64) error
	GetPetOwner(ctx context.Context, ownerId int64) (model.PetOwnerResponse, error)
}

type FeedUsecase struct {
	Store FeedStore
	Posts PostSource
	IDs   commenttree.IDSource
	Log   *zap.Logger
	Now   func() time.Time
}

func NewFeedUsecase(store FeedStore, posts PostSource, ids commenttree.IDSource, zap *zap.Logger) *FeedUsecase {
	return &FeedUsecase{
		Store: store,
		Posts: posts,
		IDs:   ids,
		Log:   zap,
		Now:   time.Now,
	}
}

func (usecase *FeedUsecase) GetFeed(ctx context.Context, ownerId int64) (model.FeedResponse, error) {
	state, err := usecase.Store.Load(ctx, ownerId)
	if err != nil {
		return model.FeedResponse{}, err
	}

	return feedResponse(state, false), nil
}

// Refresh fetches the backend listing first and reconciles it against the
// state as stored when the write happens, never against an older copy.
func (usecase *FeedUsecase) Refresh(ctx context.Context, ownerId int64) (model.FeedResponse, error) {
	log := observability.WithContext(ctx, usecase.Log)

	posts, err := usecase.Posts.GetPosts(ctx)
	if err != nil {
		observability.FeedRefreshes.WithLabelValues("error").Inc()
		return model.FeedResponse{}, backendFailure(err)
	}

	var dropped []int64
	state, err := usecase.Store.Update(ctx, ownerId, func(state *feed.State) (bool, error) {
		dropped = state.Refresh(posts)
		return true, nil
	})
	if err != nil {
		observability.FeedRefreshes.WithLabelValues("error").Inc()
		return model.FeedResponse{}, err
	}

	observability.FeedRefreshes.WithLabelValues("ok").Inc()

	if len(dropped) > 0 {
		observability.FeedPostsDropped.Add(float64(len(dropped)))
		log.Debug("posts no longer reported by backend were dropped from feed",
			zap.Int64("ownerId", ownerId),
			zap.Int64s("postIds", dropped),
		)
	}

	return feedResponse(state, true), nil
}

// CreatePost shows the post as pending right away, then confirms it with the
// stored copy or withdraws it when the backend rejects it.
func (usecase *FeedUsecase) CreatePost(ctx context.Context, ownerId int64, payload model.FeedPostCreateRequest) (model.FeedResponse, error) {
	log := observability.WithContext(ctx, usecase.Log)

	content := strings.TrimSpace(payload.Content)

	err := validatePostContent(content)
	if err != nil {
		return model.FeedResponse{}, err
	}

	creatorName, err := usecase.creatorName(ctx, ownerId)
	if err != nil {
		return model.FeedResponse{}, err
	}

	pending := model.PendingPost{
		ProvisionalId:  uuid.NewString(),
		Content:        content,
		ImageUrl:       model.ResolvedImage(payload.Image, payload.ImageUrl),
		CreatorName:    creatorName,
		CreateDatetime: usecase.Now().UTC(),
	}

	_, err = usecase.Store.Update(ctx, ownerId, func(state *feed.State) (bool, error) {
		state.AddPending(pending)
		return true, nil
	})
	if err != nil {
		return model.FeedResponse{}, err
	}

	saved, createErr := usecase.Posts.CreatePost(ctx, model.PostCreateRequest{
		Content:     pending.Content,
		ImageUrl:    pending.ImageUrl,
		CreatorName: pending.CreatorName,
	})

	// The pending entry has to be resolved even if the caller went away.
	resolveCtx := context.WithoutCancel(ctx)

	if createErr != nil {
		usecase.withdrawPending(resolveCtx, log, ownerId, pending.ProvisionalId)
		return model.FeedResponse{}, backendFailure(createErr)
	}

	state, err := usecase.Store.Update(resolveCtx, ownerId, func(state *feed.State) (bool, error) {
		return state.Confirm(pending.ProvisionalId, saved), nil
	})
	if err != nil {
		// The backend has the post, so the next refresh lists it again.
		log.Error("failed to confirm pending post",
			zap.String("provisionalId", pending.ProvisionalId),
			zap.Int64("postId", saved.Id),
			zap.Error(err),
		)
		usecase.withdrawPending(resolveCtx, log, ownerId, pending.ProvisionalId)
		return model.FeedResponse{}, err
	}

	log.Debug("pending post confirmed", zap.String("provisionalId", pending.ProvisionalId), zap.Int64("postId", saved.Id))

	return feedResponse(state, true), nil
}

func (usecase *FeedUsecase) withdrawPending(ctx context.Context, log *zap.Logger, ownerId int64, provisionalId string) {
	_, err := usecase.Store.Update(ctx, ownerId, func(state *feed.State) (bool, error) {
		return state.Abandon(provisionalId), nil
	})
	if err != nil {
		log.Error("failed to withdraw pending post", zap.String("provisionalId", provisionalId), zap.Error(err))
	}
}

// DeletePost removes the post locally even when the backend no longer has it.
func (usecase *FeedUsecase) DeletePost(ctx context.Context, ownerId int64, postIdParam string) (model.FeedResponse, error) {
	postId, err := parseId(postIdParam, "postId")
	if err != nil {
		return model.FeedResponse{}, err
	}

	err = usecase.Posts.DeletePost(ctx, postId)
	if err != nil && !backend.IsNotFound(err) {
		return model.FeedResponse{}, backendFailure(err)
	}

	return usecase.mutate(ctx, ownerId, func(state *feed.State) bool {
		return state.Remove(postId)
	})
}

func (usecase *FeedUsecase) ToggleLike(ctx context.Context, ownerId int64, postIdParam string) (model.FeedResponse, error) {
	postId, err := parseId(postIdParam, "postId")
	if err != nil {
		return model.FeedResponse{}, err
	}

	return usecase.mutate(ctx, ownerId, func(state *feed.State) bool {
		return state.ToggleLike(postId)
	})
}

func (usecase *FeedUsecase) ToggleComments(ctx context.Context, ownerId int64, postIdParam string) (model.FeedResponse, error) {
	postId, err := parseId(postIdParam, "postId")
	if err != nil {
		return model.FeedResponse{}, err
	}

	return usecase.mutate(ctx, ownerId, func(state *feed.State) bool {
		return state.ToggleComments(postId)
	})
}

// AddComment appends a reply as the viewer. Blank text, an unknown post or an
// unknown parent leave the feed unchanged and answer commentId 0.
func (usecase *FeedUsecase) AddComment(ctx context.Context, ownerId int64, postIdParam string, payload model.CommentCreateRequest) (model.FeedCommentResponse, error) {
	postId, err := parseId(postIdParam, "postId")
	if err != nil {
		return model.FeedCommentResponse{}, err
	}

	viewer := model.CommentAuthor{
		OwnerId: ownerId,
		Name:    constant.VIEWER_NAME,
		Avatar:  constant.VIEWER_AVATAR,
	}

	var commentId int64
	response, err := usecase.mutate(ctx, ownerId, func(state *feed.State) bool {
		commentId = state.Reply(postId, payload.ParentId, payload.Text, viewer, usecase.IDs)
		return commentId != 0
	})
	if err != nil {
		return model.FeedCommentResponse{}, err
	}

	observability.CommentMutations.WithLabelValues("reply", observability.MutationResult(response.Changed)).Inc()

	return model.FeedCommentResponse{
		CommentId: commentId,
		Feed:      response,
	}, nil
}

func (usecase *FeedUsecase) React(ctx context.Context, ownerId int64, postIdParam string, commentIdParam string, payload model.ReactionCreateRequest) (model.FeedResponse, error) {
	postId, err := parseId(postIdParam, "postId")
	if err != nil {
		return model.FeedResponse{}, err
	}

	commentId, err := parseId(commentIdParam, "commentId")
	if err != nil {
		return model.FeedResponse{}, err
	}

	if payload.Reaction == "" {
		return model.FeedResponse{}, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Reaction is required to not be empty",
			Param:   "reaction",
		}
	}

	response, err := usecase.mutate(ctx, ownerId, func(state *feed.State) bool {
		return state.React(postId, commentId, payload.Reaction)
	})
	if err != nil {
		return model.FeedResponse{}, err
	}

	observability.CommentMutations.WithLabelValues("reaction", observability.MutationResult(response.Changed)).Inc()

	return response, nil
}

// Reset forgets the viewer's feed; the next refresh starts from scratch.
func (usecase *FeedUsecase) Reset(ctx context.Context, ownerId int64) error {
	return usecase.Store.Delete(ctx, ownerId)
}

func (usecase *FeedUsecase) Reactions() []string {
	return constant.DefaultReactions
}

func (usecase *FeedUsecase) mutate(ctx context.Context, ownerId int64, apply func(state *feed.State) bool) (model.FeedResponse, error) {
	var changed bool
	state, err := usecase.Store.Update(ctx, ownerId, func(state *feed.State) (bool, error) {
		changed = apply(state)
		return changed, nil
	})
	if err != nil {
		return model.FeedResponse{}, err
	}

	return feedResponse(state, changed), nil
}

// creatorName resolves the viewer's display name once, at creation time.
func (usecase *FeedUsecase) creatorName(ctx context.Context, ownerId int64) (*string, error) {
	owner, err := usecase.Posts.GetPetOwner(ctx, ownerId)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, nil
		}
		return nil, backendFailure(err)
	}

	name := creatorDisplayName(owner)
	if name == "" {
		return nil, nil
	}

	return &name, nil
}

func feedResponse(state *feed.State, changed bool) model.FeedResponse {
	return model.FeedResponse{
		Posts:   feed.Render(state),
		Changed: changed,
	}
}

// backendFailure turns backend rejections of the request and backend
// throttling into client errors. Everything else stays an internal failure.
func backendFailure(err error) error {
	var backendErr *backend.Error
	if !errors.As(err, &backendErr) {
		return err
	}

	switch backendErr.Status {
	case http.StatusBadRequest:
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: backendErr.Message,
			Param:   "body",
		}
	case http.StatusNotFound:
		return &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: backendErr.Message,
			Param:   "postId",
		}
	case http.StatusTooManyRequests:
		return &model.ValidationError{
			Code:    constant.ERR_TOO_MANY_REQUESTS_ERROR,
			Message: "The post service is busy, please try again shortly",
			Param:   "backend",
		}
	default:
		return err
	}
}
