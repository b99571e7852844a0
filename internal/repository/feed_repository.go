package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/feed"
	"github.com/furluv/furluv/internal/observability"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrFeedStateConflict = errors.New("feed state kept changing concurrently, giving up")

type FeedRepository struct {
	Log     *zap.Logger
	DBCache *redis.Client
	TTL     time.Duration
}

func NewFeedRepository(zap *zap.Logger, dbCache *redis.Client, ttl time.Duration) *FeedRepository {
	if ttl <= 0 {
		ttl = constant.DEFAULT_FEED_STATE_TTL
	}

	return &FeedRepository{
		Log:     zap,
		DBCache: dbCache,
		TTL:     ttl,
	}
}

func feedStateKey(ownerId int64) string {
	return fmt.Sprintf("feed:state:%d", ownerId)
}

// Load reads the viewer's state and restarts its TTL.
func (repository *FeedRepository) Load(ctx context.Context, ownerId int64) (*feed.State, error) {
	data, err := repository.DBCache.GetEx(ctx, feedStateKey(ownerId), repository.TTL).Bytes()
	return decodeFeedState(data, err)
}

// Update applies a mutation to the latest stored state inside a WATCH/MULTI
// transaction and retries when another request wrote the key in between, so
// two mutations never start from the same snapshot. apply may run more than
// once and must only touch the state it is given. When apply reports no change
// nothing is written.
func (repository *FeedRepository) Update(ctx context.Context, ownerId int64, apply func(state *feed.State) (bool, error)) (*feed.State, error) {
	key := feedStateKey(ownerId)

	var result *feed.State

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		state, err := decodeFeedState(data, err)
		if err != nil {
			return err
		}

		changed, err := apply(state)
		if err != nil {
			return err
		}

		if !changed {
			result = state
			return nil
		}

		encoded, err := sonic.Marshal(state)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, repository.TTL)
			return nil
		})
		if err != nil {
			return err
		}

		result = state
		return nil
	}

	for attempt := 1; attempt <= constant.FEED_STATE_UPDATE_RETRIES; attempt++ {
		err := repository.DBCache.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}

		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}

		observability.FeedStateConflicts.Inc()
		repository.Log.Debug("feed state changed during update, retrying",
			zap.Int64("ownerId", ownerId),
			zap.Int("attempt", attempt),
		)
	}

	return nil, ErrFeedStateConflict
}

func (repository *FeedRepository) Delete(ctx context.Context, ownerId int64) error {
	err := repository.DBCache.Del(ctx, feedStateKey(ownerId)).Err()
	if err != nil {
		return err
	}

	return nil
}

func decodeFeedState(data []byte, err error) (*feed.State, error) {
	if errors.Is(err, redis.Nil) {
		return feed.NewState(), nil
	} else if err != nil {
		return nil, err
	}

	state := feed.NewState()
	err = sonic.Unmarshal(data, state)
	if err != nil {
		return nil, err
	}

	if state.View == nil {
		state.View = feed.NewState().View
	}

	return state, nil
}
