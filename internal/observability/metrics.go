package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "furluv_feed_refresh_total",
		Help: "Feed refreshes by outcome.",
	}, []string{"result"})

	FeedPostsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "furluv_feed_posts_dropped_total",
		Help: "Confirmed posts removed from a feed because the backend stopped reporting them.",
	})

	CommentMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "furluv_comment_mutations_total",
		Help: "Comment thread mutations by kind and whether they changed anything.",
	}, []string{"kind", "result"})

	FeedStateConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "furluv_feed_state_conflicts_total",
		Help: "Optimistic transaction retries on feed state keys.",
	})
)

func MutationResult(changed bool) string {
	if changed {
		return "changed"
	}
	return "noop"
}
