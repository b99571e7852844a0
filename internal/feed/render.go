package feed

import (
	"cmp"
	"slices"

	"github.com/furluv/furluv/internal/model"
	"github.com/samber/lo"
)

// Render flattens the state into what clients display: pending posts first,
// newest first, then confirmed posts by id descending.
func Render(state *State) []model.FeedPost {
	pending := slices.Clone(state.Pending)
	slices.SortStableFunc(pending, func(a, b model.PendingPost) int {
		return cmp.Compare(b.CreateDatetime.UnixNano(), a.CreateDatetime.UnixNano())
	})

	posts := make([]model.FeedPost, 0, len(pending)+len(state.Entries))

	posts = append(posts, lo.Map(pending, func(post model.PendingPost, _ int) model.FeedPost {
		return model.FeedPost{
			ProvisionalId: post.ProvisionalId,
			Content:       post.Content,
			Image:         post.ImageUrl,
			CreatorName:   post.CreatorName,
			Pending:       true,
			Comments:      []model.Comment{},
		}
	})...)

	posts = append(posts, lo.Map(state.Entries, func(entry Entry, _ int) model.FeedPost {
		view := state.View[entry.Post.Id]

		return model.FeedPost{
			Id:           entry.Post.Id,
			Content:      entry.Post.Content,
			Image:        entry.Post.ImageUrl,
			CreatorName:  entry.Post.CreatorName,
			Liked:        view.Liked,
			ShowComments: view.ShowComments,
			Comments:     entry.Comments.Nested(),
		}
	})...)

	return posts
}
