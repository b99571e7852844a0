// Package feed holds a viewer's feed state and merges backend listings into it.
package feed

import (
	"cmp"
	"slices"

	"github.com/furluv/furluv/internal/commenttree"
	"github.com/furluv/furluv/internal/model"
	"github.com/samber/lo"
)

// Entry is a confirmed post together with the comment thread kept for it
// locally. The backend never reports comments, so the thread only lives here.
type Entry struct {
	Post     model.Post        `json:"post"`
	Comments *commenttree.Tree `json:"comments"`
}

// Reconcile merges fetched into current and returns the merged entries sorted
// by id descending, plus the ids of current entries the fetch no longer
// reports. Neither input is modified.
//
// Server fields come from fetched, comment threads from current. Membership
// follows fetched: posts missing from it are dropped.
func Reconcile(current []Entry, fetched []model.Post) ([]Entry, []int64) {
	existing := lo.KeyBy(current, func(entry Entry) int64 {
		return entry.Post.Id
	})

	merged := make([]Entry, 0, len(fetched))
	position := make(map[int64]int, len(fetched))

	for _, post := range fetched {
		entry, ok := existing[post.Id]
		if ok {
			entry.Post = post
		} else {
			entry = Entry{Post: post, Comments: commenttree.New()}
		}

		// a listing reporting the same id twice keeps the later copy
		if i, seen := position[post.Id]; seen {
			merged[i] = entry
			continue
		}

		position[post.Id] = len(merged)
		merged = append(merged, entry)
	}

	dropped := lo.FilterMap(current, func(entry Entry, _ int) (int64, bool) {
		_, kept := position[entry.Post.Id]
		return entry.Post.Id, !kept
	})

	sortEntries(merged)

	return merged, dropped
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Post.Id, a.Post.Id)
	})
}
