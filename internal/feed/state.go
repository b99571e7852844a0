package feed

import (
	"slices"

	"github.com/furluv/furluv/internal/commenttree"
	"github.com/furluv/furluv/internal/model"
	"github.com/samber/lo"
)

// State is everything one viewer's feed holds between requests.
//
// View keeps the liked / comment-panel flags apart from the posts so a
// reconcile never has to carry them field by field. Pending holds posts whose
// create call has not resolved yet; reconciliation never touches it.
type State struct {
	Entries []Entry                   `json:"entries"`
	View    map[int64]model.ViewState `json:"view"`
	Pending []model.PendingPost       `json:"pending"`
}

func NewState() *State {
	return &State{
		Entries: []Entry{},
		View:    map[int64]model.ViewState{},
		Pending: []model.PendingPost{},
	}
}

// Refresh reconciles the confirmed posts against a backend listing and returns
// the ids that were dropped.
func (s *State) Refresh(fetched []model.Post) []int64 {
	entries, dropped := Reconcile(s.Entries, fetched)
	s.Entries = entries
	s.pruneView()

	return dropped
}

func (s *State) AddPending(post model.PendingPost) {
	s.Pending = append(s.Pending, post)
}

// Confirm replaces the pending post with the post the backend stored. If a
// refresh already brought the post in, its comment thread is kept.
func (s *State) Confirm(provisionalId string, post model.Post) bool {
	before := len(s.Pending)
	s.Pending = slices.DeleteFunc(s.Pending, func(pending model.PendingPost) bool {
		return pending.ProvisionalId == provisionalId
	})
	if len(s.Pending) == before {
		return false
	}

	i := s.index(post.Id)
	if i >= 0 {
		s.Entries[i].Post = post
		return true
	}

	s.Entries = append(s.Entries, Entry{Post: post, Comments: commenttree.New()})
	sortEntries(s.Entries)

	return true
}

func (s *State) Abandon(provisionalId string) bool {
	before := len(s.Pending)
	s.Pending = slices.DeleteFunc(s.Pending, func(pending model.PendingPost) bool {
		return pending.ProvisionalId == provisionalId
	})

	return len(s.Pending) != before
}

func (s *State) Remove(postId int64) bool {
	i := s.index(postId)
	if i < 0 {
		return false
	}

	s.Entries = slices.Delete(s.Entries, i, i+1)
	delete(s.View, postId)

	return true
}

func (s *State) ToggleLike(postId int64) bool {
	if s.index(postId) < 0 {
		return false
	}

	view := s.View[postId]
	view.Liked = !view.Liked
	s.setView(postId, view)

	return true
}

func (s *State) ToggleComments(postId int64) bool {
	if s.index(postId) < 0 {
		return false
	}

	view := s.View[postId]
	view.ShowComments = !view.ShowComments
	s.setView(postId, view)

	return true
}

// React reports whether a reaction was recorded; an unknown post or comment
// leaves the state as it was.
func (s *State) React(postId int64, commentId int64, symbol string) bool {
	i := s.index(postId)
	if i < 0 {
		return false
	}

	current := s.Entries[i].Comments
	next := current.AddReaction(commentId, symbol)
	if next == current {
		return false
	}

	s.Entries[i].Comments = next
	return true
}

// Reply returns the id of the new comment, or 0 when nothing was added.
func (s *State) Reply(postId int64, parentId *int64, text string, viewer model.CommentAuthor, ids commenttree.IDSource) int64 {
	i := s.index(postId)
	if i < 0 {
		return 0
	}

	next, id := s.Entries[i].Comments.AddReply(parentId, text, viewer, ids)
	if id == 0 {
		return 0
	}

	s.Entries[i].Comments = next
	return id
}

func (s *State) Contains(postId int64) bool {
	return s.index(postId) >= 0
}

func (s *State) index(postId int64) int {
	return slices.IndexFunc(s.Entries, func(entry Entry) bool {
		return entry.Post.Id == postId
	})
}

func (s *State) setView(postId int64, view model.ViewState) {
	if s.View == nil {
		s.View = map[int64]model.ViewState{}
	}

	if view == (model.ViewState{}) {
		delete(s.View, postId)
		return
	}

	s.View[postId] = view
}

func (s *State) pruneView() {
	members := lo.SliceToMap(s.Entries, func(entry Entry) (int64, struct{}) {
		return entry.Post.Id, struct{}{}
	})

	for postId := range s.View {
		if _, ok := members[postId]; !ok {
			delete(s.View, postId)
		}
	}
}
