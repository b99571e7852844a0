package feed

import (
	"testing"

	"github.com/furluv/furluv/internal/commenttree"
	"github.com/furluv/furluv/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(value string) *string {
	return &value
}

func post(id int64, content string) model.Post {
	return model.Post{Id: id, Content: content}
}

func thread(t *testing.T, text string) *commenttree.Tree {
	t.Helper()

	tree, err := commenttree.FromNested([]model.Comment{{Id: 11, Text: text}})
	require.NoError(t, err)
	return tree
}

func TestReconcileIntoEmptyFeed(t *testing.T) {
	merged, dropped := Reconcile(nil, []model.Post{post(2, "hello")})

	require.Len(t, merged, 1)
	assert.Equal(t, int64(2), merged[0].Post.Id)
	assert.Equal(t, 0, merged[0].Comments.Len())
	assert.Empty(t, dropped)
}

func TestReconcileTakesServerFieldsAndKeepsThread(t *testing.T) {
	comments := thread(t, "c1")
	current := []Entry{{
		Post:     model.Post{Id: 5, Content: "old", ImageUrl: str("a.webp"), CreatorName: str("Old Name")},
		Comments: comments,
	}}

	merged, dropped := Reconcile(current, []model.Post{
		{Id: 5, Content: "new", ImageUrl: nil, CreatorName: str("Jo Cruz")},
	})

	require.Len(t, merged, 1)
	assert.Equal(t, "new", merged[0].Post.Content)
	assert.Nil(t, merged[0].Post.ImageUrl)
	assert.Equal(t, "Jo Cruz", *merged[0].Post.CreatorName)
	assert.Same(t, comments, merged[0].Comments)
	assert.Empty(t, dropped)

	assert.Equal(t, "old", current[0].Post.Content, "input must not be modified")
}

func TestReconcileDropsPostsMissingFromFetch(t *testing.T) {
	current := []Entry{
		{Post: post(9, "gone")},
		{Post: post(3, "stays")},
	}

	merged, dropped := Reconcile(current, []model.Post{post(3, "stays")})

	require.Len(t, merged, 1)
	assert.Equal(t, int64(3), merged[0].Post.Id)
	assert.Equal(t, []int64{9}, dropped)
}

func TestReconcileSortsByIdDescending(t *testing.T) {
	fetched := []model.Post{post(4, ""), post(10, ""), post(1, ""), post(7, "")}

	merged, _ := Reconcile([]Entry{{Post: post(7, "")}}, fetched)

	ids := make([]int64, 0, len(merged))
	for _, entry := range merged {
		ids = append(ids, entry.Post.Id)
	}
	assert.Equal(t, []int64{10, 7, 4, 1}, ids)
}

func TestReconcileDuplicateFetchedIdKeepsLaterCopy(t *testing.T) {
	merged, _ := Reconcile(nil, []model.Post{post(3, "first"), post(3, "second")})

	require.Len(t, merged, 1)
	assert.Equal(t, "second", merged[0].Post.Content)
}
