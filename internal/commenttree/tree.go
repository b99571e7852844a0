// Package commenttree keeps the comment thread of a single post as an arena of
// immutable nodes.
//
// Every mutation returns a new *Tree. The nodes on the path from the mutated
// comment up to its top-level ancestor are fresh copies; every other node is
// shared with the previous snapshot, so a renderer can detect changes by
// comparing node pointers.
package commenttree

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/furluv/furluv/internal/model"
)

// Node must be treated as read-only by callers.
type Node struct {
	Id        int64
	ParentId  int64
	Author    model.CommentAuthor
	Text      string
	Reactions map[string]int
	ChildIds  []int64
}

// Tree is a comment thread. A nil *Tree behaves as an empty thread.
type Tree struct {
	nodes map[int64]*Node
	roots []int64
	maxId int64
}

func New() *Tree {
	return &Tree{nodes: map[int64]*Node{}}
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

func (t *Tree) Node(id int64) *Node {
	if t == nil {
		return nil
	}
	return t.nodes[id]
}

func (t *Tree) Roots() []int64 {
	if t == nil {
		return nil
	}
	return slices.Clone(t.roots)
}

// AddReaction adds one to the count of symbol on the comment with the given id.
// An unknown id returns t itself.
func (t *Tree) AddReaction(id int64, symbol string) *Tree {
	target := t.Node(id)
	if target == nil {
		return t
	}

	next := t.clone()

	updated := *target
	updated.Reactions = make(map[string]int, len(target.Reactions)+1)
	maps.Copy(updated.Reactions, target.Reactions)
	updated.Reactions[symbol]++

	next.nodes[id] = &updated
	next.copyAncestors(updated.ParentId)

	return next
}

// AddReply appends a comment written by viewer. A nil parentId makes it a new
// top-level comment, otherwise it becomes the last reply of parentId.
//
// Blank text or an unknown parent leaves the thread untouched: t is returned
// together with id 0.
func (t *Tree) AddReply(parentId *int64, text string, viewer model.CommentAuthor, ids IDSource) (*Tree, int64) {
	if strings.TrimSpace(text) == "" {
		return t, 0
	}

	var parent *Node
	if parentId != nil {
		parent = t.Node(*parentId)
		if parent == nil {
			return t, 0
		}
	}

	next := t.clone()

	id := ids.NextID()
	if id <= next.maxId {
		id = next.maxId + 1
	}
	next.maxId = id

	reply := &Node{
		Id:        id,
		Author:    viewer,
		Text:      text,
		Reactions: map[string]int{},
		ChildIds:  []int64{},
	}

	if parent == nil {
		next.roots = append(slices.Clip(next.roots), id)
	} else {
		reply.ParentId = parent.Id

		updated := *parent
		updated.ChildIds = append(slices.Clip(parent.ChildIds), id)
		next.nodes[parent.Id] = &updated
		next.copyAncestors(updated.ParentId)
	}

	next.nodes[id] = reply

	return next, id
}

// Find returns the comment with the given id together with its replies.
func (t *Tree) Find(id int64) (model.Comment, bool) {
	if t.Node(id) == nil {
		return model.Comment{}, false
	}
	return t.build([]int64{id})[0], true
}

// Nested renders the thread in the nested shape. The result shares no memory
// with the tree.
func (t *Tree) Nested() []model.Comment {
	if t == nil {
		return []model.Comment{}
	}
	return t.build(t.roots)
}

func (t *Tree) clone() *Tree {
	if t == nil {
		return New()
	}

	return &Tree{
		nodes: maps.Clone(t.nodes),
		roots: t.roots,
		maxId: t.maxId,
	}
}

// copyAncestors replaces every node from id up to the top level with a copy.
func (t *Tree) copyAncestors(id int64) {
	for steps := 0; id != 0 && steps < len(t.nodes); steps++ {
		node, ok := t.nodes[id]
		if !ok {
			return
		}

		copied := *node
		t.nodes[id] = &copied
		id = copied.ParentId
	}
}

// build materializes the subtrees under ids without recursion. Nodes are
// visited in pre-order and assembled in reverse, so children are complete
// before their parent copies them.
func (t *Tree) build(ids []int64) []model.Comment {
	order := make([]*Node, 0, len(t.nodes))
	stack := slices.Clone(ids)
	slices.Reverse(stack)

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[id]
		order = append(order, node)

		for i := len(node.ChildIds) - 1; i >= 0; i-- {
			stack = append(stack, node.ChildIds[i])
		}
	}

	built := make(map[int64]model.Comment, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]

		replies := make([]model.Comment, 0, len(node.ChildIds))
		for _, childId := range node.ChildIds {
			replies = append(replies, built[childId])
		}

		built[node.Id] = model.Comment{
			Id:        node.Id,
			User:      node.Author,
			Text:      node.Text,
			Reactions: maps.Clone(node.Reactions),
			Replies:   replies,
		}
	}

	result := make([]model.Comment, 0, len(ids))
	for _, id := range ids {
		result = append(result, built[id])
	}

	return result
}

// FromNested loads a thread from its nested shape. Ids must be positive and
// unique across the whole thread.
func FromNested(comments []model.Comment) (*Tree, error) {
	tree := New()

	type pending struct {
		comment  model.Comment
		parentId int64
	}

	stack := make([]pending, 0, len(comments))
	for i := len(comments) - 1; i >= 0; i-- {
		stack = append(stack, pending{comment: comments[i]})
	}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		comment := item.comment
		if comment.Id <= 0 {
			return nil, fmt.Errorf("comment id must be positive, got %d", comment.Id)
		}
		if _, exists := tree.nodes[comment.Id]; exists {
			return nil, fmt.Errorf("duplicate comment id %d", comment.Id)
		}

		reactions := make(map[string]int, len(comment.Reactions))
		for symbol, count := range comment.Reactions {
			if count > 0 {
				reactions[symbol] = count
			}
		}

		node := &Node{
			Id:        comment.Id,
			ParentId:  item.parentId,
			Author:    comment.User,
			Text:      comment.Text,
			Reactions: reactions,
			ChildIds:  make([]int64, 0, len(comment.Replies)),
		}
		for _, reply := range comment.Replies {
			node.ChildIds = append(node.ChildIds, reply.Id)
		}

		tree.nodes[node.Id] = node
		if item.parentId == 0 {
			tree.roots = append(tree.roots, node.Id)
		}
		tree.maxId = max(tree.maxId, node.Id)

		for i := len(comment.Replies) - 1; i >= 0; i-- {
			stack = append(stack, pending{comment: comment.Replies[i], parentId: comment.Id})
		}
	}

	return tree, nil
}

func (t *Tree) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(t.Nested())
}

func (t *Tree) UnmarshalJSON(data []byte) error {
	var comments []model.Comment
	err := sonic.Unmarshal(data, &comments)
	if err != nil {
		return err
	}

	tree, err := FromNested(comments)
	if err != nil {
		return err
	}

	*t = *tree
	return nil
}
