package model

type CommentAuthor struct {
	OwnerId int64  `json:"ownerId,omitempty"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
}

// Comment is the nested shape of a comment thread as rendered to clients.
type Comment struct {
	Id        int64          `json:"id"`
	User      CommentAuthor  `json:"user"`
	Text      string         `json:"text"`
	Reactions map[string]int `json:"reactions"`
	Replies   []Comment      `json:"replies"`
}

type CommentCreateRequest struct {
	ParentId *int64 `json:"parentId"`
	Text     string `json:"text"`
}

type ReactionCreateRequest struct {
	Reaction string `json:"reaction"`
}
