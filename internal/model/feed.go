package model

import "time"

type ViewState struct {
	Liked        bool `json:"liked"`
	ShowComments bool `json:"showComments"`
}

type PendingPost struct {
	ProvisionalId  string    `json:"provisionalId"`
	Content        string    `json:"content"`
	ImageUrl       *string   `json:"imageUrl"`
	CreatorName    *string   `json:"creatorName"`
	CreateDatetime time.Time `json:"createDatetime"`
}

type FeedPost struct {
	Id            int64     `json:"id"`
	ProvisionalId string    `json:"provisionalId,omitempty"`
	Content       string    `json:"content"`
	Image         *string   `json:"image"`
	CreatorName   *string   `json:"creatorName"`
	Liked         bool      `json:"liked"`
	ShowComments  bool      `json:"showComments"`
	Pending       bool      `json:"pending"`
	Comments      []Comment `json:"comments"`
}

type FeedResponse struct {
	Posts   []FeedPost `json:"posts"`
	Changed bool       `json:"changed"`
}

type FeedPostCreateRequest struct {
	Content  string  `json:"content"`
	Image    *string `json:"image"`
	ImageUrl *string `json:"imageUrl"`
}

type FeedCommentResponse struct {
	CommentId int64        `json:"commentId"`
	Feed      FeedResponse `json:"feed"`
}
