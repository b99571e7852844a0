package model

import "time"

type Post struct {
	Id             int64
	Content        string
	ImageUrl       *string
	CreatorName    *string
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type PostCreateRequest struct {
	Content     string  `json:"content"`
	Image       *string `json:"image"`
	ImageUrl    *string `json:"imageUrl"`
	CreatorName *string `json:"creatorName"`
}

type PostUpdateRequest struct {
	Content     string  `json:"content"`
	Image       *string `json:"image"`
	ImageUrl    *string `json:"imageUrl"`
	CreatorName *string `json:"creatorName"`
}

// PostResponse mirrors imageUrl into image so clients reading either field work.
type PostResponse struct {
	Id             int64     `json:"id"`
	Content        string    `json:"content"`
	Image          *string   `json:"image"`
	ImageUrl       *string   `json:"imageUrl"`
	CreatorName    *string   `json:"creatorName"`
	CreateDatetime time.Time `json:"createDatetime"`
}

func NewPostResponse(post Post) PostResponse {
	return PostResponse{
		Id:             post.Id,
		Content:        post.Content,
		Image:          post.ImageUrl,
		ImageUrl:       post.ImageUrl,
		CreatorName:    post.CreatorName,
		CreateDatetime: post.CreateDatetime,
	}
}

// ResolvedImage picks image over imageUrl, treating empty strings as absent.
func ResolvedImage(image *string, imageUrl *string) *string {
	if image != nil && *image != "" {
		return image
	}
	if imageUrl != nil && *imageUrl != "" {
		return imageUrl
	}
	return nil
}
