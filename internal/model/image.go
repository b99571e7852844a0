package model

type ImageUploadResponse struct {
	Url string `json:"url"`
}
