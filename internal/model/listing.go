package model

import "time"

type PetListing struct {
	Id             int64
	PetName        string
	Breed          string
	Age            int
	Status         string
	CreatorName    *string
	CreatorId      *int64
	ImageUrl       *string
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type PetListingRequest struct {
	PetName     string  `json:"petName"`
	Breed       string  `json:"breed"`
	Age         int     `json:"age"`
	Status      string  `json:"status"`
	CreatorName *string `json:"creatorName"`
	CreatorId   *int64  `json:"creatorId"`
	Image       *string `json:"image"`
	ImageUrl    *string `json:"imageUrl"`
}

type PetListingResponse struct {
	Id          int64   `json:"id"`
	PetName     string  `json:"petName"`
	Breed       string  `json:"breed"`
	Age         int     `json:"age"`
	Status      string  `json:"status"`
	CreatorName *string `json:"creatorName"`
	CreatorId   *int64  `json:"creatorId"`
	Image       *string `json:"image"`
	ImageUrl    *string `json:"imageUrl"`
}

func NewPetListingResponse(listing PetListing) PetListingResponse {
	return PetListingResponse{
		Id:          listing.Id,
		PetName:     listing.PetName,
		Breed:       listing.Breed,
		Age:         listing.Age,
		Status:      listing.Status,
		CreatorName: listing.CreatorName,
		CreatorId:   listing.CreatorId,
		Image:       listing.ImageUrl,
		ImageUrl:    listing.ImageUrl,
	}
}
