package model

import "time"

type Pet struct {
	Id             int64
	Name           string
	Type           string
	Breed          string
	Age            *int
	Bio            *string
	Documents      *string
	ImageUrl       *string
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type PetRequest struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Breed     string  `json:"breed"`
	Age       *int    `json:"age"`
	Bio       *string `json:"bio"`
	Documents *string `json:"documents"`
	Image     *string `json:"image"`
	ImageUrl  *string `json:"imageUrl"`
}

type PetResponse struct {
	Id        int64   `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Breed     string  `json:"breed"`
	Age       *int    `json:"age"`
	Bio       *string `json:"bio"`
	Documents *string `json:"documents"`
	Image     *string `json:"image"`
	ImageUrl  *string `json:"imageUrl"`
}

func NewPetResponse(pet Pet) PetResponse {
	return PetResponse{
		Id:        pet.Id,
		Name:      pet.Name,
		Type:      pet.Type,
		Breed:     pet.Breed,
		Age:       pet.Age,
		Bio:       pet.Bio,
		Documents: pet.Documents,
		Image:     pet.ImageUrl,
		ImageUrl:  pet.ImageUrl,
	}
}
