package model

import (
	"time"
)

type PetOwner struct {
	Id             int64
	FirstName      string
	LastName       string
	Email          string
	Password       string
	ProfileImage   *string
	CoverImage     *string
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type PetOwnerRegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type PetOwnerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PetOwnerUpdateRequest struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	ProfileImage *string `json:"profileImage"`
	CoverImage   *string `json:"coverImage"`
}

type PetOwnerResponse struct {
	Id           int64   `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	ProfileImage *string `json:"profileImage"`
	CoverImage   *string `json:"coverImage"`
}

type PetOwnerLoginResponse struct {
	Owner PetOwnerResponse `json:"owner"`
	Token TokenResponse    `json:"token"`
}
