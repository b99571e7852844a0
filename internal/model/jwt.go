package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	OwnerId int64 `json:"ownerId"`
	jwt.RegisteredClaims
}
