package util

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	BearerPrefix            = "Bearer "
	TokenIssuer             = "github.com/furluv/furluv"
	AccessTokenDuration     = 24 * time.Hour
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrMissingSecretKey     = errors.New("jwt secret key is not configured")
)

// HashToken hashes a token using SHA256 for storage in the token cache
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func GenerateAccessToken(ownerId int64, jwtSecretKey string) (string, error) {
	if jwtSecretKey == "" {
		return "", ErrMissingSecretKey
	}

	now := time.Now().UTC()
	claims := &model.Claims{
		OwnerId: ownerId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
			Subject:   "petowner:" + strconv.FormatInt(ownerId, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

func GenerateTokenResponse(ownerId int64, jwtSecretKey string) (model.TokenResponse, error) {
	accessToken, err := GenerateAccessToken(ownerId, jwtSecretKey)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: int(AccessTokenDuration.Seconds()),
		TokenType:            "Bearer",
	}, nil
}

// ValidateAccessToken validates the Authorization header value and returns
// the bare token and the pet owner id it was issued for.
func ValidateAccessToken(authHeader string, jwtSecretKey string) (string, int64, error) {
	if jwtSecretKey == "" {
		return "", 0, ErrMissingSecretKey
	}

	tokenString, err := extractBearerToken(authHeader)
	if err != nil {
		return "", 0, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &model.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil {
		return "", 0, handleParseError(err)
	}

	claims, ok := token.Claims.(*model.Claims)
	if !ok || !token.Valid || claims.OwnerId <= 0 {
		return "", 0, unauthorized("Authentication token is invalid")
	}

	return tokenString, claims.OwnerId, nil
}

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", unauthorized("No authentication token is provided")
	}

	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", unauthorized("Authentication token format is not match")
	}

	token := strings.TrimPrefix(authHeader, BearerPrefix)
	if token == "" {
		return "", unauthorized("Authentication token is empty")
	}

	return token, nil
}

func handleParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return unauthorized("Authentication token is malformed")
	case errors.Is(err, jwt.ErrTokenExpired):
		return unauthorized("Authentication token is expired")
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return unauthorized("Authentication token is not valid yet")
	case errors.Is(err, ErrInvalidSigningMethod):
		return unauthorized("Authentication token has invalid signing method")
	default:
		return unauthorized("Authentication token is invalid")
	}
}

func unauthorized(message string) *model.ValidationError {
	return &model.ValidationError{
		Code:    constant.ERR_UNATHORIZED_ERROR,
		Message: message,
		Param:   "accessToken",
	}
}
