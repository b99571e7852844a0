package util

import (
	"testing"
	"time"

	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func requireUnauthorized(t *testing.T, err error, message string) {
	t.Helper()

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, constant.ERR_UNATHORIZED_ERROR, validationErr.Code)
	assert.Equal(t, "accessToken", validationErr.Param)
	if message != "" {
		assert.Equal(t, message, validationErr.Message)
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	response, err := GenerateTokenResponse(42, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int(AccessTokenDuration.Seconds()), response.AccessTokenExpiresIn)

	token, ownerId, err := ValidateAccessToken("Bearer "+response.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, response.AccessToken, token)
	assert.Equal(t, int64(42), ownerId)
}

func TestValidateAccessTokenRejectsBadHeaders(t *testing.T) {
	_, _, err := ValidateAccessToken("", testSecret)
	requireUnauthorized(t, err, "No authentication token is provided")

	_, _, err = ValidateAccessToken("Token abc", testSecret)
	requireUnauthorized(t, err, "Authentication token format is not match")

	_, _, err = ValidateAccessToken("Bearer ", testSecret)
	requireUnauthorized(t, err, "Authentication token is empty")

	_, _, err = ValidateAccessToken("Bearer not-a-jwt", testSecret)
	requireUnauthorized(t, err, "Authentication token is malformed")
}

func TestValidateAccessTokenRejectsForeignSecret(t *testing.T) {
	token, err := GenerateAccessToken(42, "another-secret")
	require.NoError(t, err)

	_, _, err = ValidateAccessToken("Bearer "+token, testSecret)
	requireUnauthorized(t, err, "")
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	claims := &model.Claims{
		OwnerId: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(past),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, err = ValidateAccessToken("Bearer "+token, testSecret)
	requireUnauthorized(t, err, "Authentication token is expired")
}

func TestValidateAccessTokenRejectsMissingOwner(t *testing.T) {
	token, err := GenerateAccessToken(0, testSecret)
	require.NoError(t, err)

	_, _, err = ValidateAccessToken("Bearer "+token, testSecret)
	requireUnauthorized(t, err, "Authentication token is invalid")
}

func TestTokenHelpersNeedSecret(t *testing.T) {
	_, err := GenerateAccessToken(1, "")
	assert.ErrorIs(t, err, ErrMissingSecretKey)

	_, _, err = ValidateAccessToken("Bearer x", "")
	assert.ErrorIs(t, err, ErrMissingSecretKey)
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
