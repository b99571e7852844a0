package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/furluv/furluv/internal/constant"
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "middleware-test-secret"

type tokenCheckerFunc func(ownerId int64, accessToken string) error

func (f tokenCheckerFunc) GetAccessToken(_ *fiber.Ctx, ownerId int64, accessToken string) error {
	return f(ownerId, accessToken)
}

func newProtectedApp(t *testing.T, checker TokenChecker) *fiber.App {
	t.Helper()

	config := koanf.New(".")
	require.NoError(t, config.Set("JWT_SECRET_KEY", testSecret))

	app := fiber.New()
	auth := NewAuthMiddleware(app, zap.NewNop(), config, checker)
	app.Get("/me", auth.ProtectedRoute(), func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"ownerId": ctx.Locals("ownerId")})
	})

	return app
}

func get(t *testing.T, app *fiber.App, authorization string) int {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	return resp.StatusCode
}

func TestProtectedRoute(t *testing.T) {
	token, err := util.GenerateAccessToken(9, testSecret)
	require.NoError(t, err)

	var checkedOwner int64
	var checkedToken string
	app := newProtectedApp(t, tokenCheckerFunc(func(ownerId int64, accessToken string) error {
		checkedOwner = ownerId
		checkedToken = accessToken
		return nil
	}))

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "Bearer garbage"))

	assert.Equal(t, fiber.StatusOK, get(t, app, "Bearer "+token))
	assert.Equal(t, int64(9), checkedOwner)
	assert.Equal(t, token, checkedToken)
}

func TestProtectedRouteRejectsRevokedToken(t *testing.T) {
	token, err := util.GenerateAccessToken(9, testSecret)
	require.NoError(t, err)

	revoked := newProtectedApp(t, tokenCheckerFunc(func(int64, string) error {
		return &model.ValidationError{Code: constant.ERR_UNATHORIZED_ERROR, Message: "Authorization token not found or expired", Param: "accessToken"}
	}))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, revoked, "Bearer "+token))

	broken := newProtectedApp(t, tokenCheckerFunc(func(int64, string) error {
		return errors.New("redis is down")
	}))
	assert.Equal(t, fiber.StatusInternalServerError, get(t, broken, "Bearer "+token))
}
