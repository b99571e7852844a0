package middleware

import (
	"github.com/furluv/furluv/internal/model"
	"github.com/furluv/furluv/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// TokenChecker confirms a signed token is still the one issued at login.
type TokenChecker interface {
	GetAccessToken(ctx *fiber.Ctx, ownerId int64, accessToken string) error
}

type AuthMiddleware struct {
	App          *fiber.App
	Log          *zap.Logger
	Config       *koanf.Koanf
	TokenChecker TokenChecker
}

func NewAuthMiddleware(app *fiber.App, zap *zap.Logger, koanf *koanf.Koanf, tokenChecker TokenChecker) *AuthMiddleware {
	return &AuthMiddleware{
		App:          app,
		Log:          zap,
		Config:       koanf,
		TokenChecker: tokenChecker,
	}
}

// ProtectedRoute stores the authenticated pet owner id under "ownerId".
func (middleware *AuthMiddleware) ProtectedRoute() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		accessToken := ctx.Get("Authorization")
		tokenString, ownerId, err := util.ValidateAccessToken(accessToken, middleware.Config.String("JWT_SECRET_KEY"))
		if err != nil {
			if _, ok := model.AsValidationError(err); ok {
				return util.SendErrorResponseUnauthorized(ctx, err)
			}

			return util.SendErrorResponseInternalServer(ctx, middleware.Log, err)
		}

		err = middleware.TokenChecker.GetAccessToken(ctx, ownerId, tokenString)
		if err != nil {
			if _, ok := model.AsValidationError(err); ok {
				return util.SendErrorResponseUnauthorized(ctx, err)
			}

			return util.SendErrorResponseInternalServer(ctx, middleware.Log, err)
		}

		ctx.Locals("ownerId", ownerId)

		middleware.Log.Debug("request authenticated", zap.Int64("ownerId", ownerId))

		return ctx.Next()
	}
}
