package api

import (
	"github.com/labstack/echo/v4"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/ougirez/carbon4c/internal/pkg/utils"
	"github.com/spf13/viper"
)

func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
		if err != nil {
			return constants.ErrUnauthorized
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		if token.Secret != viper.GetString(constants.ViperSecretKey) {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}

// requestIDContext tags service logs with the request id.
func requestIDContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ctx.Response().Header().Get(echo.HeaderXRequestID)
		if id != "" {
			r := ctx.Request()
			ctx.SetRequest(r.WithContext(logger.WithBatchID(r.Context(), id)))
		}
		return next(ctx)
	}
}
