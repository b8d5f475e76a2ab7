package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/observability"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apierr.NewInternal(nil)
			}
			if err != nil {
				var fiberErr *fiber.Error
				if errors.As(err, &fiberErr) {
					err = apierr.New(apierr.KindUnknown, "REQUEST_ERROR", fiberErr.Message, fiberErr.Code)
				}
				apiErr := apierr.ToError(err)
				metrics.RecordError(c.Path(), c.Method(), apiErr.Code)
				response := fiber.Map{"error": fiber.Map{
					"code":    apiErr.Code,
					"message": apiErr.Message,
				}}
				if len(apiErr.Details) > 0 {
					response["error"].(fiber.Map)["details"] = apiErr.Details
				}
				if apiErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(apiErr))
				}
				c.Status(apiErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}
