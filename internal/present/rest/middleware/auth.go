package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// IdentifyIdentity resolves the bearer token, if any, and stashes the
// requester in the request context. An invalid token is treated like no
// token; the route guards decide whether that matters.
func (s *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyIdentity")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skipCheckAuthorization
			}

			{
				authType, token := split[0], split[1]
				if authType != "Bearer" {
					span.RecordError(fmt.Errorf("only Bearer is acceptable"))
					goto skipCheckAuthorization
				}

				result, err := s.auth.VerifyToken(ctx, token)
				if err != nil {
					span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyIdentity: token verification failed"))
					goto skipCheckAuthorization
				}

				ctx = context.WithValue(ctx, domain.RequesterIDCtxKey, result.UserID)
				ctx = context.WithValue(ctx, domain.RequesterIsAdminCtxKey, result.IsAdmin)
				span.SetAttributes(attribute.String("RequesterId", result.UserID))
			}
		}

	skipCheckAuthorization:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireAuth rejects requests that carry no valid identity.
func (s *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if RequesterID(c) == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		return next(c)
	}
}

// RequireAdmin rejects requests from non-admin identities.
func (s *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if RequesterID(c) == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		if !RequesterIsAdmin(c) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin only"})
		}
		return next(c)
	}
}

// RequesterID extracts the authenticated user's ID, or "".
func RequesterID(c echo.Context) string {
	id, _ := c.Request().Context().Value(domain.RequesterIDCtxKey).(string)
	return id
}

// RequesterIsAdmin extracts the authenticated user's admin flag.
func RequesterIsAdmin(c echo.Context) bool {
	isAdmin, _ := c.Request().Context().Value(domain.RequesterIsAdminCtxKey).(bool)
	return isAdmin
}
