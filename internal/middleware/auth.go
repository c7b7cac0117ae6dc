package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// RoleResolver maps an authenticated email to its back-office role.
type RoleResolver interface {
	Resolve(ctx context.Context, email string) (models.Role, error)
}

var errMissingToken = errors.New("missing bearer token")

func parseBearer(c echo.Context, secret string) (jwt.MapClaims, error) {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, errMissingToken
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

// AdminAuth authenticates /api/admin requests. The token's email claim must
// map to a permission; viewers may only read. An empty secret disables the
// check and treats every caller as admin.
func AdminAuth(secret string, roles RoleResolver) echo.MiddlewareFunc {
	if secret == "" {
		log.Warn("[Auth] JWT_SECRET is empty, admin API is unauthenticated")
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set(ContextRole, models.RoleAdmin)
				return next(c)
			}
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseBearer(c, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			email := stringClaim(claims, "email")
			role, err := roles.Resolve(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, service.ErrForbidden) {
					return echo.NewHTTPError(http.StatusForbidden, "no back-office permission for this account")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}

			m := c.Request().Method
			if m != http.MethodGet && m != http.MethodHead && !role.CanWrite() {
				return echo.NewHTTPError(http.StatusForbidden, "read-only role")
			}

			c.Set(ContextUserID, stringClaim(claims, "sub"))
			c.Set(ContextEmail, email)
			c.Set(ContextRole, role)
			return next(c)
		}
	}
}

// RequireRole rejects requests whose resolved role is not in roles.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(models.Role)
			if !allowed[role] {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// OptionalUser records the token subject as the user id when a bearer token
// is sent. A malformed token is rejected; no token is fine.
func OptionalUser(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}
			claims, err := parseBearer(c, secret)
			switch {
			case errors.Is(err, errMissingToken):
			case err != nil:
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			default:
				c.Set(ContextUserID, stringClaim(claims, "sub"))
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated subject, or "".
func UserID(c echo.Context) string {
	s, _ := c.Get(ContextUserID).(string)
	return s
}
