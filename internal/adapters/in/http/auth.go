package http

import (
	"net/http"
	"strings"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	actorIDKey   = "user_id"
	actorRoleKey = "role"
)

// bearerAuth verifies an HS256 access token and stores the actor id (claim
// sub) and role (claim role) on the echo context. Tokens are issued by the
// account service; this service only verifies them.
func bearerAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return unauthorized(c, "missing bearer token")
			}

			token, err := jwt.Parse(
				strings.TrimPrefix(header, "Bearer "),
				func(t *jwt.Token) (any, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, echo.ErrUnauthorized
					}
					return secret, nil
				},
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			)
			if err != nil || !token.Valid {
				return unauthorized(c, "invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c, "invalid claims")
			}

			subject, err := claims.GetSubject()
			if err != nil {
				return unauthorized(c, "invalid subject")
			}
			actorID, err := kernel.UUIDFromString(subject)
			if err != nil {
				return unauthorized(c, "invalid subject")
			}

			rawRole, _ := claims["role"].(string)
			role, err := user.ParseRole(rawRole)
			if err != nil {
				return unauthorized(c, "invalid role")
			}

			c.Set(actorIDKey, actorID)
			c.Set(actorRoleKey, role)
			return next(c)
		}
	}
}

func actorOf(c echo.Context) (kernel.UUID, user.Role) {
	id, _ := c.Get(actorIDKey).(kernel.UUID)
	role, _ := c.Get(actorRoleKey).(user.Role)
	return id, role
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: message})
}
