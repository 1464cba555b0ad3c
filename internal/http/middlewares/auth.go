package middleware

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "task-assignment.com/task-assignment/internal/errors"
)

const identityKey = "identity"

// Identity is the acting user taken from the bearer token.
type Identity struct {
	UserID string
	TeamID string
}

type Claims struct {
	TeamID string `json:"team_id"`
	jwt.RegisteredClaims
}

func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				return apperrors.ErrUnauthorized
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			},
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithExpirationRequired(),
			)
			if err != nil || !token.Valid {
				return apperrors.ErrUnauthorized
			}
			if claims.Subject == "" || claims.TeamID == "" {
				return apperrors.ErrUnauthorized
			}

			c.Set(identityKey, Identity{UserID: claims.Subject, TeamID: claims.TeamID})
			return next(c)
		}
	}
}

func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

func IssueToken(secret []byte, userID, teamID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TeamID: teamID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
