package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"taskboard/internal/adapter/http/helper"
)

const (
	// ContextUserKey holds the authenticated user id on the gin context.
	ContextUserKey = "x-user-id"
	DefaultTTL     = 3 * time.Hour
)

var ErrInvalidToken = errors.New("invalid access token")

type JWT struct {
	Secret string
	TTL    time.Duration
}

func NewJWT(secret string) *JWT {
	return &JWT{Secret: secret, TTL: DefaultTTL}
}

func (j *JWT) CreateToken(userID string) (string, error) {
	ttl := j.TTL

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	})

	return token.SignedString([]byte(j.Secret))
}

// VerifyToken returns the user id carried by a valid HS256 token.
func (j *JWT) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(j.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)

	if !ok || userID == "" {
		return "", fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}

	return userID, nil
}

// GinJwtMiddleware stores the token's user id under ContextUserKey. Without
// an Authorization header the request passes through unless required is set;
// a malformed or invalid token is always rejected.
func GinJwtMiddleware(j *JWT, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			if required {
				helper.SendUnauthorizedError(c, "Unauthorized request")
				return
			}

			c.Next()
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			helper.SendUnauthorizedError(c, "Invalid authorization format")
			return
		}

		userID, err := j.VerifyToken(strings.TrimPrefix(bearer, "Bearer "))

		if err != nil {
			helper.SendUnauthorizedError(c, "Unauthorized request")
			return
		}

		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// UserIDFrom returns the authenticated user id, if any.
func UserIDFrom(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserKey)

	return userID, userID != ""
}
