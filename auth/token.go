package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"photoserver/config"
	"photoserver/models"
)

const (
	tokenValidFor = 30 * 24 * time.Hour
	bearerPrefix  = "Bearer "
)

// IssueToken signs a bearer token for API clients that cannot hold a
// session cookie.
func IssueToken(userID uint64) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(tokenValidFor).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWT_SECRET))
}

func ParseToken(tokenString string) (uint64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.JWT_SECRET), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token")
	}
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, errors.New("invalid token")
	}
	return uint64(id), nil
}

// CurrentUser resolves the requesting identity: a bearer token when the
// Authorization header carries one, the session cookie otherwise. A zero
// user ID means unauthenticated.
func CurrentUser(c *gin.Context) (user models.User) {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		id, err := ParseToken(strings.TrimPrefix(h, bearerPrefix))
		if err != nil {
			return
		}
		user, err = models.UserFindByID(id)
		if err != nil {
			return models.User{}
		}
		return
	}
	return LoadSession(c).User()
}
