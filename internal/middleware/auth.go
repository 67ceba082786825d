package middleware

import (
	"errors"
	"net/http"
	"strings"

	"churchadmin/internal/model"
	"churchadmin/internal/permission"
	"churchadmin/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const actingUserKey = "actingUser"

var (
	ErrMissingToken  = errors.New("authorization is missing")
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// ParseToken validates an HMAC signed access token and returns the identity
// it carries. The subject must be a UUID and the role claim must be present.
func ParseToken(tokenString string, secret []byte) (model.ActingUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return model.ActingUser{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.ActingUser{}, ErrInvalidClaims
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return model.ActingUser{}, ErrInvalidClaims
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return model.ActingUser{}, ErrInvalidClaims
	}
	name, _ := claims["name"].(string)
	return model.ActingUser{ID: id, Role: role, Name: name}, nil
}

// tokenFromRequest tries the access_token cookie first, then the Authorization header
func tokenFromRequest(c *gin.Context) (string, error) {
	if tokenString, err := c.Cookie("access_token"); err == nil && tokenString != "" {
		return tokenString, nil
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid authorization format. Expected 'Bearer <token>'")
	}
	return parts[1], nil
}

// RequireAuth validates the access token and stores the acting user on the context
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := tokenFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
			return
		}
		user, err := ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
			return
		}
		c.Set(actingUserKey, user)
		c.Next()
	}
}

// RequirePermission is a coarse route gate over the capability table. The
// services check again; this only saves a round trip for obvious refusals.
func RequirePermission(entity, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := ActingUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, ErrMissingToken.Error()))
			return
		}
		if !permission.Allowed(entity, action, user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "access denied"))
			return
		}
		c.Next()
	}
}

// ActingUser returns the identity stored by RequireAuth
func ActingUser(c *gin.Context) (model.ActingUser, bool) {
	v, ok := c.Get(actingUserKey)
	if !ok {
		return model.ActingUser{}, false
	}
	user, ok := v.(model.ActingUser)
	return user, ok
}

// SetActingUser stores an identity on the context; used by tests and by
// callers that authenticate some other way
func SetActingUser(c *gin.Context, user model.ActingUser) {
	c.Set(actingUserKey, user)
}
