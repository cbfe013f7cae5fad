package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/linskybing/formbuilder-go/internal/config"
	"github.com/linskybing/formbuilder-go/pkg/response"
	"github.com/linskybing/formbuilder-go/pkg/types"
)

var (
	jwtKey    []byte
	jwtIssuer string
)

// Init sets the JWT signing key and issuer.
func Init(cfg config.JWTConfig) {
	jwtKey = []byte(cfg.Secret)
	jwtIssuer = cfg.Issuer
}

// GenerateToken issues a signed token for a user.
var GenerateToken = func(userID uint, email, role string, expireDuration time.Duration) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expireDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    jwtIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ParseToken validates and extracts claims.
func ParseToken(tokenStr string) (*types.Claims, error) {
	claims := &types.Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// JWTAuthMiddleware validates a Bearer token in the Authorization header or
// the token cookie.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Error(c, http.StatusUnauthorized, "فرمت هدر Authorization باید Bearer {token} باشد", nil)
				return
			}
			tokenStr = parts[1]
		} else if cookie, err := c.Cookie("token"); err == nil {
			tokenStr = cookie
		} else {
			response.Error(c, http.StatusUnauthorized, msgAuthRequired, nil)
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "توکن نامعتبر است", nil)
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}
