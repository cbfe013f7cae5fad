package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
