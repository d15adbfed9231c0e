package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by staff tokens.
type Claims struct {
	StaffID uint   `json:"staffId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken mints a signed staff JWT.
func GenerateToken(staffID uint, role string, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		StaffID: staffID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
