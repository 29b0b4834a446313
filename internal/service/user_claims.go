package service

import (
	"time"

	"github.com/dealbees/voucher-api/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// UserJWTClaims are the bearer token claims identifying a user. Token
// issuance lives elsewhere; the API only parses and validates these.
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateUserJWT signs a token for a user. Used by tooling and tests.
func GenerateUserJWT(user *models.User, secretKey string, expireHours int) (string, time.Time, error) {
	if expireHours <= 0 {
		expireHours = 24
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims := UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
