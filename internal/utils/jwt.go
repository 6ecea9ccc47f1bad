package utils

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type jwtCustomClaims struct {
	UserID     uint   `json:"user_id"`
	Uniquifier string `json:"uniquifier"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for the provided user.
// The uniquifier is embedded so rotating it invalidates issued sessions.
func GenerateToken(secret string, userID uint, uniquifier string, ttl time.Duration) (string, error) {
	claims := &jwtCustomClaims{
		UserID:     userID,
		Uniquifier: uniquifier,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token and returns the embedded user ID and uniquifier.
func ParseToken(secret, tokenString string) (uint, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return 0, "", err
	}

	if claims, ok := token.Claims.(*jwtCustomClaims); ok && token.Valid {
		return claims.UserID, claims.Uniquifier, nil
	}

	return 0, "", jwt.ErrTokenInvalidClaims
}
