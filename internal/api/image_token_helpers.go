package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	imageTokenTTL     = 2 * time.Hour
	imageTokenPurpose = "image"
)

var errImageTokenInvalid = errors.New("invalid image token")

// imageTokenClaims authorize read access to exactly one stored image
// key for a limited time.
type imageTokenClaims struct {
	Key     string `json:"key"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildImageToken(key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = imageTokenTTL
	}
	now := time.Now()

	claims := imageTokenClaims{
		Key:     key,
		Purpose: imageTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) parseImageToken(rawToken string) (*imageTokenClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errImageTokenInvalid
	}

	claims := &imageTokenClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errImageTokenInvalid
	}
	if claims.Purpose != imageTokenPurpose || strings.TrimSpace(claims.Key) == "" {
		return nil, errImageTokenInvalid
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errImageTokenInvalid
	}
	return claims, nil
}
