package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const passwordResetTokenPurpose = "password_reset"

var (
	ErrPasswordResetTokenMissing  = errors.New("missing reset token")
	ErrPasswordResetTokenInvalid  = errors.New("invalid reset token")
	ErrPasswordResetTokenExpired  = errors.New("expired reset token")
	ErrPasswordResetTokenMismatch = errors.New("reset token no longer matches account state")
)

// PasswordResetClaims scope a short-lived token to one user and one
// password state. The fingerprint ties the token to the hash it was
// minted against, so changing the password invalidates every token
// issued before the change.
type PasswordResetClaims struct {
	UserID        uint   `json:"uid"`
	Purpose       string `json:"purpose"`
	PasswordState string `json:"password_state"`
	jwt.RegisteredClaims
}

func BuildPasswordResetToken(secretKey []byte, userID uint, passwordHash string, ttl time.Duration, now time.Time) (string, error) {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if now.IsZero() {
		now = time.Now()
	}

	passwordState := passwordStateFingerprint(passwordHash)
	if passwordState == "" {
		return "", ErrPasswordResetTokenInvalid
	}

	claims := PasswordResetClaims{
		UserID:        userID,
		Purpose:       passwordResetTokenPurpose,
		PasswordState: passwordState,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

func ParsePasswordResetToken(secretKey []byte, rawToken string, now time.Time) (*PasswordResetClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrPasswordResetTokenMissing
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := &PasswordResetClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrPasswordResetTokenInvalid
	}
	if claims.Purpose != passwordResetTokenPurpose {
		return nil, ErrPasswordResetTokenInvalid
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return nil, ErrPasswordResetTokenExpired
	}
	if claims.UserID == 0 || strings.TrimSpace(claims.PasswordState) == "" {
		return nil, ErrPasswordResetTokenInvalid
	}
	return claims, nil
}

// VerifyPasswordResetClaims checks the claims against the account's
// current password hash.
func VerifyPasswordResetClaims(claims *PasswordResetClaims, passwordHash string) error {
	if claims == nil {
		return ErrPasswordResetTokenInvalid
	}
	actual := passwordStateFingerprint(passwordHash)
	if actual == "" || subtle.ConstantTimeCompare([]byte(claims.PasswordState), []byte(actual)) != 1 {
		return ErrPasswordResetTokenMismatch
	}
	return nil
}

func passwordStateFingerprint(passwordHash string) string {
	normalized := strings.TrimSpace(passwordHash)
	if normalized == "" {
		return ""
	}

	sum := sha256.Sum256([]byte("plateful.reset.password-state.v1:" + normalized))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
