package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTAdapter signs HS256 tokens carrying the subject in the "id" claim.
// Tokens carry no expiry.
type JWTAdapter struct {
	secret []byte
	now    func() time.Time
}

func NewJWTAdapter(secret string) *JWTAdapter {
	return &JWTAdapter{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (a *JWTAdapter) Encrypt(value string) (string, error) {
	claims := jwt.MapClaims{
		"id":  value,
		"iat": a.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (a *JWTAdapter) Decrypt(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}
