package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Decrypt for any token that does not carry a
// valid, signed account identity. Callers treat it as "no identity", not as
// an infrastructure failure.
var ErrInvalidToken = errors.New("invalid access token")

// TokenCodec signs and verifies bearer tokens carrying an account identity.
type TokenCodec interface {
	Encrypt(accountID int) (string, error)
	Decrypt(token string) (int, error)
}

type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTCodec(secret []byte) *JWTCodec {
	return &JWTCodec{secret: secret, ttl: 72 * time.Hour}
}

func (c *JWTCodec) Encrypt(accountID int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": accountID,
		"exp":        time.Now().Add(c.ttl).Unix(),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (c *JWTCodec) Decrypt(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	id, ok := claims["account_id"].(float64)
	if !ok || id == 0 {
		return 0, ErrInvalidToken
	}
	return int(id), nil
}
