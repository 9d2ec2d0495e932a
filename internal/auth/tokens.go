package auth

import (
	"errors"
	"fmt"
	"time"

	"frontdesk/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken signs an HS256 JWT carrying the user profile. Claims:
// sub (email), name, role, exp, iat.
func NewAccessToken(secret string, profile models.UserProfile, ttl time.Duration, now time.Time) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  profile.Email,
		"name": profile.Name,
		"role": profile.Role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}

// ParseAccessToken verifies the signature and expiry and returns the
// embedded profile.
func ParseAccessToken(secret, raw string) (models.UserProfile, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return models.UserProfile{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.UserProfile{}, ErrInvalidToken
	}

	profile := models.UserProfile{}
	if sub, ok := claims["sub"].(string); ok {
		profile.Email = sub
	}
	if name, ok := claims["name"].(string); ok {
		profile.Name = name
	}
	if role, ok := claims["role"].(string); ok {
		profile.Role = role
	}
	if profile.Email == "" {
		return models.UserProfile{}, ErrInvalidToken
	}
	return profile, nil
}
