package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the lifetime of an RM session token
const TokenTTL = 24 * time.Hour

// Login authenticates the relationship manager and returns a JWT token
func (s *Service) Login(username, password string) (string, error) {
	if !s.config.AuthEnabled() {
		return "", fmt.Errorf("%w: authentication is not configured", ErrFeatureDisabled)
	}

	if subtle.ConstantTimeCompare([]byte(username), []byte(s.config.RMUsername)) != 1 {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.RMPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("RM logged in: %s", username)
	return tokenString, nil
}
