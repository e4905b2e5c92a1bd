package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/okfde/froide-campaign-service/internal/models"
)

var ErrAuthDisabled = errors.New("token authentication is not configured")

// TokenService validates the access tokens issued by the request platform
type TokenService struct {
	jwtSecret []byte
	issuer    string
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		jwtSecret: []byte(secret),
		issuer:    "froide",
	}
}

// Enabled reports whether a signing secret is configured
func (s *TokenService) Enabled() bool {
	return len(s.jwtSecret) > 0
}

// ValidateToken validates and parses a JWT token
func (s *TokenService) ValidateToken(tokenString string) (*models.User, error) {
	if !s.Enabled() {
		return nil, ErrAuthDisabled
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return &models.User{
		ID:      claims.UserID,
		Email:   claims.Email,
		IsStaff: claims.IsStaff,
	}, nil
}

// GenerateToken signs a token for the user, used by tooling and tests
func (s *TokenService) GenerateToken(user *models.User, ttl time.Duration) (string, error) {
	if !s.Enabled() {
		return "", ErrAuthDisabled
	}

	now := time.Now()
	claims := &models.JWTClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsStaff: user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
