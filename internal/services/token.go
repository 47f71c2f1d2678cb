package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenService struct {
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
}

// Claims carries the canonical numeric user id. Expiry is always set.
type Claims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		jwtSecret: []byte(cfg.JWT.Secret),
		ttl:       cfg.JWT.TTL,
		now:       time.Now,
	}
}

// GenerateToken signs an HS256 token for userID that expires after the configured TTL.
func (s *TokenService) GenerateToken(userID uint) (string, time.Time, error) {
	expiresAt := s.now().Add(s.ttl)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies signature and expiry. Every failure is reported as
// ErrInvalidToken wrapping the parser error.
func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
