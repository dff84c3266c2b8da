package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT payload. The ID registered claim doubles as the
// session id checked against the live-session registry.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService handles JWT creation and validation.
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
}

// NewTokenService returns configured token service.
func NewTokenService(secret string, expiresIn time.Duration) *TokenService {
	if expiresIn <= 0 {
		expiresIn = time.Hour
	}
	return &TokenService{secret: []byte(secret), expiresIn: expiresIn}
}

// Expiry reports how long issued tokens live.
func (t *TokenService) Expiry() time.Duration {
	return t.expiresIn
}

// GenerateToken issues a JWT for the given user and returns the token along
// with its session id.
func (t *TokenService) GenerateToken(userID string) (token, sessionID string, err error) {
	if userID == "" {
		return "", "", errors.New("token: user id is required")
	}

	now := time.Now().UTC()
	sessionID = uuid.New().String()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiresIn)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", "", err
	}
	return token, sessionID, nil
}

// ValidateToken verifies and decodes a JWT.
func (t *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("token: unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("token: invalid claims")
}
