package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated caller's identity. UniversityID is the
// stable identifier used for trip ownership and reservations.
type Claims struct {
	UserID       string
	UniversityID string
}

// TokenManager issues and verifies the HS256 JWTs used as identity tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a new TokenManager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity.
func (m *TokenManager) Issue(userID, universityID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":           userID,
		"university_id": universityID,
		"iat":           now.Unix(),
		"exp":           now.Add(m.ttl).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies a token and extracts the caller's identity. Any failure,
// including an unexpected signing method, yields ErrInvalidCredentials.
func (m *TokenManager) Parse(raw string) (Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidCredentials
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidCredentials
	}

	userID, _ := mapClaims["sub"].(string)
	universityID, _ := mapClaims["university_id"].(string)
	if userID == "" || universityID == "" {
		return Claims{}, ErrInvalidCredentials
	}

	return Claims{UserID: userID, UniversityID: universityID}, nil
}
