package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/pooya1361/makerspace/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by access tokens: the user's email as subject plus the
// single role label.
type Claims struct {
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256-signed JWTs.
type TokenService struct {
	secret            []byte
	expiration        time.Duration
	refreshExpiration time.Duration
}

func NewTokenService(secret string, expiration, refreshExpiration time.Duration) *TokenService {
	return &TokenService{
		secret:            []byte(secret),
		expiration:        expiration,
		refreshExpiration: refreshExpiration,
	}
}

// GenerateToken creates an access token for the given user.
func (s *TokenService) GenerateToken(user *models.User) (string, error) {
	return s.buildToken(user, s.expiration)
}

// GenerateRefreshToken creates a longer-lived refresh token.
func (s *TokenService) GenerateRefreshToken(user *models.User) (string, error) {
	return s.buildToken(user, s.refreshExpiration)
}

func (s *TokenService) buildToken(user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserType: string(user.UserType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates a token string and returns its claims.
func (s *TokenService) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
