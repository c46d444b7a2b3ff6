package auth

import (
	"mentorapp/internal/config"
	"mentorapp/internal/models"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of an access token.
type Claims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// NewAccessToken signs a token for the given user with the configured secret, issuer and TTL.
func NewAccessToken(userID, email string, role models.Role) (string, error) {
	return newAccessToken(config.Config.JWTSecret, config.Config.JWTIssuer, config.Config.TokenTTL, userID, email, role, time.Now())
}

func newAccessToken(secret, issuer string, ttl time.Duration, userID, email string, role models.Role, now time.Time) (string, error) {
	now = now.UTC()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature, expiry and issuer of a token and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	return parseToken(config.Config.JWTSecret, config.Config.JWTIssuer, tokenString)
}

func parseToken(secret, issuer, tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
