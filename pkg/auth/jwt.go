// Package auth issues and verifies the bearer tokens used by the
// /authentication endpoints, and hashes user passwords with bcrypt.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/voucherhub/config"
)

const (
	AccessTTL  = 24 * time.Hour
	RefreshTTL = 7 * 24 * time.Hour

	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrWrongTokenType is returned when a refresh token is presented as an
// access token or vice versa.
var ErrWrongTokenType = errors.New("auth: wrong token type")

// Claims holds the typed JWT payload. UserID is the hex ObjectID of the user.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

func sign(userID, role, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "voucherhub",
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// GenerateToken creates a signed access token for the given user.
func GenerateToken(userID, role string) (string, error) {
	return sign(userID, role, TypeAccess, AccessTTL)
}

// GenerateRefreshToken creates a longer-lived token used to refresh access.
func GenerateRefreshToken(userID, role string) (string, error) {
	return sign(userID, role, TypeRefresh, RefreshTTL)
}

// ValidateToken parses and verifies a token of any type.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ValidateAccessToken accepts only access tokens.
func ValidateAccessToken(t string) (*Claims, error) {
	return validateTyped(t, TypeAccess)
}

// ValidateRefreshToken accepts only refresh tokens.
func ValidateRefreshToken(t string) (*Claims, error) {
	return validateTyped(t, TypeRefresh)
}

func validateTyped(t, typ string) (*Claims, error) {
	claims, err := ValidateToken(t)
	if err != nil {
		return nil, err
	}
	if claims.Type != typ {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
