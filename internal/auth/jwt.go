// Package auth implements token issuing and the login endpoints. Everything
// past the signature check (role and permission resolution) lives in the
// middleware and access packages; tokens only carry identity claims.
package auth

import (
	"fmt"
	"os"
	"time"

	"RecruitPilot-backend/internal/model"

	"github.com/golang-jwt/jwt/v4"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// JwtIssuer is the expected issuer claim on every token we sign.
const JwtIssuer = "RecruitPilot"

var (
	secretKey        = os.Getenv("SECRET_KEY")
	refreshSecretKey = os.Getenv("REFRESH_SECRET_KEY")
)

// Claims is the signed claim set: subject is the user id, plus the email and
// role name present at signing time. The backend re-resolves role and
// permissions from the database on every request, so a stale role claim
// cannot grant anything.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateTokenPair signs an access token (1h) and a refresh token (7d) for
// the given user.
func GenerateTokenPair(user model.User, roleName string) (string, string, error) {

	now := time.Now()
	claims := Claims{
		Email: user.Email,
		Role:  roleName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    JwtIssuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
	if err != nil {
		return "", "", fmt.Errorf("Failed to sign token: %s", err)
	}

	claims.ExpiresAt = jwt.NewNumericDate(now.Add(7 * 24 * time.Hour))
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(refreshSecretKey))
	if err != nil {
		return "", "", fmt.Errorf("Failed to sign refresh token: %s", err)
	}

	return accessToken, refreshToken, nil
}

// ValidatedToken parses and verifies an access token.
func ValidatedToken(encodeToken string) (*jwt.Token, error) {
	return parseWithSecret(encodeToken, secretKey)
}

// ValidatedRefreshToken parses and verifies a refresh token.
func ValidatedRefreshToken(encodeToken string) (*jwt.Token, error) {
	return parseWithSecret(encodeToken, refreshSecretKey)
}

func parseWithSecret(encodeToken, secret string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(encodeToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return []byte(secret), nil
	})
}
