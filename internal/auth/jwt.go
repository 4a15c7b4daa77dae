// Package auth implements credential verification and access token handling.
package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// JwtIssuer identifies tokens minted by this service
const JwtIssuer = "UniHire"

// AuthCookieName is the cookie carrying the access token for the page layer
const AuthCookieName = "unihire_token"

var secretKey = os.Getenv("SECRET_KEY")

// GenerateStandardToken mints a signed access token for the given user ID.
// The second return value is reserved for a refresh token.
func GenerateStandardToken(userID uint) (string, string, error) {
	return GenerateTokenWithDuration(userID, 24*time.Hour, JwtIssuer)
}

// GenerateTokenWithDuration mints a token with an explicit lifetime and issuer.
func GenerateTokenWithDuration(userID uint, lifetime time.Duration, issuer string) (string, string, error) {

	generatedAccessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	signedToken, err := generatedAccessToken.SignedString([]byte(secretKey))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %s", err)
	}

	return signedToken, "", nil
}

// ValidatedToken parses an encoded token and verifies its signature.
func ValidatedToken(encodeToken string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return []byte(secretKey), nil
	})
}
