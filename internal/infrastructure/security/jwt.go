// Package security provides JWT token utilities
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ValidateJWT validates a JWT token and returns the claims
func ValidateJWT(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GenerateSubscriberToken creates a JWT for a captured lead. The token lets a
// returning visitor skip the subscribe prompts across devices.
func GenerateSubscriberToken(leadID, fingerprint, email, jwtSecret string) (string, error) {
	claims := jwt.MapClaims{
		"leadId":      leadID,
		"fingerprint": fingerprint,
		"email":       email,
		"role":        "subscriber",
		"iat":         time.Now().UTC().Unix(),
		"exp":         time.Now().UTC().Add(30 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// GenerateSysopToken creates a short-lived JWT for the operator console.
func GenerateSysopToken(jwtSecret string) (string, error) {
	claims := jwt.MapClaims{
		"role": "sysop",
		"iat":  time.Now().UTC().Unix(),
		"exp":  time.Now().UTC().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// IsSysopClaims reports whether validated claims carry the operator role.
func IsSysopClaims(claims jwt.MapClaims) bool {
	role, _ := claims["role"].(string)
	return role == "sysop"
}
