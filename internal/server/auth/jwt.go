// Package auth issues and checks the HS256 access tokens that API callers
// present to the note store. Tokens identify a calling client, not a user.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "sealnote"

// Claims carries the standard claims; Subject names the API client.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs a token for subject. A validity of zero or less
// yields a token without expiry.
func GenerateToken(subject string, secretKey []byte, validity time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: subject is required", common.ErrorValidation)
	}

	now := time.Now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:   issuer,
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(now),
	}}
	if validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(validity))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// SubjectFromToken validates tokenString and returns its subject. Any
// failure is reported as common.ErrInvalidToken.
func SubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return "", errors.Join(common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
