// Package token mints and verifies the role-access credentials embedded in
// signing links. A credential binds a document id and a role number under an
// HMAC secret with a fixed expiry, so each emailed link works standalone
// without a server-side session.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const claimType = "role-access"

// DefaultTTL matches the expiry promised in the signing email.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// malformed structure or wrong claim shape. Verification is all-or-nothing.
var ErrInvalidToken = errors.New("invalid or expired token")

// RoleAccess is the verified identity carried by a credential.
type RoleAccess struct {
	DocumentID string
	RoleNumber int
}

type roleClaims struct {
	DocumentID string `json:"documentId"`
	RoleNumber int    `json:"roleNumber"`
	Type       string `json:"type"`
	jwt.RegisteredClaims
}

// Issue mints a signed credential for one role of one document.
func Issue(documentID string, roleNumber int, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := roleClaims{
		DocumentID: documentID,
		RoleNumber: roleNumber,
		Type:       claimType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign role access token: %w", err)
	}
	return signed, nil
}

// Verify checks integrity and expiry and decodes the bound role identity.
func Verify(tokenString, secret string) (*RoleAccess, error) {
	var claims roleClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != claimType || claims.DocumentID == "" || claims.RoleNumber < 1 || claims.RoleNumber > 3 {
		return nil, ErrInvalidToken
	}

	return &RoleAccess{
		DocumentID: claims.DocumentID,
		RoleNumber: claims.RoleNumber,
	}, nil
}
