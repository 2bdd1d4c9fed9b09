// Package auth turns credentials into authenticated user ids: it hashes
// passwords, issues and decodes signed bearer tokens, and gates requests on
// the Authorization header.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Codec issues and decodes HS256 bearer tokens. It is built once at
// startup and shared; it holds no mutable state.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec signing with secret. ttl is the lifetime used
// by IssueNow.
func NewCodec(secret []byte, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl, now: time.Now}
}

// TTL is the default token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token for userID valid from issuedAt for ttl.
func (c *Codec) Issue(userID int64, issuedAt time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// IssueNow signs a token for userID using the current time and the
// codec's TTL.
func (c *Codec) IssueNow(userID int64) (string, error) {
	return c.Issue(userID, c.now(), c.ttl)
}

// Decode verifies the signature and expiry of token and returns its
// subject. It fails with common.ErrInvalidToken for anything that is not a
// well-formed token signed by this codec, and with common.ErrTokenExpired
// once the current time is past the expiry.
func (c *Codec) Decode(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}

	// Expiry is checked below so that a token stays valid up to and
	// including its exp second.
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return 0, common.ErrInvalidToken
	}

	if claims.ExpiresAt == nil {
		return 0, common.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}

	if c.now().After(claims.ExpiresAt.Time) {
		return 0, common.ErrTokenExpired
	}

	return userID, nil
}
