package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
)

const (
	MsgMissingHeader   = "Authorization header must be set for a successful request"
	MsgMalformedHeader = "Authentication Header is poorly formatted. The acceptable format is `Bearer <jwt_token>`"
	MsgRevokedToken    = "error in token: the token has been revoked: please re-login"
	MsgInvalidToken    = "error in token: the given token is invalid. please re-login"
	MsgExpiredToken    = "error in token: the token has expired: please re-login"
)

// RevocationChecker reports whether a token was revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// TokenDecoder turns a token into the user id it was issued for.
type TokenDecoder interface {
	Decode(token string) (int64, error)
}

// Gate authenticates the value of an Authorization header. It holds no
// mutable state and is safe for concurrent use.
type Gate struct {
	revocations RevocationChecker
	decoder     TokenDecoder
}

func NewGate(revocations RevocationChecker, decoder TokenDecoder) *Gate {
	return &Gate{revocations: revocations, decoder: decoder}
}

// Authenticate checks header in a single pass: presence, shape,
// revocation, then signature and expiry. On success it returns the user id
// and the bare token; otherwise a *common.Failure, or a plain error when
// the revocation lookup itself failed.
func (g *Gate) Authenticate(ctx context.Context, header string) (int64, string, error) {
	if header == "" {
		return 0, "", common.NewFailure(common.KindMissingCredential, http.StatusForbidden, MsgMissingHeader)
	}

	token, ok := BearerToken(header)
	if !ok {
		return 0, "", common.NewFailure(common.KindMalformedCredential, http.StatusForbidden, MsgMalformedHeader)
	}

	revoked, err := g.revocations.IsRevoked(ctx, token)
	if err != nil {
		return 0, "", err
	}
	if revoked {
		return 0, "", common.NewFailure(common.KindRevokedCredential, http.StatusUnauthorized, MsgRevokedToken)
	}

	userID, err := g.decoder.Decode(token)
	switch {
	case err == nil:
		return userID, token, nil
	case errors.Is(err, common.ErrTokenExpired):
		return 0, "", common.NewFailure(common.KindExpiredCredential, http.StatusUnauthorized, MsgExpiredToken)
	default:
		return 0, "", common.NewFailure(common.KindInvalidCredential, http.StatusUnauthorized, MsgInvalidToken)
	}
}

// BearerToken splits "Bearer <token>" into its token. The scheme is
// matched case-insensitively and exactly two fields are required.
func BearerToken(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", false
	}
	return fields[1], true
}
