package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a Failure. Kinds are flat: each one maps to a single HTTP
// status and a fixed message template.
type Kind int

const (
	KindInternal Kind = iota
	KindMissingInput
	KindMalformedInput
	KindMissingCredential
	KindMalformedCredential
	KindInvalidCredential
	KindExpiredCredential
	KindRevokedCredential
	KindForbidden
	KindNonIntegerIdentifier
	KindNotFound
	KindConflict
	KindNoChanges
)

var kindNames = map[Kind]string{
	KindInternal:             "internal",
	KindMissingInput:         "missing_input",
	KindMalformedInput:       "malformed_input",
	KindMissingCredential:    "missing_credential",
	KindMalformedCredential:  "malformed_credential",
	KindInvalidCredential:    "invalid_credential",
	KindExpiredCredential:    "expired_credential",
	KindRevokedCredential:    "revoked_credential",
	KindForbidden:            "forbidden",
	KindNonIntegerIdentifier: "non_integer_identifier",
	KindNotFound:             "not_found",
	KindConflict:             "conflict",
	KindNoChanges:            "no_changes",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Failure is a caller-visible outcome: what went wrong, the message shown to
// the client and the HTTP status it maps to. Every layer returns it unchanged
// so the HTTP boundary can render it verbatim.
type Failure struct {
	Kind    Kind
	Message string
	Status  int
}

func (f *Failure) Error() string {
	return f.Message
}

// NewFailure builds a Failure with msg used as-is.
func NewFailure(kind Kind, status int, msg string) *Failure {
	return &Failure{Kind: kind, Message: msg, Status: status}
}

// NewFailuref builds a Failure with a formatted message.
func NewFailuref(kind Kind, status int, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...), Status: status}
}

// InternalFailure is what any non-Failure error collapses to at the HTTP boundary.
var InternalFailure = &Failure{
	Kind:    KindInternal,
	Message: "an internal server error occurred, please try again later",
	Status:  http.StatusInternalServerError,
}

// AsFailure extracts a *Failure from err. Any other non-nil error is reported
// as InternalFailure with ok=false so callers can log the original.
func AsFailure(err error) (f *Failure, ok bool) {
	if err == nil {
		return nil, false
	}
	if errors.As(err, &f) {
		return f, true
	}
	return InternalFailure, false
}
