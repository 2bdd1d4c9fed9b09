// Package services contains server-side business logic: accounts and
// credentials, shopping lists and their items. Every caller-visible
// outcome is returned as a *common.Failure; any other error is an
// infrastructure failure the HTTP layer reports as a 500.
package services

import (
	"net/http"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
)

func missingInput(msg string) *common.Failure {
	return common.NewFailure(common.KindMissingInput, http.StatusBadRequest, msg)
}

func malformedInput(msg string) *common.Failure {
	return common.NewFailure(common.KindMalformedInput, http.StatusBadRequest, msg)
}

func forbidden(msg string) *common.Failure {
	return common.NewFailure(common.KindForbidden, http.StatusForbidden, msg)
}

func forbiddenf(format string, args ...any) *common.Failure {
	return common.NewFailuref(common.KindForbidden, http.StatusForbidden, format, args...)
}

func conflictf(format string, args ...any) *common.Failure {
	return common.NewFailuref(common.KindConflict, http.StatusConflict, format, args...)
}

func notFound(msg string) *common.Failure {
	return common.NewFailure(common.KindNotFound, http.StatusNotFound, msg)
}

func nonInteger(msg string) *common.Failure {
	return common.NewFailure(common.KindNonIntegerIdentifier, http.StatusBadRequest, msg)
}

// noChanges is reported with 200: the request was fine, it just did nothing.
func noChanges(msg string) *common.Failure {
	return common.NewFailure(common.KindNoChanges, http.StatusOK, msg)
}
