package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/polyglot/internal/common"
)

// statusFor maps an action error to an HTTP status.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, common.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrInvalidTransition), errors.Is(err, common.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrRecognitionFailure), errors.Is(err, common.ErrUnsupportedLanguage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrEmptyInput), errors.Is(err, common.ErrUnknownLanguage):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrTranslationService), errors.Is(err, common.ErrSynthesisFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
