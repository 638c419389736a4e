package session

import (
	"errors"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/server/services"
)

// Confirmation notices.
const (
	NoticeSignedUp   = "Account created successfully! Please Login."
	NoticeLoggedIn   = "Login successful!"
	NoticeTranslated = "Translation Successful!"
)

// Messages turns an action error into what the visitor is shown.
func Messages(err error) []string {
	if err == nil {
		return nil
	}

	var verrs services.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Messages()
	}
	return []string{Message(err)}
}

// Message returns the single user-facing message for err.
func Message(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, common.ErrEmptyInput):
		return "Please provide valid input by speaking or typing."
	case errors.Is(err, common.ErrRecognitionFailure):
		return "Sorry, could not recognize speech."
	case errors.Is(err, common.ErrTranslationService):
		return "Translation failed. Please try again."
	case errors.Is(err, common.ErrUnsupportedLanguage):
		return "Audio is not available for the selected target language."
	case errors.Is(err, common.ErrSynthesisFailure):
		return "Could not generate audio for the translation."
	case errors.Is(err, common.ErrUnknownLanguage):
		return "Please select a language from the list."
	case errors.Is(err, common.ErrValidation):
		return "Please check the form and try again."
	case errors.Is(err, common.ErrInvalidTransition):
		return "This action is not available on the current page."
	case errors.Is(err, common.ErrSessionNotFound):
		return "Your session has expired. Please start again."
	default:
		return "Something went wrong. Please try again."
	}
}
