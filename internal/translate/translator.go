// Package translate converts text between languages through a remote
// translation endpoint.
package translate

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/polyglot/internal/common"
)

// AutoDetect asks the service to detect the source language.
const AutoDetect = "auto"

// Translation is the outcome of one successful call.
type Translation struct {
	Text string
	// DetectedLanguage is the source language reported by the service, if any.
	DetectedLanguage string
}

// Translator is implemented by every translation backend.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (Translation, error)
}

// Error is the single error type returned by translators. It matches
// common.ErrTranslationService with errors.Is.
type Error struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("translate %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("translate %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == common.ErrTranslationService }
