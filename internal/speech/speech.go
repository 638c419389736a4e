// Package speech turns uploaded audio into text and text into MP3 audio using
// the OpenAI audio endpoints (Whisper transcription and text-to-speech).
package speech

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/sashabaranov/go-openai"
)

// NewClient returns an OpenAI client for apiKey. A non-empty baseURL replaces
// the public endpoint (used for compatible gateways and tests).
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return openai.NewClientWithConfig(cfg)
}

// Reasons attached to a RecognitionError.
const (
	ReasonNoSpeech = "no-speech"
	ReasonTimeout  = "timeout"
	ReasonCanceled = "canceled"
	ReasonService  = "service"
)

// RecognitionError reports why an utterance produced no text. It matches
// common.ErrRecognitionFailure.
type RecognitionError struct {
	Reason string
	Err    error
}

func (e *RecognitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("speech recognition failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("speech recognition failed (%s)", e.Reason)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

func (e *RecognitionError) Is(target error) bool { return target == common.ErrRecognitionFailure }

// UnsupportedLanguageError is returned by Synthesize for codes the voice
// engine cannot speak. It matches common.ErrUnsupportedLanguage.
type UnsupportedLanguageError struct {
	Code string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("speech synthesis does not support language %q", e.Code)
}

func (e *UnsupportedLanguageError) Is(target error) bool { return target == common.ErrUnsupportedLanguage }

// SynthesisError wraps a failed text-to-speech call. It matches
// common.ErrSynthesisFailure.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string { return fmt.Sprintf("speech synthesis failed: %v", e.Err) }

func (e *SynthesisError) Unwrap() error { return e.Err }

func (e *SynthesisError) Is(target error) bool { return target == common.ErrSynthesisFailure }
