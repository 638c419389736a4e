package speech

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/sashabaranov/go-openai"
)

// Utterance is one recorded piece of speech.
type Utterance struct {
	Audio    io.Reader
	Filename string
	// Language is an optional hint (catalog code); empty means detect.
	Language string
}

// Recognition is the text heard in an utterance.
type Recognition struct {
	Text string
	// Language is the ISO 639-1 code Whisper detected, if any.
	Language string
}

type transcriber interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// Recognizer transcribes utterances through Whisper. Each call is bounded by
// the listen timeout and by the caller's context.
type Recognizer struct {
	client  transcriber
	model   string
	timeout time.Duration
	logger  logging.Logger
}

// NewRecognizer builds a Recognizer transcribing with model. Every Listen
// call is bounded by timeout.
func NewRecognizer(client *openai.Client, model string, timeout time.Duration, logger logging.Logger) *Recognizer {
	if model == "" {
		model = openai.Whisper1
	}
	return &Recognizer{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger.With("module", "speech.recognizer"),
	}
}

// Listen returns the recognised text or a *RecognitionError.
func (r *Recognizer) Listen(ctx context.Context, u Utterance) (Recognition, error) {
	if u.Audio == nil {
		return Recognition{}, &RecognitionError{Reason: ReasonNoSpeech, Err: errors.New("no audio")}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	filename := u.Filename
	if filename == "" {
		filename = "speech.webm"
	}

	req := openai.AudioRequest{
		Model:    r.model,
		FilePath: filename,
		Reader:   u.Audio,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if u.Language != "" {
		if base, ok := BaseCode(u.Language); ok {
			req.Language = base
		}
	}

	resp, err := r.client.CreateTranscription(ctx, req)
	if err != nil {
		reason := ReasonService
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			reason = ReasonTimeout
		case errors.Is(ctx.Err(), context.Canceled):
			reason = ReasonCanceled
		}
		r.logger.Warn(ctx, "transcription failed", "reason", reason, "error", err)
		return Recognition{}, &RecognitionError{Reason: reason, Err: err}
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return Recognition{}, &RecognitionError{Reason: ReasonNoSpeech}
	}

	rec := Recognition{Text: text, Language: NormalizeLanguage(resp.Language)}
	r.logger.Debug(ctx, "transcription done", "language", rec.Language, "length", len(text))
	return rec, nil
}
