package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/sashabaranov/go-openai"
)

const maxAudioSize = 16 << 20

// FormatMP3 is the only format the synthesizer produces.
const FormatMP3 = "mp3"

// Audio is synthesized speech.
type Audio struct {
	Data   []byte
	Format string
}

// DataURI encodes the audio for inline playback.
func (a Audio) DataURI() string {
	if len(a.Data) == 0 {
		return ""
	}
	return fmt.Sprintf("data:audio/%s;base64,%s", a.Format, base64.StdEncoding.EncodeToString(a.Data))
}

type speaker interface {
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

// Synthesizer speaks text in a given language as MP3.
type Synthesizer struct {
	client    speaker
	model     string
	voice     string
	timeout   time.Duration
	supported map[string]struct{}
	logger    logging.Logger
}

// NewSynthesizer builds a Synthesizer. languages lists the accepted base
// codes; nil means DefaultLanguages().
func NewSynthesizer(client *openai.Client, model, voice string, timeout time.Duration, languages []string, logger logging.Logger) *Synthesizer {
	if model == "" {
		model = string(openai.TTSModel1)
	}
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	if languages == nil {
		languages = DefaultLanguages()
	}
	supported := make(map[string]struct{}, len(languages))
	for _, l := range languages {
		supported[strings.ToLower(l)] = struct{}{}
	}
	return &Synthesizer{
		client:    client,
		model:     model,
		voice:     voice,
		timeout:   timeout,
		supported: supported,
		logger:    logger.With("module", "speech.synthesizer"),
	}
}

// Supports reports whether code can be synthesized.
func (s *Synthesizer) Supports(code string) bool {
	base, ok := BaseCode(code)
	if !ok {
		return false
	}
	_, ok = s.supported[base]
	return ok
}

// Synthesize returns MP3 audio of text. Unsupported codes fail with
// *UnsupportedLanguageError before any remote call.
func (s *Synthesizer) Synthesize(ctx context.Context, text, code string) (Audio, error) {
	if !s.Supports(code) {
		return Audio{}, &UnsupportedLanguageError{Code: code}
	}
	if strings.TrimSpace(text) == "" {
		return Audio{}, common.ErrEmptyInput
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// the voice picks the language from the text itself
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.SpeechVoice(s.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		s.logger.Warn(ctx, "speech request failed", "language", code, "error", err)
		return Audio{}, &SynthesisError{Err: err}
	}
	defer resp.Close()

	data, err := io.ReadAll(io.LimitReader(resp, maxAudioSize))
	if err != nil {
		return Audio{}, &SynthesisError{Err: err}
	}
	if len(data) == 0 {
		return Audio{}, &SynthesisError{Err: errors.New("empty audio")}
	}

	s.logger.Debug(ctx, "speech synthesized", "language", code, "bytes", len(data))
	return Audio{Data: data, Format: FormatMP3}, nil
}
