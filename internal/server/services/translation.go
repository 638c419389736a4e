package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/storage"
	"github.com/dmitrijs2005/polyglot/internal/speech"
	"github.com/dmitrijs2005/polyglot/internal/translate"
)

// Synthesizer speaks text in a language.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, code string) (speech.Audio, error)
}

// TranslationRequest is one translate action. Codes come from the catalog;
// an empty SourceCode asks for detection.
type TranslationRequest struct {
	Text       string
	SourceCode string
	TargetCode string
}

// TranslationResult is the translated text with its spoken form.
type TranslationResult struct {
	SourceText       string
	TranslatedText   string
	SourceLanguage   string
	TargetLanguage   string
	DetectedLanguage string
	Audio            speech.Audio
	// AudioURL is a download link for the archived audio, when archiving is on.
	AudioURL string
}

// TranslationService translates text and voices the result.
type TranslationService struct {
	translator  translate.Translator
	synthesizer Synthesizer
	archive     storage.Archive
	logger      logging.Logger
}

// NewTranslationService wires the adapters together. archive may be nil.
func NewTranslationService(t translate.Translator, s Synthesizer, archive storage.Archive, logger logging.Logger) *TranslationService {
	return &TranslationService{
		translator:  t,
		synthesizer: s,
		archive:     archive,
		logger:      logger.With("module", "translation"),
	}
}

// Translate rejects blank input without calling any adapter. Translator and
// synthesizer errors are returned unchanged; archive errors are only logged.
func (s *TranslationService) Translate(ctx context.Context, req TranslationRequest) (*TranslationResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, common.ErrEmptyInput
	}
	if req.TargetCode == "" {
		return nil, fmt.Errorf("%w: no target language", common.ErrUnknownLanguage)
	}

	tr, err := s.translator.Translate(ctx, req.Text, req.SourceCode, req.TargetCode)
	if err != nil {
		return nil, err
	}

	audio, err := s.synthesizer.Synthesize(ctx, tr.Text, req.TargetCode)
	if err != nil {
		return nil, err
	}

	res := &TranslationResult{
		SourceText:       req.Text,
		TranslatedText:   tr.Text,
		SourceLanguage:   req.SourceCode,
		TargetLanguage:   req.TargetCode,
		DetectedLanguage: tr.DetectedLanguage,
		Audio:            audio,
	}

	if s.archive != nil {
		key, url, err := s.archive.Store(ctx, audio.Data, "audio/mpeg")
		if err != nil {
			s.logger.Warn(ctx, "audio archive failed", "error", err)
		} else {
			res.AudioURL = url
			s.logger.Debug(ctx, "audio archived", "key", key)
		}
	}

	s.logger.Info(ctx, "translated", "source", req.SourceCode, "target", req.TargetCode, "detected", tr.DetectedLanguage)
	return res, nil
}
