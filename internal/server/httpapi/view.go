package httpapi

import (
	"time"

	"github.com/dmitrijs2005/polyglot/internal/server/session"
)

type inputView struct {
	Text             string `json:"text"`
	Method           string `json:"method,omitempty"`
	RecognitionError string `json:"recognition_error,omitempty"`
}

type resultView struct {
	SourceText       string `json:"source_text"`
	TranslatedText   string `json:"translated_text"`
	SourceLanguage   string `json:"source_language,omitempty"`
	TargetLanguage   string `json:"target_language"`
	DetectedLanguage string `json:"detected_language,omitempty"`
	Audio            string `json:"audio,omitempty"`
	AudioURL         string `json:"audio_url,omitempty"`
}

// sessionView is what every session endpoint returns.
type sessionView struct {
	Page             session.Page `json:"page"`
	Username         string       `json:"username,omitempty"`
	Input            inputView    `json:"input"`
	DetectedLanguage string       `json:"detected_language,omitempty"`
	Errors           []string     `json:"errors"`
	Notice           string       `json:"notice,omitempty"`
	Result           *resultView  `json:"result,omitempty"`
	ExpiresAt        time.Time    `json:"expires_at"`
}

type createdView struct {
	Token   string      `json:"token"`
	Session sessionView `json:"session"`
}

type languageView struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type errorView struct {
	Error string `json:"error"`
}

func newSessionView(s session.Session) sessionView {
	v := sessionView{
		Page:             s.Page,
		Username:         s.Username,
		DetectedLanguage: s.DetectedLanguage,
		Errors:           s.Errors,
		Notice:           s.Notice,
		ExpiresAt:        s.ExpiresAt,
		Input: inputView{
			Text:   s.Input.Text,
			Method: string(s.Input.Method),
		},
	}
	if v.Errors == nil {
		v.Errors = []string{}
	}
	if s.Input.RecognitionErr != nil {
		v.Input.RecognitionError = session.Message(s.Input.RecognitionErr)
	}
	if r := s.LastResult; r != nil {
		v.Result = &resultView{
			SourceText:       r.SourceText,
			TranslatedText:   r.TranslatedText,
			SourceLanguage:   r.SourceLanguage,
			TargetLanguage:   r.TargetLanguage,
			DetectedLanguage: r.DetectedLanguage,
			Audio:            r.Audio.DataURI(),
			AudioURL:         r.AudioURL,
		}
	}
	return v
}
