package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/itchyny/gojq"
)

// DefaultBaseURL is the public gtx endpoint host.
const DefaultBaseURL = "https://translate.googleapis.com"

const maxResponseSize = 1 << 20

var (
	// The gtx payload is a nested array: [[["segment", "orig", ...], ...], null, "detected", ...].
	textQuery     = mustCompile(`[(.[0]? // [])[]? | .[0]? | strings] | join("")`)
	detectedQuery = mustCompile(`.[2]? | strings`)

	errEmptyTranslation = errors.New("empty translation")
)

func mustCompile(src string) *gojq.Code {
	q, err := gojq.Parse(src)
	if err != nil {
		panic(err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		panic(err)
	}
	return code
}

// GoogleTranslator calls the gtx single-translation endpoint. TLS settings of
// the supplied client are used as is; the default client verifies
// certificates.
type GoogleTranslator struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// NewGoogleTranslator returns a translator for baseURL (DefaultBaseURL when
// empty) with the given per-call timeout.
func NewGoogleTranslator(baseURL string, timeout time.Duration, logger logging.Logger) *GoogleTranslator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GoogleTranslator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("module", "translate"),
	}
}

// Translate translates text from source to target. An empty source or
// AutoDetect lets the service detect the language.
func (g *GoogleTranslator) Translate(ctx context.Context, text, source, target string) (Translation, error) {
	if source == "" {
		source = AutoDetect
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/translate_a/single?"+q.Encode(), nil)
	if err != nil {
		return Translation{}, &Error{Op: "request", Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn(ctx, "translation request failed", "error", err)
		return Translation{}, &Error{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Translation{}, &Error{Op: "read", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Warn(ctx, "translation service returned error", "status", resp.StatusCode)
		return Translation{}, &Error{Op: "request", StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	return parseResponse(body)
}

func parseResponse(body []byte) (Translation, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return Translation{}, &Error{Op: "decode", Err: err}
	}

	text, err := first(textQuery, payload)
	if err != nil {
		return Translation{}, &Error{Op: "decode", Err: err}
	}
	s, _ := text.(string)
	if strings.TrimSpace(s) == "" {
		return Translation{}, &Error{Op: "decode", Err: errEmptyTranslation}
	}

	detected, err := first(detectedQuery, payload)
	if err != nil {
		return Translation{}, &Error{Op: "decode", Err: err}
	}
	lang, _ := detected.(string)

	return Translation{Text: s, DetectedLanguage: lang}, nil
}

// first returns the first value produced by code, or nil when it yields none.
func first(code *gojq.Code, input any) (any, error) {
	iter := code.Run(input)
	v, ok := iter.Next()
	if !ok {
		return nil, nil
	}
	if err, isErr := v.(error); isErr {
		return nil, err
	}
	return v, nil
}
