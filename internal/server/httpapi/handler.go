// Package httpapi exposes the session controller over HTTP/JSON for the
// browser front end.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/auth"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/services"
	"github.com/dmitrijs2005/polyglot/internal/server/session"
	"github.com/dmitrijs2005/polyglot/internal/speech"
)

const (
	maxJSONBody  = 1 << 20
	maxAudioBody = 20 << 20
)

// Sessions is the subset of session.Controller the handlers use.
type Sessions interface {
	Start(ctx context.Context) session.Session
	Get(ctx context.Context, id string) (session.Session, error)
	SubmitSignup(ctx context.Context, id string, f services.SignupForm) (session.Session, error)
	SubmitLogin(ctx context.Context, id, username, password string) (session.Session, error)
	ShowLogin(ctx context.Context, id string) (session.Session, error)
	ShowSignup(ctx context.Context, id string) (session.Session, error)
	Logout(ctx context.Context, id string) (session.Session, error)
	SetText(ctx context.Context, id, text string) (session.Session, error)
	Speak(ctx context.Context, id, source string, u speech.Utterance) (session.Session, error)
	Translate(ctx context.Context, id, source, target string) (session.Session, error)
	Languages(ctx context.Context) ([]models.Language, error)
}

var generateToken = auth.GenerateToken

// Handler serves the JSON API on top of a session controller.
type Handler struct {
	sessions  Sessions
	jwtSecret []byte
	logger    logging.Logger
}

// NewHandler constructs a Handler signing session tokens with secretKey.
func NewHandler(s Sessions, secretKey string, logger logging.Logger) *Handler {
	return &Handler{
		sessions:  s,
		jwtSecret: []byte(secretKey),
		logger:    logger.With("module", "httpapi"),
	}
}

// CreateSession starts a session and returns its bearer token.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Start(r.Context())

	token, err := generateToken(s.ID, h.jwtSecret, time.Until(s.ExpiresAt))
	if err != nil {
		h.logger.Error(r.Context(), "token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, createdView{Token: token, Session: newSessionView(s)})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.Context(), sessionID(r))
	h.respond(w, r, s, err)
}

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.sessions.SubmitSignup(r.Context(), sessionID(r), services.SignupForm{
		Name:            req.Name,
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	h.respond(w, r, s, err)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.sessions.SubmitLogin(r.Context(), sessionID(r), req.Username, req.Password)
	h.respond(w, r, s, err)
}

type navigateRequest struct {
	Page string `json:"page"`
}

// Navigate follows the links between the signup and login pages.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	page, err := session.ParsePage(req.Page)
	if err != nil || page == session.PageHome {
		writeError(w, http.StatusBadRequest, "page must be login or signup")
		return
	}

	var s session.Session
	if page == session.PageLogin {
		s, err = h.sessions.ShowLogin(r.Context(), sessionID(r))
	} else {
		s, err = h.sessions.ShowSignup(r.Context(), sessionID(r))
	}
	h.respond(w, r, s, err)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Logout(r.Context(), sessionID(r))
	h.respond(w, r, s, err)
}

func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	langs, err := h.sessions.Languages(r.Context())
	if err != nil {
		writeError(w, statusFor(err), session.Message(err))
		return
	}
	out := make([]languageView, len(langs))
	for i, l := range langs {
		out[i] = languageView{Name: l.Name, Code: l.Code}
	}
	writeJSON(w, http.StatusOK, out)
}

type textRequest struct {
	Text string `json:"text"`
}

func (h *Handler) TextInput(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.sessions.SetText(r.Context(), sessionID(r), req.Text)
	h.respond(w, r, s, err)
}

// SpeechInput accepts a multipart upload with the recording in "audio" and
// the optional catalog name of the spoken language in "source".
func (h *Handler) SpeechInput(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBody)
	if err := r.ParseMultipartForm(maxAudioBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing audio file")
		return
	}
	defer file.Close()

	s, err := h.sessions.Speak(r.Context(), sessionID(r), r.FormValue("source"), speech.Utterance{
		Audio:    file,
		Filename: header.Filename,
	})
	h.respond(w, r, s, err)
}

type translateRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.sessions.Translate(r.Context(), sessionID(r), req.Source, req.Target)
	h.respond(w, r, s, err)
}

func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// respond writes the session view with a status derived from err. An unknown
// session has no view to show.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, s session.Session, err error) {
	if errors.Is(err, common.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, session.Message(err))
		return
	}
	status := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, newSessionView(s))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorView{Error: msg})
}
