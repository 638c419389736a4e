package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/services"
	"github.com/dmitrijs2005/polyglot/internal/speech"
)

// Users registers and authenticates visitors.
type Users interface {
	Register(ctx context.Context, f services.SignupForm) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// Catalog resolves display names of languages to engine codes.
type Catalog interface {
	Languages(ctx context.Context) ([]models.Language, error)
	Code(ctx context.Context, name string) (string, error)
}

// Translator produces a translation with synthesized speech.
type Translator interface {
	Translate(ctx context.Context, req services.TranslationRequest) (*services.TranslationResult, error)
}

// Recognizer turns an utterance into text.
type Recognizer interface {
	Listen(ctx context.Context, u speech.Utterance) (speech.Recognition, error)
}

// Controller runs page actions against sessions held in a Store.
//
// Every action returns the session as it is after the action. Actions that
// are not allowed on the current page return common.ErrInvalidTransition and
// leave the session untouched. Other failures are recorded in
// Session.Errors, keep the current page and are also returned.
type Controller struct {
	store      *Store
	users      Users
	catalog    Catalog
	translator Translator
	recognizer Recognizer
	logger     logging.Logger
}

// NewController constructs a Controller acting on sessions in store.
func NewController(store *Store, users Users, catalog Catalog, translator Translator, recognizer Recognizer, logger logging.Logger) *Controller {
	return &Controller{
		store:      store,
		users:      users,
		catalog:    catalog,
		translator: translator,
		recognizer: recognizer,
		logger:     logger.With("module", "session"),
	}
}

// Start creates a session on the signup page.
func (c *Controller) Start(ctx context.Context) Session {
	s := c.store.Create()
	c.logger.Debug(ctx, "session started", "session", s.ID)
	return s
}

// Get returns the current state of session id.
func (c *Controller) Get(ctx context.Context, id string) (Session, error) {
	return c.store.Get(id)
}

// SubmitSignup registers a user. On success the session moves to Login.
func (c *Controller) SubmitSignup(ctx context.Context, id string, f services.SignupForm) (Session, error) {
	return c.act(id, PageSignup, func(s *Session) error {
		if _, err := c.users.Register(ctx, f); err != nil {
			return err
		}
		s.Page = PageLogin
		s.Notice = NoticeSignedUp
		return nil
	})
}

// SubmitLogin authenticates. On success the session moves to Home and
// remembers the username.
func (c *Controller) SubmitLogin(ctx context.Context, id, username, password string) (Session, error) {
	return c.act(id, PageLogin, func(s *Session) error {
		u, err := c.users.Authenticate(ctx, username, password)
		if err != nil {
			return err
		}
		s.Page = PageHome
		s.Username = u.UserName
		s.Notice = NoticeLoggedIn
		c.logger.Info(ctx, "user logged in", "session", s.ID, "username", u.UserName)
		return nil
	})
}

// ShowLogin follows the "already have an account" link.
func (c *Controller) ShowLogin(ctx context.Context, id string) (Session, error) {
	return c.act(id, PageSignup, func(s *Session) error {
		s.Page = PageLogin
		return nil
	})
}

// ShowSignup follows the "don't have an account" link.
func (c *Controller) ShowSignup(ctx context.Context, id string) (Session, error) {
	return c.act(id, PageLogin, func(s *Session) error {
		s.Page = PageSignup
		return nil
	})
}

// Logout returns to Login and forgets the user and pending input.
func (c *Controller) Logout(ctx context.Context, id string) (Session, error) {
	return c.act(id, PageHome, func(s *Session) error {
		c.logger.Info(ctx, "user logged out", "session", s.ID, "username", s.Username)
		s.Page = PageLogin
		s.Username = ""
		s.Input = Input{}
		s.DetectedLanguage = ""
		s.LastResult = nil
		return nil
	})
}

// SetText replaces the pending input with typed text.
func (c *Controller) SetText(ctx context.Context, id, text string) (Session, error) {
	return c.act(id, PageHome, func(s *Session) error {
		s.Input = Input{Text: text, Method: MethodType}
		s.DetectedLanguage = ""
		return nil
	})
}

// Speak recognises an utterance and makes its text the pending input. source
// is the catalog name of the spoken language; empty means detect. A failed
// recognition clears the pending input and is remembered so a following
// Translate is refused.
func (c *Controller) Speak(ctx context.Context, id, source string, u speech.Utterance) (Session, error) {
	return c.act(id, PageHome, func(s *Session) error {
		if source != "" {
			code, err := c.catalog.Code(ctx, source)
			if err != nil {
				return err
			}
			u.Language = code
		}

		rec, err := c.recognizer.Listen(ctx, u)
		if err != nil {
			s.Input = Input{Method: MethodSpeak, RecognitionErr: err}
			s.DetectedLanguage = ""
			return err
		}

		s.Input = Input{Text: rec.Text, Method: MethodSpeak}
		s.DetectedLanguage = rec.Language
		return nil
	})
}

// Translate translates the pending input from source to target (catalog
// names). An empty source asks the translator to detect the language.
func (c *Controller) Translate(ctx context.Context, id, source, target string) (Session, error) {
	return c.act(id, PageHome, func(s *Session) error {
		if s.Input.RecognitionErr != nil {
			return fmt.Errorf("%w: %w", common.ErrEmptyInput, s.Input.RecognitionErr)
		}

		var req services.TranslationRequest
		req.Text = s.Input.Text

		if source != "" {
			code, err := c.catalog.Code(ctx, source)
			if err != nil {
				return err
			}
			req.SourceCode = code
		}
		code, err := c.catalog.Code(ctx, target)
		if err != nil {
			return err
		}
		req.TargetCode = code

		res, err := c.translator.Translate(ctx, req)
		if err != nil {
			return err
		}

		s.LastResult = res
		if res.DetectedLanguage != "" {
			s.DetectedLanguage = res.DetectedLanguage
		}
		s.Notice = NoticeTranslated
		return nil
	})
}

// Languages lists the catalog for the language selectors.
func (c *Controller) Languages(ctx context.Context) ([]models.Language, error) {
	return c.catalog.Languages(ctx)
}

// act runs fn on session id when it is on page. Feedback from the previous
// action is cleared first and the messages of fn's error are recorded.
func (c *Controller) act(id string, page Page, fn func(s *Session) error) (Session, error) {
	return c.store.Do(id, func(s *Session) error {
		if s.Page != page {
			return fmt.Errorf("%w: %s", common.ErrInvalidTransition, s.Page)
		}
		s.resetFeedback()
		if err := fn(s); err != nil {
			s.Errors = Messages(err)
			return err
		}
		return nil
	})
}
