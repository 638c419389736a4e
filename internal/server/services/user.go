// Package services contains server-side business logic. This file implements
// UserService: signup validation, registration and password login.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/cryptox"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/repomanager"
)

// Messages shown for failed signup rules.
const (
	MsgAllFieldsRequired = "All fields are required."
	MsgInvalidEmail      = "Invalid email format."
	MsgPasswordMismatch  = "Passwords do not match."
	MsgUsernameTaken     = "Username already exists."
)

var (
	hashPassword   = cryptox.HashPassword
	verifyPassword = cryptox.VerifyPassword
)

// SignupForm is what a user submits on the signup page.
type SignupForm struct {
	Name            string
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

// ValidationError is one failed signup rule.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// ValidationErrors collects every failed rule of one submission. It matches
// common.ErrValidation and, when the username is taken,
// common.ErrDuplicateUsername.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	return strings.Join(v.Messages(), " ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v)+1)
	errs = append(errs, common.ErrValidation)
	for _, e := range v {
		if e.Err != nil {
			errs = append(errs, e.Err)
		}
	}
	return errs
}

// Messages returns the user-facing messages in rule order.
func (v ValidationErrors) Messages() []string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return msgs
}

// UserService registers and authenticates users against the credential store.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewUserService constructs a UserService using repositories vended by m
// over db.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "users"),
	}
}

// ValidateSignup checks every rule and returns all failures as
// ValidationErrors, or nil. Store failures yield common.ErrorInternal.
func (s *UserService) ValidateSignup(ctx context.Context, f SignupForm) error {
	var errs ValidationErrors

	if f.Name == "" || f.Email == "" || f.Username == "" || f.Password == "" || f.ConfirmPassword == "" {
		errs = append(errs, ValidationError{Field: "all", Message: MsgAllFieldsRequired, Err: common.ErrValidation})
	}
	if !strings.Contains(f.Email, "@") {
		errs = append(errs, ValidationError{Field: "email", Message: MsgInvalidEmail, Err: common.ErrValidation})
	}
	if f.Password != f.ConfirmPassword {
		errs = append(errs, ValidationError{Field: "confirm_password", Message: MsgPasswordMismatch, Err: common.ErrValidation})
	}
	if f.Username != "" {
		_, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, f.Username)
		switch {
		case err == nil:
			errs = append(errs, usernameTaken())
		case !errors.Is(err, common.ErrorNotFound):
			s.logger.Error(ctx, "username lookup failed", "error", err)
			return common.ErrorInternal
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Register validates f and stores the new user with a hashed password.
// Nothing is stored when validation fails.
func (s *UserService) Register(ctx context.Context, f SignupForm) (*models.User, error) {
	if err := s.ValidateSignup(ctx, f); err != nil {
		return nil, err
	}

	hash, err := hashPassword([]byte(f.Password))
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{Name: f.Name, Email: f.Email, UserName: f.Username, PasswordHash: hash}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			// lost a race with a concurrent signup
			return nil, ValidationErrors{usernameTaken()}
		}
		s.logger.Error(ctx, "error creating user", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "username", u.UserName)
	return u, nil
}

// Authenticate returns the user when username exists and password matches.
// Unknown users and wrong passwords both yield common.ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			verifyPassword([]byte(password), cryptox.DummyHash())
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !verifyPassword([]byte(password), user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// FindAll returns every user keyed by username.
func (s *UserService) FindAll(ctx context.Context) (map[string]models.User, error) {
	users, err := s.repomanager.Users(s.db).FindAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "listing users failed", "error", err)
		return nil, common.ErrorInternal
	}
	return users, nil
}

func usernameTaken() ValidationError {
	return ValidationError{Field: "username", Message: MsgUsernameTaken, Err: common.ErrDuplicateUsername}
}
