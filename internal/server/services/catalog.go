package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/repomanager"
	"golang.org/x/text/language"
)

// DefaultLanguages is seeded into an empty catalog at startup.
var DefaultLanguages = []models.Language{
	{Name: "English", Code: "en"},
	{Name: "Hindi (हिन्दी)", Code: "hi"},
	{Name: "Marathi (मराठी)", Code: "mr"},
	{Name: "Tamil (தமிழ்)", Code: "ta"},
	{Name: "Telugu (తెలుగు)", Code: "te"},
	{Name: "Kannada (ಕನ್ನಡ)", Code: "kn"},
	{Name: "Gujarati (ગુજરાતી)", Code: "gu"},
	{Name: "Bengali (বাংলা)", Code: "bn"},
	{Name: "Punjabi (ਪੰਜਾਬੀ)", Code: "pa"},
	{Name: "Urdu (اردو)", Code: "ur"},
	{Name: "French (Français)", Code: "fr"},
	{Name: "Spanish (Español)", Code: "es"},
	{Name: "German (Deutsch)", Code: "de"},
	{Name: "Russian (Русский)", Code: "ru"},
	{Name: "Japanese (日本語)", Code: "ja"},
	{Name: "Chinese (中文)", Code: "zh-CN"},
}

// CatalogService serves the language catalog. Every read goes to the store,
// so entries added or removed by another process show up immediately.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewCatalogService constructs a CatalogService reading and writing through
// the repositories vended by m.
func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *CatalogService {
	return &CatalogService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "catalog"),
	}
}

// Seed inserts the default languages that are not present yet. An entry with
// a malformed code is logged and skipped; a store failure aborts the seed.
func (s *CatalogService) Seed(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Languages(tx)
		for _, l := range DefaultLanguages {
			if err := validateLanguage(l.Name, l.Code); err != nil {
				s.logger.Warn(ctx, "skipping catalog entry", "name", l.Name, "error", err)
				continue
			}
			if err := repo.Upsert(ctx, l.Name, l.Code); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "catalog seed failed", "error", err)
		return fmt.Errorf("seed catalog: %w", err)
	}

	return nil
}

// Languages returns the catalog in insertion order.
func (s *CatalogService) Languages(ctx context.Context) ([]models.Language, error) {
	langs, err := s.repomanager.Languages(s.db).FindAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "loading catalog failed", "error", err)
		return nil, common.ErrorInternal
	}
	if langs == nil {
		langs = []models.Language{}
	}
	return langs, nil
}

// Code returns the engine code for a display name.
func (s *CatalogService) Code(ctx context.Context, name string) (string, error) {
	langs, err := s.Languages(ctx)
	if err != nil {
		return "", err
	}
	for _, l := range langs {
		if l.Name == name {
			return l.Code, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownLanguage, name)
}

// Add puts a new entry into the catalog. An existing name is left unchanged.
func (s *CatalogService) Add(ctx context.Context, name, code string) error {
	if err := validateLanguage(name, code); err != nil {
		return err
	}
	if err := s.repomanager.Languages(s.db).Upsert(ctx, name, code); err != nil {
		s.logger.Error(ctx, "adding language failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

// Remove deletes the entry matching name and code.
func (s *CatalogService) Remove(ctx context.Context, name, code string) error {
	err := s.repomanager.Languages(s.db).Remove(ctx, name, code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: %q (%s)", common.ErrUnknownLanguage, name, code)
		}
		s.logger.Error(ctx, "removing language failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

func validateLanguage(name, code string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty language name", common.ErrValidation)
	}
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("%w: language code %q: %v", common.ErrValidation, code, err)
	}
	return nil
}
