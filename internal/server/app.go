// Package server initializes and runs the polyglot application: database and
// migrations, the language catalog, the speech and translation adapters, the
// session controller and the HTTP API, with graceful shutdown on signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/config"
	"github.com/dmitrijs2005/polyglot/internal/server/httpapi"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/polyglot/internal/server/services"
	"github.com/dmitrijs2005/polyglot/internal/server/session"
	"github.com/dmitrijs2005/polyglot/internal/server/storage"
	"github.com/dmitrijs2005/polyglot/internal/speech"
	"github.com/dmitrijs2005/polyglot/internal/translate"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const dbPingTimeout = 5 * time.Second

// Seams for tests.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
	newArchive           = func(ctx context.Context, c *config.Config) (storage.Archive, error) {
		return storage.NewS3Archive(ctx, c)
	}
)

// App holds the wired components of a running polyglot instance.
type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	catalogService *services.CatalogService
	controller     *session.Controller
}

// NewApp connects to the database, applies migrations, seeds the language
// catalog and builds every component. The caller owns the returned App and
// must Close it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	app, err := build(ctx, c, logger, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

func build(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {
	if c.SecretKey == "" {
		secret, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("secret generation error: %w", err)
		}
		c.SecretKey = secret
		logger.Warn(ctx, "no secret key configured, using a random one")
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m := newRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, m, logger)
	cs := services.NewCatalogService(db, m, logger)
	if err := cs.Seed(ctx); err != nil {
		return nil, fmt.Errorf("catalog seed error: %w", err)
	}

	client := speech.NewClient(c.OpenAIAPIKey, c.OpenAIBaseURL)
	recognizer := speech.NewRecognizer(client, c.STTModel, c.ListenTimeout, logger)
	synthesizer := speech.NewSynthesizer(client, c.TTSModel, c.TTSVoice, c.RequestTimeout, speech.DefaultLanguages(), logger)
	translator := translate.NewGoogleTranslator(c.TranslateBaseURL, c.RequestTimeout, logger)

	var archive storage.Archive
	if c.ArchiveEnabled() {
		a, err := newArchive(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("archive init error: %w", err)
		}
		archive = a
	}

	ts := services.NewTranslationService(translator, synthesizer, archive, logger)
	ctrl := session.NewController(session.NewStore(c.SessionValidityDuration), us, cs, ts, recognizer, logger)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    us,
		catalogService: cs,
		controller:     ctrl,
	}, nil
}

// Controller returns the session controller shared by the HTTP API and the
// console.
func (app *App) Controller() *session.Controller { return app.controller }

func (app *App) Users() *services.UserService { return app.userService }

func (app *App) Catalog() *services.CatalogService { return app.catalogService }

func (app *App) Close() error {
	return app.db.Close()
}

// Handler builds the HTTP API router.
func (app *App) Handler() http.Handler {
	h := httpapi.NewHandler(app.controller, app.config.SecretKey, app.logger)
	return httpapi.NewRouter(h, app.config.LoginRateLimit)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.Handler(), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves the HTTP API until ctx is cancelled or a termination signal
// arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}
