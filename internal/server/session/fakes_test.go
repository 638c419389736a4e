package session

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/languages"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/users"
	"github.com/dmitrijs2005/polyglot/internal/server/services"
	"github.com/dmitrijs2005/polyglot/internal/speech"
	"github.com/dmitrijs2005/polyglot/internal/translate"
)

type memUsers struct {
	mu      sync.Mutex
	rows    map[string]models.User
	creates int
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if _, ok := m.rows[u.UserName]; ok {
		return nil, common.ErrDuplicateUsername
	}
	u.ID = "id-" + u.UserName
	m.rows[u.UserName] = *u
	return u, nil
}

func (m *memUsers) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (m *memUsers) FindAll(ctx context.Context) (map[string]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]models.User, len(m.rows))
	for k, v := range m.rows {
		out[k] = v
	}
	return out, nil
}

type memLanguages struct{ rows []models.Language }

func (m *memLanguages) Upsert(ctx context.Context, name, code string) error {
	m.rows = append(m.rows, models.Language{ID: int64(len(m.rows) + 1), Name: name, Code: code})
	return nil
}
func (m *memLanguages) Remove(ctx context.Context, name, code string) error { return nil }
func (m *memLanguages) FindAll(ctx context.Context) ([]models.Language, error) {
	return append([]models.Language(nil), m.rows...), nil
}

type repoManager struct {
	u *memUsers
	l *memLanguages
}

func (m *repoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *repoManager) Users(dbx.DBTX) users.Repository             { return m.u }
func (m *repoManager) Languages(dbx.DBTX) languages.Repository     { return m.l }

type stubTranslator struct {
	calls int
	err   error
}

func (f *stubTranslator) Translate(ctx context.Context, text, source, target string) (translate.Translation, error) {
	f.calls++
	if f.err != nil {
		return translate.Translation{}, f.err
	}
	if target == "hi" && text == "hello" {
		return translate.Translation{Text: "नमस्ते", DetectedLanguage: "en"}, nil
	}
	return translate.Translation{Text: "[" + target + "] " + text, DetectedLanguage: source}, nil
}

type stubSynth struct{ calls int }

func (f *stubSynth) Synthesize(ctx context.Context, text, code string) (speech.Audio, error) {
	f.calls++
	return speech.Audio{Data: []byte("mp3:" + text), Format: speech.FormatMP3}, nil
}

type stubRecognizer struct {
	rec  speech.Recognition
	err  error
	hint string
}

func (f *stubRecognizer) Listen(ctx context.Context, u speech.Utterance) (speech.Recognition, error) {
	f.hint = u.Language
	return f.rec, f.err
}

type fixture struct {
	store      *Store
	ctrl       *Controller
	users      *memUsers
	translator *stubTranslator
	synth      *stubSynth
	recognizer *stubRecognizer
}

func newFixture() *fixture {
	u := &memUsers{rows: map[string]models.User{}}
	l := &memLanguages{}
	for _, lang := range services.DefaultLanguages {
		_ = l.Upsert(context.Background(), lang.Name, lang.Code)
	}
	rm := &repoManager{u: u, l: l}

	tr := &stubTranslator{}
	sy := &stubSynth{}
	rc := &stubRecognizer{}

	store := NewStore(time.Hour)
	ctrl := NewController(store,
		services.NewUserService(nil, rm, logging.Nop{}),
		services.NewCatalogService(nil, rm, logging.Nop{}),
		services.NewTranslationService(tr, sy, nil, logging.Nop{}),
		rc,
		logging.Nop{},
	)
	return &fixture{store: store, ctrl: ctrl, users: u, translator: tr, synth: sy, recognizer: rc}
}
