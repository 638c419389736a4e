package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/languages"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// memUsers is an in-memory credential store with the same duplicate
// semantics as the postgres repository.
type memUsers struct {
	mu      sync.Mutex
	rows    map[string]models.User
	creates int

	getErr    error
	createErr error
	findErr   error
}

func newMemUsers() *memUsers { return &memUsers{rows: map[string]models.User{}} }

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createErr != nil {
		return nil, m.createErr
	}
	if _, ok := m.rows[u.UserName]; ok {
		return nil, common.ErrDuplicateUsername
	}
	u.ID = "id-" + u.UserName
	u.CreatedAt = time.Now()
	m.rows[u.UserName] = *u
	return u, nil
}

func (m *memUsers) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.rows[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (m *memUsers) FindAll(ctx context.Context) (map[string]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make(map[string]models.User, len(m.rows))
	for k, v := range m.rows {
		out[k] = v
	}
	return out, nil
}

type memLanguages struct {
	mu        sync.Mutex
	rows      []models.Language
	finds     int
	upserts   int
	upsertErr error
	findErr   error

	// afterRead runs once FindAll has copied the rows, outside the lock.
	afterRead func()
}

func (m *memLanguages) Upsert(ctx context.Context, name, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	for _, l := range m.rows {
		if l.Name == name {
			return nil
		}
	}
	m.rows = append(m.rows, models.Language{ID: int64(len(m.rows) + 1), Name: name, Code: code})
	return nil
}

func (m *memLanguages) Remove(ctx context.Context, name, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.rows {
		if l.Name == name && l.Code == code {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (m *memLanguages) FindAll(ctx context.Context) ([]models.Language, error) {
	m.mu.Lock()
	m.finds++
	if m.findErr != nil {
		m.mu.Unlock()
		return nil, m.findErr
	}
	rows := append([]models.Language(nil), m.rows...)
	hook := m.afterRead
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	return rows, nil
}

type fakeRepoManager struct {
	u *memUsers
	l *memLanguages
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Languages(db dbx.DBTX) languages.Repository   { return m.l }
