package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/languages"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Languages(db dbx.DBTX) languages.Repository
}
