// Package languages persists the language catalog: a unique display name
// mapped to the engine code used for translation and speech.
package languages

import (
	"context"

	"github.com/dmitrijs2005/polyglot/internal/server/models"
)

type Repository interface {
	Upsert(ctx context.Context, name, code string) error
	Remove(ctx context.Context, name, code string) error
	FindAll(ctx context.Context) ([]models.Language, error)
}
