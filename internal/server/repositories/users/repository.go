// Package users is the credential store: one row per registered account,
// keyed by a case-sensitive unique username.
package users

import (
	"context"

	"github.com/dmitrijs2005/polyglot/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	FindAll(ctx context.Context) (map[string]models.User, error)
}
