package languages

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert adds the entry when its display name is not in the catalog yet. An
// existing name keeps its code.
func (r *PostgresRepository) Upsert(ctx context.Context, name, code string) error {
	query :=
		`INSERT INTO languages (name, code)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, name, code); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Remove deletes the entry matching both name and code.
func (r *PostgresRepository) Remove(ctx context.Context, name, code string) error {
	query :=
		`DELETE FROM languages
		 WHERE name = $1 AND code = $2
		 `

	res, err := r.db.ExecContext(ctx, query, name, code)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// FindAll returns the catalog in insertion order.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]models.Language, error) {
	query :=
		`SELECT id, name, code FROM languages
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Language
	for rows.Next() {
		var l models.Language
		if err := rows.Scan(&l.ID, &l.Name, &l.Code); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
