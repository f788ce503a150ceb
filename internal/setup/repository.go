// AngelaMos | 2026
// repository.go

package setup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/frohlich71/creator-builds-api/internal/core"
)

// Repository persists setup rows. Write methods take an explicit executor
// so the aggregate service can run them inside a single transaction.
type Repository interface {
	Insert(ctx context.Context, q core.DBTX, s *Setup) error
	GetByID(ctx context.Context, id string) (*Setup, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Setup, error)
	Update(ctx context.Context, q core.DBTX, s *Setup) error
	Delete(ctx context.Context, q core.DBTX, id string) error
}

type postgresRepository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Insert(
	ctx context.Context,
	q core.DBTX,
	s *Setup,
) error {
	query := `
		INSERT INTO setups (id, name, owner_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := q.GetContext(ctx, &s.CreatedAt, query, s.ID, s.Name, s.OwnerID)
	if err != nil {
		return fmt.Errorf("insert setup: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(
	ctx context.Context,
	id string,
) (*Setup, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM setups
		WHERE id = $1`

	var s Setup
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get setup by id: %w", err)
	}

	return &s, nil
}

func (r *postgresRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
) ([]Setup, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM setups
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	var setups []Setup
	err := r.db.SelectContext(ctx, &setups, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list setups by owner: %w", err)
	}

	return setups, nil
}

func (r *postgresRepository) Update(
	ctx context.Context,
	q core.DBTX,
	s *Setup,
) error {
	query := `
		UPDATE setups
		SET name = $2, owner_id = $3
		WHERE id = $1`

	result, err := q.ExecContext(ctx, query, s.ID, s.Name, s.OwnerID)
	if err != nil {
		return fmt.Errorf("update setup: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update setup: %w", err)
	}
	if rows == 0 {
		return core.ErrNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(
	ctx context.Context,
	q core.DBTX,
	id string,
) error {
	query := `DELETE FROM setups WHERE id = $1`

	if _, err := q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete setup: %w", err)
	}

	return nil
}
