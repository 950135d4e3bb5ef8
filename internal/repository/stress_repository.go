package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gripe-service/internal/domain"
)

// ErrDuplicateName is returned when a user already owns a stress with the
// requested name. The conditional insert makes the check-and-create atomic,
// so two concurrent requests cannot both insert.
var ErrDuplicateName = errors.New("stress name already exists for user")

// StressRepository encapsulates stress persistence. Gripes are embedded in
// the stress row as a JSONB array and written back as a unit.
type StressRepository interface {
	Create(ctx context.Context, stress *domain.Stress) error
	ListByOwner(ctx context.Context, userID string) ([]domain.Stress, error)
	GetByNameAndOwner(ctx context.Context, name, userID string) (*domain.Stress, error)
	UpdateGripes(ctx context.Context, stress *domain.Stress) error
	DeleteByNameAndOwner(ctx context.Context, name, userID string) error
}

type stressRepository struct {
	pool *pgxpool.Pool
}

// NewStressRepository instantiates repository.
func NewStressRepository(pool *pgxpool.Pool) StressRepository {
	return &stressRepository{pool: pool}
}

func (r *stressRepository) Create(ctx context.Context, stress *domain.Stress) error {
	gripes, err := json.Marshal(stress.Gripes)
	if err != nil {
		return fmt.Errorf("encode gripes: %w", err)
	}

	const query = `
        INSERT INTO stresses (name, gripe_count, gripes, owners)
        SELECT $1, $2, $3, $4
        WHERE NOT EXISTS (
            SELECT 1 FROM stresses WHERE name=$1 AND $5 = ANY(owners)
        )
        RETURNING id, created_at, updated_at`

	owner := ""
	if len(stress.Owners) > 0 {
		owner = stress.Owners[0]
	}

	err = r.pool.QueryRow(ctx, query,
		stress.Name,
		stress.GripeCount,
		gripes,
		stress.Owners,
		owner,
	).Scan(&stress.ID, &stress.CreatedAt, &stress.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrDuplicateName
	}
	return err
}

func (r *stressRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Stress, error) {
	const query = `
        SELECT id, name, gripe_count, gripes, owners, created_at, updated_at
        FROM stresses WHERE $1 = ANY(owners)
        ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStresses(rows)
}

func (r *stressRepository) GetByNameAndOwner(ctx context.Context, name, userID string) (*domain.Stress, error) {
	const query = `
        SELECT id, name, gripe_count, gripes, owners, created_at, updated_at
        FROM stresses WHERE name=$1 AND $2 = ANY(owners)`

	var stress domain.Stress
	var gripes []byte
	if err := r.pool.QueryRow(ctx, query, name, userID).Scan(
		&stress.ID,
		&stress.Name,
		&stress.GripeCount,
		&gripes,
		&stress.Owners,
		&stress.CreatedAt,
		&stress.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(gripes, &stress.Gripes); err != nil {
		return nil, fmt.Errorf("decode gripes: %w", err)
	}
	return &stress, nil
}

func (r *stressRepository) UpdateGripes(ctx context.Context, stress *domain.Stress) error {
	gripes, err := json.Marshal(stress.Gripes)
	if err != nil {
		return fmt.Errorf("encode gripes: %w", err)
	}

	const query = `
        UPDATE stresses SET gripe_count=$1, gripes=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, stress.GripeCount, gripes, stress.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *stressRepository) DeleteByNameAndOwner(ctx context.Context, name, userID string) error {
	const query = `DELETE FROM stresses WHERE name=$1 AND $2 = ANY(owners)`

	cmd, err := r.pool.Exec(ctx, query, name, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanStresses(rows pgx.Rows) ([]domain.Stress, error) {
	var result []domain.Stress
	for rows.Next() {
		var stress domain.Stress
		var gripes []byte
		if err := rows.Scan(
			&stress.ID,
			&stress.Name,
			&stress.GripeCount,
			&gripes,
			&stress.Owners,
			&stress.CreatedAt,
			&stress.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(gripes, &stress.Gripes); err != nil {
			return nil, fmt.Errorf("decode gripes: %w", err)
		}
		result = append(result, stress)
	}
	return result, rows.Err()
}
