package repositories

import (
	"context"

	"chapterfund-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PurposeRepository struct {
	DB *pgxpool.Pool
}

func NewPurposeRepository(db *pgxpool.Pool) *PurposeRepository {
	return &PurposeRepository{DB: db}
}

func (r *PurposeRepository) Create(ctx context.Context, p *models.Purpose) error {
	p.IsActive = true
	if p.TargetMode == "" {
		p.TargetMode = models.TargetPerMember // default
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO purposes(name, level, target_mode, expected_amount, is_active)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		p.Name, p.Level, p.TargetMode, p.ExpectedAmount, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PurposeRepository) Get(ctx context.Context, id int) (*models.Purpose, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, level, target_mode, expected_amount, is_active, created_at
         FROM purposes WHERE id=$1`, id)

	var p models.Purpose
	err := row.Scan(&p.ID, &p.Name, &p.Level, &p.TargetMode, &p.ExpectedAmount, &p.IsActive, &p.CreatedAt)
	return &p, err
}

// List returns purposes, optionally filtered by level
func (r *PurposeRepository) List(ctx context.Context, level models.PurposeLevel) ([]*models.Purpose, error) {
	query := `SELECT id, name, level, target_mode, expected_amount, is_active, created_at
              FROM purposes`
	args := []interface{}{}
	if level != "" {
		query += ` WHERE level=$1`
		args = append(args, level)
	}
	query += ` ORDER BY is_active DESC, name`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purposes []*models.Purpose
	for rows.Next() {
		var p models.Purpose
		if err := rows.Scan(&p.ID, &p.Name, &p.Level, &p.TargetMode, &p.ExpectedAmount, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		purposes = append(purposes, &p)
	}
	return purposes, rows.Err()
}

// Update rewrites the editable purpose fields. Level is fixed at creation.
func (r *PurposeRepository) Update(ctx context.Context, p *models.Purpose) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE purposes SET name=$1, target_mode=$2, expected_amount=$3 WHERE id=$4`,
		p.Name, p.TargetMode, p.ExpectedAmount, p.ID)
	return err
}

// HasTransactions reports whether any ledger row references the purpose.
// A referenced purpose can only be deactivated, never removed.
func (r *PurposeRepository) HasTransactions(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM member_transactions WHERE purpose_id=$1
			UNION ALL
			SELECT 1 FROM custody_transfers WHERE purpose_id=$1
			UNION ALL
			SELECT 1 FROM bank_movements WHERE purpose_id=$1
		)`, id).Scan(&exists)
	return exists, err
}

// SetActive toggles a purpose without touching its history
func (r *PurposeRepository) SetActive(ctx context.Context, id int, active bool) error {
	_, err := r.DB.Exec(ctx, `UPDATE purposes SET is_active=$1 WHERE id=$2`, active, id)
	return err
}
