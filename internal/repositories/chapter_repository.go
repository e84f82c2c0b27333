package repositories

import (
	"context"

	"chapterfund-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ChapterRepository struct {
	DB *pgxpool.Pool
}

func NewChapterRepository(db *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{DB: db}
}

func (r *ChapterRepository) Create(ctx context.Context, c *models.Chapter) error {
	c.IsActive = true
	return r.DB.QueryRow(ctx,
		`INSERT INTO chapters(name, region, is_active)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		c.Name, c.Region, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *ChapterRepository) Get(ctx context.Context, id int) (*models.Chapter, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, COALESCE(region, ''), is_active, created_at
         FROM chapters WHERE id=$1`, id)

	var c models.Chapter
	err := row.Scan(&c.ID, &c.Name, &c.Region, &c.IsActive, &c.CreatedAt)
	return &c, err
}

// List returns all chapters, active first
func (r *ChapterRepository) List(ctx context.Context) ([]*models.Chapter, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, COALESCE(region, ''), is_active, created_at
         FROM chapters ORDER BY is_active DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []*models.Chapter
	for rows.Next() {
		var c models.Chapter
		if err := rows.Scan(&c.ID, &c.Name, &c.Region, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		chapters = append(chapters, &c)
	}
	return chapters, rows.Err()
}

// SetActive toggles a chapter on or off without touching its history
func (r *ChapterRepository) SetActive(ctx context.Context, id int, active bool) error {
	_, err := r.DB.Exec(ctx, `UPDATE chapters SET is_active=$1 WHERE id=$2`, active, id)
	return err
}
