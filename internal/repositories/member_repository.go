package repositories

import (
	"context"

	"chapterfund-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MemberRepository struct {
	DB *pgxpool.Pool
}

func NewMemberRepository(db *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{DB: db}
}

func (r *MemberRepository) Create(ctx context.Context, m *models.Member) error {
	m.IsActive = true
	return r.DB.QueryRow(ctx,
		`INSERT INTO members(chapter_id, full_name, membership_number, phone_number, membership_year, is_active)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		m.ChapterID, m.FullName, m.MembershipNumber, m.PhoneNumber, m.MembershipYear, m.IsActive,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MemberRepository) Get(ctx context.Context, id int) (*models.Member, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, chapter_id, full_name, membership_number, COALESCE(phone_number, ''),
		 membership_year, is_active, created_at, updated_at
         FROM members WHERE id=$1`, id)

	var m models.Member
	err := row.Scan(&m.ID, &m.ChapterID, &m.FullName, &m.MembershipNumber, &m.PhoneNumber,
		&m.MembershipYear, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

// ListByChapter returns a chapter's members, active ones first
func (r *MemberRepository) ListByChapter(ctx context.Context, chapterID int) ([]models.Member, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, chapter_id, full_name, membership_number, COALESCE(phone_number, ''),
		 membership_year, is_active, created_at, updated_at
         FROM members WHERE chapter_id=$1
         ORDER BY is_active DESC, full_name`, chapterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.ChapterID, &m.FullName, &m.MembershipNumber, &m.PhoneNumber,
			&m.MembershipYear, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// CountActive returns the number of active members in a chapter
func (r *MemberRepository) CountActive(ctx context.Context, chapterID int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM members WHERE chapter_id=$1 AND is_active=true`,
		chapterID).Scan(&count)
	return count, err
}

// CountActiveAll returns the number of active members across every chapter
func (r *MemberRepository) CountActiveAll(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM members WHERE is_active=true`).Scan(&count)
	return count, err
}

// Update changes the editable fields only; chapter and membership number are
// fixed at registration
func (r *MemberRepository) Update(ctx context.Context, m *models.Member) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE members SET full_name=$1, phone_number=$2, membership_year=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		m.FullName, m.PhoneNumber, m.MembershipYear, m.ID)
	return err
}

// SetActive soft-deactivates or restores a member. History stays intact.
func (r *MemberRepository) SetActive(ctx context.Context, id int, active bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE members SET is_active=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		active, id)
	return err
}
