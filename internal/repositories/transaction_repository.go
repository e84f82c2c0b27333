package repositories

import (
	"context"
	"time"

	"chapterfund-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	DB *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *models.Transaction) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO member_transactions(member_id, chapter_id, purpose_id, amount,
            transaction_type, destination, transaction_date, recorded_by)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at`,
		t.MemberID, t.ChapterID, t.PurposeID, t.Amount,
		t.Type, t.Destination, t.TransactionDate, t.RecordedBy,
	).Scan(&t.ID, &t.CreatedAt)
}

const transactionColumns = `mt.id, mt.member_id, mt.chapter_id, mt.purpose_id, mt.amount,
	mt.transaction_type, mt.destination, mt.transaction_date, mt.recorded_by, mt.created_at,
	m.full_name, p.name`

func (r *TransactionRepository) scanRows(rows pgx.Rows) ([]models.Transaction, error) {
	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.MemberID, &t.ChapterID, &t.PurposeID, &t.Amount,
			&t.Type, &t.Destination, &t.TransactionDate, &t.RecordedBy, &t.CreatedAt,
			&t.MemberName, &t.PurposeName); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// ListByChapter returns a chapter's transactions, newest first
func (r *TransactionRepository) ListByChapter(ctx context.Context, chapterID int) ([]models.Transaction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+transactionColumns+`
         FROM member_transactions mt
         JOIN members m ON mt.member_id = m.id
         JOIN purposes p ON mt.purpose_id = p.id
         WHERE mt.chapter_id=$1
         ORDER BY mt.transaction_date DESC, mt.id DESC`, chapterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// ListByChapterAndDestination filters to the tier the funds were collected for
func (r *TransactionRepository) ListByChapterAndDestination(ctx context.Context, chapterID int, dest models.Destination) ([]models.Transaction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+transactionColumns+`
         FROM member_transactions mt
         JOIN members m ON mt.member_id = m.id
         JOIN purposes p ON mt.purpose_id = p.id
         WHERE mt.chapter_id=$1 AND mt.destination=$2
         ORDER BY mt.transaction_date DESC, mt.id DESC`, chapterID, dest)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// ListByMember returns one member's full payment history, oldest first, so
// the ledger reads like a statement
func (r *TransactionRepository) ListByMember(ctx context.Context, memberID int) ([]models.Transaction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+transactionColumns+`
         FROM member_transactions mt
         JOIN members m ON mt.member_id = m.id
         JOIN purposes p ON mt.purpose_id = p.id
         WHERE mt.member_id=$1
         ORDER BY mt.transaction_date, mt.id`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// ListByPurpose returns every transaction against one purpose, across
// chapters when chapterID is nil
func (r *TransactionRepository) ListByPurpose(ctx context.Context, purposeID int, chapterID *int) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
         FROM member_transactions mt
         JOIN members m ON mt.member_id = m.id
         JOIN purposes p ON mt.purpose_id = p.id
         WHERE mt.purpose_id=$1`
	args := []interface{}{purposeID}
	if chapterID != nil {
		query += ` AND mt.chapter_id=$2`
		args = append(args, *chapterID)
	}
	query += ` ORDER BY mt.transaction_date DESC, mt.id DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// ListByDateRange returns transactions within [from, to] for one chapter
func (r *TransactionRepository) ListByDateRange(ctx context.Context, chapterID int, from, to time.Time) ([]models.Transaction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+transactionColumns+`
         FROM member_transactions mt
         JOIN members m ON mt.member_id = m.id
         JOIN purposes p ON mt.purpose_id = p.id
         WHERE mt.chapter_id=$1 AND mt.transaction_date BETWEEN $2 AND $3
         ORDER BY mt.transaction_date DESC, mt.id DESC`, chapterID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanRows(rows)
}
