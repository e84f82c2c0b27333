package repositories

import (
	"context"
	"errors"

	"chapterfund-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustodyRepository persists transfers and their confirmations. One table
// serves every boundary; the boundary column carries the role pair.
type CustodyRepository struct {
	DB *pgxpool.Pool
}

func NewCustodyRepository(db *pgxpool.Pool) *CustodyRepository {
	return &CustodyRepository{DB: db}
}

func (r *CustodyRepository) CreateTransfer(ctx context.Context, t *models.CustodyTransfer) error {
	t.Status = models.TransferPending
	return r.DB.QueryRow(ctx,
		`INSERT INTO custody_transfers(boundary, chapter_id, purpose_id, amount_declared,
            reference_number, status, declared_by)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, declared_at`,
		t.Boundary, t.ChapterID, t.PurposeID, t.AmountDeclared,
		t.Reference, t.Status, t.DeclaredBy,
	).Scan(&t.ID, &t.DeclaredAt)
}

const transferColumns = `ct.id, ct.boundary, ct.chapter_id, ct.purpose_id, ct.amount_declared,
	ct.reference_number, ct.status, ct.declared_by, ct.declared_at,
	p.name, COALESCE(c.name, '')`

func (r *CustodyRepository) GetTransfer(ctx context.Context, id int) (*models.CustodyTransfer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+transferColumns+`
         FROM custody_transfers ct
         JOIN purposes p ON ct.purpose_id = p.id
         LEFT JOIN chapters c ON ct.chapter_id = c.id
         WHERE ct.id=$1`, id)

	var t models.CustodyTransfer
	err := row.Scan(&t.ID, &t.Boundary, &t.ChapterID, &t.PurposeID, &t.AmountDeclared,
		&t.Reference, &t.Status, &t.DeclaredBy, &t.DeclaredAt,
		&t.PurposeName, &t.ChapterName)
	return &t, err
}

func (r *CustodyRepository) scanTransfers(rows pgx.Rows) ([]models.CustodyTransfer, error) {
	var transfers []models.CustodyTransfer
	for rows.Next() {
		var t models.CustodyTransfer
		if err := rows.Scan(&t.ID, &t.Boundary, &t.ChapterID, &t.PurposeID, &t.AmountDeclared,
			&t.Reference, &t.Status, &t.DeclaredBy, &t.DeclaredAt,
			&t.PurposeName, &t.ChapterName); err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

// ListTransfers returns transfers at one boundary, newest first. A nil
// chapterID lists every chapter (national views).
func (r *CustodyRepository) ListTransfers(ctx context.Context, boundary models.Boundary, chapterID *int) ([]models.CustodyTransfer, error) {
	query := `SELECT ` + transferColumns + `
         FROM custody_transfers ct
         JOIN purposes p ON ct.purpose_id = p.id
         LEFT JOIN chapters c ON ct.chapter_id = c.id
         WHERE ct.boundary=$1`
	args := []interface{}{boundary}
	if chapterID != nil {
		query += ` AND ct.chapter_id=$2`
		args = append(args, *chapterID)
	}
	query += ` ORDER BY ct.declared_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanTransfers(rows)
}

// ListPendingTransfers returns unconfirmed transfers at one boundary,
// oldest first so receivers work through the backlog in order
func (r *CustodyRepository) ListPendingTransfers(ctx context.Context, boundary models.Boundary, chapterID *int) ([]models.CustodyTransfer, error) {
	query := `SELECT ` + transferColumns + `
         FROM custody_transfers ct
         JOIN purposes p ON ct.purpose_id = p.id
         LEFT JOIN chapters c ON ct.chapter_id = c.id
         WHERE ct.boundary=$1 AND ct.status='PENDING'`
	args := []interface{}{boundary}
	if chapterID != nil {
		query += ` AND ct.chapter_id=$2`
		args = append(args, *chapterID)
	}
	query += ` ORDER BY ct.declared_at`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanTransfers(rows)
}

// ConfirmTransfer inserts the receipt and flips the transfer to CONFIRMED in
// one transaction. The UNIQUE constraint on transfer_id makes double
// confirmation impossible even under concurrent requests.
func (r *CustodyRepository) ConfirmTransfer(ctx context.Context, receipt *models.CustodyReceipt) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO custody_receipts(transfer_id, amount_confirmed, confirmed_by)
         VALUES($1, $2, $3)
         RETURNING id, confirmed_at`,
		receipt.TransferID, receipt.AmountConfirmed, receipt.ConfirmedBy,
	).Scan(&receipt.ID, &receipt.ConfirmedAt)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE custody_transfers SET status='CONFIRMED' WHERE id=$1 AND status='PENDING'`,
		receipt.TransferID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("transfer already confirmed")
	}

	return tx.Commit(ctx)
}

// GetReceipt returns the confirmation for a transfer, if any
func (r *CustodyRepository) GetReceipt(ctx context.Context, transferID int) (*models.CustodyReceipt, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, transfer_id, amount_confirmed, confirmed_by, confirmed_at
         FROM custody_receipts WHERE transfer_id=$1`, transferID)

	var rc models.CustodyReceipt
	err := row.Scan(&rc.ID, &rc.TransferID, &rc.AmountConfirmed, &rc.ConfirmedBy, &rc.ConfirmedAt)
	return &rc, err
}

// ListReceiptsForBoundary returns every receipt whose transfer sits at the
// given boundary, scoped by chapter when chapterID is set
func (r *CustodyRepository) ListReceiptsForBoundary(ctx context.Context, boundary models.Boundary, chapterID *int) ([]models.CustodyReceipt, error) {
	query := `SELECT cr.id, cr.transfer_id, cr.amount_confirmed, cr.confirmed_by, cr.confirmed_at
         FROM custody_receipts cr
         JOIN custody_transfers ct ON cr.transfer_id = ct.id
         WHERE ct.boundary=$1`
	args := []interface{}{boundary}
	if chapterID != nil {
		query += ` AND ct.chapter_id=$2`
		args = append(args, *chapterID)
	}
	query += ` ORDER BY cr.confirmed_at`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []models.CustodyReceipt
	for rows.Next() {
		var rc models.CustodyReceipt
		if err := rows.Scan(&rc.ID, &rc.TransferID, &rc.AmountConfirmed, &rc.ConfirmedBy, &rc.ConfirmedAt); err != nil {
			return nil, err
		}
		receipts = append(receipts, rc)
	}
	return receipts, rows.Err()
}
