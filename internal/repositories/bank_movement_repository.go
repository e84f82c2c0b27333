package repositories

import (
	"context"
	"errors"

	"chapterfund-backend/internal/ledger"
	"chapterfund-backend/internal/models"
	"chapterfund-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BankMovementRepository persists deposits and withdrawals. Creation runs the
// solvency check and the insert inside one SERIALIZABLE transaction, so two
// concurrent movements can never both pass against the same balance.
type BankMovementRepository struct {
	DB *pgxpool.Pool
}

func NewBankMovementRepository(db *pgxpool.Pool) *BankMovementRepository {
	return &BankMovementRepository{DB: db}
}

// balanceQuery recomputes the custodian's cash and bank balances from the
// event tables. Cash at a scope is what the treasurer confirmed in, minus
// what they declared onward, minus what went to the bank.
const chapterBalanceQuery = `
	SELECT
		(SELECT COALESCE(SUM(cr.amount_confirmed), 0)
		 FROM custody_receipts cr
		 JOIN custody_transfers ct ON cr.transfer_id = ct.id
		 WHERE ct.boundary = 'FS_TO_CHAPTER_TREASURER' AND ct.chapter_id = $1)
		-
		(SELECT COALESCE(SUM(amount_declared), 0)
		 FROM custody_transfers
		 WHERE boundary = 'CHAPTER_TO_NATIONAL' AND chapter_id = $1)
		-
		(SELECT COALESCE(SUM(amount), 0)
		 FROM bank_movements
		 WHERE scope = 'CHAPTER' AND chapter_id = $1 AND movement_type = 'DEPOSIT')
		AS cash,
		(SELECT COALESCE(SUM(CASE WHEN movement_type = 'DEPOSIT' THEN amount ELSE -amount END), 0)
		 FROM bank_movements
		 WHERE scope = 'CHAPTER' AND chapter_id = $1)
		AS bank
`

const nationalBalanceQuery = `
	SELECT
		(SELECT COALESCE(SUM(cr.amount_confirmed), 0)
		 FROM custody_receipts cr
		 JOIN custody_transfers ct ON cr.transfer_id = ct.id
		 WHERE ct.boundary = 'NATIONAL_FS_TO_NATIONAL_TREASURER')
		-
		(SELECT COALESCE(SUM(amount), 0)
		 FROM bank_movements
		 WHERE scope = 'NATIONAL' AND movement_type = 'DEPOSIT')
		AS cash,
		(SELECT COALESCE(SUM(CASE WHEN movement_type = 'DEPOSIT' THEN amount ELSE -amount END), 0)
		 FROM bank_movements
		 WHERE scope = 'NATIONAL')
		AS bank
`

// CreateChecked verifies solvency and inserts the movement atomically.
// Returns ledger.ErrConcurrencyConflict when the transaction is aborted by a
// serialization failure; the service layer retries.
func (r *BankMovementRepository) CreateChecked(ctx context.Context, m *models.BankMovement) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var cash, bank int64
	if m.Scope == models.ScopeChapter {
		err = tx.QueryRow(ctx, chapterBalanceQuery, m.ChapterID).Scan(&cash, &bank)
	} else {
		err = tx.QueryRow(ctx, nationalBalanceQuery).Scan(&cash, &bank)
	}
	if err != nil {
		return mapSerializationError(err)
	}

	pos := models.CashPosition{
		Scope:       m.Scope,
		ChapterID:   m.ChapterID,
		CashBalance: cash,
		BankBalance: bank,
		ComputedAt:  timeutil.Now(),
	}
	if err := ledger.CheckMovement(pos, m.Type, m.Amount); err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO bank_movements(scope, chapter_id, purpose_id, amount, movement_type,
            movement_date, reference, recorded_by)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at`,
		m.Scope, m.ChapterID, m.PurposeID, m.Amount, m.Type,
		m.MovementDate, m.Reference, m.RecordedBy,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return mapSerializationError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapSerializationError(err)
	}
	return nil
}

// mapSerializationError translates SQLSTATE 40001 into the retryable
// sentinel and passes everything else through
func mapSerializationError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "40001" {
		return ledger.ErrConcurrencyConflict
	}
	return err
}

// List returns movements for one scope, newest first. Chapter scope requires
// the chapter id; national scope ignores it.
func (r *BankMovementRepository) List(ctx context.Context, scope models.CustodianScope, chapterID *int) ([]models.BankMovement, error) {
	query := `SELECT bm.id, bm.scope, bm.chapter_id, bm.purpose_id, bm.amount, bm.movement_type,
		 bm.movement_date, COALESCE(bm.reference, ''), bm.recorded_by, bm.created_at, p.name
         FROM bank_movements bm
         JOIN purposes p ON bm.purpose_id = p.id
         WHERE bm.scope=$1`
	args := []interface{}{scope}
	if scope == models.ScopeChapter && chapterID != nil {
		query += ` AND bm.chapter_id=$2`
		args = append(args, *chapterID)
	}
	query += ` ORDER BY bm.movement_date DESC, bm.id DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []models.BankMovement
	for rows.Next() {
		var m models.BankMovement
		if err := rows.Scan(&m.ID, &m.Scope, &m.ChapterID, &m.PurposeID, &m.Amount, &m.Type,
			&m.MovementDate, &m.Reference, &m.RecordedBy, &m.CreatedAt, &m.PurposeName); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

// Balances recomputes the cash and bank balances for a scope outside any
// write, for the cash position endpoints
func (r *BankMovementRepository) Balances(ctx context.Context, scope models.CustodianScope, chapterID *int) (cash, bank int64, err error) {
	if scope == models.ScopeChapter {
		err = r.DB.QueryRow(ctx, chapterBalanceQuery, chapterID).Scan(&cash, &bank)
	} else {
		err = r.DB.QueryRow(ctx, nationalBalanceQuery).Scan(&cash, &bank)
	}
	return cash, bank, err
}
