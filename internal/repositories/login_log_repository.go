package repositories

import (
	"context"

	"chapterfund-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LoginLogRepository struct {
	DB *pgxpool.Pool
}

func NewLoginLogRepository(db *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{DB: db}
}

// CreateLoginLog records a new login event
func (r *LoginLogRepository) CreateLoginLog(ctx context.Context, userID int, ipAddress, userAgent string) (int, error) {
	query := `
		INSERT INTO login_logs (user_id, login_time, ip_address, user_agent)
		VALUES ($1, NOW(), $2, $3)
		RETURNING id
	`

	var logID int
	err := r.DB.QueryRow(ctx, query, userID, ipAddress, userAgent).Scan(&logID)
	if err != nil {
		return 0, err
	}

	return logID, nil
}

// UpdateLogoutTimeByUser records logout for the most recent login of a user
func (r *LoginLogRepository) UpdateLogoutTimeByUser(ctx context.Context, userID int) error {
	query := `
		UPDATE login_logs
		SET logout_time = NOW()
		WHERE id = (
			SELECT id FROM login_logs
			WHERE user_id = $1 AND logout_time IS NULL
			ORDER BY login_time DESC
			LIMIT 1
		)
	`

	_, err := r.DB.Exec(ctx, query, userID)
	return err
}

// ListAll retrieves login/logout history with user names, newest first
func (r *LoginLogRepository) ListAll(ctx context.Context, limit int) ([]*models.LoginLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	query := `
		SELECT ll.id, ll.user_id, u.name, ll.login_time, ll.logout_time,
		       COALESCE(ll.ip_address, ''), COALESCE(ll.user_agent, '')
		FROM login_logs ll
		JOIN users u ON ll.user_id = u.id
		ORDER BY ll.login_time DESC
		LIMIT $1
	`

	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.LoginLog
	for rows.Next() {
		var l models.LoginLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.UserName, &l.LoginAt, &l.LogoutAt,
			&l.IPAddress, &l.UserAgent); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}

	return logs, rows.Err()
}
