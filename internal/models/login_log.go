package models

import "time"

// LoginLog is an append-only record of portal logins.
type LoginLog struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	UserName  string     `json:"user_name,omitempty"`
	IPAddress string     `json:"ip_address"`
	UserAgent string     `json:"user_agent"`
	LoginAt   time.Time  `json:"login_at"`
	LogoutAt  *time.Time `json:"logout_at"`
}
