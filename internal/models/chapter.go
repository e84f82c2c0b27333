package models

import "time"

// Chapter is an organizational unit under the national body. It owns members
// and scopes chapter-level transactions and balances.
type Chapter struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateChapterRequest struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}
