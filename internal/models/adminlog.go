package models

import "time"

// AdminLog is an append-only audit entry. Rows are never updated or deleted.
type AdminLog struct {
	ID        string    `db:"id" json:"id"`
	Action    string    `db:"action" json:"action"`
	UserID    string    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`

	UserName    *string   `db:"user_name" json:"user_name,omitempty"`
	UserRole    *UserRole `db:"user_role" json:"user_role,omitempty"`
	UserCollege *string   `db:"user_college" json:"user_college,omitempty"`
}
