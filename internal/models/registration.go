package models

import "time"

// RegistrationStatus tracks the admin review state of a registration.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// Registration is a student's intent to attend an event. At most one row
// exists per (event, user) pair.
type Registration struct {
	ID        string             `db:"id" json:"id"`
	EventID   string             `db:"event_id" json:"event_id"`
	UserID    string             `db:"user_id" json:"user_id"`
	Status    RegistrationStatus `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`

	EventTitle *string `db:"event_title" json:"event_title,omitempty"`
	UserName   *string `db:"user_name" json:"user_name,omitempty"`
	UserEmail  *string `db:"user_email" json:"user_email,omitempty"`
}
