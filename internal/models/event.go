package models

import "time"

// EventCategory enumerates the published event kinds.
type EventCategory string

const (
	CategoryHackathon EventCategory = "hackathon"
	CategoryCultural  EventCategory = "cultural"
	CategorySports    EventCategory = "sports"
	CategoryWorkshop  EventCategory = "workshop"
)

// Event is a published activity owned by a college admin. CollegeName and
// CollegeLabel are denormalised from the owning admin's user row on reads.
type Event struct {
	ID          string        `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Category    EventCategory `db:"category" json:"category"`
	Location    string        `db:"location" json:"location"`
	StartDate   time.Time     `db:"start_date" json:"startDate"`
	EndDate     time.Time     `db:"end_date" json:"endDate"`
	CollegeID   string        `db:"college_id" json:"collegeId"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`

	CollegeName  *string `db:"college_name" json:"collegeName,omitempty"`
	CollegeLabel *string `db:"college_label" json:"college,omitempty"`
}
