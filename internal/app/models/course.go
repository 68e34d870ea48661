package models

import "time"

// Course represents a course published by an instructor.
type Course struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	InstructorID int64     `json:"instructorId" db:"instructor_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Relation (populated when needed)
	Instructor *UserSummary `json:"instructor,omitempty"`
}
