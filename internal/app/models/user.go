package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Name      string    `json:"name" db:"name" example:"Jane Doe"`                        // User's display name
	Email     string    `json:"email" db:"email" example:"jane@example.com"`              // User's email address (unique)
	Password  string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"STUDENT"`                // User's role (STUDENT or INSTRUCTOR)
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
}

// UserSummary is the display subset of a user resolved on joined reads
// (instructor on a course listing, student on a roster).
type UserSummary struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}
