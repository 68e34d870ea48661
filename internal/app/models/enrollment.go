package models

import "time"

// Enrollment links one student to one course. The pair is unique: the
// 'enrollments' table carries a UNIQUE(student_id, course_id) constraint and
// a violation of it is the authoritative duplicate-enrollment signal.
type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
	Completed  bool      `json:"completed" db:"completed"`

	// Relations (populated when needed)
	Student *UserSummary `json:"student,omitempty"`
	Course  *Course      `json:"course,omitempty"`
}
