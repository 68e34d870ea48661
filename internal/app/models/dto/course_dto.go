package dto

import (
	"time"

	"github.com/eren/coursehub/internal/app/models"
)

// CreateCourseRequest represents a course creation request. The instructor
// field is optional; when present it must match the authenticated caller.
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Instructor  *int64 `json:"instructor,omitempty"`
}

// UserSummaryResponse is the display subset of a referenced user
type UserSummaryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CourseResponse represents course information with the instructor resolved
type CourseResponse struct {
	ID          int64                `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Instructor  *UserSummaryResponse `json:"instructor,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// NewCourseResponse builds a CourseResponse from a course model
func NewCourseResponse(course *models.Course) CourseResponse {
	resp := CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		CreatedAt:   course.CreatedAt,
	}
	if course.Instructor != nil {
		resp.Instructor = &UserSummaryResponse{
			ID:    course.Instructor.ID,
			Name:  course.Instructor.Name,
			Email: course.Instructor.Email,
		}
	}
	return resp
}
