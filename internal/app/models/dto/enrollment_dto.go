package dto

import (
	"time"

	"github.com/eren/coursehub/internal/app/models"
)

// EnrollmentResponse represents enrollment information. Student is resolved
// on roster listings, Course on a student's own enrollment listing.
type EnrollmentResponse struct {
	ID         int64                `json:"id"`
	StudentID  int64                `json:"studentId"`
	CourseID   int64                `json:"courseId"`
	EnrolledAt time.Time            `json:"enrolledAt"`
	Completed  bool                 `json:"completed"`
	Student    *UserSummaryResponse `json:"student,omitempty"`
	Course     *CourseResponse      `json:"course,omitempty"`
}

// NewEnrollmentResponse builds an EnrollmentResponse from an enrollment model
func NewEnrollmentResponse(enrollment *models.Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:         enrollment.ID,
		StudentID:  enrollment.StudentID,
		CourseID:   enrollment.CourseID,
		EnrolledAt: enrollment.EnrolledAt,
		Completed:  enrollment.Completed,
	}
	if enrollment.Student != nil {
		resp.Student = &UserSummaryResponse{
			ID:    enrollment.Student.ID,
			Name:  enrollment.Student.Name,
			Email: enrollment.Student.Email,
		}
	}
	if enrollment.Course != nil {
		course := NewCourseResponse(enrollment.Course)
		resp.Course = &course
	}
	return resp
}
