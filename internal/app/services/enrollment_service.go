package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eren/coursehub/internal/app/models"
	"github.com/eren/coursehub/internal/app/models/dto"
	"github.com/eren/coursehub/internal/app/repositories"
	"github.com/eren/coursehub/internal/pkg/apperrors"
)

// EnrollmentService handles enrollment and roster operations
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID int64) (*dto.EnrollmentResponse, error)
	ListCourseStudents(ctx context.Context, courseID, requesterID int64) ([]dto.EnrollmentResponse, error)
	ListStudentEnrollments(ctx context.Context, studentID int64) ([]dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	enrollmentRepo repositories.IEnrollmentRepository
	courseRepo     repositories.ICourseRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollmentRepo repositories.IEnrollmentRepository, courseRepo repositories.ICourseRepository, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		logger:         logger,
	}
}

// Enroll enrolls a student into a course. An existing enrollment is reported
// before attempting the insert, but the unique constraint on
// (student_id, course_id) remains the authority, so two concurrent calls for
// the same pair cannot both succeed.
func (s *enrollmentService) Enroll(ctx context.Context, studentID, courseID int64) (*dto.EnrollmentResponse, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("courseID", courseID).
		Int64("enrollmentID", enrollment.ID).
		Msg("Student enrolled")

	resp := dto.NewEnrollmentResponse(enrollment)
	return &resp, nil
}

// ListCourseStudents returns the roster of a course. Only the course's own
// instructor may list it.
func (s *enrollmentService) ListCourseStudents(ctx context.Context, courseID, requesterID int64) ([]dto.EnrollmentResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if course.InstructorID != requesterID {
		return nil, apperrors.NewForbiddenError("only the course's instructor may list its students")
	}

	enrollments, err := s.enrollmentRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, dto.NewEnrollmentResponse(enrollment))
	}

	return responses, nil
}

// ListStudentEnrollments returns the authenticated student's enrollments
// with each course resolved.
func (s *enrollmentService) ListStudentEnrollments(ctx context.Context, studentID int64) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollmentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, dto.NewEnrollmentResponse(enrollment))
	}

	return responses, nil
}
