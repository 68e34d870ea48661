package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eren/coursehub/internal/app/models"
	"github.com/eren/coursehub/internal/app/models/dto"
	"github.com/eren/coursehub/internal/app/repositories"
	"github.com/eren/coursehub/internal/pkg/apperrors"
)

// CourseService handles course creation and listing
type CourseService interface {
	CreateCourse(ctx context.Context, instructorID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
	GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error)
}

type courseService struct {
	courseRepo repositories.ICourseRepository
	userRepo   repositories.IUserRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.ICourseRepository, userRepo repositories.IUserRepository, logger zerolog.Logger) CourseService {
	return &courseService{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// CreateCourse creates a course owned by the authenticated instructor. The
// instructor reference is always the caller's identity; a body-supplied
// instructor id is accepted only when it matches the caller.
func (s *courseService) CreateCourse(ctx context.Context, instructorID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if req.Instructor != nil && *req.Instructor != instructorID {
		return nil, apperrors.NewForbiddenError("courses can only be created under your own instructor identity")
	}

	instructor, err := s.userRepo.GetByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: instructorID,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	course.Instructor = &models.UserSummary{
		ID:    instructor.ID,
		Name:  instructor.Name,
		Email: instructor.Email,
	}

	s.logger.Info().
		Int64("courseID", course.ID).
		Int64("instructorID", instructorID).
		Msg("Course created")

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// ListCourses returns all courses with the instructor resolved
func (s *courseService) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.NewCourseResponse(course))
	}

	return responses, nil
}

// GetCourse returns a single course by id
func (s *courseService) GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}
