package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eren/coursehub/internal/app/models/dto"
	"github.com/eren/coursehub/internal/app/services"
	"github.com/eren/coursehub/internal/middleware"
)

// EnrollmentController handles enrollment related operations
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// Enroll enrolls the authenticated student into a course
// @Summary Enroll into a course
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrolled"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	studentID := ctx.GetInt64(middleware.ContextUserIDKey)

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), studentID, courseID)
	if err != nil {
		c.logger.Warn().Err(err).
			Int64("studentID", studentID).
			Int64("courseID", courseID).
			Msg("Enrollment failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: enrollment,
	})
}

// GetCourseStudents lists the enrollments of a course for its instructor
// @Summary List a course's students
// @Description Lists the course roster; only the course's instructor may call this
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse}
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/students [get]
func (c *EnrollmentController) GetCourseStudents(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	requesterID := ctx.GetInt64(middleware.ContextUserIDKey)

	enrollments, err := c.enrollmentService.ListCourseStudents(ctx.Request.Context(), courseID, requesterID)
	if err != nil {
		c.logger.Warn().Err(err).
			Int64("requesterID", requesterID).
			Int64("courseID", courseID).
			Msg("Failed to list course students")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: enrollments,
	})
}

// GetMyEnrollments lists the authenticated student's enrollments
// @Summary List own enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Router /enrollments [get]
func (c *EnrollmentController) GetMyEnrollments(ctx *gin.Context) {
	studentID := ctx.GetInt64(middleware.ContextUserIDKey)

	enrollments, err := c.enrollmentService.ListStudentEnrollments(ctx.Request.Context(), studentID)
	if err != nil {
		c.logger.Error().Err(err).Int64("studentID", studentID).Msg("Failed to list enrollments")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: enrollments,
	})
}
