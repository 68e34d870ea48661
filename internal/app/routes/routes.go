package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/eren/coursehub/internal/app/controllers"
	"github.com/eren/coursehub/internal/app/models"
	"github.com/eren/coursehub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/profile", authController.Profile)

		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.GetAllCourses)
			courses.GET("/:id", courseController.GetCourseByID)

			// Instructor-only routes
			coursesInstructorProtected := courses.Group("")
			coursesInstructorProtected.Use(authMiddleware.RoleRequired(string(models.RoleInstructor)))
			{
				coursesInstructorProtected.POST("", courseController.CreateCourse)
			}

			// Roster listing checks course ownership in the service layer,
			// so it only needs authentication here
			courses.GET("/:id/students", enrollmentController.GetCourseStudents)

			// Student-only routes
			coursesStudentProtected := courses.Group("")
			coursesStudentProtected.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
			{
				coursesStudentProtected.POST("/:id/enroll", enrollmentController.Enroll)
			}
		}

		enrollments := authenticated.Group("/enrollments")
		enrollments.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			enrollments.GET("", enrollmentController.GetMyEnrollments)
		}
	}
}
