package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eren/coursehub/internal/app/controllers"
	"github.com/eren/coursehub/internal/app/models"
	"github.com/eren/coursehub/internal/app/routes"
	"github.com/eren/coursehub/internal/app/services"
	"github.com/eren/coursehub/internal/middleware"
	"github.com/eren/coursehub/internal/pkg/apperrors"
	"github.com/eren/coursehub/internal/pkg/auth"
)

// memStore is a single in-memory store backing all three repository
// interfaces, so the router can be exercised end to end without a
// database. Insert-time uniqueness checks stand in for the table
// constraints.
type memStore struct {
	mu          sync.Mutex
	users       map[int64]*models.User
	courses     map[int64]*models.Course
	enrollments []*models.Enrollment
	userSeq     int64
	courseSeq   int64
	enrollSeq   int64
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[int64]*models.User),
		courses: make(map[int64]*models.Course),
	}
}

func (s *memStore) summary(id int64) *models.UserSummary {
	if user, ok := s.users[id]; ok {
		return &models.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	return nil
}

func (s *memStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	s.userSeq++
	user.ID = s.userSeq
	user.CreatedAt = time.Now()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(context.Background(), email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type memCourseRepo struct{ store *memStore }

func (r *memCourseRepo) Create(_ context.Context, course *models.Course) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courseSeq++
	course.ID = s.courseSeq
	course.CreatedAt = time.Now()
	copied := *course
	copied.Instructor = nil
	s.courses[course.ID] = &copied
	return nil
}

func (r *memCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *course
	copied.Instructor = s.summary(course.InstructorID)
	return &copied, nil
}

func (r *memCourseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*models.Course, 0, len(s.courses))
	for id := int64(1); id <= s.courseSeq; id++ {
		if course, ok := s.courses[id]; ok {
			copied := *course
			copied.Instructor = s.summary(course.InstructorID)
			result = append(result, &copied)
		}
	}
	return result, nil
}

type memEnrollmentRepo struct{ store *memStore }

func (r *memEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.enrollments {
		if existing.StudentID == enrollment.StudentID && existing.CourseID == enrollment.CourseID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	s.enrollSeq++
	enrollment.ID = s.enrollSeq
	enrollment.EnrolledAt = time.Now()
	copied := *enrollment
	s.enrollments = append(s.enrollments, &copied)
	return nil
}

func (r *memEnrollmentRepo) GetByCourseID(_ context.Context, courseID int64) ([]*models.Enrollment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.Enrollment
	for _, enrollment := range s.enrollments {
		if enrollment.CourseID == courseID {
			copied := *enrollment
			copied.Student = s.summary(enrollment.StudentID)
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memEnrollmentRepo) GetByStudentID(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.Enrollment
	for _, enrollment := range s.enrollments {
		if enrollment.StudentID == studentID {
			copied := *enrollment
			if course, ok := s.courses[enrollment.CourseID]; ok {
				courseCopy := *course
				copied.Course = &courseCopy
			}
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memEnrollmentRepo) Exists(_ context.Context, studentID, courseID int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, enrollment := range s.enrollments {
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	courseRepo := &memCourseRepo{store: store}
	enrollmentRepo := &memEnrollmentRepo{store: store}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "routes-test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursehub.test",
	})
	logger := zerolog.Nop()

	authService := services.NewAuthService(store, jwtService, logger)
	courseService := services.NewCourseService(courseRepo, store, logger)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, courseRepo, logger)

	router := gin.New()
	routes.SetupRouter(
		router,
		controllers.NewAuthController(authService, logger),
		controllers.NewCourseController(courseService, logger),
		controllers.NewEnrollmentController(enrollmentService, logger),
		middleware.NewAuthMiddleware(jwtService),
	)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func registerAndLogin(t *testing.T, router *gin.Engine, name, email string, role models.RoleType) string {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "test-pass",
		"role":     role,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "test-pass",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", email, resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			Token struct {
				AccessToken string `json:"accessToken"`
			} `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if envelope.Data.Token.AccessToken == "" {
		t.Fatalf("login %s: empty access token in %s", email, resp.Body.String())
	}
	return envelope.Data.Token.AccessToken
}

func createCourse(t *testing.T, router *gin.Engine, token, title string) int64 {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, "/api/v1/courses", token, gin.H{
		"title":       title,
		"description": "about " + title,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create course: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding course response: %v", err)
	}
	return envelope.Data.ID
}

func TestAuthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	// Missing fields fail binding.
	resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{"email": "x@example.com"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("incomplete register: expected 400, got %d", resp.Code)
	}

	registerAndLogin(t, router, "Ayse Demir", "ayse@example.com", models.RoleStudent)

	// Registering the same email again conflicts.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Impostor",
		"email":    "ayse@example.com",
		"password": "other",
		"role":     models.RoleStudent,
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "ayse@example.com",
		"password": "wrong",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("bad password login: expected 401, got %d", resp.Code)
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/profile", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated profile: expected 401, got %d", resp.Code)
	}

	token := registerAndLogin(t, router, "Ayse Demir", "ayse@example.com", models.RoleStudent)
	resp = doJSON(t, router, http.MethodGet, "/api/v1/profile", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding profile: %v", err)
	}
	if envelope.Data.Email != "ayse@example.com" {
		t.Fatalf("expected own email in profile, got %q", envelope.Data.Email)
	}
}

func TestCourseEndpoints(t *testing.T) {
	router := newTestRouter(t)

	instructorToken := registerAndLogin(t, router, "Zeynep Arslan", "zeynep@example.com", models.RoleInstructor)
	studentToken := registerAndLogin(t, router, "Ayse Demir", "ayse@example.com", models.RoleStudent)

	// Students cannot create courses.
	resp := doJSON(t, router, http.MethodPost, "/api/v1/courses", studentToken, gin.H{
		"title":       "Forbidden",
		"description": "should not exist",
	})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("student course creation: expected 403, got %d", resp.Code)
	}

	courseID := createCourse(t, router, instructorToken, "Distributed Systems")

	// Anyone authenticated can list and read.
	resp = doJSON(t, router, http.MethodGet, "/api/v1/courses", studentToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list courses: expected 200, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/courses/%d", courseID), studentToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get course: expected 200, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/courses/999", studentToken, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("unknown course: expected 404, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/courses/abc", studentToken, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric course id: expected 400, got %d", resp.Code)
	}
}

func TestEnrollmentEndpoints(t *testing.T) {
	router := newTestRouter(t)

	instructorToken := registerAndLogin(t, router, "Zeynep Arslan", "zeynep@example.com", models.RoleInstructor)
	otherInstructorToken := registerAndLogin(t, router, "Kerem Yildiz", "kerem@example.com", models.RoleInstructor)
	studentToken := registerAndLogin(t, router, "Ayse Demir", "ayse@example.com", models.RoleStudent)

	courseID := createCourse(t, router, instructorToken, "Compilers")
	enrollPath := fmt.Sprintf("/api/v1/courses/%d/enroll", courseID)

	// Instructors cannot enroll.
	resp := doJSON(t, router, http.MethodPost, enrollPath, instructorToken, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("instructor enroll: expected 403, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodPost, enrollPath, studentToken, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("enroll: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	// Enrolling twice conflicts.
	resp = doJSON(t, router, http.MethodPost, enrollPath, studentToken, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate enroll: expected 409, got %d: %s", resp.Code, resp.Body.String())
	}

	// Enrolling into a course that does not exist.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/courses/999/enroll", studentToken, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("enroll unknown course: expected 404, got %d", resp.Code)
	}

	rosterPath := fmt.Sprintf("/api/v1/courses/%d/students", courseID)

	// Only the owning instructor sees the roster.
	resp = doJSON(t, router, http.MethodGet, rosterPath, otherInstructorToken, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("non-owner roster: expected 403, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, rosterPath, instructorToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("owner roster: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var roster struct {
		Data []struct {
			Student *struct {
				Email string `json:"email"`
			} `json:"student"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &roster); err != nil {
		t.Fatalf("decoding roster: %v", err)
	}
	if len(roster.Data) != 1 || roster.Data[0].Student == nil || roster.Data[0].Student.Email != "ayse@example.com" {
		t.Fatalf("unexpected roster: %s", resp.Body.String())
	}

	// The student's own enrollment listing.
	resp = doJSON(t, router, http.MethodGet, "/api/v1/enrollments", studentToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("my enrollments: expected 200, got %d", resp.Code)
	}
	var mine struct {
		Data []struct {
			CourseID int64 `json:"courseId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &mine); err != nil {
		t.Fatalf("decoding enrollments: %v", err)
	}
	if len(mine.Data) != 1 || mine.Data[0].CourseID != courseID {
		t.Fatalf("unexpected enrollments: %s", resp.Body.String())
	}

	// Instructors cannot use the student-only listing.
	resp = doJSON(t, router, http.MethodGet, "/api/v1/enrollments", instructorToken, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("instructor on /enrollments: expected 403, got %d", resp.Code)
	}
}
