package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/eren/coursehub/internal/app/models"
	"github.com/eren/coursehub/internal/pkg/apperrors"
)

// In-memory repository fakes. The enrollment fake mirrors the database's
// behavior: the insert itself is the synchronization point and a duplicate
// pair fails atomically, like the unique constraint would.

type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[int64]*models.User
	nextID      int64
	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[int64]*models.Course
	users   *fakeUserRepo
	nextID  int64
}

func newFakeCourseRepo(users *fakeUserRepo) *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[int64]*models.Course), users: users}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	course.ID = r.nextID
	course.CreatedAt = time.Now()
	copied := *course
	copied.Instructor = nil
	r.courses[course.ID] = &copied
	return nil
}

func (r *fakeCourseRepo) resolve(course *models.Course) *models.Course {
	copied := *course
	if user, err := r.users.GetByID(context.Background(), course.InstructorID); err == nil {
		copied.Instructor = &models.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	return &copied
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return r.resolve(course), nil
}

func (r *fakeCourseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	courses := make([]*models.Course, 0, len(r.courses))
	for id := int64(1); id <= r.nextID; id++ {
		if course, ok := r.courses[id]; ok {
			courses = append(courses, r.resolve(course))
		}
	}
	return courses, nil
}

type fakeEnrollmentRepo struct {
	mu          sync.Mutex
	enrollments []*models.Enrollment
	users       *fakeUserRepo
	courses     *fakeCourseRepo
	nextID      int64
	createCalls int
}

func newFakeEnrollmentRepo(users *fakeUserRepo, courses *fakeCourseRepo) *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{users: users, courses: courses}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	for _, existing := range r.enrollments {
		if existing.StudentID == enrollment.StudentID && existing.CourseID == enrollment.CourseID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	r.nextID++
	enrollment.ID = r.nextID
	enrollment.EnrolledAt = time.Now()
	enrollment.Completed = false
	copied := *enrollment
	r.enrollments = append(r.enrollments, &copied)
	return nil
}

func (r *fakeEnrollmentRepo) GetByCourseID(_ context.Context, courseID int64) ([]*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Enrollment
	for _, enrollment := range r.enrollments {
		if enrollment.CourseID != courseID {
			continue
		}
		copied := *enrollment
		if user, err := r.users.GetByID(context.Background(), enrollment.StudentID); err == nil {
			copied.Student = &models.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
		}
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeEnrollmentRepo) GetByStudentID(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Enrollment
	for _, enrollment := range r.enrollments {
		if enrollment.StudentID != studentID {
			continue
		}
		copied := *enrollment
		if course, err := r.courses.GetByID(context.Background(), enrollment.CourseID); err == nil {
			course.Instructor = nil
			copied.Course = course
		}
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeEnrollmentRepo) Exists(_ context.Context, studentID, courseID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, enrollment := range r.enrollments {
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}
