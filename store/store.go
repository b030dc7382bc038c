package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"studydesk/client"
	"studydesk/models"
)

// ErrBlankName is returned by Create before any request is sent.
var ErrBlankName = errors.New("course name must not be blank")

// CourseStore keeps the in-memory course directory backing the course list.
type CourseStore struct {
	gateway client.Gateway

	mu      sync.Mutex
	courses []models.Course
}

func NewCourseStore(gateway client.Gateway) *CourseStore {
	return &CourseStore{gateway: gateway}
}

// LoadAll fetches every course from the backend and replaces the directory.
// On failure the store keeps whatever it already had.
func (s *CourseStore) LoadAll(ctx context.Context) ([]models.Course, error) {
	courses, err := s.gateway.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.courses = courses
	s.mu.Unlock()
	return courses, nil
}

// Courses returns a copy of the currently loaded course list.
func (s *CourseStore) Courses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Course(nil), s.courses...)
}

// Filter returns the courses whose names contain term, case-insensitively,
// preserving the loaded order. An empty term returns all loaded courses.
// Filter never touches the network.
func (s *CourseStore) Filter(term string) []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	if term == "" {
		return append([]models.Course(nil), s.courses...)
	}

	needle := strings.ToLower(term)
	var filtered []models.Course
	for _, course := range s.courses {
		if strings.Contains(strings.ToLower(course.Name), needle) {
			filtered = append(filtered, course)
		}
	}
	return filtered
}

// Create validates the name locally and submits it to the backend. The
// created course is appended to the directory. Duplicate names are left for
// the backend to accept or reject.
func (s *CourseStore) Create(ctx context.Context, name string) (models.Course, error) {
	if err := models.Validate.Struct(models.NewCourse{Name: name}); err != nil {
		return models.Course{}, ErrBlankName
	}

	course, err := s.gateway.CreateCourse(ctx, name)
	if err != nil {
		return models.Course{}, err
	}

	s.mu.Lock()
	s.courses = append(s.courses, course)
	s.mu.Unlock()
	return course, nil
}
