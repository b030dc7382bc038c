package session

import (
	"context"
	"sync"

	"studydesk/client"
	"studydesk/models"
)

// State is the lifecycle position of a course detail view.
type State string

const (
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateNotFound State = "not_found"
)

// CourseSession owns one loaded course and its materials for the lifetime of
// a course view. The upload and generation workflows read and write course
// state only through it.
type CourseSession struct {
	gateway client.Gateway

	mu       sync.Mutex
	state    State
	courseID int
	course   *models.Course
}

func New(gateway client.Gateway) *CourseSession {
	return &CourseSession{gateway: gateway, state: StateLoading}
}

// Open loads the course and settles the session in Ready or NotFound. A fetch
// failure is indistinguishable from a missing course here; both end NotFound
// and the view offers no retry.
func (s *CourseSession) Open(ctx context.Context, courseID int) {
	s.mu.Lock()
	s.state = StateLoading
	s.courseID = courseID
	s.course = nil
	s.mu.Unlock()

	course, err := s.gateway.GetCourse(ctx, courseID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil || course == nil || course.ID == 0 {
		s.state = StateNotFound
		return
	}

	if course.Materials == nil {
		course.Materials = []models.Material{}
	}
	for i := range course.Materials {
		course.Materials[i].DisplayName = models.DisplayName(course.Materials[i].StoredName)
	}

	s.course = course
	s.state = StateReady
}

func (s *CourseSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Course returns the loaded course, or nil while loading or not found.
func (s *CourseSession) Course() *models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.course
}

// CourseID returns the id this session was opened with.
func (s *CourseSession) CourseID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.courseID
}

// Materials returns the loaded materials, or nil when no course is loaded.
func (s *CourseSession) Materials() []models.Material {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.course == nil {
		return nil
	}
	return append([]models.Material(nil), s.course.Materials...)
}

// AppendMaterial records a server-confirmed upload on the session's course.
// It is a no-op unless the session is ready.
func (s *CourseSession) AppendMaterial(m models.Material) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady || s.course == nil {
		return
	}
	s.course.Materials = append(s.course.Materials, m)
}
