package mockapi

import (
	"net/url"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"studydesk/models"
)

// Server is an in-memory stand-in for the course backend. It implements the
// same HTTP contract and backs both the contract tests and the mock run mode.
type Server struct {
	app *fiber.App

	mu           sync.Mutex
	nextID       int
	courses      []*models.Course
	uploaded     map[int]map[string]bool
	lastGenQuery url.Values
}

func New() *Server {
	s := &Server{
		nextID:   8,
		courses:  seedCourses(),
		uploaded: make(map[int]map[string]bool),
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/courses", s.listCourses)
	app.Post("/courses", s.createCourse)
	app.Get("/courses/:id", s.getCourse)
	app.Post("/courses/:id/upload/:kind", s.uploadMaterial)
	app.Post("/courses/:id/generate", s.generateExam)

	s.app = app
	return s
}

// seedCourses mirrors the fixture data the mock service has always shipped
// with, so the next created course gets id 8.
func seedCourses() []*models.Course {
	names := []string{"Mathematik", "Physik", "Chemie", "Informatik", "Biologie", "Englisch", "Geschichte"}

	courses := make([]*models.Course, 0, len(names))
	for i, name := range names {
		courses = append(courses, &models.Course{
			ID:        i + 1,
			Name:      name,
			Materials: []models.Material{},
		})
	}
	return courses
}

// App exposes the fiber app so tests can drive it in-process.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves the mock backend on addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// LastGenerateQuery returns the query parameters of the most recent
// generation request, for contract tests.
func (s *Server) LastGenerateQuery() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastGenQuery
}

func (s *Server) findCourse(id int) *models.Course {
	for _, course := range s.courses {
		if course.ID == id {
			return course
		}
	}
	return nil
}
