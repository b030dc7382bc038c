package mockapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"studydesk/models"
)

func (s *Server) listCourses(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Course, 0, len(s.courses))
	for _, course := range s.courses {
		result = append(result, *course)
	}
	return c.JSON(result)
}

func (s *Server) createCourse(c *fiber.Ctx) error {
	var payload models.NewCourse
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}
	if strings.TrimSpace(payload.Name) == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Course name must not be empty",
		})
	}

	s.mu.Lock()
	course := &models.Course{
		ID:        s.nextID,
		Name:      payload.Name,
		Materials: []models.Material{},
	}
	s.nextID++
	s.courses = append(s.courses, course)
	s.mu.Unlock()

	return c.Status(fiber.StatusCreated).JSON(course)
}

func (s *Server) getCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid course ID",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	course := s.findCourse(courseID)
	if course == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": fmt.Sprintf("Course with ID %d not found", courseID),
		})
	}
	return c.JSON(course)
}

func (s *Server) uploadMaterial(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid course ID",
		})
	}

	kind := models.MaterialKind(c.Params("kind"))
	if !kind.Valid() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": fmt.Sprintf("Invalid material type %q", c.Params("kind")),
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "A file field is required",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	course := s.findCourse(courseID)
	if course == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": fmt.Sprintf("Course with ID %d not found", courseID),
		})
	}

	if s.uploaded[courseID] == nil {
		s.uploaded[courseID] = make(map[string]bool)
	}
	if s.uploaded[courseID][file.Filename] {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"detail": fmt.Sprintf("%s has already been uploaded for this course", file.Filename),
		})
	}

	s.uploaded[courseID][file.Filename] = true
	course.Materials = append(course.Materials, models.Material{
		StoredName: file.Filename,
		Kind:       kind,
	})

	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) generateExam(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid course ID",
		})
	}

	query := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		query.Add(string(key), string(value))
	})

	s.mu.Lock()
	course := s.findCourse(courseID)
	s.lastGenQuery = query
	s.mu.Unlock()

	if course == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": fmt.Sprintf("Course with ID %d not found", courseID),
		})
	}

	nQuestions := 20
	if n, err := strconv.Atoi(c.Query("n_questions")); err == nil && n > 0 {
		nQuestions = n
	}
	topics := c.Query("topics")

	pdf := examPDF(course.Name, nQuestions, topics)

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="new_exam_course_%d.pdf"`, courseID))
	return c.Send(pdf)
}

// examPDF produces a small placeholder document. The client treats the
// artifact as opaque bytes, so only the PDF header matters.
func examPDF(courseName string, nQuestions int, topics string) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	b.WriteString(fmt.Sprintf("%% mock exam for %s\n", courseName))
	b.WriteString(fmt.Sprintf("%% questions: %d\n", nQuestions))
	if topics != "" {
		b.WriteString(fmt.Sprintf("%% topics: %s\n", topics))
	}
	b.WriteString("%%EOF\n")
	return []byte(b.String())
}
