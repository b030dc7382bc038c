package mockapi_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studydesk/mockapi"
	"studydesk/models"
)

func TestSeededCourses(t *testing.T) {
	app := mockapi.New().App()

	req := httptest.NewRequest("GET", "/courses", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var courses []models.Course
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&courses))
	require.Len(t, courses, 7)
	assert.Equal(t, "Mathematik", courses[0].Name)
}

func TestCreateCourseIncrementsID(t *testing.T) {
	app := mockapi.New().App()

	body, _ := json.Marshal(map[string]string{"name": "Statistik"})
	req := httptest.NewRequest("POST", "/courses", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var course models.Course
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&course))
	assert.Equal(t, 8, course.ID)
	assert.Equal(t, "Statistik", course.Name)
}

func TestGetCourseNotFound(t *testing.T) {
	app := mockapi.New().App()

	req := httptest.NewRequest("GET", "/courses/999", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Contains(t, payload["detail"], "999")
}

func TestUploadDeduplication(t *testing.T) {
	app := mockapi.New().App()

	send := func() int {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("file", "mechanics.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest("POST", "/courses/2/upload/notes", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, send())
	assert.Equal(t, fiber.StatusConflict, send())
}

func TestGenerateReturnsPDF(t *testing.T) {
	app := mockapi.New().App()

	req := httptest.NewRequest("POST", "/courses/1/generate?n_questions=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body.Bytes(), []byte("%PDF")))
}
