package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"studydesk/models"
)

// Gateway is the backend contract the store, session and workflows talk to.
type Gateway interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	CreateCourse(ctx context.Context, name string) (models.Course, error)
	GetCourse(ctx context.Context, courseID int) (*models.Course, error)
	UploadMaterial(ctx context.Context, courseID int, kind models.MaterialKind, filename string, file io.Reader) error
	GenerateExam(ctx context.Context, courseID int, opts models.ExamOptions) ([]byte, error)
}

type httpGateway struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Gateway talking to the course backend at baseURL.
func New(baseURL string, httpClient *http.Client) Gateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &httpGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GET /courses
func (g *httpGateway) ListCourses(ctx context.Context) ([]models.Course, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/courses", nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, g.statusError(resp)
	}

	var courses []models.Course
	if err := json.NewDecoder(resp.Body).Decode(&courses); err != nil {
		return nil, fmt.Errorf("decode course list: %w", err)
	}
	return courses, nil
}

// POST /courses
func (g *httpGateway) CreateCourse(ctx context.Context, name string) (models.Course, error) {
	body, err := json.Marshal(models.NewCourse{Name: name})
	if err != nil {
		return models.Course{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/courses", bytes.NewReader(body))
	if err != nil {
		return models.Course{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.Course{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return models.Course{}, g.statusError(resp)
	}

	var course models.Course
	if err := json.NewDecoder(resp.Body).Decode(&course); err != nil {
		return models.Course{}, fmt.Errorf("decode created course: %w", err)
	}
	return course, nil
}

// GET /courses/{id}
func (g *httpGateway) GetCourse(ctx context.Context, courseID int) (*models.Course, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/courses/%d", g.baseURL, courseID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, g.statusError(resp)
	}

	// An empty body is not an error here; the caller treats a course without
	// an id as not found.
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null" {
		return nil, nil
	}

	var course models.Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil, fmt.Errorf("decode course: %w", err)
	}
	return &course, nil
}

// POST /courses/{id}/upload/{kind}
func (g *httpGateway) UploadMaterial(ctx context.Context, courseID int, kind models.MaterialKind, filename string, file io.Reader) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/courses/%d/upload/%s", g.baseURL, courseID, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return &ConflictError{Detail: g.detail(resp)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return g.statusError(resp)
	}
	return nil
}

// POST /courses/{id}/generate?n_questions=&topics=
func (g *httpGateway) GenerateExam(ctx context.Context, courseID int, opts models.ExamOptions) ([]byte, error) {
	url := fmt.Sprintf("%s/courses/%d/generate", g.baseURL, courseID)
	if params := opts.Query(); len(params) > 0 {
		url += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, g.statusError(resp)
	}

	artifact, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

// detail extracts the {"detail": ...} explanation from an error body, if any.
func (g *httpGateway) detail(resp *http.Response) string {
	var payload ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}

func (g *httpGateway) statusError(resp *http.Response) error {
	return &StatusError{Code: resp.StatusCode, Detail: g.detail(resp)}
}
