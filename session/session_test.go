package session_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studydesk/models"
	"studydesk/session"
)

type fakeGateway struct {
	course *models.Course
	getErr error
}

func (g *fakeGateway) ListCourses(ctx context.Context) ([]models.Course, error) {
	return nil, nil
}

func (g *fakeGateway) CreateCourse(ctx context.Context, name string) (models.Course, error) {
	return models.Course{}, nil
}

func (g *fakeGateway) GetCourse(ctx context.Context, courseID int) (*models.Course, error) {
	if g.getErr != nil {
		return nil, g.getErr
	}
	return g.course, nil
}

func (g *fakeGateway) UploadMaterial(ctx context.Context, courseID int, kind models.MaterialKind, filename string, file io.Reader) error {
	return nil
}

func (g *fakeGateway) GenerateExam(ctx context.Context, courseID int, opts models.ExamOptions) ([]byte, error) {
	return nil, nil
}

func TestOpenReady(t *testing.T) {
	gateway := &fakeGateway{course: &models.Course{ID: 5, Name: "Biologie"}}
	sess := session.New(gateway)
	sess.Open(context.Background(), 5)

	require.Equal(t, session.StateReady, sess.State())
	require.NotNil(t, sess.Course())
	assert.Equal(t, 5, sess.CourseID())
	// missing materials default to an empty list
	assert.NotNil(t, sess.Course().Materials)
	assert.Empty(t, sess.Materials())
}

func TestOpenComputesDisplayNames(t *testing.T) {
	gateway := &fakeGateway{course: &models.Course{
		ID:   2,
		Name: "Physik",
		Materials: []models.Material{
			{StoredName: "mechanics.pdf", Kind: models.KindSlides},
			{StoredName: "exam_2024.pdf", Kind: models.KindExam},
		},
	}}
	sess := session.New(gateway)
	sess.Open(context.Background(), 2)

	require.Equal(t, session.StateReady, sess.State())
	materials := sess.Materials()
	require.Len(t, materials, 2)
	assert.Equal(t, "mechanics", materials[0].DisplayName)
	assert.Equal(t, "exam_2024", materials[1].DisplayName)
}

func TestOpenNotFoundOnFetchError(t *testing.T) {
	// a fetch failure is shown the same way as a missing course
	gateway := &fakeGateway{getErr: errors.New("backend unreachable")}
	sess := session.New(gateway)
	sess.Open(context.Background(), 5)

	assert.Equal(t, session.StateNotFound, sess.State())
	assert.Nil(t, sess.Course())
	assert.Nil(t, sess.Materials())
}

func TestOpenNotFoundOnEmptyResponse(t *testing.T) {
	gateway := &fakeGateway{course: nil}
	sess := session.New(gateway)
	sess.Open(context.Background(), 999)

	assert.Equal(t, session.StateNotFound, sess.State())
	assert.Nil(t, sess.Course())
}

func TestOpenNotFoundOnMissingID(t *testing.T) {
	gateway := &fakeGateway{course: &models.Course{Name: "ghost"}}
	sess := session.New(gateway)
	sess.Open(context.Background(), 7)

	assert.Equal(t, session.StateNotFound, sess.State())
}

func TestAppendMaterial(t *testing.T) {
	gateway := &fakeGateway{course: &models.Course{ID: 5, Name: "Biologie"}}
	sess := session.New(gateway)
	sess.Open(context.Background(), 5)

	sess.AppendMaterial(models.NewMaterial("notes.pdf", models.KindNotes))

	materials := sess.Materials()
	require.Len(t, materials, 1)
	assert.Equal(t, "notes.pdf", materials[0].StoredName)
	assert.Equal(t, "notes", materials[0].DisplayName)
}

func TestAppendMaterialIgnoredWhenNotReady(t *testing.T) {
	gateway := &fakeGateway{getErr: errors.New("down")}
	sess := session.New(gateway)
	sess.Open(context.Background(), 5)

	sess.AppendMaterial(models.NewMaterial("notes.pdf", models.KindNotes))
	assert.Nil(t, sess.Materials())
}
