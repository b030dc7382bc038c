package workflows_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studydesk/client"
	"studydesk/mockapi"
	"studydesk/models"
	"studydesk/session"
	"studydesk/workflows"
)

// newMockGateway wires the real HTTP gateway into the in-process mock
// backend, so these tests cover the full client-side path.
func newMockGateway(t *testing.T) (client.Gateway, *mockapi.Server) {
	t.Helper()
	srv := mockapi.New()
	httpClient := &http.Client{Transport: mockapi.Transport{App: srv.App()}}
	return client.New("http://mockapi", httpClient), srv
}

func openMockSession(t *testing.T, gateway client.Gateway, courseID int) *session.CourseSession {
	t.Helper()
	sess := session.New(gateway)
	sess.Open(context.Background(), courseID)
	return sess
}

func TestUploadRoundTrip(t *testing.T) {
	gateway, _ := newMockGateway(t)
	sess := openMockSession(t, gateway, 5)

	require.Equal(t, session.StateReady, sess.State())
	require.Equal(t, "Biologie", sess.Course().Name)
	require.Empty(t, sess.Materials())

	upload := workflows.NewUpload(sess, gateway, nil, testCloseDelay)
	upload.Open()
	require.NoError(t, upload.ChooseFile(workflows.File{Name: "rl_notes.pdf", Data: []byte("%PDF-1.4")}))
	require.NoError(t, upload.SetKind(models.KindSlides))
	require.NoError(t, upload.Submit(context.Background()))

	require.Equal(t, workflows.StateSucceeded, upload.State())
	materials := sess.Materials()
	require.Len(t, materials, 1)
	assert.Equal(t, "rl_notes.pdf", materials[0].StoredName)
	assert.Equal(t, models.KindSlides, materials[0].Kind)
	assert.Equal(t, "rl_notes", materials[0].DisplayName)

	require.Eventually(t, func() bool {
		return upload.State() == workflows.StateClosed
	}, time.Second, 5*time.Millisecond)
}

func TestUploadDuplicateRoundTrip(t *testing.T) {
	gateway, _ := newMockGateway(t)
	sess := openMockSession(t, gateway, 5)
	require.Equal(t, session.StateReady, sess.State())

	file := workflows.File{Name: "rl_notes.pdf", Data: []byte("%PDF-1.4")}

	upload := workflows.NewUpload(sess, gateway, nil, testCloseDelay)
	upload.Open()
	require.NoError(t, upload.ChooseFile(file))
	require.NoError(t, upload.SetKind(models.KindSlides))
	require.NoError(t, upload.Submit(context.Background()))
	require.Len(t, sess.Materials(), 1)

	// second attempt with the same file is a business conflict, not a crash
	upload.Open()
	require.NoError(t, upload.ChooseFile(file))
	require.NoError(t, upload.SetKind(models.KindSlides))
	err := upload.Submit(context.Background())

	assert.Error(t, err)
	assert.Equal(t, workflows.StateFailed, upload.State())
	assert.Contains(t, upload.Message(), "has already been uploaded")
	assert.Len(t, sess.Materials(), 1)
}

func TestGenerateRoundTrip(t *testing.T) {
	gateway, srv := newMockGateway(t)
	sess := openMockSession(t, gateway, 4)
	require.Equal(t, session.StateReady, sess.State())

	dir := t.TempDir()
	examgen := workflows.NewExamGen(sess, gateway, workflows.FileDownloader{Dir: dir}, nil, testCloseDelay)

	examgen.Open()
	require.NoError(t, examgen.SetOptions(models.ExamOptions{NQuestions: 10, Topics: "calculus"}))
	require.NoError(t, examgen.Submit(context.Background()))

	query := srv.LastGenerateQuery()
	assert.Equal(t, "10", query.Get("n_questions"))
	assert.Equal(t, "calculus", query.Get("topics"))

	require.Equal(t, workflows.StateSucceeded, examgen.State())
	path := examgen.SavedPath()
	assert.Equal(t, filepath.Join(dir, "exam_Informatik.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))

	require.Eventually(t, func() bool {
		return examgen.State() == workflows.StateClosed
	}, time.Second, 5*time.Millisecond)
}

func TestOpenMissingCourse(t *testing.T) {
	gateway, _ := newMockGateway(t)
	sess := openMockSession(t, gateway, 999)

	assert.Equal(t, session.StateNotFound, sess.State())
	assert.Nil(t, sess.Course())
	assert.Nil(t, sess.Materials())
}
