package workflows

import (
	"context"
	"log"
	"sync"
	"time"

	"studydesk/client"
	"studydesk/models"
	"studydesk/session"
)

// ExamGenWorkflow is the state machine behind the "generate exam" modal. It
// submits optional parameters, receives a binary document and saves it
// locally exactly once, on confirmed success.
type ExamGenWorkflow struct {
	session    *session.CourseSession
	gateway    client.Gateway
	downloader Downloader
	logger     *log.Logger

	closeDelay time.Duration

	mu         sync.Mutex
	state      State
	epoch      int
	opts       models.ExamOptions
	savedPath  string
	closeTimer *time.Timer
}

func NewExamGen(sess *session.CourseSession, gateway client.Gateway, downloader Downloader, logger *log.Logger, closeDelay time.Duration) *ExamGenWorkflow {
	if closeDelay <= 0 {
		closeDelay = DefaultCloseDelay
	}
	if downloader == nil {
		downloader = FileDownloader{}
	}
	return &ExamGenWorkflow{
		session:    sess,
		gateway:    gateway,
		downloader: downloader,
		logger:     logger,
		closeDelay: closeDelay,
		state:      StateClosed,
	}
}

// Open shows the modal with cleared parameters and result flags.
func (w *ExamGenWorkflow) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
	w.state = StateOpen
}

// SetOptions records the generation parameters. Nothing is validated here;
// out-of-range values are silently omitted at submit time.
func (w *ExamGenWorkflow) SetOptions(opts models.ExamOptions) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case StateOpen, StateFailed:
	case StateGenerating:
		return ErrInFlight
	default:
		return ErrClosed
	}

	w.opts = opts
	return nil
}

// Submit asks the backend to generate an exam for the session's course and
// saves the returned document. It blocks until the attempt resolves.
func (w *ExamGenWorkflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	switch w.state {
	case StateGenerating:
		w.mu.Unlock()
		return ErrInFlight
	case StateClosed, StateSucceeded:
		w.mu.Unlock()
		return ErrClosed
	}

	w.state = StateGenerating
	epoch := w.epoch
	opts := w.opts
	courseID := w.session.CourseID()
	courseName := ""
	if course := w.session.Course(); course != nil {
		courseName = course.Name
	}
	w.mu.Unlock()

	artifact, err := w.gateway.GenerateExam(ctx, courseID, opts)

	w.mu.Lock()
	defer w.mu.Unlock()

	// The modal was closed while generating; discard the artifact.
	if w.epoch != epoch {
		return nil
	}

	if err != nil {
		w.state = StateFailed
		if w.logger != nil {
			w.logger.Printf("Error generating exam for course %d: %v", courseID, err)
		}
		return err
	}

	path, err := w.downloader.Save(ExamFilename(courseName), artifact)
	if err != nil {
		w.state = StateFailed
		if w.logger != nil {
			w.logger.Printf("Error saving exam for course %d: %v", courseID, err)
		}
		return err
	}

	w.savedPath = path
	w.state = StateSucceeded
	w.scheduleClose(epoch)
	return nil
}

// Close resets the workflow from any state and is safe to call repeatedly.
func (w *ExamGenWorkflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

func (w *ExamGenWorkflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *ExamGenWorkflow) Options() models.ExamOptions {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.opts
}

// SavedPath returns where the last generated exam was written, until the
// workflow is reset.
func (w *ExamGenWorkflow) SavedPath() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.savedPath
}

// Caller holds w.mu.
func (w *ExamGenWorkflow) scheduleClose(epoch int) {
	w.closeTimer = time.AfterFunc(w.closeDelay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.epoch != epoch || w.state != StateSucceeded {
			return
		}
		w.reset()
	})
}

// Caller holds w.mu.
func (w *ExamGenWorkflow) reset() {
	if w.closeTimer != nil {
		w.closeTimer.Stop()
		w.closeTimer = nil
	}
	w.epoch++
	w.state = StateClosed
	w.opts = models.ExamOptions{}
	w.savedPath = ""
}
