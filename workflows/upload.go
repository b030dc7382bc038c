package workflows

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"studydesk/client"
	"studydesk/models"
	"studydesk/session"
)

// User-facing messages, matching what the modal shows.
const (
	msgNoFile       = "Please select a file."
	msgNoKind       = "Please select a type (slide/note/exam)"
	msgConflict     = "This material has already been uploaded before"
	msgUploadFailed = "Failed to upload file. Please try again."
)

// UploadWorkflow is the state machine behind the "add material" modal. A file
// and a kind are chosen first, then submitted; the session's course only
// gains a material after the backend confirms the upload.
type UploadWorkflow struct {
	session *session.CourseSession
	gateway client.Gateway
	logger  *log.Logger

	closeDelay time.Duration

	mu         sync.Mutex
	state      State
	epoch      int
	file       *File
	kind       models.MaterialKind
	message    string
	closeTimer *time.Timer
}

func NewUpload(sess *session.CourseSession, gateway client.Gateway, logger *log.Logger, closeDelay time.Duration) *UploadWorkflow {
	if closeDelay <= 0 {
		closeDelay = DefaultCloseDelay
	}
	return &UploadWorkflow{
		session:    sess,
		gateway:    gateway,
		logger:     logger,
		closeDelay: closeDelay,
		state:      StateClosed,
	}
}

// Open shows the modal with a clean slate: no file, no kind, no messages.
func (w *UploadWorkflow) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
	w.state = StateOpen
}

// ChooseFile records the picked file and clears any previous attempt's
// result. Only valid while the modal is open and no request is in flight.
func (w *UploadWorkflow) ChooseFile(file File) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case StateOpen, StateFileChosen, StateFailed:
	case StateSubmitting:
		return ErrInFlight
	default:
		return ErrClosed
	}

	w.file = &file
	w.state = StateFileChosen
	w.message = ""
	return nil
}

// SetKind selects the material kind. Kinds are mutually exclusive; a new
// selection replaces the previous one.
func (w *UploadWorkflow) SetKind(kind models.MaterialKind) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !kind.Valid() {
		return ErrInvalidKind
	}

	switch w.state {
	case StateOpen, StateFileChosen, StateFailed:
	case StateSubmitting:
		return ErrInFlight
	default:
		return ErrClosed
	}

	w.kind = kind
	return nil
}

// Submit sends the chosen file to the backend. Missing file or kind fails
// locally without a request. Submit blocks until the attempt resolves; the
// workflow state is already updated when it returns.
func (w *UploadWorkflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	switch w.state {
	case StateSubmitting:
		w.mu.Unlock()
		return ErrInFlight
	case StateClosed, StateSucceeded:
		w.mu.Unlock()
		return ErrClosed
	}

	if w.file == nil {
		w.state = StateFailed
		w.message = msgNoFile
		w.mu.Unlock()
		return ErrNoFile
	}
	if w.kind == "" {
		w.state = StateFailed
		w.message = msgNoKind
		w.mu.Unlock()
		return ErrNoKind
	}

	w.state = StateSubmitting
	w.message = ""
	epoch := w.epoch
	file := *w.file
	kind := w.kind
	courseID := w.session.CourseID()
	w.mu.Unlock()

	err := w.gateway.UploadMaterial(ctx, courseID, kind, file.Name, bytes.NewReader(file.Data))

	w.mu.Lock()
	defer w.mu.Unlock()

	// The modal was closed while the request was in flight; drop the result.
	if w.epoch != epoch {
		return nil
	}

	if err != nil {
		w.state = StateFailed
		var conflict *client.ConflictError
		if errors.As(err, &conflict) {
			w.message = msgConflict
			if conflict.Detail != "" {
				w.message = conflict.Detail
			}
		} else {
			w.message = msgUploadFailed
		}
		if w.logger != nil {
			w.logger.Printf("Error uploading file for course %d: %v", courseID, err)
		}
		return err
	}

	w.state = StateSucceeded
	w.session.AppendMaterial(models.NewMaterial(file.Name, kind))
	w.scheduleClose(epoch)
	return nil
}

// Close resets the workflow from any state and is safe to call repeatedly.
// A request still in flight keeps running, but its result no longer applies.
func (w *UploadWorkflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

func (w *UploadWorkflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Message returns the current validation or failure message.
func (w *UploadWorkflow) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

func (w *UploadWorkflow) Kind() models.MaterialKind {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.kind
}

// FileName returns the display name of the chosen file, if any.
func (w *UploadWorkflow) FileName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return ""
	}
	return w.file.Name
}

// scheduleClose auto-closes the modal after the configured delay so the
// success indicator stays visible for a moment. Caller holds w.mu.
func (w *UploadWorkflow) scheduleClose(epoch int) {
	w.closeTimer = time.AfterFunc(w.closeDelay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.epoch != epoch || w.state != StateSucceeded {
			return
		}
		w.reset()
	})
}

// reset clears all transient fields. Caller holds w.mu.
func (w *UploadWorkflow) reset() {
	if w.closeTimer != nil {
		w.closeTimer.Stop()
		w.closeTimer = nil
	}
	w.epoch++
	w.state = StateClosed
	w.file = nil
	w.kind = ""
	w.message = ""
}
