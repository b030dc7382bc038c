package workflows

import (
	"errors"
	"time"
)

// State is the lifecycle position of a modal workflow.
type State string

const (
	StateClosed     State = "closed"
	StateOpen       State = "open"
	StateFileChosen State = "file_chosen"
	StateSubmitting State = "submitting"
	StateGenerating State = "generating"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// DefaultCloseDelay keeps the success indicator visible before a workflow
// closes itself.
const DefaultCloseDelay = 1500 * time.Millisecond

var (
	ErrClosed      = errors.New("workflow is closed")
	ErrInFlight    = errors.New("a request is already in flight")
	ErrNoFile      = errors.New("no file selected")
	ErrNoKind      = errors.New("no material kind selected")
	ErrInvalidKind = errors.New("invalid material kind")
)

// File is a user-picked file held in memory until submission.
type File struct {
	Name string
	Data []byte
}
