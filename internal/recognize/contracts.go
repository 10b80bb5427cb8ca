package recognize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carelog/receipt-extract/constants"
)

// Document is the immutable input to one recognition attempt: raw bytes plus
// the format declared by the upload layer.
type Document struct {
	Data   []byte
	Format constants.Format
	Name   string // optional, for logging only
}

// Output is the raw text one backend produced for one document. The native
// confidence, when present, is the backend's own scale and must not be
// compared across backends.
type Output struct {
	Text             string
	BackendID        string
	NativeConfidence *float32
	Pages            int
	Duration         time.Duration
	Warnings         []string
}

// Backend wraps one recognition technology: document in, raw text out.
// Implementations hold no state across calls; any pre-processing (PDF
// rasterization, contrast/scale fixes) is private to the backend.
type Backend interface {
	ID() string
	Recognize(ctx context.Context, doc Document) (Output, error)
}

// ErrUnavailable signals that the backend's runtime dependency is not
// installed or configured in this deployment. The engine skips such
// backends silently.
var ErrUnavailable = errors.New("recognition backend unavailable")

// RecognitionError means the backend attempted recognition and failed
// (corrupt document, timeout, quota). Recoverable by trying the next backend.
type RecognitionError struct {
	BackendID string
	Err       error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("%s: recognition failed: %v", e.BackendID, e.Err)
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}
