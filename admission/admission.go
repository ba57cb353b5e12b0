// Package admission implements the payment-gated upload workflow: the ordered
// sequence of checks that must hold between "a buyer paid" and "a file is
// durably stored and counted". The checks run in a fixed order and the first
// failure wins, so error precedence is deterministic.
package admission

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/careerlift/resumeaudit/models"
)

const (
	// PDFContentType is the only accepted declared content type.
	PDFContentType = "application/pdf"
	// MaxFileSize caps uploads at 10 MiB.
	MaxFileSize = 10 * 1024 * 1024
)

// FilePart is the uploaded file portion of a submission attempt. A multipart
// field that was a plain string rather than a file never produces a FilePart.
type FilePart struct {
	Reader      io.Reader
	ContentType string
	Size        int64
}

// Attempt is one request-scoped submission; it is discarded once the
// workflow resolves.
type Attempt struct {
	SessionID string
	Email     string
	File      *FilePart
}

// Result echoes back what was admitted and where it was stored.
type Result struct {
	StorageKey string
	Email      string
	SessionID  string
}

// PaymentVerifier reads a payment session's status from the provider.
type PaymentVerifier interface {
	VerifySession(ctx context.Context, sessionID string) (bool, error)
}

// ObjectStore persists file bytes under a key with no-replace semantics.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
}

// SubmissionCounter performs the atomic post-upload increment and the
// best-effort bookkeeping insert.
type SubmissionCounter interface {
	Increment(ctx context.Context) error
	RecordSubmission(ctx context.Context, sub *models.Submission) error
}

// Workflow wires the admission checks to their collaborators. A nil Verifier
// or Store means the corresponding provider credentials are not configured;
// the workflow reports that as a configuration error at the step where the
// collaborator is first needed, never earlier.
type Workflow struct {
	Verifier PaymentVerifier
	Store    ObjectStore
	Counter  SubmissionCounter

	// Now is the clock used for storage keys; defaults to time.Now.
	Now func() time.Time
	// Log receives best-effort failure detail; defaults to a nop logger.
	Log *zap.SugaredLogger
}

func (w *Workflow) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *Workflow) log() *zap.SugaredLogger {
	if w.Log != nil {
		return w.Log
	}
	return zap.NewNop().Sugar()
}

// Admit runs the ordered admission checks for one attempt. Payment status and
// storage are always re-validated here, independent of any capacity check that
// happened at checkout time.
func (w *Workflow) Admit(ctx context.Context, att Attempt) (*Result, error) {
	if att.SessionID == "" {
		return nil, ErrMissingSession
	}
	if att.Email == "" {
		return nil, ErrMissingEmail
	}
	if att.File == nil {
		return nil, ErrMissingFile
	}
	if att.File.ContentType != PDFContentType {
		return nil, ErrUnsupportedFileType
	}
	if att.File.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	if w.Verifier == nil {
		return nil, fmt.Errorf("%w: payment provider credentials missing", ErrConfiguration)
	}
	paid, err := w.Verifier.VerifySession(ctx, att.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentLookupFailed, err)
	}
	if !paid {
		return nil, ErrPaymentNotVerified
	}

	if w.Store == nil {
		return nil, fmt.Errorf("%w: storage credentials missing", ErrConfiguration)
	}

	key := BuildStorageKey(att.Email, att.SessionID, w.now())
	if err := w.Store.Put(ctx, key, att.File.Reader, PDFContentType, att.File.Size); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}

	// The file is durably stored from here on; counting failures must not
	// turn the request into an error.
	if w.Counter != nil {
		if err := w.Counter.Increment(ctx); err != nil {
			w.log().Warnf("submission counter increment failed after upload key=%s: %v", key, err)
		}
		if err := w.Counter.RecordSubmission(ctx, &models.Submission{
			Email:      att.Email,
			SessionID:  att.SessionID,
			StorageKey: key,
			SizeBytes:  att.File.Size,
		}); err != nil {
			w.log().Warnf("submission record insert failed key=%s: %v", key, err)
		}
	}

	return &Result{StorageKey: key, Email: att.Email, SessionID: att.SessionID}, nil
}
