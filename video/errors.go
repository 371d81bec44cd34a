package video

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoderNotFound means the ffmpeg binary could not be resolved
	// on PATH. It is reported when generation is attempted, not at
	// startup.
	ErrEncoderNotFound = errors.New("video encoder (ffmpeg) not found on PATH")

	// ErrCancelled is the job error after a user-initiated cancel. It
	// is an expected outcome, not a failure.
	ErrCancelled = errors.New("video generation cancelled")
)

// EncodeError carries the encoder's diagnostic output after a failed
// run.
type EncodeError struct {
	Err    error  // process exit or pipe error
	Stderr string // captured encoder diagnostics
}

func (e *EncodeError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("encoder failed: %v", e.Err)
	}
	return fmt.Sprintf("encoder failed: %v: %s", e.Err, e.Stderr)
}

func (e *EncodeError) Unwrap() error { return e.Err }
