package video

import "sync/atomic"

// State is a job's lifecycle phase.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Job is one in-flight video generation. The compositor goroutine is
// the only writer of frame and state; the UI thread reads them through
// atomics, so no locking is needed anywhere.
type Job struct {
	OutPath string

	total  int
	frame  atomic.Int64
	state  atomic.Int32
	cancel atomic.Bool
	done   chan struct{}
	err    error // written once by finish, read after done closes
}

func newJob(outPath string, total int) *Job {
	j := &Job{OutPath: outPath, total: total, done: make(chan struct{})}
	j.state.Store(int32(StateRunning))
	return j
}

// Total returns the number of frames the job will produce.
func (j *Job) Total() int { return j.total }

// Frame returns how many frames have been submitted to the encoder.
func (j *Job) Frame() int { return int(j.frame.Load()) }

// State returns the job's current lifecycle phase.
func (j *Job) State() State { return State(j.state.Load()) }

// Cancel requests cooperative cancellation. The running job observes
// the flag between frames and discards its partial output.
func (j *Job) Cancel() { j.cancel.Store(true) }

func (j *Job) cancelRequested() bool { return j.cancel.Load() }

// Done closes when the job reaches a terminal state.
func (j *Job) Done() <-chan struct{} { return j.done }

// Err returns the terminal error: nil on completion, ErrCancelled
// after a cancel, an *EncodeError on failure. Valid after Done closes.
func (j *Job) Err() error { return j.err }

func (j *Job) finish(s State, err error) {
	j.err = err
	j.state.Store(int32(s))
	close(j.done)
}
