package gpu

import (
	"context"
	"errors"
)

// ErrSyncTimeout is returned by Waiter.Wait when ctx is done before the
// handle signals.
var ErrSyncTimeout = errors.New("gpu: sync handle wait timed out")

// SyncHandle is an opaque value representing a submitted command context's
// completion event. It is returned by CommandContext.Execute, mirroring the
// fence-value handshake in a typical queue Submit — except here the value
// crosses thread boundaries as plain data instead of staying behind one
// Queue's internal fence. Its only consumer in this package is Waiter.Wait,
// which blocks the calling thread; no CommandContext method accepts a
// SyncHandle, so there is no queue-side wait.
type SyncHandle struct {
	queue uint32
	value uint64
}

// NewSyncHandle constructs a SyncHandle from a queue identifier and a
// monotonic completion value. Called only by Device/CommandContext
// implementations, never by render-graph code directly.
func NewSyncHandle(queue uint32, value uint64) SyncHandle {
	return SyncHandle{queue: queue, value: value}
}

// IsZero reports whether the handle is the zero value (nothing submitted).
func (h SyncHandle) IsZero() bool { return h.queue == 0 && h.value == 0 }

// Queue returns the identifier of the queue this handle was submitted on.
func (h SyncHandle) Queue() uint32 { return h.queue }

// Value returns the raw completion value, for diagnostics and logging only.
func (h SyncHandle) Value() uint64 { return h.value }

// Waiter is implemented by a Device (or anything that owns queue fences) to
// block until a SyncHandle signals.
type Waiter interface {
	// Wait blocks until h signals or ctx is done, whichever comes first.
	// Passing a context.Background() gives "wait forever" semantics; per
	// §5 there is no graph-level cancellation beyond what the caller's
	// context expresses.
	Wait(ctx context.Context, h SyncHandle) error
}
