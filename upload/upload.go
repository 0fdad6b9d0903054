// Package upload runs asset staging uploads (vertex/index/texture data
// copied from host memory into graph-owned GPU resources) off the frame's
// critical path, using a reusable worker pool instead of one goroutine per
// request so steady-state streaming doesn't pay spawn overhead every frame.
// The pattern — a bounded worker.DynamicWorkerPool paired with a local
// sync.WaitGroup for barrier sync, since the pool's own Wait blocks until
// workers idle-exit rather than until a batch drains — is the same one the
// reference engine's animator pipeline uses for per-frame CPU prep. Unlike
// that pipeline, a Flush here submits through a copy-queue CommandContext
// and hands the caller back the resulting gpu.SyncHandle, so the render
// thread can fence a later queue's work on this batch's completion instead
// of blocking on it directly.
package upload

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/ardenengine/rendergraph/gpu"
)

// Request describes one staged copy: Data is copied into Dst starting at
// Offset. Dst must already be realized (created by a prior frame's Graph,
// or this frame's before the Uploader's caller calls Flush).
type Request struct {
	Dst    gpu.Buffer
	Offset uint64
	Data   []byte
}

// CopyContext is the copy-queue command context an Uploader submits staged
// writes through. Flush uses its Open/Close/Execute lifecycle — the same
// one every gpu.CommandContext follows — to turn a batch of host-to-device
// copies into the single gpu.SyncHandle the render thread waits on before
// touching what was uploaded. Production callers pass the device's copy
// queue context (Device.GetCopyContext); gpu/gputest's CommandContext
// satisfies this for tests.
type CopyContext interface {
	CopyBufferData(dst gpu.Buffer, offset uint64, data []byte) error
	Open() error
	Close() error
	Execute(wait bool) (gpu.SyncHandle, error)
}

// Uploader batches Requests across a frame and flushes them across a
// bounded pool of reusable workers before submitting the batch as a single
// copy-queue command list. It is safe to call Submit concurrently, but
// Flush must not overlap with Submit calls for the same frame.
type Uploader struct {
	copy CopyContext
	pool worker.DynamicWorkerPool

	mu       sync.Mutex
	pending  []Request
	nextTask int
}

// NewUploader returns an Uploader backed by a pool of reusable worker
// goroutines, each request queue-bounded to queueSize pending tasks with a
// timeout per task submission.
func NewUploader(copy CopyContext, workers, queueSize int, timeout time.Duration) *Uploader {
	return &Uploader{
		copy: copy,
		pool: worker.NewDynamicWorkerPool(workers, queueSize, timeout),
	}
}

// Submit enqueues req for the next Flush. It does not block on the copy.
func (u *Uploader) Submit(req Request) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = append(u.pending, req)
}

// Flush dispatches every pending request to the worker pool, blocks until
// all of them complete, then submits the copy context as one command list
// and returns the gpu.SyncHandle signaling its completion. Workers are
// reused across calls to Flush, so steady-state streaming never pays
// goroutine-spawn cost. With nothing pending, Flush is a no-op and returns
// the zero SyncHandle.
func (u *Uploader) Flush() (gpu.SyncHandle, error) {
	u.mu.Lock()
	reqs := u.pending
	u.pending = nil
	u.mu.Unlock()

	if len(reqs) == 0 {
		return gpu.SyncHandle{}, nil
	}

	if err := u.copy.Open(); err != nil {
		return gpu.SyncHandle{}, fmt.Errorf("upload: opening copy context: %w", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(reqs))
	for i, req := range reqs {
		wg.Add(1)
		i, req := i, req
		u.mu.Lock()
		taskID := u.nextTask
		u.nextTask++
		u.mu.Unlock()
		u.pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				if err := u.copy.CopyBufferData(req.Dst, req.Offset, req.Data); err != nil {
					errs[i] = fmt.Errorf("upload: request %d: %w", i, err)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return gpu.SyncHandle{}, err
		}
	}

	if err := u.copy.Close(); err != nil {
		return gpu.SyncHandle{}, fmt.Errorf("upload: closing copy context: %w", err)
	}
	handle, err := u.copy.Execute(false)
	if err != nil {
		return gpu.SyncHandle{}, fmt.Errorf("upload: submitting copy context: %w", err)
	}
	return handle, nil
}
