package gpu

import "errors"

var (
	// ErrDeviceLost is returned by any Device or CommandContext method once
	// the underlying device has been lost (driver crash, GPU reset, TDR).
	// Per spec §7 this is not recoverable: the client must drop the Device
	// and every object it produced and recreate them from scratch.
	ErrDeviceLost = errors.New("gpu: device lost")

	// ErrResourceCreationFailed wraps a backend-specific allocation failure
	// (typically out-of-memory) surfaced during Registry realization.
	ErrResourceCreationFailed = errors.New("gpu: resource creation failed")

	// ErrShaderCompileFailed is surfaced when CreatePipelineState or
	// CreateRaytracingPipelineState rejects its input stream.
	ErrShaderCompileFailed = errors.New("gpu: shader compile failed")

	// ErrContextNotOpen is returned by any recording method called on a
	// CommandContext that has not had Open called (or has since been
	// Closed without a following Open).
	ErrContextNotOpen = errors.New("gpu: command context not open")
)
