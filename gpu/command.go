package gpu

// CommandContext is the render graph's view of a command list / encoder: it
// owns barrier emission and render-pass scoping, and is handed to each
// RenderPass's Execute closure by the graph executor.
//
// Usage follows a D3D12-style command-list lifecycle:
//
//  1. call Open to begin recording
//  2. the executor emits TransitionBarrier calls for the level, then
//     FlushResourceBarriers once
//  3. each pass in the level runs, calling SetPipelineState / SetGraphics
//     RootSignature / SetComputeRootSignature / BeginRenderPass /
//     Dispatch2D / DispatchRays / EndRenderPass / UAVBarrier as needed
//  4. call Close to end recording
//  5. call Execute to submit; Execute(wait=false) returns immediately with
//     a SyncHandle the caller can later block on through a Waiter,
//     Execute(wait=true) blocks until the GPU has finished the submitted
//     work
//
// A CommandContext must not be reused to record a second frame after Execute
// without the owning Device resetting it first.
type CommandContext interface {
	// Open prepares the context for recording. Must be called before any
	// other method except Execute/Close from a prior recording.
	Open() error

	// Close ends recording and prepares the context for Execute.
	Close() error

	// Execute submits the recorded commands. If wait is true, Execute
	// blocks until the GPU has finished executing them; otherwise it
	// returns immediately with a SyncHandle the caller can wait on later
	// through a Waiter. No method of this interface takes a SyncHandle, so
	// one queue cannot be made to wait on another's handle here.
	Execute(wait bool) (SyncHandle, error)

	// TransitionBarrier requests that resource be in state before any
	// subsequent command in this context touches it. Barriers are not
	// guaranteed to take effect until FlushResourceBarriers is called.
	TransitionBarrier(resource Resource, state ResourceState)

	// FlushResourceBarriers submits every pending TransitionBarrier/
	// UAVBarrier call as one batch.
	FlushResourceBarriers()

	// UAVBarrier inserts an unordered-access barrier. A nil resource
	// requests a global UAV barrier across every UAV-capable resource
	// currently bound; a non-nil resource scopes it to that resource only
	// (used for ping-pong access within a single pass, per §4.5).
	UAVBarrier(resource Resource)

	// BeginRenderPass binds the render/depth-stencil targets named by desc.
	// Must be paired with EndRenderPass before the context is closed or
	// another BeginRenderPass is issued.
	BeginRenderPass(desc *RenderTargetDesc) error

	// EndRenderPass ends the current render pass.
	EndRenderPass()

	// SetPipelineState binds a graphics or compute PSO for subsequent draws
	// or dispatches.
	SetPipelineState(pso PipelineState)

	// SetGraphicsRootSignature binds the root signature subsequent draw
	// calls' root arguments are interpreted against.
	SetGraphicsRootSignature(rs RootSignature)

	// SetComputeRootSignature binds the root signature subsequent dispatch
	// calls' root arguments are interpreted against.
	SetComputeRootSignature(rs RootSignature)

	// DispatchRays issues a DXR-style raytracing dispatch against the
	// currently bound RaytracingPipelineState.
	DispatchRays(desc *RaytracingDispatchDesc) error

	// Dispatch2D issues a compute dispatch of groupsW x groupsH x 1 thread
	// groups against the currently bound compute PipelineState.
	Dispatch2D(groupsW, groupsH uint32) error
}
