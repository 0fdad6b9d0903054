package gpu

import "context"

// Device is the render graph's view of the graphics device: the factory for
// every resource kind the registry realizes, and for the three command
// contexts (copy, async compute, graphics) pass closures record into.
type Device interface {
	Waiter

	CreateBuffer(desc BufferDesc) (Buffer, error)
	CreateTexture(desc TextureDesc, clear *ClearValue) (Texture, error)
	CreateView(resource Resource, desc ViewDesc) (View, error)

	CreateRootSignature(desc RootSignatureDesc) (RootSignature, error)
	CreatePipelineState(stream PipelineStateStream) (PipelineState, error)
	CreateRaytracingPipelineState(desc RaytracingPipelineDesc) (RaytracingPipelineState, error)

	// GetCopyContext, GetAsyncComputeContext, and GetGraphicsContext return
	// the CommandContext bound to the device's copy, async-compute, and
	// graphics queue respectively. Each call for a given queue within the
	// same frame returns the same context instance.
	GetCopyContext() (CommandContext, error)
	GetAsyncComputeContext() (CommandContext, error)
	GetGraphicsContext() (CommandContext, error)

	// WaitIdle blocks until every queue owned by the device has finished
	// all submitted work. Intended for shutdown and device-loss recovery,
	// never called once per frame.
	WaitIdle(ctx context.Context) error
}

// RootSignatureDesc is the Device.CreateRootSignature argument. Its layout
// is entirely shader-defined (bindless descriptor table ranges, root
// constants); the render graph treats it as an opaque blob it does not
// interpret.
type RootSignatureDesc struct {
	Name string
	Blob []byte
}

// PipelineStateStream is the Device.CreatePipelineState argument — an
// opaque, backend-defined stream of subobjects (shader bytecode, blend/
// raster/depth-stencil state, input layout). The render graph never
// constructs or inspects one; it only stores the resulting PipelineState by
// handle.
type PipelineStateStream struct {
	Name string
	Blob []byte
}

// RaytracingPipelineDesc is the Device.CreateRaytracingPipelineState
// argument — a DXR-style state-object description (shader tables, hit
// groups, max recursion depth), again opaque to the render graph.
type RaytracingPipelineDesc struct {
	Name string
	Blob []byte
}
