// Package gpu declares the explicit, D3D12-class graphics API surface the
// render graph consumes: a Device that creates resources and command
// contexts, and a CommandContext that records barriers, render passes,
// and draws/dispatches. Nothing in this package talks to real hardware —
// it is the seam the render graph is built against, grounded on the
// wgpu-core HAL split (one interface per concern) with the method
// vocabulary of a D3D12-style command-list API rather than WebGPU's
// encoder/pass split.
package gpu

// Resource is the base interface for every GPU object the render graph's
// registry owns: buffers, textures, views, root signatures, and pipeline
// states all embed it.
type Resource interface {
	// Destroy releases the GPU object. Calling Destroy more than once, or
	// using the object afterwards, is undefined behavior — same contract
	// as the rest of this package's backing graphics API.
	Destroy()

	// NativeHandle returns the resource's name, as recorded on creation.
	// Used only for debug-layer labeling and log messages.
	NativeHandle() string
}

// Buffer is a linear GPU memory allocation.
type Buffer interface{ Resource }

// Texture is a multi-dimensional GPU image.
type Texture interface{ Resource }

// View is a typed binding over a Buffer or Texture: a render-target view,
// depth-stencil view, shader-resource view, or unordered-access view.
type View interface{ Resource }

// RootSignature describes the shader-visible binding layout for a pipeline.
type RootSignature interface{ Resource }

// PipelineState is a fully-configured graphics or compute pipeline.
type PipelineState interface{ Resource }

// RaytracingPipelineState is a DXR-style raytracing pipeline and its
// shader tables.
type RaytracingPipelineState interface{ Resource }
