package rendergraph

import "fmt"

// ResourceKind tags the variant a ResourceHandle refers to. It is a closed
// set deliberately kept flat (one byte, one switch) rather than modeled with
// an interface hierarchy: handles are POD values copied by the pass builder
// on every Read/Write, and dispatching on kind is cheaper and simpler than
// any form of virtual call.
type ResourceKind uint8

const (
	KindUnknown ResourceKind = iota
	KindBuffer
	KindTexture
	KindRenderTargetView
	KindDepthStencilView
	KindShaderResourceView
	KindUnorderedAccessView
	KindRootSignature
	KindPipelineState
	KindRaytracingPipelineState
)

func (k ResourceKind) String() string {
	switch k {
	case KindBuffer:
		return "Buffer"
	case KindTexture:
		return "Texture"
	case KindRenderTargetView:
		return "RenderTargetView"
	case KindDepthStencilView:
		return "DepthStencilView"
	case KindShaderResourceView:
		return "ShaderResourceView"
	case KindUnorderedAccessView:
		return "UnorderedAccessView"
	case KindRootSignature:
		return "RootSignature"
	case KindPipelineState:
		return "PipelineState"
	case KindRaytracingPipelineState:
		return "RaytracingPipelineState"
	default:
		return "Unknown"
	}
}

// HandleFlags carries out-of-band bits about a resource handle.
type HandleFlags uint8

const (
	// FlagImported marks a resource as externally owned (e.g. a swapchain
	// back buffer). Imported resources are never allocated or freed by the
	// registry; only their handle is tracked for scheduling.
	FlagImported HandleFlags = 1 << 0
)

// invalidID is the sentinel id value of an invalid handle: all 32 id bits set.
const invalidID uint32 = 0xFFFFFFFF

// ResourceHandle is a stable, copyable value naming a logical resource (or a
// view over one) at a particular write version. It packs into 64 bits:
//
//	bits 56-63: kind   (ResourceKind)
//	bits 48-55: flags  (HandleFlags)
//	bits 32-47: version (monotonic write counter)
//	bits  0-31: id     (dense index into the registry's per-kind vector)
//
// Two handles compare equal (==) iff they refer to the same logical resource
// at the same version — ResourceHandle is a plain uint64 under the hood so
// equality, ordering and map keys all fall out of the built-in operators.
type ResourceHandle uint64

// InvalidHandle is the zero-ish sentinel: kind Unknown, id all-ones.
var InvalidHandle = newHandle(KindUnknown, 0, 0, invalidID)

func newHandle(kind ResourceKind, flags HandleFlags, version uint16, id uint32) ResourceHandle {
	return ResourceHandle(uint64(kind)<<56 | uint64(flags)<<48 | uint64(version)<<32 | uint64(id))
}

// Kind returns the handle's resource kind.
func (h ResourceHandle) Kind() ResourceKind {
	return ResourceKind(h >> 56)
}

// Flags returns the handle's out-of-band flags.
func (h ResourceHandle) Flags() HandleFlags {
	return HandleFlags(h >> 48)
}

// Imported reports whether FlagImported is set.
func (h ResourceHandle) Imported() bool {
	return h.Flags()&FlagImported != 0
}

// Version returns the handle's write-version counter.
func (h ResourceHandle) Version() uint16 {
	return uint16(h >> 32)
}

// ID returns the dense per-kind registry index.
func (h ResourceHandle) ID() uint32 {
	return uint32(h)
}

// IsValid reports whether the handle has a known kind and a non-sentinel id.
// A zero-value ResourceHandle (kind Unknown, id 0) is NOT the sentinel but
// is invalid too; callers should only ever see handles produced by
// Graph.CreateTexture/CreateBuffer/CreateView, Graph.Import or the
// Registry's Create* methods.
func (h ResourceHandle) IsValid() bool {
	return h.Kind() != KindUnknown && h.ID() != invalidID
}

// withVersion returns a copy of h with its version replaced. Used by
// RenderPass.Write to record the post-increment handle without mutating the
// original id/kind/flags bits.
func (h ResourceHandle) withVersion(v uint16) ResourceHandle {
	return newHandle(h.Kind(), h.Flags(), v, h.ID())
}

// next returns h with its version incremented by one, as performed by every
// RenderPass.Write call.
func (h ResourceHandle) next() ResourceHandle {
	return h.withVersion(h.Version() + 1)
}

func (h ResourceHandle) String() string {
	if !h.IsValid() {
		return "ResourceHandle(invalid)"
	}
	flags := ""
	if h.Imported() {
		flags = ",imported"
	}
	return fmt.Sprintf("ResourceHandle(%s,id=%d,v=%d%s)", h.Kind(), h.ID(), h.Version(), flags)
}

// isReadWriteKind reports whether a handle of this kind is legal as a
// RenderPass.Read/Write argument. Per spec only Buffer and Texture resources
// flow through the dependency analysis; views and pipeline objects are
// bound directly by a pass's Execute closure via the Registry.
func (k ResourceKind) isReadWriteKind() bool {
	return k == KindBuffer || k == KindTexture
}
