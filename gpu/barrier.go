package gpu

// ResourceState is a D3D12-style resource-state bitmask: the state a
// resource must be in before a pass touches it. Multiple bits may be set
// simultaneously (e.g. RenderTarget|UnorderedAccess).
type ResourceState uint32

const (
	StateCommon                 ResourceState = 0
	StatePixelShaderResource    ResourceState = 1 << 0
	StateNonPixelShaderResource ResourceState = 1 << 1
	StateRenderTarget           ResourceState = 1 << 2
	StateDepthWrite             ResourceState = 1 << 3
	StateUnorderedAccess        ResourceState = 1 << 4
	StateCopySource             ResourceState = 1 << 5
	StateCopyDest               ResourceState = 1 << 6
	StatePresent                ResourceState = 1 << 7
)

// Contains reports whether every bit in other is set in s.
func (s ResourceState) Contains(other ResourceState) bool {
	return s&other == other
}
