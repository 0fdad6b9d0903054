package gpu

// ClearValue is the fast-clear value attached to a texture on creation.
type ClearValue struct {
	Color    [4]float32
	Depth    float32
	Stencil  uint8
	HasColor bool
	HasDepth bool
}

// BufferDesc is the Device.CreateBuffer argument.
type BufferDesc struct {
	Name                 string
	SizeBytes            uint64
	AllowUnorderedAccess bool
}

// TextureDesc is the Device.CreateTexture argument. Width/Height/DepthOrArray
// and MipLevels are already translated from the render graph's TextureType
// per §4.2 by the time they reach this layer — Device never sees TextureType.
type TextureDesc struct {
	Name                 string
	Format               string
	Width                uint32
	Height               uint32
	DepthOrArraySize     uint32
	MipLevels            uint32
	Clear                ClearValue
	AllowRenderTarget    bool
	AllowDepthStencil    bool
	AllowUnorderedAccess bool
}

// ViewDesc is the Device.Create*View argument. Optional subresource fields
// use math.MaxUint32 as "unset / use device default", already resolved from
// the render graph's sentinel convention.
type ViewDesc struct {
	Kind ViewKind

	Raw           bool
	FirstElement  uint32
	NumElements   uint32
	CounterOffset uint32

	SRGB            bool
	MostDetailedMip uint32
	MipLevels       uint32
	ArraySlice      uint32
	MipSlice        uint32
}

// ViewKind mirrors the render graph's view-kind tag at the device boundary.
type ViewKind uint8

const (
	ViewRtv ViewKind = iota
	ViewDsv
	ViewBufferSrv
	ViewBufferUav
	ViewTextureSrv
	ViewTextureUav
)

// RenderTargetAttachment is one color attachment of a RenderTargetDesc.
type RenderTargetAttachment struct {
	View View
	SRGB bool
}

// RenderTargetDesc is the BeginRenderPass argument.
type RenderTargetDesc struct {
	RenderTargets []RenderTargetAttachment
	DepthStencil  View // nil if none
}

// RaytracingDispatchDesc is the DispatchRays argument: a DXR-style
// width/height/depth ray-grid dimension plus the shader table offsets
// baked into the RaytracingPipelineState at creation time.
type RaytracingDispatchDesc struct {
	Width  uint32
	Height uint32
	Depth  uint32
}
