package rendergraph

// TextureType selects the dimensionality translation realize_resources
// applies when constructing the physical GPU texture.
type TextureType uint8

const (
	TextureType2D TextureType = iota
	TextureType2DArray
	TextureType3D
	TextureTypeCube
)

// ClearValue is the optional fast-clear value recorded on a texture
// descriptor. Exactly one of the two forms is meaningful, chosen by whichever
// of AllowDepthStencil / AllowRenderTarget is set on the owning TextureDesc
// (depth-stencil takes priority per §4.2).
type ClearValue struct {
	Format       string
	Color        [4]float32
	Depth        float32
	Stencil      uint8
	HasColor     bool
	HasDepth     bool
}

// BufferDesc describes a buffer resource. Two BufferDesc values compare equal
// (via ==) iff they would produce an identical physical buffer.
type BufferDesc struct {
	Name                 string
	SizeBytes            uint64
	AllowUnorderedAccess bool
}

// TextureDesc describes a texture resource.
type TextureDesc struct {
	Name                 string
	Format               string
	Type                 TextureType
	Width                uint32
	Height               uint32
	DepthOrArraySize     uint32
	MipLevels            uint32
	ClearValue           ClearValue
	AllowRenderTarget    bool
	AllowDepthStencil    bool
	AllowUnorderedAccess bool
}

// dims returns the (width, height, depth, mips) the registry passes to
// Device.CreateTexture, translating Type per §4.2's per-dimension rules.
func (d TextureDesc) dims() (w, h, depthOrArray, mips uint32) {
	switch d.Type {
	case TextureType2D:
		return d.Width, d.Height, 1, d.MipLevels
	case TextureType2DArray:
		return d.Width, d.Height, d.DepthOrArraySize, d.MipLevels
	case TextureType3D:
		return d.Width, d.Height, d.DepthOrArraySize, d.MipLevels
	case TextureTypeCube:
		return d.Width, d.Height, 6, d.MipLevels
	default:
		return d.Width, d.Height, 1, d.MipLevels
	}
}

// resolvedClear returns the clear value realize_resources should pass to
// Device.CreateTexture: depth-stencil if AllowDepthStencil, else
// render-target if AllowRenderTarget, else the zero ClearValue.
func (d TextureDesc) resolvedClear() ClearValue {
	switch {
	case d.AllowDepthStencil:
		cv := d.ClearValue
		cv.HasColor = false
		cv.HasDepth = true
		return cv
	case d.AllowRenderTarget:
		cv := d.ClearValue
		cv.HasDepth = false
		cv.HasColor = true
		return cv
	default:
		return ClearValue{}
	}
}

// ViewKind selects which variant-specific fields of ViewDesc are meaningful.
type ViewKind uint8

const (
	ViewRtv ViewKind = iota
	ViewDsv
	ViewBufferSrv
	ViewBufferUav
	ViewTextureSrv
	ViewTextureUav
)

// sentinelU32 marks a variant field as "use the API default" per §4.2.
const sentinelU32 uint32 = 0xFFFFFFFF

// ViewDesc describes a view over a Buffer or Texture resource. Optional
// subresource-selection fields default to sentinelU32 ("unset"); the
// registry maps an unset field to the device's own default when
// constructing the physical view.
type ViewDesc struct {
	Resource ResourceHandle
	Kind     ViewKind

	// Buffer view fields (ViewBufferSrv / ViewBufferUav).
	Raw           bool
	FirstElement  uint32
	NumElements   uint32
	CounterOffset uint32

	// Texture view fields (all kinds).
	SRGB           bool
	MostDetailedMip uint32
	MipLevels       uint32
	ArraySlice      uint32
	MipSlice        uint32
}

// NewViewDesc returns a ViewDesc with every optional field defaulted to
// "use API default" (sentinelU32), ready for the caller to override the
// fields relevant to Kind.
func NewViewDesc(resource ResourceHandle, kind ViewKind) ViewDesc {
	return ViewDesc{
		Resource:        resource,
		Kind:            kind,
		FirstElement:    0,
		NumElements:     sentinelU32,
		CounterOffset:   sentinelU32,
		MostDetailedMip: sentinelU32,
		MipLevels:       sentinelU32,
		ArraySlice:      sentinelU32,
		MipSlice:        sentinelU32,
	}
}

// RenderTargetAttachment is one color attachment of a RenderTargetDesc.
type RenderTargetAttachment struct {
	View ResourceHandle
	SRGB bool
}

// MaxRenderTargets is the maximum number of simultaneous color attachments,
// matching the D3D12-class reference target's MRT limit.
const MaxRenderTargets = 8

// RenderTargetDesc bundles the attachments a pass renders into. Per the
// resolved Open Question (a) in DESIGN.md, this unifies on the view-handle
// form: every attachment, including depth-stencil, is named by a
// ResourceHandle of kind RenderTargetView / DepthStencilView rather than by
// an inline resource descriptor.
type RenderTargetDesc struct {
	RenderTargets []RenderTargetAttachment // len <= MaxRenderTargets
	DepthStencil  *ResourceHandle          // nil if none
}
