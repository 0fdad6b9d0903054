package rendergraph

import (
	"fmt"

	"github.com/ardenengine/rendergraph/gpu"
	internalregistry "github.com/ardenengine/rendergraph/internal/registry"
)

// Registry maps ResourceHandles to realized GPU resources and views, and
// persists across frames so that unchanged descriptors produce zero churn
// (§4.2, §8 property 5). It is owned by the embedding application, not by
// any one Graph: a new Graph is built every frame and calls into the same
// Registry, which is what lets "the Nth texture created this frame" reuse
// "the Nth texture created last frame"'s physical object when the client's
// pass-building code is deterministic (§8 property 2).
//
// Transient kinds (Buffer, Texture, the four view kinds) are addressed by a
// per-frame ordinal: beginFrame (called by New) resets the per-kind counter
// to zero, and the Nth Create call of a kind this frame lands on the same
// slot the Nth call landed on last frame. Permanent kinds (RootSignature, PipelineState,
// RaytracingPipelineState) use a generation-checked internal/registry.Registry
// instead, since they are created once (often outside any particular frame)
// and referenced by handle for the registry's entire lifetime.
type Registry struct {
	device gpu.Device

	nextTextureID uint32
	nextBufferID  uint32
	nextViewID    uint32

	textureDescs []TextureDesc
	textures     []gpu.Texture
	importedTex  map[uint32]gpu.Texture

	bufferDescs []BufferDesc
	buffers     []gpu.Buffer

	viewDescs []ViewDesc
	views     []gpu.View
	viewSet   []bool // whether viewDescs[i]/views[i] have ever been populated

	// prior{Texture,Buffer,View}Descs cache the descriptor realize last saw
	// for each slot, keyed by the same per-frame ordinal as the *Descs
	// slices above. They live here, not on Graph, because a Graph is
	// rebuilt from scratch every frame while this cache must survive across
	// frames for descriptor-diffing to ever see a "no change" hit.
	priorTextureDescs map[int]*TextureDesc
	priorBufferDescs  map[int]*BufferDesc
	priorViewDescs    map[int]*ViewDesc

	rootSignatures *internalregistry.Registry[gpu.RootSignature]
	pipelines      *internalregistry.Registry[gpu.PipelineState]
	rtPipelines    *internalregistry.Registry[gpu.RaytracingPipelineState]
}

// NewRegistry returns a Registry bound to device. Construct exactly one per
// application graphics device and reuse it across every frame's Graph.
func NewRegistry(device gpu.Device) *Registry {
	return &Registry{
		device:            device,
		importedTex:       make(map[uint32]gpu.Texture),
		priorTextureDescs: make(map[int]*TextureDesc),
		priorBufferDescs:  make(map[int]*BufferDesc),
		priorViewDescs:    make(map[int]*ViewDesc),
		rootSignatures:    internalregistry.New[gpu.RootSignature](),
		pipelines:         internalregistry.New[gpu.PipelineState](),
		rtPipelines:       internalregistry.New[gpu.RaytracingPipelineState](),
	}
}

// allowRenderTarget reports whether h (a Texture handle) was declared with
// AllowRenderTarget, used by dependencyLevel.execute to decide write-state
// bits. Non-texture handles and out-of-range ids report false.
func (r *Registry) allowRenderTarget(h ResourceHandle) bool {
	if h.Kind() != KindTexture || int(h.ID()) >= len(r.textureDescs) {
		return false
	}
	return r.textureDescs[h.ID()].AllowRenderTarget
}

// allowDepthStencil is allowRenderTarget's analogue for AllowDepthStencil.
func (r *Registry) allowDepthStencil(h ResourceHandle) bool {
	if h.Kind() != KindTexture || int(h.ID()) >= len(r.textureDescs) {
		return false
	}
	return r.textureDescs[h.ID()].AllowDepthStencil
}

// allowUnorderedAccess reports whether h was declared with
// AllowUnorderedAccess, checking both textures and buffers since both kinds
// may back a UAV.
func (r *Registry) allowUnorderedAccess(h ResourceHandle) bool {
	switch h.Kind() {
	case KindTexture:
		if int(h.ID()) >= len(r.textureDescs) {
			return false
		}
		return r.textureDescs[h.ID()].AllowUnorderedAccess
	case KindBuffer:
		if int(h.ID()) >= len(r.bufferDescs) {
			return false
		}
		return r.bufferDescs[h.ID()].AllowUnorderedAccess
	default:
		return false
	}
}

// beginFrame resets the transient per-kind ordinal counters and forgets the
// previous Graph's imported textures. Called once by New when a fresh Graph
// starts being built.
func (r *Registry) beginFrame() {
	r.nextTextureID = 0
	r.nextBufferID = 0
	r.nextViewID = 0
	clear(r.importedTex)
}

// createTexture allocates (or reuses) the ordinal slot for this frame's Nth
// texture and records its descriptor for later realization; it does not
// touch the GPU. Returns a fresh, version-0 handle.
func (r *Registry) createTexture(desc TextureDesc) ResourceHandle {
	id := r.nextTextureID
	r.nextTextureID++
	for uint32(len(r.textureDescs)) <= id {
		r.textureDescs = append(r.textureDescs, TextureDesc{})
		r.textures = append(r.textures, nil)
	}
	r.textureDescs[id] = desc
	return newHandle(KindTexture, 0, 0, id)
}

// createBuffer is createTexture's analogue for buffers.
func (r *Registry) createBuffer(desc BufferDesc) ResourceHandle {
	id := r.nextBufferID
	r.nextBufferID++
	for uint32(len(r.bufferDescs)) <= id {
		r.bufferDescs = append(r.bufferDescs, BufferDesc{})
		r.buffers = append(r.buffers, nil)
	}
	r.bufferDescs[id] = desc
	return newHandle(KindBuffer, 0, 0, id)
}

// createView is createTexture's analogue for views; viewKindToResourceKind
// maps the ViewKind to the ResourceHandle kind tag it should carry.
func (r *Registry) createView(desc ViewDesc) ResourceHandle {
	id := r.nextViewID
	r.nextViewID++
	for uint32(len(r.viewDescs)) <= id {
		r.viewDescs = append(r.viewDescs, ViewDesc{})
		r.views = append(r.views, nil)
		r.viewSet = append(r.viewSet, false)
	}
	r.viewDescs[id] = desc
	r.viewSet[id] = true
	return newHandle(viewKindToResourceKind(desc.Kind), 0, 0, id)
}

func viewKindToResourceKind(k ViewKind) ResourceKind {
	switch k {
	case ViewRtv:
		return KindRenderTargetView
	case ViewDsv:
		return KindDepthStencilView
	case ViewBufferSrv, ViewTextureSrv:
		return KindShaderResourceView
	default:
		return KindUnorderedAccessView
	}
}

// importTexture registers an externally-owned texture (e.g. a swapchain
// back buffer) and returns an Imported handle for it. The physical resource
// is never allocated or freed by the registry.
func (r *Registry) importTexture(tex gpu.Texture, desc TextureDesc) ResourceHandle {
	id := r.nextTextureID
	r.nextTextureID++
	for uint32(len(r.textureDescs)) <= id {
		r.textureDescs = append(r.textureDescs, TextureDesc{})
		r.textures = append(r.textures, nil)
	}
	r.textureDescs[id] = desc
	r.importedTex[id] = tex
	return newHandle(KindTexture, FlagImported, 0, id)
}

// CreateRootSignature realizes rs immediately and returns a permanent
// handle. Root signatures are never reset per frame.
func (r *Registry) CreateRootSignature(desc gpu.RootSignatureDesc) (ResourceHandle, error) {
	rs, err := r.device.CreateRootSignature(desc)
	if err != nil {
		return InvalidHandle, fmt.Errorf("rendergraph: CreateRootSignature: %w", err)
	}
	raw := r.rootSignatures.Register(rs)
	return newHandle(KindRootSignature, 0, 0, raw.Index()), nil
}

// CreatePipelineState realizes a PSO immediately and returns a permanent
// handle.
func (r *Registry) CreatePipelineState(stream gpu.PipelineStateStream) (ResourceHandle, error) {
	pso, err := r.device.CreatePipelineState(stream)
	if err != nil {
		return InvalidHandle, fmt.Errorf("rendergraph: CreatePipelineState: %w", err)
	}
	raw := r.pipelines.Register(pso)
	return newHandle(KindPipelineState, 0, 0, raw.Index()), nil
}

// CreateRaytracingPipelineState realizes a DXR-style state object
// immediately and returns a permanent handle.
func (r *Registry) CreateRaytracingPipelineState(desc gpu.RaytracingPipelineDesc) (ResourceHandle, error) {
	pso, err := r.device.CreateRaytracingPipelineState(desc)
	if err != nil {
		return InvalidHandle, fmt.Errorf("rendergraph: CreateRaytracingPipelineState: %w", err)
	}
	raw := r.rtPipelines.Register(pso)
	return newHandle(KindRaytracingPipelineState, 0, 0, raw.Index()), nil
}

// GetTexture resolves h (kind Texture) to its realized gpu.Texture.
func (r *Registry) GetTexture(h ResourceHandle) (gpu.Texture, error) {
	if h.Kind() != KindTexture {
		return nil, newValidationError("", h.String(), "GetTexture requires a Texture handle")
	}
	if h.Imported() {
		tex, ok := r.importedTex[h.ID()]
		if !ok {
			return nil, fmt.Errorf("%w: imported texture id %d", ErrHandleNotFound, h.ID())
		}
		return tex, nil
	}
	if int(h.ID()) >= len(r.textures) || r.textures[h.ID()] == nil {
		return nil, fmt.Errorf("%w: texture id %d not yet realized", ErrHandleNotFound, h.ID())
	}
	return r.textures[h.ID()], nil
}

// GetBuffer resolves h (kind Buffer) to its realized gpu.Buffer. Buffers are
// always graph-owned: the spec's only imported-resource case is the
// swapchain back buffer, which is always a Texture.
func (r *Registry) GetBuffer(h ResourceHandle) (gpu.Buffer, error) {
	if h.Kind() != KindBuffer {
		return nil, newValidationError("", h.String(), "GetBuffer requires a Buffer handle")
	}
	if int(h.ID()) >= len(r.buffers) || r.buffers[h.ID()] == nil {
		return nil, fmt.Errorf("%w: buffer id %d not yet realized", ErrHandleNotFound, h.ID())
	}
	return r.buffers[h.ID()], nil
}

// GetView resolves h (one of the four view kinds) to its realized gpu.View.
func (r *Registry) GetView(h ResourceHandle) (gpu.View, error) {
	switch h.Kind() {
	case KindRenderTargetView, KindDepthStencilView, KindShaderResourceView, KindUnorderedAccessView:
	default:
		return nil, newValidationError("", h.String(), "GetView requires a view handle")
	}
	if int(h.ID()) >= len(r.views) || r.views[h.ID()] == nil {
		return nil, fmt.Errorf("%w: view id %d not yet realized", ErrHandleNotFound, h.ID())
	}
	return r.views[h.ID()], nil
}

// GetRootSignature resolves a permanent RootSignature handle.
func (r *Registry) GetRootSignature(h ResourceHandle) (gpu.RootSignature, error) {
	if h.Kind() != KindRootSignature {
		return nil, newValidationError("", h.String(), "GetRootSignature requires a RootSignature handle")
	}
	rs, err := r.rootSignatures.Get(internalregistry.Zip(h.ID(), 1))
	if err != nil {
		return nil, fmt.Errorf("rendergraph: %w", err)
	}
	return rs, nil
}

// GetPipelineState resolves a permanent PipelineState handle.
func (r *Registry) GetPipelineState(h ResourceHandle) (gpu.PipelineState, error) {
	if h.Kind() != KindPipelineState {
		return nil, newValidationError("", h.String(), "GetPipelineState requires a PipelineState handle")
	}
	pso, err := r.pipelines.Get(internalregistry.Zip(h.ID(), 1))
	if err != nil {
		return nil, fmt.Errorf("rendergraph: %w", err)
	}
	return pso, nil
}

// GetRaytracingPipelineState resolves a permanent RaytracingPipelineState handle.
func (r *Registry) GetRaytracingPipelineState(h ResourceHandle) (gpu.RaytracingPipelineState, error) {
	if h.Kind() != KindRaytracingPipelineState {
		return nil, newValidationError("", h.String(), "GetRaytracingPipelineState requires a RaytracingPipelineState handle")
	}
	pso, err := r.rtPipelines.Get(internalregistry.Zip(h.ID(), 1))
	if err != nil {
		return nil, fmt.Errorf("rendergraph: %w", err)
	}
	return pso, nil
}

// resolve returns the gpu.Resource a barrier should target for h, regardless
// of whether h names a Buffer or a Texture (views are never barrier targets
// — barriers transition the backing resource, per §4.5).
func (r *Registry) resolve(h ResourceHandle) (gpu.Resource, error) {
	switch h.Kind() {
	case KindTexture:
		return r.GetTexture(h)
	case KindBuffer:
		return r.GetBuffer(h)
	default:
		return nil, newValidationError("", h.String(), "resolve requires a Buffer or Texture handle")
	}
}

// realize walks the graph's recorded textures and views in id order and
// either reuses the prior-frame physical object or constructs a new one,
// implementing §4.2's realization rules.
func (r *Registry) realize() error {
	textureDirty := make([]bool, len(r.textureDescs))

	for id := range r.textureDescs {
		//nolint:gosec // id bounded by slice length, always < 2^32 in practice
		h := newHandle(KindTexture, 0, 0, uint32(id))
		if _, imported := r.importedTex[h.ID()]; imported {
			continue
		}
		desc := r.textureDescs[id]
		if desc.Name == "" {
			continue // slot never actually created this frame/lifetime
		}

		prior := r.priorTextureDescs[id]
		if prior != nil && *prior == desc && r.textures[id] != nil {
			continue // unchanged: zero churn, §8 property 5
		}

		if r.textures[id] != nil {
			r.textures[id].Destroy()
		}

		w, h2, depthOrArray, mips := desc.dims()
		clear := desc.resolvedClear()
		tex, err := r.device.CreateTexture(gpu.TextureDesc{
			Name:                 desc.Name,
			Format:               desc.Format,
			Width:                w,
			Height:               h2,
			DepthOrArraySize:     depthOrArray,
			MipLevels:            mips,
			Clear:                gpu.ClearValue{Color: clear.Color, Depth: clear.Depth, Stencil: clear.Stencil, HasColor: clear.HasColor, HasDepth: clear.HasDepth},
			AllowRenderTarget:    desc.AllowRenderTarget,
			AllowDepthStencil:    desc.AllowDepthStencil,
			AllowUnorderedAccess: desc.AllowUnorderedAccess,
		}, nil)
		if err != nil {
			return fmt.Errorf("rendergraph: realizing texture %q: %w", desc.Name, err)
		}
		r.textures[id] = tex
		textureDirty[id] = true

		descCopy := desc
		r.priorTextureDescs[id] = &descCopy
	}

	for id := range r.bufferDescs {
		desc := r.bufferDescs[id]
		if desc.Name == "" {
			continue
		}

		prior := r.priorBufferDescs[id]
		if prior != nil && *prior == desc && r.buffers[id] != nil {
			continue
		}

		if r.buffers[id] != nil {
			r.buffers[id].Destroy()
		}

		buf, err := r.device.CreateBuffer(gpu.BufferDesc{
			Name:                 desc.Name,
			SizeBytes:            desc.SizeBytes,
			AllowUnorderedAccess: desc.AllowUnorderedAccess,
		})
		if err != nil {
			return fmt.Errorf("rendergraph: realizing buffer %q: %w", desc.Name, err)
		}
		r.buffers[id] = buf

		descCopy := desc
		r.priorBufferDescs[id] = &descCopy
	}

	for id := range r.viewDescs {
		desc := r.viewDescs[id]
		if !r.viewSet[id] {
			continue
		}

		backingDirty := int(desc.Resource.ID()) < len(textureDirty) && desc.Resource.Kind() == KindTexture && textureDirty[desc.Resource.ID()]
		prior := r.priorViewDescs[id]
		dirty := backingDirty || prior == nil || *prior != desc
		if !dirty && r.views[id] != nil {
			continue
		}

		if r.views[id] != nil {
			r.views[id].Destroy()
		}

		res, err := r.resolve(desc.Resource)
		if err != nil {
			return fmt.Errorf("rendergraph: realizing view over %s: %w", desc.Resource, err)
		}
		view, err := r.device.CreateView(res, gpu.ViewDesc{
			Kind:            gpu.ViewKind(desc.Kind),
			Raw:             desc.Raw,
			FirstElement:    desc.FirstElement,
			NumElements:     desc.NumElements,
			CounterOffset:   desc.CounterOffset,
			SRGB:            desc.SRGB,
			MostDetailedMip: desc.MostDetailedMip,
			MipLevels:       desc.MipLevels,
			ArraySlice:      desc.ArraySlice,
			MipSlice:        desc.MipSlice,
		})
		if err != nil {
			return fmt.Errorf("rendergraph: realizing view over %s: %w", desc.Resource, err)
		}
		r.views[id] = view

		descCopy := desc
		r.priorViewDescs[id] = &descCopy
	}

	return nil
}
