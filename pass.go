package rendergraph

// ExecuteFunc is the closure a pass runs once scheduled. It receives the
// frame's Registry (to resolve handles to physical resources/views) and the
// CommandContext to record work into. It is responsible for calling
// BeginRenderPass/EndRenderPass itself if it declared a RenderTargetDesc.
type ExecuteFunc func(reg *Registry, cmd CommandContext) error

// RenderPass is a user-declared unit of GPU work: a name, a set of
// read/write resource dependencies, and an execute closure. RenderPass
// values are allocated from the frame's bump allocator and live exactly one
// frame; callers never construct one directly, only via Graph.AddRenderPass.
type RenderPass struct {
	name             string
	topologicalIndex int

	reads      map[ResourceHandle]struct{}
	writes     map[ResourceHandle]struct{}
	readWrites map[ResourceHandle]struct{}

	// impliedReads records the pre-increment handle of every Write call: a
	// write is a read-modify-write of whatever the previous writer produced,
	// so the pass scheduling a write implicitly depends on that prior
	// version the same way an explicit Read would (§8 property 3's writer
	// tie-break). It never contributes barrier scope — only reads/writes do
	// — it exists purely so adjacency construction sees the edge.
	impliedReads map[ResourceHandle]struct{}

	renderTarget *RenderTargetDesc
	fn           ExecuteFunc
}

func newRenderPass(name string) *RenderPass {
	return &RenderPass{
		name:         name,
		reads:        make(map[ResourceHandle]struct{}),
		writes:       make(map[ResourceHandle]struct{}),
		readWrites:   make(map[ResourceHandle]struct{}),
		impliedReads: make(map[ResourceHandle]struct{}),
	}
}

// Name returns the pass's declared name.
func (p *RenderPass) Name() string { return p.name }

// TopologicalIndex returns the pass's position in the topological order,
// valid only after Graph.Execute has run Setup.
func (p *RenderPass) TopologicalIndex() int { return p.topologicalIndex }

// Read declares that the pass reads h. h must name a Buffer or Texture.
// Panics (a logic error, per §7) if h is not a valid Buffer/Texture handle.
func (p *RenderPass) Read(h ResourceHandle) *RenderPass {
	if !h.IsValid() || !h.Kind().isReadWriteKind() {
		ve := newValidationError(p.name, h.String(), "Read requires a valid Buffer or Texture handle")
		ve.Cause = ErrInvalidHandle
		panic(ve)
	}
	p.reads[h] = struct{}{}
	p.readWrites[h] = struct{}{}
	return p
}

// Write declares that the pass writes *h. The handle's version is bumped in
// place in the caller's variable and the post-bump handle is what gets
// recorded in writes/readWrites — this is what lets a later Read of the new
// version depend on this pass instead of an earlier writer (§3, §8 property 3).
func (p *RenderPass) Write(h *ResourceHandle) *RenderPass {
	if h == nil || !h.IsValid() || !h.Kind().isReadWriteKind() {
		ve := newValidationError(p.name, "", "Write requires a valid Buffer or Texture handle")
		ve.Cause = ErrInvalidHandle
		panic(ve)
	}
	p.impliedReads[*h] = struct{}{}
	*h = h.next()
	p.writes[*h] = struct{}{}
	p.readWrites[*h] = struct{}{}
	return p
}

// SetRenderTarget attaches the color/depth-stencil views this pass renders
// into. The execute closure is expected to call cmd.BeginRenderPass(desc)
// itself; this only records the descriptor on the pass. Neither the
// executor's barriers nor Registry view realization read it.
func (p *RenderPass) SetRenderTarget(desc RenderTargetDesc) *RenderPass {
	p.renderTarget = &desc
	return p
}

// Execute sets the closure invoked when the pass is scheduled.
func (p *RenderPass) Execute(fn ExecuteFunc) *RenderPass {
	p.fn = fn
	return p
}

// HasDependency reports whether h is in reads ∪ writes.
func (p *RenderPass) HasDependency(h ResourceHandle) bool {
	_, ok := p.readWrites[h]
	return ok
}

// WritesTo reports whether h is in writes.
func (p *RenderPass) WritesTo(h ResourceHandle) bool {
	_, ok := p.writes[h]
	return ok
}

// ReadsFrom reports whether h is in reads.
func (p *RenderPass) ReadsFrom(h ResourceHandle) bool {
	_, ok := p.reads[h]
	return ok
}

// HasAnyDependencies reports whether the pass reads or writes anything.
// Passes with no dependencies (Prologue, and any pass added but never wired
// to a resource) are excluded from adjacency construction.
func (p *RenderPass) HasAnyDependencies() bool {
	return len(p.readWrites) > 0
}
