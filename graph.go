package rendergraph

import (
	"fmt"
	"unsafe"

	"github.com/ardenengine/rendergraph/gpu"
	"github.com/ardenengine/rendergraph/internal/alloc"
)

// CommandContext is the command-recording surface a pass's ExecuteFunc and
// the executor's barrier pass record into. It is an alias, not a redefined
// interface, so any gpu.CommandContext implementation satisfies it directly.
type CommandContext = gpu.CommandContext

// Graph is a single frame's render graph: a throwaway builder object that
// records passes and their resource dependencies, then schedules and
// executes them. A fresh Graph is built every frame; the Registry it is
// constructed with is the only thing that persists across frames.
type Graph struct {
	registry  *Registry
	allocator *alloc.Bump

	passes   []*RenderPass
	prologue *RenderPass
	epilogue *RenderPass

	adjacency [][]int
	sorted    []*RenderPass
	levels    []*dependencyLevel
	executed  bool

	name string
}

// New builds a fresh Graph bound to registry. It resets the registry's
// per-frame transient ordinal counters, so callers must build and execute
// exactly one Graph per frame per Registry, in frame order.
func New(registry *Registry, opts ...Option) *Graph {
	cfg := defaultGraphConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	registry.beginFrame()
	g := &Graph{
		registry:  registry,
		allocator: alloc.New(cfg.arenaCapacity),
		name:      cfg.name,
	}
	g.prologue = g.addPass("Prologue")
	return g
}

// renderPassSize is the arena footprint charged for every pass, a rough
// stand-in for sizeof(RenderPass) in the source allocator.
const renderPassSize = int(unsafe.Sizeof(RenderPass{}))

func (g *Graph) addPass(name string) *RenderPass {
	if _, err := g.allocator.Allocate(renderPassSize, 8); err != nil {
		le := newLogicError("allocating render pass %q: %v", name, err)
		le.Cause = ErrAllocatorExhausted
		panic(le)
	}
	p := newRenderPass(name)
	g.passes = append(g.passes, p)
	return p
}

// AddRenderPass declares a new pass. The returned *RenderPass is configured
// via its Read/Write/SetRenderTarget/Execute methods before Execute is
// called on the Graph.
func (g *Graph) AddRenderPass(name string) *RenderPass {
	if g.executed {
		panic(newLogicError("AddRenderPass %q called after Graph.Execute", name))
	}
	return g.addPass(name)
}

// Registry returns the Graph's backing Registry, so a pass's ExecuteFunc
// closure can capture handles without a package-level global.
func (g *Graph) Registry() *Registry { return g.registry }

// CreateTexture records a transient texture descriptor and returns its
// handle; realization against the device happens lazily in Execute.
func (g *Graph) CreateTexture(desc TextureDesc) ResourceHandle {
	return g.registry.createTexture(desc)
}

// CreateBuffer is CreateTexture's analogue for buffers.
func (g *Graph) CreateBuffer(desc BufferDesc) ResourceHandle {
	return g.registry.createBuffer(desc)
}

// CreateView records a transient view descriptor over a Buffer or Texture
// handle created earlier this frame (or imported).
func (g *Graph) CreateView(desc ViewDesc) ResourceHandle {
	return g.registry.createView(desc)
}

// Import registers an externally-owned texture (e.g. this frame's swapchain
// back buffer) for the duration of this Graph; the next New on the same
// Registry drops it.
func (g *Graph) Import(tex gpu.Texture, desc TextureDesc) ResourceHandle {
	return g.registry.importTexture(tex, desc)
}

// ProloguePass returns the graph-managed pass every other pass implicitly
// depends on as the root of the scheduling DAG: it is scheduled alone in the
// first dependency level.
func (g *Graph) ProloguePass() *RenderPass { return g.prologue }

// EpiloguePass returns the graph-managed pass, created on first call (Execute
// calls it), that reads every resource written by any pass and is scheduled
// alone in the last dependency level, as the graph's single sink (§4.3).
func (g *Graph) EpiloguePass() *RenderPass {
	if g.epilogue == nil {
		g.epilogue = g.addPass("Epilogue")
	}
	return g.epilogue
}

// Execute schedules every declared pass into dependency levels and runs them
// in order against cmd: it appends the epilogue pass, computes the
// topological order and dependency levels (setup), realizes this frame's
// resources against the device, then runs each level's barriers and pass
// closures in turn. It may only be called once per Graph.
func (g *Graph) Execute(cmd gpu.CommandContext) error {
	if g.executed {
		return ErrGraphClosed
	}
	g.executed = true

	epilogue := g.EpiloguePass()
	for _, p := range g.passes {
		if p == epilogue {
			continue
		}
		for h := range p.writes {
			epilogue.Read(h)
		}
	}

	if err := g.setup(); err != nil {
		return err
	}
	if err := g.registry.realize(); err != nil {
		return err
	}
	for _, lvl := range g.levels {
		if err := lvl.execute(g, cmd); err != nil {
			return err
		}
	}
	return nil
}

// setup implements the scheduling algorithm: build an adjacency list per
// pass (reverse-order search so the most recently declared writer of a
// resource wins ties among multiple writers), run an iterative depth-first
// search to produce a topological order, then compute each pass's longest
// path distance from the prologue to bucket passes into dependency levels.
// The prologue is always alone in the first level and the epilogue alone in
// the last.
func (g *Graph) setup() error {
	n := len(g.passes)
	g.adjacency = make([][]int, n)

	for i, pass := range g.passes {
		if !pass.HasAnyDependencies() {
			continue
		}
		for j := n; j > 0; j-- {
			neighborIdx := j - 1
			if neighborIdx == i {
				continue
			}
			neighbor := g.passes[neighborIdx]
			if hasWriteReadEdge(pass, neighbor) {
				g.adjacency[i] = append(g.adjacency[i], neighborIdx)
			}
		}
	}

	sortedIdx, err := g.topologicalSort()
	if err != nil {
		return err
	}
	g.sorted = make([]*RenderPass, len(sortedIdx))
	for order, idx := range sortedIdx {
		g.passes[idx].topologicalIndex = order
		g.sorted[order] = g.passes[idx]
	}

	distances := make([]int, n)
	for i := 1; i < n; i++ {
		distances[i] = 1 // passes[0] is the prologue, the root every pass sits below
	}
	for _, idx := range sortedIdx {
		for _, neighborIdx := range g.adjacency[idx] {
			if distances[neighborIdx] < distances[idx]+1 {
				distances[neighborIdx] = distances[idx] + 1
			}
		}
	}

	maxDistance := 0
	epilogueIdx := -1
	for i, d := range distances {
		if g.passes[i] == g.epilogue {
			epilogueIdx = i
		} else if d > maxDistance {
			maxDistance = d
		}
	}
	if epilogueIdx >= 0 { // the epilogue is the sink: alone in the last level
		maxDistance++
		distances[epilogueIdx] = maxDistance
	}
	g.levels = make([]*dependencyLevel, maxDistance+1)
	for i := range g.levels {
		g.levels[i] = newDependencyLevel()
	}
	for _, idx := range sortedIdx {
		g.levels[distances[idx]].addRenderPass(g.passes[idx])
	}
	return nil
}

// hasWriteReadEdge reports whether any resource pass writes is read by
// neighbor — either an explicit Read, or the implicit read-modify-write
// dependency neighbor records against the version it overwrote with its own
// Write (§8 property 3) — which is the condition that decides pass must run
// before neighbor.
func hasWriteReadEdge(pass, neighbor *RenderPass) bool {
	for h := range pass.writes {
		if neighbor.ReadsFrom(h) {
			return true
		}
		if _, ok := neighbor.impliedReads[h]; ok {
			return true
		}
	}
	return false
}

// topologicalSort runs an iterative, explicit-stack depth-first search over
// g.adjacency and returns pass indices in topological order (a pass appears
// only after every pass it depends on). It detects cycles, which the source
// graph does not produce but a user-declared dependency set can.
//
// A DFS over successor edges (g.adjacency[i] holds the passes that depend on
// i, not the passes i depends on) finishes nodes in reverse topological
// order: a node is only marked finished (appended to order) after every
// successor reachable from it has already finished, which is exactly
// backwards from "appears before what depends on it". The source's
// DepthFirstSearch pushes finish order onto a stack and RenderGraph::Setup
// pops it for this reason; reversing the slice here is the Go equivalent.
// Search roots are started from the last-added pass backwards, so after the
// reversal independent passes keep their insertion order, the prologue
// (passes[0]) comes first, and a last-added epilogue comes last.
func (g *Graph) topologicalSort() ([]int, error) {
	n := len(g.passes)
	const (
		white = iota // unvisited
		gray         // on the current DFS path
		black        // finished
	)
	color := make([]int, n)
	order := make([]int, 0, n)

	type frame struct {
		node     int
		children int
	}

	for start := n - 1; start >= 0; start-- {
		if color[start] != white {
			continue
		}
		stack := []frame{{node: start}}
		color[start] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.children < len(g.adjacency[top.node]) {
				child := g.adjacency[top.node][top.children]
				top.children++
				switch color[child] {
				case white:
					color[child] = gray
					stack = append(stack, frame{node: child})
				case gray:
					return nil, fmt.Errorf("%w: pass %q participates in a cycle", ErrCyclicGraph, g.passes[child].name)
				}
				continue
			}
			color[top.node] = black
			order = append(order, top.node)
			stack = stack[:len(stack)-1]
		}
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}
