package rendergraph

import (
	"fmt"

	"github.com/ardenengine/rendergraph/gpu"
	"github.com/ardenengine/rendergraph/internal/track"
)

// dependencyLevel groups every RenderPass sharing the same longest-path
// distance from the prologue. Barriers are computed once per level, not
// once per pass, which is the entire point of the longest-path layering in
// Graph.setup.
type dependencyLevel struct {
	passes []*RenderPass
	reads  map[ResourceHandle]struct{}
	writes map[ResourceHandle]struct{}
}

func newDependencyLevel() *dependencyLevel {
	return &dependencyLevel{
		reads:  make(map[ResourceHandle]struct{}),
		writes: make(map[ResourceHandle]struct{}),
	}
}

// addRenderPass appends p and folds its reads/writes into the level's union,
// mirroring RenderGraphDependencyLevel::AddRenderPass.
func (lvl *dependencyLevel) addRenderPass(p *RenderPass) {
	lvl.passes = append(lvl.passes, p)
	for h := range p.reads {
		lvl.reads[h] = struct{}{}
	}
	for h := range p.writes {
		lvl.writes[h] = struct{}{}
	}
}

// execute implements §4.5 steps 1-4: compute and flush barriers for every
// handle in the level's reads/writes, then run each pass's closure in
// topological (insertion) order.
func (lvl *dependencyLevel) execute(g *Graph, cmd gpu.CommandContext) error {
	scope := track.NewScope[ResourceHandle]()

	for h := range lvl.reads {
		uses := track.UsesPixelShaderResource
		if g.registry.allowUnorderedAccess(h) {
			uses |= track.UsesNonPixelShaderResource
		}
		if err := scope.Set(h, uses); err != nil {
			return newLogicError("read/write barrier conflict on %s: %v", h, err)
		}
	}
	for h := range lvl.writes {
		var uses track.Uses
		if g.registry.allowRenderTarget(h) {
			uses |= track.UsesRenderTarget
		}
		if g.registry.allowDepthStencil(h) {
			uses |= track.UsesDepthWrite
		}
		if g.registry.allowUnorderedAccess(h) {
			uses |= track.UsesUnorderedAccess
		}
		if err := scope.Set(h, uses); err != nil {
			return newLogicError("read/write barrier conflict on %s: %v", h, err)
		}
	}

	for h := range lvl.reads {
		res, err := g.registry.resolve(h)
		if err != nil {
			return fmt.Errorf("rendergraph: resolving read barrier target %s: %w", h, err)
		}
		cmd.TransitionBarrier(res, usesToState(scope.Get(h)))
	}
	for h := range lvl.writes {
		res, err := g.registry.resolve(h)
		if err != nil {
			return fmt.Errorf("rendergraph: resolving write barrier target %s: %w", h, err)
		}
		cmd.TransitionBarrier(res, usesToState(scope.Get(h)))
	}
	cmd.FlushResourceBarriers()

	for _, p := range lvl.passes {
		if p.fn == nil {
			continue
		}
		Logger().Debug("executing pass", "name", p.name, "topological_index", p.topologicalIndex)
		if err := p.fn(g.registry, cmd); err != nil {
			return fmt.Errorf("rendergraph: pass %q: %w", p.name, err)
		}
	}
	return nil
}

func usesToState(u track.Uses) gpu.ResourceState {
	var s gpu.ResourceState
	if u&track.UsesPixelShaderResource != 0 {
		s |= gpu.StatePixelShaderResource
	}
	if u&track.UsesNonPixelShaderResource != 0 {
		s |= gpu.StateNonPixelShaderResource
	}
	if u&track.UsesRenderTarget != 0 {
		s |= gpu.StateRenderTarget
	}
	if u&track.UsesDepthWrite != 0 {
		s |= gpu.StateDepthWrite
	}
	if u&track.UsesUnorderedAccess != 0 {
		s |= gpu.StateUnorderedAccess
	}
	return s
}
