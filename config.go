package rendergraph

import "github.com/ardenengine/rendergraph/internal/alloc"

// Option configures a Graph at construction time via New, following the
// same functional-options shape used for constructing long-lived engine
// objects: every Option is optional, and New is correct with zero of them.
type Option func(*graphConfig)

type graphConfig struct {
	arenaCapacity int
	name          string
}

func defaultGraphConfig() graphConfig {
	return graphConfig{arenaCapacity: alloc.DefaultCapacity}
}

// WithArenaCapacity overrides the bump allocator's fixed capacity, which
// otherwise defaults to alloc.DefaultCapacity (64 KiB, §4.1). Exceeding it
// during AddRenderPass panics with a *LogicError wrapping ErrAllocatorExhausted.
func WithArenaCapacity(bytes int) Option {
	return func(c *graphConfig) { c.arenaCapacity = bytes }
}

// WithName attaches a debug name to the Graph, used as ExportDgml's default
// title when no title is supplied explicitly.
func WithName(name string) Option {
	return func(c *graphConfig) { c.name = name }
}
