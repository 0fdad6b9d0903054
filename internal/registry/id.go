// Package registry implements a generation-checked, dense-index resource
// table: the same index+epoch recycling scheme wgpu-core uses to make
// handle reuse safe against use-after-free, generalized here to back the
// render graph's own ResourceHandle id space instead of one registry per
// wgpu object kind.
package registry

import "fmt"

// Index is the dense slot index component of an ID.
type Index = uint32

// Epoch is the generation counter component of an ID, incremented every
// time a slot is recycled so that a stale ID is detectably invalid rather
// than silently aliasing a new resource.
type Epoch = uint32

// RawID is the packed (epoch, index) pair.
type RawID uint64

// Zip combines an index and epoch into a RawID.
func Zip(index Index, epoch Epoch) RawID {
	return RawID(index) | RawID(epoch)<<32
}

// Unzip extracts the index and epoch from a RawID.
func (id RawID) Unzip() (Index, Epoch) {
	return Index(id & 0xFFFFFFFF), Epoch(id >> 32)
}

// Index returns the index component.
func (id RawID) Index() Index { return Index(id & 0xFFFFFFFF) }

// Epoch returns the epoch component.
func (id RawID) Epoch() Epoch { return Epoch(id >> 32) }

// IsZero reports whether both components are zero (the invalid ID).
func (id RawID) IsZero() bool { return id == 0 }

func (id RawID) String() string {
	index, epoch := id.Unzip()
	return fmt.Sprintf("RawID(%d,%d)", index, epoch)
}
