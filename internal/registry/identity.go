package registry

import "sync"

// freeSlot is a released (index, epoch) pair available for reuse.
type freeSlot struct {
	index Index
	epoch Epoch
}

// IdentityManager allocates and recycles RawIDs. Epoch starts at 1 so the
// zero RawID is never a valid allocation.
type IdentityManager struct {
	mu        sync.Mutex
	free      []freeSlot
	nextIndex Index
	count     uint64
}

// NewIdentityManager returns an empty IdentityManager.
func NewIdentityManager() *IdentityManager {
	return &IdentityManager{free: make([]freeSlot, 0, 64)}
}

// Alloc returns a fresh RawID, reusing a released slot's index with a
// bumped epoch if one is available.
func (m *IdentityManager) Alloc() RawID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.count++

	if n := len(m.free); n > 0 {
		slot := m.free[n-1]
		m.free = m.free[:n-1]
		return Zip(slot.index, slot.epoch+1)
	}

	index := m.nextIndex
	m.nextIndex++
	return Zip(index, 1)
}

// Release marks id's index available for reuse under a future, higher epoch.
func (m *IdentityManager) Release(id RawID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	index, epoch := id.Unzip()
	m.free = append(m.free, freeSlot{index: index, epoch: epoch})
	m.count--
}

// Count returns the number of currently allocated IDs.
func (m *IdentityManager) Count() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}
