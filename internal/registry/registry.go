package registry

// Registry combines an IdentityManager (id allocation) with a Storage (item
// storage) into one generation-checked resource table.
type Registry[T any] struct {
	identity *IdentityManager
	storage  *Storage[T]
}

// New returns an empty Registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		identity: NewIdentityManager(),
		storage:  NewStorage[T](64),
	}
}

// Register allocates a fresh RawID and stores item under it.
func (r *Registry[T]) Register(item T) RawID {
	id := r.identity.Alloc()
	r.storage.Insert(id, item)
	return id
}

// Get retrieves the item at id, distinguishing not-found from epoch
// mismatch by comparing id's index against the storage's current capacity.
func (r *Registry[T]) Get(id RawID) (T, error) {
	var zero T
	if id.IsZero() {
		return zero, ErrInvalidID
	}
	item, ok := r.storage.Get(id)
	if !ok {
		if r.storage.Capacity() > int(id.Index()) {
			return zero, ErrEpochMismatch
		}
		return zero, ErrNotFound
	}
	return item, nil
}

// GetMut calls fn with a pointer to the stored item if id is valid.
func (r *Registry[T]) GetMut(id RawID, fn func(*T)) error {
	if id.IsZero() {
		return ErrInvalidID
	}
	if !r.storage.GetMut(id, fn) {
		if r.storage.Capacity() > int(id.Index()) {
			return ErrEpochMismatch
		}
		return ErrNotFound
	}
	return nil
}

// Unregister removes the item at id and releases id's index for reuse.
func (r *Registry[T]) Unregister(id RawID) (T, error) {
	var zero T
	if id.IsZero() {
		return zero, ErrInvalidID
	}
	item, ok := r.storage.Remove(id)
	if !ok {
		if r.storage.Capacity() > int(id.Index()) {
			return zero, ErrEpochMismatch
		}
		return zero, ErrNotFound
	}
	r.identity.Release(id)
	return item, nil
}

// Contains reports whether id currently names a live item.
func (r *Registry[T]) Contains(id RawID) bool {
	if id.IsZero() {
		return false
	}
	return r.storage.Contains(id)
}

// Count returns the number of currently registered items.
func (r *Registry[T]) Count() uint64 { return r.identity.Count() }

// ForEach iterates every live (id, item) pair in index order.
func (r *Registry[T]) ForEach(fn func(RawID, T) bool) { r.storage.ForEach(fn) }
