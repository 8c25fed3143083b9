package queue

// Ring is a fixed-capacity FIFO log. Pushing past capacity evicts the oldest
// entry. It is not safe for concurrent use on its own.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

// NewRing creates a ring holding at most capacity items
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Push appends v, evicting the oldest item when full
func (r *Ring[T]) Push(v T) {
	idx := (r.head + r.size) % len(r.items)
	r.items[idx] = v
	if r.size < len(r.items) {
		r.size++
		return
	}
	r.head = (r.head + 1) % len(r.items)
}

// Items returns a copy of the contents, oldest first
func (r *Ring[T]) Items() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.items[(r.head+i)%len(r.items)]
	}
	return out
}
