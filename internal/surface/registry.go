package surface

// registry keeps callbacks in registration order and hands out ids for
// removal. Callers provide locking.
type registry[T any] struct {
	next    int
	entries []entry[T]
}

type entry[T any] struct {
	id int
	fn T
}

func (r *registry[T]) add(fn T) int {
	r.next++
	r.entries = append(r.entries, entry[T]{id: r.next, fn: fn})
	return r.next
}

func (r *registry[T]) remove(id int) {
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return
		}
	}
}

func (r *registry[T]) list() []T {
	out := make([]T, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.fn
	}
	return out
}

func (r *registry[T]) len() int { return len(r.entries) }
