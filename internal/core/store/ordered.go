package store

// Ordered is a keyed store that also remembers insertion order, so iteration
// is reproducible from tick to tick. No reflect, no interface{}.
type Ordered[K comparable, T any] struct {
	index map[K]int
	items []*T
}

func NewOrdered[K comparable, T any]() *Ordered[K, T] {
	return &Ordered[K, T]{
		index: make(map[K]int, 64),
		items: make([]*T, 0, 64),
	}
}

// Put stores v under k. Replacing an existing key keeps its original position.
func (s *Ordered[K, T]) Put(k K, v *T) {
	if i, ok := s.index[k]; ok {
		s.items[i] = v
		return
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, v)
}

func (s *Ordered[K, T]) Get(k K) (*T, bool) {
	i, ok := s.index[k]
	if !ok {
		return nil, false
	}
	return s.items[i], true
}

func (s *Ordered[K, T]) Len() int {
	return len(s.items)
}

// Each visits values in insertion order. Values added by fn during the walk
// are not visited.
func (s *Ordered[K, T]) Each(fn func(*T)) {
	n := len(s.items)
	for i := 0; i < n; i++ {
		fn(s.items[i])
	}
}

// Values returns a snapshot of all values in insertion order.
func (s *Ordered[K, T]) Values() []*T {
	out := make([]*T, len(s.items))
	copy(out, s.items)
	return out
}
