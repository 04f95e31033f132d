package runtime

import "github.com/pystatic/pystatic/internal/config"

// List is a growable container with a logical length and a distinct
// capacity. The buffer is managed by hand rather than through Go's
// append so the growth schedule is part of the contract: an
// empty-constructed list starts at capacity 8, a literal-constructed
// list at max(count, 1), and a full list doubles before accepting the
// next element. Reads and writes never change the length.
type List[T any] struct {
	elems []T
	len   int
}

// NewList constructs an empty list with the initial capacity.
func NewList[T any]() *List[T] {
	return &List[T]{elems: make([]T, config.InitialCapacity)}
}

// ListOf constructs a list holding the given elements. Capacity is the
// element count, with a floor of one so the first append never starts
// from zero.
func ListOf[T any](elems ...T) *List[T] {
	capacity := len(elems)
	if capacity == 0 {
		capacity = 1
	}
	buf := make([]T, capacity)
	copy(buf, elems)
	return &List[T]{elems: buf, len: len(elems)}
}

// Len returns the logical length, not the capacity.
func (l *List[T]) Len() int { return l.len }

// Cap returns the current buffer capacity.
func (l *List[T]) Cap() int { return len(l.elems) }

// Get reads the element at index. Indexes outside [0, len) fault even
// when they fall inside the buffer.
func (l *List[T]) Get(index int) (T, error) {
	if index < 0 || index >= l.len {
		var zero T
		return zero, indexFault(index, l.len)
	}
	return l.elems[index], nil
}

// Set overwrites the element at index. Writing never extends the list.
func (l *List[T]) Set(index int, v T) error {
	if index < 0 || index >= l.len {
		return indexFault(index, l.len)
	}
	l.elems[index] = v
	return nil
}

// Append adds an element at the end, doubling the buffer first when it
// is full.
func (l *List[T]) Append(v T) {
	if l.len == len(l.elems) {
		l.grow()
	}
	l.elems[l.len] = v
	l.len++
}

func (l *List[T]) grow() {
	capacity := len(l.elems) * 2
	if capacity == 0 {
		capacity = 1
	}
	buf := make([]T, capacity)
	copy(buf, l.elems[:l.len])
	l.elems = buf
}

// Slice returns the live elements. The result aliases the buffer and is
// only valid until the next append.
func (l *List[T]) Slice() []T { return l.elems[:l.len] }
