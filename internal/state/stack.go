// Package state holds small containers shared by the parser and the writer.
package state

// Stack is a LIFO stack that keeps its backing array across Reset.
type Stack[T any] struct {
	items []T
}

// NewStack returns a stack with room for capacity items.
func NewStack[T any](capacity int) Stack[T] {
	if capacity <= 0 {
		return Stack[T]{}
	}
	return Stack[T]{items: make([]T, 0, capacity)}
}

// Push adds value on top.
func (s *Stack[T]) Push(value T) {
	s.items = append(s.items, value)
}

// Pop removes and returns the top value.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if s == nil || len(s.items) == 0 {
		return zero, false
	}
	last := len(s.items) - 1
	value := s.items[last]
	s.items = s.items[:last]
	return value, true
}

// Peek returns the top value.
func (s *Stack[T]) Peek() (T, bool) {
	var zero T
	if s == nil || len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Top returns a pointer to the top value, or nil when empty.
// The pointer is invalidated by the next Push.
func (s *Stack[T]) Top() *T {
	if s == nil || len(s.items) == 0 {
		return nil
	}
	return &s.items[len(s.items)-1]
}

// Len reports the depth.
func (s *Stack[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns the values bottom to top. Do not retain the slice.
func (s *Stack[T]) Items() []T {
	if s == nil {
		return nil
	}
	return s.items
}

// Reset empties the stack and keeps its capacity.
func (s *Stack[T]) Reset() {
	if s == nil {
		return
	}
	s.items = s.items[:0]
}
