// Package stack provides a generic last-in-first-out container.
package stack

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned by Pop and Peek when the stack holds no elements.
var ErrEmpty = errors.New("stack is empty")

// Stack is a slice-backed LIFO container.
// The zero value is an empty stack ready to use.
// A Stack is not safe for concurrent use.
type Stack[T any] struct {
	items []T
}

// Push adds v to the top of the stack
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Peek returns the top element without removing it
func (s *Stack[T]) Peek() (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrEmpty
	}
	return s.items[len(s.items)-1], nil
}

// Pop removes and returns the top element
func (s *Stack[T]) Pop() (T, error) {
	v, err := s.Peek()
	if err != nil {
		return v, err
	}

	// Clear the slot so popped pointers can be collected
	var zero T
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

// Empty reports whether the stack holds no elements
func (s *Stack[T]) Empty() bool {
	return len(s.items) == 0
}

// Len returns the number of elements on the stack
func (s *Stack[T]) Len() int {
	return len(s.items)
}

func (s *Stack[T]) String() string {
	return fmt.Sprint(s.items)
}
