// Package factorial computes n! by pushing n..2 onto a stack and multiplying while popping.
//
// Results are int64. Compute wraps silently once n exceeds MaxExact;
// ComputeChecked reports ErrOverflow instead.
package factorial

import (
	"errors"
	"fmt"
	"math"

	"github.com/mrled/stackcalc/internal/stack"
)

// MaxExact is the largest n whose factorial fits in an int64
const MaxExact = 20

// ErrOverflow is returned by ComputeChecked when n! does not fit in an int64
var ErrOverflow = errors.New("factorial overflows int64")

// load pushes n, n-1, ..., 2. Nothing is pushed for n <= 1.
func load(n int) *stack.Stack[int64] {
	s := &stack.Stack[int64]{}
	for i := n; i > 1; i-- {
		s.Push(int64(i))
	}
	return s
}

// Compute returns n! using int64 arithmetic without overflow checks.
// Inputs of 1 or less, including negatives, return 1.
func Compute(n int) int64 {
	s := load(n)

	result := int64(1)
	for !s.Empty() {
		top, _ := s.Peek()
		result *= top
		s.Pop()
	}

	return result
}

// ComputeChecked is Compute with overflow detection.
func ComputeChecked(n int) (int64, error) {
	s := load(n)

	result := int64(1)
	for !s.Empty() {
		top, _ := s.Pop()
		if result > math.MaxInt64/top {
			return 0, fmt.Errorf("%d!: %w", n, ErrOverflow)
		}
		result *= top
	}

	return result, nil
}
