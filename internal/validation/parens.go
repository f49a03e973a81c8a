package validation

import (
	"fmt"

	"github.com/mrled/stackcalc/internal/stack"
)

const (
	openParen  = '('
	closeParen = ')'
)

// scan walks expr once, pushing the rune position of every opening parenthesis
// and popping one for every closing parenthesis.
// It stops at the first closing parenthesis with nothing to match and returns its position;
// otherwise the returned position is -1 and the stack holds the unmatched openers.
func scan(expr string) (int, *stack.Stack[int]) {
	open := &stack.Stack[int]{}

	pos := 0
	for _, c := range expr {
		switch c {
		case openParen:
			open.Push(pos)
		case closeParen:
			if open.Empty() {
				return pos, open
			}
			open.Pop()
		}
		pos++
	}

	return -1, open
}

// IsBalanced reports whether every '(' in expr has a matching ')' that appears later,
// with proper nesting. All other characters are ignored, so the empty string is balanced.
func IsBalanced(expr string) bool {
	unmatchedClose, open := scan(expr)
	if unmatchedClose >= 0 {
		return false
	}
	return open.Empty()
}

// Validate checks expr like IsBalanced and, when it is not balanced,
// returns an error describing the first problem found.
// Positions are zero-based rune offsets.
func Validate(expr string) (bool, error) {
	unmatchedClose, open := scan(expr)
	if unmatchedClose >= 0 {
		return false, fmt.Errorf("unmatched closing parenthesis at position %d", unmatchedClose)
	}

	if !open.Empty() {
		last, _ := open.Peek()
		return false, fmt.Errorf("%d unclosed parenthesis, last opened at position %d", open.Len(), last)
	}

	return true, nil
}
