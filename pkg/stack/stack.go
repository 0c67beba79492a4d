package stack

import "errors"

var (
	ErrUnderflow = errors.New("stack: empty")
	ErrTooShort  = errors.New("stack: fewer than two elements")
)

// Stack is a LIFO of signed integers. The backing slice holds the bottom
// at index 0 and the top at index len-1.
type Stack struct {
	a []int64
}

// NewStack creates a new stack instance, pushing elm in order
func NewStack(elm ...int64) *Stack {
	stack := Stack{
		a: make([]int64, 0, len(elm)),
	}

	for _, e := range elm {
		stack.Push(e)
	}

	return &stack
}

// Push adds an element to the top of the stack
func (s *Stack) Push(elm int64) {
	s.a = append(s.a, elm)
}

// Pop removes and returns the top element of the stack
func (s *Stack) Pop() (int64, error) {
	if len(s.a) < 1 {
		return 0, ErrUnderflow
	}

	top := len(s.a) - 1
	elm := s.a[top]
	s.a = s.a[:top]

	return elm, nil
}

// Peek returns the top element of the stack without removing it
func (s *Stack) Peek() (int64, error) {
	if len(s.a) < 1 {
		return 0, ErrUnderflow
	}

	return s.a[len(s.a)-1], nil
}

// Swap exchanges the two topmost elements
func (s *Stack) Swap() error {
	n := len(s.a)
	if n < 2 {
		return ErrTooShort
	}

	s.a[n-1], s.a[n-2] = s.a[n-2], s.a[n-1]
	return nil
}

// Combine replaces the second element with fn(second, top) and drops the
// top. The stack is left untouched when fn fails.
func (s *Stack) Combine(fn func(second, top int64) (int64, error)) error {
	n := len(s.a)
	if n < 2 {
		return ErrTooShort
	}

	v, err := fn(s.a[n-2], s.a[n-1])
	if err != nil {
		return err
	}

	s.a[n-2] = v
	s.a = s.a[:n-1]
	return nil
}

// RotateLeft moves the top element to the bottom; the former second
// element becomes the new top. Stacks of size 0 or 1 are left alone.
func (s *Stack) RotateLeft() {
	n := len(s.a)
	if n < 2 {
		return
	}

	top := s.a[n-1]
	copy(s.a[1:], s.a[:n-1])
	s.a[0] = top
}

// RotateRight moves the bottom element to the top.
// Stacks of size 0 or 1 are left alone.
func (s *Stack) RotateRight() {
	n := len(s.a)
	if n < 2 {
		return
	}

	bottom := s.a[0]
	copy(s.a, s.a[1:])
	s.a[n-1] = bottom
}

// Each walks the stack from top to bottom until fn returns false
func (s *Stack) Each(fn func(v int64) bool) {
	for i := len(s.a) - 1; i >= 0; i-- {
		if !fn(s.a[i]) {
			return
		}
	}
}

// Values returns a copy of the contents, top first
func (s *Stack) Values() []int64 {
	out := make([]int64, 0, len(s.a))
	s.Each(func(v int64) bool {
		out = append(out, v)
		return true
	})

	return out
}

// Get the size of the stack
func (s *Stack) Size() int {
	return len(s.a)
}

// Clear releases every element
func (s *Stack) Clear() {
	s.a = nil
}
