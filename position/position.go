// Package position provides the lazy, restartable action generator every
// expansion policy drives one action at a time instead of materialising an
// entire legal-move list up front.
package position

import "fmt"

// Generator enumerates the actions available from a position, one at a
// time. It is a cursor, not an iterator: Current is only valid after a call
// to Advance returned true, and the generator starts positioned before the
// first element.
//
// Misusing the cursor (calling Current before any successful Advance) is a
// programmer error and panics with a
// *ContractViolation rather than returning an error — callers that implement
// their own Generator should do the same, since planners distinguish these
// panics from recoverable Game Model failures and deliberately do not catch
// them.
type Generator[A any] interface {
	// Advance moves the cursor to the next action, if any, and reports
	// whether one is available.
	Advance() bool

	// Current returns the action at the cursor. Valid only immediately
	// after Advance returned true.
	Current() A

	// HasNext reports whether a subsequent Advance would succeed, without
	// moving the cursor.
	HasNext() bool

	// Reset rewinds the cursor to before the first element.
	Reset()
}

// ContractViolation signals that a Generator was used outside its contract
// (e.g. Current called before any Advance). It is raised via panic, never
// via a returned error, and planners rethrow it rather than treating it as
// a recoverable Game Model failure.
type ContractViolation struct {
	Msg string
}

func (c *ContractViolation) Error() string { return c.Msg }

func violate(format string, args ...any) {
	panic(&ContractViolation{Msg: fmt.Sprintf(format, args...)})
}

// Slice is a Generator backed by a fixed, pre-computed slice of actions. It
// is the generator most GameLogic.Expand implementations return.
type Slice[A any] struct {
	actions []A
	cursor  int // index of the last action returned by Advance; -1 before the first.
}

// FromSlice wraps actions (taking ownership; callers should not mutate it
// afterwards) in a restartable Generator.
func FromSlice[A any](actions []A) *Slice[A] {
	return &Slice[A]{actions: actions, cursor: -1}
}

func (s *Slice[A]) Advance() bool {
	if s.cursor+1 >= len(s.actions) {
		return false
	}
	s.cursor++
	return true
}

func (s *Slice[A]) Current() A {
	if s.cursor < 0 || s.cursor >= len(s.actions) {
		violate("position: Current called with cursor out of range (no preceding successful Advance)")
	}
	return s.actions[s.cursor]
}

func (s *Slice[A]) HasNext() bool {
	return s.cursor+1 < len(s.actions)
}

func (s *Slice[A]) Reset() {
	s.cursor = -1
}

// Len returns the total number of actions the generator was built with,
// regardless of cursor position.
func (s *Slice[A]) Len() int {
	return len(s.actions)
}
