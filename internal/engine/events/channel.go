package events

import "iter"

// Channel is a single-writer, multi-reader event stream scoped to one frame.
// Every reader sees every event sent during the frame; events are discarded
// when the next frame begins.
type Channel[T any] struct {
	name  string
	items []T
}

// NewChannel creates an empty channel.
func NewChannel[T any](name string) *Channel[T] {
	return &Channel[T]{name: name}
}

// Name returns the channel name.
func (c *Channel[T]) Name() string {
	return c.name
}

// Send appends an event for this frame.
func (c *Channel[T]) Send(evt T) {
	c.items = append(c.items, evt)
}

// Len returns the number of events sent this frame.
func (c *Channel[T]) Len() int {
	return len(c.items)
}

// All yields this frame's events in send order.
func (c *Channel[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, evt := range c.items {
			if !yield(evt) {
				return
			}
		}
	}
}

// Filter yields this frame's events for which keep returns true.
func (c *Channel[T]) Filter(keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, evt := range c.items {
			if keep(evt) && !yield(evt) {
				return
			}
		}
	}
}

// Last returns the most recent event matching keep.
func (c *Channel[T]) Last(keep func(T) bool) (T, bool) {
	for i := len(c.items) - 1; i >= 0; i-- {
		if keep(c.items[i]) {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

// Slice returns a copy of this frame's events.
func (c *Channel[T]) Slice() []T {
	return append([]T(nil), c.items...)
}

func (c *Channel[T]) reset() {
	clear(c.items)
	c.items = c.items[:0]
}
