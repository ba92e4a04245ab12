package query

import (
	"sync"

	"kdforest/pkg/axis"
	"kdforest/pkg/metric"
	"kdforest/pkg/result"
)

// WithinIter is the lazy pull iterator returned by WithinUnsortedIter
// (spec §4.4.1 "within_unsorted_iter"). Go has no stackful coroutines to
// suspend a recursive descent mid-traversal the way the original
// generator does, so the descent instead runs on its own goroutine and
// feeds an unbuffered channel; Next blocks until the next match (or
// until the descent finishes), and Close cancels the goroutine if the
// caller stops pulling early.
type WithinIter[D, T any] struct {
	ch     chan result.Pair[D, T]
	done   chan struct{}
	closer sync.Once
}

// cancelled is the sentinel panic value used to unwind the recursive
// descent from inside its visitor callback when the consumer calls
// Close before the descent finishes on its own.
type cancelled struct{}

// WithinUnsortedIter starts a descent on a background goroutine and
// returns an iterator over its results in discovery order.
func WithinUnsortedIter[A axis.Coord, D axis.Coord, T any](tree Accessor[A, D, T], m metric.Metric[A, D], query []A, radius D) *WithinIter[D, T] {
	it := &WithinIter[D, T]{
		ch:   make(chan result.Pair[D, T]),
		done: make(chan struct{}),
	}

	go func() {
		defer close(it.ch)
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(cancelled); !ok {
					panic(r)
				}
			}
		}()

		b := func() (D, bool) { return radius, true }
		descend(tree, m, query, b, func(dist D, item T) {
			if dist >= radius {
				return
			}
			select {
			case it.ch <- result.Pair[D, T]{Distance: dist, Item: item}:
			case <-it.done:
				panic(cancelled{})
			}
		})
	}()

	return it
}

// Next blocks until the next result is available, returning ok == false
// once the descent has exhausted every candidate.
func (it *WithinIter[D, T]) Next() (result.Pair[D, T], bool) {
	p, ok := <-it.ch
	return p, ok
}

// Close cancels the underlying descent if it has not already finished.
// Safe to call multiple times and safe to call after the descent has
// already run to completion.
func (it *WithinIter[D, T]) Close() {
	it.closer.Do(func() { close(it.done) })
}
