package safefn

import (
	"context"
	"fmt"
)

// Future is a value computed on another goroutine.
type Future[T any] struct {
	done chan struct{}
	val  T
}

// Go runs fn on a new goroutine and returns its Future. fn must not panic.
func Go[T any](fn func() T) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val = fn()
	}()
	return f
}

// Resolved returns an already completed Future.
func Resolved[T any](v T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: v}
	close(f.done)
	return f
}

// Done is closed once the value is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await blocks until the value is available or ctx is done. Cancellation
// only stops the wait; the underlying computation keeps running.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Wait blocks until the value is available.
func (f *Future[T]) Wait() T {
	<-f.done
	return f.val
}

// Pending is the value an asynchronous handler returns: a computation started
// by Async that settles with the handler's (output, error) pair.
type Pending struct {
	f *Future[settlement]
}

type settlement struct {
	value    any
	err      error
	panicked bool
	thrown   any
}

// Async starts fn on a new goroutine. Handlers bound with Declaration.Handler
// return the Pending value as their output:
//
//	return safefn.Async(func() (any, error) { return lookup(ctx, id) }), nil
//
// A panic inside fn is captured and reported like a panic in the handler.
func Async(fn func() (any, error)) *Pending {
	return &Pending{f: Go(func() (s settlement) {
		defer func() {
			if r := recover(); r != nil {
				s = settlement{panicked: true, thrown: r}
			}
		}()
		v, err := fn()
		return settlement{value: v, err: realError(err)}
	})}
}

// Done is closed once the computation settled.
func (p *Pending) Done() <-chan struct{} { return p.f.Done() }

// Await waits for the computation. A captured panic is returned as an error.
func (p *Pending) Await(ctx context.Context) (any, error) {
	s, err := p.f.Await(ctx)
	if err != nil {
		return nil, err
	}
	if s.panicked {
		return nil, fmt.Errorf("safefn: async handler panicked: %v", s.thrown)
	}
	return s.value, s.err
}

func (p *Pending) wait() settlement { return p.f.Wait() }
