// Package signal implements the delegate/signal/collector system of
// §3.9/§4.10. A Delegate is an erased callable; C++ distinguishes free
// functions, bound member functions, and small-buffer-optimized functors,
// but a Go func value already closes over whatever receiver or state it
// needs, so Delegate is just a func value — the erasure C++ needs manual
// machinery for is free in Go. Signal is a list of connected delegates
// with stable integer connection IDs; collectors decide how emission
// combines and short-circuits across connected delegates (§4.10).
//
// Grounded on light-std's event/delegate.h and event/signal.h for the
// connect/disconnect/emit naming and stable-ID contract, adapted to Go
// generics and closures in place of C++'s inline-functor storage.
package signal

import "sync/atomic"

// Delegate is an erased callable taking arbitrary arguments and returning R.
type Delegate[R any] func(args ...any) R

// ID is a stable connection identifier returned by Connect.
type ID int64

var idCounter int64

func nextID() ID { return ID(atomic.AddInt64(&idCounter, 1)) }

type connection[R any] struct {
	id ID
	fn Delegate[R]
}

// Signal holds an ordered list of connected delegates sharing signature R.
type Signal[R any] struct {
	conns []connection[R]
}

// New returns an empty signal.
func New[R any]() *Signal[R] { return &Signal[R]{} }

// Connect appends fn to the signal and returns a stable ID for Disconnect.
func (s *Signal[R]) Connect(fn Delegate[R]) ID {
	id := nextID()
	s.conns = append(s.conns, connection[R]{id: id, fn: fn})
	return id
}

// Disconnect removes the delegate previously returned by Connect with id.
func (s *Signal[R]) Disconnect(id ID) bool {
	for i, c := range s.conns {
		if c.id == id {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of connected delegates.
func (s *Signal[R]) Len() int { return len(s.conns) }

// EmitLast calls every connected delegate in connection order and returns
// the last delegate's result (the "last" collector).
func EmitLast[R any](s *Signal[R], args ...any) (R, bool) {
	var last R
	if len(s.conns) == 0 {
		return last, false
	}
	for _, c := range s.conns {
		last = c.fn(args...)
	}
	return last, true
}

// EmitArray calls every connected delegate and collects every result in
// connection order (the "array" collector).
func EmitArray[R any](s *Signal[R], args ...any) []R {
	out := make([]R, 0, len(s.conns))
	for _, c := range s.conns {
		out = append(out, c.fn(args...))
	}
	return out
}

// EmitUntilZero calls delegates in order, stopping as soon as one returns
// the zero value of R, and returns that final result (the "until_zero"
// collector).
func EmitUntilZero[R comparable](s *Signal[R], args ...any) R {
	var zero, last R
	for _, c := range s.conns {
		last = c.fn(args...)
		if last == zero {
			break
		}
	}
	return last
}

// EmitWhileZero calls delegates in order while they keep returning the zero
// value of R, stopping at the first non-zero result (the "while_zero"
// collector).
func EmitWhileZero[R comparable](s *Signal[R], args ...any) R {
	var zero, last R
	for _, c := range s.conns {
		last = c.fn(args...)
		if last != zero {
			break
		}
	}
	return last
}

// EmitUntil calls delegates in order, stopping as soon as one returns
// target (the "until<target>" collector).
func EmitUntil[R comparable](s *Signal[R], target R, args ...any) R {
	var last R
	for _, c := range s.conns {
		last = c.fn(args...)
		if last == target {
			break
		}
	}
	return last
}
