// Package Observers implements a synchronous single-slot publish/subscribe
// channel.
package Observers

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Handle identifies one subscription. The zero Handle is never issued.
type Handle uint64

// Broadcaster holds the most recent message of type T and hands every new
// message to its subscribers, synchronously and in subscription order.
//
// Subscribers may call Subscribe and Unsubscribe on the same Broadcaster
// from inside a callback, including unsubscribing themselves. A broadcast
// works on the subscriber list as it was when the broadcast started:
// subscribers added meanwhile are not called for it (they were already
// replayed the message), subscribers removed meanwhile are skipped if they
// have not been reached yet.
//
// Broadcaster is not safe for concurrent use.
type Broadcaster[T any] struct {
	msg  T
	subs *linkedhashmap.Map // Handle -> func(T), kept in insertion order.
	last Handle
}

// New returns a Broadcaster whose current message is initial.
func New[T any](initial T) *Broadcaster[T] {
	return &Broadcaster[T]{msg: initial, subs: linkedhashmap.New()}
}

// Subscribe adds fn and immediately replays the current message to it.
func (u *Broadcaster[T]) Subscribe(fn func(T)) Handle {
	u.last++
	h := u.last
	u.subs.Put(h, fn)
	fn(u.msg)
	return h
}

// Unsubscribe removes the subscriber h. It reports whether h was subscribed;
// calling it again is harmless.
func (u *Broadcaster[T]) Unsubscribe(h Handle) bool {
	if _, ok := u.subs.Get(h); !ok {
		return false
	}
	u.subs.Remove(h)
	return true
}

// Set stores msg and notifies every subscriber.
func (u *Broadcaster[T]) Set(msg T) {
	u.msg = msg
	if u.subs.Empty() {
		return
	}
	for _, h := range u.subs.Keys() { // Keys returns a fresh slice.
		if fn, ok := u.subs.Get(h); ok {
			fn.(func(T))(msg)
		}
	}
}

// Current returns the most recent message.
func (u *Broadcaster[T]) Current() T {
	return u.msg
}

// Len returns the number of subscribers.
func (u *Broadcaster[T]) Len() int {
	return u.subs.Size()
}

// Clear drops every subscriber.
func (u *Broadcaster[T]) Clear() {
	u.subs.Clear()
}
