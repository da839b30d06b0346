package Queues

// circArrQ is a FIFO queue stored in a circular slice. head is the index of
// the first item, the items occupy sz slots from there, wrapping around.
type circArrQ[T any] struct {
	sz, head uint
	content  []T
}

// MakeArrayQueue returns an empty queue with room for initCap items.
// It grows by half when full.
func MakeArrayQueue[T any](initCap uint) ArrayQueue[T] {
	return &circArrQ[T]{content: make([]T, initCap)}
}

func (u *circArrQ[T]) Empty() bool {
	return u.sz == 0
}

// resize moves the items to a new slice of length newLen >= sz, unwrapping them
// so that head becomes 0.
// Time: O(sz)
func (u *circArrQ[T]) resize(newLen uint) {
	nc := make([]T, newLen)
	if end := u.head + u.sz; end <= uint(len(u.content)) {
		copy(nc, u.content[u.head:end])
	} else {
		n := copy(nc, u.content[u.head:])
		copy(nc[n:], u.content[:end-uint(len(u.content))])
	}
	u.content, u.head = nc, 0
}

// Shrink releases the unused capacity.
func (u *circArrQ[T]) Shrink() {
	u.resize(u.sz)
}

// Clear drops every item, keeping the capacity.
func (u *circArrQ[T]) Clear() {
	clear(u.content)
	u.head, u.sz = 0, 0
}

func (u *circArrQ[T]) Size() uint {
	return u.sz
}

// Push appends item at the tail.
// Time: amortized O(1)
func (u *circArrQ[T]) Push(item T) {
	if u.sz == uint(len(u.content)) {
		u.resize(max(u.sz*3/2, u.sz+4))
	}
	u.content[(u.head+u.sz)%uint(len(u.content))] = item
	u.sz++
}

// Pop removes the head item. It returns an *EmptyQueueError if the queue is
// empty.
// Time: O(1)
func (u *circArrQ[T]) Pop() (item T, e error) {
	if u.Empty() {
		return item, &EmptyQueueError{}
	}
	item = u.content[u.head]
	u.content[u.head] = *new(T)
	u.head = (u.head + 1) % uint(len(u.content))
	u.sz--
	return item, nil
}

// Peek returns the head item without removing it, or the zero value if the
// queue is empty.
func (u *circArrQ[T]) Peek() (item T) {
	if u.Empty() {
		return
	}
	return u.content[u.head]
}
