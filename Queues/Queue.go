// Package Queues provides FIFO queues.
package Queues

// Queue is a first-in first-out container.
type Queue[T any] interface {
	// Push appends item at the tail.
	Push(item T)
	// Pop removes and returns the head item, or an *EmptyQueueError.
	Pop() (T, error)
	// Peek returns the head item, or the zero value when empty.
	Peek() T
	Empty() bool
}

// ArrayQueue is a Queue backed by a slice that can report its size and give
// back unused capacity. It can only be obtained from MakeArrayQueue.
type ArrayQueue[T any] interface {
	Queue[T]
	Shrink()
	Clear()
	Size() uint
	resize(newLen uint)
}

// EmptyQueueError is returned by Pop on an empty queue.
type EmptyQueueError struct {
}

func (e *EmptyQueueError) Error() string {
	return "queue is empty: cannot pop"
}
