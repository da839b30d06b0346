package Trees

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/g-m-twostay/splay-forest/Queues"
)

// QueryKind selects the forest operation a Query runs.
type QueryKind uint8

const (
	QueryInsert QueryKind = iota
	QueryRemove
	QueryFind
	QuerySplit
	QueryMerge
	QueryDeleteTree
)

var queryNames = [...]string{"insert", "remove", "find", "split", "merge", "delete"}

func (k QueryKind) String() string {
	if int(k) < len(queryNames) {
		return queryNames[k]
	}
	return fmt.Sprintf("QueryKind(%d)", uint8(k))
}

// Query is one request from a presentation layer. ID is the target tree, or
// the left tree of a merge; Other is the right tree of a merge. Key is unused
// by merges and tree deletions.
type Query[K cmp.Ordered] struct {
	Kind  QueryKind
	ID    int
	Other int
	Key   K
}

// UnknownQueryError is returned for a Query whose Kind is not defined.
type UnknownQueryError struct {
	Kind QueryKind
}

func (e *UnknownQueryError) Error() string {
	return fmt.Sprintf("unknown query kind %d", uint8(e.Kind))
}

// Controller serialises queries against a Forest. Queries submitted while
// another one runs, typically by a subscriber reacting to an event, are queued
// and run in order once the running one returns.
type Controller[K cmp.Ordered] struct {
	f    *Forest[K]
	q    Queues.ArrayQueue[Query[K]]
	busy bool
}

func NewController[K cmp.Ordered](f *Forest[K]) *Controller[K] {
	return &Controller[K]{f: f, q: Queues.MakeArrayQueue[Query[K]](4)}
}

// Forest returns the controlled forest.
func (u *Controller[K]) Forest() *Forest[K] {
	return u.f
}

// Pending returns the number of queued queries.
func (u *Controller[K]) Pending() uint {
	return u.q.Size()
}

// Submit queues q and, unless a query is already running, runs every queued
// query. The returned error joins the precondition errors of the queries run
// by this call; advisory outcomes are only reported as events.
func (u *Controller[K]) Submit(q Query[K]) error {
	u.q.Push(q)
	if u.busy {
		return nil
	}
	u.busy = true
	defer func() { u.busy = false }()
	var errs []error
	for !u.q.Empty() {
		next, _ := u.q.Pop()
		if _, err := u.Handle(next); err != nil {
			errs = append(errs, fmt.Errorf("%v %d: %w", next.Kind, next.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Handle runs q immediately and returns its final code. It bypasses the queue,
// so it must not be called from inside a subscriber.
func (u *Controller[K]) Handle(q Query[K]) (Code, error) {
	switch q.Kind {
	case QueryInsert:
		return u.f.Insert(q.ID, q.Key)
	case QueryRemove:
		return u.f.Remove(q.ID, q.Key)
	case QueryFind:
		return u.f.ExistKey(q.ID, q.Key)
	case QuerySplit:
		c, _, err := u.f.Split(q.ID, q.Key)
		return c, err
	case QueryMerge:
		return u.f.Merge(q.ID, q.Other)
	case QueryDeleteTree:
		return u.f.DeleteTree(q.ID)
	}
	return 0, &UnknownQueryError{q.Kind}
}

func (u *Controller[K]) InsertQuery(id int, key K) error {
	return u.Submit(Query[K]{Kind: QueryInsert, ID: id, Key: key})
}

func (u *Controller[K]) RemoveQuery(id int, key K) error {
	return u.Submit(Query[K]{Kind: QueryRemove, ID: id, Key: key})
}

func (u *Controller[K]) FindQuery(id int, key K) error {
	return u.Submit(Query[K]{Kind: QueryFind, ID: id, Key: key})
}

func (u *Controller[K]) SplitQuery(id int, key K) error {
	return u.Submit(Query[K]{Kind: QuerySplit, ID: id, Key: key})
}

func (u *Controller[K]) MergeQuery(leftID, rightID int) error {
	return u.Submit(Query[K]{Kind: QueryMerge, ID: leftID, Other: rightID})
}

func (u *Controller[K]) DeleteTreeQuery(id int) error {
	return u.Submit(Query[K]{Kind: QueryDeleteTree, ID: id})
}
