package Trees

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"

	"github.com/g-m-twostay/splay-forest/Observers"
	"github.com/google/btree"
)

// idx is the arena index width used by Forest.
type idx = uint32

// tree is one entry of the forest registry. Outside of a public operation it
// is always a single tree rooted at root. While a split or merge is in
// progress it is a pair: root is the left half, right the right half, and the
// renderer shows both under one id.
type tree[S comparable] struct {
	id    int
	root  S
	right S
	pair  bool
}

// Event is the message broadcast after every step of an operation.
type Event[K cmp.Ordered] struct {
	Code   Code
	Forest *Snapshot[K]
}

// UnknownTreeError is returned when an operation names a tree id that is not in
// the forest. Nothing is mutated or emitted in that case.
type UnknownTreeError struct {
	ID int
}

func (e *UnknownTreeError) Error() string {
	return fmt.Sprintf("no tree with id %d", e.ID)
}

type config struct {
	log  *slog.Logger
	hint idx
}

// Option configures a Forest.
type Option func(*config)

// WithLogger sets the logger receiving one debug record per operation.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

// WithCapacity preallocates room for n nodes.
func WithCapacity(n uint32) Option {
	return func(c *config) {
		c.hint = n
	}
}

// Forest is a collection of splay trees addressed by integer ids. Every
// operation reports its intermediate steps and its outcome as Events to the
// subscribers, synchronously. A Forest always holds at least one tree.
//
// Forest is not safe for concurrent use, and subscribers must not call its
// mutating methods from inside a callback; use a Controller for that.
type Forest[K cmp.Ordered] struct {
	base[K, idx]
	trees  *btree.BTreeG[*tree[idx]]
	nextID int
	tags   overlay[idx]
	port   *Observers.Broadcaster[Event[K]]
	stale  bool // the last emission had no subscribers and skipped its snapshot.
	last   Code
	log    *slog.Logger
}

// New returns a forest holding a single empty tree with id 0.
func New[K cmp.Ordered](opts ...Option) *Forest[K] {
	c := config{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, o := range opts {
		o(&c)
	}
	u := &Forest[K]{
		base:  makeBase[K](c.hint),
		trees: btree.NewG(2, func(a, b *tree[idx]) bool { return a.id < b.id }),
		tags:  make(overlay[idx]),
		log:   c.log,
	}
	u.add(0)
	u.port = Observers.New(Event[K]{OK, u.snapshot()})
	return u
}

func (u *Forest[K]) add(root idx) *tree[idx] {
	t := &tree[idx]{id: u.nextID, root: root}
	u.nextID++
	u.trees.ReplaceOrInsert(t)
	return t
}

func (u *Forest[K]) lookup(id int) (*tree[idx], error) {
	t, ok := u.trees.Get(&tree[idx]{id: id})
	if !ok {
		u.log.Warn("unknown tree", "tree", id)
		return nil, &UnknownTreeError{id}
	}
	return t, nil
}

// emit broadcasts code with a snapshot of the current state and tags.
func (u *Forest[K]) emit(code Code) {
	u.last = code
	if u.port.Len() == 0 {
		u.stale = true
		return
	}
	u.stale = false
	u.port.Set(Event[K]{code, u.snapshot()})
}

// finish ends a public operation: tags never outlive it.
func (u *Forest[K]) finish(op string, id int, code Code, args ...any) {
	u.tags.reset()
	u.log.Debug(op, append([]any{"tree", id, "code", code}, args...)...)
}

// refresh builds the snapshot skipped by the last emission, if any.
func (u *Forest[K]) refresh() {
	if u.stale {
		u.stale = false
		u.port.Set(Event[K]{u.last, u.snapshot()})
	}
}

// Subscribe registers fn and immediately passes it the latest event.
//
// While anyone is subscribed every event copies the whole arena, freed slots
// included, so each step costs O(arena size): a lookup down a chain of depth
// d in a forest of n slots costs O(d*n). Without subscribers no copy is made.
func (u *Forest[K]) Subscribe(fn func(Event[K])) Observers.Handle {
	u.refresh()
	return u.port.Subscribe(fn)
}

// Last returns the most recent event. Without subscribers its snapshot is
// built on demand, once.
func (u *Forest[K]) Last() Event[K] {
	u.refresh()
	return u.port.Current()
}

// Unsubscribe removes a subscriber. It is safe to call more than once and from
// inside the subscriber's own callback.
func (u *Forest[K]) Unsubscribe(h Observers.Handle) bool {
	return u.port.Unsubscribe(h)
}

// Snapshot returns the current state of the forest.
func (u *Forest[K]) Snapshot() *Snapshot[K] {
	return u.snapshot()
}

// Len returns the number of trees.
func (u *Forest[K]) Len() int {
	return u.trees.Len()
}

// Size returns the number of keys in all trees.
func (u *Forest[K]) Size() int {
	return int(u.used)
}

// Has reports whether id names a tree of the forest.
func (u *Forest[K]) Has(id int) bool {
	return u.trees.Has(&tree[idx]{id: id})
}

// IDs returns the tree ids in increasing order.
func (u *Forest[K]) IDs() []int {
	ids := make([]int, 0, u.trees.Len())
	u.trees.Ascend(func(t *tree[idx]) bool {
		ids = append(ids, t.id)
		return true
	})
	return ids
}

// Keys returns the keys of tree id in order. It neither splays nor emits.
func (u *Forest[K]) Keys(id int) ([]K, error) {
	t, err := u.lookup(id)
	if err != nil {
		return nil, err
	}
	var ks []K
	u.inOrder(t.root, func(i idx) bool {
		ks = append(ks, u.ifs[i].v)
		return true
	})
	return ks, nil
}

// Insert adds key to tree id. It reports InsertError if key was already
// present.
// Time: amortized O(log n)
func (u *Forest[K]) Insert(id int, key K) (Code, error) {
	t, err := u.lookup(id)
	if err != nil {
		return 0, err
	}
	code := OK
	if u.insert(t, key) {
		code = InsertError
	}
	u.emit(InsertionDone)
	u.tags.reset()
	u.emit(code)
	u.finish("insert", id, code, "key", key)
	return code, nil
}

// Remove deletes key from tree id. It reports RemoveError if key is absent.
// Time: amortized O(log n)
func (u *Forest[K]) Remove(id int, key K) (Code, error) {
	t, err := u.lookup(id)
	if err != nil {
		return 0, err
	}
	code := OK
	if !u.remove(t, key) {
		code = RemoveError
		u.tags.reset()
	} else if t.root != 0 {
		u.tags.reset()
		u.tags.mark(t.root, TagNewRoot)
		u.emit(NewRootAssigned)
		u.tags.reset()
	}
	u.emit(code)
	u.finish("remove", id, code, "key", key)
	return code, nil
}

// ExistKey looks key up in tree id, splaying the last visited node to the
// root, and reports Found or NotFound.
// Time: amortized O(log n)
func (u *Forest[K]) ExistKey(id int, key K) (Code, error) {
	t, err := u.lookup(id)
	if err != nil {
		return 0, err
	}
	code := NotFound
	if v := u.find(t.root, key, &t.root); v != 0 && u.ifs[v].v == key {
		code = Found
	}
	u.tags.reset()
	u.emit(code)
	u.finish("find", id, code, "key", key)
	return code, nil
}

// Split cuts tree id at key. Keys lower than key stay under id, higher keys
// move to a new tree whose id is returned. A key equal to key is dropped.
// Time: amortized O(log n)
func (u *Forest[K]) Split(id int, key K) (code Code, newID int, err error) {
	t, err := u.lookup(id)
	if err != nil {
		return 0, 0, err
	}
	if t.root == 0 {
		u.emit(SplitErrorEmpty)
		u.finish("split", id, SplitErrorEmpty, "key", key)
		return SplitErrorEmpty, 0, nil
	}
	u.split(t, key)
	u.tags.reset()
	u.emit(SplitSucceeded)
	r := t.right
	t.right, t.pair = 0, false
	newID = u.add(r).id
	u.emit(OK)
	u.finish("split", id, OK, "key", key, "new", newID)
	return OK, newID, nil
}

// Merge appends tree rightID to tree leftID and drops rightID. Every key of
// the left tree must be lower than every key of the right tree.
// Time: amortized O(log n)
func (u *Forest[K]) Merge(leftID, rightID int) (Code, error) {
	lt, err := u.lookup(leftID)
	if err != nil {
		return 0, err
	}
	rt, err := u.lookup(rightID)
	if err != nil {
		return 0, err
	}
	code := OK
	switch {
	case leftID == rightID:
		code = MergeErrorEqualIds
	case lt.root == 0 || rt.root == 0:
		code = MergeErrorEmpty
	case u.ifs[lt.root].max >= u.ifs[rt.root].min:
		code = MergeErrorOrder
	}
	if code != OK {
		u.emit(code)
		u.finish("merge", leftID, code, "right", rightID)
		return code, nil
	}
	u.trees.Delete(rt)
	lt.right, lt.pair = rt.root, true
	u.merge(lt)
	u.tags.reset()
	u.tags.mark(lt.root, TagNewRoot)
	u.emit(NewRootAssigned)
	u.tags.reset()
	u.emit(OK)
	u.finish("merge", leftID, OK, "right", rightID)
	return OK, nil
}

// DeleteTree drops tree id and all its keys. The last tree of a forest cannot
// be deleted.
func (u *Forest[K]) DeleteTree(id int) (Code, error) {
	t, err := u.lookup(id)
	if err != nil {
		return 0, err
	}
	code := SuccessfulDelete
	if u.trees.Len() == 1 {
		code = UnsuccessfulDelete
	} else {
		u.trees.Delete(t)
		u.destroy(t.root)
	}
	u.emit(code)
	u.finish("delete", id, code)
	return code, nil
}

// Clear frees every tree and leaves a single empty tree with a fresh id.
func (u *Forest[K]) Clear() {
	u.trees.Ascend(func(t *tree[idx]) bool {
		u.destroy(t.root)
		return true
	})
	u.trees.Clear(false)
	id := u.add(0).id
	u.emit(OK)
	u.finish("clear", id, OK)
}

// Corrupt reports whether the forest breaks one of its invariants: key order,
// subtree min/max, parent links, a tree left split in two, tags left behind
// by an operation, or an empty forest.
func (u *Forest[K]) Corrupt() bool {
	if u.trees.Len() == 0 || len(u.tags) != 0 {
		return true
	}
	bad := false
	u.trees.Ascend(func(t *tree[idx]) bool {
		bad = t.pair || t.right != 0 || u.corrupt(t.root, 0)
		return !bad
	})
	return bad
}
