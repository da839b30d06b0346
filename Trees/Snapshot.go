package Trees

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Snapshot is an immutable copy of a forest taken when an event was emitted,
// together with the tags of that event. It stays valid after the callback
// that received it returns.
type Snapshot[K cmp.Ordered] struct {
	trees []tree[idx] // ordered by id.
	nodes []info[K, idx]
	tags  overlay[idx]
}

// TreeView is a read-only view of one tree of a Snapshot.
type TreeView[K cmp.Ordered] struct {
	s *Snapshot[K]
	t tree[idx]
}

// NodeView is a read-only view of one node of a Snapshot. The zero NodeView
// stands for an absent node.
type NodeView[K cmp.Ordered] struct {
	s *Snapshot[K]
	i idx
}

// Len returns the number of trees.
func (s *Snapshot[K]) Len() int {
	return len(s.trees)
}

// IDs returns the tree ids in increasing order.
func (s *Snapshot[K]) IDs() []int {
	ids := make([]int, len(s.trees))
	for i, t := range s.trees {
		ids[i] = t.id
	}
	return ids
}

// Tree returns the tree with the given id.
func (s *Snapshot[K]) Tree(id int) (TreeView[K], bool) {
	i, ok := slices.BinarySearchFunc(s.trees, id, func(t tree[idx], id int) int {
		return cmp.Compare(t.id, id)
	})
	if !ok {
		return TreeView[K]{}, false
	}
	return TreeView[K]{s, s.trees[i]}, true
}

// Trees returns every tree in id order.
func (s *Snapshot[K]) Trees() []TreeView[K] {
	vs := make([]TreeView[K], len(s.trees))
	for i, t := range s.trees {
		vs[i] = TreeView[K]{s, t}
	}
	return vs
}

// Tagged returns the number of nodes carrying a tag other than TagRegular.
func (s *Snapshot[K]) Tagged() int {
	return len(s.tags)
}

// String dumps every tree as "id: (v left right)", with "-" for an absent
// child and "|" between the halves of a split pair.
func (s *Snapshot[K]) String() string {
	var b strings.Builder
	for i, t := range s.Trees() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

func (s *Snapshot[K]) node(i idx) NodeView[K] {
	if i == 0 {
		return NodeView[K]{}
	}
	return NodeView[K]{s, i}
}

// ID of the tree.
func (t TreeView[K]) ID() int {
	return t.t.id
}

// Empty reports whether the tree holds no keys.
func (t TreeView[K]) Empty() bool {
	return t.t.root == 0 && t.t.right == 0
}

// Root returns the root of the tree. While the tree is a pair, it returns the
// root of the left half.
func (t TreeView[K]) Root() NodeView[K] {
	return t.s.node(t.t.root)
}

// Halves returns the two halves of a tree that is being split or merged; ok is
// false when the tree is a single tree. A renderer should draw the halves side
// by side as one picture.
func (t TreeView[K]) Halves() (left, right NodeView[K], ok bool) {
	if !t.t.pair {
		return NodeView[K]{}, NodeView[K]{}, false
	}
	return t.s.node(t.t.root), t.s.node(t.t.right), true
}

// Keys returns the keys in order, left half first for a pair.
func (t TreeView[K]) Keys() []K {
	var ks []K
	for _, r := range [2]idx{t.t.root, t.t.right} {
		ks = t.s.appendKeys(ks, r)
	}
	return ks
}

func (s *Snapshot[K]) appendKeys(ks []K, i idx) []K {
	if i == 0 {
		return ks
	}
	ks = s.appendKeys(ks, s.nodes[i].l)
	ks = append(ks, s.nodes[i].v)
	return s.appendKeys(ks, s.nodes[i].r)
}

func (t TreeView[K]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d: ", t.t.id)
	if l, r, ok := t.Halves(); ok {
		l.dump(&b)
		b.WriteString(" | ")
		r.dump(&b)
	} else {
		t.Root().dump(&b)
	}
	return b.String()
}

// Valid reports whether n refers to a node.
func (n NodeView[K]) Valid() bool {
	return n.s != nil
}

func (n NodeView[K]) Value() K {
	return n.s.nodes[n.i].v
}

// Min is the smallest key of the subtree rooted at n.
func (n NodeView[K]) Min() K {
	return n.s.nodes[n.i].min
}

// Max is the largest key of the subtree rooted at n.
func (n NodeView[K]) Max() K {
	return n.s.nodes[n.i].max
}

func (n NodeView[K]) Left() NodeView[K] {
	return n.s.node(n.s.nodes[n.i].l)
}

func (n NodeView[K]) Right() NodeView[K] {
	return n.s.node(n.s.nodes[n.i].r)
}

// Tag is the display role of n in the event the snapshot belongs to.
func (n NodeView[K]) Tag() Tag {
	return n.s.tags[n.i]
}

func (n NodeView[K]) dump(b *strings.Builder) {
	if !n.Valid() {
		b.WriteByte('-')
		return
	}
	fmt.Fprintf(b, "(%v", n.Value())
	if t := n.Tag(); t != TagRegular {
		fmt.Fprintf(b, "[%v]", t)
	}
	if l, r := n.Left(), n.Right(); l.Valid() || r.Valid() {
		b.WriteByte(' ')
		l.dump(b)
		b.WriteByte(' ')
		r.dump(b)
	}
	b.WriteByte(')')
}

func (u *Forest[K]) snapshot() *Snapshot[K] {
	s := &Snapshot[K]{
		trees: make([]tree[idx], 0, u.trees.Len()),
		nodes: slices.Clone(u.ifs),
		tags:  maps.Clone(u.tags),
	}
	u.trees.Ascend(func(t *tree[idx]) bool {
		s.trees = append(s.trees, *t)
		return true
	})
	return s
}
