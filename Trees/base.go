package Trees

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// info is one node of the arena.
// The zero value is the nil sentinel stored at index 0.
type info[K cmp.Ordered, S constraints.Unsigned] struct {
	v, min, max K // min and max are the extremes of the subtree rooted here.
	p, l, r     S // 0 means no parent/child.
}

// base is an arena of nodes addressed by index. Several independent trees
// can live in one arena; a tree is identified by the index of its root.
type base[K cmp.Ordered, S constraints.Unsigned] struct {
	ifs  []info[K, S] // ifs[0] is the nil sentinel.
	free S            // free is the beginning of the linked list of released indexes, chained through info.l.
	used S            // number of live nodes.
}

func makeBase[K cmp.Ordered, S constraints.Unsigned](hint S) base[K, S] {
	return base[K, S]{ifs: make([]info[K, S], 1, uint(hint)+1)}
}

// alloc a node holding v, reusing a released index when there is one.
// Time: amortized O(1)
func (u *base[K, S]) alloc(v K) S {
	i := u.free
	if i != 0 {
		u.free = u.ifs[i].l
	} else {
		i = S(len(u.ifs))
		u.ifs = append(u.ifs, info[K, S]{})
	}
	u.ifs[i] = info[K, S]{v: v, min: v, max: v}
	u.used++
	return i
}

// release index i. The node must already be unlinked.
func (u *base[K, S]) release(i S) {
	u.ifs[i] = info[K, S]{l: u.free}
	u.free = i
	u.used--
}

// destroy releases every node of the subtree rooted at i. Recursive.
func (u *base[K, S]) destroy(i S) {
	if i == 0 {
		return
	}
	l, r := u.ifs[i].l, u.ifs[i].r
	u.destroy(l)
	u.destroy(r)
	u.release(i)
}

// update recomputes the aggregates of i from its children.
// Time: O(1)
func (u *base[K, S]) update(i S) {
	if i == 0 {
		return
	}
	n := &u.ifs[i]
	n.min, n.max = n.v, n.v
	if n.l != 0 {
		n.min = min(n.min, u.ifs[n.l].min)
	}
	if n.r != 0 {
		n.max = max(n.max, u.ifs[n.r].max)
	}
}

// setLeft makes c the left child of i, fixing c's parent link.
func (u *base[K, S]) setLeft(i, c S) {
	u.ifs[i].l = c
	if c != 0 {
		u.ifs[c].p = i
	}
}

// setRight makes c the right child of i, fixing c's parent link.
func (u *base[K, S]) setRight(i, c S) {
	u.ifs[i].r = c
	if c != 0 {
		u.ifs[c].p = i
	}
}

// cutLeft detaches and returns the left subtree of i.
func (u *base[K, S]) cutLeft(i S) S {
	c := u.ifs[i].l
	u.ifs[i].l = 0
	if c != 0 {
		u.ifs[c].p = 0
	}
	return c
}

// cutRight detaches and returns the right subtree of i.
func (u *base[K, S]) cutRight(i S) S {
	c := u.ifs[i].r
	u.ifs[i].r = 0
	if c != 0 {
		u.ifs[c].p = 0
	}
	return c
}

// relink replaces child old of p by n. When p is 0, old was a root and the
// root slot top is rewritten instead.
func (u *base[K, S]) relink(p, old, n S, top *S) {
	switch {
	case p == 0:
		*top = n
	case u.ifs[p].l == old:
		u.ifs[p].l = n
	case u.ifs[p].r == old:
		u.ifs[p].r = n
	default:
		panic("corrupt splay tree")
	}
}

// rotateLeft rotates the subtree rooted at v,
// turning (v a (r b c)) into (r (v a b) c).
// Time: O(1); Space: O(1)
func (u *base[K, S]) rotateLeft(v S, top *S) {
	p, r := u.ifs[v].p, u.ifs[v].r
	u.setRight(v, u.ifs[r].l)
	u.ifs[r].l, u.ifs[v].p = v, r
	u.ifs[r].p = p
	u.relink(p, v, r, top)
	u.update(v)
	u.update(r)
	u.update(p)
}

// rotateRight rotates the subtree rooted at v,
// turning (v (l a b) c) into (l a (v b c)).
// Time: O(1); Space: O(1)
func (u *base[K, S]) rotateRight(v S, top *S) {
	p, l := u.ifs[v].p, u.ifs[v].l
	u.setLeft(v, u.ifs[l].r)
	u.ifs[l].r, u.ifs[v].p = v, l
	u.ifs[l].p = p
	u.relink(p, v, l, top)
	u.update(v)
	u.update(l)
	u.update(p)
}

// inOrder calls f on every index of the subtree rooted at i in key order,
// stopping early when f returns false. Recursive.
func (u *base[K, S]) inOrder(i S, f func(S) bool) bool {
	if i == 0 {
		return true
	}
	return u.inOrder(u.ifs[i].l, f) && f(i) && u.inOrder(u.ifs[i].r, f)
}

// corrupt reports whether the subtree rooted at i, whose parent should be p,
// breaks ordering, aggregate or parent-link invariants. Recursive.
func (u *base[K, S]) corrupt(i, p S) bool {
	if i == 0 {
		return false
	}
	n := u.ifs[i]
	if n.p != p || u.corrupt(n.l, i) || u.corrupt(n.r, i) {
		return true
	}
	lo, hi := n.v, n.v
	if n.l != 0 {
		if u.ifs[n.l].max >= n.v {
			return true
		}
		lo = u.ifs[n.l].min
	}
	if n.r != 0 {
		if u.ifs[n.r].min <= n.v {
			return true
		}
		hi = u.ifs[n.r].max
	}
	return n.min != lo || n.max != hi
}
