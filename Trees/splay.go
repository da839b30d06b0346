package Trees

import "cmp"

// splay rotates v up until it is the root of its piece, whose root slot is
// top. top is the tree's root for a single tree and the left half's root while
// a pair is merged, so v never rises above the half it belongs to.
// Time: amortized O(log n)
func (u *Forest[K]) splay(v idx, top *idx) {
	u.tags.reset()
	u.tags.mark(v, TagSplayVertex)
	u.emit(SplayPerforming)

	for p := u.ifs[v].p; p != 0; p = u.ifs[v].p {
		g, fromLeft := u.ifs[p].p, u.ifs[p].l == v
		switch {
		case g == 0:
			u.zig(v, top, fromLeft)
		case fromLeft == (u.ifs[g].l == p):
			u.zigZig(v, top, fromLeft)
		default:
			u.zigZag(v, top, fromLeft)
		}
	}

	u.tags.reset()
	u.tags.mark(v, TagSplayVertex)
	u.emit(SplayPerforming)
	u.tags.reset()
}

// label tags the focus x, its parent and grandparent, and the four subtrees
// of the rotation case.
func (u *Forest[K]) label(x, a, b, c, d idx) {
	u.tags.reset()
	p := u.ifs[x].p
	u.tags.mark(x, TagXVertex)
	u.tags.mark(p, TagPVertex)
	u.tags.mark(u.ifs[p].p, TagGVertex)
	u.tags.mark(a, TagASubtree)
	u.tags.mark(b, TagBSubtree)
	u.tags.mark(c, TagCSubtree)
	u.tags.mark(d, TagDSubtree)
}

// rotateUp rotates x above its parent.
func (u *Forest[K]) rotateUp(x idx, top *idx) {
	if p := u.ifs[x].p; u.ifs[p].l == x {
		u.rotateRight(p, top)
	} else {
		u.rotateLeft(p, top)
	}
}

// zig handles a focus x whose parent is the root.
func (u *Forest[K]) zig(x idx, top *idx, fromLeft bool) {
	n, p := u.ifs[x], u.ifs[u.ifs[x].p]
	if fromLeft {
		u.label(x, n.l, n.r, p.r, 0)
	} else {
		u.label(x, p.l, n.l, n.r, 0)
	}
	u.emit(ZigPerforming)
	u.rotateUp(x, top)
	u.emit(ZigDone)
}

// zigZig handles a focus x on the same side of its parent as the parent is of
// the grandparent: the grandparent rotates first, then the parent.
func (u *Forest[K]) zigZig(x idx, top *idx, fromLeft bool) {
	n := u.ifs[x]
	p := u.ifs[n.p]
	g := u.ifs[p.p]
	if fromLeft {
		u.label(x, n.l, n.r, p.r, g.r)
	} else {
		u.label(x, g.l, p.l, n.l, n.r)
	}
	u.emit(ZigZigPerforming)
	u.rotateUp(n.p, top)
	u.emit(ZigZigPerforming)
	u.rotateUp(x, top)
	u.emit(ZigZigDone)
}

// zigZag handles a focus x on the opposite side of its parent than the parent
// is of the grandparent: x rotates up twice.
func (u *Forest[K]) zigZag(x idx, top *idx, fromLeft bool) {
	n := u.ifs[x]
	p := u.ifs[n.p]
	g := u.ifs[p.p]
	if fromLeft {
		u.label(x, g.l, n.l, n.r, p.r)
	} else {
		u.label(x, p.l, n.l, n.r, g.r)
	}
	u.emit(ZigZagPerforming)
	u.rotateUp(x, top)
	u.emit(ZigZagPerforming)
	u.rotateUp(x, top)
	u.emit(ZigZagDone)
}

// find descends from v towards key and splays the node it stops at: the node
// holding key, or the last node visited when key is absent. The caller must
// compare the returned node's key. Every visited node stays tagged TagOnPath
// until the splay starts.
// Time: amortized O(log n)
func (u *Forest[K]) find(v idx, key K, top *idx) idx {
	for v != 0 {
		n := u.ifs[v]
		c := cmp.Compare(key, n.v)
		switch {
		case c == 0:
			u.tags.mark(v, TagFound)
			u.emit(Found)
			u.splay(v, top)
			return v
		case c < 0 && n.l != 0:
			u.tags.mark(v, TagOnPath)
			u.emit(Searching)
			v = n.l
		case c > 0 && n.r != 0:
			u.tags.mark(v, TagOnPath)
			u.emit(Searching)
			v = n.r
		default:
			u.tags.mark(v, TagNotFound)
			u.emit(NotFound)
			u.splay(v, top)
			return v
		}
	}
	return 0
}
