package Trees

// split turns the non-empty tree t into a pair: keys lower than key on the
// left, higher on the right. A node holding key is freed and belongs to
// neither half. It reports whether such a node existed.
func (u *Forest[K]) split(t *tree[idx], key K) (exact bool) {
	u.tags.reset()
	u.emit(SplitPerforming)
	v := u.find(t.root, key, &t.root)
	u.emit(SplitPerforming)

	var l, r idx
	switch n := u.ifs[v]; {
	case n.v == key:
		u.tags.mark(v, TagHideThis)
		u.emit(SplitPerforming)
		l, r = u.cutLeft(v), u.cutRight(v)
		u.release(v)
		exact = true
	case n.v < key:
		u.tags.mark(v, TagSplitRight)
		u.emit(SplitPerforming)
		l, r = v, u.cutRight(v)
		u.update(v)
	default:
		u.tags.mark(v, TagSplitLeft)
		u.emit(SplitPerforming)
		l, r = u.cutLeft(v), v
		u.update(v)
	}
	u.tags.reset()
	t.root, t.right, t.pair = l, r, true
	return exact
}

// insert adds a node holding key on top of t, built over the two halves of a
// split at key. A node that already held key is dropped by the split and
// replaced; insert reports whether that happened.
func (u *Forest[K]) insert(t *tree[idx], key K) (existed bool) {
	if t.root != 0 {
		existed = u.split(t, key)
	}
	v := u.alloc(key)
	u.setLeft(v, t.root)
	u.setRight(v, t.right)
	u.update(v)
	t.root, t.right, t.pair = v, 0, false
	u.tags.reset()
	u.tags.mark(v, TagInserted)
	return existed
}

// merge joins the pair t back into a single tree. Every key of the left half
// must be lower than every key of the right half. The maximum of the left half
// is splayed to the top of that half and adopts the right half as its right
// child.
// Time: amortized O(log n)
func (u *Forest[K]) merge(t *tree[idx]) {
	u.tags.reset()
	u.emit(MergePerforming)
	l, r := t.root, t.right
	if l == 0 {
		t.root, t.right, t.pair = r, 0, false
		return
	}
	for u.ifs[l].r != 0 {
		u.tags.mark(l, TagOnPath)
		u.emit(SpineSearching)
		l = u.ifs[l].r
	}
	u.tags.mark(l, TagFound)
	u.emit(SpineFound)
	u.splay(l, &t.root)
	u.setRight(l, r)
	u.update(l)
	t.root, t.right, t.pair = l, 0, false
}

// remove deletes key from t by splaying it to the root and merging its two
// subtrees. It reports whether key was present.
func (u *Forest[K]) remove(t *tree[idx], key K) (removed bool) {
	v := u.find(t.root, key, &t.root)
	if v == 0 {
		return false
	}
	u.tags.reset()
	if u.ifs[v].v != key {
		u.tags.mark(v, TagDontRemove)
		u.emit(RemoveWontExecute)
		return false
	}
	u.tags.mark(v, TagDoRemove)
	u.emit(RemoveWillExecute)
	l, r := u.cutLeft(v), u.cutRight(v)
	u.release(v)
	t.root, t.right, t.pair = l, r, true
	u.merge(t)
	return true
}
