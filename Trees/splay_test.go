package Trees

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func rootOf(f *Forest[int], id int) int {
	t, _ := f.lookup(id)
	return f.ifs[t.root].v
}

func count(codes []Code, c Code) (n int) {
	for _, x := range codes {
		if x == c {
			n++
		}
	}
	return
}

func TestZig(t *testing.T) {
	f := New[int]()
	plant(f, 0, 3, 5)
	r := record(f)
	c, err := f.ExistKey(0, 5)
	mustCode(t, c, err, Found)
	want := []Code{Searching, Found, SplayPerforming, ZigPerforming, ZigDone, SplayPerforming, Found}
	if diff := cmp.Diff(want, r.codes); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	if root := rootOf(f, 0); root != 5 {
		t.Errorf("root is %d, want 5", root)
	}
	s := r.events[3].Forest
	tv, _ := s.Tree(0)
	if x, p := tv.Root().Right(), tv.Root(); x.Tag() != TagXVertex || p.Tag() != TagPVertex {
		t.Errorf("zig tags are x=%v p=%v, want XVertex PVertex", x.Tag(), p.Tag())
	}
	checkForest(t, f)
}

func TestZigZig(t *testing.T) {
	f := New[int]()
	plant(f, 0, 5, 4, 3, 2, 1, 0)
	r := record(f)
	c, err := f.ExistKey(0, 1)
	mustCode(t, c, err, Found)
	if n := count(r.codes, ZigZigDone); n != 2 {
		t.Errorf("%d zig-zigs, want 2", n)
	}
	if n := count(r.codes, ZigZigPerforming); n != 4 {
		t.Errorf("%d zig-zig steps, want 4", n)
	}
	if n := count(r.codes, Searching); n != 4 {
		t.Errorf("%d search steps, want 4", n)
	}
	if root := rootOf(f, 0); root != 1 {
		t.Errorf("root is %d, want 1", root)
	}
	// The first zig-zig labels x=1, p=2, g=3 and A=0; g has no right subtree.
	var first *Snapshot[int]
	for _, e := range r.events {
		if e.Code == ZigZigPerforming {
			first = e.Forest
			break
		}
	}
	tags := map[int]Tag{}
	tv, _ := first.Tree(0)
	var walk func(NodeView[int])
	walk = func(n NodeView[int]) {
		if !n.Valid() {
			return
		}
		tags[n.Value()] = n.Tag()
		walk(n.Left())
		walk(n.Right())
	}
	walk(tv.Root())
	want := map[int]Tag{0: TagASubtree, 1: TagXVertex, 2: TagPVertex, 3: TagGVertex, 4: TagRegular, 5: TagRegular}
	if diff := cmp.Diff(want, tags); diff != "" {
		t.Errorf("zig-zig tags (-want +got):\n%s", diff)
	}
	checkForest(t, f)
}

func TestZigZag(t *testing.T) {
	f := New[int]()
	plant(f, 0, 5, 1, 3, 2, 4)
	r := record(f)
	c, err := f.ExistKey(0, 3)
	mustCode(t, c, err, Found)
	want := []Code{
		Searching, Searching, Found,
		SplayPerforming, ZigZagPerforming, ZigZagPerforming, ZigZagDone, SplayPerforming,
		Found,
	}
	if diff := cmp.Diff(want, r.codes); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	s := f.Snapshot()
	tv, _ := s.Tree(0)
	if got := tv.String(); got != "0: (3 (1 - (2)) (5 (4) -))" {
		t.Errorf("tree after zig-zag is %q", got)
	}
	checkForest(t, f)
}

func TestSearchPathAccumulates(t *testing.T) {
	f := New[int]()
	plant(f, 0, 8, 4, 2, 1)
	r := record(f)
	f.ExistKey(0, 1)
	var last *Snapshot[int]
	for _, e := range r.events {
		if e.Code == Found {
			last = e.Forest
			break
		}
	}
	if last == nil {
		t.Fatalf("no Found event in %v", r.codes)
	}
	if n := last.Tagged(); n != 4 {
		t.Errorf("%d nodes tagged when the key is found, want 4:\n%v", n, last)
	}
}

func TestMergeConfinedToLeftHalf(t *testing.T) {
	f := New[int]()
	plant(f, 0, 1, 2, 3, 4, 10, 11)
	_, id, _ := f.Split(0, 5)
	r := record(f)
	c, err := f.Merge(0, id)
	mustCode(t, c, err, OK)

	var pairs int
	for _, e := range r.events {
		if _, ok := e.Forest.Tree(id); ok {
			t.Errorf("%v: right tree %d still listed during merge", e.Code, id)
		}
		tv, _ := e.Forest.Tree(0)
		l, rr, ok := tv.Halves()
		if !ok {
			continue
		}
		pairs++
		if !rr.Valid() || rr.Min() != 10 || rr.Max() != 11 {
			t.Errorf("%v: right half is not the untouched right tree:\n%v", e.Code, e.Forest)
		}
		if l.Valid() && l.Max() >= 10 {
			t.Errorf("%v: left half reaches into the right tree:\n%v", e.Code, e.Forest)
		}
	}
	if pairs == 0 {
		t.Errorf("merge never showed the two halves")
	}
	if root := rootOf(f, 0); root != 4 {
		t.Errorf("merged root is %d, want 4", root)
	}
	checkForest(t, f)
}

func TestSplitShowsPair(t *testing.T) {
	f := New[int]()
	plant(f, 0, 1, 2, 3, 4, 5)
	r := record(f)
	_, id, _ := f.Split(0, 3)
	var succ, ok Event[int]
	for _, e := range r.events {
		switch e.Code {
		case SplitSucceeded:
			succ = e
		case OK:
			ok = e
		}
	}
	tv, _ := succ.Forest.Tree(0)
	l, rr, isPair := tv.Halves()
	if !isPair || l.Max() != 2 || rr.Min() != 4 {
		t.Errorf("SplitSucceeded shows %v, want halves [1 2] | [4 5]", succ.Forest)
	}
	if diff := cmp.Diff([]int{1, 2, 4, 5}, tv.Keys()); diff != "" {
		t.Errorf("pair keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, id}, ok.Forest.IDs()); diff != "" {
		t.Errorf("ids after split (-want +got):\n%s", diff)
	}
	for _, tv := range ok.Forest.Trees() {
		if _, _, isPair := tv.Halves(); isPair {
			t.Errorf("tree %d is still a pair after the split", tv.ID())
		}
	}
	var hidden bool
	for _, e := range r.events {
		tv, _ := e.Forest.Tree(0)
		if root := tv.Root(); root.Valid() && root.Tag() == TagHideThis {
			hidden = root.Value() == 3
		}
	}
	if !hidden {
		t.Errorf("split key was never tagged HideThis")
	}
}

func TestTagsNeverOutliveOperations(t *testing.T) {
	f := New[int]()
	c := NewController(f)
	var lastTagged int
	f.Subscribe(func(e Event[int]) {
		if e.Code == OK || e.Code.IsError() {
			lastTagged = e.Forest.Tagged()
		}
	})
	for i, q := range []Query[int]{
		{Kind: QueryInsert, Key: 5},
		{Kind: QueryInsert, Key: 2},
		{Kind: QueryInsert, Key: 2},
		{Kind: QueryFind, Key: 9},
		{Kind: QuerySplit, Key: 3},
		{Kind: QueryInsert, ID: 1, Key: 7},
		{Kind: QueryMerge, ID: 0, Other: 1},
		{Kind: QueryRemove, Key: 5},
		{Kind: QueryRemove, Key: 5},
	} {
		if err := c.Submit(q); err != nil {
			t.Fatalf("query %d: %v", i, err)
		}
		if lastTagged != 0 {
			t.Errorf("query %d (%v): final event carries %d tags", i, q.Kind, lastTagged)
		}
		if len(f.tags) != 0 {
			t.Errorf("query %d (%v): %d tags left in the forest", i, q.Kind, len(f.tags))
		}
	}
	checkForest(t, f)
}

func TestSnapshotsAreImmutable(t *testing.T) {
	f := New[int]()
	r := record(f)
	f.Insert(0, 1)
	f.Insert(0, 2)
	first := r.events[len(r.events)-1].Forest
	f.Remove(0, 1)
	f.Insert(0, 3)
	tv, _ := first.Tree(0)
	if diff := cmp.Diff([]int{1, 2}, tv.Keys()); diff != "" {
		t.Errorf("old snapshot changed (-want +got):\n%s", diff)
	}
}

func TestSubscribeReplaysLatestState(t *testing.T) {
	f := New[int]()
	f.Insert(0, 4)
	f.Insert(0, 2)
	f.Remove(0, 7)
	var got []Event[int]
	f.Subscribe(func(e Event[int]) { got = append(got, e) })
	if len(got) != 1 {
		t.Fatalf("subscriber got %d events on subscribe, want 1", len(got))
	}
	if got[0].Code != RemoveError {
		t.Errorf("replayed code is %v, want RemoveError", got[0].Code)
	}
	tv, _ := got[0].Forest.Tree(0)
	if diff := cmp.Diff([]int{2, 4}, tv.Keys()); diff != "" {
		t.Errorf("replayed tree (-want +got):\n%s", diff)
	}
}

func TestSnapshotString(t *testing.T) {
	f := New[int]()
	plant(f, 0, 2, 1, 3)
	f.Insert(0, 9)
	f.Split(0, 5)
	if got, want := f.Snapshot().String(), "0: (3 (2 (1) -) -)\n1: (9)"; got != want {
		t.Errorf("snapshot is %q, want %q", got, want)
	}
}
