package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/g-m-twostay/splay-forest/Trees"
	"github.com/google/go-cmp/cmp"
)

const script = `# two keys, a split and a merge back
insert 0 5
insert 0 3
insert 0 3   # duplicate

find 0 4
split 0 4
merge 0 1
delete 0
delete 7
`

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestParseScript(t *testing.T) {
	lines, err := parseScript(strings.NewReader(script))
	if err != nil {
		t.Fatal(err)
	}
	var ns []int
	for _, l := range lines {
		ns = append(ns, l.n)
	}
	if diff := cmp.Diff([]int{2, 3, 4, 6, 7, 8, 9, 10}, ns); diff != "" {
		t.Errorf("line numbers (-want +got):\n%s", diff)
	}
	want := []Trees.Query[int]{
		{Kind: Trees.QueryInsert, Key: 5},
		{Kind: Trees.QueryInsert, Key: 3},
		{Kind: Trees.QueryInsert, Key: 3},
		{Kind: Trees.QueryFind, Key: 4},
		{Kind: Trees.QuerySplit, Key: 4},
		{Kind: Trees.QueryMerge, ID: 0, Other: 1},
		{Kind: Trees.QueryDeleteTree, ID: 0},
		{Kind: Trees.QueryDeleteTree, ID: 7},
	}
	var got []Trees.Query[int]
	for _, l := range lines {
		got = append(got, l.q)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("queries (-want +got):\n%s", diff)
	}
}

func TestParseScriptErrors(t *testing.T) {
	_, err := parseScript(strings.NewReader("insert 0 1\nrotate 0 1\n\nsplit 0\nfind x 2\n"))
	if err == nil {
		t.Fatal("no error for a malformed script")
	}
	for _, want := range []string{
		`line 2: unknown query "rotate"`,
		"line 4: split takes 2 arguments, got 1",
		"line 5: argument 1 of find",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestTraceOutcomes(t *testing.T) {
	lines, err := parseScript(strings.NewReader(script))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	err = trace(lines, &out, false, discard)
	var ute *Trees.UnknownTreeError
	if !errors.As(err, &ute) || ute.ID != 7 {
		t.Errorf("error is %v, want an unknown tree 7", err)
	}
	want := `2: OK: OK
3: OK: OK
4: InsertError: ERROR: This key already exists in the tree
6: NotFound: The value hasn't been found
7: OK: OK
8: OK: OK
9: UnsuccessfulDelete: ERROR: At least one tree must remain
10: delete 7: no tree with id 7
0: (3 - (5))
`
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestTraceSteps(t *testing.T) {
	lines, err := parseScript(strings.NewReader("insert 0 2\ninsert 0 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := trace(lines, &out, true, discard); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, want := range []string{
		"OK: OK\n0: -\n> insert 0 2\n",
		"SplitPerforming: Split is performing\n0: (2)\n",
		"SplitPerforming: Split is performing\n0: (2[SplitLeft])\n",
		"InsertionDone: ",
		"\n0: (1[Inserted] - (2))\n",
		"OK: OK\n0: (1 - (2))\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("trace lacks %q:\n%s", want, s)
		}
	}
}
