package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/g-m-twostay/splay-forest/Trees"
)

// line is one parsed query with its place in the script.
type line struct {
	n    int
	text string
	q    Trees.Query[int]
}

var kinds = map[string]struct {
	kind  Trees.QueryKind
	nargs int
}{
	"insert": {Trees.QueryInsert, 2},
	"remove": {Trees.QueryRemove, 2},
	"find":   {Trees.QueryFind, 2},
	"split":  {Trees.QuerySplit, 2},
	"merge":  {Trees.QueryMerge, 2},
	"delete": {Trees.QueryDeleteTree, 1},
}

// parseScript reads one query per line. Blank lines and text after '#' are
// ignored. Every malformed line is reported.
func parseScript(r io.Reader) ([]line, error) {
	var (
		out  []line
		errs []error
	)
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		text, _, _ := strings.Cut(sc.Text(), "#")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		q, err := parseQuery(strings.Fields(text))
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", n, err))
			continue
		}
		out = append(out, line{n, text, q})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

func parseQuery(fs []string) (q Trees.Query[int], err error) {
	k, ok := kinds[strings.ToLower(fs[0])]
	if !ok {
		return q, fmt.Errorf("unknown query %q", fs[0])
	}
	if len(fs)-1 != k.nargs {
		return q, fmt.Errorf("%s takes %d arguments, got %d", fs[0], k.nargs, len(fs)-1)
	}
	args := make([]int, k.nargs)
	for i, a := range fs[1:] {
		if args[i], err = strconv.Atoi(a); err != nil {
			return q, fmt.Errorf("argument %d of %s: %w", i+1, fs[0], err)
		}
	}
	q.Kind, q.ID = k.kind, args[0]
	switch k.kind {
	case Trees.QueryMerge:
		q.Other = args[1]
	case Trees.QueryDeleteTree:
	default:
		q.Key = args[1]
	}
	return q, nil
}
