package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/g-m-twostay/splay-forest/Trees"
)

// trace submits lines to a controller over a fresh forest and writes what
// happens to w. With steps every event is printed with the forest it shows,
// otherwise only the final code of each query. Queries naming an unknown tree
// are reported and skipped.
func trace(lines []line, w io.Writer, steps bool, log *slog.Logger) error {
	f := Trees.New[int](Trees.WithLogger(log))
	c := Trees.NewController(f)
	if steps {
		f.Subscribe(func(e Trees.Event[int]) {
			fmt.Fprintf(w, "%v: %s\n%v\n", e.Code, e.Code.Message(), e.Forest)
		})
	}

	var errs []error
	for _, l := range lines {
		if steps {
			fmt.Fprintf(w, "> %s\n", l.text)
		}
		if err := c.Submit(l.q); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", l.n, err))
			fmt.Fprintf(w, "%d: %v\n", l.n, err)
			continue
		}
		if !steps {
			code := f.Last().Code
			fmt.Fprintf(w, "%d: %v: %s\n", l.n, code, code.Message())
		}
	}
	if !steps {
		fmt.Fprintf(w, "%v\n", f.Snapshot())
	}
	return errors.Join(errs...)
}
