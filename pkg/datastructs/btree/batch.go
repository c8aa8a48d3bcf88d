package btree

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// InsertBatch inserts entries using up to workers goroutines. Failed entries do
// not stop the others; their errors are returned combined. Cancelling ctx stops
// scheduling further entries.
func (t *Tree) InsertBatch(ctx context.Context, entries []Entry, workers int) error {
	if workers < 1 {
		return errors.Wrapf(ErrInvalidArgument, "workers %d", workers)
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs error
	)
	g.SetLimit(workers)

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			mu.Lock()
			errs = multierr.Append(errs, err)
			mu.Unlock()
			break
		}
		e := e
		g.Go(func() error {
			if err := t.Insert(e.Key, e.Data); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, errors.WithMessagef(err, "key %d", e.Key))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
