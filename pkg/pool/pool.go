package pool

import (
	"context"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the number of goroutines used to run independent computations.
//
// Functions needing a *Pool will work with a nil receiver, doing the equivalent
// work on the current goroutine instead.
type Pool struct {
	// This holds the maximum number of tasks running at once
	workerCount int
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}
	return &Pool{workerCount: count}
}

// Workers returns the number of tasks the pool runs concurrently, 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workerCount
}

// Parallelize calls f count times, passing in indices from 0..count-1.
//
// The first error returned by f cancels the context passed to the remaining calls,
// and is returned once all started calls have finished.
func (p *Pool) Parallelize(ctx context.Context, count int, f func(ctx context.Context, i int) error) error {
	if p == nil {
		return parallelizeAlone(ctx, count, f)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workerCount)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return f(ctx, i)
		})
	}
	return g.Wait()
}

// parallelizeAlone calls f sequentially, stopping at the first error.
func parallelizeAlone(ctx context.Context, count int, f func(context.Context, int) error) error {
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// This type implements io.Reader, returning the same output.
//
// This means acquiring a lock whenever a read happens, so be aware of that
// for performance or concurrency reasons.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
func NewLockedReader(r io.Reader) *LockedReader {
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader
//
// Naturally, when calling this function concurrently, what value ends up getting
// read is raced, but you won't end up reading the same value twice, or otherwise
// messing up the state of the reader.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}
