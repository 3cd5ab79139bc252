// Package pproc runs independent units of work on a bounded number of
// goroutines.
package pproc

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Option configures a Pool or a Processor.
type Option func(*options)

type options struct {
	numWorkers int
}

func defaultOptions() options {
	return options{numWorkers: runtime.NumCPU()}
}

// WithWorkers sets the number of worker goroutines
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.numWorkers = n
		}
	}
}

// Pool runs indexed units of work. A failing unit does not stop the
// others.
type Pool struct {
	numWorkers int
}

// NewPool creates a pool with runtime.NumCPU workers by default.
func NewPool(opts ...Option) *Pool {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool{numWorkers: o.numWorkers}
}

// Workers returns the concurrency limit.
func (p *Pool) Workers() int {
	return p.numWorkers
}

// Run calls f for each i in [0, n). Units not yet started when ctx is done
// are skipped. The returned error joins all unit errors in index order,
// followed by the context error, if any.
func (p *Pool) Run(ctx context.Context, n int, f func(ctx context.Context, i int) error) error {
	var (
		g    errgroup.Group
		errs = make([]error, n)
	)
	g.SetLimit(p.numWorkers)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		i := i // per-iteration copy; go directive is below 1.22
		g.Go(func() error {
			errs[i] = f(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(append(errs, ctx.Err())...)
}
