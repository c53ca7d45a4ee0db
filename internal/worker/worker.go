// Package worker moves dataset analysis off the calling goroutine. Results
// are delivered once, complete, through a Future; there is no cancellation
// of work already running.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Future is the eventual result of a computation started with Go.
type Future[T any] struct {
	ID   string
	done chan struct{}
	val  T
	err  error
}

// Go runs fn on a new goroutine and returns a Future for its result. A panic
// in fn is reported as the Future's error.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{ID: uuid.NewString(), done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.val, f.err = zero, fmt.Errorf("job %s panicked: %v", f.ID, r)
				slog.Error("job panicked", "job", f.ID, "panic", r)
			}
		}()
		f.val, f.err = fn()
	}()
	return f
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the result is ready or ctx ends. A ctx error leaves the
// computation running; a later Wait can still collect it.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result pairs a job's output with its error so one failure does not hide the rest.
type Result[R any] struct {
	Value R
	Err   error
}

// Pool runs jobs with bounded concurrency.
type Pool struct {
	// Size is the number of concurrent jobs; values below 1 mean 1.
	Size int
}

// Run applies fn to every job and returns results in input order. Job errors
// are reported per result; Run itself only fails when ctx is done before
// every job was started.
func Run[J, R any](ctx context.Context, p Pool, jobs []J, fn func(context.Context, J) (R, error)) ([]Result[R], error) {
	size := p.Size
	if size < 1 {
		size = 1
	}
	out := make([]Result[R], len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(size)
	for i, job := range jobs {
		if err := gctx.Err(); err != nil {
			break
		}
		i, job := i, job
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					out[i] = Result[R]{Err: fmt.Errorf("job %d panicked: %v", i, r)}
				}
			}()
			v, err := fn(gctx, job)
			if err != nil {
				slog.Debug("job failed", "index", i, "error", err)
			}
			out[i] = Result[R]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out, ctx.Err()
}
