// Package workers runs the long-lived parts of the bot side by side.
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"
)

type Worker interface {
	Name() string
	Run(context.Context) error
}

// Func adapts a run function to a Worker.
type Func struct {
	WorkerName string
	Fn         func(context.Context) error
}

func (f Func) Name() string                 { return f.WorkerName }
func (f Func) Run(ctx context.Context) error { return f.Fn(ctx) }

// Group runs all workers until ctx is cancelled or one of them fails. The first
// failure cancels the rest; all failures are returned together.
type Group []Worker

func (g Group) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, len(g))
	wg.Add(len(g))
	for _, w := range g {
		go func(w Worker) {
			defer wg.Done()
			slog.Debug("worker started", "worker", w.Name())
			if err := w.Run(runCtx); err != nil {
				errCh <- fmt.Errorf("%s: %w", w.Name(), err)
				cancel()
			}
			slog.Debug("worker stopped", "worker", w.Name())
		}(w)
	}

	<-runCtx.Done()
	wg.Wait()
	close(errCh)

	var err error
	for werr := range errCh {
		err = multierror.Append(err, werr)
	}
	return err
}
