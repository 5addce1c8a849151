package wind

import (
	"context"
	"fmt"
	"sync"
)

// Evolve integrates every line for niter steps and returns a new slice
// holding the same handles in submission order. With nWorkers == 1 the
// integrations run strictly sequentially; otherwise they are fanned out
// over a fixed pool of nWorkers goroutines, each line going to exactly
// one worker. The first failing integration fails the call. Cancelling
// ctx stops scheduling between integrations; a line already running is
// not interrupted.
//
// progress, if non-nil, is invoked from the coordinating goroutine only,
// once per completed line, with the line's submission index.
func Evolve(ctx context.Context, lines []Line, niter, nWorkers int, progress func(i int, ln Line)) ([]Line, error) {
	if nWorkers < 1 {
		return nil, fmt.Errorf("%w: n_cpus=%d", ErrBadParam, nWorkers)
	}

	out := make([]Line, len(lines))
	copy(out, lines)

	if nWorkers == 1 {
		for i, ln := range out {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := ln.Iterate(niter); err != nil {
				return nil, fmt.Errorf("wind: line %d: %w", i, err)
			}
			if progress != nil {
				progress(i, ln)
			}
		}
		return out, nil
	}

	jobs := make(chan int)
	completed := make(chan int)
	errs := make([]error, len(out))

	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				errs[i] = out[i].Iterate(niter)
				completed <- i
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range out {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(completed)
	}()

	for i := range completed {
		if progress != nil {
			progress(i, out[i])
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("wind: line %d: %w", i, err)
		}
	}
	return out, nil
}
