package testing

import (
	"context"

	"github.com/go-strata/strata"
	"github.com/go-strata/strata/engine"
)

// RunFrame runs a DataFrame on a local test engine with a certain number of workers
func RunFrame(ctx context.Context, frame strata.DataFrame, opts *engine.Options, numWorkers int) (result *engine.Result, err error) {
	// handle panics
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = anErr
			} else {
				panic(r)
			}
		}
	}()

	if opts == nil {
		opts = &engine.Options{}
	}
	opts.NumWorkers = numWorkers
	if opts.NumInMemoryPartitions == 0 {
		opts.NumInMemoryPartitions = 10
	}
	return engine.Create(opts).Run(ctx, frame)
}
