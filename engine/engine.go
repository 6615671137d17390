package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/go-strata/strata"
	"github.com/go-strata/strata/internal/dataframe"
	"github.com/go-strata/strata/internal/partition"
	"github.com/go-strata/strata/internal/stats"
	itypes "github.com/go-strata/strata/internal/types"
	iutil "github.com/go-strata/strata/internal/util"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Options configure an Engine
type Options struct {
	NumWorkers               int                        // the number of goroutines which process Partitions concurrently within a Stage. Defaults to the number of CPUs
	TempDir                  string                     // location for storing temporary files (primarily persisted partitions)
	NumInMemoryPartitions    int                        // the number of partitions to retain in memory before compressing or swapping to disk
	CacheMemoryHighWatermark uint64                     // soft memory limit for in-memory partition caches, in bytes
	IgnoreRowErrors          bool                       // iff true, log row transformation errors instead of crashing immediately
	PartitionSerializer      strata.PartitionSerializer // serializes and compresses partition data for caching and disk swap. Defaults to lz4
}

func ensureDefaultOptionsValues(opts *Options) {
	// default certain options if not supplied
	if opts.NumWorkers == 0 {
		opts.NumWorkers = runtime.NumCPU()
	}
	if len(opts.TempDir) == 0 {
		opts.TempDir = os.TempDir()
	}
	if opts.NumInMemoryPartitions == 0 {
		opts.NumInMemoryPartitions = 100 // TODO should this just be a memory limit, and we compute NumInMemoryPartitions ourselves?
	}
	if opts.PartitionSerializer == nil {
		opts.PartitionSerializer = partition.NewLZ4PartitionSerializer()
	}
}

// Result is the output of a job, which terminated either by
// collecting Partitions, by accumulating, or by running out
// of operations to perform
type Result struct {
	Collected   map[string]strata.CollectedPartition // the collected Partitions, keyed by Partition ID, if the job ended in a collect
	Accumulated strata.Accumulator                   // the merged Accumulator, if the job ended in an accumulation
	Schema      strata.Schema                        // the Schema of the data after the final operation of the job
	Stats       strata.RuntimeStatistics             // statistics about the run
}

// An Engine executes DataFrame pipelines against their DataSource,
// processing Partitions concurrently within each Stage
type Engine interface {
	Run(ctx context.Context, frame strata.DataFrame) (*Result, error) // Run blocks until the job is complete or the context is cancelled
}

type engineImpl struct {
	opts *Options
}

// Create instantiates a local Engine
func Create(opts *Options) Engine {
	if opts == nil {
		opts = &Options{}
	}
	ensureDefaultOptionsValues(opts)
	return &engineImpl{opts: opts}
}

// Run executes a DataFrame pipeline, blocking until it is complete
func (e *engineImpl) Run(ctx context.Context, frame strata.DataFrame) (*Result, error) {
	// optimize dataframe to create plan
	eframe, ok := frame.(itypes.ExecutableDataFrame)
	if !ok {
		return nil, fmt.Errorf("DataFrame must be executable")
	}
	log.Printf("Running job...")
	statsTracker := &stats.RunStatistics{}
	planExecutor := eframe.Optimize().Execute(ctx, &itypes.PlanExecutorConfig{
		NumWorkers:               e.opts.NumWorkers,
		TempFilePath:             e.opts.TempDir,
		CacheMemoryInitialSize:   e.opts.NumInMemoryPartitions,
		CacheMemoryHighWatermark: e.opts.CacheMemoryHighWatermark,
		IgnoreRowErrors:          e.opts.IgnoreRowErrors,
		PartitionSerializer:      e.opts.PartitionSerializer,
	}, statsTracker)
	defer planExecutor.Stop()
	statsTracker.Start(planExecutor.GetNumStages())
	defer statsTracker.Finish()
	// analyze and assign partitions
	partitionMap, err := eframe.AnalyzeSource()
	if err != nil {
		return nil, err
	}
	for partitionMap.HasNext() {
		loader := partitionMap.Next()
		log.Printf("Assigning partition loader \"%s\"", loader.ToString())
		buff, err := loader.GobEncode()
		if err != nil {
			return nil, fmt.Errorf("Could not serialize PartitionLoader")
		}
		if err = planExecutor.AssignPartitionLoader(buff); err != nil {
			return nil, err
		}
	}
	// moderate execution of stages, blocking on completion of each
	var cachedKeys []string
	var finalSchema strata.Schema
	for planExecutor.HasNextStage() {
		select {
		// check for shutdown signal
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			stage := planExecutor.GetNextStage()
			log.Println("------------------------------")
			log.Printf("Starting stage %d...", stage.ID())
			res, outgoingKeys, err := e.runStage(ctx, planExecutor, stage, cachedKeys, statsTracker)
			if err != nil {
				return nil, err
			}
			log.Printf("Finished stage %d", stage.ID())
			log.Println("------------------------------")
			if res != nil {
				// collects and accumulations end the job
				res.Schema = stage.OutgoingSchema()
				res.Stats = statsTracker
				return res, nil
			}
			cachedKeys = outgoingKeys
			finalSchema = stage.OutgoingSchema()
		}
	}
	return &Result{Schema: finalSchema, Stats: statsTracker}, nil
}

// runStage executes a single Stage with a pool of concurrent workers, returning
// a Result if the Stage ended the job, along with the cache keys for any
// Partitions which outlived the Stage
func (e *engineImpl) runStage(ctx context.Context, planExecutor itypes.PlanExecutor, stage itypes.Stage, cachedKeys []string, statsTracker *stats.RunStatistics) (*Result, []string, error) {
	statsTracker.StartStage()
	prepCollect := stage.EndsInCollect()
	prepAccumulate := stage.EndsInAccumulate()
	hasNextStage := planExecutor.HasNextStage()
	// every worker receives its own StageContext, but workers share
	// the incoming PartitionIterator for the Stage
	var incoming strata.PartitionIterator
	if stage.ID() > 0 {
		incoming = dataframe.CreatePartitionCacheIterator(planExecutor.GetPartitionCache(), cachedKeys)
	}
	sctxs := make([]strata.StageContext, e.opts.NumWorkers)
	for i := range sctxs {
		sctx := createStageContext(ctx)
		if incoming != nil {
			if err := sctx.SetIncomingPartitionIterator(incoming); err != nil {
				return nil, nil, err
			}
		}
		if err := planExecutor.InitStageContext(sctx, stage); err != nil {
			return nil, nil, err
		}
		sctxs[i] = sctx
	}
	// partitions leaving the stage are routed to a terminal collection,
	// or cached for the next stage
	var routingLock sync.Mutex
	outgoingKeys := make([]string, 0, len(cachedKeys))
	var collected map[string]strata.CollectedPartition
	var collectionLimit *semaphore.Weighted
	if prepCollect {
		collected = make(map[string]strata.CollectedPartition)
		collectionLimit = semaphore.NewWeighted(stage.GetCollectionLimit())
	}
	route := func(out strata.OperablePartition) error {
		switch {
		case prepAccumulate:
			// accumulating stages siphon rows out of partitions, so there is nothing to route
		case prepCollect:
			if collectionLimit.TryAcquire(1) {
				cpart, ok := out.(strata.CollectedPartition)
				if !ok {
					return fmt.Errorf("Partition %s is not collectable", out.ID())
				}
				routingLock.Lock()
				collected[out.ID()] = cpart
				routingLock.Unlock()
			}
		case hasNextStage:
			planExecutor.GetPartitionCache().Add(out.ID(), out)
			routingLock.Lock()
			outgoingKeys = append(outgoingKeys, out.ID())
			routingLock.Unlock()
		default:
			// a final stage without a terminal operation discards its output
		}
		return nil
	}
	statsTracker.StartTransform()
	var workers errgroup.Group
	for i := 0; i < e.opts.NumWorkers; i++ {
		wsctx := sctxs[i]
		workers.Go(func() error {
			return planExecutor.TransformPartitions(wsctx, func(sctx strata.StageContext, part strata.OperablePartition) ([]strata.OperablePartition, error) {
				outputs, err := stage.WorkerExecute(sctx, part)
				if err != nil && outputs == nil {
					return nil, err
				}
				// route partial results even when row errors surface, so surviving rows are kept
				for _, out := range outputs {
					if rerr := route(out); rerr != nil {
						return nil, rerr
					}
				}
				return outputs, err
			}, e.onRowError(planExecutor))
		})
	}
	if err := workers.Wait(); err != nil {
		return nil, nil, err
	}
	statsTracker.EndTransform(stage.ID())
	statsTracker.StartMaterialize()
	var res *Result
	if prepAccumulate {
		// every worker accumulated independently, so merge their results
		accumulated := stage.GetAccumulatorFactory()()
		for _, wsctx := range sctxs {
			if err := accumulated.Merge(wsctx.Accumulator()); err != nil {
				return nil, nil, err
			}
		}
		res = &Result{Accumulated: accumulated}
	} else if prepCollect {
		res = &Result{Collected: collected}
	}
	statsTracker.EndMaterialize(stage.ID())
	statsTracker.EndStage(stage.ID())
	return res, outgoingKeys, nil
}

// onRowError produces the row error handler for a run, which either ignores
// row transformation errors or halts the job with them
func (e *engineImpl) onRowError(planExecutor itypes.PlanExecutor) func(err error) error {
	return func(err error) error {
		// row transformation errors arrive as a multierror, which we might want to ignore
		if multierr, ok := err.(*multierror.Error); e.opts.IgnoreRowErrors && ok {
			multierr.ErrorFormat = iutil.FormatMultiError
			// log errors and carry on
			log.Printf("Ignoring row transformation errors in stage %d:\n%s", planExecutor.GetCurrentStage().ID(), multierr.Error())
			return nil
		}
		// otherwise, crash immediately
		return err
	}
}
