package dataframe

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/go-strata/strata"
	"github.com/go-strata/strata/errors"
	"github.com/go-strata/strata/internal/pcache"
	"github.com/go-strata/strata/internal/stats"
	itypes "github.com/go-strata/strata/internal/types"
	uuid "github.com/gofrs/uuid"
)

// planExecutorImpl executes a Plan, pulling Partitions from a DataSource
// and passing them through each Stage in sequence. Partitions which
// outlive a Stage are buffered in a PartitionCache.
type planExecutorImpl struct {
	id   string
	plan itypes.Plan
	conf *itypes.PlanExecutorConfig
	done context.CancelFunc

	nextStage             int
	partitionLoaders      []strata.PartitionLoader
	partitionLoadersLock  sync.Mutex
	currentLoaderIterator strata.PartitionIterator
	statsTracker          *stats.RunStatistics
	pCache                strata.PartitionCache
}

// CreatePlanExecutor is a factory for planExecutors
func CreatePlanExecutor(ctx context.Context, plan itypes.Plan, conf *itypes.PlanExecutorConfig, statsTracker *stats.RunStatistics) itypes.PlanExecutor {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID: %v", err)
	}
	executor := &planExecutorImpl{
		id:               id.String(),
		plan:             plan,
		conf:             conf,
		done:             func() {},
		partitionLoaders: make([]strata.PartitionLoader, 0),
		statsTracker:     statsTracker,
	}
	// create partition cache
	if conf.CacheMemoryHighWatermark == 0 {
		conf.CacheMemoryHighWatermark = 512 * 1024 * 1024 // 512MiB
	}
	if conf.CacheMemoryInitialSize == 0 {
		conf.CacheMemoryInitialSize = 32 * 1024 // pick a meaninglessly large number, as we'll use the memory high watermark to scale down
	}
	executor.pCache = pcache.NewLRU(&pcache.LRUConfig{
		InitialSize:        conf.CacheMemoryInitialSize,
		CompressedFraction: 0.75, // most buffered partitions are kept compressed, since only the next few are needed at any moment
		DiskPath:           conf.TempFilePath,
		Serializer:         conf.PartitionSerializer,
	})
	monitorCtx, canceller := context.WithCancel(ctx)
	executor.done = canceller
	go executor.monitorMemoryUsage(monitorCtx)
	return executor
}

// ID returns the ID for this PlanExecutor
func (pe *planExecutorImpl) ID() string {
	return pe.id
}

// GetConf returns the configuration for this PlanExecutor
func (pe *planExecutorImpl) GetConf() *itypes.PlanExecutorConfig {
	return pe.conf
}

// Stop shuts down this PlanExecutor, discarding any buffered Partitions
func (pe *planExecutorImpl) Stop() {
	pe.done()
	if pe.pCache != nil {
		pe.pCache.Destroy()
	}
}

// HasNextStage forms an iterator for planExecutor Stages
func (pe *planExecutorImpl) HasNextStage() bool {
	return pe.nextStage < (pe.plan.Size())
}

// GetNextStage forms an iterator for planExecutor Stages
func (pe *planExecutorImpl) GetNextStage() itypes.Stage {
	if pe.nextStage >= pe.plan.Size() {
		return nil
	}
	s := pe.plan.GetStage(pe.nextStage)
	pe.nextStage++
	return s
}

func (pe *planExecutorImpl) GetNumStages() int {
	return pe.plan.Size()
}

// GetPartitionCache returns the cache used to buffer Partitions between Stages
func (pe *planExecutorImpl) GetPartitionCache() strata.PartitionCache {
	return pe.pCache
}

// peekNextStage returns the next stage without advancing the iterator, or nil if there isn't one
func (pe *planExecutorImpl) peekNextStage() itypes.Stage {
	if pe.HasNextStage() {
		return pe.plan.GetStage(pe.nextStage)
	}
	return nil
}

// GetCurrentStage returns the current stage without advancing the iterator, or nil if the iterator has never been advanced
func (pe *planExecutorImpl) GetCurrentStage() itypes.Stage {
	if pe.nextStage == 0 {
		return pe.plan.GetStage(pe.nextStage)
	}
	return pe.plan.GetStage(pe.nextStage - 1)
}

// onFirstStage returns true iff we're currently executing the first stage
func (pe *planExecutorImpl) onFirstStage() bool {
	return pe.nextStage == 1
}

// AssignPartitionLoader assigns a serialized PartitionLoader to this executor
func (pe *planExecutorImpl) AssignPartitionLoader(sLoader []byte) error {
	loader, err := pe.plan.Source().DeserializeLoader(sLoader[0:])
	if err != nil {
		return err
	}
	pe.partitionLoadersLock.Lock()
	defer pe.partitionLoadersLock.Unlock()
	pe.partitionLoaders = append(pe.partitionLoaders, loader)
	return nil
}

// InitStageContext populates a StageContext with the variables necessary to
// execute the given Stage. Each concurrent worker receives its own
// StageContext, but the incoming PartitionIterator and PartitionCache within
// are shared between all workers for a Stage.
func (pe *planExecutorImpl) InitStageContext(sctx strata.StageContext, stage itypes.Stage) error {
	if pe.plan.Size() == 0 {
		return fmt.Errorf("Plan has no stages")
	}
	// populate sctx with useful variables for next stage (or the current stage if there isn't a next stage)
	nextStage := pe.peekNextStage()
	if nextStage == nil {
		nextStage = pe.GetCurrentStage()
	}
	if err := sctx.SetNextStageWidestInitialSchema(nextStage.WidestInitialSchema()); err != nil {
		return err
	}
	if err := sctx.SetPartitionCache(pe.pCache); err != nil {
		return err
	}
	if stage.TargetPartitionSize() > 0 {
		if err := sctx.SetTargetPartitionSize(stage.TargetPartitionSize()); err != nil {
			return err
		}
	}
	// accumulating stages grant each worker its own Accumulator, to be merged when the stage ends
	if fac := stage.GetAccumulatorFactory(); fac != nil {
		if err := sctx.SetAccumulator(fac()); err != nil {
			return err
		}
	}
	// set up the partition loader iterator if this is the first stage.
	// later stages read from the PartitionCache, and their iterators
	// are supplied externally.
	if pe.onFirstStage() {
		pe.partitionLoadersLock.Lock()
		if len(pe.partitionLoaders) > 0 {
			// the loaders won't offer more partitions once consumed, so the
			// iterator is shared by every worker and the loaders are cleared
			pe.currentLoaderIterator = createPartitionLoaderIterator(pe.partitionLoaders, pe.plan.Parser(), pe.plan.GetStage(0).WidestInitialSchema())
			pe.partitionLoaders = make([]strata.PartitionLoader, 0)
		} else if pe.currentLoaderIterator == nil {
			pe.currentLoaderIterator = createEmptyPartitionIterator()
		}
		pe.partitionLoadersLock.Unlock()
		if err := sctx.SetIncomingPartitionIterator(pe.currentLoaderIterator); err != nil {
			return err
		}
	}
	// run init for all tasks in this stage
	err := stage.WorkerInitialize(sctx)
	if err != nil {
		return err
	}
	return nil
}

// TransformPartitions applies a PartitionTransform to all partitions from this Plan's
// current source. The partition source can either be partition loaders or Partitions
// cached by a previous Stage. Safe to call from multiple concurrent workers, which
// share the incoming PartitionIterator.
func (pe *planExecutorImpl) TransformPartitions(sctx strata.StageContext, fn itypes.PartitionTransform, onRowError func(error) error) error {
	parts := sctx.IncomingPartitionIterator()
	if parts == nil {
		return fmt.Errorf("No incoming PartitionIterator is available")
	}
	currentStageID := pe.GetCurrentStage().ID()
	for parts.HasNextPartition() {
		part, unlockPartition, err := parts.NextPartition()
		if _, ok := err.(errors.NoMorePartitionsError); ok {
			if unlockPartition != nil {
				unlockPartition()
			}
			// It's ok for a data source to throw this once, as HasNextPartition is just a hint
			break
		} else if err != nil {
			if unlockPartition != nil {
				unlockPartition()
			}
			return err
		}
		partStart := time.Now()
		opart := part.(strata.OperablePartition)
		_, err = fn(sctx, opart) // apply transformation
		if err := onRowError(err); err != nil {
			if unlockPartition != nil {
				unlockPartition()
			}
			return err
		}
		// we're done with the source partition now
		if unlockPartition != nil {
			unlockPartition()
		}
		pe.statsTracker.RecordPartition(currentStageID, part.GetNumRows(), time.Since(partStart))
	}
	return nil
}

// monitorMemoryUsage watches process memory usage, shrinking the partition
// cache whenever a rolling average exceeds the configured high watermark
func (pe *planExecutorImpl) monitorMemoryUsage(ctx context.Context) {
	var m runtime.MemStats
	usage := make([]uint64, 4)
	usageHead := 0
	var avg uint64
	for range time.Tick(250 * time.Millisecond) {
		select {
		case <-ctx.Done():
			log.Printf("Finished monitoring memory usage")
			return
		default:
			// record current memory usage
			runtime.ReadMemStats(&m)
			usage[usageHead] = m.Alloc / uint64(len(usage))
			usageHead = (usageHead + 1) % len(usage)
			// compute rolling average
			avg = 0
			for _, v := range usage {
				if v == 0 {
					// we haven't captured enough data yet
					continue
				}
				avg += v
			}
			// check watermarks
			if avg > pe.conf.CacheMemoryHighWatermark {
				shrinkFac := (float64(pe.conf.CacheMemoryHighWatermark) / float64(avg)) - 0.05
				if pe.pCache.Resize(shrinkFac) {
					log.Printf("Memory usage %d is greater than high watermark %d. Shrunk partition cache by %f", avg, pe.conf.CacheMemoryHighWatermark, shrinkFac)
				}
			}
		}
	}
}
