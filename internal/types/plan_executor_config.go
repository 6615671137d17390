package types

import "github.com/go-strata/strata"

// PlanExecutorConfig configures the execution of a plan
type PlanExecutorConfig struct {
	NumWorkers               int                        // the number of goroutines which process Partitions concurrently within a Stage
	TempFilePath             string                     // the directory to use as on-disk swap space for partitions
	CacheMemoryInitialSize   int                        // the initial size of the partition cache, measured in partitions
	CacheMemoryHighWatermark uint64                     // soft memory limit for in-memory partition caches, in bytes
	IgnoreRowErrors          bool                       // iff true, log row transformation errors instead of crashing immediately
	PartitionSerializer      strata.PartitionSerializer // serializes and compresses partition data for caching and disk swap
}
