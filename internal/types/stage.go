package types

import "github.com/go-strata/strata"

// Stage is a group of tasks which share a common schema.
// stages block the execution of further stages until they
// are complete.
type Stage interface {
	ID() int                                                                                                   // ID returns the ID for this stage
	IncomingSchema() strata.Schema                                                                             // IncomingSchema is the Schema for data entering this Stage
	OutgoingSchema() strata.Schema                                                                             // OutgoingSchema is the Schema for data leaving this Stage
	WidestInitialSchema() strata.Schema                                                                        // WidestInitialSchema returns the widest Schema carried by data during this Stage
	WorkerInitialize(sctx strata.StageContext) error                                                           // WorkerInitialize runs initialization logic for this Stage's tasks
	WorkerExecute(sctx strata.StageContext, part strata.OperablePartition) ([]strata.OperablePartition, error) // WorkerExecute runs this Stage against a Partition
	EndsInAccumulate() bool                                                                                    // EndsInAccumulate returns true iff this Stage ends with an accumulation task
	EndsInMaterialize() bool                                                                                   // EndsInMaterialize returns true iff this Stage ends with a materialization task
	EndsInCollect() bool                                                                                       // EndsInCollect returns true iff this Stage represents a collect task
	GetAccumulatorFactory() strata.AccumulatorFactory                                                          // GetAccumulatorFactory returns a factory for this Stage's Accumulator, if it ends in one
	GetCollectionLimit() int64                                                                                 // GetCollectionLimit returns the maximum number of Partitions to collect
	TargetPartitionSize() int                                                                                  // TargetPartitionSize returns the intended Partition maxSize for outgoing Partitions
	SetTargetPartitionSize(targetPartitionSize int)                                                            // SetTargetPartitionSize configures the intended Partition maxSize for outgoing Partitions
}
