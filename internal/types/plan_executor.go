package types

import (
	"github.com/go-strata/strata"
)

// A PlanExecutor manages the execution of a DataFrame Plan
type PlanExecutor interface {
	ID() string                                                                                              // ID returns the ID for this PlanExecutor
	GetConf() *PlanExecutorConfig                                                                            // GetConf returns the configuration for this PlanExecutor
	GetNumStages() int                                                                                       // GetNumStages returns the number of Stages in this PlanExecutor's Plan
	HasNextStage() bool                                                                                      // HasNextStage forms an iterator for planExecutor Stages
	GetNextStage() Stage                                                                                     // GetNextStage forms an iterator for planExecutor Stages
	GetCurrentStage() Stage                                                                                  // GetCurrentStage returns the current stage without advancing the iterator, or nil if the iterator has never been advanced
	GetPartitionCache() strata.PartitionCache                                                                // GetPartitionCache returns the cache used to buffer Partitions between Stages
	AssignPartitionLoader(sLoader []byte) error                                                              // AssignPartitionLoader assigns a serialized PartitionLoader to this executor
	InitStageContext(sctx strata.StageContext, stage Stage) error                                            // InitStageContext populates a StageContext with the partition source and cache for a Stage, and initializes the Stage's tasks
	TransformPartitions(sctx strata.StageContext, fn PartitionTransform, onRowError func(error) error) error // TransformPartitions applies a PartitionTransform to all partitions from this Plan's current source
	Stop()                                                                                                   // Stop shuts down this PlanExecutor, removing any cached Partitions
}
