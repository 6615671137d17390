package dataframe

import (
	"log"

	"github.com/go-strata/strata"
	"github.com/hashicorp/go-multierror"
)

// Stage is a group of tasks which share a common schema.
// stages block the execution of further stages until they
// are complete.
type stageImpl struct {
	id                  int
	incomingSchema      strata.Schema
	outgoingSchema      strata.Schema
	frames              []*dataFrameImpl
	targetPartitionSize int
}

// createStage is a factory for Stages, safely assigning deterministic IDs
func createStage(nextID int) *stageImpl {
	s := &stageImpl{
		id:                  nextID,
		incomingSchema:      nil,
		outgoingSchema:      nil,
		frames:              []*dataFrameImpl{},
		targetPartitionSize: -1,
	}
	nextID++
	return s
}

// ID returns the ID for this Stage
func (s *stageImpl) ID() int {
	return s.id
}

// IncomingSchema is the Schema for data entering this Stage
func (s *stageImpl) IncomingSchema() strata.Schema {
	return s.incomingSchema
}

// OutgoingSchema is the Schema for data leaving this Stage
func (s *stageImpl) OutgoingSchema() strata.Schema {
	return s.outgoingSchema
}

// WidestInitialSchema returns the widest Schema encountered during this
// stage, for sizing partition buffers
func (s *stageImpl) WidestInitialSchema() strata.Schema {
	var widest strata.Schema
	for _, f := range s.frames {
		if widest == nil || f.GetSchema().NumFields() > widest.NumFields() {
			widest = f.schema
		}
	}
	return widest
}

// WorkerInitialize initializes the Tasks within this Stage
func (s *stageImpl) WorkerInitialize(sctx strata.StageContext) error {
	for _, frame := range s.frames {
		if err := frame.task.RunInitialize(sctx); err != nil {
			return err
		}
	}
	return nil
}

// WorkerExecute runs a stage against a Partition of data, returning
// the modified Partition (which may have been modified in-place, filtered,
// Or turned into multiple Partitions). Row errors are accumulated into a
// multierror, and the surviving rows continue through the remaining tasks.
func (s *stageImpl) WorkerExecute(sctx strata.StageContext, part strata.OperablePartition) ([]strata.OperablePartition, error) {
	var multierr *multierror.Error
	var prev = []strata.OperablePartition{part}
	for _, frame := range s.frames {
		next := make([]strata.OperablePartition, 0, len(prev))
		for _, p := range prev {
			out, err := frame.workerExecuteTask(sctx, p)
			if err != nil && out == nil {
				// a failure without a partial result aborts the whole
				// Partition. Left unwrapped so it cannot be mistaken for
				// ignorable row errors.
				// TODO wrapping this error breaks multierror type checking
				// return nil, fmt.Errorf("Error in task %s of stage %s:\n%w", frame.taskType, s.id, err)
				return nil, err
			} else if err != nil {
				multierr = multierror.Append(multierr, err)
			}
			next = append(next, out...)
		}
		prev = next
	}
	return prev, multierr.ErrorOrNil()
}

// EndsInAccumulate returns true iff this Stage ends with an accumulation task
func (s *stageImpl) EndsInAccumulate() bool {
	return len(s.frames) > 0 && s.frames[len(s.frames)-1].taskType == strata.AccumulateTaskType
}

// EndsInMaterialize returns true iff this Stage ends with a materialization task
func (s *stageImpl) EndsInMaterialize() bool {
	return len(s.frames) > 0 && s.frames[len(s.frames)-1].taskType == strata.MaterializeTaskType
}

// EndsInCollect returns true iff this Stage represents a collect task
func (s *stageImpl) EndsInCollect() bool {
	return len(s.frames) > 0 && s.frames[len(s.frames)-1].taskType == strata.CollectTaskType
}

// GetAccumulatorFactory returns a factory for this Stage's Accumulator (if it exists)
func (s *stageImpl) GetAccumulatorFactory() strata.AccumulatorFactory {
	if !s.EndsInAccumulate() {
		return nil
	}
	aTask, ok := s.frames[len(s.frames)-1].task.(accumulationTask)
	if !ok {
		log.Panicf("taskType is accumulate but Task is not an accumulationTask")
	}
	return aTask.GetAccumulatorFactory()
}

// GetCollectionLimit returns the maximum number of Partitions to collect
func (s *stageImpl) GetCollectionLimit() int64 {
	if !s.EndsInCollect() {
		return 0
	}
	cTask, ok := s.frames[len(s.frames)-1].task.(collectionTask)
	if !ok {
		log.Panicf("taskType is collect but Task is not a collectionTask")
	}
	return cTask.GetCollectionLimit()
}

// TargetPartitionSize retrieves the TargetPartitionSize for this Stage (if it exists)
func (s *stageImpl) TargetPartitionSize() int {
	return s.targetPartitionSize
}

// Configure the target partition size for this stage
func (s *stageImpl) SetTargetPartitionSize(targetPartitionSize int) {
	s.targetPartitionSize = targetPartitionSize
}
