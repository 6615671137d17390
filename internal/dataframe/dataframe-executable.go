package dataframe

import (
	"log"

	"github.com/go-strata/strata"
	itypes "github.com/go-strata/strata/internal/types"
)

// GetParent returns the parent DataFrame of a DataFrame
func (df *dataFrameImpl) GetParent() strata.DataFrame {
	return df.parent
}

// Optimize splits the DataFrame chain into stages which each share a schema.
// Each stage's execution will be blocked until the completion of the previous stage
func (df *dataFrameImpl) Optimize() itypes.Plan {
	// create a slice of frames, in order of execution, by following parent links
	frames := []*dataFrameImpl{}
	for next := df; next != nil; next = next.parent {
		frames = append([]*dataFrameImpl{next}, frames...)
	}
	// split into stages by taskType
	nextID := 0
	stages := []*stageImpl{}
	endStage := func() {
		currentStage := stages[len(stages)-1]
		if len(currentStage.frames) > 0 {
			currentStage.outgoingSchema = currentStage.frames[len(currentStage.frames)-1].schema
		}
	}
	newStage := func() {
		stages = append(stages, createStage(nextID))
		nextID++
		currentStage := stages[len(stages)-1]
		if len(stages) > 1 {
			currentStage.incomingSchema = stages[len(stages)-2].outgoingSchema
		}
	}
	newStage()
	for i, f := range frames {
		currentStage := stages[len(stages)-1]
		currentStage.frames = append(currentStage.frames, f)
		// materializations, accumulations and collects end the current Stage
		if f.taskType == strata.MaterializeTaskType {
			endStage()
			newStage()
		} else if f.taskType == strata.AccumulateTaskType {
			endStage()
			if _, ok := f.task.(accumulationTask); !ok {
				log.Panicf("taskType is AccumulateTaskType but Task is not an accumulationTask. Task is misdefined.")
			}
			if i+1 < len(frames) {
				log.Panicf("No tasks can follow an Accumulate()")
			}
			break // no tasks can come after an accumulation
		} else if f.taskType == strata.CollectTaskType {
			endStage()
			if _, ok := f.task.(collectionTask); !ok {
				log.Panicf("taskType is CollectTaskType but Task is not a collectionTask. Task is misdefined.")
			}
			if i+1 < len(frames) {
				log.Panicf("No tasks can follow a Collect()")
			}
			break // no tasks can come after a collect
		}
	}
	// a trailing materialize leaves an empty stage behind
	if len(stages) > 1 && len(stages[len(stages)-1].frames) == 0 {
		stages = stages[:len(stages)-1]
	}
	// hack for checking if we never called endStage() on the last stage, which can
	// happen if it's just a set of map()s which don't end in a collect, accumulate or materialize
	if len(stages) > 0 && stages[len(stages)-1].outgoingSchema == nil {
		endStage()
	}
	return &planImpl{stages, df.parser, df.source}
}

// AnalyzeSource returns a PartitionMap for the source data for this DataFrame
func (df *dataFrameImpl) AnalyzeSource() (strata.PartitionMap, error) {
	return df.source.Analyze()
}

// workerExecuteTask runs this DataFrame's task against the previous Partition,
// returning the modified Partition (or a new one(s) if necessary).
// A Task may return both Partitions and an error, when row errors
// produced a partial result. The previous Partition may be nil.
func (df *dataFrameImpl) workerExecuteTask(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	res, err := df.task.RunWorker(sctx, previous)
	// update current schemas
	for _, out := range res {
		out.UpdateCurrentSchema(df.schema)
	}
	return res, err
}
