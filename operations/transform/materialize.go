package transform

import (
	"github.com/go-strata/strata"
)

// materializeTask is a task that does nothing. Materialization is
// performed by the engine at the Stage boundary this task introduces.
type materializeTask struct{}

func (s *materializeTask) RunInitialize(sctx strata.StageContext) error {
	return nil
}

// RunWorker for materializeTask does nothing
func (s *materializeTask) RunWorker(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	return []strata.OperablePartition{previous}, nil
}

// Materialize ends the current Stage, forcing the evaluation of all of
// its pending transformations and buffering the resulting Partitions
// before the next Stage begins. Materializing periodically bounds the
// depth of long pipelines.
func Materialize() *strata.DataFrameOperation {
	return &strata.DataFrameOperation{
		TaskType: strata.MaterializeTaskType,
		Do: func(d strata.DataFrame) (*strata.DataFrameOperationResult, error) {
			return &strata.DataFrameOperationResult{
				Task:       &materializeTask{},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
