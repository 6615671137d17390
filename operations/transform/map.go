package transform

import (
	"github.com/go-strata/strata"
	iutil "github.com/go-strata/strata/internal/util"
)

type mapTask struct {
	fn strata.MapOperation
}

func (s *mapTask) RunInitialize(sctx strata.StageContext) error {
	return nil
}

func (s *mapTask) RunWorker(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	next, err := previous.MapRows(s.fn)
	if next == nil {
		return nil, err
	}
	// row errors leave a partial result, which continues through the stage
	return []strata.OperablePartition{next}, err
}

// Map transforms a Row in-place
func Map(fn strata.MapOperation) *strata.DataFrameOperation {
	return &strata.DataFrameOperation{
		TaskType: strata.MapTaskType,
		Do: func(d strata.DataFrame) (*strata.DataFrameOperationResult, error) {
			return &strata.DataFrameOperationResult{
				Task:       &mapTask{fn: iutil.SafeMapOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
