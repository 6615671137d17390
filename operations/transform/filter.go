package transform

import (
	"github.com/go-strata/strata"
	iutil "github.com/go-strata/strata/internal/util"
)

type filterTask struct {
	fn strata.FilterOperation
}

func (s *filterTask) RunInitialize(sctx strata.StageContext) error {
	return nil
}

func (s *filterTask) RunWorker(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	next, err := previous.FilterRows(s.fn)
	if next == nil {
		return nil, err
	}
	// row errors leave a partial result, which continues through the stage
	return []strata.OperablePartition{next}, err
}

// Filter filters Rows out of a Partition, creating a new one
func Filter(fn strata.FilterOperation) *strata.DataFrameOperation {
	return &strata.DataFrameOperation{
		TaskType: strata.FilterTaskType,
		Do: func(d strata.DataFrame) (*strata.DataFrameOperationResult, error) {
			return &strata.DataFrameOperationResult{
				Task:       &filterTask{fn: iutil.SafeFilterOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
