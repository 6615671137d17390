package transform

import (
	"sync/atomic"

	"github.com/go-strata/strata"
)

type limitTask struct {
	limit     int64
	remaining int64
}

func (s *limitTask) RunInitialize(sctx strata.StageContext) error {
	// workers share the row budget. Every worker resets it during stage
	// initialization, before any of them starts processing.
	atomic.StoreInt64(&s.remaining, s.limit)
	return nil
}

func (s *limitTask) RunWorker(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	// claim as many rows as the remaining budget allows
	numRows := int64(previous.GetNumRows())
	after := atomic.AddInt64(&s.remaining, -numRows)
	kept := numRows
	if after < 0 {
		kept += after
		if kept < 0 {
			kept = 0
		}
	}
	if kept == numRows {
		return []strata.OperablePartition{previous}, nil
	}
	var i int64
	next, err := previous.FilterRows(func(row strata.Row) (bool, error) {
		i++
		return i <= kept, nil
	})
	if err != nil {
		return nil, err
	}
	return []strata.OperablePartition{next}, nil
}

// Limit caps the total number of Rows which pass through to the next
// operation, counted across all Partitions. Limit(0) produces an empty
// dataset with an unchanged Schema.
func Limit(limit int64) *strata.DataFrameOperation {
	return &strata.DataFrameOperation{
		TaskType: strata.LimitTaskType,
		Do: func(d strata.DataFrame) (*strata.DataFrameOperationResult, error) {
			return &strata.DataFrameOperationResult{
				Task:       &limitTask{limit: limit},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
