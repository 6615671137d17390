package transform

import (
	"fmt"
	"sync"

	"github.com/go-strata/strata"
	itypes "github.com/go-strata/strata/internal/types"
)

type distinctTask struct {
	lock sync.Mutex
	seen map[uint64]bool
}

func (s *distinctTask) RunInitialize(sctx strata.StageContext) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.seen = make(map[uint64]bool)
	return nil
}

func (s *distinctTask) RunWorker(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	next, err := previous.FilterRows(func(row strata.Row) (bool, error) {
		arow, ok := row.(itypes.AccessibleRow)
		if !ok {
			return false, fmt.Errorf("Row %s does not grant access to its internals", row.ToString())
		}
		fp, err := arow.Fingerprint()
		if err != nil {
			return false, err
		}
		s.lock.Lock()
		defer s.lock.Unlock()
		if s.seen[fp] {
			return false, nil
		}
		s.seen[fp] = true
		return true, nil
	})
	if next == nil {
		return nil, err
	}
	// row errors leave a partial result, which continues through the stage
	return []strata.OperablePartition{next}, err
}

// Distinct removes duplicate Rows, retaining the first occurrence of
// each. Rows are compared by a fingerprint of their canonical
// serialization, so field order within documents does not matter.
func Distinct() *strata.DataFrameOperation {
	return &strata.DataFrameOperation{
		TaskType: strata.DistinctTaskType,
		Do: func(d strata.DataFrame) (*strata.DataFrameOperationResult, error) {
			return &strata.DataFrameOperationResult{
				Task:       &distinctTask{},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
