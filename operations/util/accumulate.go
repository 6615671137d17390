package util

import (
	"fmt"

	"github.com/go-strata/strata"
	"github.com/hashicorp/go-multierror"
)

type accumulateTask struct {
	facc strata.AccumulatorFactory
}

func (s *accumulateTask) RunInitialize(sctx strata.StageContext) error {
	return nil
}

// RunWorker for accumulateTask siphons rows into this worker's Accumulator.
// Worker Accumulators are merged by the engine when the stage ends.
func (s *accumulateTask) RunWorker(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	accumulator := sctx.Accumulator()
	if accumulator == nil {
		return nil, fmt.Errorf("No Accumulator is available for this Stage")
	}
	var multierr *multierror.Error
	for i := 0; i < previous.GetNumRows(); i++ {
		if err := accumulator.Accumulate(previous.GetRow(i)); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return []strata.OperablePartition{previous}, multierr.ErrorOrNil()
}

func (s *accumulateTask) GetAccumulatorFactory() strata.AccumulatorFactory {
	return s.facc
}

// Accumulate combines rows across workers, using a user-provided data
// structure. This also signals the end of a DataFrame's tasks.
func Accumulate(facc strata.AccumulatorFactory) *strata.DataFrameOperation {
	return &strata.DataFrameOperation{
		TaskType: strata.AccumulateTaskType,
		Do: func(d strata.DataFrame) (*strata.DataFrameOperationResult, error) {
			return &strata.DataFrameOperationResult{
				Task: &accumulateTask{
					facc: facc,
				},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
