package util

import (
	"github.com/go-strata/strata"
)

type collectTask struct {
	collectionLimit int64
}

func (s *collectTask) RunInitialize(sctx strata.StageContext) error {
	return nil
}

// RunWorker for collectTask does nothing
func (s *collectTask) RunWorker(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	return []strata.OperablePartition{previous}, nil
}

func (s *collectTask) GetCollectionLimit() int64 {
	return s.collectionLimit
}

// Collect declares that up to collectionLimit Partitions should be
// returned to the caller upon completion of the previous stage. This
// also signals the end of a DataFrame's tasks.
func Collect(collectionLimit int64) *strata.DataFrameOperation {
	return &strata.DataFrameOperation{
		TaskType: strata.CollectTaskType,
		Do: func(d strata.DataFrame) (*strata.DataFrameOperationResult, error) {
			return &strata.DataFrameOperationResult{
				Task:       &collectTask{collectionLimit},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
