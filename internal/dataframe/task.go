package dataframe

import (
	"github.com/go-strata/strata"
)

// An accumulationTask is a task that represents an accumulation
type accumulationTask interface {
	strata.Task
	GetAccumulatorFactory() strata.AccumulatorFactory
}

// A collectionTask is a task that represents collecting data to the client
type collectionTask interface {
	strata.Task
	GetCollectionLimit() int64
}

// noOpTask is a task that does nothing
type noOpTask struct{}

// RunInitialize for noOpTask does nothing
func (s *noOpTask) RunInitialize(sctx strata.StageContext) error {
	return nil
}

// RunWorker for noOpTask does nothing
func (s *noOpTask) RunWorker(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	return []strata.OperablePartition{previous}, nil
}
