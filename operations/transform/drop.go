package transform

import (
	"github.com/go-strata/strata"
)

type dropFieldTask struct {
	names []string
}

func (s *dropFieldTask) RunInitialize(sctx strata.StageContext) error {
	return nil
}

func (s *dropFieldTask) RunWorker(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	next := previous
	var err error
	for _, name := range s.names {
		next, err = next.DropField(name)
		if err != nil {
			return nil, err
		}
	}
	return []strata.OperablePartition{next}, nil
}

// Drop removes existing fields, both from the Schema and from every
// document. A field addressed through an array of nested documents is
// removed from every element of the array. Dropping a field which does
// not exist is not an error.
func Drop(names ...string) *strata.DataFrameOperation {
	return &strata.DataFrameOperation{
		TaskType: strata.DropFieldTaskType,
		Do: func(d strata.DataFrame) (*strata.DataFrameOperationResult, error) {
			newSchema := d.GetSchema().Clone()
			for _, name := range names {
				newSchema, _ = newSchema.RemoveField(name)
			}
			return &strata.DataFrameOperationResult{
				Task:       &dropFieldTask{names: names},
				DataSchema: newSchema,
			}, nil
		},
	}
}
