package transform

import (
	"github.com/go-strata/strata"
)

// withFieldTask is a task that does nothing
type withFieldTask struct{}

func (s *withFieldTask) RunInitialize(sctx strata.StageContext) error {
	return nil
}

// RunWorker for withFieldTask does nothing
func (s *withFieldTask) RunWorker(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	return []strata.OperablePartition{previous}, nil
}

// WithField declares that a new (nil-valued) field with a specific
// type and name should be available to the next Task of the
// DataFrame pipeline. Nested fields are declared using their full
// dot-delimited path, and their enclosing fields must already exist.
func WithField(name string, fieldType strata.FieldType) *strata.DataFrameOperation {
	return &strata.DataFrameOperation{
		TaskType: strata.WithFieldTaskType,
		Do: func(d strata.DataFrame) (*strata.DataFrameOperationResult, error) {
			newSchema, err := d.GetSchema().Clone().CreateField(name, fieldType)
			if err != nil {
				return nil, err
			}
			return &strata.DataFrameOperationResult{
				Task:       &withFieldTask{},
				DataSchema: newSchema,
			}, nil
		},
	}
}
