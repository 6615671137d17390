package transform

import (
	"github.com/go-strata/strata"
)

type renameFieldTask struct {
	oldName string
	newName string
}

func (s *renameFieldTask) RunInitialize(sctx strata.StageContext) error {
	return nil
}

func (s *renameFieldTask) RunWorker(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	next, err := previous.RenameField(s.oldName, s.newName)
	if err != nil {
		return nil, err
	}
	return []strata.OperablePartition{next}, nil
}

// Rename renames an existing field, both in the Schema and within every
// document. Fields cannot be moved between enclosing documents, so newName
// is a full dot-delimited path sharing oldName's enclosing document.
func Rename(oldName string, newName string) *strata.DataFrameOperation {
	return &strata.DataFrameOperation{
		TaskType: strata.RenameFieldTaskType,
		Do: func(d strata.DataFrame) (*strata.DataFrameOperationResult, error) {
			newSchema, err := d.GetSchema().Clone().RenameField(oldName, newName)
			if err != nil {
				return nil, err
			}
			return &strata.DataFrameOperationResult{
				Task:       &renameFieldTask{oldName: oldName, newName: newName},
				DataSchema: newSchema,
			}, nil
		},
	}
}
