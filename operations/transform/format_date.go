package transform

import (
	"time"

	"github.com/go-strata/strata"
	"github.com/go-strata/strata/internal/datefmt"
	iutil "github.com/go-strata/strata/internal/util"
)

type formatDateTask struct {
	name string
	tfn  strata.FieldTransform
}

func (s *formatDateTask) RunInitialize(sctx strata.StageContext) error {
	return nil
}

func (s *formatDateTask) RunWorker(sctx strata.StageContext, previous strata.OperablePartition) ([]strata.OperablePartition, error) {
	next, err := previous.MapRows(func(row strata.Row) error {
		return row.TransformField(s.name, s.tfn)
	})
	if next == nil {
		return nil, err
	}
	// row errors leave a partial result, which continues through the stage
	return []strata.OperablePartition{next}, err
}

// reformatValue rewrites date strings from one layout to another. Values
// which are not strings, or which do not parse under the current layout,
// pass through unchanged.
func reformatValue(currentLayout string, targetLayout string) strata.FieldTransform {
	return func(enclosing map[string]interface{}, val interface{}) (interface{}, error) {
		str, ok := val.(string)
		if !ok {
			return val, nil
		}
		t, err := time.Parse(currentLayout, str)
		if err != nil {
			return val, nil
		}
		return t.Format(targetLayout), nil
	}
}

func formatDate(name string, currentFormat string, targetFormat string, tfn func(strata.FieldTransform) strata.FieldTransform) *strata.DataFrameOperation {
	return &strata.DataFrameOperation{
		TaskType: strata.MapTaskType,
		Do: func(d strata.DataFrame) (*strata.DataFrameOperationResult, error) {
			currentLayout, err := datefmt.ToGoLayout(currentFormat)
			if err != nil {
				return nil, err
			}
			targetLayout, err := datefmt.ToGoLayout(targetFormat)
			if err != nil {
				return nil, err
			}
			return &strata.DataFrameOperationResult{
				Task: &formatDateTask{
					name: name,
					tfn:  iutil.SafeFieldTransform(tfn(reformatValue(currentLayout, targetLayout))),
				},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}

// FormatDate rewrites the date strings held by the given field from one
// SimpleDateFormat-style pattern to another. The field may be nested, and
// fields addressed through arrays of nested documents are rewritten within
// every element. Values which do not parse under currentFormat are left
// unchanged.
func FormatDate(name string, currentFormat string, targetFormat string) *strata.DataFrameOperation {
	return formatDate(name, currentFormat, targetFormat, func(tfn strata.FieldTransform) strata.FieldTransform {
		return tfn
	})
}

// FormatDateWithPredicate is FormatDate restricted to documents in which
// the sibling field predicateKey holds the string predicateValue. All other
// values are left untouched, whether or not they parse under currentFormat.
func FormatDateWithPredicate(name string, currentFormat string, targetFormat string, predicateKey string, predicateValue string) *strata.DataFrameOperation {
	return formatDate(name, currentFormat, targetFormat, func(tfn strata.FieldTransform) strata.FieldTransform {
		return func(enclosing map[string]interface{}, val interface{}) (interface{}, error) {
			if sibling, ok := enclosing[predicateKey].(string); !ok || sibling != predicateValue {
				return val, nil
			}
			return tfn(enclosing, val)
		}
	})
}
