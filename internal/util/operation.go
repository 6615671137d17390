package util

import (
	"fmt"

	"github.com/go-strata/strata"
)

// SafeMapOperation wraps a MapOperation such that panics are recovered and nice error messages are constructed
func SafeMapOperation(mapOp strata.MapOperation) (safeMapOp strata.MapOperation) {
	return func(row strata.Row) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Map Panic: %w\nRow: %s\n%s", anErr, row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Map Panic: %v\nRow: %s\n%s", r, row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Map Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		err = mapOp(row)
		return
	}
}

// SafeFilterOperation wraps a FilterOperation such that panics are recovered and nice error messages are constructed
func SafeFilterOperation(filterOp strata.FilterOperation) (safeFilterOp strata.FilterOperation) {
	return func(row strata.Row) (shouldKeep bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Filter Panic: %w\nRow: %s\n%s", anErr, row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Filter Panic: %v\nRow: %s\n%s", r, row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Filter Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		shouldKeep, err = filterOp(row)
		return
	}
}

// SafeFieldTransform wraps a FieldTransform such that panics are recovered and nice error messages are constructed
func SafeFieldTransform(tfn strata.FieldTransform) (safeTfn strata.FieldTransform) {
	return func(enclosing map[string]interface{}, val interface{}) (newVal interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Field Transform Panic: %w\nValue: %v\n%s", anErr, val, GetTrace())
				} else {
					err = fmt.Errorf("Field Transform Panic: %v\nValue: %v\n%s", r, val, GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Field Transform Error: %w\nValue: %v", err, val)
			}
		}()
		newVal, err = tfn(enclosing, val)
		return
	}
}
