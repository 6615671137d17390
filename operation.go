package strata

// AccumulatorFactory is a function that produces a fresh Accumulator
type AccumulatorFactory func() Accumulator

// DataFrameOperationResult is the result of a DataFrameOperation
type DataFrameOperationResult struct {
	Task       Task   // the task which should be executed to apply this operation to Partitions
	DataSchema Schema // the Schema of the data after this operation is applied
}

// DataFrameOperation - A generic DataFrame transform, returning a Task that performs the "work", the type of the Task, and a (potentially) altered Schema.
type DataFrameOperation struct {
	TaskType TaskType
	Do       func(df DataFrame) (*DataFrameOperationResult, error)
}

// MapOperation - A generic function for manipulating Rows in-place
type MapOperation func(row Row) error

// FilterOperation - A generic function for determining whether or not a Row should be retained
type FilterOperation func(row Row) (bool, error)

// FieldTransform - A generic function for rewriting a single value within a Row, returning
// the replacement value. For values addressed through an array of nested documents, enclosing
// is the document which directly contains val, granting access to its sibling fields. For
// top-level values, enclosing is the root document of the Row.
type FieldTransform func(enclosing map[string]interface{}, val interface{}) (interface{}, error)
