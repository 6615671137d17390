package errors

import (
	"fmt"
)

// NilValueError occurs when a value in a Row is null
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for field %s is nil", e.Name)
}

// FieldNotFoundError occurs when a field name does not exist within a Schema
type FieldNotFoundError struct{ Name string }

// Error returns a textual representation of this FieldNotFoundError
func (e FieldNotFoundError) Error() string {
	return fmt.Sprintf("Field %s is not found", e.Name)
}

// NotStructError occurs when a nested field is defined within a field which is not a struct or an array of structs
type NotStructError struct{ Name string }

// Error returns a textual representation of this NotStructError
func (e NotStructError) Error() string {
	return fmt.Sprintf("Field %s is not a struct or an array of structs", e.Name)
}

// MultipleValuesError occurs when a single value is requested via a field name which is addressed through an array of nested documents, and therefore refers to multiple values
type MultipleValuesError struct{ Name string }

// Error returns a textual representation of this MultipleValuesError
func (e MultipleValuesError) Error() string {
	return fmt.Sprintf("Field %s is addressed through an array and refers to multiple values", e.Name)
}

// IncompatibleFieldTypeError occurs when a value does not match the FieldType of its field
type IncompatibleFieldTypeError struct {
	Name string
	Err  error
}

// Error returns a textual representation of this IncompatibleFieldTypeError
func (e IncompatibleFieldTypeError) Error() string {
	return fmt.Sprintf("Value for field %s is not compatible with its field type: %v", e.Name, e.Err)
}

// PartitionFullError occurs when a Partition has reached its max size and a new Row insertion is attempted
type PartitionFullError struct{}

// Error returns a textual representation of this PartitionFullError
func (e PartitionFullError) Error() string {
	return "Partition is full"
}

// NoMorePartitionsError occurs when there are no more partitions in a PartitionIterator
type NoMorePartitionsError struct{}

// Error returns a textual representation of this NoMorePartitionsError
func (e NoMorePartitionsError) Error() string {
	return "No more partitions"
}
