package strata

import "time"

// Row is a representation of a single nested document
// (a slice of a Partition), along with a reference to the Schema
// for that row (a tree of named, typed fields). In practice, users
// of Row will call its getter and setter methods to retrieve,
// manipulate and store data
type Row interface {
	Schema() Schema                                                  // Schema returns a read-only copy of the schema for a row
	ToString() string                                                // ToString returns a string representation of this row
	IsNil(name string) bool                                          // IsNil returns true iff the given field value is nil in this row. If an error occurs, this function will return false.
	SetNil(name string) error                                        // SetNil sets the given field value to nil within this row
	Get(name string) (val interface{}, err error)                    // Get returns the value of any field as an interface{}, if it exists. Fields addressed through arrays of nested documents cannot be retrieved with Get, as they refer to multiple values.
	GetBool(name string) (val bool, err error)                       // GetBool retrieves a single bool from the field with the given name.
	GetInt64(name string) (val int64, err error)                     // GetInt64 retrieves a single int64 from the field with the given name
	GetFloat64(name string) (val float64, err error)                 // GetFloat64 retrieves a single float64 from the field with the given name
	GetString(name string) (val string, err error)                   // GetString retrieves a single string from the field with the given name
	GetTime(name string) (val time.Time, err error)                  // GetTime retrieves a single Time from the field with the given name
	GetStruct(name string) (val map[string]interface{}, err error)   // GetStruct retrieves a nested document from the field with the given name
	GetArray(name string) (val []interface{}, err error)             // GetArray retrieves an array from the field with the given name
	Set(name string, value interface{}) (err error)                  // Set modifies the value of any field, coercing the given value via the field's FieldType
	SetBool(name string, value bool) (err error)                     // SetBool modifies a single bool from the field with the given name.
	SetInt64(name string, value int64) (err error)                   // SetInt64 modifies a single int64 from the field with the given name.
	SetFloat64(name string, value float64) (err error)               // SetFloat64 modifies a single float64 from the field with the given name.
	SetString(name string, value string) (err error)                 // SetString modifies a single string from the field with the given name.
	SetTime(name string, value time.Time) (err error)                // SetTime modifies a single Time from the field with the given name.
	SetStruct(name string, value map[string]interface{}) (err error) // SetStruct modifies a nested document from the field with the given name.
	SetArray(name string, value []interface{}) (err error)           // SetArray modifies an array from the field with the given name.
	TransformField(name string, tfn FieldTransform) (err error)      // TransformField rewrites every value addressed by the given field name, including values addressed through arrays of nested documents
}
