package partition

import (
	"fmt"
	"strings"

	time "time"

	"github.com/go-strata/strata"
	errors "github.com/go-strata/strata/errors"
)

// Row is a representation of a single row of nested data
// (a slice of a Partition), along with a reference to the
// Schema for that row (a mapping of field paths to field
// types). In practice, users of Row will call its getter
// and setter methods to retrieve, manipulate and store data
type rowImpl struct {
	partID string
	doc    map[string]interface{} // the nested document this row wraps
	schema strata.Schema          // schema lets us pick the values we need out of the row
}

// CreateRow builds a new row from individual internal components
func CreateRow(partID string, doc map[string]interface{}, schema strata.Schema) strata.Row {
	return &rowImpl{partID: partID, doc: doc, schema: schema}
}

// CreateTempRow builds an empty row struct which cannot be used until passed to a function which populates it with data
func CreateTempRow() strata.Row {
	return &rowImpl{}
}

// Schema returns a read-only copy of the schema for a row
func (r *rowImpl) Schema() strata.Schema {
	return r.schema.Clone() // TODO expensive but safe?
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	r.schema.ForEachField(func(name string, field strata.Field) error {
		// nested fields are rendered as part of their enclosing struct
		if strings.Contains(name, ".") {
			return nil
		}
		var val string
		if r.IsNil(name) {
			val = "nil"
		} else {
			v, err := r.Get(name)
			if err != nil {
				return err
			}
			val = field.Type().ToString(v)
		}
		fmt.Fprintf(&res, "\"%s\": %s,", name, val)
		return nil
	})
	fmt.Fprint(&res, "}")
	return res.String()
}

// IsNil returns true iff the given field value is missing or nil in this row. If an error occurs, this function will return false.
func (r *rowImpl) IsNil(name string) bool {
	if !r.schema.HasField(name) {
		return false
	}
	_, err := docGet(r.doc, name)
	if _, ok := err.(errors.NilValueError); ok {
		return true
	}
	return false
}

// SetNil sets the given field value to nil within this row
func (r *rowImpl) SetNil(name string) error {
	if _, err := r.schema.GetField(name); err != nil {
		return err
	}
	return docSet(r.doc, name, nil)
}

// Get returns the value of any field as an interface{}, if it exists. A
// field addressed through an array of structs does not hold a single value
// and cannot be fetched this way.
func (r *rowImpl) Get(name string) (val interface{}, err error) {
	if _, err = r.schema.GetField(name); err != nil {
		return
	}
	return docGet(r.doc, name)
}

// GetBool retrieves a single bool from the field with the given name
func (r *rowImpl) GetBool(name string) (val bool, err error) {
	v, err := r.Get(name)
	if err != nil {
		return
	}
	val, ok := v.(bool)
	if !ok {
		err = errors.IncompatibleFieldTypeError{Name: name, Err: fmt.Errorf("expected bool, found %T", v)}
	}
	return
}

// GetInt64 retrieves a single int64 from the field with the given name
func (r *rowImpl) GetInt64(name string) (val int64, err error) {
	v, err := r.Get(name)
	if err != nil {
		return
	}
	val, ok := v.(int64)
	if !ok {
		err = errors.IncompatibleFieldTypeError{Name: name, Err: fmt.Errorf("expected int64, found %T", v)}
	}
	return
}

// GetFloat64 retrieves a single float64 from the field with the given name
func (r *rowImpl) GetFloat64(name string) (val float64, err error) {
	v, err := r.Get(name)
	if err != nil {
		return
	}
	val, ok := v.(float64)
	if !ok {
		err = errors.IncompatibleFieldTypeError{Name: name, Err: fmt.Errorf("expected float64, found %T", v)}
	}
	return
}

// GetString retrieves a single string from the field with the given name
func (r *rowImpl) GetString(name string) (val string, err error) {
	v, err := r.Get(name)
	if err != nil {
		return
	}
	val, ok := v.(string)
	if !ok {
		err = errors.IncompatibleFieldTypeError{Name: name, Err: fmt.Errorf("expected string, found %T", v)}
	}
	return
}

// GetTime retrieves a single time.Time from the field with the given name
func (r *rowImpl) GetTime(name string) (val time.Time, err error) {
	v, err := r.Get(name)
	if err != nil {
		return
	}
	val, ok := v.(time.Time)
	if !ok {
		err = errors.IncompatibleFieldTypeError{Name: name, Err: fmt.Errorf("expected time.Time, found %T", v)}
	}
	return
}

// GetStruct retrieves a nested document from the field with the given name
func (r *rowImpl) GetStruct(name string) (val map[string]interface{}, err error) {
	v, err := r.Get(name)
	if err != nil {
		return
	}
	val, ok := v.(map[string]interface{})
	if !ok {
		err = errors.IncompatibleFieldTypeError{Name: name, Err: fmt.Errorf("expected struct, found %T", v)}
	}
	return
}

// GetArray retrieves an array from the field with the given name
func (r *rowImpl) GetArray(name string) (val []interface{}, err error) {
	v, err := r.Get(name)
	if err != nil {
		return
	}
	val, ok := v.([]interface{})
	if !ok {
		err = errors.IncompatibleFieldTypeError{Name: name, Err: fmt.Errorf("expected array, found %T", v)}
	}
	return
}

// Set modifies a single field within this row, coercing the supplied value
// to the canonical representation of the field's type
func (r *rowImpl) Set(name string, value interface{}) (err error) {
	field, err := r.schema.GetField(name)
	if err != nil {
		return
	}
	normalized, err := field.Type().Normalize(value)
	if err != nil {
		return errors.IncompatibleFieldTypeError{Name: name, Err: err}
	}
	return docSet(r.doc, name, normalized)
}

// SetBool modifies a single bool field within this row
func (r *rowImpl) SetBool(name string, value bool) error {
	return r.Set(name, value)
}

// SetInt64 modifies a single int64 field within this row
func (r *rowImpl) SetInt64(name string, value int64) error {
	return r.Set(name, value)
}

// SetFloat64 modifies a single float64 field within this row
func (r *rowImpl) SetFloat64(name string, value float64) error {
	return r.Set(name, value)
}

// SetString modifies a single string field within this row
func (r *rowImpl) SetString(name string, value string) error {
	return r.Set(name, value)
}

// SetTime modifies a single time.Time field within this row
func (r *rowImpl) SetTime(name string, value time.Time) error {
	return r.Set(name, value)
}

// SetStruct modifies a nested document field within this row
func (r *rowImpl) SetStruct(name string, value map[string]interface{}) error {
	return r.Set(name, value)
}

// SetArray modifies an array field within this row
func (r *rowImpl) SetArray(name string, value []interface{}) error {
	return r.Set(name, value)
}

// TransformField rewrites the value of the field with the given name within
// every document which encloses it, including documents reached through
// arrays of structs. Missing and nil values are skipped.
func (r *rowImpl) TransformField(name string, tfn strata.FieldTransform) (err error) {
	if _, err = r.schema.GetField(name); err != nil {
		return
	}
	return docTransform(r.doc, name, tfn)
}
