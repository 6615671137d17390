package strata

import (
	"fmt"
	"strings"
	"time"
)

// IsStructLike returns true iff ftype describes a nested document, or an array of nested documents
func IsStructLike(ftype FieldType) (isStructLike bool) {
	if arr, ok := ftype.(*ArrayFieldType); ok {
		return IsStructLike(arr.ElemType)
	}
	_, isStructLike = ftype.(*StructFieldType)
	return
}

// FieldType is an interface which is implemented to define supported field types.
// Strata provides a variety of built-in types in this package.
type FieldType interface {
	ToString(v interface{}) string                // produces a string representation of a value of this type
	Normalize(v interface{}) (interface{}, error) // coerces a decoded or client-supplied value to the canonical in-memory representation of this type
}

// BoolFieldType is a field type which stores a boolean value
type BoolFieldType struct{}

// ToString produces a string representation of a value of a BoolFieldType value
func (b *BoolFieldType) ToString(v interface{}) string {
	return fmt.Sprintf("%t", v.(bool))
}

// Normalize coerces a value to a bool
func (b *BoolFieldType) Normalize(v interface{}) (interface{}, error) {
	if tv, ok := v.(bool); ok {
		return tv, nil
	}
	return nil, fmt.Errorf("Value %v is not a bool", v)
}

// IntFieldType is a field type which stores an int64 value
type IntFieldType struct{}

// ToString produces a string representation of a value of an IntFieldType value
func (b *IntFieldType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int64))
}

// Normalize coerces a value to an int64. Whole-number floats are
// converted, as decoded JSON numbers are always float64s.
func (b *IntFieldType) Normalize(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case int64:
		return tv, nil
	case int:
		return int64(tv), nil
	case float64:
		return int64(tv), nil
	}
	return nil, fmt.Errorf("Value %v is not an int", v)
}

// FloatFieldType is a field type which stores a float64 value
type FloatFieldType struct{}

// ToString produces a string representation of a value of a FloatFieldType value
func (b *FloatFieldType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float64))
}

// Normalize coerces a value to a float64
func (b *FloatFieldType) Normalize(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case float64:
		return tv, nil
	case int64:
		return float64(tv), nil
	case int:
		return float64(tv), nil
	}
	return nil, fmt.Errorf("Value %v is not a float", v)
}

// StringFieldType is a field type which stores a string value
type StringFieldType struct{}

// ToString produces a string representation of a value of a StringFieldType value
func (b *StringFieldType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// Normalize coerces a value to a string
func (b *StringFieldType) Normalize(v interface{}) (interface{}, error) {
	if tv, ok := v.(string); ok {
		return tv, nil
	}
	return nil, fmt.Errorf("Value %v is not a string", v)
}

// TimeFieldType is a field type which stores a time.Time value. Because of https://github.com/golang/go/issues/15716, Times stored and retrieved may fail equality tests, despite passing UnixNano() equality tests.
type TimeFieldType struct {
	Format string
}

// ToString produces a string representation of a value of a TimeFieldType value
func (b *TimeFieldType) ToString(v interface{}) string {
	if len(b.Format) > 0 {
		return fmt.Sprintf("\"%s\"", v.(time.Time).Format(b.Format))
	}
	return fmt.Sprintf("\"%s\"", v.(time.Time).String())
}

// Normalize coerces a value to a time.Time, parsing strings with this type's Format
func (b *TimeFieldType) Normalize(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case time.Time:
		return tv, nil
	case string:
		if len(b.Format) > 0 {
			if t, err := time.Parse(b.Format, tv); err == nil {
				return t, nil
			}
		}
		// serialized Times round-trip through RFC 3339
		return time.Parse(time.RFC3339Nano, tv)
	}
	return nil, fmt.Errorf("Value %v is not a time", v)
}

// StructFieldType is a field type which stores a nested document of named fields. The
// fields within the document are described by child Fields within a Schema.
type StructFieldType struct{}

// ToString produces a string representation of a StructFieldType value
func (b *StructFieldType) ToString(v interface{}) string {
	doc := v.(map[string]interface{})
	var res strings.Builder
	fmt.Fprint(&res, "{")
	i := 0
	for k := range doc {
		// don't print more than 5 entries
		if i > 5 {
			fmt.Fprintf(&res, "... %d more", len(doc)-5)
			break
		}
		fmt.Fprintf(&res, "%s,", k)
		i++
	}
	fmt.Fprint(&res, "}")
	return res.String()
}

// Normalize confirms that a value is a nested document. Values within
// the document are normalized individually, via their own Fields.
func (b *StructFieldType) Normalize(v interface{}) (interface{}, error) {
	if tv, ok := v.(map[string]interface{}); ok {
		return tv, nil
	}
	return nil, fmt.Errorf("Value %v is not a nested document", v)
}

// ArrayFieldType is a field type which stores an array of values of a single element type
type ArrayFieldType struct {
	ElemType FieldType
}

// ToString produces a string representation of an ArrayFieldType value
func (b *ArrayFieldType) ToString(v interface{}) string {
	arr := v.([]interface{})
	var res strings.Builder
	fmt.Fprint(&res, "[")
	i := 0
	for _, e := range arr {
		// don't print more than 5 entries
		if i > 5 {
			fmt.Fprintf(&res, "... %d more", len(arr)-5)
			break
		}
		fmt.Fprintf(&res, "%s,", b.ElemType.ToString(e))
		i++
	}
	fmt.Fprint(&res, "]")
	return res.String()
}

// Normalize coerces a value to an array, normalizing each element
func (b *ArrayFieldType) Normalize(v interface{}) (interface{}, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("Value %v is not an array", v)
	}
	for i, e := range arr {
		ne, err := b.ElemType.Normalize(e)
		if err != nil {
			return nil, err
		}
		arr[i] = ne
	}
	return arr, nil
}
