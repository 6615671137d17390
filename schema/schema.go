package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-strata/strata"
	errors "github.com/go-strata/strata/errors"
)

// field describes a single named, typed field within a Schema,
// along with its child fields if it encloses a nested document.
type field struct {
	idx    int    // position of this field within its enclosing document
	name   string // dot-delimited path of this field within its Schema
	ftype  strata.FieldType
	fields map[string]*field // child fields, present iff ftype is struct-like
}

// Clone returns a copy of this Field
func (f *field) Clone() strata.Field {
	return f.clone()
}

func (f *field) clone() *field {
	var children map[string]*field
	if f.fields != nil {
		children = make(map[string]*field, len(f.fields))
		for k, v := range f.fields {
			children[k] = v.clone()
		}
	}
	return &field{f.idx, f.name, f.ftype, children} // TODO careful with not cloning field type
}

// Name returns the dot-delimited path of this Field within its Schema
func (f *field) Name() string {
	return f.name
}

// Type returns the FieldType of this Field
func (f *field) Type() strata.FieldType {
	return f.ftype
}

// rename updates the path of this field and all of its descendants
func (f *field) rename(name string) {
	f.name = name
	for k, c := range f.fields {
		c.rename(fmt.Sprintf("%s.%s", name, k))
	}
}

// orderedFields returns the fields of a single document level, in document order
func orderedFields(fields map[string]*field) []*field {
	ordered := make([]*field, 0, len(fields))
	for _, f := range fields {
		ordered = append(ordered, f)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].idx < ordered[j].idx
	})
	return ordered
}

// visitFields visits every field in a document level depth-first,
// visiting each field before its children
func visitFields(fields map[string]*field, fn func(f *field) error) error {
	for _, f := range orderedFields(fields) {
		if err := fn(f); err != nil {
			return err
		}
		if f.fields != nil {
			if err := visitFields(f.fields, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Schema is a tree of named, typed fields describing the shape
// of nested documents within a Partition. It allows one to look
// up fields by name, define new fields, remove fields, etc.
type schema struct {
	fields map[string]*field
}

// CreateSchema is a factory for Schemas
func CreateSchema() strata.Schema {
	return &schema{
		fields: make(map[string]*field),
	}
}

// resolve locates a field within this Schema by its dot-delimited path
func (s *schema) resolve(name string) (*field, error) {
	segments := strings.Split(name, ".")
	cur := s.fields
	for i, segment := range segments {
		f, ok := cur[segment]
		if !ok {
			return nil, errors.FieldNotFoundError{Name: name}
		}
		if i == len(segments)-1 {
			return f, nil
		}
		if f.fields == nil {
			return nil, errors.FieldNotFoundError{Name: name}
		}
		cur = f.fields
	}
	return nil, errors.FieldNotFoundError{Name: name}
}

// resolveEnclosing locates the document level which encloses a (potential)
// field with the given dot-delimited path, returning that level along with
// the final path segment
func (s *schema) resolveEnclosing(name string) (map[string]*field, string, error) {
	segments := strings.Split(name, ".")
	cur := s.fields
	for i, segment := range segments[:len(segments)-1] {
		f, ok := cur[segment]
		if !ok {
			return nil, "", errors.FieldNotFoundError{Name: strings.Join(segments[:i+1], ".")}
		}
		if f.fields == nil {
			return nil, "", errors.NotStructError{Name: f.name}
		}
		cur = f.fields
	}
	return cur, segments[len(segments)-1], nil
}

// Equals returns nil iff this and another Schema are equivalent
func (s *schema) Equals(otherSchema strata.Schema) error {
	names := s.FieldNames()
	otherNames := otherSchema.FieldNames()
	if len(names) != len(otherNames) {
		return fmt.Errorf("Schemas have unequal numbers of fields")
	}
	for i := range names {
		if names[i] != otherNames[i] {
			return fmt.Errorf("Field %s does not match field %s in position %d", names[i], otherNames[i], i)
		}
	}
	return s.ForEachField(func(name string, f strata.Field) error {
		otherField, err := otherSchema.GetField(name)
		if err != nil {
			return err
		}
		if !reflect.DeepEqual(f.Type(), otherField.Type()) {
			return fmt.Errorf("Field %s types do not match", name)
		}
		return nil
	})
}

// Clone returns a copy of this Schema
func (s *schema) Clone() strata.Schema {
	newFields := make(map[string]*field, len(s.fields))
	for k, v := range s.fields {
		newFields[k] = v.clone()
	}
	return &schema{fields: newFields}
}

// NumFields returns the total number of fields in this Schema, including
// nested fields and the structs and arrays which enclose them
func (s *schema) NumFields() int {
	count := 0
	visitFields(s.fields, func(f *field) error {
		count++
		return nil
	})
	return count
}

// NumTopLevelFields returns the number of top-level fields in this Schema
func (s *schema) NumTopLevelFields() int {
	return len(s.fields)
}

// GetField returns the field with the given dot-delimited path, if it exists
func (s *schema) GetField(name string) (strata.Field, error) {
	return s.resolve(name)
}

// HasField returns true iff this schema contains a field with the given dot-delimited path
func (s *schema) HasField(name string) bool {
	_, err := s.resolve(name)
	return err == nil
}

// CreateField defines a new field within the Schema. Nested fields may only be
// defined within an existing field whose type is a struct, or an array of structs.
func (s *schema) CreateField(name string, fieldType strata.FieldType) (newSchema strata.Schema, err error) {
	enclosing, leaf, err := s.resolveEnclosing(name)
	if err != nil {
		return nil, err
	}
	if _, containsField := enclosing[leaf]; containsField {
		return nil, fmt.Errorf("Schema already contains field with name %s", name)
	}
	f := &field{idx: len(enclosing), name: name, ftype: fieldType}
	if strata.IsStructLike(fieldType) {
		f.fields = make(map[string]*field)
	}
	enclosing[leaf] = f
	newSchema = s
	return
}

// RenameField renames a field within the Schema. Fields cannot be moved
// between documents, so both paths must share the same enclosing field.
func (s *schema) RenameField(oldName string, newName string) (newSchema strata.Schema, err error) {
	oldSegments := strings.Split(oldName, ".")
	newSegments := strings.Split(newName, ".")
	if strings.Join(oldSegments[:len(oldSegments)-1], ".") != strings.Join(newSegments[:len(newSegments)-1], ".") {
		return nil, fmt.Errorf("Cannot rename field %s into a different enclosing document", oldName)
	}
	enclosing, oldLeaf, err := s.resolveEnclosing(oldName)
	if err != nil {
		return nil, err
	}
	f, ok := enclosing[oldLeaf]
	if !ok {
		return nil, errors.FieldNotFoundError{Name: oldName}
	}
	newLeaf := newSegments[len(newSegments)-1]
	if _, containsField := enclosing[newLeaf]; containsField {
		return nil, fmt.Errorf("Schema already contains field with name %s", newName)
	}
	delete(enclosing, oldLeaf)
	enclosing[newLeaf] = f
	f.rename(newName)
	newSchema = s
	return
}

// RemoveField removes a field (and any nested fields it encloses) from the
// Schema, if it exists. Removing a field which does not exist is not an error.
func (s *schema) RemoveField(name string) (strata.Schema, bool) {
	enclosing, leaf, err := s.resolveEnclosing(name)
	if err != nil {
		return s, false
	}
	f, ok := enclosing[leaf]
	if !ok {
		return s, false
	}
	delete(enclosing, leaf)
	// close the gap in document order left by the removed field
	for _, sibling := range enclosing {
		if sibling.idx > f.idx {
			sibling.idx--
		}
	}
	return s, true
}

// FieldNames returns the dot-delimited path of every field in this Schema,
// in depth-first document order, with each field preceding its children
func (s *schema) FieldNames() []string {
	names := make([]string, 0, len(s.fields))
	visitFields(s.fields, func(f *field) error {
		names = append(names, f.name)
		return nil
	})
	return names
}

// FieldTypes returns the FieldType of every field in this Schema,
// in depth-first document order
func (s *schema) FieldTypes() []strata.FieldType {
	types := make([]strata.FieldType, 0, len(s.fields))
	visitFields(s.fields, func(f *field) error {
		types = append(types, f.ftype)
		return nil
	})
	return types
}

// ForEachField iterates over the fields in this Schema in depth-first
// document order, visiting each field before its children
func (s *schema) ForEachField(fn func(name string, field strata.Field) error) error {
	return visitFields(s.fields, func(f *field) error {
		return fn(f.name, f)
	})
}
