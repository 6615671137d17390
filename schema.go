package strata

// Schema is a tree of named, typed fields describing the shape
// of nested documents within a Partition. Nested fields are
// addressed by dot-delimited paths, and fields addressed through
// an array of nested documents refer to the field within every
// element of the array. It allows one to look up fields by name,
// define new fields, remove fields, etc.
type Schema interface {
	Equals(otherSchema Schema) error
	Clone() Schema
	NumFields() int // the total number of fields in this Schema, including nested fields and the structs and arrays which enclose them
	NumTopLevelFields() int
	GetField(name string) (field Field, err error)
	HasField(name string) bool
	CreateField(name string, fieldType FieldType) (newSchema Schema, err error)
	RenameField(oldName string, newName string) (newSchema Schema, err error)
	RemoveField(name string) (newSchema Schema, wasRemoved bool)
	FieldNames() []string    // the dot-delimited path of every field in this Schema, in depth-first document order
	FieldTypes() []FieldType // the FieldType of every field in this Schema, in depth-first document order
	ForEachField(fn func(name string, field Field) error) error
}

// Field describes a single named, typed field within a Schema.
type Field interface {
	Clone() Field    // Clone returns a copy of this Field
	Name() string    // Name returns the dot-delimited path of this Field within its Schema
	Type() FieldType // Type returns the FieldType of this Field
}
