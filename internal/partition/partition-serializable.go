package partition

import (
	"github.com/go-strata/strata"
	"github.com/go-strata/strata/errors"
	jsoniter "github.com/json-iterator/go"
)

// canonicalJSON sorts document keys during serialization, so identical
// documents always produce identical bytes
var canonicalJSON = jsoniter.Config{SortMapKeys: true}.Froze()

// partitionState is the serialized form of a partitionImpl
type partitionState struct {
	ID      string                   `json:"id"`
	MaxRows int                      `json:"maxRows"`
	Docs    []map[string]interface{} `json:"docs"`
}

// ToBytes serializes this Partition
func (p *partitionImpl) ToBytes() ([]byte, error) {
	return canonicalJSON.Marshal(&partitionState{ID: p.id, MaxRows: p.maxRows, Docs: p.docs})
}

// FromBytes converts serialized partition data into a Partition
func FromBytes(data []byte, schema strata.Schema) (strata.OperablePartition, error) {
	var state partitionState
	if err := canonicalJSON.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	part := &partitionImpl{
		id:      state.ID,
		maxRows: state.MaxRows,
		docs:    state.Docs,
		schema:  schema,
	}
	if part.docs == nil {
		part.docs = make([]map[string]interface{}, 0, part.maxRows)
	}
	for _, doc := range part.docs {
		if err := NormalizeDoc(schema, doc); err != nil {
			return nil, err
		}
	}
	return part, nil
}

// NormalizeDoc coerces decoded values within a document to the canonical
// in-memory representation dictated by a Schema. Decoded JSON represents
// every number as a float64 and every Time as a string, so documents must
// be normalized after deserialization.
func NormalizeDoc(schema strata.Schema, doc map[string]interface{}) error {
	return schema.ForEachField(func(name string, field strata.Field) error {
		return docTransform(doc, name, func(_ map[string]interface{}, v interface{}) (interface{}, error) {
			nv, err := field.Type().Normalize(v)
			if err != nil {
				return nil, errors.IncompatibleFieldTypeError{Name: name, Err: err}
			}
			return nv, nil
		})
	})
}
