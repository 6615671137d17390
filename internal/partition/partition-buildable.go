package partition

import (
	"github.com/go-strata/strata"
	errors "github.com/go-strata/strata/errors"
)

// CreateBuildablePartition creates a new Partition containing an empty document slice and a schema
func CreateBuildablePartition(maxRows int, schema strata.Schema) strata.BuildablePartition {
	return createPartitionImpl(maxRows, schema)
}

// AppendEmptyRowData is a convenient way to add an empty Row to the end of this Partition, returning the Row so that Row methods can be used to populate it
func (p *partitionImpl) AppendEmptyRowData(tempRow strata.Row) (strata.Row, error) {
	if len(p.docs) >= p.maxRows {
		return nil, errors.PartitionFullError{}
	}
	p.docs = append(p.docs, make(map[string]interface{}))
	return p.getRow(tempRow.(*rowImpl), len(p.docs)-1), nil
}

// AppendRowData adds a document to the end of this Partition, if it isn't full
func (p *partitionImpl) AppendRowData(doc map[string]interface{}) error {
	if len(p.docs) >= p.maxRows {
		return errors.PartitionFullError{}
	}
	p.docs = append(p.docs, doc)
	return nil
}
