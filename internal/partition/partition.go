package partition

import (
	"log"

	"github.com/go-strata/strata"
	uuid "github.com/gofrs/uuid"
)

// partitionImpl is Strata's internal implementation of Partition
type partitionImpl struct {
	id      string
	maxRows int
	docs    []map[string]interface{} // one nested document per row
	schema  strata.Schema
}

// createPartitionImpl creates a new Partition containing an empty document slice and a schema
func createPartitionImpl(maxRows int, schema strata.Schema) *partitionImpl {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Partition: %v", err)
	}
	return &partitionImpl{
		id:      id.String(),
		maxRows: maxRows,
		docs:    make([]map[string]interface{}, 0, maxRows),
		schema:  schema,
	}
}

// CreatePartition creates a new Partition containing an empty document slice and a schema
func CreatePartition(maxRows int, schema strata.Schema) strata.Partition {
	return createPartitionImpl(maxRows, schema)
}

// ID retrieves the ID of this Partition
func (p *partitionImpl) ID() string {
	return p.id
}

// GetMaxRows retrieves the maximum number of rows in this Partition
func (p *partitionImpl) GetMaxRows() int {
	return p.maxRows
}

// GetNumRows retrieves the number of rows in this Partition
func (p *partitionImpl) GetNumRows() int {
	return len(p.docs)
}

// GetSchema retrieves the current Schema of this Partition
func (p *partitionImpl) GetSchema() strata.Schema {
	return p.schema
}

// getRow retrieves a specific row from this Partition, without allocation
func (p *partitionImpl) getRow(row *rowImpl, rowNum int) strata.Row {
	row.partID = p.id
	row.doc = p.docs[rowNum]
	row.schema = p.schema
	return row
}

// GetRow retrieves a specific row from this Partition
func (p *partitionImpl) GetRow(rowNum int) strata.Row {
	return &rowImpl{
		partID: p.id,
		doc:    p.docs[rowNum],
		schema: p.schema,
	}
}
