package partition

import (
	"strings"

	"github.com/go-strata/strata"
	"github.com/hashicorp/go-multierror"
)

// UpdateCurrentSchema updates the Schema of this Partition
func (p *partitionImpl) UpdateCurrentSchema(currentSchema strata.Schema) {
	p.schema = currentSchema
}

// MapRows runs a MapOperation on each row in this Partition, manipulating them in-place. Will fall back to creating a fresh partition if row errors occur.
func (p *partitionImpl) MapRows(fn strata.MapOperation) (strata.OperablePartition, error) {
	inPlace := true // start by attempting to manipulate rows in-place
	result := p
	var multierr *multierror.Error
	for i := 0; i < p.GetNumRows(); i++ {
		row := p.GetRow(i)
		err := fn(row)
		if err != nil {
			multierr = multierror.Append(multierr, err)
			// create a new partition and switch to non-in-place mode
			if inPlace {
				inPlace = false
				result = createPartitionImpl(p.maxRows, p.schema)
				// append all rows we've successfully processed so far (up to this one)
				for j := 0; j < i; j++ {
					if err := result.AppendRowData(p.docs[j]); err != nil {
						return nil, err
					}
				}
			}
		} else if !inPlace { // if we're not in in-place mode, append successful rows to new Partition
			if err := result.AppendRowData(p.docs[i]); err != nil {
				return nil, err
			}
		}
	}
	return result, multierr.ErrorOrNil()
}

// FilterRows filters the Rows in the current Partition, creating a new one
func (p *partitionImpl) FilterRows(fn strata.FilterOperation) (strata.OperablePartition, error) {
	var multierr *multierror.Error
	result := createPartitionImpl(p.maxRows, p.schema)
	for i := 0; i < p.GetNumRows(); i++ {
		shouldKeep, err := fn(p.GetRow(i))
		if err != nil {
			multierr = multierror.Append(multierr, err)
		}
		if shouldKeep {
			err := result.AppendRowData(p.docs[i])
			// there's no way we can fill up this Partition, since we have to have fewer rows than
			// the current one, so this error should never happen
			if err != nil {
				return nil, err
			}
		}
	}
	return result, multierr.ErrorOrNil()
}

// DropField removes the field with the given name from every document in
// this Partition, including documents reached through arrays of structs.
// Documents which do not contain the field are left untouched.
func (p *partitionImpl) DropField(name string) (strata.OperablePartition, error) {
	for _, doc := range p.docs {
		if err := docDelete(doc, name); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// RenameField renames the field with the given name within every document
// in this Partition. newName is a full dot-delimited path sharing the old
// name's enclosing document.
func (p *partitionImpl) RenameField(oldName string, newName string) (strata.OperablePartition, error) {
	newSegments := strings.Split(newName, ".")
	last := newSegments[len(newSegments)-1]
	for _, doc := range p.docs {
		if err := docRename(doc, oldName, last); err != nil {
			return nil, err
		}
	}
	return p, nil
}
