package partition

import (
	"github.com/cespare/xxhash/v2"
	"github.com/go-strata/strata"
)

// GetDocument returns Row internal data
func (r *rowImpl) GetDocument() map[string]interface{} {
	return r.doc
}

// GetSchema returns Row internal data
func (r *rowImpl) GetSchema() strata.Schema {
	return r.schema
}

// CanonicalBytes serializes this Row's document with sorted keys, producing
// identical bytes for documents with identical contents
func (r *rowImpl) CanonicalBytes() ([]byte, error) {
	return canonicalJSON.Marshal(r.doc)
}

// Fingerprint produces a hash of this Row's canonical serialization
func (r *rowImpl) Fingerprint() (uint64, error) {
	data, err := r.CanonicalBytes()
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(data), nil
}
