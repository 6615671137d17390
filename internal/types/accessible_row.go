package types

import "github.com/go-strata/strata"

// AccessibleRow allows access to Row internals
type AccessibleRow interface {
	strata.Row
	GetDocument() map[string]interface{} // GetDocument returns the nested document backing this Row
	GetSchema() strata.Schema            // GetSchema returns the Schema for this Row
	CanonicalBytes() ([]byte, error)     // CanonicalBytes serializes this Row's document with sorted keys
	Fingerprint() (uint64, error)        // Fingerprint produces a hash of this Row's canonical serialization
}
