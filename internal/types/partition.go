package types

import "github.com/go-strata/strata"

// SerializablePartition is a Partition which can serialize its contents
type SerializablePartition interface {
	strata.OperablePartition
	GetSchema() strata.Schema // GetSchema returns the current Schema of this Partition
	ToBytes() ([]byte, error) // ToBytes serializes this Partition
}
