package strata

import "io"

// PartitionLoader is a description of how to load specific Partitions of data from a particular DataSource.
// DataSources implement this interface to implement data-loading logic. PartitionLoaders are consumed lazily
// by concurrent workers, so Partitions are only materialized as workers free up to process them
type PartitionLoader interface {
	ToString() string                                                                    // for logging
	Load(parser DataSourceParser, widestInitialSchema Schema) (PartitionIterator, error) // how to actually load data - how much room to leave for the largest upcoming schema (before the next stage, if any)
	GobEncode() ([]byte, error)                                                          // how to serialize this PartitionLoader
	GobDecode([]byte) error                                                              // how to deserialize this PartitionLoader
}

// PartitionMap is an interface describing an iterator for PartitionLoaders.
// Returned by DataSource.Analyze(), an execution engine will iterate through
// PartitionLoaders and queue them for loading.
type PartitionMap interface {
	HasNext() bool
	Next() PartitionLoader
}

// DataSource is a source of data which will be manipulated according to transformations and actions defined in a DataFrame.
// It represents information about how to load data from the source as Partitions.
type DataSource interface {
	Analyze() (PartitionMap, error)
	DeserializeLoader([]byte) (PartitionLoader, error)
}

// A DataSourceParser is capable of parsing raw data from a DataSource.Load to produce Partitions
type DataSourceParser interface {
	PartitionSize() int // returns the maximum size of Partitions produced by this DataSourceParser, in rows
	Parse(r io.Reader, source DataSource, schema Schema, widestInitialSchema Schema, onIteratorEnd func()) (PartitionIterator, error)
}
