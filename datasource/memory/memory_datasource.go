package memory

import (
	"github.com/go-strata/strata"
	"github.com/go-strata/strata/internal/dataframe"
)

// DataSource is a buffer containing data which will be manipulated according to a DataFrame
type DataSource struct {
	data   [][]byte
	schema strata.Schema
}

// CreateDataFrame is a factory for DataSources
func CreateDataFrame(data [][]byte, parser strata.DataSourceParser, schema strata.Schema) strata.DataFrame {
	source := &DataSource{data, schema}
	df := dataframe.CreateDataFrame(source, parser, schema)
	return df
}

// Analyze returns a PartitionMap, describing how the source data will be divided into Partitions
func (ms *DataSource) Analyze() (strata.PartitionMap, error) {
	return &PartitionMap{
		source: ms,
	}, nil
}

// DeserializeLoader creates a PartitionLoader for this DataSource from a serialized representation
func (ms *DataSource) DeserializeLoader(bytes []byte) (strata.PartitionLoader, error) {
	pl := PartitionLoader{idx: 0, source: ms}
	err := pl.GobDecode(bytes)
	if err != nil {
		return nil, err
	}
	return &pl, nil
}
