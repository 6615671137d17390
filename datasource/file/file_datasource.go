package file

import (
	"fmt"
	"path/filepath"

	"github.com/go-strata/strata"
	"github.com/go-strata/strata/internal/dataframe"
)

// DataSource is a set of files containing data which will be manipulated according to a DataFrame
type DataSource struct {
	glob   string
	schema strata.Schema
}

// CreateDataFrame is a factory for DataSources
func CreateDataFrame(glob string, parser strata.DataSourceParser, schema strata.Schema) strata.DataFrame {
	source := &DataSource{glob, schema}
	df := dataframe.CreateDataFrame(source, parser, schema)
	return df
}

// Analyze returns a PartitionMap, describing how the source files will be divided into Partitions
func (fs *DataSource) Analyze() (strata.PartitionMap, error) {
	matches, err := filepath.Glob(fs.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", fs.glob)
	}
	var toRead []string
	for _, path := range matches {
		toRead = append(toRead, path)
	}
	return &PartitionMap{
		files:  toRead,
		source: fs,
	}, nil
}

// DeserializeLoader creates a PartitionLoader for this DataSource from a serialized representation
func (fs *DataSource) DeserializeLoader(bytes []byte) (strata.PartitionLoader, error) {
	pl := PartitionLoader{path: "", source: fs}
	err := pl.GobDecode(bytes)
	if err != nil {
		return nil, err
	}
	return &pl, nil
}
