package datasource

import (
	"github.com/go-strata/strata"
	"github.com/go-strata/strata/internal/dataframe"
	"github.com/go-strata/strata/internal/partition"
)

// CreateDataFrame produces a fresh DataFrame (useful for the implementation of DataSources)
func CreateDataFrame(source strata.DataSource, parser strata.DataSourceParser, schema strata.Schema) strata.DataFrame {
	return dataframe.CreateDataFrame(source, parser, schema)
}

// CreateBuildablePartition produces an empty BuildablePartition (useful for the implementation of DataSourceParsers)
func CreateBuildablePartition(maxRows int, schema strata.Schema) strata.BuildablePartition {
	return partition.CreateBuildablePartition(maxRows, schema)
}

// CreateTempRow produces an empty Row, for use with BuildablePartition.AppendEmptyRowData (useful for the implementation of DataSourceParsers)
func CreateTempRow() strata.Row {
	return partition.CreateTempRow()
}

// NormalizeRowData coerces the values within a document to the canonical Go types
// for their declared field types, in preparation for BuildablePartition.AppendRowData
// (useful for the implementation of DataSourceParsers)
func NormalizeRowData(schema strata.Schema, doc map[string]interface{}) error {
	return partition.NormalizeDoc(schema, doc)
}
