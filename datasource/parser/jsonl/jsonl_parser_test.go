package jsonl

import (
	"testing"

	"github.com/go-strata/strata"
	memory "github.com/go-strata/strata/datasource/memory"
	"github.com/go-strata/strata/schema"
	"github.com/stretchr/testify/require"
)

func TestJSONLDatasourceParser(t *testing.T) {
	// Create a dataframe for the data, load it, and test things
	s := schema.CreateSchema()
	_, err := s.CreateField("name", &strata.StringFieldType{})
	require.Nil(t, err)
	_, err = s.CreateField("meta", &strata.StructFieldType{})
	require.Nil(t, err)
	_, err = s.CreateField("meta.index", &strata.IntFieldType{})
	require.Nil(t, err)
	_, err = s.CreateField("meta.first", &strata.StringFieldType{})
	require.Nil(t, err)
	_, err = s.CreateField("meta.last", &strata.StringFieldType{})
	require.Nil(t, err)

	parser := CreateParser(&ParserConf{
		PartitionSize: 128,
	})
	data := [][]byte{
		[]byte("{\"name\": \"Sean\", \"meta\": { \"index\": 1, \"first\": \"Sean\", \"last\": \"McIntyre\"}}\n{\"name\": \"Chris\", \"meta\": { \"index\": 3, \"first\": \"Chris\", \"last\": \"Dickson\"}}"),
		[]byte("{\"name\": \"Phil\", \"meta\": { \"index\": 2, \"first\": \"Phil\", \"last\": \"Laliberté\"}}\n{\"name\": \"Fahd\", \"meta\": { \"index\": 4, \"first\": \"Fahd\", \"last\": \"Husain\"}}"),
	}
	frame := memory.CreateDataFrame(data, parser, s)

	pm, err := frame.GetDataSource().Analyze()
	require.Nil(t, err, "Analyze err should be null")
	totalRows := 0
	indexTotal := int64(0)
	for pm.HasNext() {
		pl := pm.Next()
		ps, err := pl.Load(parser, s)
		require.Nil(t, err)
		for ps.HasNextPartition() {
			part, _, err := ps.NextPartition()
			require.Nil(t, err)
			totalRows += part.GetNumRows()
			for i := 0; i < part.GetNumRows(); i++ {
				idx, err := part.GetRow(i).GetInt64("meta.index")
				require.Nil(t, err)
				indexTotal += idx
			}
		}
	}
	require.False(t, pm.HasNext())
	require.Equal(t, 4, totalRows)
	require.EqualValues(t, 10, indexTotal)
}

func TestJSONLDatasourceParserNestedExtraction(t *testing.T) {
	s := schema.CreateSchema()
	_, err := s.CreateField("name", &strata.StringFieldType{})
	require.Nil(t, err)
	_, err = s.CreateField("customDimensions", &strata.ArrayFieldType{ElemType: &strata.StructFieldType{}})
	require.Nil(t, err)
	_, err = s.CreateField("customDimensions.index", &strata.StringFieldType{})
	require.Nil(t, err)
	_, err = s.CreateField("customDimensions.value", &strata.StringFieldType{})
	require.Nil(t, err)

	parser := CreateParser(&ParserConf{
		PartitionSize: 16,
	})
	data := [][]byte{
		[]byte("{\"name\": \"event\", \"ignored\": 42, \"customDimensions\": [{\"index\": \"1\", \"value\": \"a\", \"noise\": true}, {\"index\": \"2\", \"value\": \"b\"}]}"),
	}
	frame := memory.CreateDataFrame(data, parser, s)

	pm, err := frame.GetDataSource().Analyze()
	require.Nil(t, err)
	require.True(t, pm.HasNext())
	ps, err := pm.Next().Load(parser, s)
	require.Nil(t, err)
	part, _, err := ps.NextPartition()
	require.Nil(t, err)
	require.Equal(t, 1, part.GetNumRows())

	row := part.GetRow(0)
	name, err := row.GetString("name")
	require.Nil(t, err)
	require.Equal(t, "event", name)

	// undeclared values are dropped during extraction, even within array elements
	dims, err := row.GetArray("customDimensions")
	require.Nil(t, err)
	require.Len(t, dims, 2)
	first, ok := dims[0].(map[string]interface{})
	require.True(t, ok)
	require.Len(t, first, 2)
	require.Equal(t, "a", first["value"])
	second, ok := dims[1].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "2", second["index"])
}

func TestJSONLDatasourceParserMissingFields(t *testing.T) {
	s := schema.CreateSchema()
	_, err := s.CreateField("name", &strata.StringFieldType{})
	require.Nil(t, err)
	_, err = s.CreateField("meta", &strata.StructFieldType{})
	require.Nil(t, err)
	_, err = s.CreateField("meta.first", &strata.StringFieldType{})
	require.Nil(t, err)

	parser := CreateParser(&ParserConf{
		PartitionSize: 16,
	})
	data := [][]byte{
		[]byte("{\"name\": \"incomplete\", \"meta\": {}}\n\n{\"name\": \"detached\"}"),
	}
	frame := memory.CreateDataFrame(data, parser, s)

	pm, err := frame.GetDataSource().Analyze()
	require.Nil(t, err)
	ps, err := pm.Next().Load(parser, s)
	require.Nil(t, err)
	part, _, err := ps.NextPartition()
	require.Nil(t, err)
	// the blank line between rows is skipped
	require.Equal(t, 2, part.GetNumRows())
	require.True(t, part.GetRow(0).IsNil("meta.first"))
	require.True(t, part.GetRow(1).IsNil("meta"))
}
