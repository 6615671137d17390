package dsv

import (
	"testing"

	"github.com/go-strata/strata"
	memory "github.com/go-strata/strata/datasource/memory"
	"github.com/go-strata/strata/schema"
	"github.com/stretchr/testify/require"
)

func TestDSVDatasourceParser(t *testing.T) {
	// Create a dataframe for the data, load it, and test things
	s := schema.CreateSchema()
	_, err := s.CreateField("name", &strata.StringFieldType{})
	require.Nil(t, err)
	_, err = s.CreateField("passengers", &strata.IntFieldType{})
	require.Nil(t, err)
	_, err = s.CreateField("distance", &strata.FloatFieldType{})
	require.Nil(t, err)
	_, err = s.CreateField("pickup_time", &strata.TimeFieldType{Format: "2006-01-02 15:04:05"})
	require.Nil(t, err)

	parser := CreateParser(&ParserConf{
		NilValue:      "null",
		PartitionSize: 3,
	})
	data := [][]byte{
		[]byte("ride0,1,2.5,2021-12-01 09:30:00\nride1,2,0.5,2021-12-01 10:00:00\nride2,null,12.25,2021-12-01 10:15:00\nride3,4,1.75,2021-12-01 11:45:00"),
		[]byte("ride4,1,3.5,2021-12-02 08:05:00"),
	}
	frame := memory.CreateDataFrame(data, parser, s)

	pm, err := frame.GetDataSource().Analyze()
	require.Nil(t, err, "Analyze err should be null")
	totalRows := 0
	totalPassengers := int64(0)
	for pm.HasNext() {
		pl := pm.Next()
		ps, err := pl.Load(parser, s)
		require.Nil(t, err)
		for ps.HasNextPartition() {
			part, _, err := ps.NextPartition()
			require.Nil(t, err)
			require.True(t, part.GetNumRows() <= 3)
			totalRows += part.GetNumRows()
			for i := 0; i < part.GetNumRows(); i++ {
				row := part.GetRow(i)
				if row.IsNil("passengers") {
					continue
				}
				passengers, err := row.GetInt64("passengers")
				require.Nil(t, err)
				totalPassengers += passengers
			}
		}
	}
	require.False(t, pm.HasNext())
	require.Equal(t, 5, totalRows)
	require.Equal(t, int64(8), totalPassengers)
}
