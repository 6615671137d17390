package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/go-strata/strata"
	"github.com/go-strata/strata/datasource/memory"
	"github.com/go-strata/strata/datasource/parser/jsonl"
	"github.com/go-strata/strata/engine"
	ops "github.com/go-strata/strata/operations/transform"
	util "github.com/go-strata/strata/operations/util"
	"github.com/go-strata/strata/schema"
	stratatest "github.com/go-strata/strata/testing"
	"github.com/stretchr/testify/require"
)

func createTestCollectDataFrame(t *testing.T, numRows int) strata.DataFrame {
	rows := make([]string, numRows)
	for i := 0; i < len(rows); i++ {
		rows[i] = fmt.Sprintf("{\"name\": \"user%d\", \"meta\": {\"index\": %d}}", i, i)
	}
	data := [][]byte{[]byte(strings.Join(rows, "\n"))}

	// Create a dataframe for the data
	schema := schema.CreateSchema()
	schema.CreateField("name", &strata.StringFieldType{})
	schema.CreateField("meta", &strata.StructFieldType{})
	schema.CreateField("meta.index", &strata.IntFieldType{})
	parser := jsonl.CreateParser(&jsonl.ParserConf{
		PartitionSize: 5,
	})
	dataframe := memory.CreateDataFrame(data, parser, schema)
	return dataframe
}

func TestCollect(t *testing.T) {
	// create dataframe
	frame, err := createTestCollectDataFrame(t, 10).To(
		ops.WithField("res", &strata.StringFieldType{}),
		ops.Map(func(row strata.Row) error {
			name, err := row.GetString("name")
			if err != nil {
				return err
			}
			return row.SetString("res", strings.ToUpper(name))
		}),
		ops.Drop("name"),
		util.Collect(2), // 2 partitions because there are 10 rows and 5 per partition
	)
	require.Nil(t, err)

	// run dataframe
	res, err := stratatest.RunFrame(context.Background(), frame, &engine.Options{}, 2)
	require.Nil(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Collected, 2)
	require.False(t, res.Schema.HasField("name"))
	require.True(t, res.Schema.HasField("res"))
	numRows := 0
	for _, part := range res.Collected {
		part.ForEachRow(func(row strata.Row) error {
			numRows++
			val, err := row.GetString("res")
			require.Nil(t, err)
			require.True(t, strings.HasPrefix(val, "USER"))
			_, err = row.GetString("name")
			require.NotNil(t, err)
			return nil
		})
	}
	require.Equal(t, 10, numRows)
}

func TestCollectLimitsPartitions(t *testing.T) {
	frame, err := createTestCollectDataFrame(t, 10).To(
		util.Collect(1),
	)
	require.Nil(t, err)

	// partitions beyond the collection limit are discarded
	res, err := stratatest.RunFrame(context.Background(), frame, &engine.Options{}, 2)
	require.Nil(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Collected, 1)
}
