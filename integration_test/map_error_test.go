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

func createTestMapErrorDataFrame(t *testing.T, numRows int) strata.DataFrame {
	rows := make([]string, numRows)
	for i := 0; i < len(rows); i++ {
		rows[i] = fmt.Sprintf("{\"index\": %d}", i)
	}
	data := [][]byte{[]byte(strings.Join(rows, "\n"))}

	// Create a dataframe for the data
	schema := schema.CreateSchema()
	schema.CreateField("index", &strata.IntFieldType{})
	parser := jsonl.CreateParser(&jsonl.ParserConf{
		PartitionSize: 5,
	})
	dataframe := memory.CreateDataFrame(data, parser, schema)
	return dataframe
}

func TestMapErrors(t *testing.T) {
	// create dataframe, erroring on all odd numbers
	frame, err := createTestMapErrorDataFrame(t, 10).To(
		ops.Map(func(row strata.Row) error {
			index, err := row.GetInt64("index")
			if err != nil {
				return err
			}
			// error out for odd numbers
			if index%2 == 1 {
				return fmt.Errorf("Odd numbers cause errors")
			}
			// leave even numbers alone
			return nil
		}),
		util.Collect(2), // 2 partitions because there are 10 rows and 5 per partition
	)
	require.Nil(t, err)

	// run dataframe, ignoring row errors. Rows which did not error survive.
	res, err := stratatest.RunFrame(context.Background(), frame, &engine.Options{IgnoreRowErrors: true}, 2)
	require.Nil(t, err)
	require.NotNil(t, res)
	numRows := 0
	for _, part := range res.Collected {
		part.ForEachRow(func(row strata.Row) error {
			numRows++
			val, err := row.GetInt64("index")
			require.Nil(t, err)
			require.Equal(t, int64(0), val%2)
			return nil
		})
	}
	require.Equal(t, 5, numRows)
}

func TestMapErrorsCrashWhenNotIgnored(t *testing.T) {
	frame, err := createTestMapErrorDataFrame(t, 10).To(
		ops.Map(func(row strata.Row) error {
			index, err := row.GetInt64("index")
			if err != nil {
				return err
			}
			if index%2 == 1 {
				return fmt.Errorf("Odd numbers cause errors")
			}
			return nil
		}),
		util.Collect(2),
	)
	require.Nil(t, err)

	res, err := stratatest.RunFrame(context.Background(), frame, &engine.Options{}, 2)
	require.NotNil(t, err)
	require.Nil(t, res)
	require.Contains(t, err.Error(), "Odd numbers cause errors")
}
