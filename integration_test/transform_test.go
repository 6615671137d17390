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

func createTestTransformDataFrame(t *testing.T, numRows int, repeatEvery int) strata.DataFrame {
	rows := make([]string, numRows)
	for i := 0; i < len(rows); i++ {
		val := i
		if repeatEvery > 0 {
			val = i % repeatEvery
		}
		rows[i] = fmt.Sprintf("{\"name\": \"user%d\", \"meta\": {\"index\": %d}}", val, val)
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

func TestRenameField(t *testing.T) {
	frame, err := createTestTransformDataFrame(t, 10, 0).To(
		ops.Rename("meta.index", "meta.idx"),
		util.Collect(2),
	)
	require.Nil(t, err)

	res, err := stratatest.RunFrame(context.Background(), frame, &engine.Options{}, 2)
	require.Nil(t, err)
	require.NotNil(t, res)
	require.False(t, res.Schema.HasField("meta.index"))
	require.True(t, res.Schema.HasField("meta.idx"))
	for _, part := range res.Collected {
		part.ForEachRow(func(row strata.Row) error {
			_, err := row.GetInt64("meta.idx")
			require.Nil(t, err)
			return nil
		})
	}
}

func TestLimit(t *testing.T) {
	frame, err := createTestTransformDataFrame(t, 10, 0).To(
		ops.Limit(3),
		util.Collect(2),
	)
	require.Nil(t, err)

	res, err := stratatest.RunFrame(context.Background(), frame, &engine.Options{}, 2)
	require.Nil(t, err)
	require.NotNil(t, res)
	numRows := 0
	for _, part := range res.Collected {
		part.ForEachRow(func(row strata.Row) error {
			numRows++
			return nil
		})
	}
	require.Equal(t, 3, numRows)
}

func TestLimitZero(t *testing.T) {
	frame, err := createTestTransformDataFrame(t, 10, 0).To(
		ops.Limit(0),
		util.Collect(2),
	)
	require.Nil(t, err)

	// an empty result retains the original Schema
	res, err := stratatest.RunFrame(context.Background(), frame, &engine.Options{}, 2)
	require.Nil(t, err)
	require.NotNil(t, res)
	require.True(t, res.Schema.HasField("name"))
	require.True(t, res.Schema.HasField("meta.index"))
	numRows := 0
	for _, part := range res.Collected {
		part.ForEachRow(func(row strata.Row) error {
			numRows++
			return nil
		})
	}
	require.Equal(t, 0, numRows)
}

func TestMaterializeSplitsStages(t *testing.T) {
	frame, err := createTestTransformDataFrame(t, 10, 0).To(
		ops.Map(func(row strata.Row) error {
			name, err := row.GetString("name")
			if err != nil {
				return err
			}
			return row.SetString("name", strings.ToUpper(name))
		}),
		ops.Materialize(),
		ops.Rename("meta.index", "meta.idx"),
		util.Collect(2),
	)
	require.Nil(t, err)

	res, err := stratatest.RunFrame(context.Background(), frame, &engine.Options{}, 2)
	require.Nil(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Stats.GetStageRuntimes(), 2)
	// transformations from both sides of the stage boundary are visible
	numRows := 0
	for _, part := range res.Collected {
		part.ForEachRow(func(row strata.Row) error {
			numRows++
			name, err := row.GetString("name")
			require.Nil(t, err)
			require.True(t, strings.HasPrefix(name, "USER"))
			_, err = row.GetInt64("meta.idx")
			require.Nil(t, err)
			return nil
		})
	}
	require.Equal(t, 10, numRows)
}

func TestDistinct(t *testing.T) {
	// 10 rows, but only 5 distinct documents
	frame, err := createTestTransformDataFrame(t, 10, 5).To(
		ops.Distinct(),
		util.Collect(2),
	)
	require.Nil(t, err)

	res, err := stratatest.RunFrame(context.Background(), frame, &engine.Options{}, 1)
	require.Nil(t, err)
	require.NotNil(t, res)
	seen := make(map[string]bool)
	numRows := 0
	for _, part := range res.Collected {
		part.ForEachRow(func(row strata.Row) error {
			numRows++
			name, err := row.GetString("name")
			require.Nil(t, err)
			require.False(t, seen[name])
			seen[name] = true
			return nil
		})
	}
	require.Equal(t, 5, numRows)
}
