package partition

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-strata/strata"
	errors "github.com/go-strata/strata/errors"
	"github.com/go-strata/strata/schema"
	"github.com/stretchr/testify/require"
)

func createPartitionTestSchema(t *testing.T) strata.Schema {
	s := schema.CreateSchema()
	s, err := s.CreateField("name", &strata.StringFieldType{})
	require.Nil(t, err)
	s, err = s.CreateField("meta", &strata.StructFieldType{})
	require.Nil(t, err)
	s, err = s.CreateField("meta.score", &strata.IntFieldType{})
	require.Nil(t, err)
	s, err = s.CreateField("customDimensions", &strata.ArrayFieldType{ElemType: &strata.StructFieldType{}})
	require.Nil(t, err)
	s, err = s.CreateField("customDimensions.index", &strata.IntFieldType{})
	require.Nil(t, err)
	s, err = s.CreateField("customDimensions.value", &strata.StringFieldType{})
	require.Nil(t, err)
	return s
}

func createPartitionTestDoc(name string, score int64, values ...string) map[string]interface{} {
	dims := make([]interface{}, 0, len(values))
	for i, v := range values {
		dims = append(dims, map[string]interface{}{
			"index": int64(i),
			"value": v,
		})
	}
	return map[string]interface{}{
		"name":             name,
		"meta":             map[string]interface{}{"score": score},
		"customDimensions": dims,
	}
}

func TestCreatePartitionImpl(t *testing.T) {
	schema := createPartitionTestSchema(t)
	part := createPartitionImpl(4, schema)
	require.Equal(t, part.GetMaxRows(), 4)
	require.Equal(t, part.GetNumRows(), 0)
	require.NotEmpty(t, part.ID())
}

func TestAppendRowData(t *testing.T) {
	// make partition
	schema := createPartitionTestSchema(t)
	part := createPartitionImpl(4, schema)
	require.Equal(t, part.GetNumRows(), 0)
	// append and validate row
	err := part.AppendRowData(createPartitionTestDoc("one", 1, "a"))
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 1)
	val, err := part.GetRow(0).GetString("name")
	require.Nil(t, err)
	require.Equal(t, val, "one")
	score, err := part.GetRow(0).GetInt64("meta.score")
	require.Nil(t, err)
	require.Equal(t, score, int64(1))
	// append and validate another row
	err = part.AppendRowData(createPartitionTestDoc("two", 2))
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 2)
	val, err = part.GetRow(1).GetString("name")
	require.Nil(t, err)
	require.Equal(t, val, "two")
}

func TestAppendEmptyRowData(t *testing.T) {
	// make partition
	schema := createPartitionTestSchema(t)
	part := createPartitionImpl(4, schema)
	tempRow := CreateTempRow()
	// append an empty row and populate it
	row, err := part.AppendEmptyRowData(tempRow)
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 1)
	err = row.SetString("name", "three")
	require.Nil(t, err)
	err = row.SetInt64("meta.score", 3)
	require.Nil(t, err)
	// the populated values should be visible through the partition
	val, err := part.GetRow(0).GetString("name")
	require.Nil(t, err)
	require.Equal(t, val, "three")
	score, err := part.GetRow(0).GetInt64("meta.score")
	require.Nil(t, err)
	require.Equal(t, score, int64(3))
}

func TestPartitionFullError(t *testing.T) {
	// create partition with max 1 row
	schema := createPartitionTestSchema(t)
	part := createPartitionImpl(1, schema)
	err := part.AppendRowData(createPartitionTestDoc("one", 1))
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 1)
	// attempt to append row again
	err = part.AppendRowData(createPartitionTestDoc("two", 2))
	require.NotNil(t, err)
	_, ok := err.(errors.PartitionFullError)
	require.True(t, ok)
}

func TestMapRows(t *testing.T) {
	// create partition
	schema := createPartitionTestSchema(t)
	part := createPartitionImpl(4, schema)
	for i := 0; i < 4; i++ {
		err := part.AppendRowData(createPartitionTestDoc("row", int64(i)))
		require.Nil(t, err)
	}
	sum := int64(0)
	_, err := part.MapRows(func(row strata.Row) error {
		val, err := row.GetInt64("meta.score")
		sum += val
		return err
	})
	require.Nil(t, err)
	require.Equal(t, sum, int64(6))
}

func TestMapRowsFallback(t *testing.T) {
	// create partition
	schema := createPartitionTestSchema(t)
	part := createPartitionImpl(4, schema)
	for i := 0; i < 4; i++ {
		err := part.AppendRowData(createPartitionTestDoc("row", int64(i)))
		require.Nil(t, err)
	}
	// error on the second row, which should trigger the fresh-partition fallback
	result, err := part.MapRows(func(row strata.Row) error {
		score, gerr := row.GetInt64("meta.score")
		require.Nil(t, gerr)
		if score == 1 {
			return errors.NilValueError{Name: "meta.score"}
		}
		return row.SetInt64("meta.score", score*10)
	})
	require.NotNil(t, err)
	require.Equal(t, result.GetNumRows(), 3)
	// surviving rows keep their mapped values
	score, err := result.GetRow(0).GetInt64("meta.score")
	require.Nil(t, err)
	require.Equal(t, score, int64(0))
	score, err = result.GetRow(1).GetInt64("meta.score")
	require.Nil(t, err)
	require.Equal(t, score, int64(20))
}

func TestFilterRows(t *testing.T) {
	// create partition
	schema := createPartitionTestSchema(t)
	part := createPartitionImpl(4, schema)
	for i := 0; i < 4; i++ {
		err := part.AppendRowData(createPartitionTestDoc("row", int64(i)))
		require.Nil(t, err)
	}
	result, err := part.FilterRows(func(row strata.Row) (bool, error) {
		val, err := row.GetInt64("meta.score")
		if err != nil {
			return false, err
		}
		return val%2 == 0, nil
	})
	require.Nil(t, err)
	require.Equal(t, result.GetNumRows(), 2)
	val, err := result.GetRow(1).GetInt64("meta.score")
	require.Nil(t, err)
	require.Equal(t, val, int64(2))
}

func TestDropField(t *testing.T) {
	// create partition
	schema := createPartitionTestSchema(t)
	part := createPartitionImpl(4, schema)
	err := part.AppendRowData(createPartitionTestDoc("one", 1, "a", "b"))
	require.Nil(t, err)
	err = part.AppendRowData(createPartitionTestDoc("two", 2))
	require.Nil(t, err)
	// drop a field which lives inside an array of structs
	_, err = part.DropField("customDimensions.value")
	require.Nil(t, err)
	dims, err := part.GetRow(0).GetArray("customDimensions")
	require.Nil(t, err)
	require.Len(t, dims, 2)
	for _, d := range dims {
		doc := d.(map[string]interface{})
		require.Contains(t, doc, "index")
		require.NotContains(t, doc, "value")
	}
	// drop a field inside a struct
	_, err = part.DropField("meta.score")
	require.Nil(t, err)
	require.True(t, part.GetRow(0).IsNil("meta.score"))
	_, err = part.GetRow(0).Get("meta.score")
	require.NotNil(t, err)
	// dropping a missing field leaves documents untouched
	_, err = part.DropField("meta.score")
	require.Nil(t, err)
}

func TestRenameField(t *testing.T) {
	// create partition
	schema := createPartitionTestSchema(t)
	part := createPartitionImpl(4, schema)
	err := part.AppendRowData(createPartitionTestDoc("one", 7))
	require.Nil(t, err)
	_, err = part.RenameField("meta.score", "meta.points")
	require.Nil(t, err)
	// the partition schema is updated separately by the executing task
	newSchema, err := schema.RenameField("meta.score", "meta.points")
	require.Nil(t, err)
	part.UpdateCurrentSchema(newSchema)
	val, err := part.GetRow(0).GetInt64("meta.points")
	require.Nil(t, err)
	require.Equal(t, val, int64(7))
}

func TestPartitionSerialization(t *testing.T) {
	// create a schema containing every field type which requires normalization
	s := createPartitionTestSchema(t)
	s, err := s.CreateField("created", &strata.TimeFieldType{Format: "2006-01-02"})
	require.Nil(t, err)
	part := createPartitionImpl(4, s)
	doc := createPartitionTestDoc("one", 42, "a", "b")
	created, err := time.Parse("2006-01-02", "2021-12-01")
	require.Nil(t, err)
	doc["created"] = created
	require.Nil(t, part.AppendRowData(doc))
	// round-trip the partition
	data, err := part.ToBytes()
	require.Nil(t, err)
	restored, err := FromBytes(data, s)
	require.Nil(t, err)
	require.Equal(t, restored.ID(), part.ID())
	require.Equal(t, restored.GetNumRows(), 1)
	// int64 and time.Time values must round-trip with their canonical types
	score, err := restored.GetRow(0).GetInt64("meta.score")
	require.Nil(t, err)
	require.Equal(t, score, int64(42))
	restoredTime, err := restored.GetRow(0).GetTime("created")
	require.Nil(t, err)
	require.Equal(t, restoredTime.UnixNano(), created.UnixNano())
	dims, err := restored.GetRow(0).GetArray("customDimensions")
	require.Nil(t, err)
	require.Len(t, dims, 2)
	idx := dims[1].(map[string]interface{})["index"]
	require.Equal(t, idx, int64(1))
}

func TestLZ4PartitionSerializer(t *testing.T) {
	schema := createPartitionTestSchema(t)
	part := createPartitionImpl(4, schema)
	require.Nil(t, part.AppendRowData(createPartitionTestDoc("one", 1, "a")))
	require.Nil(t, part.AppendRowData(createPartitionTestDoc("two", 2, "b")))
	serializer := NewLZ4PartitionSerializer()
	defer serializer.Destroy()
	// compress and decompress the partition
	var buff bytes.Buffer
	err := serializer.Compress(&buff, part)
	require.Nil(t, err)
	restored, err := serializer.Decompress(&buff, schema)
	require.Nil(t, err)
	require.Equal(t, restored.GetNumRows(), 2)
	val, err := restored.GetRow(1).GetString("name")
	require.Nil(t, err)
	require.Equal(t, val, "two")
}
