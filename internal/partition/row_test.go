package partition

import (
	"testing"
	"time"

	"github.com/go-strata/strata"
	errors "github.com/go-strata/strata/errors"
	"github.com/stretchr/testify/require"
)

func createTestRow(t *testing.T, doc map[string]interface{}) strata.Row {
	return CreateRow("test-part", doc, createPartitionTestSchema(t))
}

func TestRowGetSet(t *testing.T) {
	row := createTestRow(t, createPartitionTestDoc("one", 1, "a"))
	name, err := row.GetString("name")
	require.Nil(t, err)
	require.Equal(t, name, "one")
	require.Nil(t, row.SetString("name", "two"))
	name, err = row.GetString("name")
	require.Nil(t, err)
	require.Equal(t, name, "two")
	// nested set and get
	require.Nil(t, row.SetInt64("meta.score", 9))
	score, err := row.GetInt64("meta.score")
	require.Nil(t, err)
	require.Equal(t, score, int64(9))
}

func TestRowGetUnknownField(t *testing.T) {
	row := createTestRow(t, createPartitionTestDoc("one", 1))
	_, err := row.Get("missing")
	require.NotNil(t, err)
	require.IsType(t, errors.FieldNotFoundError{}, err)
}

func TestRowGetThroughArray(t *testing.T) {
	row := createTestRow(t, createPartitionTestDoc("one", 1, "a", "b"))
	// a field addressed through an array of structs holds multiple values
	_, err := row.Get("customDimensions.value")
	require.NotNil(t, err)
	require.IsType(t, errors.MultipleValuesError{}, err)
	// but the array itself can be fetched
	dims, err := row.GetArray("customDimensions")
	require.Nil(t, err)
	require.Len(t, dims, 2)
}

func TestRowGetStruct(t *testing.T) {
	row := createTestRow(t, createPartitionTestDoc("one", 5))
	meta, err := row.GetStruct("meta")
	require.Nil(t, err)
	require.Equal(t, meta["score"], int64(5))
	// fetching a struct field as a scalar fails with a type error
	_, err = row.GetString("meta")
	require.NotNil(t, err)
	require.IsType(t, errors.IncompatibleFieldTypeError{}, err)
}

func TestRowSetCoercesValues(t *testing.T) {
	row := createTestRow(t, createPartitionTestDoc("one", 1))
	// decoded JSON numbers arrive as float64s and are coerced by Set
	require.Nil(t, row.Set("meta.score", float64(12)))
	score, err := row.GetInt64("meta.score")
	require.Nil(t, err)
	require.Equal(t, score, int64(12))
	// incompatible values are rejected
	err = row.Set("meta.score", "not a number")
	require.NotNil(t, err)
	require.IsType(t, errors.IncompatibleFieldTypeError{}, err)
}

func TestRowIsNil(t *testing.T) {
	doc := createPartitionTestDoc("one", 1)
	delete(doc["meta"].(map[string]interface{}), "score")
	row := createTestRow(t, doc)
	require.True(t, row.IsNil("meta.score"))
	require.False(t, row.IsNil("name"))
	// unknown fields are not nil
	require.False(t, row.IsNil("missing"))
	// SetNil stores an explicit nil
	require.Nil(t, row.SetNil("name"))
	require.True(t, row.IsNil("name"))
}

func TestRowTime(t *testing.T) {
	s := createPartitionTestSchema(t)
	s, err := s.CreateField("created", &strata.TimeFieldType{Format: "2006-01-02"})
	require.Nil(t, err)
	row := CreateRow("test-part", createPartitionTestDoc("one", 1), s)
	// strings are parsed with the field's format
	require.Nil(t, row.Set("created", "2021-12-01"))
	v, err := row.GetTime("created")
	require.Nil(t, err)
	require.Equal(t, v.Format("2006-01-02"), "2021-12-01")
	v2 := time.Now()
	require.Nil(t, row.SetTime("created", v2))
	v3, err := row.GetTime("created")
	require.Nil(t, err)
	require.EqualValues(t, v2.UnixNano(), v3.UnixNano())
}

func TestRowTransformField(t *testing.T) {
	row := createTestRow(t, createPartitionTestDoc("one", 1, "a", "b", "c"))
	// transform every value reached through the array
	err := row.TransformField("customDimensions.value", func(enclosing map[string]interface{}, val interface{}) (interface{}, error) {
		return val.(string) + "!", nil
	})
	require.Nil(t, err)
	dims, err := row.GetArray("customDimensions")
	require.Nil(t, err)
	for i, expected := range []string{"a!", "b!", "c!"} {
		require.Equal(t, dims[i].(map[string]interface{})["value"], expected)
	}
	// the enclosing document can steer the transformation
	err = row.TransformField("customDimensions.value", func(enclosing map[string]interface{}, val interface{}) (interface{}, error) {
		if enclosing["index"] == int64(1) {
			return "picked", nil
		}
		return val, nil
	})
	require.Nil(t, err)
	dims, err = row.GetArray("customDimensions")
	require.Nil(t, err)
	require.Equal(t, dims[0].(map[string]interface{})["value"], "a!")
	require.Equal(t, dims[1].(map[string]interface{})["value"], "picked")
}

func TestRowToString(t *testing.T) {
	row := createTestRow(t, createPartitionTestDoc("one", 1, "a"))
	str := row.ToString()
	require.Contains(t, str, "\"name\": \"one\"")
	require.NotContains(t, str, "meta.score")
}

func TestRowFingerprint(t *testing.T) {
	rowA := createTestRow(t, createPartitionTestDoc("one", 1, "a")).(*rowImpl)
	rowB := createTestRow(t, createPartitionTestDoc("one", 1, "a")).(*rowImpl)
	rowC := createTestRow(t, createPartitionTestDoc("two", 1, "a")).(*rowImpl)
	fpA, err := rowA.Fingerprint()
	require.Nil(t, err)
	fpB, err := rowB.Fingerprint()
	require.Nil(t, err)
	fpC, err := rowC.Fingerprint()
	require.Nil(t, err)
	// identical documents fingerprint identically
	require.Equal(t, fpA, fpB)
	require.NotEqual(t, fpA, fpC)
}
