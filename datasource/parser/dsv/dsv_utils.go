package dsv

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-strata/strata"
)

// Parses a slice of strings into a Row, according to a schema
func scanRow(conf *ParserConf, names []string, fieldTypes []strata.FieldType, rowStrings []string, row strata.Row) error {
	for i := 0; i < len(rowStrings); i++ {
		fieldVal := rowStrings[i]
		// check for a nil value
		if len(fieldVal) == 0 || fieldVal == conf.NilValue {
			row.SetNil(names[i])
			continue
		}
		// otherwise, parse type
		switch ftype := fieldTypes[i].(type) {
		case *strata.BoolFieldType:
			bval, err := strconv.ParseBool(fieldVal)
			if err != nil {
				return err
			}
			row.SetBool(names[i], bval)
		case *strata.IntFieldType:
			ival, err := strconv.ParseInt(fieldVal, 10, 64)
			if err != nil {
				return err
			}
			row.SetInt64(names[i], ival)
		case *strata.FloatFieldType:
			fval, err := strconv.ParseFloat(fieldVal, 64)
			if err != nil {
				return err
			}
			row.SetFloat64(names[i], fval)
		case *strata.StringFieldType:
			row.SetString(names[i], fieldVal)
		case *strata.TimeFieldType:
			tval, err := time.Parse(ftype.Format, fieldVal)
			if err != nil {
				return fmt.Errorf("Field %s could not be parsed as datetime with format %s. Was: %#v", names[i], ftype.Format, fieldVal)
			}
			row.SetTime(names[i], tval)
		default:
			return fmt.Errorf("DSV parsing does not support field type %T", fieldTypes[i])
		}
	}
	return nil
}
