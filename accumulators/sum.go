package accumulators

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-strata/strata"
)

// Adder returns a factory for Sum Accumulators, which total the numeric
// field with the given dot-delimited name
func Adder(name string) strata.AccumulatorFactory {
	return func() strata.Accumulator {
		return &Sum{name: name}
	}
}

// Sum sums records
type Sum struct {
	name string
	sum  float64
}

// GetSum returns the row Sum from this Accumulator
func (a *Sum) GetSum() float64 {
	return a.sum
}

// Accumulate adds a row to this Accumulator. Rows in which the field is
// nil contribute nothing to the Sum.
func (a *Sum) Accumulate(row strata.Row) error {
	field, err := row.Schema().GetField(a.name)
	if err != nil {
		return err
	}
	if row.IsNil(a.name) {
		return nil
	}
	switch field.Type().(type) {
	case *strata.IntFieldType:
		v, err := row.GetInt64(a.name)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *strata.FloatFieldType:
		v, err := row.GetFloat64(a.name)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	default:
		return fmt.Errorf("Cannot sum non-numeric field %s", a.name)
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *Sum) Merge(o strata.Accumulator) error {
	ca, ok := o.(*Sum)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Sum Accumulator")
	}
	a.sum += ca.sum
	return nil
}

// ToBytes serializes this Accumulator
func (a *Sum) ToBytes() ([]byte, error) {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, math.Float64bits(a.sum))
	return buff, nil
}

// FromBytes produce a new Accumulator from serialized data
func (a *Sum) FromBytes(buff []byte) (strata.Accumulator, error) {
	return &Sum{name: a.name, sum: math.Float64frombits(binary.LittleEndian.Uint64(buff))}, nil
}
