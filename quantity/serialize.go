package quantity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/c360studio/physq/unit"
)

// complexJSON is the stored form of a Complex payload; Scalar stores as a
// bare number and Array as a number list.
type complexJSON struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

func encodeValue(v Value) any {
	switch x := v.(type) {
	case Scalar:
		return float64(x)
	case Complex:
		return complexJSON{Real: real(complex128(x)), Imag: imag(complex128(x))}
	case Array:
		return []float64(x)
	}
	panic(fmt.Sprintf("quantity: unknown value variant %T", v))
}

func decodeValue(raw json.RawMessage) (Value, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("decode value: missing payload")
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return Scalar(f), nil
	}
	var xs []float64
	if err := json.Unmarshal(raw, &xs); err == nil {
		return Array(xs), nil
	}
	var c complexJSON
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return Complex(complex(c.Real, c.Imag)), nil
}

// MarshalJSON encodes the quantity as {"value": ..., "unit": {...}} with the
// unit in its stored-description form.
func (q *Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value any        `json:"value"`
		Unit  *unit.Unit `json:"unit"`
	}{
		Value: encodeValue(q.value),
		Unit:  q.unit,
	})
}

// FromJSON decodes a stored quantity against the registry. The embedded unit
// description must match a registered unit.
func FromJSON(r *unit.Registry, data []byte) (*Quantity, error) {
	var aux struct {
		Value json.RawMessage `json:"value"`
		Unit  json.RawMessage `json:"unit"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, fmt.Errorf("decode quantity: %w", err)
	}
	u, err := r.UnitFromJSON(aux.Unit)
	if err != nil {
		return nil, err
	}
	v, err := decodeValue(aux.Value)
	if err != nil {
		return nil, err
	}
	return New(v, u), nil
}
