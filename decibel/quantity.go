package decibel

import (
	"fmt"
	"math"

	"github.com/c360studio/physq/quantity"
	"github.com/c360studio/physq/unit"
)

// Quantity is a value on a logarithmic scale.
type Quantity struct {
	value float64
	unit  *Unit

	// Format, when set, overrides the value verb used by String, e.g. "%.2f".
	Format string
}

// New returns value as an already log-scaled quantity in the named scale.
func New(value float64, name string) (*Quantity, error) {
	u, err := Get(name)
	if err != nil {
		return nil, err
	}
	return &Quantity{value: value, unit: u}, nil
}

// DB10 returns 10*log10(v) as a plain dB ratio.
func DB10(v float64) *Quantity {
	buildTable()
	return &Quantity{value: 10 * math.Log10(v), unit: table["dB"]}
}

// DB20 returns 20*log10(v) as a plain dB ratio.
func DB20(v float64) *Quantity {
	buildTable()
	return &Quantity{value: 20 * math.Log10(v), unit: table["dB"]}
}

// FromQuantity converts a linear quantity onto a decibel scale. An empty
// name picks the scale whose anchor matches x's unit exactly, falling back
// to the last defined scale sharing x's dimension, which is the
// base-anchored one: watts land in dBW, kilovolts in dBV. The payload must
// be a scalar.
func FromQuantity(x *quantity.Quantity, name string) (*Quantity, error) {
	buildTable()
	var du *Unit
	if name != "" {
		u, err := Get(name)
		if err != nil {
			return nil, err
		}
		if u.linear == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoLinear, name)
		}
		du = u
	} else {
		for _, n := range order {
			cand := table[n]
			if cand.linear == nil {
				continue
			}
			if cand.linear.Name() == x.Unit().Name() {
				du = cand
				break
			}
			if cand.linear.Powers() == x.Unit().Powers() {
				du = cand
			}
		}
		if du == nil {
			return nil, fmt.Errorf("%w: no decibel scale for %s",
				unit.ErrUnknownUnit, x.Unit().Name())
		}
	}
	lin, err := x.To(du.linear)
	if err != nil {
		return nil, err
	}
	s, ok := lin.Value().(quantity.Scalar)
	if !ok {
		return nil, fmt.Errorf("%w: decibel conversion requires a scalar payload",
			unit.ErrUnit)
	}
	return &Quantity{value: du.factor*math.Log10(float64(s)) - du.offset, unit: du}, nil
}

// Value returns the log-scaled magnitude.
func (q *Quantity) Value() float64 { return q.value }

// Unit returns the scale.
func (q *Quantity) Unit() *Unit { return q.unit }

func (q *Quantity) String() string {
	verb := q.Format
	if verb == "" {
		verb = "%v"
	}
	return fmt.Sprintf(verb, q.value) + " " + q.unit.name
}

// ratio returns the linear ratio of the log value, honoring the scale
// offset. Plain dB fixes no factor and has no single ratio reading.
func (q *Quantity) ratio() (float64, error) {
	if q.unit.factor == 0 {
		return 0, fmt.Errorf("%w: %s fixes no scale factor", ErrNoLinear, q.unit.name)
	}
	return math.Pow(10, (q.value+q.unit.offset)/q.unit.factor), nil
}

// Lin returns the linear quantity on the anchor unit, 10^(value/factor).
func (q *Quantity) Lin() (*quantity.Quantity, error) {
	if q.unit.linear == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoLinear, q.unit.name)
	}
	r, err := q.ratio()
	if err != nil {
		return nil, err
	}
	return quantity.New(quantity.Scalar(r), q.unit.linear), nil
}

// Lin10 returns the linear power quantity 10^(value/10). It rejects scales
// anchored to amplitude units.
func (q *Quantity) Lin10() (*quantity.Quantity, error) {
	if q.unit.linear == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoLinear, q.unit.name)
	}
	if !IsPower(q.unit.linear) {
		return nil, fmt.Errorf("%w: 10^(x/10) on amplitude scale %s", ErrScale, q.unit.name)
	}
	return quantity.New(quantity.Scalar(math.Pow(10, q.value/10)), q.unit.linear), nil
}

// Lin20 returns the linear amplitude quantity 10^(value/20). It rejects
// scales anchored to power units.
func (q *Quantity) Lin20() (*quantity.Quantity, error) {
	if q.unit.linear == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoLinear, q.unit.name)
	}
	if IsPower(q.unit.linear) {
		return nil, fmt.Errorf("%w: 10^(x/20) on power scale %s", ErrScale, q.unit.name)
	}
	return quantity.New(quantity.Scalar(math.Pow(10, q.value/20)), q.unit.linear), nil
}

// Ratio10 returns 10^(value/10), the power ratio named by a plain dB value.
func (q *Quantity) Ratio10() float64 { return math.Pow(10, q.value/10) }

// Ratio20 returns 10^(value/20), the amplitude ratio named by a plain dB
// value.
func (q *Quantity) Ratio20() float64 { return math.Pow(10, q.value/20) }

// DB strips the scale down to a plain dB ratio, keeping the value.
func (q *Quantity) DB() *Quantity {
	buildTable()
	return &Quantity{value: q.value, unit: table["dB"]}
}

// To rescales the value onto another decibel scale of the same family.
// Anchored scales shift by factor*log10 of the anchor factor ratio, bare
// ratio scales shift by the offset difference: 0 dBd is 2.15 dBi.
func (q *Quantity) To(name string) (*Quantity, error) {
	t, err := Get(name)
	if err != nil {
		return nil, err
	}
	if t == q.unit {
		return q, nil
	}
	if q.unit.linear == nil && t.linear == nil {
		return &Quantity{value: q.value + q.unit.offset - t.offset, unit: t}, nil
	}
	if q.unit.linear == nil || t.linear == nil ||
		q.unit.linear.Powers() != t.linear.Powers() {
		return nil, fmt.Errorf("%w: %s and %s", unit.ErrIncompatibleUnits,
			q.unit.name, t.name)
	}
	value := q.value + q.unit.factor*math.Log10(q.unit.linear.Factor()/t.linear.Factor())
	return &Quantity{value: value, unit: t}, nil
}

// Add adds two decibel quantities. A plain dB shift keeps the other side's
// scale; quantities on the same anchored scale add in the linear domain.
func (q *Quantity) Add(o *Quantity) (*Quantity, error) {
	if q.unit.name == "dB" || o.unit.name == "dB" {
		u := q.unit
		if q.unit.name == "dB" {
			u = o.unit
		}
		return &Quantity{value: q.value + o.value, unit: u}, nil
	}
	if q.unit != o.unit {
		return nil, fmt.Errorf("%w: %s and %s", unit.ErrIncompatibleUnits,
			q.unit.name, o.unit.name)
	}
	a, err := q.ratio()
	if err != nil {
		return nil, err
	}
	b, err := o.ratio()
	if err != nil {
		return nil, err
	}
	return &Quantity{value: q.unit.factor*math.Log10(a+b) - q.unit.offset, unit: q.unit}, nil
}

// Sub subtracts o. A plain dB operand shifts within q's scale; quantities
// on the same anchored scale subtract in the linear domain.
func (q *Quantity) Sub(o *Quantity) (*Quantity, error) {
	if q.unit.name == "dB" || o.unit.name == "dB" {
		return &Quantity{value: q.value - o.value, unit: q.unit}, nil
	}
	if q.unit != o.unit {
		return nil, fmt.Errorf("%w: %s and %s", unit.ErrIncompatibleUnits,
			q.unit.name, o.unit.name)
	}
	a, err := q.ratio()
	if err != nil {
		return nil, err
	}
	b, err := o.ratio()
	if err != nil {
		return nil, err
	}
	return &Quantity{value: q.unit.factor*math.Log10(a-b) - q.unit.offset, unit: q.unit}, nil
}

// Neg returns the negated ratio.
func (q *Quantity) Neg() *Quantity {
	return &Quantity{value: -q.value, unit: q.unit}
}

// MulScalar scales the dB value, keeping the scale.
func (q *Quantity) MulScalar(f float64) *Quantity {
	return &Quantity{value: q.value * f, unit: q.unit}
}

// DivScalar divides the dB value of a plain ratio. Anchored scales do not
// divide.
func (q *Quantity) DivScalar(f float64) (*Quantity, error) {
	if q.unit.name != "dB" {
		return nil, fmt.Errorf("%w: divide %s", unit.ErrUnit, q.unit.name)
	}
	return &Quantity{value: q.value / f, unit: q.unit}, nil
}

// Cmp orders two decibel quantities: directly on the same scale, by offset
// shift between bare ratio scales, otherwise through their linear forms.
func (q *Quantity) Cmp(o *Quantity) (int, error) {
	if q.unit == o.unit {
		return cmpFloat(q.value, o.value), nil
	}
	if q.unit.linear == nil && o.unit.linear == nil {
		c, err := o.To(q.unit.name)
		if err != nil {
			return 0, err
		}
		return cmpFloat(q.value, c.value), nil
	}
	a, err := q.Lin()
	if err != nil {
		return 0, err
	}
	b, err := o.Lin()
	if err != nil {
		return 0, err
	}
	return a.Cmp(b)
}

// Equal reports whether two decibel quantities name the same ratio. It
// returns false, never an error, for incomparable scales.
func (q *Quantity) Equal(o *Quantity) bool {
	if o == nil {
		return false
	}
	c, err := q.Cmp(o)
	return err == nil && c == 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
