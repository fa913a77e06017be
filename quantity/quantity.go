// Package quantity implements physical quantities: numeric values tied to a
// unit of measure, with dimensional bookkeeping on every operation.
//
// A Quantity pairs a tagged numeric payload (Scalar, Complex or Array) with
// a *unit.Unit. Arithmetic delegates dimension combination to the unit
// algebra; conversions delegate to the conversion factor/tuple computation.
// Products and quotients whose resulting unit is dimensionless collapse to a
// bare Value instead of a unit-bearing wrapper.
package quantity

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/c360studio/physq/unit"
)

// Quantity is a numeric value expressed in a unit. The value and unit fields
// only change together through Convert; everything else returns new
// instances.
type Quantity struct {
	value Value
	unit  *unit.Unit

	// Format, when set, overrides the value verb used by String, e.g. "%.2f".
	Format string
}

// New pairs a payload with a resolved unit. It panics on a nil unit or
// payload; use the string constructors to surface resolution errors.
func New(v Value, u *unit.Unit) *Quantity {
	if v == nil {
		panic("quantity: nil value")
	}
	if u == nil {
		panic("quantity: nil unit")
	}
	return &Quantity{value: v, unit: u}
}

// NewScalar builds a scalar quantity, resolving expr against the default
// registry.
func NewScalar(x float64, expr string) (*Quantity, error) {
	u, err := unit.Resolve(expr)
	if err != nil {
		return nil, err
	}
	return New(Scalar(x), u), nil
}

// NewComplex builds a complex-valued quantity, resolving expr against the
// default registry.
func NewComplex(c complex128, expr string) (*Quantity, error) {
	u, err := unit.Resolve(expr)
	if err != nil {
		return nil, err
	}
	return New(Complex(c), u), nil
}

// NewArray builds an array-valued quantity, resolving expr against the
// default registry. The slice is shared, not copied.
func NewArray(xs []float64, expr string) (*Quantity, error) {
	u, err := unit.Resolve(expr)
	if err != nil {
		return nil, err
	}
	return New(Array(xs), u), nil
}

// Value returns the payload.
func (q *Quantity) Value() Value { return q.value }

// Unit returns the unit.
func (q *Quantity) Unit() *unit.Unit { return q.unit }

func (q *Quantity) String() string {
	verb := q.Format
	if verb == "" {
		verb = "%v"
	}
	var rendered string
	switch x := q.value.(type) {
	case Scalar:
		rendered = fmt.Sprintf(verb, float64(x))
	case Complex:
		rendered = fmt.Sprintf(verb, complex128(x))
	case Array:
		rendered = fmt.Sprintf(verb, []float64(x))
	}
	return rendered + " " + q.unit.Name()
}

// Add returns q + o expressed in q's unit. The operands must share a
// dimension vector.
func (q *Quantity) Add(o *Quantity) (*Quantity, error) {
	f, err := o.unit.ConversionFactorTo(q.unit)
	if err != nil {
		return nil, err
	}
	v, err := add(q.value, scale(o.value, f))
	if err != nil {
		return nil, err
	}
	return &Quantity{value: v, unit: q.unit}, nil
}

// Sub returns q - o expressed in q's unit.
func (q *Quantity) Sub(o *Quantity) (*Quantity, error) {
	f, err := o.unit.ConversionFactorTo(q.unit)
	if err != nil {
		return nil, err
	}
	v, err := add(q.value, scale(o.value, -f))
	if err != nil {
		return nil, err
	}
	return &Quantity{value: v, unit: q.unit}, nil
}

// Neg returns -q.
func (q *Quantity) Neg() *Quantity {
	return &Quantity{value: scale(q.value, -1), unit: q.unit}
}

// Mul multiplies two quantities. When the combined unit is dimensionless the
// product collapses to a bare Value scaled by the residual factor; exactly
// one of the returned quantity and value is non-nil.
func (q *Quantity) Mul(o *Quantity) (*Quantity, Value, error) {
	u, err := q.unit.Mul(o.unit)
	if err != nil {
		return nil, nil, err
	}
	v, err := mul(q.value, o.value)
	if err != nil {
		return nil, nil, err
	}
	if u.IsDimensionless() {
		return nil, scale(v, u.Factor()), nil
	}
	return &Quantity{value: v, unit: u}, nil, nil
}

// Div divides two quantities, collapsing dimensionless results the same way
// as Mul.
func (q *Quantity) Div(o *Quantity) (*Quantity, Value, error) {
	u, err := q.unit.Div(o.unit)
	if err != nil {
		return nil, nil, err
	}
	v, err := div(q.value, o.value)
	if err != nil {
		return nil, nil, err
	}
	if u.IsDimensionless() {
		return nil, scale(v, u.Factor()), nil
	}
	return &Quantity{value: v, unit: u}, nil, nil
}

// MulScalar scales the value, keeping the unit.
func (q *Quantity) MulScalar(f float64) *Quantity {
	return &Quantity{value: scale(q.value, f), unit: q.unit}
}

// DivScalar divides the value, keeping the unit.
func (q *Quantity) DivScalar(f float64) *Quantity {
	return &Quantity{value: scale(q.value, 1/f), unit: q.unit}
}

// Pow raises value and unit together. Fractional exponents follow the unit
// algebra's root rules.
func (q *Quantity) Pow(n float64) (*Quantity, error) {
	u, err := q.unit.Pow(n)
	if err != nil {
		return nil, err
	}
	return &Quantity{value: pow(q.value, n), unit: u}, nil
}

// base returns the payload expressed in base dimensions.
func (q *Quantity) base() Value {
	return affine(q.value, q.unit.Factor(), q.unit.Offset())
}

// Cmp orders two quantities by their base-form values, returning -1, 0 or 1.
// The dimension vectors must match and both payloads must be scalars.
func (q *Quantity) Cmp(o *Quantity) (int, error) {
	if q.unit.Powers() != o.unit.Powers() {
		return 0, fmt.Errorf("%w: %s and %s", unit.ErrIncompatibleUnits,
			q.unit.Name(), o.unit.Name())
	}
	a, aok := q.base().(Scalar)
	b, bok := o.base().(Scalar)
	if !aok || !bok {
		return 0, fmt.Errorf("%w: ordering requires scalar payloads", unit.ErrUnit)
	}
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal compares base-form values. It returns false, never an error, for nil
// or dimensionally foreign operands.
func (q *Quantity) Equal(o *Quantity) bool {
	if o == nil {
		return false
	}
	if q.unit.Powers() != o.unit.Powers() {
		return false
	}
	return equalValues(q.base(), o.base())
}

// Sin returns the sine of an angle quantity as a bare value.
func (q *Quantity) Sin() (Value, error) {
	return q.trig("sin", math.Sin, cmplx.Sin)
}

// Cos returns the cosine of an angle quantity as a bare value.
func (q *Quantity) Cos() (Value, error) {
	return q.trig("cos", math.Cos, cmplx.Cos)
}

// Tan returns the tangent of an angle quantity as a bare value.
func (q *Quantity) Tan() (Value, error) {
	return q.trig("tan", math.Tan, cmplx.Tan)
}

func (q *Quantity) trig(name string, f func(float64) float64, fc func(complex128) complex128) (Value, error) {
	if !q.unit.IsAngle() {
		return nil, fmt.Errorf("%w: %s of non-angle %s", unit.ErrUnit, name, q.unit.Name())
	}
	return apply(q.base(), f, fc), nil
}

// Len returns the payload length for array quantities.
func (q *Quantity) Len() (int, error) {
	arr, ok := q.value.(Array)
	if !ok {
		return 0, fmt.Errorf("%w: len of %T payload", unit.ErrNotArray, q.value)
	}
	return len(arr), nil
}

// Index returns element i as a scalar quantity in the same unit.
func (q *Quantity) Index(i int) (*Quantity, error) {
	arr, ok := q.value.(Array)
	if !ok {
		return nil, fmt.Errorf("%w: index of %T payload", unit.ErrNotArray, q.value)
	}
	return &Quantity{value: Scalar(arr[i]), unit: q.unit}, nil
}

// SetIndex stores o at element i, converting it into q's unit first. The
// converted payload must be a scalar.
func (q *Quantity) SetIndex(i int, o *Quantity) error {
	arr, ok := q.value.(Array)
	if !ok {
		return fmt.Errorf("%w: assign into %T payload", unit.ErrNotArray, q.value)
	}
	f, off, err := o.unit.ConversionTupleTo(q.unit)
	if err != nil {
		return err
	}
	s, ok := affine(o.value, f, off).(Scalar)
	if !ok {
		return fmt.Errorf("%w: assigned element must be scalar", unit.ErrUnit)
	}
	arr[i] = float64(s)
	return nil
}

// Real returns the real part in the same unit. Array payloads are already
// real and come back sharing their storage.
func (q *Quantity) Real() *Quantity {
	switch x := q.value.(type) {
	case Scalar:
		return q
	case Complex:
		return &Quantity{value: Scalar(real(complex128(x))), unit: q.unit}
	case Array:
		return q
	}
	panic(fmt.Sprintf("quantity: unknown value variant %T", q.value))
}

// Imag returns the imaginary part in the same unit.
func (q *Quantity) Imag() *Quantity {
	switch x := q.value.(type) {
	case Scalar:
		return &Quantity{value: Scalar(0), unit: q.unit}
	case Complex:
		return &Quantity{value: Scalar(imag(complex128(x))), unit: q.unit}
	case Array:
		return &Quantity{value: make(Array, len(x)), unit: q.unit}
	}
	panic(fmt.Sprintf("quantity: unknown value variant %T", q.value))
}
