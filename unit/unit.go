// Package unit implements physical units of measure as affine scalings over
// a fixed basis of base dimensions, together with the registry that names
// them.
//
// A unit is a display name map, a positive scale factor, an additive offset
// and a dimension vector. Converting a value x to base dimensions computes
// x*factor + offset. Offset-bearing units model affine scales such as
// Celsius; they cannot be composed into derived units, only converted.
package unit

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kbolino/rat128"
)

// Unit is a named, scaled, dimensioned unit of measure. Units are immutable
// once constructed; every algebra operation returns a new instance. Equality
// is by value over powers, factor and offset, never by name alone.
type Unit struct {
	names    Exponents
	factor   float64
	offset   float64
	powers   Dimension
	verbose  string
	url      string
	prefixed bool
	baseunit *Unit
}

// Option sets descriptive metadata on a unit under construction.
type Option func(*Unit)

// WithVerboseName sets the human-readable name, e.g. "Newton" for N.
func WithVerboseName(name string) Option {
	return func(u *Unit) { u.verbose = name }
}

// WithURL sets a reference URL describing the unit.
func WithURL(url string) Option {
	return func(u *Unit) { u.url = url }
}

// WithOffset sets the additive offset applied after scaling when converting
// to base dimensions. Used only for affine scales such as temperatures.
func WithOffset(offset float64) Option {
	return func(u *Unit) { u.offset += offset }
}

// WithPrefixed marks the unit as a systematically prefixed variant of base
// and records the back-reference.
func WithPrefixed(base *Unit) Option {
	return func(u *Unit) {
		u.prefixed = true
		u.baseunit = base
	}
}

// New constructs a unit from display name exponents, a scale factor and a
// dimension vector. The unit is its own base unit unless WithPrefixed says
// otherwise.
func New(names Exponents, factor float64, powers Dimension, opts ...Option) *Unit {
	u := &Unit{names: names, factor: factor, powers: powers}
	for _, opt := range opts {
		opt(u)
	}
	if u.baseunit == nil {
		u.baseunit = u
	}
	return u
}

// Name renders the display name from the component exponents, numerator
// before denominator, e.g. "m/s" or "kg*m/s**2".
func (u *Unit) Name() string { return u.names.format() }

func (u *Unit) String() string { return u.Name() }

// Names returns a copy of the display name exponents.
func (u *Unit) Names() Exponents {
	names := make(Exponents, len(u.names))
	for k, v := range u.names {
		names[k] = v
	}
	return names
}

// Factor returns the multiplicative scale to base dimensions.
func (u *Unit) Factor() float64 { return u.factor }

// Offset returns the additive offset to base dimensions.
func (u *Unit) Offset() float64 { return u.offset }

// Powers returns the dimension vector.
func (u *Unit) Powers() Dimension { return u.powers }

// VerboseName returns the human-readable name, if set.
func (u *Unit) VerboseName() string { return u.verbose }

// URL returns the reference URL, if set.
func (u *Unit) URL() string { return u.url }

// IsPrefixed reports whether the unit is a systematically prefixed variant.
func (u *Unit) IsPrefixed() bool { return u.prefixed }

// BaseUnit returns the unprefixed unit this one scales, or the unit itself.
func (u *Unit) BaseUnit() *Unit { return u.baseunit }

// IsDimensionless reports whether every dimension exponent is zero.
func (u *Unit) IsDimensionless() bool { return u.powers.IsZero() }

// IsAngle reports whether the unit is exactly a plane angle.
func (u *Unit) IsAngle() bool {
	if u.powers[DimAngle] != one {
		return false
	}
	for i := range u.powers {
		if i != DimAngle && !u.powers[i].IsZero() {
			return false
		}
	}
	return true
}

// Mul combines two units, multiplying factors and adding exponents. Neither
// operand may carry an offset.
func (u *Unit) Mul(o *Unit) (*Unit, error) {
	if u.offset != 0 || o.offset != 0 {
		return nil, fmt.Errorf("%w: %s * %s", ErrOffset, u.Name(), o.Name())
	}
	return New(u.names.Add(o.names), u.factor*o.factor, u.powers.Add(o.powers)), nil
}

// Div combines two units, dividing factors and subtracting exponents.
// Neither operand may carry an offset.
func (u *Unit) Div(o *Unit) (*Unit, error) {
	if u.offset != 0 || o.offset != 0 {
		return nil, fmt.Errorf("%w: %s / %s", ErrOffset, u.Name(), o.Name())
	}
	return New(u.names.Sub(o.names), u.factor/o.factor, u.powers.Sub(o.powers)), nil
}

// Pow raises the unit to exp. Integer exponents scale names, factor and
// powers together. An inverse-integer exponent 1/n (within 1e-10 of one)
// takes the nth root, which requires every dimension exponent to be
// divisible by n; when the display-name exponents do not also divide, the
// name collapses to a synthetic symbol built from the scaled factor and the
// base dimension names. Any other exponent is rejected.
func (u *Unit) Pow(exp float64) (*Unit, error) {
	if u.offset != 0 {
		return nil, fmt.Errorf("%w: cannot exponentiate %s", ErrOffset, u.Name())
	}
	if n := math.Round(exp); n == exp {
		r := rat128.New(int64(n), 1)
		return New(u.names.Scale(r), math.Pow(u.factor, exp), u.powers.Scale(r)), nil
	}
	inv := 1 / exp
	rounded := math.Round(inv)
	if math.Abs(inv-rounded) >= 1e-10 {
		return nil, fmt.Errorf("%w: only integer and inverse integer exponents, got %v",
			ErrIllegalExponent, exp)
	}
	root := int64(rounded)
	if !u.powers.divisibleBy(root) {
		return nil, fmt.Errorf("%w: %v does not divide the exponents of %s",
			ErrIllegalExponent, exp, u.Name())
	}
	factor := math.Pow(u.factor, exp)
	powers := u.powers.div(root)
	var names Exponents
	if u.names.divisibleBy(root) {
		names = u.names.Div(root)
	} else {
		names = make(Exponents)
		if factor != 1 {
			names[strconv.FormatFloat(factor, 'g', -1, 64)] = one
		}
		for i := range powers {
			if !powers[i].IsZero() {
				names[BaseNames[i]] = powers[i]
			}
		}
	}
	return New(names, factor, powers), nil
}

// ConversionFactorTo returns the pure ratio converting values in u to values
// in o. It refuses to silently drop an offset: when the offsets differ the
// factors must match.
func (u *Unit) ConversionFactorTo(o *Unit) (float64, error) {
	if u.powers != o.powers {
		return 0, fmt.Errorf("%w: %s and %s", ErrIncompatibleUnits, u.Name(), o.Name())
	}
	if u.offset != o.offset && u.factor != o.factor {
		return 0, fmt.Errorf("%w: %s and %s differ by offset, use ConversionTupleTo",
			ErrIncompatibleUnits, u.Name(), o.Name())
	}
	return u.factor / o.factor, nil
}

// ConversionTupleTo returns the affine transform (factor, offset) such that
// a value x in u equals x*factor + offset in o. Each unit maps a value to
// base dimensions as value*Factor() + Offset(); solving the composition
// gives factor = u.factor/o.factor and offset = (u.offset-o.offset)/o.factor.
func (u *Unit) ConversionTupleTo(o *Unit) (factor, offset float64, err error) {
	if u.powers != o.powers {
		return 0, 0, fmt.Errorf("%w: %s and %s", ErrIncompatibleUnits, u.Name(), o.Name())
	}
	return u.factor / o.factor, (u.offset - o.offset) / o.factor, nil
}

// Equal reports value equality: identical powers, factor and offset. It
// returns false, never an error, for nil or dimensionally foreign operands.
func (u *Unit) Equal(o *Unit) bool {
	if o == nil {
		return false
	}
	return u.powers == o.powers && u.factor == o.factor && u.offset == o.offset
}

// Cmp orders two units of equal dimension by scale factor, returning -1, 0
// or 1. Units of differing dimension do not order.
func (u *Unit) Cmp(o *Unit) (int, error) {
	if u.powers != o.powers {
		return 0, fmt.Errorf("%w: %s and %s", ErrIncompatibleUnits, u.Name(), o.Name())
	}
	switch {
	case u.factor < o.factor:
		return -1, nil
	case u.factor > o.factor:
		return 1, nil
	default:
		return 0, nil
	}
}
