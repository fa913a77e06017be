package unit

import "github.com/kbolino/rat128"

// Indexes into a Dimension vector. The basis order is fixed process-wide;
// every Dimension is expressed against it.
const (
	DimLength = iota
	DimMass
	DimTime
	DimCurrent
	DimTemperature
	DimAmount
	DimLuminous
	DimAngle
	DimSolidAngle
	DimBit
	DimCurrency

	NumDims
)

// BaseNames holds the canonical base unit name of each dimension, in basis
// order.
var BaseNames = [NumDims]string{
	"m", "kg", "s", "A", "K", "mol", "cd", "rad", "sr", "Bit", "currency",
}

// Dimension is the exponent of each base dimension in a unit. It is a pure
// value type: arithmetic returns new vectors, and two vectors compare with
// == because entries are normalized rationals.
type Dimension [NumDims]rat128.N

// Dim builds a Dimension from integer exponents in basis order. Trailing
// zeros may be omitted.
func Dim(exps ...int64) Dimension {
	var d Dimension
	for i, e := range exps {
		if e != 0 {
			d[i] = rat128.New(e, 1)
		}
	}
	return d
}

// Add returns the elementwise sum of d and o.
func (d Dimension) Add(o Dimension) Dimension {
	var sum Dimension
	for i := range d {
		sum[i] = d[i].Add(o[i])
	}
	return sum
}

// Sub returns the elementwise difference of d and o.
func (d Dimension) Sub(o Dimension) Dimension {
	var diff Dimension
	for i := range d {
		diff[i] = d[i].Sub(o[i])
	}
	return diff
}

// Scale multiplies every exponent by r.
func (d Dimension) Scale(r rat128.N) Dimension {
	var scaled Dimension
	for i := range d {
		scaled[i] = d[i].Mul(r)
	}
	return scaled
}

// IsZero reports whether every exponent is zero.
func (d Dimension) IsZero() bool {
	for i := range d {
		if !d[i].IsZero() {
			return false
		}
	}
	return true
}

// divisibleBy reports whether every exponent divided by n stays integral.
func (d Dimension) divisibleBy(n int64) bool {
	r := reciprocal(n)
	for i := range d {
		if d[i].Mul(r).Den() != 1 {
			return false
		}
	}
	return true
}

// div divides every exponent by n. Callers check divisibleBy first.
func (d Dimension) div(n int64) Dimension {
	return d.Scale(reciprocal(n))
}
