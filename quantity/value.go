package quantity

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/c360studio/physq/unit"
)

// Value is the numeric payload of a Quantity: a closed set of tagged
// variants dispatched explicitly instead of duck-typed numbers.
type Value interface {
	isValue()
}

// Scalar is a real-valued payload.
type Scalar float64

// Complex is a complex-valued payload.
type Complex complex128

// Array is a real-valued vector payload. The Quantity does not copy it;
// callers share the backing storage.
type Array []float64

func (Scalar) isValue()  {}
func (Complex) isValue() {}
func (Array) isValue()   {}

// affine applies x*factor + offset elementwise.
func affine(v Value, factor, offset float64) Value {
	switch x := v.(type) {
	case Scalar:
		return Scalar(float64(x)*factor + offset)
	case Complex:
		return Complex(complex128(x)*complex(factor, 0) + complex(offset, 0))
	case Array:
		out := make(Array, len(x))
		for i, e := range x {
			out[i] = e*factor + offset
		}
		return out
	}
	panic(fmt.Sprintf("quantity: unknown value variant %T", v))
}

// scale multiplies every element by f.
func scale(v Value, f float64) Value {
	return affine(v, f, 0)
}

func add(a, b Value) (Value, error) {
	switch x := a.(type) {
	case Scalar:
		switch y := b.(type) {
		case Scalar:
			return x + y, nil
		case Complex:
			return Complex(complex(float64(x), 0)) + y, nil
		case Array:
			out := make(Array, len(y))
			for i, e := range y {
				out[i] = float64(x) + e
			}
			return out, nil
		}
	case Complex:
		switch y := b.(type) {
		case Scalar:
			return x + Complex(complex(float64(y), 0)), nil
		case Complex:
			return x + y, nil
		}
	case Array:
		switch y := b.(type) {
		case Scalar:
			out := make(Array, len(x))
			for i, e := range x {
				out[i] = e + float64(y)
			}
			return out, nil
		case Array:
			if len(x) != len(y) {
				return nil, fmt.Errorf("%w: array lengths %d and %d",
					unit.ErrUnit, len(x), len(y))
			}
			out := make(Array, len(x))
			for i, e := range x {
				out[i] = e + y[i]
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %T and %T", unit.ErrUnit, a, b)
}

func mul(a, b Value) (Value, error) {
	switch x := a.(type) {
	case Scalar:
		switch y := b.(type) {
		case Scalar:
			return x * y, nil
		case Complex:
			return Complex(complex(float64(x), 0)) * y, nil
		case Array:
			return scale(y, float64(x)), nil
		}
	case Complex:
		switch y := b.(type) {
		case Scalar:
			return x * Complex(complex(float64(y), 0)), nil
		case Complex:
			return x * y, nil
		}
	case Array:
		switch y := b.(type) {
		case Scalar:
			return scale(x, float64(y)), nil
		case Array:
			if len(x) != len(y) {
				return nil, fmt.Errorf("%w: array lengths %d and %d",
					unit.ErrUnit, len(x), len(y))
			}
			out := make(Array, len(x))
			for i, e := range x {
				out[i] = e * y[i]
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %T and %T", unit.ErrUnit, a, b)
}

func div(a, b Value) (Value, error) {
	switch y := b.(type) {
	case Scalar:
		return scale(a, 1/float64(y)), nil
	case Complex:
		switch x := a.(type) {
		case Scalar:
			return Complex(complex(float64(x), 0)) / y, nil
		case Complex:
			return x / y, nil
		}
	case Array:
		switch x := a.(type) {
		case Scalar:
			out := make(Array, len(y))
			for i, e := range y {
				out[i] = float64(x) / e
			}
			return out, nil
		case Array:
			if len(x) != len(y) {
				return nil, fmt.Errorf("%w: array lengths %d and %d",
					unit.ErrUnit, len(x), len(y))
			}
			out := make(Array, len(x))
			for i, e := range x {
				out[i] = e / y[i]
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %T and %T", unit.ErrUnit, a, b)
}

func pow(v Value, n float64) Value {
	switch x := v.(type) {
	case Scalar:
		return Scalar(math.Pow(float64(x), n))
	case Complex:
		return Complex(cmplx.Pow(complex128(x), complex(n, 0)))
	case Array:
		out := make(Array, len(x))
		for i, e := range x {
			out[i] = math.Pow(e, n)
		}
		return out
	}
	panic(fmt.Sprintf("quantity: unknown value variant %T", v))
}

// equalValues compares payloads, promoting Scalar to Complex when mixed.
// Mismatched kinds compare unequal rather than failing.
func equalValues(a, b Value) bool {
	switch x := a.(type) {
	case Scalar:
		switch y := b.(type) {
		case Scalar:
			return x == y
		case Complex:
			return complex(float64(x), 0) == complex128(y)
		}
	case Complex:
		switch y := b.(type) {
		case Scalar:
			return complex128(x) == complex(float64(y), 0)
		case Complex:
			return x == y
		}
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i, e := range x {
			if e != y[i] {
				return false
			}
		}
		return true
	}
	return false
}

// apply maps f over every element, preserving the variant. Complex payloads
// use the complex extension of f when given.
func apply(v Value, f func(float64) float64, fc func(complex128) complex128) Value {
	switch x := v.(type) {
	case Scalar:
		return Scalar(f(float64(x)))
	case Complex:
		if fc != nil {
			return Complex(fc(complex128(x)))
		}
		return Complex(complex(f(real(complex128(x))), f(imag(complex128(x)))))
	case Array:
		out := make(Array, len(x))
		for i, e := range x {
			out[i] = f(e)
		}
		return out
	}
	panic(fmt.Sprintf("quantity: unknown value variant %T", v))
}

// trunc drops the fractional part of every element, rounding toward zero.
func trunc(v Value) Value {
	return apply(v, math.Trunc, nil)
}
