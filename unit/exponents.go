package unit

import (
	"sort"
	"strconv"
	"strings"

	"github.com/kbolino/rat128"
)

// Exponents maps a name component to its rational exponent. A missing key
// reads as exponent zero; zero-valued entries are tolerated but carry no
// meaning. All operations return fresh maps, so a constructed map is never
// mutated through its holder.
//
// Exponents use exact rational arithmetic: repeated root and power
// operations must not accumulate representation error in displayed
// exponents, even though the associated scale factor (a float) may.
type Exponents map[string]rat128.N

var (
	one    = rat128.New(1, 1)
	negOne = rat128.New(-1, 1)
)

// Single returns a map holding name raised to the first power.
func Single(name string) Exponents {
	return Exponents{name: one}
}

// Get returns the exponent stored under name, or zero if absent.
func (e Exponents) Get(name string) rat128.N {
	return e[name]
}

// Add returns the keywise sum of e and other.
func (e Exponents) Add(other Exponents) Exponents {
	sum := make(Exponents, len(e)+len(other))
	for k, v := range e {
		sum[k] = v
	}
	for k, v := range other {
		sum[k] = sum[k].Add(v)
	}
	return sum
}

// Sub returns the keywise difference of e and other.
func (e Exponents) Sub(other Exponents) Exponents {
	diff := make(Exponents, len(e)+len(other))
	for k, v := range e {
		diff[k] = v
	}
	for k, v := range other {
		diff[k] = diff[k].Sub(v)
	}
	return diff
}

// Scale multiplies every present exponent by r.
func (e Exponents) Scale(r rat128.N) Exponents {
	scaled := make(Exponents, len(e))
	for k, v := range e {
		scaled[k] = v.Mul(r)
	}
	return scaled
}

// Div divides every present exponent by n.
func (e Exponents) Div(n int64) Exponents {
	return e.Scale(reciprocal(n))
}

// DivInto divides r by every present exponent, the reciprocal form of Div.
func (e Exponents) DivInto(r rat128.N) Exponents {
	out := make(Exponents, len(e))
	for k, v := range e {
		out[k] = r.Div(v)
	}
	return out
}

// Equal reports whether e and other agree on every key, treating missing
// keys as zero.
func (e Exponents) Equal(other Exponents) bool {
	for k, v := range e {
		if other.Get(k) != v {
			return false
		}
	}
	for k, v := range other {
		if e.Get(k) != v {
			return false
		}
	}
	return true
}

// divisibleBy reports whether every exponent divided by n stays integral.
func (e Exponents) divisibleBy(n int64) bool {
	r := reciprocal(n)
	for _, v := range e {
		if v.Mul(r).Den() != 1 {
			return false
		}
	}
	return true
}

// format renders the map as a unit expression: positive exponents joined
// with '*' into a numerator, negative exponents appended as a '/'-separated
// denominator, with "1" standing in for an empty numerator. Keys are emitted
// in sorted order so the rendering is deterministic.
func (e Exponents) format() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var num, denom strings.Builder
	for _, k := range keys {
		p := e[k]
		switch {
		case p.Sign() > 0:
			if num.Len() > 0 {
				num.WriteByte('*')
			}
			num.WriteString(k)
			if p != one {
				num.WriteString("**")
				num.WriteString(formatExponent(p))
			}
		case p.Sign() < 0:
			denom.WriteByte('/')
			denom.WriteString(k)
			if p != negOne {
				denom.WriteString("**")
				denom.WriteString(formatExponent(p.Neg()))
			}
		}
	}
	if num.Len() == 0 {
		return "1" + denom.String()
	}
	return num.String() + denom.String()
}

func formatExponent(r rat128.N) string {
	if r.Den() == 1 {
		return strconv.FormatInt(r.Num(), 10)
	}
	return r.String()
}

// reciprocal returns 1/n as an exact rational, tolerating negative n.
func reciprocal(n int64) rat128.N {
	if n < 0 {
		return rat128.New(-1, -n)
	}
	return rat128.New(1, n)
}
