// Package decibel layers logarithmic dB scales over linear physical units.
//
// A decibel unit names a log10 scale, optionally anchored to a linear unit:
// dBm is 10*log10 of a power in mW, dBuV is 20*log10 of a voltage in uV.
// Bare ratio scales such as dB, dBi and dBc carry no anchor. Values on these
// scales add, rescale across scales of the same family, and convert back to
// their linear form.
package decibel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kbolino/rat128"

	"github.com/c360studio/physq/unit"
)

var (
	// ErrNoLinear reports an operation that needs a linear anchor on a bare
	// ratio scale such as dB or dBi.
	ErrNoLinear = errors.New("no linear unit for decibel scale")

	// ErrScale reports a fixed 10^(x/10) or 10^(x/20) conversion applied to
	// a scale of the opposite kind.
	ErrScale = errors.New("conversion does not match decibel scale")
)

// Unit is a named logarithmic scale. A value v on the scale relates to its
// linear magnitude x by v = factor*log10(x) - offset, with x expressed in
// the anchor unit. Anchored scales derive their factor from the anchor's
// power nature; bare ratio scales carry an explicit factor, or none at all
// for plain dB.
type Unit struct {
	name   string
	linear *unit.Unit
	offset float64
	factor float64
}

// Name returns the scale name, e.g. "dBm".
func (u *Unit) Name() string { return u.name }

func (u *Unit) String() string { return u.name }

// Linear returns the unit the scale is anchored to, or nil for bare ratios.
func (u *Unit) Linear() *unit.Unit { return u.linear }

// Factor returns the log10 multiplier: 10 for power scales, 20 for
// amplitude scales. Plain dB reports 0, it names a ratio without fixing
// either reading.
func (u *Unit) Factor() float64 { return u.factor }

// Offset returns the shift against the zero-offset scale of the same
// family, e.g. 2.15 for dBd against dBi.
func (u *Unit) Offset() float64 { return u.offset }

var (
	dimArea = unit.Dim(2)
	two     = rat128.New(2, 1)
	oneExp  = rat128.New(1, 1)
	negOne  = rat128.New(-1, 1)
)

// IsPower reports whether values in u scale as powers (10*log10) rather
// than amplitudes (20*log10). Pure areas count as powers (radar cross
// sections), as does anything proportional to kg*m**2 whose current
// exponent stays above -1: W and J qualify, V does not.
func IsPower(u *unit.Unit) bool {
	p := u.Powers()
	if p == dimArea {
		return true
	}
	return p[unit.DimLength] == two && p[unit.DimMass] == oneExp &&
		p[unit.DimCurrent].Cmp(negOne) > 0
}

// scaleDef declares one entry of the scale table. Anchored scales name a
// resolvable linear expression; bare ratios fix factor and offset directly.
type scaleDef struct {
	name   string
	expr   string
	offset float64
	factor float64
}

var scaleDefs = []scaleDef{
	{name: "dB"},
	{name: "dBm", expr: "mW"},
	{name: "dBW", expr: "W"},
	{name: "dBnV", expr: "nV"},
	{name: "dBuV", expr: "uV"},
	{name: "dBmV", expr: "mV"},
	{name: "dBV", expr: "V"},
	{name: "dBnA", expr: "nA"},
	{name: "dBuA", expr: "uA"},
	{name: "dBmA", expr: "mA"},
	{name: "dBA", expr: "A"},
	{name: "dBsm", expr: "m**2"},
	{name: "dBd", factor: 10, offset: 2.15},
	{name: "dBi", factor: 10},
	{name: "dBc", factor: 10},
}

var (
	buildOnce sync.Once
	table     map[string]*Unit
	order     []string
)

// buildTable resolves the scale anchors against the default registry once.
// Scan order matters: conversions without an explicit target scale fall back
// to the last dimension match, so the base-anchored scale of each family
// (dBW, dBV, dBA) is defined after its prefixed variants.
func buildTable() {
	buildOnce.Do(func() {
		table = make(map[string]*Unit, len(scaleDefs))
		order = make([]string, 0, len(scaleDefs))
		for _, d := range scaleDefs {
			u := &Unit{name: d.name, offset: d.offset, factor: d.factor}
			if d.expr != "" {
				lin, err := unit.Resolve(d.expr)
				if err != nil {
					panic(fmt.Sprintf("decibel: resolve %s: %v", d.expr, err))
				}
				u.linear = lin
				u.factor = 20
				if IsPower(lin) {
					u.factor = 10
				}
			}
			table[u.name] = u
			order = append(order, u.name)
		}
	})
}

// Get returns the named decibel scale.
func Get(name string) (*Unit, error) {
	buildTable()
	u, ok := table[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", unit.ErrUnknownUnit, name)
	}
	return u, nil
}

// Units returns all scale names in definition order.
func Units() []string {
	buildTable()
	out := make([]string, len(order))
	copy(out, order)
	return out
}
