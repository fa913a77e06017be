package quantity

import (
	"fmt"
	"math"
	"sort"

	"github.com/c360studio/physq/unit"
)

// To converts the quantity into target, applying the full affine transform.
func (q *Quantity) To(target *unit.Unit) (*Quantity, error) {
	f, o, err := q.unit.ConversionTupleTo(target)
	if err != nil {
		return nil, err
	}
	return &Quantity{value: affine(q.value, f, o), unit: target}, nil
}

// Convert is the in-place form of To.
func (q *Quantity) Convert(target *unit.Unit) error {
	f, o, err := q.unit.ConversionTupleTo(target)
	if err != nil {
		return err
	}
	q.value = affine(q.value, f, o)
	q.unit = target
	return nil
}

// Split decomposes the quantity over several units of the same dimension,
// mixed-radix style: processing runs from the largest scale to the smallest,
// every component except the smallest is truncated toward zero after the
// larger components are subtracted, and the smallest unit absorbs the exact
// remainder. The result preserves the caller's unit order, so
// Split(h, min, s) of 3661 s is (1 h, 1 min, 1 s) and Split(min, h) of the
// same quantity is (1.0166... min, 1 h). Negative totals decompose
// symmetrically.
func (q *Quantity) Split(units ...*unit.Unit) ([]*Quantity, error) {
	if len(units) == 0 {
		return nil, fmt.Errorf("%w: split needs at least one unit", unit.ErrUnit)
	}
	if len(units) == 1 {
		one, err := q.To(units[0])
		if err != nil {
			return nil, err
		}
		return []*Quantity{one}, nil
	}

	// Process in descending scale order, tracking the remainder in the
	// smallest unit's scale so integer components stay exact.
	order := make([]int, len(units))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return units[order[a]].Factor() > units[order[b]].Factor()
	})
	smallest := units[order[len(order)-1]]

	rem, err := q.To(smallest)
	if err != nil {
		return nil, err
	}
	remaining := rem.value

	out := make([]*Quantity, len(units))
	for k, i := range order {
		u := units[i]
		if k == len(order)-1 {
			out[i] = &Quantity{value: remaining, unit: u}
			break
		}
		f, err := u.ConversionFactorTo(smallest)
		if err != nil {
			return nil, err
		}
		component := trunc(scale(remaining, 1/f))
		remaining, err = add(remaining, scale(component, -f))
		if err != nil {
			return nil, err
		}
		out[i] = &Quantity{value: component, unit: u}
	}
	return out, nil
}

// Base reduces the quantity to base dimensions: the value has factor and
// offset applied, and the unit is synthesized from the non-zero dimension
// exponents over the base names.
func (q *Quantity) Base() *Quantity {
	powers := q.unit.Powers()
	names := make(unit.Exponents)
	for i := range powers {
		if !powers[i].IsZero() {
			names[unit.BaseNames[i]] = powers[i]
		}
	}
	return &Quantity{value: q.base(), unit: unit.New(names, 1, powers)}
}

// Autoscale rescales a scalar quantity with a single-component unit to the
// registered prefixed variant that places its magnitude closest to the
// center of the [1,1000) decade. Composite units, non-scalar payloads and
// quantities with no better candidate come back unchanged.
func (q *Quantity) Autoscale(r *unit.Registry) *Quantity {
	s, ok := q.value.(Scalar)
	if !ok {
		return q
	}
	if len(q.unit.Names()) != 1 {
		return q
	}
	baseVal := float64(s)*q.unit.Factor() + q.unit.Offset()
	if baseVal == 0 || math.IsInf(baseVal, 0) || math.IsNaN(baseVal) {
		return q
	}
	mag := math.Log10(math.Abs(baseVal))

	// Displayed magnitude in u is baseVal/u.factor; log-distance from the
	// decade center 10^1.5 decides the winner.
	base := q.unit.BaseUnit()
	best := q.unit
	bestDist := math.Abs(mag - math.Log10(q.unit.Factor()) - 1.5)
	for _, cand := range r.Units() {
		if cand.BaseUnit() != base || cand.Offset() != 0 {
			continue
		}
		if d := math.Abs(mag - math.Log10(cand.Factor()) - 1.5); d < bestDist {
			best, bestDist = cand, d
		}
	}
	if best == q.unit {
		return q
	}
	scaled, err := q.To(best)
	if err != nil {
		return q
	}
	return scaled
}
