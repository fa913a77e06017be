package unit

import (
	"encoding/json"
	"fmt"
)

// unitDescription is the stored form of a unit: the registered name plus
// enough of the definition to verify the name still means the same thing
// when decoded against another registry.
type unitDescription struct {
	Name          string             `json:"name"`
	VerboseName   string             `json:"verbosename"`
	Offset        float64            `json:"offset"`
	Factor        float64            `json:"factor"`
	BaseExponents map[string]float64 `json:"base_exponents"`
}

func (u *Unit) description() unitDescription {
	exps := make(map[string]float64, NumDims)
	p := u.baseunit.powers
	for i, name := range BaseNames {
		v, _ := p[i].Float64()
		exps[name] = v
	}
	return unitDescription{
		Name:          u.Name(),
		VerboseName:   u.verbose,
		Offset:        u.offset,
		Factor:        u.factor,
		BaseExponents: exps,
	}
}

func (d unitDescription) equal(o unitDescription) bool {
	if d.Name != o.Name || d.VerboseName != o.VerboseName ||
		d.Offset != o.Offset || d.Factor != o.Factor {
		return false
	}
	if len(d.BaseExponents) != len(o.BaseExponents) {
		return false
	}
	for k, v := range d.BaseExponents {
		if o.BaseExponents[k] != v {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the unit as its stored description.
func (u *Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.description())
}

// UnitFromJSON decodes a stored unit description against the registry. The
// description must resolve to a unit whose definition matches it, so a
// document written under one registry cannot silently change meaning under
// another.
func (r *Registry) UnitFromJSON(data []byte) (*Unit, error) {
	var desc unitDescription
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("decode unit: %w", err)
	}
	u, err := r.Resolve(desc.Name)
	if err != nil {
		return nil, err
	}
	if !u.description().equal(desc) {
		return nil, fmt.Errorf("%q: %w", desc.Name, ErrUnitMismatch)
	}
	return u, nil
}
