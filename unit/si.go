package unit

import "math"

// BaseDim returns the dimension vector of base dimension i.
func BaseDim(i int) Dimension {
	var d Dimension
	d[i] = one
	return d
}

// compositeDef is one row of a unit catalog: a named scaling of an already
// registered expression, optionally expanded over a prefix range.
type compositeDef struct {
	name     string
	factor   float64
	expr     string
	offset   float64
	verbose  string
	url      string
	prefixes PrefixRange
}

func installComposites(r *Registry, defs []compositeDef) error {
	for _, d := range defs {
		opts := []Option{WithVerboseName(d.verbose), WithURL(d.url)}
		if d.offset != 0 {
			opts = append(opts, WithOffset(d.offset))
		}
		if _, err := r.DefineComposite(d.name, d.factor, d.expr, opts...); err != nil {
			return err
		}
		if d.prefixes != "" {
			if err := r.AddPrefixes(d.name, d.prefixes); err != nil {
				return err
			}
		}
	}
	return nil
}

// InstallSI registers the SI base units, the gram and the common angle and
// time scalings, engineering prefixes over all of them, and the derived SI
// units. It mirrors the standard table a fresh registry is expected to hold.
func InstallSI(r *Registry) error {
	base := []struct {
		name    string
		dim     int
		verbose string
		url     string
	}{
		{"m", DimLength, "Metre", "https://en.wikipedia.org/wiki/Metre"},
		{"kg", DimMass, "Kilogram", "https://en.wikipedia.org/wiki/Kilogram"},
		{"s", DimTime, "Second", "https://en.wikipedia.org/wiki/Second"},
		{"A", DimCurrent, "Ampere", "https://en.wikipedia.org/wiki/Ampere"},
		{"K", DimTemperature, "Kelvin", "https://en.wikipedia.org/wiki/Kelvin"},
		{"mol", DimAmount, "Mol", "https://en.wikipedia.org/wiki/Mole_(unit)"},
		{"cd", DimLuminous, "Candela", "https://en.wikipedia.org/wiki/Candela"},
		{"rad", DimAngle, "Radian", "https://en.wikipedia.org/wiki/Radian"},
		{"sr", DimSolidAngle, "Steradian", "https://en.wikipedia.org/wiki/Steradian"},
		{"Bit", DimBit, "Bit", "https://en.wikipedia.org/wiki/Bit"},
		{"currency", DimCurrency, "Currency", "https://en.wikipedia.org/wiki/Currency"},
	}
	for _, b := range base {
		u := New(Single(b.name), 1, BaseDim(b.dim), WithVerboseName(b.verbose), WithURL(b.url))
		if err := r.Register(u); err != nil {
			return err
		}
	}

	common := []compositeDef{
		{name: "g", factor: 0.001, expr: "kg", verbose: "Gramm",
			url: "https://en.wikipedia.org/wiki/Kilogram"},
		{name: "deg", factor: math.Pi / 180, expr: "rad", verbose: "Degrees",
			url: "http://en.wikipedia.org/wiki/Degree_%28angle%29"},
		{name: "arcmin", factor: math.Pi / 180 / 60, expr: "rad", verbose: "minutes of arc"},
		{name: "arcsec", factor: math.Pi / 180 / 3600, expr: "rad", verbose: "seconds of arc"},
		{name: "min", factor: 60, expr: "s", verbose: "Minute",
			url: "https://en.wikipedia.org/wiki/Minute"},
		{name: "h", factor: 60 * 60, expr: "s", verbose: "Hour",
			url: "https://en.wikipedia.org/wiki/Hour"},
	}
	if err := installComposites(r, common); err != nil {
		return err
	}

	// Engineering prefixes over the base scale of each dimension. Mass
	// prefixes apply to the gram; "kg" already exists and is skipped.
	for _, name := range []string{"m", "g", "s", "A", "K", "mol", "cd", "rad", "sr"} {
		if err := r.AddPrefixes(name, PrefixEngineering); err != nil {
			return err
		}
	}

	derived := []compositeDef{
		{name: "Hz", factor: 1, expr: "1/s", verbose: "Hertz",
			url: "https://en.wikipedia.org/wiki/Hertz", prefixes: PrefixEngineering},
		{name: "N", factor: 1, expr: "m*kg/s**2", verbose: "Newton",
			url: "https://en.wikipedia.org/wiki/Newton_(unit)", prefixes: PrefixEngineering},
		{name: "Pa", factor: 1, expr: "N/m**2", verbose: "Pascal",
			url: "https://en.wikipedia.org/wiki/Pascal_(unit)", prefixes: PrefixEngineering},
		{name: "J", factor: 1, expr: "N*m", verbose: "Joule",
			url: "https://en.wikipedia.org/wiki/Joule", prefixes: PrefixEngineering},
		{name: "W", factor: 1, expr: "J/s", verbose: "Watt",
			url: "https://en.wikipedia.org/wiki/Watt", prefixes: PrefixEngineering},
		{name: "C", factor: 1, expr: "s*A", verbose: "Coulomb",
			url: "https://en.wikipedia.org/wiki/Coulomb", prefixes: PrefixEngineering},
		{name: "V", factor: 1, expr: "W/A", verbose: "Volt",
			url: "https://en.wikipedia.org/wiki/Volt", prefixes: PrefixEngineering},
		{name: "F", factor: 1, expr: "C/V", verbose: "Farad",
			url: "https://en.wikipedia.org/wiki/Farad", prefixes: PrefixEngineering},
		{name: "Ohm", factor: 1, expr: "V/A", verbose: "Ohm",
			url: "https://en.wikipedia.org/wiki/Ohm_(unit)", prefixes: PrefixEngineering},
		{name: "S", factor: 1, expr: "A/V", verbose: "Siemens",
			url: "https://en.wikipedia.org/wiki/Siemens_(unit)", prefixes: PrefixEngineering},
		{name: "Wb", factor: 1, expr: "V*s", verbose: "Weber",
			url: "https://en.wikipedia.org/wiki/Weber_(unit)", prefixes: PrefixEngineering},
		{name: "T", factor: 1, expr: "Wb/m**2", verbose: "Tesla",
			url: "https://en.wikipedia.org/wiki/Tesla_(unit)", prefixes: PrefixEngineering},
		{name: "H", factor: 1, expr: "Wb/A", verbose: "Henry",
			url: "https://en.wikipedia.org/wiki/Henry_(unit)", prefixes: PrefixEngineering},
		{name: "lm", factor: 1, expr: "cd*sr", verbose: "Lumen",
			url: "https://en.wikipedia.org/wiki/Lumen_(unit)", prefixes: PrefixEngineering},
		{name: "lx", factor: 1, expr: "lm/m**2", verbose: "Lux",
			url: "https://en.wikipedia.org/wiki/Lux", prefixes: PrefixEngineering},
	}
	return installComposites(r, derived)
}
