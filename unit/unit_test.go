package unit

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func mustResolve(t *testing.T, r *Registry, expr string) *Unit {
	t.Helper()
	u, err := r.Resolve(expr)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", expr, err)
	}
	return u
}

func approx(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}

func TestUnitMul(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name       string
		a, b       string
		factor     float64
		wantName   string
		wantPowers Dimension
	}{
		{"metre by second", "m", "s", 1, "m*s", Dim(1, 0, 1)},
		{"kilometre by metre", "km", "m", 1000, "km*m", Dim(2)},
		{"newton by metre", "N", "m", 1, "N*m", Dim(2, 1, -2)},
		{"cancelling exponents", "m", "1/m", 1, "1", Dim()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustResolve(t, r, tt.a)
			b := mustResolve(t, r, tt.b)
			got, err := a.Mul(b)
			if err != nil {
				t.Fatalf("Mul: %v", err)
			}
			if got.Name() != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name(), tt.wantName)
			}
			if !approx(got.Factor(), tt.factor) {
				t.Errorf("Factor = %v, want %v", got.Factor(), tt.factor)
			}
			if got.Powers() != tt.wantPowers {
				t.Errorf("Powers = %v, want %v", got.Powers(), tt.wantPowers)
			}
		})
	}
}

func TestUnitMulOffsetRejected(t *testing.T) {
	r := NewDefaultRegistry()
	degC := mustResolve(t, r, "degC")
	m := mustResolve(t, r, "m")

	if _, err := degC.Mul(m); !errors.Is(err, ErrOffset) {
		t.Errorf("degC*m error = %v, want ErrOffset", err)
	}
	if _, err := m.Mul(degC); !errors.Is(err, ErrOffset) {
		t.Errorf("m*degC error = %v, want ErrOffset", err)
	}
	if _, err := degC.Div(m); !errors.Is(err, ErrOffset) {
		t.Errorf("degC/m error = %v, want ErrOffset", err)
	}
	if _, err := degC.Pow(2); !errors.Is(err, ErrOffset) {
		t.Errorf("degC**2 error = %v, want ErrOffset", err)
	}
}

func TestUnitDiv(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name     string
		a, b     string
		factor   float64
		wantName string
		dimless  bool
	}{
		{"metre per second", "m", "s", 1, "m/s", false},
		{"kilometre per metre", "km", "m", 1000, "km/m", true},
		{"joule per second", "J", "s", 1, "J/s", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustResolve(t, r, tt.a)
			b := mustResolve(t, r, tt.b)
			got, err := a.Div(b)
			if err != nil {
				t.Fatalf("Div: %v", err)
			}
			if got.Name() != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name(), tt.wantName)
			}
			if !approx(got.Factor(), tt.factor) {
				t.Errorf("Factor = %v, want %v", got.Factor(), tt.factor)
			}
			if got.IsDimensionless() != tt.dimless {
				t.Errorf("IsDimensionless = %v, want %v", got.IsDimensionless(), tt.dimless)
			}
		})
	}
}

func TestUnitPowInteger(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name       string
		expr       string
		exp        float64
		factor     float64
		wantName   string
		wantPowers Dimension
	}{
		{"square metre", "m", 2, 1, "m**2", Dim(2)},
		{"cubic kilometre", "km", 3, 1e9, "km**3", Dim(3)},
		{"inverse second", "s", -1, 1, "1/s", Dim(0, 0, -1)},
		{"zeroth power", "m", 0, 1, "1", Dim()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := mustResolve(t, r, tt.expr)
			got, err := u.Pow(tt.exp)
			if err != nil {
				t.Fatalf("Pow(%v): %v", tt.exp, err)
			}
			if got.Name() != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name(), tt.wantName)
			}
			if !approx(got.Factor(), tt.factor) {
				t.Errorf("Factor = %v, want %v", got.Factor(), tt.factor)
			}
			if got.Powers() != tt.wantPowers {
				t.Errorf("Powers = %v, want %v", got.Powers(), tt.wantPowers)
			}
		})
	}
}

func TestUnitPowRoot(t *testing.T) {
	r := NewDefaultRegistry()

	t.Run("square root of m**2", func(t *testing.T) {
		u := mustResolve(t, r, "m**2")
		got, err := u.Pow(0.5)
		if err != nil {
			t.Fatalf("Pow(0.5): %v", err)
		}
		if got.Name() != "m" {
			t.Errorf("Name = %q, want m", got.Name())
		}
		if got.Powers() != Dim(1) {
			t.Errorf("Powers = %v, want length", got.Powers())
		}
	})

	t.Run("inverse square root of km**2", func(t *testing.T) {
		u := mustResolve(t, r, "km**2")
		got, err := u.Pow(-0.5)
		if err != nil {
			t.Fatalf("Pow(-0.5): %v", err)
		}
		if got.Name() != "1/km" {
			t.Errorf("Name = %q, want 1/km", got.Name())
		}
		if !approx(got.Factor(), 1e-3) {
			t.Errorf("Factor = %v, want 1e-3", got.Factor())
		}
	})

	t.Run("synthetic name when components do not divide", func(t *testing.T) {
		km := mustResolve(t, r, "km")
		m := mustResolve(t, r, "m")
		prod, err := km.Mul(m)
		if err != nil {
			t.Fatalf("Mul: %v", err)
		}
		got, err := prod.Pow(0.5)
		if err != nil {
			t.Fatalf("Pow(0.5): %v", err)
		}
		want := math.Sqrt(1000)
		if !approx(got.Factor(), want) {
			t.Errorf("Factor = %v, want %v", got.Factor(), want)
		}
		if got.Powers() != Dim(1) {
			t.Errorf("Powers = %v, want length", got.Powers())
		}
		if !strings.Contains(got.Name(), "m") {
			t.Errorf("Name = %q, want base name component", got.Name())
		}
	})

	t.Run("root of odd exponent rejected", func(t *testing.T) {
		m := mustResolve(t, r, "m")
		if _, err := m.Pow(0.5); !errors.Is(err, ErrIllegalExponent) {
			t.Errorf("m**0.5 error = %v, want ErrIllegalExponent", err)
		}
	})

	t.Run("non inverse-integer exponent rejected", func(t *testing.T) {
		m := mustResolve(t, r, "m")
		if _, err := m.Pow(0.3); !errors.Is(err, ErrIllegalExponent) {
			t.Errorf("m**0.3 error = %v, want ErrIllegalExponent", err)
		}
	})
}

func TestConversionFactorTo(t *testing.T) {
	r := NewDefaultRegistry()
	if err := InstallImperial(r); err != nil {
		t.Fatalf("InstallImperial: %v", err)
	}

	t.Run("kilometre to metre", func(t *testing.T) {
		km := mustResolve(t, r, "km")
		m := mustResolve(t, r, "m")
		f, err := km.ConversionFactorTo(m)
		if err != nil {
			t.Fatalf("ConversionFactorTo: %v", err)
		}
		if f != 1000 {
			t.Errorf("factor = %v, want 1000", f)
		}
		back, err := m.ConversionFactorTo(km)
		if err != nil {
			t.Fatalf("ConversionFactorTo: %v", err)
		}
		if back != 0.001 {
			t.Errorf("factor = %v, want 0.001", back)
		}
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		m := mustResolve(t, r, "m")
		s := mustResolve(t, r, "s")
		if _, err := m.ConversionFactorTo(s); !errors.Is(err, ErrIncompatibleUnits) {
			t.Errorf("error = %v, want ErrIncompatibleUnits", err)
		}
	})

	t.Run("equal factors tolerate offset difference", func(t *testing.T) {
		// Celsius and Kelvin steps are the same size, so a pure factor
		// still makes sense for differences.
		degC := mustResolve(t, r, "degC")
		k := mustResolve(t, r, "K")
		f, err := degC.ConversionFactorTo(k)
		if err != nil {
			t.Fatalf("ConversionFactorTo: %v", err)
		}
		if f != 1 {
			t.Errorf("factor = %v, want 1", f)
		}
	})

	t.Run("offset with differing factor rejected", func(t *testing.T) {
		degF := mustResolve(t, r, "degF")
		k := mustResolve(t, r, "K")
		if _, err := degF.ConversionFactorTo(k); !errors.Is(err, ErrIncompatibleUnits) {
			t.Errorf("error = %v, want ErrIncompatibleUnits", err)
		}
	})
}

func TestConversionTupleTo(t *testing.T) {
	r := NewDefaultRegistry()
	if err := InstallImperial(r); err != nil {
		t.Fatalf("InstallImperial: %v", err)
	}

	tests := []struct {
		name string
		from string
		to   string
		in   float64
		want float64
	}{
		{"kelvin to celsius", "K", "degC", 300, 26.85},
		{"celsius to kelvin", "degC", "K", 26.85, 300},
		{"fahrenheit freezing point", "degF", "degC", 32, 0},
		{"fahrenheit boiling point", "degF", "degC", 212, 100},
		{"plain scaling", "km", "m", 2.5, 2500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := mustResolve(t, r, tt.from)
			to := mustResolve(t, r, tt.to)
			factor, offset, err := from.ConversionTupleTo(to)
			if err != nil {
				t.Fatalf("ConversionTupleTo: %v", err)
			}
			got := tt.in*factor + offset
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("%v %s = %v %s, want %v", tt.in, tt.from, got, tt.to, tt.want)
			}
		})
	}

	t.Run("dimension mismatch", func(t *testing.T) {
		m := mustResolve(t, r, "m")
		s := mustResolve(t, r, "s")
		if _, _, err := m.ConversionTupleTo(s); !errors.Is(err, ErrIncompatibleUnits) {
			t.Errorf("error = %v, want ErrIncompatibleUnits", err)
		}
	})
}

func TestKelvinCelsiusExactness(t *testing.T) {
	r := NewDefaultRegistry()
	k := mustResolve(t, r, "K")
	degC := mustResolve(t, r, "degC")

	kToC, o1, err := k.ConversionTupleTo(degC)
	if err != nil {
		t.Fatalf("ConversionTupleTo: %v", err)
	}
	cToK, o2, err := degC.ConversionTupleTo(k)
	if err != nil {
		t.Fatalf("ConversionTupleTo: %v", err)
	}

	// These identities hold without tolerance.
	if got := 273.15*kToC + o1; got != 0 {
		t.Errorf("273.15 K = %v degC, want exactly 0", got)
	}
	if got := 0*cToK + o2; got != 273.15 {
		t.Errorf("0 degC = %v K, want exactly 273.15", got)
	}
	if got := 100*cToK + o2; got != 373.15 {
		t.Errorf("100 degC = %v K, want exactly 373.15", got)
	}

	for _, v := range []float64{-40, 300, 1e6} {
		c := v*kToC + o1
		back := c*cToK + o2
		if math.Abs(back-v) > 1e-9*math.Max(1, math.Abs(v)) {
			t.Errorf("round trip %v K -> %v degC -> %v K", v, c, back)
		}
	}
}

func TestUnitEqual(t *testing.T) {
	r := NewDefaultRegistry()
	m := mustResolve(t, r, "m")
	km := mustResolve(t, r, "km")
	s := mustResolve(t, r, "s")

	metreAgain := New(Single("metre"), 1, Dim(1))

	tests := []struct {
		name string
		a, b *Unit
		want bool
	}{
		{"same unit", m, m, true},
		{"same definition different name", m, metreAgain, true},
		{"different factor", m, km, false},
		{"different dimension", m, s, false},
		{"nil operand", m, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnitCmp(t *testing.T) {
	r := NewDefaultRegistry()
	m := mustResolve(t, r, "m")
	km := mustResolve(t, r, "km")
	s := mustResolve(t, r, "s")

	if got, err := km.Cmp(m); err != nil || got != 1 {
		t.Errorf("km.Cmp(m) = %v, %v, want 1, nil", got, err)
	}
	if got, err := m.Cmp(km); err != nil || got != -1 {
		t.Errorf("m.Cmp(km) = %v, %v, want -1, nil", got, err)
	}
	if got, err := m.Cmp(m); err != nil || got != 0 {
		t.Errorf("m.Cmp(m) = %v, %v, want 0, nil", got, err)
	}
	if _, err := m.Cmp(s); !errors.Is(err, ErrIncompatibleUnits) {
		t.Errorf("m.Cmp(s) error = %v, want ErrIncompatibleUnits", err)
	}
}

func TestUnitPredicates(t *testing.T) {
	r := NewDefaultRegistry()

	if u := mustResolve(t, r, "rad"); !u.IsAngle() {
		t.Error("rad should be an angle")
	}
	if u := mustResolve(t, r, "deg"); !u.IsAngle() {
		t.Error("deg should be an angle")
	}
	if u := mustResolve(t, r, "sr"); u.IsAngle() {
		t.Error("sr should not be a plane angle")
	}
	if u := mustResolve(t, r, "m"); u.IsAngle() {
		t.Error("m should not be an angle")
	}
	if u := mustResolve(t, r, "km/m"); !u.IsDimensionless() {
		t.Error("km/m should be dimensionless")
	}
	if u := mustResolve(t, r, "m/s"); u.IsDimensionless() {
		t.Error("m/s should not be dimensionless")
	}
}

func TestUnitNameRendering(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		expr string
		want string
	}{
		{"m/s", "m/s"},
		{"kg*m/s**2", "kg*m/s**2"},
		{"1/s", "1/s"},
		{"m**2", "m**2"},
		{"N", "N"},
		{"m*kg/s**2/A", "kg*m/A/s**2"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			u := mustResolve(t, r, tt.expr)
			if got := u.Name(); got != tt.want {
				t.Errorf("Name = %q, want %q", got, tt.want)
			}
		})
	}
}
