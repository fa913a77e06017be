package quantity

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/c360studio/physq/unit"
)

func mustScalar(t *testing.T, x float64, expr string) *Quantity {
	t.Helper()
	q, err := NewScalar(x, expr)
	if err != nil {
		t.Fatalf("NewScalar(%v, %q): %v", x, expr, err)
	}
	return q
}

func mustUnit(t *testing.T, expr string) *unit.Unit {
	t.Helper()
	u, err := unit.Resolve(expr)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", expr, err)
	}
	return u
}

func scalarValue(t *testing.T, v Value) float64 {
	t.Helper()
	s, ok := v.(Scalar)
	if !ok {
		t.Fatalf("payload is %T, want Scalar", v)
	}
	return float64(s)
}

func TestNewScalarResolvesUnit(t *testing.T) {
	q := mustScalar(t, 5, "m/s")
	if got := q.Unit().Name(); got != "m/s" {
		t.Errorf("unit = %q, want m/s", got)
	}
	if got := scalarValue(t, q.Value()); got != 5 {
		t.Errorf("value = %v, want 5", got)
	}

	if _, err := NewScalar(1, "bogus"); !errors.Is(err, unit.ErrUnknownUnit) {
		t.Errorf("error = %v, want ErrUnknownUnit", err)
	}
	if _, err := NewScalar(1, "m*"); !errors.Is(err, unit.ErrUnitExpression) {
		t.Errorf("error = %v, want ErrUnitExpression", err)
	}
}

func TestQuantityAdd(t *testing.T) {
	tests := []struct {
		name  string
		a     *Quantity
		b     *Quantity
		want  float64
		errIs error
	}{
		{
			name: "same unit",
			a:    mustScalar(t, 1, "m"),
			b:    mustScalar(t, 2, "m"),
			want: 3,
		},
		{
			name: "converts right operand",
			a:    mustScalar(t, 1, "m"),
			b:    mustScalar(t, 1, "km"),
			want: 1001,
		},
		{
			name: "result in left unit",
			a:    mustScalar(t, 1, "km"),
			b:    mustScalar(t, 500, "m"),
			want: 1.5,
		},
		{
			name:  "length plus time",
			a:     mustScalar(t, 1, "m"),
			b:     mustScalar(t, 1, "s"),
			errIs: unit.ErrIncompatibleUnits,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Add(tt.b)
			if tt.errIs != nil {
				if !errors.Is(err, tt.errIs) {
					t.Fatalf("error = %v, want %v", err, tt.errIs)
				}
				return
			}
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			if v := scalarValue(t, got.Value()); v != tt.want {
				t.Errorf("value = %v, want %v", v, tt.want)
			}
			if got.Unit() != tt.a.Unit() {
				t.Errorf("result unit = %s, want left operand's %s",
					got.Unit().Name(), tt.a.Unit().Name())
			}
		})
	}
}

func TestQuantitySub(t *testing.T) {
	a := mustScalar(t, 1, "km")
	b := mustScalar(t, 250, "m")
	got, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if v := scalarValue(t, got.Value()); v != 0.75 {
		t.Errorf("value = %v, want 0.75", v)
	}
}

func TestQuantityMul(t *testing.T) {
	t.Run("dimensioned product", func(t *testing.T) {
		a := mustScalar(t, 2, "m")
		b := mustScalar(t, 3, "s")
		q, v, err := a.Mul(b)
		if err != nil {
			t.Fatalf("Mul: %v", err)
		}
		if v != nil {
			t.Fatalf("unexpected bare value %v", v)
		}
		if got := scalarValue(t, q.Value()); got != 6 {
			t.Errorf("value = %v, want 6", got)
		}
		want := unit.Dim(1, 0, 1)
		if q.Unit().Powers() != want {
			t.Errorf("powers = %v, want %v", q.Unit().Powers(), want)
		}
	})

	t.Run("powers add", func(t *testing.T) {
		a := mustScalar(t, 2, "m/s")
		b := mustScalar(t, 4, "kg*m")
		q, v, err := a.Mul(b)
		if err != nil || v != nil {
			t.Fatalf("Mul: %v %v", v, err)
		}
		want := a.Unit().Powers().Add(b.Unit().Powers())
		if q.Unit().Powers() != want {
			t.Errorf("powers = %v, want %v", q.Unit().Powers(), want)
		}
	})

	t.Run("dimensionless unwrap", func(t *testing.T) {
		a := mustScalar(t, 2, "mm")
		b := mustScalar(t, 3, "1/mm")
		q, v, err := a.Mul(b)
		if err != nil {
			t.Fatalf("Mul: %v", err)
		}
		if q != nil {
			t.Fatalf("expected bare value, got quantity %v", q)
		}
		if got := scalarValue(t, v); got != 6 {
			t.Errorf("value = %v, want 6", got)
		}
	})

	t.Run("unwrap applies residual factor", func(t *testing.T) {
		a := mustScalar(t, 2, "km")
		b := mustScalar(t, 3, "1/m")
		_, v, err := a.Mul(b)
		if err != nil {
			t.Fatalf("Mul: %v", err)
		}
		if got := scalarValue(t, v); got != 6000 {
			t.Errorf("value = %v, want 6000", got)
		}
	})
}

func TestQuantityDiv(t *testing.T) {
	t.Run("dimensioned quotient", func(t *testing.T) {
		a := mustScalar(t, 6, "m")
		b := mustScalar(t, 2, "s")
		q, v, err := a.Div(b)
		if err != nil || v != nil {
			t.Fatalf("Div: %v %v", v, err)
		}
		if got := scalarValue(t, q.Value()); got != 3 {
			t.Errorf("value = %v, want 3", got)
		}
		if got := q.Unit().Name(); got != "m/s" {
			t.Errorf("unit = %q, want m/s", got)
		}
	})

	t.Run("same dimension unwraps", func(t *testing.T) {
		a := mustScalar(t, 1, "km")
		b := mustScalar(t, 200, "m")
		q, v, err := a.Div(b)
		if err != nil {
			t.Fatalf("Div: %v", err)
		}
		if q != nil {
			t.Fatalf("expected bare value, got quantity %v", q)
		}
		if got := scalarValue(t, v); got != 5 {
			t.Errorf("value = %v, want 5", got)
		}
	})
}

func TestQuantityScalarOps(t *testing.T) {
	q := mustScalar(t, 3, "m")
	if v := scalarValue(t, q.MulScalar(4).Value()); v != 12 {
		t.Errorf("MulScalar = %v, want 12", v)
	}
	if v := scalarValue(t, q.DivScalar(2).Value()); v != 1.5 {
		t.Errorf("DivScalar = %v, want 1.5", v)
	}
	if v := scalarValue(t, q.Neg().Value()); v != -3 {
		t.Errorf("Neg = %v, want -3", v)
	}
}

func TestQuantityPow(t *testing.T) {
	t.Run("square root of area", func(t *testing.T) {
		q, err := mustScalar(t, 4, "m**2").Pow(0.5)
		if err != nil {
			t.Fatalf("Pow: %v", err)
		}
		if !q.Equal(mustScalar(t, 2, "m")) {
			t.Errorf("got %v, want 2 m", q)
		}
	})

	t.Run("integer power", func(t *testing.T) {
		q, err := mustScalar(t, 3, "m").Pow(2)
		if err != nil {
			t.Fatalf("Pow: %v", err)
		}
		if got := scalarValue(t, q.Value()); got != 9 {
			t.Errorf("value = %v, want 9", got)
		}
		if got := q.Unit().Name(); got != "m**2" {
			t.Errorf("unit = %q, want m**2", got)
		}
	})

	t.Run("indivisible root", func(t *testing.T) {
		_, err := mustScalar(t, 1, "m").Pow(0.5)
		if !errors.Is(err, unit.ErrIllegalExponent) {
			t.Errorf("error = %v, want ErrIllegalExponent", err)
		}
	})
}

func TestQuantityCmp(t *testing.T) {
	tests := []struct {
		name  string
		a, b  *Quantity
		want  int
		errIs error
	}{
		{"equal across units", mustScalar(t, 1, "km"), mustScalar(t, 1000, "m"), 0, nil},
		{"less", mustScalar(t, 1, "m"), mustScalar(t, 1, "km"), -1, nil},
		{"greater", mustScalar(t, 2, "h"), mustScalar(t, 100, "min"), 1, nil},
		{"incompatible", mustScalar(t, 1, "m"), mustScalar(t, 1, "s"), 0, unit.ErrIncompatibleUnits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Cmp(tt.b)
			if tt.errIs != nil {
				if !errors.Is(err, tt.errIs) {
					t.Fatalf("error = %v, want %v", err, tt.errIs)
				}
				return
			}
			if err != nil {
				t.Fatalf("Cmp: %v", err)
			}
			if got != tt.want {
				t.Errorf("Cmp = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuantityCmpAppliesOffset(t *testing.T) {
	cold := mustScalar(t, -10, "degC")
	k := mustScalar(t, 300, "K")
	got, err := cold.Cmp(k)
	if err != nil {
		t.Fatalf("Cmp: %v", err)
	}
	if got != -1 {
		t.Errorf("Cmp = %v, want -1 (263.15 K < 300 K)", got)
	}
}

func TestQuantityEqual(t *testing.T) {
	if !mustScalar(t, 1, "km").Equal(mustScalar(t, 1000, "m")) {
		t.Error("1 km should equal 1000 m")
	}
	if !mustScalar(t, 0, "degC").Equal(mustScalar(t, 273.15, "K")) {
		t.Error("0 degC should equal 273.15 K")
	}
	if mustScalar(t, 1, "m").Equal(mustScalar(t, 1, "s")) {
		t.Error("1 m should not equal 1 s and must not error")
	}
	if mustScalar(t, 1, "m").Equal(nil) {
		t.Error("equality against nil must be false")
	}
}

func TestQuantityTrig(t *testing.T) {
	tests := []struct {
		name string
		q    *Quantity
		f    func(*Quantity) (Value, error)
		want float64
	}{
		{"sin 90 deg", mustScalar(t, 90, "deg"), (*Quantity).Sin, 1},
		{"sin 30 deg", mustScalar(t, 30, "deg"), (*Quantity).Sin, 0.5},
		{"cos pi rad", mustScalar(t, math.Pi, "rad"), (*Quantity).Cos, -1},
		{"tan 45 deg", mustScalar(t, 45, "deg"), (*Quantity).Tan, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.f(tt.q)
			if err != nil {
				t.Fatalf("trig: %v", err)
			}
			if got := scalarValue(t, v); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := mustScalar(t, 1, "m").Sin(); !errors.Is(err, unit.ErrUnit) {
		t.Errorf("sin of metre error = %v, want ErrUnit", err)
	}
}

func TestQuantityArrayOps(t *testing.T) {
	q, err := NewArray([]float64{1, 2, 3}, "m")
	if err != nil {
		t.Fatalf("NewArray: %v", err)
	}

	n, err := q.Len()
	if err != nil || n != 3 {
		t.Fatalf("Len = %v, %v, want 3, nil", n, err)
	}

	elem, err := q.Index(1)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if v := scalarValue(t, elem.Value()); v != 2 {
		t.Errorf("element = %v, want 2", v)
	}
	if elem.Unit() != q.Unit() {
		t.Error("element should keep the array's unit")
	}

	if err := q.SetIndex(2, mustScalar(t, 5, "km")); err != nil {
		t.Fatalf("SetIndex: %v", err)
	}
	elem, err = q.Index(2)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if v := scalarValue(t, elem.Value()); v != 5000 {
		t.Errorf("element = %v, want 5000 after converted assignment", v)
	}

	if err := q.SetIndex(0, mustScalar(t, 1, "s")); !errors.Is(err, unit.ErrIncompatibleUnits) {
		t.Errorf("SetIndex with time error = %v, want ErrIncompatibleUnits", err)
	}

	sum, err := q.Add(mustScalar(t, 1, "km"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	arr, ok := sum.Value().(Array)
	if !ok {
		t.Fatalf("sum payload is %T, want Array", sum.Value())
	}
	want := Array{1001, 1002, 6000}
	for i := range want {
		if arr[i] != want[i] {
			t.Errorf("sum[%d] = %v, want %v", i, arr[i], want[i])
		}
	}
}

func TestScalarPayloadIsNotArray(t *testing.T) {
	q := mustScalar(t, 1, "m")
	if _, err := q.Len(); !errors.Is(err, unit.ErrNotArray) {
		t.Errorf("Len error = %v, want ErrNotArray", err)
	}
	if _, err := q.Index(0); !errors.Is(err, unit.ErrNotArray) {
		t.Errorf("Index error = %v, want ErrNotArray", err)
	}
	if err := q.SetIndex(0, q); !errors.Is(err, unit.ErrNotArray) {
		t.Errorf("SetIndex error = %v, want ErrNotArray", err)
	}
}

func TestQuantityComplex(t *testing.T) {
	q, err := NewComplex(3+4i, "V")
	if err != nil {
		t.Fatalf("NewComplex: %v", err)
	}

	re := q.Real()
	if v := scalarValue(t, re.Value()); v != 3 {
		t.Errorf("real = %v, want 3", v)
	}
	im := q.Imag()
	if v := scalarValue(t, im.Value()); v != 4 {
		t.Errorf("imag = %v, want 4", v)
	}

	doubled := q.MulScalar(2)
	c, ok := doubled.Value().(Complex)
	if !ok {
		t.Fatalf("payload is %T, want Complex", doubled.Value())
	}
	if complex128(c) != 6+8i {
		t.Errorf("doubled = %v, want (6+8i)", complex128(c))
	}

	if !q.Equal(q) {
		t.Error("complex quantity should equal itself")
	}
	if _, err := q.Cmp(q); !errors.Is(err, unit.ErrUnit) {
		t.Errorf("Cmp on complex error = %v, want ErrUnit", err)
	}
}

func TestQuantityString(t *testing.T) {
	tests := []struct {
		name string
		q    *Quantity
		want string
	}{
		{"scalar", mustScalar(t, 5, "m/s"), "5 m/s"},
		{"fractional", mustScalar(t, 1.5, "km"), "1.5 km"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.String(); got != tt.want {
				t.Errorf("String = %q, want %q", got, tt.want)
			}
		})
	}

	q := mustScalar(t, 2.345678, "m")
	q.Format = "%.2f"
	if got := q.String(); got != "2.35 m" {
		t.Errorf("formatted String = %q, want %q", got, "2.35 m")
	}

	arr, err := NewArray([]float64{1, 2}, "s")
	if err != nil {
		t.Fatalf("NewArray: %v", err)
	}
	if got := arr.String(); !strings.HasSuffix(got, " s") {
		t.Errorf("String = %q, want trailing unit name", got)
	}
}
