package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidExpressions(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		expr   string
		name   string
		factor float64
	}{
		{"m", "m", 1},
		{"km", "km", 1000},
		{"m/s", "m/s", 1},
		{"m*s", "m*s", 1},
		{"m**2", "m**2", 1},
		{"m**-2", "1/m**2", 1},
		{"1/s", "1/s", 1},
		{"1/m**2", "1/m**2", 1},
		{"kg*m/s**2", "kg*m/s**2", 1},
		{"km/h", "km/h", 1000.0 / 3600},
		{"m ** 2", "m**2", 1},
		{"m ^ 2", "m**2", 1},
		{" km / h ", "km/h", 1000.0 / 3600},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			u, err := r.Resolve(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.name, u.Name())
			assert.InEpsilon(t, tt.factor, u.Factor(), 1e-12)
		})
	}
}

func TestParseChainedDivision(t *testing.T) {
	r := NewDefaultRegistry()

	// Division is left associative: m/s/s == m/s**2.
	a, err := r.Resolve("m/s/s")
	require.NoError(t, err)
	b, err := r.Resolve("m/s**2")
	require.NoError(t, err)
	assert.Equal(t, b.Powers(), a.Powers())
	assert.Equal(t, b.Factor(), a.Factor())
}

func TestParseErrors(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name string
		expr string
		want error
	}{
		{"unknown name", "bogus", ErrUnknownUnit},
		{"unknown in product", "m*bogus", ErrUnknownUnit},
		{"empty expression", "", ErrUnitExpression},
		{"operator only", "*", ErrUnitExpression},
		{"trailing operator", "m*", ErrUnitExpression},
		{"leading exponent", "**2", ErrUnitExpression},
		{"missing exponent", "m**", ErrUnitExpression},
		{"fractional exponent", "m**1.5", ErrUnitExpression},
		{"numeric term", "2*m", ErrUnitExpression},
		{"doubled divide", "m//s", ErrUnitExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.expr)
			assert.ErrorIs(t, err, tt.want, "expr %q", tt.expr)
		})
	}
}

func TestParseOffsetUnitsCannotCompose(t *testing.T) {
	r := NewDefaultRegistry()

	// Affine units resolve as bare names but refuse composition.
	_, err := r.Resolve("degC")
	require.NoError(t, err)

	_, err = r.Resolve("degC/s")
	assert.ErrorIs(t, err, ErrOffset)

	_, err = r.Resolve("m*degC")
	assert.ErrorIs(t, err, ErrOffset)
}

func TestParseRootPrefixForm(t *testing.T) {
	r := NewDefaultRegistry()

	u, err := r.Resolve("1/km")
	require.NoError(t, err)
	assert.Equal(t, "1/km", u.Name())
	assert.InEpsilon(t, 0.001, u.Factor(), 1e-12)
	assert.Equal(t, Dim(-1), u.Powers())
}
