package decibel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/physq/unit"
)

func TestScaleTable(t *testing.T) {
	tests := []struct {
		name   string
		linear string
		factor float64
		offset float64
	}{
		{"dB", "", 0, 0},
		{"dBm", "mW", 10, 0},
		{"dBW", "W", 10, 0},
		{"dBnV", "nV", 20, 0},
		{"dBuV", "uV", 20, 0},
		{"dBmV", "mV", 20, 0},
		{"dBV", "V", 20, 0},
		{"dBnA", "nA", 20, 0},
		{"dBuA", "uA", 20, 0},
		{"dBmA", "mA", 20, 0},
		{"dBA", "A", 20, 0},
		{"dBsm", "m**2", 10, 0},
		{"dBd", "", 10, 2.15},
		{"dBi", "", 10, 0},
		{"dBc", "", 10, 0},
	}
	for _, tt := range tests {
		u, err := Get(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.name, u.Name())
		assert.Equal(t, tt.factor, u.Factor(), tt.name)
		assert.Equal(t, tt.offset, u.Offset(), tt.name)
		if tt.linear == "" {
			assert.Nil(t, u.Linear(), tt.name)
		} else {
			require.NotNil(t, u.Linear(), tt.name)
			assert.Equal(t, tt.linear, u.Linear().Name(), tt.name)
		}
	}
}

func TestGetUnknownScale(t *testing.T) {
	_, err := Get("dBx")
	assert.ErrorIs(t, err, unit.ErrUnknownUnit)
}

func TestUnitsOrder(t *testing.T) {
	names := Units()
	require.Len(t, names, 15)
	assert.Equal(t, "dB", names[0])
	assert.Equal(t, "dBc", names[len(names)-1])

	// The base-anchored scale of each family comes after its prefixed
	// variants, so unnamed conversions land on it.
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	assert.Greater(t, idx["dBW"], idx["dBm"])
	assert.Greater(t, idx["dBV"], idx["dBmV"])
	assert.Greater(t, idx["dBA"], idx["dBuA"])
}

func TestIsPower(t *testing.T) {
	tests := []struct {
		expr  string
		power bool
	}{
		{"W", true},
		{"mW", true},
		{"J", true},
		{"m**2", true},
		{"V", false},
		{"uV", false},
		{"A", false},
		{"m", false},
		{"Hz", false},
	}
	for _, tt := range tests {
		u, err := unit.Resolve(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.power, IsPower(u), tt.expr)
	}
}
