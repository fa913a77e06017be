package unit

// prefix is one SI decimal prefix: a symbol and its scale.
type prefix struct {
	symbol string
	scale  float64
}

// fullPrefixes spans the complete SI range, yotta down to yocto.
var fullPrefixes = []prefix{
	{"Y", 1e24}, {"Z", 1e21}, {"E", 1e18}, {"P", 1e15}, {"T", 1e12},
	{"G", 1e9}, {"M", 1e6}, {"k", 1e3}, {"h", 1e2}, {"da", 1e1},
	{"d", 1e-1}, {"c", 1e-2}, {"m", 1e-3}, {"u", 1e-6}, {"n", 1e-9},
	{"p", 1e-12}, {"f", 1e-15}, {"a", 1e-18}, {"z", 1e-21}, {"y", 1e-24},
}

// engineeringPrefixes is the reduced set for engineering use.
var engineeringPrefixes = []prefix{
	{"T", 1e12}, {"G", 1e9}, {"M", 1e6}, {"k", 1e3},
	{"c", 1e-2}, {"m", 1e-3}, {"u", 1e-6}, {"n", 1e-9},
	{"p", 1e-12}, {"f", 1e-15}, {"a", 1e-18},
}

func prefixTable(rng PrefixRange) []prefix {
	if rng == PrefixEngineering {
		return engineeringPrefixes
	}
	return fullPrefixes
}

// PrefixSymbols returns the prefix symbols of the chosen range in table
// order, largest scale first.
func PrefixSymbols(rng PrefixRange) []string {
	table := prefixTable(rng)
	symbols := make([]string, len(table))
	for i, p := range table {
		symbols[i] = p.symbol
	}
	return symbols
}

// PrefixScale returns the scale of a prefix symbol in the chosen range.
func PrefixScale(symbol string, rng PrefixRange) (float64, bool) {
	for _, p := range prefixTable(rng) {
		if p.symbol == symbol {
			return p.scale, true
		}
	}
	return 0, false
}
