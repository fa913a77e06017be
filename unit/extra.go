package unit

// InstallExtra registers units beyond the core SI table: radiation and
// catalytic units, calendar time scalings, calories and the Celsius scale.
func InstallExtra(r *Registry) error {
	defs := []compositeDef{
		{name: "Gy", factor: 1, expr: "m**2/s**2", verbose: "Gray",
			url: "https://en.wikipedia.org/wiki/Gray_(unit)"},
		{name: "kat", factor: 1, expr: "mol/s", verbose: "Katal",
			url: "https://en.wikipedia.org/wiki/Katal"},

		{name: "d", factor: 24, expr: "h", verbose: "day"},
		{name: "wk", factor: 7, expr: "d", verbose: "week"},
		{name: "yr", factor: 365.25, expr: "d", verbose: "year"},
		{name: "fortnight", factor: 1209600, expr: "s", verbose: "14 days"},

		{name: "cal", factor: 4.184, expr: "J", verbose: "thermochemical calorie"},
		{name: "kcal", factor: 1000, expr: "cal", verbose: "thermochemical kilocalorie"},
		{name: "cali", factor: 4.1868, expr: "J", verbose: "international calorie"},
		{name: "kcali", factor: 1000, expr: "cali", verbose: "international kilocalorie"},

		{name: "degC", factor: 1, expr: "K", offset: 273.15, verbose: "degrees Celsius",
			url: "https://en.wikipedia.org/wiki/Celsius"},
	}
	return installComposites(r, defs)
}
