package unit

// InstallImperial registers US and British customary units on top of the SI
// table. The Fahrenheit offset is stored on the Kelvin scale, so a reading x
// maps to x*5/9 + 255.372... K.
func InstallImperial(r *Registry) error {
	defs := []compositeDef{
		{name: "inch", factor: 2.54, expr: "cm", verbose: "inch",
			url: "https://en.wikipedia.org/wiki/Inch"},
		{name: "mil", factor: 1.0 / 1000, expr: "inch", verbose: "thousandth of an inch",
			url: "https://en.wikipedia.org/wiki/Thousandth_of_an_inch"},
		{name: "ft", factor: 12, expr: "inch", verbose: "foot",
			url: "https://en.wikipedia.org/wiki/Foot_(unit)"},
		{name: "yd", factor: 3, expr: "ft", verbose: "yard",
			url: "https://en.wikipedia.org/wiki/Yard"},
		{name: "mi", factor: 5280, expr: "ft", verbose: "(British) mile",
			url: "https://en.wikipedia.org/wiki/Mile#British_and_Irish_miles"},
		{name: "nmi", factor: 1852, expr: "m", verbose: "Nautical mile",
			url: "https://en.wikipedia.org/wiki/Nautical_mile"},
		{name: "furlong", factor: 201.168, expr: "m", verbose: "furlongs",
			url: "https://en.wikipedia.org/wiki/Furlong"},

		{name: "acres", factor: 4046.8564224, expr: "m**2", verbose: "acre",
			url: "https://en.wikipedia.org/wiki/Acre"},
		{name: "barn", factor: 1e-28, expr: "m**2", verbose: "barn",
			url: "https://en.wikipedia.org/wiki/Barn_(unit)"},

		{name: "tsp", factor: 4.92892159375, expr: "cm**3", verbose: "teaspoon",
			url: "https://en.wikipedia.org/wiki/Teaspoon"},
		{name: "tbsp", factor: 3, expr: "tsp", verbose: "tablespoon",
			url: "https://en.wikipedia.org/wiki/Tablespoon"},
		{name: "floz", factor: 2, expr: "tbsp", verbose: "fluid ounce",
			url: "https://en.wikipedia.org/wiki/Fluid_ounce"},
		{name: "cup", factor: 8, expr: "floz", verbose: "cup",
			url: "https://en.wikipedia.org/wiki/Cup"},
		{name: "pt", factor: 16, expr: "floz", verbose: "pint",
			url: "https://en.wikipedia.org/wiki/Pint"},
		{name: "qt", factor: 2, expr: "pt", verbose: "quart",
			url: "https://en.wikipedia.org/wiki/Quart"},
		{name: "galUS", factor: 4, expr: "qt", verbose: "US gallon",
			url: "https://en.wikipedia.org/wiki/Gallon"},
		{name: "galUK", factor: 4.54609 * 1000, expr: "cm**3", verbose: "British gallon",
			url: "https://en.wikipedia.org/wiki/Gallon"},

		{name: "oz", factor: 28.349523125, expr: "g", verbose: "ounce",
			url: "https://en.wikipedia.org/wiki/Ounce"},
		{name: "lb", factor: 16, expr: "oz", verbose: "pound",
			url: "https://en.wikipedia.org/wiki/Pound_(mass)"},
		{name: "ton", factor: 2000, expr: "lb", verbose: "US ton",
			url: "https://en.wikipedia.org/wiki/Short_ton"},

		{name: "Btu", factor: 1055.05585262, expr: "J", verbose: "British thermal unit"},

		{name: "hp", factor: 745.7, expr: "W", verbose: "horsepower",
			url: "https://en.wikipedia.org/wiki/Horsepower"},

		{name: "psi", factor: 6894.75729317, expr: "Pa", verbose: "pounds per square inch",
			url: "https://en.wikipedia.org/wiki/Pounds_per_square_inch"},

		{name: "degF", factor: 5.0 / 9.0, expr: "K", offset: 459.67 * 5.0 / 9.0,
			verbose: "degree Fahrenheit",
			url: "https://en.wikipedia.org/wiki/Fahrenheit"},
	}
	return installComposites(r, defs)
}
