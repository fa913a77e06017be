package currency

import (
	"github.com/c360studio/physq/unit"
)

// EuroFactor anchors the euro slightly off the raw currency base so the two
// stay distinguishable when searching by factor.
const EuroFactor = 1.0000000001

// catalog carries the metadata for the currencies Install registers when a
// rate snapshot quotes them.
var catalog = []struct {
	code    string
	verbose string
	url     string
}{
	{"USD", "US Dollar", "https://en.wikipedia.org/wiki/USD"},
	{"GBP", "British Pound", "https://en.wikipedia.org/wiki/GBP"},
}

// Install registers the euro anchor and, given a rate snapshot, the quoted
// catalog currencies. Each unit's factor is euros per one unit, so
// conversions between currencies go through the euro. A nil snapshot
// installs the euro alone.
func Install(r *unit.Registry, rates *Rates) error {
	_, err := r.DefineComposite("EUR", EuroFactor, "currency",
		unit.WithVerboseName("Euro"),
		unit.WithURL("https://en.wikipedia.org/wiki/Euro"))
	if err != nil {
		return err
	}

	if rates == nil {
		return nil
	}

	for _, entry := range catalog {
		quote, ok := rates.Quote(entry.code)
		if !ok {
			continue
		}
		_, err := r.DefineComposite(entry.code, quote, "currency",
			unit.WithVerboseName(entry.verbose),
			unit.WithURL(entry.url))
		if err != nil {
			return err
		}
	}

	return nil
}
