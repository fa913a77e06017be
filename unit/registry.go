package unit

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is a namespace mapping unit names to units. It is append-only:
// names are never removed for the life of the registry, which makes resolved
// expressions stable and safe to memoize.
//
// Registration is expected to complete during initialization; afterwards a
// registry may be read from any number of goroutines. The lock also covers
// the resolution cache, which fills during reads.
type Registry struct {
	mu    sync.RWMutex
	units map[string]*Unit
	cache map[string]*Unit
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		units: make(map[string]*Unit),
		cache: make(map[string]*Unit),
	}
}

// NewDefaultRegistry returns a registry populated with the SI base units,
// the derived SI units and their engineering prefixes, and the extra
// time/angle/energy units. It panics on a definition conflict, which can
// only arise from a bug in the catalogs.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	if err := InstallSI(r); err != nil {
		panic(fmt.Sprintf("unit: SI catalog: %v", err))
	}
	if err := InstallExtra(r); err != nil {
		panic(fmt.Sprintf("unit: extra catalog: %v", err))
	}
	return r
}

// Register inserts u under its rendered name.
func (r *Registry) Register(u *Unit) error {
	return r.insert(u.Name(), u)
}

func (r *Registry) insert(name string, u *Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.units[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	r.units[name] = u
	return nil
}

// Get returns the unit registered under name. Unlike Resolve it performs no
// expression parsing.
func (r *Registry) Get(name string) (*Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.units[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUnit, name)
	}
	return u, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.units[name]
	return ok
}

// Len returns the number of registered units.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.units)
}

// List returns all registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.units))
	for name := range r.units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Units returns all registered units keyed by name. The map is a copy; the
// units it holds are shared and immutable.
func (r *Registry) Units() map[string]*Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	units := make(map[string]*Unit, len(r.units))
	for name, u := range r.units {
		units[name] = u
	}
	return units
}

// Resolve parses expr against the registry and returns the resulting unit.
// A plain name hits the table directly; otherwise expr is parsed as a small
// expression over registered names with '*', '/' and '**' ('^' accepted),
// and a leading "1/" inverts the rest. Resolution results are memoized by
// the normalized expression string; the registry being append-only, a
// memoized result never goes stale.
func (r *Registry) Resolve(expr string) (*Unit, error) {
	key := normalizeExpr(expr)
	if key == "" {
		return nil, fmt.Errorf("%w: empty unit name", ErrUnitExpression)
	}

	r.mu.RLock()
	if u, ok := r.units[key]; ok {
		r.mu.RUnlock()
		return u, nil
	}
	if u, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return u, nil
	}
	r.mu.RUnlock()

	u, err := parseUnitExpr(key, r)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = u
	r.mu.Unlock()
	return u, nil
}

// DefineComposite resolves expr and registers a new unit called name whose
// factor is factor multiplied into the resolved unit's factor. A WithOffset
// option adds to the resolved unit's offset. The new unit is returned.
func (r *Registry) DefineComposite(name string, factor float64, expr string, opts ...Option) (*Unit, error) {
	base, err := r.Resolve(expr)
	if err != nil {
		return nil, fmt.Errorf("define %s: %w", name, err)
	}
	u := &Unit{
		names:  Single(name),
		factor: factor * base.factor,
		offset: base.offset,
		powers: base.powers,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.baseunit == nil {
		u.baseunit = u
	}
	if err := r.insert(name, u); err != nil {
		return nil, err
	}
	return u, nil
}

// PrefixRange selects the prefix table AddPrefixes applies.
type PrefixRange string

const (
	// PrefixFull spans the full SI range, yocto (1e-24) through yotta (1e24).
	PrefixFull PrefixRange = "full"

	// PrefixEngineering spans the reduced engineering range, atto (1e-18)
	// through tera (1e12) plus centi.
	PrefixEngineering PrefixRange = "engineering"
)

// AddPrefixes registers a scaled variant of name for every prefix in the
// chosen range, each marked prefixed with a back-reference to the unprefixed
// unit. Prefixed names that already exist are skipped, so reapplying a range
// is idempotent.
func (r *Registry) AddPrefixes(name string, rng PrefixRange) error {
	u, err := r.Get(name)
	if err != nil {
		return err
	}
	for _, p := range prefixTable(rng) {
		prefixed := p.symbol + name
		if r.Has(prefixed) {
			continue
		}
		_, err := r.DefineComposite(prefixed, p.scale, name,
			WithPrefixed(u), WithVerboseName(u.verbose), WithURL(u.url))
		if err != nil {
			return err
		}
	}
	return nil
}

// normalizeExpr is the cache key normalization: surrounding space dropped,
// '^' rewritten to '**', interior spaces removed.
func normalizeExpr(expr string) string {
	expr = strings.TrimSpace(expr)
	expr = strings.ReplaceAll(expr, "^", "**")
	if strings.ContainsRune(expr, ' ') {
		expr = strings.ReplaceAll(expr, " ", "")
	}
	return expr
}
