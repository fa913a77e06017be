// Package defs loads unit definitions from YAML files and installs them
// into a registry. A definition file declares composite units over names
// the registry already knows, in installation order, so later entries may
// build on earlier ones.
package defs

import (
	"errors"
	"fmt"

	"github.com/c360studio/physq/unit"
)

// ErrInvalidDefinition reports a definition document that fails validation.
var ErrInvalidDefinition = errors.New("invalid unit definition")

// Version is the definition schema version this package reads.
const Version = "1"

// Prefix policies accepted by Document.Prefixes and UnitDef.Prefixes.
const (
	PrefixNone        = ""
	PrefixDefault     = "default"
	PrefixEngineering = "engineering"
	PrefixFull        = "full"
)

// Document is a parsed unit definition file.
type Document struct {
	// Version identifies the schema; only "1" is accepted.
	Version string `yaml:"version"`

	// Prefixes is the prefix range applied to entries that request
	// "default": "engineering" or "full".
	Prefixes string `yaml:"prefixes,omitempty"`

	// Units lists the definitions in installation order.
	Units []UnitDef `yaml:"units"`
}

// UnitDef declares one unit as a scaled, optionally shifted reading of an
// expression over already-registered units.
type UnitDef struct {
	// Name is the symbol to register.
	Name string `yaml:"name"`

	// Factor scales the base expression; it must be positive.
	Factor float64 `yaml:"factor"`

	// Base is the unit expression the definition builds on, e.g. "m/s".
	Base string `yaml:"base"`

	// Offset adds to the base expression's offset, in base dimensions.
	Offset float64 `yaml:"offset,omitempty"`

	// VerboseName is the human-readable name, e.g. "knot".
	VerboseName string `yaml:"verbosename,omitempty"`

	// URL points at a reference describing the unit.
	URL string `yaml:"url,omitempty"`

	// Prefixes requests prefixed variants: "engineering", "full", or
	// "default" to follow the document policy. Empty requests none.
	Prefixes string `yaml:"prefixes,omitempty"`
}

// Validate checks the document against the schema. Errors name the
// offending entry by position.
func (d *Document) Validate() error {
	if d.Version != Version {
		return fmt.Errorf("%w: unsupported version %q", ErrInvalidDefinition, d.Version)
	}
	switch d.Prefixes {
	case PrefixNone, PrefixEngineering, PrefixFull:
	default:
		return fmt.Errorf("%w: unknown prefix policy %q", ErrInvalidDefinition, d.Prefixes)
	}
	if len(d.Units) == 0 {
		return fmt.Errorf("%w: no units defined", ErrInvalidDefinition)
	}
	for i, def := range d.Units {
		if err := def.validate(d.Prefixes); err != nil {
			return fmt.Errorf("units[%d]: %w", i, err)
		}
	}
	return nil
}

func (def *UnitDef) validate(docPolicy string) error {
	if def.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidDefinition)
	}
	if def.Base == "" {
		return fmt.Errorf("%w: %s: base expression required", ErrInvalidDefinition, def.Name)
	}
	if def.Factor <= 0 {
		return fmt.Errorf("%w: %s: factor must be positive, got %v",
			ErrInvalidDefinition, def.Name, def.Factor)
	}
	switch def.Prefixes {
	case PrefixNone, PrefixEngineering, PrefixFull:
	case PrefixDefault:
		if docPolicy == PrefixNone {
			return fmt.Errorf("%w: %s: prefixes \"default\" needs a document policy",
				ErrInvalidDefinition, def.Name)
		}
	default:
		return fmt.Errorf("%w: %s: unknown prefix policy %q",
			ErrInvalidDefinition, def.Name, def.Prefixes)
	}
	return nil
}

// prefixRange resolves the entry's prefix request against the document
// policy, reporting whether any prefixes apply.
func (def *UnitDef) prefixRange(docPolicy string) (unit.PrefixRange, bool) {
	policy := def.Prefixes
	if policy == PrefixDefault {
		policy = docPolicy
	}
	switch policy {
	case PrefixEngineering:
		return unit.PrefixEngineering, true
	case PrefixFull:
		return unit.PrefixFull, true
	default:
		return "", false
	}
}

// Install validates the document and registers every unit into r, in order.
// Failures name the offending entry by position; entries before it stay
// registered.
func (d *Document) Install(r *unit.Registry) error {
	if err := d.Validate(); err != nil {
		return err
	}
	for i, def := range d.Units {
		var opts []unit.Option
		if def.VerboseName != "" {
			opts = append(opts, unit.WithVerboseName(def.VerboseName))
		}
		if def.URL != "" {
			opts = append(opts, unit.WithURL(def.URL))
		}
		if def.Offset != 0 {
			opts = append(opts, unit.WithOffset(def.Offset))
		}
		if _, err := r.DefineComposite(def.Name, def.Factor, def.Base, opts...); err != nil {
			return fmt.Errorf("units[%d]: %w", i, err)
		}
		if rng, ok := def.prefixRange(d.Prefixes); ok {
			if err := r.AddPrefixes(def.Name, rng); err != nil {
				return fmt.Errorf("units[%d]: %w", i, err)
			}
		}
	}
	return nil
}
