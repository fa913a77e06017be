package unit

import "errors"

// Errors reported by the unit algebra and the registry. Detection sites wrap
// these with fmt.Errorf("...: %w", ...) context; callers match with errors.Is.
var (
	// ErrUnknownUnit reports a name that does not resolve in the registry.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrUnitExpression reports a unit expression that is malformed or does
	// not reduce to a unit.
	ErrUnitExpression = errors.New("invalid unit expression")

	// ErrDuplicateName reports registration under a name that already exists.
	ErrDuplicateName = errors.New("unit already defined")

	// ErrIncompatibleUnits reports an operation that requires equal dimension
	// vectors on units whose vectors differ, or a pure-factor conversion that
	// would silently drop an offset.
	ErrIncompatibleUnits = errors.New("incompatible units")

	// ErrOffset reports an attempt to compose an affine (non-zero-offset)
	// unit into a derived unit.
	ErrOffset = errors.New("cannot combine units with offset")

	// ErrIllegalExponent reports a fractional power that does not evenly
	// divide all dimension exponents, or an exponent that is neither an
	// integer nor an inverse integer.
	ErrIllegalExponent = errors.New("illegal exponent")

	// ErrUnitMismatch reports a serialized unit description that names a
	// registered unit but disagrees with its definition.
	ErrUnitMismatch = errors.New("unit does not match registry definition")

	// ErrNotArray reports indexing, length or item assignment on a quantity
	// whose payload is not an array.
	ErrNotArray = errors.New("not an array quantity")

	// ErrUnit reports an operation undefined for its operands, such as trig
	// on a non-angle or ordering mismatched payload kinds.
	ErrUnit = errors.New("operation not defined for operands")
)
