// Package constants provides common physical constants as quantities over
// the default unit registry.
package constants

import (
	"math"

	"github.com/c360studio/physq/quantity"
)

func mustScalar(value float64, expr string) *quantity.Quantity {
	q, err := quantity.NewScalar(value, expr)
	if err != nil {
		panic(err)
	}
	return q
}

// CODATA 2010 values.
var (
	// C0 is the speed of light in vacuum.
	C0 = mustScalar(299792458, "m/s")

	// Mu0 is the magnetic constant.
	Mu0 = mustScalar(4*math.Pi*1e-7, "N/A**2")

	// Eps0 is the electric constant.
	Eps0 = mustScalar(8.854188e-12, "F/m")

	// Grav is the Newtonian constant of gravitation.
	Grav = mustScalar(6.67384e-11, "m**3/kg/s**2")

	// Hpl is the Planck constant.
	Hpl = mustScalar(6.62606957e-34, "J*s")

	// Hbar is the reduced Planck constant.
	Hbar = mustScalar(6.62606957e-34/(2*math.Pi), "J*s")

	// E0 is the elementary charge.
	E0 = mustScalar(1.602176565e-19, "C")

	// Me is the electron mass.
	Me = mustScalar(9.10938291e-31, "kg")

	// Mp is the proton mass.
	Mp = mustScalar(1.672621777e-27, "kg")

	// Mn is the neutron mass.
	Mn = mustScalar(1.674927351e-27, "kg")

	// NA is the Avogadro constant.
	NA = mustScalar(6.02214129e23, "1/mol")

	// Kb is the Boltzmann constant.
	Kb = mustScalar(1.3806488e-23, "J/K")

	// G0 is the standard acceleration of gravity.
	G0 = mustScalar(9.80665, "m/s**2")

	// R is the molar gas constant.
	R = mustScalar(8.3144621, "J/mol/K")

	// Ry is the Rydberg constant.
	Ry = mustScalar(10973731.568539, "1/m")

	// MuN is the neutron magnetic moment.
	MuN = mustScalar(-0.96623647e-26, "J/T")

	// Gamma is the neutron gyromagnetic ratio.
	Gamma = mustScalar(183.247179, "MHz/T")

	// SigmaT is the Thomson scattering cross section.
	SigmaT = mustScalar(6.652453e-29, "m**2")
)
