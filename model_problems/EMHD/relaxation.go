package EMHD

import (
	"fmt"
	"strings"

	"github.com/james-bowman/sparse"

	"github.com/notargets/emhd/grid"
	"github.com/notargets/emhd/types"
)

// RelaxationPolicy decides how the relaxation of a dissipative field X
// toward its target X0 on the timescale tau enters the right hand side
type RelaxationPolicy interface {
	Name() string
	// Source is the part of g*(X0 - X)/tau added to the explicit sources
	Source(X, X0, tau, g float64) float64
	// Implicit reports whether the stiff part -g*X/tau is left to the caller
	Implicit() bool
}

// ExplicitRelaxation evaluates the full relaxation term from the current fields
type ExplicitRelaxation struct{}

func (ExplicitRelaxation) Name() string { return "Explicit" }
func (ExplicitRelaxation) Source(X, X0, tau, g float64) float64 {
	return -g * (X - X0) / tau
}
func (ExplicitRelaxation) Implicit() bool { return false }

// ImplicitRelaxation keeps the forcing g*X0/tau explicit and hands back the
// stiff part as RelaxationTerms
type ImplicitRelaxation struct{}

func (ImplicitRelaxation) Name() string { return "Implicit" }
func (ImplicitRelaxation) Source(X, X0, tau, g float64) float64 {
	return g * X0 / tau
}
func (ImplicitRelaxation) Implicit() bool { return true }

var (
	RelaxationNames = map[string]RelaxationPolicy{
		"explicit": ExplicitRelaxation{},
		"implicit": ImplicitRelaxation{},
	}
)

func NewRelaxationPolicy(label string) (rp RelaxationPolicy) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if rp, ok = RelaxationNames[label]; !ok {
		err = fmt.Errorf("unable to use relaxation named %s", label)
		panic(err)
	}
	return
}

// RelaxationTerm is the stiff part -G*X/Tau of the relaxation of one
// dissipative variable, returned by ComputeSources under ImplicitRelaxation.
// The slices belong to the element that produced them and are valid until
// its next ComputeSources or Set.
type RelaxationTerm struct {
	Var    types.FluidVar
	Target []float64 // X0 in tilde form
	Tau    []float64
	G      []float64
}

func (rt RelaxationTerm) Len() int { return len(rt.Target) }

// Evaluate writes the stiff source -G*X/Tau of the primitive field X into out
func (rt RelaxationTerm) Evaluate(prim *grid.Grid, out []float64) {
	X := prim.Vars[rt.Var]
	if len(X) != rt.Len() || len(out) != rt.Len() {
		panic(fmt.Errorf("relaxation term of length %d applied to fields of length %d and %d",
			rt.Len(), len(X), len(out)))
	}
	for k := range out {
		out[k] = 0
	}
	rt.Jacobian().MulVecTo(out, false, X)
}

// Jacobian is d(stiff source)/dX, diagonal over grid points
func (rt RelaxationTerm) Jacobian() (J *sparse.DIA) {
	diag := make([]float64, rt.Len())
	for k := range diag {
		diag[k] = -rt.G[k] / rt.Tau[k]
	}
	return sparse.NewDIA(rt.Len(), rt.Len(), diag)
}

// Relax advances d(G*X)/dt = G*(X0 - X)/tau over dt with backward Euler,
// in place, the stiff part taken from the Jacobian
func (rt RelaxationTerm) Relax(prim *grid.Grid, dt float64) {
	if !(dt > 0) {
		panic(fmt.Errorf("relaxation step must be positive, have %g", dt))
	}
	X := prim.Vars[rt.Var]
	if len(X) != rt.Len() {
		panic(fmt.Errorf("relaxation term of length %d applied to a field of length %d", rt.Len(), len(X)))
	}
	// G*(X' - X)/dt = G*Target/Tau + J*X'
	J := rt.Jacobian().Diagonal()
	for k := range X {
		X[k] = rt.G[k] * (X[k] + dt*rt.Target[k]/rt.Tau[k]) / (rt.G[k] - dt*J[k])
	}
}
