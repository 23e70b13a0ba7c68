package EMHD

import (
	"fmt"
	"math"

	"github.com/notargets/emhd/geometry"
	"github.com/notargets/emhd/grid"
	"github.com/notargets/emhd/tensor"
	"github.com/notargets/emhd/types"
	"github.com/notargets/emhd/utils"
)

const (
	NDIM = tensor.NDIM
	// bSqrFloor keeps b^2 away from zero in the q/sqrt(b^2) terms
	bSqrFloor = 1.e-18
)

// FluidElement is the fluid state derived from a primitive grid at one grid
// location. Every field covers all padded points of the grid.
type FluidElement struct {
	Loc    types.Location
	params Params
	geom   *geometry.Geometry
	ld     *geometry.LocationData

	Rho, U                   []float64
	Pressure, Temperature    []float64
	SoundSpeedSqr            []float64
	Tau, Chi, Nu             []float64
	QTilde, DeltaPTilde      []float64
	Q, DeltaP                []float64
	GammaLorentz             []float64
	UCon                     tensor.Con
	UCov                     tensor.Cov
	BCon                     tensor.Con
	BCov                     tensor.Cov
	BSqr                     []float64
	NUp                      tensor.Con
	TUpDown                  tensor.Mixed
	qTildeTarget, dPTildeTgt []float64
}

// NewFluidElement allocates an element and binds it to a primitive state
func NewFluidElement(prim *grid.Grid, geom *geometry.Geometry, loc types.Location, params Params) (e *FluidElement, err error) {
	params.Check()
	e = newFluidElement(geom.Grid().Size(), params)
	if err = e.Set(prim, geom, loc); err != nil {
		return nil, err
	}
	return
}

func newFluidElement(N int, params Params) (e *FluidElement) {
	e = &FluidElement{params: params}
	e.allocate(N)
	return
}

func (e *FluidElement) allocate(N int) {
	for _, f := range []*[]float64{
		&e.Rho, &e.U, &e.Pressure, &e.Temperature, &e.SoundSpeedSqr,
		&e.Tau, &e.Chi, &e.Nu, &e.QTilde, &e.DeltaPTilde, &e.Q, &e.DeltaP,
		&e.GammaLorentz, &e.BSqr, &e.qTildeTarget, &e.dPTildeTgt,
	} {
		*f = make([]float64, N)
	}
	e.UCon, e.UCov = tensor.NewCon(N), tensor.NewCov(N)
	e.BCon, e.BCov = tensor.NewCon(N), tensor.NewCov(N)
	e.NUp = tensor.NewCon(N)
	e.TUpDown = tensor.NewMixed(N)
}

func (e *FluidElement) Len() int { return len(e.Rho) }

// Metric is the metric of the location the element was last set at
func (e *FluidElement) Metric() *tensor.Metric { return e.ld.Metric }

// Set derives the full fluid state from the primitives at loc. The primitive
// state is validated everywhere before any field is written, so a
// FluidStateError leaves the element unchanged.
func (e *FluidElement) Set(prim *grid.Grid, geom *geometry.Geometry, loc types.Location) (err error) {
	var (
		g  = geom.Grid()
		ld = geom.At(loc)
		N  = g.Size()
	)
	g.CheckShape(prim, int(types.NumFluidVars))
	if err = e.validate(prim, ld); err != nil {
		return
	}
	if e.Len() != N {
		e.allocate(N)
	}
	e.Loc, e.geom, e.ld = loc, geom, ld
	utils.ParallelApply(e.params.ProcLimit, N, func(kMin, kMax int) {
		e.setPrimitives(prim, kMin, kMax)
		e.setFluidElementParameters(kMin, kMax)
		e.setTensors(kMin, kMax)
	})
	return
}

func (e *FluidElement) validate(prim *grid.Grid, ld *geometry.LocationData) (err error) {
	var (
		gam = e.params.AdiabaticIndex
		m   = ld.Metric
	)
	return utils.ParallelFor(e.params.ProcLimit, prim.Size(), func(kMin, kMax int) error {
		for k := kMin; k < kMax; k++ {
			rho, u := prim.Vars[types.RHO][k], prim.Vars[types.UU][k]
			if !(rho > 0) {
				return &FluidStateError{Location: ld.Loc, Index: k, Quantity: "density", Value: rho}
			}
			if P := (gam - 1) * u; !(P > 0) {
				return &FluidStateError{Location: ld.Loc, Index: k, Quantity: "pressure", Value: P}
			}
			if gSqr := lorentzSqr(prim, m, k); !(gSqr >= 1) {
				return &FluidStateError{Location: ld.Loc, Index: k, Quantity: "Lorentz factor squared", Value: gSqr}
			}
			for v := types.RHO; v < types.NumFluidVars; v++ {
				if x := prim.Vars[v][k]; math.IsNaN(x) || math.IsInf(x, 0) {
					return &FluidStateError{Location: ld.Loc, Index: k, Quantity: v.String(), Value: x}
				}
			}
		}
		return nil
	})
}

// lorentzSqr is 1 + g_ij utilde^i utilde^j
func lorentzSqr(prim *grid.Grid, m *tensor.Metric, k int) (gSqr float64) {
	gSqr = 1
	for i := 1; i < NDIM; i++ {
		for j := 1; j < NDIM; j++ {
			gSqr += m.GCov[i][j][k] * prim.Vars[types.Velocity(i)][k] * prim.Vars[types.Velocity(j)][k]
		}
	}
	return
}

func (e *FluidElement) setPrimitives(prim *grid.Grid, kMin, kMax int) {
	var (
		m = e.ld.Metric
	)
	for k := kMin; k < kMax; k++ {
		e.Rho[k] = prim.Vars[types.RHO][k]
		e.U[k] = prim.Vars[types.UU][k]
		e.QTilde[k] = prim.Vars[types.QTILDE][k]
		e.DeltaPTilde[k] = prim.Vars[types.DPTILDE][k]
		gamma := math.Sqrt(lorentzSqr(prim, m, k))
		e.GammaLorentz[k] = gamma
		e.UCon[0][k] = gamma / m.Alpha[k]
		for i := 1; i < NDIM; i++ {
			e.UCon[i][k] = prim.Vars[types.Velocity(i)][k] - gamma*m.Alpha[k]*m.GCon[0][i][k]
		}
	}
	tensor.Lower(m, e.UCon, e.UCov, kMin, kMax)
	for k := kMin; k < kMax; k++ {
		var b0 float64
		for i := 1; i < NDIM; i++ {
			b0 += prim.Vars[types.Magnetic(i)][k] * e.UCov[i][k]
		}
		e.BCon[0][k] = b0
		for i := 1; i < NDIM; i++ {
			e.BCon[i][k] = (prim.Vars[types.Magnetic(i)][k] + b0*e.UCon[i][k]) / e.UCon[0][k]
		}
	}
	tensor.Lower(m, e.BCon, e.BCov, kMin, kMax)
	tensor.Contract(e.BCon, e.BCov, e.BSqr, kMin, kMax)
	for k := kMin; k < kMax; k++ {
		e.BSqr[k] += bSqrFloor
	}
}

// setFluidElementParameters applies the closure, point by point
func (e *FluidElement) setFluidElementParameters(kMin, kMax int) {
	var (
		p   = e.params
		gam = p.AdiabaticIndex
	)
	for k := kMin; k < kMax; k++ {
		rho, u := e.Rho[k], e.U[k]
		P := (gam - 1) * u
		T := P / rho
		cs2 := gam * P / (rho + gam*u)
		tau := p.ConductionTau
		chi := p.ConductionAlpha * cs2 * tau
		nu := p.ViscosityAlpha * cs2 * tau
		e.Pressure[k], e.Temperature[k], e.SoundSpeedSqr[k] = P, T, cs2
		e.Tau[k], e.Chi[k], e.Nu[k] = tau, chi, nu
		switch {
		case !p.Conduction:
			e.Q[k] = 0
		case p.HighOrderTermsConduction:
			e.Q[k] = e.QTilde[k] * math.Sqrt(chi*rho*T*T/tau)
		default:
			e.Q[k] = e.QTilde[k]
		}
		switch {
		case !p.Viscosity:
			e.DeltaP[k] = 0
		case p.HighOrderTermsViscosity:
			e.DeltaP[k] = e.DeltaPTilde[k] * math.Sqrt(nu*rho*T/tau)
		default:
			e.DeltaP[k] = e.DeltaPTilde[k]
		}
	}
}

func (e *FluidElement) setTensors(kMin, kMax int) {
	for k := kMin; k < kMax; k++ {
		var (
			rho, u, P     = e.Rho[k], e.U[k], e.Pressure[k]
			bSqr          = e.BSqr[k]
			q, dP         = e.Q[k], e.DeltaP[k]
			uCon, uCov    = e.UCon.At(k), e.UCov.At(k)
			bCon, bCov    = e.BCon.At(k), e.BCov.At(k)
			qOverB        = q / math.Sqrt(bSqr)
			enthalpyTotal = rho + u + P + bSqr
			pTotal        = P + 0.5*bSqr
		)
		for mu := 0; mu < NDIM; mu++ {
			e.NUp[mu][k] = rho * uCon[mu]
			for nu := 0; nu < NDIM; nu++ {
				delta := utils.DELTA(mu, nu)
				e.TUpDown[mu][nu][k] = enthalpyTotal*uCon[mu]*uCov[nu] + pTotal*delta -
					bCon[mu]*bCov[nu] +
					qOverB*(uCon[mu]*bCov[nu]+bCon[mu]*uCov[nu]) -
					dP*(bCon[mu]*bCov[nu]/bSqr-(delta+uCon[mu]*uCov[nu])/3)
			}
		}
	}
}

// ComputeFluxes writes g times the flux of every conserved variable through
// a surface normal to dir. Direction 0 yields the conserved variables.
func (e *FluidElement) ComputeFluxes(dir int, flux *grid.Grid) {
	if !e.Loc.HasDirection(dir) {
		panic(fmt.Errorf("direction %d is not active at location %s", dir, e.Loc.Print()))
	}
	e.geom.Grid().CheckShape(flux, int(types.NumFluidVars))
	var (
		G = e.ld.Metric.G
		F = flux.Vars
	)
	utils.ParallelApply(e.params.ProcLimit, e.Len(), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			g, ud := G[k], e.UCon[dir][k]
			F[types.RHO][k] = g * e.NUp[dir][k]
			F[types.UU][k] = g*e.TUpDown[dir][0][k] + F[types.RHO][k]
			for i := 1; i < NDIM; i++ {
				F[types.Velocity(i)][k] = g * e.TUpDown[dir][i][k]
				F[types.Magnetic(i)][k] = g * (e.BCon[i][k]*ud - e.BCon[dir][k]*e.UCon[i][k])
			}
			F[types.QTILDE][k] = g * ud * e.QTilde[k]
			F[types.DPTILDE][k] = g * ud * e.DeltaPTilde[k]
		}
	})
}
