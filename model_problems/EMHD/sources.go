package EMHD

import (
	"fmt"
	"math"

	"github.com/notargets/emhd/grid"
	"github.com/notargets/emhd/types"
	"github.com/notargets/emhd/utils"
)

// ComputeSources writes g times the source of every conserved variable.
// Time derivatives difference the receiver against elemOld over dt, spatial
// derivatives are centered differences of elemForSpatialDeriv, which must
// hold valid ghost zones. Under an implicit policy the stiff relaxation terms
// are returned instead of being added to sources.
func (e *FluidElement) ComputeSources(elemOld, elemForSpatialDeriv *FluidElement, dt float64,
	relax RelaxationPolicy, sources *grid.Grid) (terms []RelaxationTerm) {
	var (
		p  = e.params
		g  = e.geom.Grid()
		sd = elemForSpatialDeriv
	)
	if !(dt > 0) {
		panic(fmt.Errorf("time step must be positive, have %g", dt))
	}
	if elemOld.Len() != e.Len() || sd.Len() != e.Len() {
		panic(fmt.Errorf("fluid elements of different sizes: %d, %d, %d", e.Len(), elemOld.Len(), sd.Len()))
	}
	g.CheckShape(sources, int(types.NumFluidVars))
	utils.ParallelApply(p.ProcLimit, e.Len(), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			e.connectionSources(k, sources)
			if p.Dissipative() {
				e.dissipativeSources(k, elemOld, sd, dt, relax, sources)
			} else {
				sources.Vars[types.QTILDE][k] = 0
				sources.Vars[types.DPTILDE][k] = 0
			}
		}
	})
	if relax.Implicit() {
		var (
			m = e.ld.Metric
		)
		if p.Conduction {
			terms = append(terms, RelaxationTerm{Var: types.QTILDE, Target: e.qTildeTarget, Tau: e.Tau, G: m.G})
		}
		if p.Viscosity {
			terms = append(terms, RelaxationTerm{Var: types.DPTILDE, Target: e.dPTildeTgt, Tau: e.Tau, G: m.G})
		}
	}
	return
}

// connectionSources is g * T^kappa_lambda Gamma^lambda_kappa_nu for the energy
// and momentum equations, zero for the others
func (e *FluidElement) connectionSources(k int, sources *grid.Grid) {
	var (
		S     = sources.Vars
		gamma = &e.ld.GammaUpDownDown
		gdet  = e.ld.Metric.G[k]
	)
	S[types.RHO][k] = 0
	for i := 1; i < NDIM; i++ {
		S[types.Magnetic(i)][k] = 0
	}
	for nu := 0; nu < NDIM; nu++ {
		var s float64
		for kap := 0; kap < NDIM; kap++ {
			for lam := 0; lam < NDIM; lam++ {
				s += e.TUpDown[kap][lam][k] * gamma[lam][kap][nu][k]
			}
		}
		S[int(types.UU)+nu][k] = gdet * s
	}
}

func (e *FluidElement) dissipativeSources(k int, elemOld, sd *FluidElement, dt float64,
	relax RelaxationPolicy, sources *grid.Grid) {
	var (
		p     = e.params
		g     = e.geom.Grid()
		gamma = &e.ld.GammaUpDownDown
		gdet  = e.ld.Metric.G[k]
		uCon  = e.UCon.At(k)
		uCov  = e.UCov.At(k)
		bCon  = e.BCon.At(k)
		bSqr  = e.BSqr[k]
		rho   = e.Rho[k]
		T     = e.Temperature[k]
		tau   = e.Tau[k]
		dUCov [NDIM][NDIM]float64 // dUCov[nu][mu] = d_nu u_mu
		dUCon [NDIM]float64       // dUCon[nu] = d_nu u^nu
		dT    [NDIM]float64
	)
	for mu := 0; mu < NDIM; mu++ {
		dUCov[0][mu] = (e.UCov[mu][k] - elemOld.UCov[mu][k]) / dt
	}
	dUCon[0] = (e.UCon[0][k] - elemOld.UCon[0][k]) / dt
	dT[0] = (T - elemOld.Temperature[k]) / dt
	for dir := 1; dir <= g.Dim; dir++ {
		var (
			kp, km = g.Neighbor(k, dir, 1), g.Neighbor(k, dir, -1)
			oo2dx  = 1. / (2 * e.geom.DX(dir))
		)
		for mu := 0; mu < NDIM; mu++ {
			dUCov[dir][mu] = (sd.UCov[mu][kp] - sd.UCov[mu][km]) * oo2dx
		}
		dUCon[dir] = (sd.UCon[dir][kp] - sd.UCon[dir][km]) * oo2dx
		dT[dir] = (sd.Temperature[kp] - sd.Temperature[km]) * oo2dx
	}
	var (
		covDU [NDIM][NDIM]float64 // covDU[nu][mu] = nabla_nu u_mu
		accel [NDIM]float64
		divU  float64
	)
	for nu := 0; nu < NDIM; nu++ {
		divU += dUCon[nu]
		for mu := 0; mu < NDIM; mu++ {
			covDU[nu][mu] = dUCov[nu][mu]
			for lam := 0; lam < NDIM; lam++ {
				covDU[nu][mu] -= gamma[lam][nu][mu][k] * uCov[lam]
			}
		}
	}
	for mu := 0; mu < NDIM; mu++ {
		for lam := 0; lam < NDIM; lam++ {
			divU += gamma[mu][mu][lam][k] * uCon[lam]
		}
		for nu := 0; nu < NDIM; nu++ {
			accel[mu] += uCon[nu] * covDU[nu][mu]
		}
	}
	S := sources.Vars
	if p.Conduction {
		var bDotGradT float64
		for mu := 0; mu < NDIM; mu++ {
			bDotGradT += bCon[mu] * (dT[mu] + T*accel[mu])
		}
		q0 := -rho * e.Chi[k] * bDotGradT / math.Sqrt(bSqr)
		qTilde0 := q0
		if p.HighOrderTermsConduction {
			qTilde0 = tildeScale(q0, e.Chi[k]*rho*T*T/tau)
		}
		e.qTildeTarget[k] = qTilde0
		s := relax.Source(e.QTilde[k], qTilde0, tau, gdet)
		if p.HighOrderTermsConduction {
			s += 0.5 * gdet * e.QTilde[k] * divU
		}
		S[types.QTILDE][k] = s
	} else {
		e.qTildeTarget[k], S[types.QTILDE][k] = 0, 0
	}
	if p.Viscosity {
		var bbCovDU float64
		for mu := 0; mu < NDIM; mu++ {
			for nu := 0; nu < NDIM; nu++ {
				bbCovDU += bCon[mu] * bCon[nu] * covDU[mu][nu]
			}
		}
		dP0 := 3 * rho * e.Nu[k] * (bbCovDU/bSqr - divU/3)
		dPTilde0 := dP0
		if p.HighOrderTermsViscosity {
			dPTilde0 = tildeScale(dP0, e.Nu[k]*rho*T/tau)
		}
		e.dPTildeTgt[k] = dPTilde0
		s := relax.Source(e.DeltaPTilde[k], dPTilde0, tau, gdet)
		if p.HighOrderTermsViscosity {
			s += 0.5 * gdet * e.DeltaPTilde[k] * divU
		}
		S[types.DPTILDE][k] = s
	} else {
		e.dPTildeTgt[k], S[types.DPTILDE][k] = 0, 0
	}
}

// tildeScale divides x by sqrt(scaleSqr), a vanishing scale gives zero
func tildeScale(x, scaleSqr float64) float64 {
	if !(scaleSqr > 0) {
		return 0
	}
	return x / math.Sqrt(scaleSqr)
}
