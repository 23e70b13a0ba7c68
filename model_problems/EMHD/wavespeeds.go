package EMHD

import (
	"fmt"
	"math"

	"github.com/notargets/emhd/utils"
)

// WaveSpeedEpsilon bounds the leading coefficient of the dispersion relation away from zero
const WaveSpeedEpsilon = 1.e-12

// WaveSpeeds computes the slowest and fastest coordinate speeds of the fast
// magnetosonic wave in direction dir. When dissipation is on the signal
// speeds of the conduction and viscosity modes are added before solving.
func (e *FluidElement) WaveSpeeds(dir int, cmin, cmax []float64) {
	if dir < 1 || dir >= NDIM {
		panic(fmt.Errorf("wave speeds need a spatial direction, have %d", dir))
	}
	if len(cmin) != e.Len() || len(cmax) != e.Len() {
		panic(fmt.Errorf("wave speed buffers need length %d, have %d and %d", e.Len(), len(cmin), len(cmax)))
	}
	var (
		p   = e.params
		gam = p.AdiabaticIndex
		m   = e.ld.Metric
	)
	utils.ParallelApply(p.ProcLimit, e.Len(), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			var (
				rho, u = e.Rho[k], e.U[k]
				bSqr   = e.BSqr[k]
				cs2    = e.SoundSpeedSqr[k]
				vA2    = bSqr / (rho + gam*u + bSqr)
				cms2   = cs2 + vA2 - cs2*vA2
			)
			if p.Conduction {
				cms2 += e.Chi[k] / e.Tau[k]
			}
			if p.Viscosity {
				cms2 += e.Nu[k] / e.Tau[k]
			}
			cms2 = math.Min(math.Max(cms2, 0), 1)
			var (
				Au, Bu = e.UCon[dir][k], e.UCon[0][k]
				Asq    = m.GCon[dir][dir][k]
				Bsq    = m.GCon[0][0][k]
				AB     = m.GCon[0][dir][k]
				A      = Bu*Bu - (Bsq+Bu*Bu)*cms2
				B      = 2 * (Au*Bu - (AB+Au*Bu)*cms2)
				C      = Au*Au - (Asq+Au*Au)*cms2
				discr  = math.Sqrt(math.Max(B*B-4*A*C, 0))
			)
			if math.Abs(A) < WaveSpeedEpsilon {
				if A < 0 {
					A = -WaveSpeedEpsilon
				} else {
					A = WaveSpeedEpsilon
				}
			}
			vp := -(-B + discr) / (2 * A)
			vm := -(-B - discr) / (2 * A)
			cmax[k], cmin[k] = math.Max(vp, vm), math.Min(vp, vm)
		}
	})
}
