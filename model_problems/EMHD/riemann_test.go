package EMHD

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/emhd/types"
)

func TestFluxCombination(t *testing.T) {
	{ // Names
		assert.Equal(t, FLUX_LaxFriedrichs, NewFluxType("Lax"))
		assert.Equal(t, FLUX_HLL, NewFluxType("HLL"))
		assert.Equal(t, "Lax Friedrichs", FLUX_LaxFriedrichs.Print())
		assert.Panics(t, func() { NewFluxType("roe") })
	}
	{ // Face speeds are non negative bounds from both sides
		cmin, cmax := FaceSpeeds(-0.3, 0.5, -0.1, 0.7)
		assert.Equal(t, 0.3, cmin)
		assert.Equal(t, 0.7, cmax)
		cmin, cmax = FaceSpeeds(0.2, 0.5, 0.1, 0.4)
		assert.Equal(t, 0., cmin)
		assert.Equal(t, 0.5, cmax)
	}
	{ // Lax Friedrichs
		assert.Equal(t, 0.5*(1+3-0.5*(4-2)), LaxFriedrichs(1, 3, 2, 4, 0.5))
		assert.InDelta(t, 0.5*(1+3-0.7*(4-2)), FLUX_LaxFriedrichs.Combine(1, 3, 2, 4, 0.7, 0.5), 1.e-15)
	}
	{ // HLL: upwind when every wave moves right, exact on identical states
		assert.InDelta(t, 1., HLL(1, 3, 2, 4, 0, 0.5), 1.e-10)
		assert.InDelta(t, 3., HLL(1, 3, 2, 4, 0.5, 0), 1.e-10)
		assert.Equal(t, 0.123456789, HLL(0.123456789, 0.123456789, 7, 7, 0.3, 0.9))
		assert.Equal(t, 0.123456789, FLUX_HLL.Combine(0.123456789, 0.123456789, 7, 7, 0, 0))
		// Zero wave speeds do not divide by zero
		assert.Equal(t, 0., HLL(1, 3, 2, 4, 0, 0))
	}
}

func TestRiemannSolverConsistency(t *testing.T) {
	for _, rt := range []ReconstructionType{RECONSTRUCT_MM, RECONSTRUCT_WENO5} {
		for _, ft := range []FluxType{FLUX_LaxFriedrichs, FLUX_HLL} {
			p := testParams()
			p.Reconstruction, p.FluxType = rt, ft
			geom := newFlatGeometry(t, 3, 5, 4)
			prim := uniformPrims(geom, 1.1, 0.7, [3]float64{0.2, -0.3, 0.1}, [3]float64{0.4, 0.1, -0.2}, 0.01, -0.02)
			rs := NewRiemannSolver(geom.Grid(), geom, p)
			fluxes := prim.NewLike(int(types.NumFluidVars))
			for dir := 1; dir <= 2; dir++ {
				require.NoError(t, rs.Solve(prim, dir, fluxes))
				assert.Equal(t, rs.PrimLeft.Vars, rs.PrimRight.Vars)
				for v := 0; v < int(types.NumFluidVars); v++ {
					assert.Equal(t, rs.FluxLeft.Vars[v], fluxes.Vars[v], "%s %s dir %d var %s",
						rt.Print(), ft.Print(), dir, types.FluidVar(v))
				}
				assert.Equal(t, STAGE_Idle, rs.Stage())
			}
		}
	}
}

func TestRiemannSolverUniformStatic(t *testing.T) {
	var (
		rho, u = 1., 1.5
		P      = u / 3
	)
	geom := newFlatGeometry(t, 1, 6)
	prim := uniformPrims(geom, rho, u, [3]float64{}, [3]float64{}, 0, 0)
	rs := NewRiemannSolver(geom.Grid(), geom, testParams())
	fluxes := prim.NewLike(int(types.NumFluidVars))
	require.NoError(t, rs.Solve(prim, 1, fluxes))
	for k := 0; k < fluxes.Size(); k++ {
		assert.Equal(t, 0., fluxes.Vars[types.RHO][k])
		assert.InDelta(t, 0., fluxes.Vars[types.UU][k], 1.e-15)
		assert.InDelta(t, P, fluxes.Vars[types.U1][k], 1.e-15)
		assert.InDelta(t, 0., fluxes.Vars[types.U2][k], 1.e-15)
	}
}

func TestRiemannSolverStages(t *testing.T) {
	geom := newFlatGeometry(t, 1, 6)
	prim := uniformPrims(geom, 1, 1, [3]float64{}, [3]float64{}, 0, 0)
	for i := 0; i < 3; i++ {
		prim.Vars[types.RHO][i] = 2
		prim.Vars[types.UU][i] = 3
	}
	rs := NewRiemannSolver(geom.Grid(), geom, testParams())
	var stages []RiemannStage
	rs.onStage = func(s RiemannStage) { stages = append(stages, s) }
	fluxes := prim.NewLike(int(types.NumFluidVars))
	require.NoError(t, rs.Solve(prim, 1, fluxes))
	assert.Equal(t, []RiemannStage{STAGE_Reconstructed, STAGE_FluxesComputed, STAGE_Combined, STAGE_Idle}, stages)
	{ // The face flux is the combination of the two sides
		for k := 0; k < fluxes.Size(); k++ {
			cmin, cmax := FaceSpeeds(rs.cMinLeft[k], rs.cMaxLeft[k], rs.cMinRight[k], rs.cMaxRight[k])
			for v := 0; v < int(types.NumFluidVars); v++ {
				assert.Equal(t, LaxFriedrichs(rs.FluxLeft.Vars[v][k], rs.FluxRight.Vars[v][k],
					rs.ConsLeft.Vars[v][k], rs.ConsRight.Vars[v][k], math.Max(cmin, cmax)), fluxes.Vars[v][k])
				assert.True(t, cmin >= 0 && cmax >= 0)
			}
		}
		// Mass moves from the dense side across the jump
		jump := geom.Grid().Index(2, 0, 0)
		assert.Greater(t, fluxes.Vars[types.RHO][jump], 0.)
		assert.Equal(t, 0., fluxes.Vars[types.RHO][geom.Grid().Index(5, 0, 0)])
	}
	{ // A bad state aborts the solve and reports the side
		stages = nil
		bad := prim.Copy()
		bad.Vars[types.RHO][4] = -1
		err := rs.Solve(bad, 1, fluxes)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrFluidState))
		assert.Contains(t, err.Error(), "direction 1")
		assert.Equal(t, STAGE_Idle, rs.Stage())
		assert.Equal(t, []RiemannStage{STAGE_Reconstructed, STAGE_Idle}, stages)
	}
	{ // Preconditions
		assert.Panics(t, func() { _ = rs.Solve(prim, 2, fluxes) })
		assert.Panics(t, func() { _ = rs.Solve(prim, 1, prim.NewLike(2)) })
	}
}
