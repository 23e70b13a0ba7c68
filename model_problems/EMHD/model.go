package EMHD

import (
	"fmt"

	"github.com/notargets/emhd/geometry"
	"github.com/notargets/emhd/grid"
	"github.com/notargets/emhd/types"
	"github.com/notargets/emhd/utils"
)

// Model is the spatial operator of the conserved variables: the divergence
// of the interface fluxes along every active direction plus the sources
type Model struct {
	Params  Params
	geom    *geometry.Geometry
	riemann *RiemannSolver
	elem    *FluidElement
	elemOld *FluidElement
	Fluxes  [3]*grid.Grid // Lower face fluxes per active direction
	Sources *grid.Grid
}

func NewModel(geom *geometry.Geometry, params Params) (m *Model) {
	params.Check()
	var (
		g = geom.Grid()
		N = g.Size()
	)
	m = &Model{
		Params:  params,
		geom:    geom,
		riemann: NewRiemannSolver(g, geom, params),
		elem:    newFluidElement(N, params),
		elemOld: newFluidElement(N, params),
		Sources: g.NewLike(int(types.NumFluidVars)),
	}
	for d := 0; d < g.Dim; d++ {
		m.Fluxes[d] = g.NewLike(int(types.NumFluidVars))
	}
	return
}

func (m *Model) Geometry() *geometry.Geometry { return m.geom }

// NewPrimitives allocates a primitive grid shaped for the model
func (m *Model) NewPrimitives() *grid.Grid {
	return m.geom.Grid().NewLike(int(types.NumFluidVars))
}

// Conserved computes the conserved variables of prim at cell centers
func (m *Model) Conserved(prim, cons *grid.Grid) (err error) {
	if err = m.elem.Set(prim, m.geom, types.CENTER); err != nil {
		return
	}
	m.elem.ComputeFluxes(0, cons)
	return
}

// RHS computes -sum_d (F_d[i+1] - F_d[i])/dX_d + S at every interior cell
// and zero in the ghost zones. prim must have its ghost zones filled, primOld
// is the state dt earlier. The stiff relaxation terms come back when the
// relaxation policy is implicit.
func (m *Model) RHS(prim, primOld *grid.Grid, dt float64, rhs *grid.Grid) (terms []RelaxationTerm, err error) {
	var (
		g = m.geom.Grid()
	)
	g.CheckShape(rhs, int(types.NumFluidVars))
	for dir := 1; dir <= g.Dim; dir++ {
		if err = m.riemann.Solve(prim, dir, m.Fluxes[dir-1]); err != nil {
			return
		}
	}
	if err = m.elem.Set(prim, m.geom, types.CENTER); err != nil {
		return nil, fmt.Errorf("cell centers: %w", err)
	}
	if err = m.elemOld.Set(primOld, m.geom, types.CENTER); err != nil {
		return nil, fmt.Errorf("cell centers, previous state: %w", err)
	}
	terms = m.elem.ComputeSources(m.elemOld, m.elem, dt, m.Params.Relaxation, m.Sources)
	utils.ParallelApply(m.Params.ProcLimit, g.Size(), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			interior := g.IsInterior(k)
			for v := 0; v < int(types.NumFluidVars); v++ {
				if !interior {
					rhs.Vars[v][k] = 0
					continue
				}
				r := m.Sources.Vars[v][k]
				for dir := 1; dir <= g.Dim; dir++ {
					F := m.Fluxes[dir-1].Vars[v]
					r -= (F[g.Neighbor(k, dir, 1)] - F[k]) / m.geom.DX(dir)
				}
				rhs.Vars[v][k] = r
			}
		}
	})
	return
}
