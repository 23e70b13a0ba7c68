package EMHD

import (
	"fmt"

	"github.com/notargets/emhd/geometry"
	"github.com/notargets/emhd/grid"
	"github.com/notargets/emhd/types"
	"github.com/notargets/emhd/utils"
)

type RiemannStage uint8

const (
	STAGE_Idle RiemannStage = iota
	STAGE_Reconstructed
	STAGE_FluxesComputed
	STAGE_Combined
)

var RiemannStagePrintNames = []string{"Idle", "Reconstructed", "Fluxes Computed", "Combined"}

func (rs RiemannStage) Print() (txt string) {
	txt = RiemannStagePrintNames[rs]
	return
}

// RiemannSolver owns the left and right states of the faces along one
// direction at a time, and every buffer needed to combine them into a flux.
// A solver is not safe for concurrent Solve calls.
type RiemannSolver struct {
	params               Params
	geom                 *geometry.Geometry
	ElemLeft, ElemRight  *FluidElement
	PrimLeft, PrimRight  *grid.Grid
	FluxLeft, FluxRight  *grid.Grid
	ConsLeft, ConsRight  *grid.Grid
	upperFace            *grid.Grid // Upper face values of each cell, before shifting to the face
	cMinLeft, cMaxLeft   []float64
	cMinRight, cMaxRight []float64
	stage                RiemannStage
	onStage              func(RiemannStage)
}

func NewRiemannSolver(template *grid.Grid, geom *geometry.Geometry, params Params) (rs *RiemannSolver) {
	params.Check()
	geom.Grid().CheckShape(template, 1)
	var (
		N        = template.Size()
		newPrims = func() *grid.Grid { return template.NewLike(int(types.NumFluidVars)) }
	)
	rs = &RiemannSolver{
		params:    params,
		geom:      geom,
		ElemLeft:  newFluidElement(N, params),
		ElemRight: newFluidElement(N, params),
		PrimLeft:  newPrims(),
		PrimRight: newPrims(),
		FluxLeft:  newPrims(),
		FluxRight: newPrims(),
		ConsLeft:  newPrims(),
		ConsRight: newPrims(),
		upperFace: newPrims(),
		cMinLeft:  make([]float64, N),
		cMaxLeft:  make([]float64, N),
		cMinRight: make([]float64, N),
		cMaxRight: make([]float64, N),
	}
	return
}

func (rs *RiemannSolver) Stage() RiemannStage { return rs.stage }

func (rs *RiemannSolver) setStage(stage RiemannStage) {
	rs.stage = stage
	if rs.onStage != nil {
		rs.onStage(stage)
	}
}

// Solve writes into fluxes, at index i, the flux through the lower face of
// cell i along dir
func (rs *RiemannSolver) Solve(prim *grid.Grid, dir int, fluxes *grid.Grid) (err error) {
	var (
		g   = rs.geom.Grid()
		p   = rs.params
		loc = types.FaceLocation(dir)
	)
	g.CheckDirection(dir)
	g.CheckShape(prim, int(types.NumFluidVars))
	g.CheckShape(fluxes, int(types.NumFluidVars))
	defer rs.setStage(STAGE_Idle)

	p.Reconstruction.Reconstruct(prim, dir, rs.PrimRight, rs.upperFace, p.ProcLimit)
	for v := 0; v < int(types.NumFluidVars); v++ {
		g.Shift(rs.PrimLeft.Vars[v], rs.upperFace.Vars[v], dir, -1)
	}
	rs.setStage(STAGE_Reconstructed)

	if err = rs.ElemLeft.Set(rs.PrimLeft, rs.geom, loc); err != nil {
		return fmt.Errorf("direction %d, left state: %w", dir, err)
	}
	if err = rs.ElemRight.Set(rs.PrimRight, rs.geom, loc); err != nil {
		return fmt.Errorf("direction %d, right state: %w", dir, err)
	}
	rs.ElemLeft.ComputeFluxes(dir, rs.FluxLeft)
	rs.ElemLeft.ComputeFluxes(0, rs.ConsLeft)
	rs.ElemRight.ComputeFluxes(dir, rs.FluxRight)
	rs.ElemRight.ComputeFluxes(0, rs.ConsRight)
	rs.ElemLeft.WaveSpeeds(dir, rs.cMinLeft, rs.cMaxLeft)
	rs.ElemRight.WaveSpeeds(dir, rs.cMinRight, rs.cMaxRight)
	rs.setStage(STAGE_FluxesComputed)

	utils.ParallelApply(p.ProcLimit, g.Size(), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			cmin, cmax := FaceSpeeds(rs.cMinLeft[k], rs.cMaxLeft[k], rs.cMinRight[k], rs.cMaxRight[k])
			for v := 0; v < int(types.NumFluidVars); v++ {
				fluxes.Vars[v][k] = p.FluxType.Combine(
					rs.FluxLeft.Vars[v][k], rs.FluxRight.Vars[v][k],
					rs.ConsLeft.Vars[v][k], rs.ConsRight.Vars[v][k],
					cmin, cmax)
			}
		}
	})
	rs.setStage(STAGE_Combined)
	return
}
