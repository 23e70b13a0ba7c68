package EMHD

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/emhd/grid"
	"github.com/notargets/emhd/types"
)

type InitType uint

const (
	INIT_Uniform InitType = iota
	INIT_ShockTube
	INIT_SoundWave
)

var (
	InitNames = map[string]InitType{
		"uniform":   INIT_Uniform,
		"shocktube": INIT_ShockTube,
		"sod":       INIT_ShockTube,
		"soundwave": INIT_SoundWave,
	}
	InitPrintNames = []string{"Uniform", "Shock Tube", "Sound Wave"}
)

func (it InitType) Print() (txt string) {
	if int(it) >= len(InitPrintNames) {
		return "Unknown"
	}
	return InitPrintNames[it]
}

func NewInitType(label string) (it InitType) {
	var (
		ok  bool
		err error
	)
	if len(label) == 0 {
		return INIT_Uniform
	}
	label = strings.ToLower(label)
	if it, ok = InitNames[label]; !ok {
		err = fmt.Errorf("unable to use init type named %s", label)
		panic(err)
	}
	return
}

// Initialize fills the interior of prim with a test state and the ghost zones
// by outflow copy. Amplitude scales the sound wave density perturbation.
func (m *Model) Initialize(it InitType, prim *grid.Grid, amplitude float64) {
	var (
		g     = m.geom.Grid()
		gam   = m.Params.AdiabaticIndex
		start = m.geom.Domain.Start[0]
		L     = float64(g.N[0]) * m.geom.DX(1)
	)
	g.CheckShape(prim, int(types.NumFluidVars))
	prim.Zero()
	set := func(k int, rho, P, v1 float64) {
		prim.Vars[types.RHO][k] = rho
		prim.Vars[types.UU][k] = P / (gam - 1)
		prim.Vars[types.U1][k] = v1
	}
	g.ForInterior(0, g.Size(), func(k int) {
		x := m.geom.XCoords(types.CENTER, k)[1]
		switch it {
		case INIT_Uniform:
			set(k, 1, 1, 0)
		case INIT_ShockTube:
			if x < start+0.5*L {
				set(k, 1, 1, 0)
			} else {
				set(k, 0.125, 0.1, 0)
			}
		case INIT_SoundWave:
			var (
				rho0, P0 = 1., 1.
				cs       = math.Sqrt(gam * P0 / (rho0 + gam*P0/(gam-1)))
				delta    = amplitude * math.Cos(2*math.Pi*(x-start)/L)
			)
			set(k, rho0*(1+delta), P0*(1+gam*delta), cs*delta)
		default:
			panic(fmt.Errorf("unable to initialize %s", it.Print()))
		}
	})
	prim.CopyOutflow()
}
