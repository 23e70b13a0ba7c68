package EMHD

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/emhd/grid"
	"github.com/notargets/emhd/utils"
)

type ReconstructionType uint8

const (
	RECONSTRUCT_MM ReconstructionType = iota
	RECONSTRUCT_WENO5
)

var (
	ReconstructionNames = map[string]ReconstructionType{
		"mm":    RECONSTRUCT_MM,
		"mc":    RECONSTRUCT_MM,
		"weno5": RECONSTRUCT_WENO5,
		"weno":  RECONSTRUCT_WENO5,
	}
	ReconstructionPrintNames = []string{"Monotonized Central", "WENO5"}
)

func (rt ReconstructionType) Print() (txt string) {
	txt = ReconstructionPrintNames[rt]
	return
}

func NewReconstructionType(label string) (rt ReconstructionType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if rt, ok = ReconstructionNames[label]; !ok {
		err = fmt.Errorf("unable to use reconstruction named %s", label)
		panic(err)
	}
	return
}

// NumGhost is the ghost depth needed for valid states on every interior face
func (rt ReconstructionType) NumGhost() int {
	switch rt {
	case RECONSTRUCT_WENO5:
		return 3
	default:
		return 1
	}
}

// Reconstruct fills lower with the value of every field on the lower face
// of each cell along dir, and upper with the value on its upper face
func (rt ReconstructionType) Reconstruct(prim *grid.Grid, dir int, lower, upper *grid.Grid, ProcLimit int) {
	switch rt {
	case RECONSTRUCT_WENO5:
		ReconstructWENO5(prim, dir, lower, upper, ProcLimit)
	default:
		Reconstruct(prim, dir, lower, upper, ProcLimit)
	}
}

// slopeMC is the monotonized central limited slope from the forward and
// backward differences, zero when they disagree in sign
func slopeMC(f, b float64) float64 {
	return (utils.Sign(f) + utils.Sign(b)) * math.Min(math.Min(math.Abs(f), math.Abs(b)), 0.25*math.Abs(f+b))
}

// between clamps x to the interval spanned by a and b, face values stay
// inside the neighbor range after rounding
func between(x, a, b float64) float64 {
	return math.Max(math.Min(a, b), math.Min(math.Max(a, b), x))
}

// SlopeMM writes the limited slope of in along dir into out
func SlopeMM(g *grid.Grid, dir int, in, out []float64) {
	if len(in) != g.Size() || len(out) != g.Size() {
		panic(fmt.Errorf("slope needs fields of size %d, have %d and %d", g.Size(), len(in), len(out)))
	}
	for p := range in {
		f := in[g.Neighbor(p, dir, 1)] - in[p]
		b := in[p] - in[g.Neighbor(p, dir, -1)]
		out[p] = slopeMC(f, b)
	}
}

// Reconstruct is piecewise linear reconstruction with the monotonized central limiter
func Reconstruct(prim *grid.Grid, dir int, lower, upper *grid.Grid, ProcLimit int) {
	prim.CheckDirection(dir)
	prim.CheckShape(lower, prim.NumVars)
	prim.CheckShape(upper, prim.NumVars)
	g := prim
	utils.ParallelApply(ProcLimit, g.Size(), func(kMin, kMax int) {
		for v := 0; v < g.NumVars; v++ {
			x := g.Vars[v]
			for p := kMin; p < kMax; p++ {
				xm, xp := x[g.Neighbor(p, dir, -1)], x[g.Neighbor(p, dir, 1)]
				halfSlope := 0.5 * slopeMC(xp-x[p], x[p]-xm)
				lower.Vars[v][p] = between(x[p]-halfSlope, x[p], xm)
				upper.Vars[v][p] = between(x[p]+halfSlope, x[p], xp)
			}
		}
	})
}

const WENOEpsilon = 1.e-6

var (
	wenoLinearWeights = [3]float64{0.1, 0.6, 0.3}
)

// WENO5Candidates are the three third order values on the upper face of the
// center cell of the stencil v[0..4] (cells i-2 .. i+2)
func WENO5Candidates(v [5]float64) (c [3]float64) {
	c[0] = (2*v[0] - 7*v[1] + 11*v[2]) / 6
	c[1] = (-v[1] + 5*v[2] + 2*v[3]) / 6
	c[2] = (2*v[2] + 5*v[3] - v[4]) / 6
	return
}

// WENO5Weights are the normalized nonlinear weights of the Jiang-Shu scheme
func WENO5Weights(v [5]float64) (w [3]float64) {
	var (
		beta [3]float64
		sum  float64
	)
	beta[0] = 13./12.*utils.POW(v[0]-2*v[1]+v[2], 2) + 0.25*utils.POW(v[0]-4*v[1]+3*v[2], 2)
	beta[1] = 13./12.*utils.POW(v[1]-2*v[2]+v[3], 2) + 0.25*utils.POW(v[1]-v[3], 2)
	beta[2] = 13./12.*utils.POW(v[2]-2*v[3]+v[4], 2) + 0.25*utils.POW(3*v[2]-4*v[3]+v[4], 2)
	for i := 0; i < 3; i++ {
		w[i] = wenoLinearWeights[i] / utils.POW(WENOEpsilon+beta[i], 2)
		sum += w[i]
	}
	for i := 0; i < 3; i++ {
		w[i] /= sum
	}
	return
}

// WENO5 is the nonlinear upper face value of the center cell of the stencil
func WENO5(v [5]float64) (val float64) {
	var (
		c = WENO5Candidates(v)
		w = WENO5Weights(v)
	)
	return w[0]*c[0] + w[1]*c[1] + w[2]*c[2]
}

// ReconstructWENO5 is fifth order WENO reconstruction, the lower face value
// uses the mirrored stencil
func ReconstructWENO5(prim *grid.Grid, dir int, lower, upper *grid.Grid, ProcLimit int) {
	prim.CheckDirection(dir)
	prim.CheckShape(lower, prim.NumVars)
	prim.CheckShape(upper, prim.NumVars)
	g := prim
	utils.ParallelApply(ProcLimit, g.Size(), func(kMin, kMax int) {
		var v, vMirror [5]float64
		for vr := 0; vr < g.NumVars; vr++ {
			x := g.Vars[vr]
			for p := kMin; p < kMax; p++ {
				for s := -2; s <= 2; s++ {
					v[s+2] = x[g.Neighbor(p, dir, s)]
					vMirror[2-s] = v[s+2]
				}
				upper.Vars[vr][p] = WENO5(v)
				lower.Vars[vr][p] = WENO5(vMirror)
			}
		}
	})
}
