// Package grid is a container of named whole-grid scalar fields on a
// structured, ghost padded grid of one to three spatial dimensions.
package grid

import (
	"fmt"
)

type Grid struct {
	Dim      int         // Number of active spatial directions
	NumGhost int         // Ghost cells on each side of each active direction
	NumVars  int         // Number of fields
	N        [3]int      // Interior cells per direction, 1 beyond Dim
	Shape    [3]int      // Padded cells per direction
	Vars     [][]float64 // NumVars x Size, X1 varies fastest
	strides  [3]int
}

func NewGrid(dim, numGhost, numVars int, N ...int) (g *Grid) {
	if dim < 1 || dim > 3 {
		panic(fmt.Errorf("grid dimension must be 1, 2 or 3, have %d", dim))
	}
	if len(N) != dim {
		panic(fmt.Errorf("need %d interior sizes for a %dD grid, have %v", dim, dim, N))
	}
	if numGhost < 0 || numVars < 1 {
		panic(fmt.Errorf("invalid ghost count %d or variable count %d", numGhost, numVars))
	}
	g = &Grid{
		Dim:      dim,
		NumGhost: numGhost,
		NumVars:  numVars,
		N:        [3]int{1, 1, 1},
		Shape:    [3]int{1, 1, 1},
	}
	for d := 0; d < dim; d++ {
		if N[d] < 1 {
			panic(fmt.Errorf("interior size must be positive, have %v", N))
		}
		g.N[d] = N[d]
		g.Shape[d] = N[d] + 2*numGhost
	}
	g.strides = [3]int{1, g.Shape[0], g.Shape[0] * g.Shape[1]}
	g.Vars = make([][]float64, numVars)
	for v := range g.Vars {
		g.Vars[v] = make([]float64, g.Size())
	}
	return
}

// NewLike allocates a grid of the same shape with numVars fields
func (g *Grid) NewLike(numVars int) (R *Grid) {
	N := make([]int, g.Dim)
	for d := 0; d < g.Dim; d++ {
		N[d] = g.N[d]
	}
	return NewGrid(g.Dim, g.NumGhost, numVars, N...)
}

// Size is the number of padded points per field
func (g *Grid) Size() int { return g.Shape[0] * g.Shape[1] * g.Shape[2] }

func (g *Grid) SameShape(o *Grid) bool {
	return g.Dim == o.Dim && g.NumGhost == o.NumGhost && g.Shape == o.Shape
}

// CheckShape panics unless o has the shape of g and at least numVars fields
func (g *Grid) CheckShape(o *Grid, numVars int) {
	if !g.SameShape(o) {
		panic(fmt.Errorf("grid shape mismatch: %v(%d ghosts) != %v(%d ghosts)",
			g.Shape, g.NumGhost, o.Shape, o.NumGhost))
	}
	if o.NumVars < numVars {
		panic(fmt.Errorf("grid has %d fields, need %d", o.NumVars, numVars))
	}
}

// Index maps interior-relative coordinates to a flat index, ghost cells
// have negative coordinates or coordinates >= N. Coordinates beyond Dim are ignored.
func (g *Grid) Index(i, j, k int) int {
	var (
		c   = [3]int{i, j, k}
		ng  = g.NumGhost
		ind int
	)
	for d := 0; d < 3; d++ {
		if d >= g.Dim {
			continue
		}
		ind += (c[d] + ng) * g.strides[d]
	}
	return ind
}

// Coords is the inverse of Index
func (g *Grid) Coords(ind int) (i, j, k int) {
	var c [3]int
	for d := 0; d < 3; d++ {
		c[d] = (ind / g.strides[d]) % g.Shape[d]
		if d < g.Dim {
			c[d] -= g.NumGhost
		}
	}
	return c[0], c[1], c[2]
}

// CheckDirection panics unless dir is an active spatial direction of g
func (g *Grid) CheckDirection(dir int) {
	if dir < 1 || dir > g.Dim {
		panic(fmt.Errorf("direction %d is not active in a %dD grid", dir, g.Dim))
	}
}

// Stride is the flat index distance between neighbors in spatial direction dir
func (g *Grid) Stride(dir int) int {
	g.CheckDirection(dir)
	return g.strides[dir-1]
}

// Neighbor returns the index offset cells away along dir, clamped to the padded grid
func (g *Grid) Neighbor(ind, dir, offset int) int {
	var (
		s     = g.Stride(dir)
		n     = g.Shape[dir-1]
		c     = (ind / s) % n
		cNext = c + offset
	)
	if cNext < 0 {
		cNext = 0
	} else if cNext > n-1 {
		cNext = n - 1
	}
	return ind + (cNext-c)*s
}

// Shift sets dst[p] = src[Neighbor(p, dir, offset)], dst must not alias src
func (g *Grid) Shift(dst, src []float64, dir, offset int) {
	if len(dst) != g.Size() || len(src) != g.Size() {
		panic(fmt.Errorf("shift needs fields of size %d, have %d and %d", g.Size(), len(dst), len(src)))
	}
	for p := range dst {
		dst[p] = src[g.Neighbor(p, dir, offset)]
	}
}

// IsInterior reports whether a flat index lies outside the ghost zones
func (g *Grid) IsInterior(ind int) bool {
	for d := 0; d < g.Dim; d++ {
		c := (ind/g.strides[d])%g.Shape[d] - g.NumGhost
		if c < 0 || c >= g.N[d] {
			return false
		}
	}
	return true
}

// ForInterior calls f with the flat index of every interior point in [kMin, kMax)
func (g *Grid) ForInterior(kMin, kMax int, f func(ind int)) {
	for p := kMin; p < kMax; p++ {
		if g.IsInterior(p) {
			f(p)
		}
	}
}

func (g *Grid) CopyFrom(o *Grid) {
	g.CheckShape(o, g.NumVars)
	for v := 0; v < g.NumVars; v++ {
		copy(g.Vars[v], o.Vars[v])
	}
}

func (g *Grid) Copy() (R *Grid) {
	R = g.NewLike(g.NumVars)
	R.CopyFrom(g)
	return
}

func (g *Grid) Zero() {
	for v := range g.Vars {
		for p := range g.Vars[v] {
			g.Vars[v][p] = 0
		}
	}
}

func (g *Grid) FillVar(v int, val float64) {
	for p := range g.Vars[v] {
		g.Vars[v][p] = val
	}
}

// CopyOutflow fills the ghost zones of every field with the nearest
// interior value, one direction after the other so corners are filled too
func (g *Grid) CopyOutflow() {
	var (
		ng = g.NumGhost
	)
	for dir := 1; dir <= g.Dim; dir++ {
		d := dir - 1
		for p := 0; p < g.Size(); p++ {
			c := (p/g.strides[d])%g.Shape[d] - ng
			var src int
			switch {
			case c < 0:
				src = p - c*g.strides[d]
			case c >= g.N[d]:
				src = p - (c-g.N[d]+1)*g.strides[d]
			default:
				continue
			}
			for v := 0; v < g.NumVars; v++ {
				g.Vars[v][p] = g.Vars[v][src]
			}
		}
	}
}
