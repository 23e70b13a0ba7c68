// Package geometry precomputes, for each grid location of a structured
// grid, the coordinates, metric and connection coefficients of a spacetime.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/emhd/grid"
	"github.com/notargets/emhd/tensor"
	"github.com/notargets/emhd/types"
	"github.com/notargets/emhd/utils"
)

// ConnectionDelta is the coordinate step used to difference the metric
const ConnectionDelta = 1.e-5

type Domain struct {
	Start [3]float64 // Coordinates of the lower corner of the first interior cell
	DX    [3]float64 // Cell size per direction
}

// NewDomain spreads the interior cells of g evenly between start and end
func NewDomain(start, end [3]float64, g *grid.Grid) (dom Domain) {
	for d := 0; d < 3; d++ {
		dom.Start[d] = start[d]
		dom.DX[d] = (end[d] - start[d]) / float64(g.N[d])
	}
	return
}

type LocationData struct {
	Loc             types.Location
	XCoords         [NDIM][]float64
	Metric          *tensor.Metric
	GammaUpDownDown [NDIM][NDIM][NDIM][]float64
}

type Geometry struct {
	Spacetime Spacetime
	Domain    Domain
	template  *grid.Grid
	locations [types.NumLocations]*LocationData
}

// NewGeometry evaluates the metric at CENTER and at the faces of every active
// direction of the template grid. The result is read only.
func NewGeometry(st Spacetime, dom Domain, template *grid.Grid, ProcLimit int) (geom *Geometry, err error) {
	geom = &Geometry{
		Spacetime: st,
		Domain:    dom,
		template:  template.NewLike(1),
	}
	locs := []types.Location{types.CENTER}
	for dir := types.X1; dir <= template.Dim; dir++ {
		switch dir {
		case types.X1:
			locs = append(locs, types.LEFT, types.RIGHT)
		case types.X2:
			locs = append(locs, types.BOTTOM, types.TOP)
		case types.X3:
			locs = append(locs, types.BACK, types.FRONT)
		}
	}
	for _, loc := range locs {
		if geom.locations[loc], err = geom.evaluate(loc, ProcLimit); err != nil {
			return nil, err
		}
	}
	return
}

func (geom *Geometry) evaluate(loc types.Location, ProcLimit int) (ld *LocationData, err error) {
	var (
		N = geom.template.Size()
	)
	ld = &LocationData{
		Loc:    loc,
		Metric: tensor.NewMetric(N),
	}
	for mu := 0; mu < NDIM; mu++ {
		ld.XCoords[mu] = make([]float64, N)
		for nu := 0; nu < NDIM; nu++ {
			for lam := 0; lam < NDIM; lam++ {
				ld.GammaUpDownDown[mu][nu][lam] = make([]float64, N)
			}
		}
	}
	err = utils.ParallelFor(ProcLimit, N, func(kMin, kMax int) (err error) {
		for k := kMin; k < kMax; k++ {
			X := geom.XCoords(loc, k)
			gCov, gCon, g, alpha, err := PointMetric(geom.Spacetime, X)
			if err != nil {
				return fmt.Errorf("metric at %s point %d, X = %v: %w", loc.Print(), k, X, err)
			}
			gamma := GammaUpDownDown(geom.Spacetime, X, gCon)
			for mu := 0; mu < NDIM; mu++ {
				ld.XCoords[mu][k] = X[mu]
				for nu := 0; nu < NDIM; nu++ {
					ld.Metric.GCov[mu][nu][k] = gCov[mu][nu]
					ld.Metric.GCon[mu][nu][k] = gCon[mu][nu]
					for lam := 0; lam < NDIM; lam++ {
						ld.GammaUpDownDown[mu][nu][lam][k] = gamma[mu][nu][lam]
					}
				}
			}
			ld.Metric.G[k], ld.Metric.Alpha[k] = g, alpha
		}
		return
	})
	return
}

// At returns the precomputed data for a location, locations normal to an
// inactive direction are a precondition violation
func (geom *Geometry) At(loc types.Location) (ld *LocationData) {
	if int(loc) >= len(geom.locations) || geom.locations[loc] == nil {
		panic(fmt.Errorf("location %s is not available in a %dD geometry", loc.Print(), geom.template.Dim))
	}
	return geom.locations[loc]
}

// Grid returns a single field grid with the shape the geometry was built on
func (geom *Geometry) Grid() *grid.Grid { return geom.template }

func (geom *Geometry) DX(dir int) float64 { return geom.Domain.DX[dir-1] }

// XCoords returns the coordinates of a location in the cell holding flat index k
func (geom *Geometry) XCoords(loc types.Location, k int) (X [NDIM]float64) {
	i, j, kk := geom.template.Coords(k)
	c := [3]int{i, j, kk}
	for d := 0; d < 3; d++ {
		X[d+1] = geom.Domain.Start[d] + (float64(c[d])+loc.Offset(d+1))*geom.Domain.DX[d]
	}
	return
}

// PointMetric evaluates the covariant and contravariant metric, sqrt(-det(gCov)) and the lapse
func PointMetric(st Spacetime, X [NDIM]float64) (gCov, gCon [NDIM][NDIM]float64, g, alpha float64, err error) {
	gCov = st.GCov(X)
	var (
		a   = mat.NewDense(NDIM, NDIM, nil)
		inv mat.Dense
	)
	for mu := 0; mu < NDIM; mu++ {
		for nu := 0; nu < NDIM; nu++ {
			a.Set(mu, nu, gCov[mu][nu])
		}
	}
	det := mat.Det(a)
	if !(det < 0) {
		err = fmt.Errorf("metric determinant must be negative, have %g", det)
		return
	}
	if err = inv.Inverse(a); err != nil {
		return
	}
	for mu := 0; mu < NDIM; mu++ {
		for nu := 0; nu < NDIM; nu++ {
			gCon[mu][nu] = inv.At(mu, nu)
		}
	}
	if !(gCon[0][0] < 0) {
		err = fmt.Errorf("time coordinate is not timelike, gCon[0][0] = %g", gCon[0][0])
		return
	}
	g = math.Sqrt(-det)
	alpha = 1. / math.Sqrt(-gCon[0][0])
	return
}

// GammaDownDownDown is the connection with all indices down,
// Gamma_lam_mu_nu = (d_nu g_lam_mu + d_mu g_lam_nu - d_lam g_mu_nu)/2
func GammaDownDownDown(st Spacetime, X [NDIM]float64) (gamma [NDIM][NDIM][NDIM]float64) {
	var (
		dg [NDIM][NDIM][NDIM]float64 // dg[alpha][mu][nu] = d_alpha g_mu_nu
	)
	for al := 0; al < NDIM; al++ {
		XP, XM := X, X
		XP[al] += ConnectionDelta
		XM[al] -= ConnectionDelta
		gP, gM := st.GCov(XP), st.GCov(XM)
		for mu := 0; mu < NDIM; mu++ {
			for nu := 0; nu < NDIM; nu++ {
				dg[al][mu][nu] = (gP[mu][nu] - gM[mu][nu]) / (2 * ConnectionDelta)
			}
		}
	}
	for lam := 0; lam < NDIM; lam++ {
		for mu := 0; mu < NDIM; mu++ {
			for nu := 0; nu < NDIM; nu++ {
				gamma[lam][mu][nu] = 0.5 * (dg[nu][lam][mu] + dg[mu][lam][nu] - dg[lam][mu][nu])
			}
		}
	}
	return
}

// GammaUpDownDown raises the first index of the connection with gCon
func GammaUpDownDown(st Spacetime, X [NDIM]float64, gCon [NDIM][NDIM]float64) (gamma [NDIM][NDIM][NDIM]float64) {
	gammaDown := GammaDownDownDown(st, X)
	for lam := 0; lam < NDIM; lam++ {
		for mu := 0; mu < NDIM; mu++ {
			for nu := 0; nu < NDIM; nu++ {
				for kap := 0; kap < NDIM; kap++ {
					gamma[lam][mu][nu] += gCon[lam][kap] * gammaDown[kap][mu][nu]
				}
			}
		}
	}
	return
}
