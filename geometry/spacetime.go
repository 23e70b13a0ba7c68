package geometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/emhd/tensor"
)

const NDIM = tensor.NDIM

// Spacetime supplies the covariant metric at a coordinate point X = (t, x1, x2, x3)
type Spacetime interface {
	Name() string
	GCov(X [NDIM]float64) (gCov [NDIM][NDIM]float64)
}

// Minkowski is flat spacetime in Cartesian coordinates
type Minkowski struct{}

func (Minkowski) Name() string { return "Minkowski" }

func (Minkowski) GCov(X [NDIM]float64) (gCov [NDIM][NDIM]float64) {
	gCov[0][0] = -1
	gCov[1][1], gCov[2][2], gCov[3][3] = 1, 1, 1
	return
}

// KerrSchild is the Kerr metric of a unit mass black hole in Kerr-Schild
// coordinates X = (t, r, theta, phi)
type KerrSchild struct {
	Spin float64
}

func (ks KerrSchild) Name() string { return fmt.Sprintf("Kerr-Schild, a = %g", ks.Spin) }

func (ks KerrSchild) GCov(X [NDIM]float64) (gCov [NDIM][NDIM]float64) {
	var (
		a           = ks.Spin
		r, theta    = X[1], X[2]
		sth, cth    = math.Sin(theta), math.Cos(theta)
		s2          = sth * sth
		sigma       = r*r + a*a*cth*cth
		rfac        = 2 * r / sigma
		gtt, gtr    = -(1 - rfac), rfac
		gtph, grr   = -a * rfac * s2, 1 + rfac
		grph, gthth = -a * s2 * (1 + rfac), sigma
		gphph       = s2 * (sigma + a*a*s2*(1+rfac))
	)
	gCov[0][0] = gtt
	gCov[0][1], gCov[1][0] = gtr, gtr
	gCov[0][3], gCov[3][0] = gtph, gtph
	gCov[1][1] = grr
	gCov[1][3], gCov[3][1] = grph, grph
	gCov[2][2] = gthth
	gCov[3][3] = gphph
	return
}

var (
	SpacetimeNames = map[string]func(spin float64) Spacetime{
		"minkowski":  func(float64) Spacetime { return Minkowski{} },
		"flat":       func(float64) Spacetime { return Minkowski{} },
		"kerrschild": func(spin float64) Spacetime { return KerrSchild{Spin: spin} },
		"kerr":       func(spin float64) Spacetime { return KerrSchild{Spin: spin} },
	}
)

func NewSpacetime(label string, spin float64) (st Spacetime) {
	label = strings.ToLower(strings.TrimSpace(label))
	if len(label) == 0 {
		return Minkowski{}
	}
	newST, ok := SpacetimeNames[label]
	if !ok {
		panic(fmt.Errorf("unable to use spacetime named [%s]", label))
	}
	return newST(spin)
}
