// Package tensor holds grid-valued 4-vectors and rank-2 tensors. Each
// component is a whole-grid field, and the position of the index (up or
// down) is part of the type so that raising and lowering only happens
// through the metric.
package tensor

import (
	"fmt"

	"github.com/notargets/emhd/types"
)

const NDIM = types.NDIM

// Con is a contravariant (index up) 4-vector field
type Con [NDIM][]float64

// Cov is a covariant (index down) 4-vector field
type Cov [NDIM][]float64

// Mixed is a rank-2 tensor field T^mu_nu, first index up
type Mixed [NDIM][NDIM][]float64

// Metric holds the metric components at every point of a grid location
type Metric struct {
	GCov, GCon [NDIM][NDIM][]float64
	G          []float64 // sqrt(-det(gCov))
	Alpha      []float64 // Lapse, 1/sqrt(-gCon[0][0])
}

func NewCon(N int) (v Con) {
	for mu := 0; mu < NDIM; mu++ {
		v[mu] = make([]float64, N)
	}
	return
}

func NewCov(N int) (v Cov) {
	for mu := 0; mu < NDIM; mu++ {
		v[mu] = make([]float64, N)
	}
	return
}

func NewMixed(N int) (T Mixed) {
	for mu := 0; mu < NDIM; mu++ {
		for nu := 0; nu < NDIM; nu++ {
			T[mu][nu] = make([]float64, N)
		}
	}
	return
}

func NewMetric(N int) (m *Metric) {
	m = &Metric{
		G:     make([]float64, N),
		Alpha: make([]float64, N),
	}
	for mu := 0; mu < NDIM; mu++ {
		for nu := 0; nu < NDIM; nu++ {
			m.GCov[mu][nu] = make([]float64, N)
			m.GCon[mu][nu] = make([]float64, N)
		}
	}
	return
}

func (v Con) Len() int { return len(v[0]) }
func (v Cov) Len() int { return len(v[0]) }
func (m *Metric) Len() int {
	return len(m.G)
}

func checkLen(a, b int) {
	if a != b {
		panic(fmt.Errorf("tensor field length mismatch: %d != %d", a, b))
	}
}

// Lower computes out_mu = g_mu_nu v^nu over the index range [kMin, kMax)
func Lower(m *Metric, v Con, out Cov, kMin, kMax int) {
	checkLen(v.Len(), out.Len())
	checkLen(v.Len(), m.Len())
	var tmp [NDIM]float64
	for k := kMin; k < kMax; k++ {
		for mu := 0; mu < NDIM; mu++ {
			tmp[mu] = 0
			for nu := 0; nu < NDIM; nu++ {
				tmp[mu] += m.GCov[mu][nu][k] * v[nu][k]
			}
		}
		for mu := 0; mu < NDIM; mu++ {
			out[mu][k] = tmp[mu]
		}
	}
}

// Raise computes out^mu = g^mu^nu v_nu over the index range [kMin, kMax)
func Raise(m *Metric, v Cov, out Con, kMin, kMax int) {
	checkLen(v.Len(), out.Len())
	checkLen(v.Len(), m.Len())
	var tmp [NDIM]float64
	for k := kMin; k < kMax; k++ {
		for mu := 0; mu < NDIM; mu++ {
			tmp[mu] = 0
			for nu := 0; nu < NDIM; nu++ {
				tmp[mu] += m.GCon[mu][nu][k] * v[nu][k]
			}
		}
		for mu := 0; mu < NDIM; mu++ {
			out[mu][k] = tmp[mu]
		}
	}
}

// Contract computes out = v^mu w_mu over the index range [kMin, kMax)
func Contract(v Con, w Cov, out []float64, kMin, kMax int) {
	checkLen(v.Len(), w.Len())
	checkLen(v.Len(), len(out))
	for k := kMin; k < kMax; k++ {
		var s float64
		for mu := 0; mu < NDIM; mu++ {
			s += v[mu][k] * w[mu][k]
		}
		out[k] = s
	}
}

// At extracts the point value of a contravariant vector
func (v Con) At(k int) (p [NDIM]float64) {
	for mu := 0; mu < NDIM; mu++ {
		p[mu] = v[mu][k]
	}
	return
}

// At extracts the point value of a covariant vector
func (v Cov) At(k int) (p [NDIM]float64) {
	for mu := 0; mu < NDIM; mu++ {
		p[mu] = v[mu][k]
	}
	return
}
