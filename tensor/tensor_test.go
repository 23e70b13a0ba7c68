package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boostedMetric(N int) (m *Metric) {
	// A constant, non-diagonal metric and its inverse
	m = NewMetric(N)
	gCov := [NDIM][NDIM]float64{
		{-1, 0.5, 0, 0},
		{0.5, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 2},
	}
	// Inverse of the 2x2 block [[-1,0.5],[0.5,1]] with det -1.25
	gCon := [NDIM][NDIM]float64{
		{-0.8, 0.4, 0, 0},
		{0.4, 0.8, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 0.5},
	}
	for k := 0; k < N; k++ {
		for mu := 0; mu < NDIM; mu++ {
			for nu := 0; nu < NDIM; nu++ {
				m.GCov[mu][nu][k] = gCov[mu][nu]
				m.GCon[mu][nu][k] = gCon[mu][nu]
			}
		}
		m.G[k] = 1.5811388300841898
		m.Alpha[k] = 1.118033988749895
	}
	return
}

func TestTensor(t *testing.T) {
	var (
		N = 5
		m = boostedMetric(N)
	)
	{ // Lower then raise returns the original vector
		v := NewCon(N)
		for k := 0; k < N; k++ {
			v[0][k], v[1][k], v[2][k], v[3][k] = 1+float64(k), 0.1*float64(k), -0.3, 2
		}
		vCov := NewCov(N)
		Lower(m, v, vCov, 0, N)
		vBack := NewCon(N)
		Raise(m, vCov, vBack, 0, N)
		for k := 0; k < N; k++ {
			for mu := 0; mu < NDIM; mu++ {
				assert.InDelta(t, v[mu][k], vBack[mu][k], 1.e-14)
			}
		}
		// Check one lowered component by hand
		assert.InDelta(t, -1*v[0][2]+0.5*v[1][2], vCov[0][2], 1.e-15)
		assert.InDelta(t, 2*v[3][2], vCov[3][2], 1.e-15)
	}
	{ // Contraction
		v, w := NewCon(N), NewCov(N)
		for k := 0; k < N; k++ {
			for mu := 0; mu < NDIM; mu++ {
				v[mu][k] = float64(mu + 1)
				w[mu][k] = float64(k)
			}
		}
		out := make([]float64, N)
		Contract(v, w, out, 0, N)
		for k := 0; k < N; k++ {
			assert.Equal(t, 10*float64(k), out[k])
		}
		assert.Equal(t, [NDIM]float64{1, 2, 3, 4}, v.At(3))
		assert.Equal(t, [NDIM]float64{3, 3, 3, 3}, w.At(3))
	}
	{ // Partial ranges leave the rest untouched
		v, out := NewCon(N), NewCov(N)
		for k := 0; k < N; k++ {
			v[0][k] = 1
		}
		Lower(m, v, out, 1, 3)
		assert.Equal(t, 0., out[0][0])
		assert.Equal(t, -1., out[0][1])
		assert.Equal(t, 0., out[0][4])
	}
	{ // Length mismatch is a precondition violation
		assert.Panics(t, func() { Lower(m, NewCon(N), NewCov(N+1), 0, N) })
	}
}
