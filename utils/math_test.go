package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMath(t *testing.T) {
	{ // Kronecker delta
		for mu := 0; mu < 4; mu++ {
			for nu := 0; nu < 4; nu++ {
				if mu == nu {
					assert.Equal(t, 1., DELTA(mu, nu))
				} else {
					assert.Equal(t, 0., DELTA(mu, nu))
				}
			}
		}
	}
	{ // Sign
		assert.Equal(t, 1., Sign(3))
		assert.Equal(t, -1., Sign(-1e-300))
		assert.Equal(t, 0., Sign(0))
	}
	{ // Integer powers
		for p := -10; p <= 10; p++ {
			assert.InDelta(t, math.Pow(1.3, float64(p)), POW(1.3, p), 1.e-12)
		}
	}
}

func TestFirstNonFinite(t *testing.T) {
	assert.Equal(t, -1, FirstNonFinite([]float64{1, 2, 3}))
	assert.Equal(t, 1, FirstNonFinite([]float64{1, math.NaN(), math.Inf(1)}))
	assert.Equal(t, 0, FirstNonFinite([]float64{math.Inf(-1)}))
	assert.Equal(t, -1, FirstNonFinite(nil))
	assert.Contains(t, GetMemUsage(), "MiB")
}
