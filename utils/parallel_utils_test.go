package utils

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				histo[kMax-kMin]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Partitions tile the index range in order
		pm := NewPartitionMap(5, 23)
		var next int
		for np := 0; np < pm.ParallelDegree; np++ {
			kMin, kMax := pm.GetBucketRange(np)
			assert.Equal(t, next, kMin)
			next = kMax
		}
		assert.Equal(t, 23, next)
	}
}

func TestParallelFor(t *testing.T) {
	defer goleak.VerifyNone(t)
	{ // Every index is visited exactly once, for any shard count
		for _, procs := range []int{0, 1, 3, 8, 100} {
			var (
				N      = 97
				visits = make([]int32, N)
			)
			err := ParallelFor(procs, N, func(kMin, kMax int) error {
				for k := kMin; k < kMax; k++ {
					atomic.AddInt32(&visits[k], 1)
				}
				return nil
			})
			assert.NoError(t, err)
			for k := 0; k < N; k++ {
				assert.Equal(t, int32(1), visits[k])
			}
		}
	}
	{ // An error in any shard is returned
		var (
			errShard = errors.New("bad shard")
		)
		err := ParallelFor(4, 100, func(kMin, kMax int) error {
			if kMin <= 60 && 60 < kMax {
				return errShard
			}
			return nil
		})
		assert.ErrorIs(t, err, errShard)
	}
	{ // A panic in a shard reaches the caller, after every shard is done
		var done int32
		assert.PanicsWithValue(t, "bad index", func() {
			_ = ParallelFor(4, 100, func(kMin, kMax int) error {
				defer atomic.AddInt32(&done, 1)
				if kMin <= 60 && 60 < kMax {
					panic("bad index")
				}
				return nil
			})
		})
		assert.Equal(t, int32(4), atomic.LoadInt32(&done))
		assert.Panics(t, func() {
			ParallelApply(3, 10, func(kMin, kMax int) { panic(fmt.Errorf("shard %d", kMin)) })
		})
	}
	{ // Degenerate ranges
		assert.NoError(t, ParallelFor(4, 0, func(kMin, kMax int) error {
			return errors.New("should not be called")
		}))
		assert.Equal(t, 1, ParallelDegree(0, 1))
		assert.Equal(t, 3, ParallelDegree(3, 1000))
		var sum int64
		ParallelApply(2, 10, func(kMin, kMax int) {
			atomic.AddInt64(&sum, int64(kMax-kMin))
		})
		assert.Equal(t, int64(10), sum)
	}
}
