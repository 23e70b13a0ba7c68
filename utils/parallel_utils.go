package utils

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// Splits one dimension into ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// ParallelDegree resolves a process limit into a shard count for maxIndex
// items: 0 means one shard per CPU, and there are never more shards than items
func ParallelDegree(ProcLimit, maxIndex int) (NP int) {
	if ProcLimit > 0 {
		NP = ProcLimit
	} else {
		NP = runtime.NumCPU()
	}
	if NP > maxIndex {
		NP = maxIndex
	}
	if NP < 1 {
		NP = 1
	}
	return
}

// ParallelFor partitions [0, maxIndex) into shards and runs kernel on each
// shard concurrently. The first error returned by any shard is returned
// after all shards complete, a panic in any shard is raised again on the
// caller.
func ParallelFor(ProcLimit, maxIndex int, kernel func(kMin, kMax int) error) (err error) {
	if maxIndex <= 0 {
		return
	}
	var (
		NP = ParallelDegree(ProcLimit, maxIndex)
	)
	if NP == 1 {
		return kernel(0, maxIndex)
	}
	var (
		pm        = NewPartitionMap(NP, maxIndex)
		eg        errgroup.Group
		panicOnce sync.Once
		panicVal  any
	)
	for np := 0; np < NP; np++ {
		kMin, kMax := pm.GetBucketRange(np)
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() { panicVal = r })
					err = fmt.Errorf("shard [%d, %d) panicked: %v", kMin, kMax, r)
				}
			}()
			return kernel(kMin, kMax)
		})
	}
	err = eg.Wait()
	if panicVal != nil {
		// Shard panics are raised again on the calling goroutine
		panic(panicVal)
	}
	return
}

// ParallelApply is ParallelFor for kernels that cannot fail
func ParallelApply(ProcLimit, maxIndex int, kernel func(kMin, kMax int)) {
	_ = ParallelFor(ProcLimit, maxIndex, func(kMin, kMax int) error {
		kernel(kMin, kMax)
		return nil
	})
}
