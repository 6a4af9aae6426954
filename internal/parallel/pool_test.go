package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteAllRunsEverything(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var count atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { count.Add(1) }
	}
	pool.ExecuteAll(work)

	assert.Equal(t, int64(100), count.Load())
}

func TestExecuteAllReraisesPanic(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var ran atomic.Int64
	work := []func(){
		func() { ran.Add(1) },
		func() { panic("boom") },
		func() { ran.Add(1) },
	}

	require.PanicsWithValue(t, "boom", func() { pool.ExecuteAll(work) })
	assert.Equal(t, int64(2), ran.Load())
}

func TestExecuteAllAfterCloseRunsInline(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	ran := false
	pool.ExecuteAll([]func(){func() { ran = true }})
	assert.True(t, ran)
}

func TestForEachCoversRangeOnce(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	for _, n := range []int{1, 2, 7, 100, 1001} {
		hits := make([]int32, n)
		ForEach(pool, n, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			require.Equal(t, int32(1), h, "n=%d index=%d", n, i)
		}
	}
}

func TestForEachNilPoolRunsInline(t *testing.T) {
	var calls int
	ForEach(nil, 10, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, 1, calls)
}
