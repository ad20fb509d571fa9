package idalloc

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIncrements(t *testing.T) {
	a := NewSeeded(41)
	assert.Equal(t, int64(42), a.Next())
	assert.Equal(t, int64(43), a.Next())
}

func TestNewIsSeededFromClock(t *testing.T) {
	a := New()
	first := a.Next()
	assert.Greater(t, first, int64(1_600_000_000_000_000))
	assert.Greater(t, a.Next(), first)
}

func TestNewMilliIsSeededInMilliseconds(t *testing.T) {
	before := time.Now().UnixMilli()
	first := NewMilli().Next()
	after := time.Now().UnixMilli()

	assert.Greater(t, first, before)
	assert.LessOrEqual(t, first, after+1)
}

func TestNextIsUniqueAcrossGoroutines(t *testing.T) {
	a := NewSeeded(0)
	const workers, perWorker = 8, 500

	ids := make(chan int64, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				ids <- a.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, workers*perWorker)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
}
