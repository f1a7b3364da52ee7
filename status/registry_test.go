package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryStablePointers(t *testing.T) {
	r := NewRegistry()
	a := r.Int("frame.drawn")
	a.Store(7)
	assert.Same(t, a, r.Int("frame.drawn"))
	assert.Equal(t, int64(7), r.Int("frame.drawn").Load())

	f := r.Float("frame.ms")
	f.Set(12.5)
	assert.Same(t, f, r.Float("frame.ms"))
	assert.Equal(t, 12.5, r.Float("frame.ms").Get())
}

func TestRegistryLines(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Lines())

	r.Int("tiles.pending").Store(3)
	r.Float("frame.ms").Set(4.256)
	r.Int("frame.drawn").Store(12)

	assert.Equal(t, []string{
		"frame.drawn    12",
		"frame.ms       4.26",
		"tiles.pending  3",
	}, r.Lines())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.Int("hits").Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8000), r.Int("hits").Load())
}
