package rotato

import (
	"sync"
	"testing"

	"github.com/zeebo/assert"
)

func TestCounter(t *testing.T) {
	var ctr Counter
	assert.Equal(t, ctr.Refs(), 0)

	ctr.Acquire()
	ctr.Acquire()
	assert.Equal(t, ctr.Refs(), 2)

	ctr.Release()
	assert.Equal(t, ctr.Refs(), 1)
	ctr.Release()
	assert.Equal(t, ctr.Refs(), 0)
}

func TestCounterConcurrent(t *testing.T) {
	const (
		goroutines = 8
		rounds     = 10000
	)

	var ctr Counter
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				ctr.Acquire()
				ctr.Release()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, ctr.Refs(), 0)
}
