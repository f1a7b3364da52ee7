// Package pool hands out catalog image URLs in shuffled cycles.
//
// Every URL is returned once before any URL repeats; each cycle is an
// independent Fisher-Yates permutation of the catalog.
package pool

import "math/rand/v2"

// FallbackURL is returned when the catalog is empty
// The image cache resolves it to a locally generated placeholder
const FallbackURL = "placeholder:favicon"

// Pool is a per-session URL allocator
// Not safe for concurrent use; owned by the frame goroutine
type Pool struct {
	images    []string
	available []int
	used      map[int]struct{}
	fallback  string
	rng       *rand.Rand
}

// New creates a pool over urls
// A nil rng uses a randomly seeded source
func New(urls []string, rng *rand.Rand) *Pool {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	p := &Pool{
		fallback: FallbackURL,
		rng:      rng,
	}
	p.Reset(urls)
	return p
}

// Reset replaces the catalog and starts a fresh cycle
func (p *Pool) Reset(urls []string) {
	p.images = append(p.images[:0:0], urls...)
	p.available = p.available[:0]
	p.used = make(map[int]struct{}, len(urls))
}

// Len returns the catalog size
func (p *Pool) Len() int {
	return len(p.images)
}

// Used returns how many distinct catalog entries were handed out in the current cycle
func (p *Pool) Used() int {
	return len(p.used)
}

// Next returns the next URL of the current cycle
func (p *Pool) Next() string {
	if len(p.images) == 0 {
		return p.fallback
	}

	if len(p.available) == 0 {
		p.refill()
	}

	last := len(p.available) - 1
	idx := p.available[last]
	p.available = p.available[:last]
	p.used[idx] = struct{}{}

	return p.images[idx]
}

// refill loads the full index range and shuffles it
func (p *Pool) refill() {
	n := len(p.images)
	if cap(p.available) < n {
		p.available = make([]int, n)
	}
	p.available = p.available[:n]
	for i := range p.available {
		p.available[i] = i
	}

	// Fisher-Yates
	for i := n - 1; i > 0; i-- {
		j := p.rng.IntN(i + 1)
		p.available[i], p.available[j] = p.available[j], p.available[i]
	}

	clear(p.used)
}
