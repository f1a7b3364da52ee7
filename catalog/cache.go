package catalog

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/lixenwraith/photowall/constants"
)

// ResultCache keeps search results per query for a TTL
type ResultCache struct {
	cache *ristretto.Cache[string, []Hit]
	ttl   time.Duration
}

// NewResultCache creates a cache holding up to maxHits hits in total
func NewResultCache(maxHits int64, ttl time.Duration) (*ResultCache, error) {
	if ttl <= 0 {
		ttl = constants.CatalogCacheTTL
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, []Hit]{
		NumCounters: 10 * maxHits,
		MaxCost:     maxHits,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: create cache: %w", err)
	}
	return &ResultCache{cache: cache, ttl: ttl}, nil
}

// Get returns cached hits for q
func (rc *ResultCache) Get(q Query) ([]Hit, bool) {
	rc.cache.Wait()
	return rc.cache.Get(q.Key())
}

// Set stores hits for q; cost is the hit count
func (rc *ResultCache) Set(q Query, hits []Hit) {
	cost := int64(len(hits))
	if cost == 0 {
		cost = 1
	}
	rc.cache.SetWithTTL(q.Key(), hits, cost, rc.ttl)
	rc.cache.Wait()
}

// Close releases the cache goroutines
func (rc *ResultCache) Close() {
	rc.cache.Close()
}
