package mapbox

import (
	"context"
	"fmt"
	"math"

	"github.com/couchcryptid/storm-incident-reports/internal/domain"
	"github.com/couchcryptid/storm-incident-reports/internal/observability"
	lru "github.com/hashicorp/golang-lru/v2"
)

// keyPrecision rounds coordinates to roughly 11 m before caching, so repeated
// reports from the same spot share one lookup.
const keyPrecision = 1e4

// CachedGeocoder wraps a Geocoder with a bounded LRU cache.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lru.Cache[string, domain.GeocodingResult]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator holding at most maxEntries results.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) (*CachedGeocoder, error) {
	cache, err := lru.New[string, domain.GeocodingResult](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("geocode cache: %w", err)
	}
	return &CachedGeocoder{inner: inner, cache: cache, metrics: metrics}, nil
}

func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	key := cacheKey(lat, lon)
	if result, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return result, err
	}
	// Empty answers are not cached so a later lookup can succeed.
	if result.FormattedAddress != "" {
		c.cache.Add(key, result)
	}
	return result, nil
}

func (c *CachedGeocoder) len() int {
	return c.cache.Len()
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", math.Round(lat*keyPrecision)/keyPrecision, math.Round(lon*keyPrecision)/keyPrecision)
}
