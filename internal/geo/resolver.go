package geo

import (
	"fmt"
	"sync"

	"remindbot/internal/timerule"

	"github.com/ringsaturn/tzf"
	"go.uber.org/zap"
)

// Finder looks up the IANA zone containing a point. Longitude comes first,
// matching tzf.
type Finder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// Resolver maps a shared location to a timezone name
type Resolver struct {
	once   sync.Once
	finder Finder
	err    error
	logger *zap.Logger
}

// NewResolver creates a resolver backed by tzf's bundled polygons. The data
// set is loaded on first use.
func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// NewResolverWithFinder creates a resolver over an existing finder
func NewResolverWithFinder(finder Finder, logger *zap.Logger) *Resolver {
	r := &Resolver{finder: finder, logger: logger}
	r.once.Do(func() {})
	return r
}

func (r *Resolver) load() (Finder, error) {
	r.once.Do(func() {
		f, err := tzf.NewDefaultFinder()
		if err != nil {
			r.err = fmt.Errorf("load timezone polygons: %w", err)
			return
		}
		r.finder = f
	})
	return r.finder, r.err
}

// TimezoneFor returns the zone at lat/lng, or UTC when the point is outside
// every zone, out of range, or the data set failed to load.
func (r *Resolver) TimezoneFor(lat, lng float64) string {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		r.logger.Warn("Location out of range, using UTC",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng))
		return timerule.DefaultLocation
	}

	finder, err := r.load()
	if err != nil {
		r.logger.Error("Timezone lookup unavailable, using UTC", zap.Error(err))
		return timerule.DefaultLocation
	}

	name := finder.GetTimezoneName(lng, lat)
	if name == "" {
		return timerule.DefaultLocation
	}
	return name
}
