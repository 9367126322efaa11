package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubFinder map[[2]float64]string

func (s stubFinder) GetTimezoneName(lng, lat float64) string {
	return s[[2]float64{lng, lat}]
}

func TestResolver_TimezoneForStub(t *testing.T) {
	finder := stubFinder{
		{37.6173, 55.7558}: "Europe/Moscow",
	}
	r := NewResolverWithFinder(finder, zap.NewNop())

	tests := []struct {
		name     string
		lat, lng float64
		want     string
	}{
		{name: "known point", lat: 55.7558, lng: 37.6173, want: "Europe/Moscow"},
		{name: "no zone", lat: 0, lng: 0, want: "UTC"},
		{name: "latitude out of range", lat: 91, lng: 0, want: "UTC"},
		{name: "longitude out of range", lat: 0, lng: -181, want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.TimezoneFor(tt.lat, tt.lng))
		})
	}
}

func TestResolver_TimezoneForBundledData(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the polygon data set")
	}
	r := NewResolver(zap.NewNop())

	tests := []struct {
		name     string
		lat, lng float64
		want     string
	}{
		{name: "Moscow", lat: 55.7558, lng: 37.6173, want: "Europe/Moscow"},
		{name: "Tokyo", lat: 35.6762, lng: 139.6503, want: "Asia/Tokyo"},
		{name: "New York", lat: 40.7128, lng: -74.0060, want: "America/New_York"},
		{name: "Berlin", lat: 52.52, lng: 13.405, want: "Europe/Berlin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.TimezoneFor(tt.lat, tt.lng))
		})
	}
}
