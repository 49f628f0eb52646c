package kernel_test

import (
	"testing"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"riyadh", 24.7136, 46.6753, false},
		{"boundary min", -90, -180, false},
		{"boundary max", 90, 180, false},
		{"latitude too high", 90.5, 0, true},
		{"latitude too low", -91, 0, true},
		{"longitude too high", 0, 180.1, true},
		{"longitude too low", 0, -181, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tt.lat, tt.lon)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.lat, p.Latitude(), 1e-9)
			assert.InDelta(t, tt.lon, p.Longitude(), 1e-9)
		})
	}
}

func TestGeoPoint_Validate_ZeroValue(t *testing.T) {
	var p kernel.GeoPoint
	require.Error(t, p.Validate())
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, _ := kernel.NewGeoPoint(24.7136, 46.6753)
	b, _ := kernel.NewGeoPoint(24.7136, 46.6753)
	c, _ := kernel.NewGeoPoint(21.4858, 39.1925)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)

	var zero kernel.GeoPoint
	_, err = a.IsEqual(zero)
	require.Error(t, err)
}
