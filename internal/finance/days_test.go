package finance

import (
	"testing"
	"time"

	"carrental-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentalDays(t *testing.T) {
	pickup := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		drop time.Time
		want int
	}{
		{"Same instant", pickup, 1},
		{"Two hours", pickup.Add(2 * time.Hour), 1},
		{"Exactly one day", pickup.Add(24 * time.Hour), 1},
		{"Exactly two days", pickup.Add(48 * time.Hour), 2},
		{"Started third day", pickup.Add(49 * time.Hour), 3},
		{"Across month boundary", time.Date(2024, 2, 5, 10, 0, 0, 0, time.UTC), 21},
		{"Leap day", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), 46},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := RentalDays(pickup, tt.drop)
			require.NoError(t, err)
			assert.Equal(t, tt.want, days)
		})
	}

	t.Run("Drop before pickup", func(t *testing.T) {
		_, err := RentalDays(pickup, pickup.Add(-time.Hour))
		require.Error(t, err)
		assert.True(t, domain.IsInvalidInput(err))
	})
}

func TestExtensionDays(t *testing.T) {
	drop := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, ExtensionDays(drop, drop))
	assert.Equal(t, 0, ExtensionDays(drop, drop.Add(-48*time.Hour)))
	assert.Equal(t, 1, ExtensionDays(drop, drop.Add(3*time.Hour)))
	assert.Equal(t, 2, ExtensionDays(drop, drop.Add(48*time.Hour)))
}
