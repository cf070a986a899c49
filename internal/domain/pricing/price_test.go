package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPrice(t *testing.T) {
	entries := []PriceEntry{
		{VehicleType: VehicleSedan, SeasonName: SeasonOff, Price: 4500, IsActive: true},
		{VehicleType: VehicleSedan, SeasonName: SeasonPeak, Price: 6000, IsActive: true},
		{VehicleType: VehicleSUVNormal, SeasonName: SeasonOff, Price: 7000, IsActive: true},
		{VehicleType: VehicleSUVDeluxe, SeasonName: SeasonPeak, Price: 9500, IsActive: false},
	}

	t.Run("exact match", func(t *testing.T) {
		price, err := LookupPrice(entries, VehicleSedan, SeasonPeak)
		require.NoError(t, err)
		assert.Equal(t, int64(6000), price)
	})

	t.Run("peak falls back to off-season", func(t *testing.T) {
		price, err := LookupPrice(entries, VehicleSUVNormal, SeasonPeak)
		require.NoError(t, err)
		assert.Equal(t, int64(7000), price)
	})

	t.Run("off-season does not fall back", func(t *testing.T) {
		_, err := LookupPrice(entries, VehicleSUVDeluxe, SeasonOff)
		assert.ErrorIs(t, err, ErrPriceNotConfigured)
	})

	t.Run("inactive entries are invisible", func(t *testing.T) {
		_, err := LookupPrice(entries, VehicleSUVDeluxe, SeasonPeak)
		assert.ErrorIs(t, err, ErrPriceNotConfigured)
	})

	t.Run("unknown vehicle is not configured", func(t *testing.T) {
		_, err := LookupPrice(entries, VehicleSUVLuxury, SeasonOff)
		assert.ErrorIs(t, err, ErrPriceNotConfigured)
	})

	t.Run("zero price is a real price", func(t *testing.T) {
		free := []PriceEntry{
			{VehicleType: VehicleSedan, SeasonName: SeasonOff, Price: 0, IsActive: true},
		}
		price, err := LookupPrice(free, VehicleSedan, SeasonOff)
		require.NoError(t, err)
		assert.Equal(t, int64(0), price)
	})
}

func TestVehicleType(t *testing.T) {
	assert.True(t, VehicleSedan.IsValid())
	assert.True(t, VehicleSUVLuxury.IsValid())
	assert.False(t, VehicleType("tempo").IsValid())
	assert.False(t, VehicleType("").IsValid())

	assert.Equal(t, "Sedan", VehicleSedan.DisplayName())
	assert.Equal(t, "SUV", VehicleSUVNormal.DisplayName())
	assert.Equal(t, "tempo", VehicleType("tempo").DisplayName(), "unknown types echo the raw value")

	assert.Equal(t, 4, VehicleSedan.Capacity())
	assert.Equal(t, 6, VehicleSUVNormal.Capacity())
	assert.Equal(t, 7, VehicleSUVDeluxe.Capacity())
	assert.Equal(t, 7, VehicleSUVLuxury.Capacity())
	assert.Equal(t, 4, VehicleType("tempo").Capacity())
}
