package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nilgiri-travels/service-booking/internal/domain"
	bookingDomain "github.com/nilgiri-travels/service-booking/internal/domain/booking"
	"github.com/nilgiri-travels/service-booking/internal/domain/pricing"
)

func quoteFixture() (*PricingService, *fakeSeasonRepo, *fakePriceRepo) {
	seasons := &fakeSeasonRepo{}
	prices := &fakePriceRepo{entries: []pricing.PriceEntry{
		{VehicleType: pricing.VehicleSedan, SeasonName: pricing.SeasonOff, Price: 4500, IsActive: true},
		{VehicleType: pricing.VehicleSUVNormal, SeasonName: pricing.SeasonOff, Price: 7000, IsActive: true},
	}}
	return NewPricingService(seasons, prices, zap.NewNop()), seasons, prices
}

func TestQuote(t *testing.T) {
	svc, _, _ := quoteFixture()

	result, err := svc.Quote(context.Background(), QuoteRequest{
		PackageID:   uuid.New(),
		VehicleType: "sedan",
		TravelDate:  time.Now().AddDate(0, 0, 5).Format(bookingDomain.DateLayout),
	})
	require.NoError(t, err)

	assert.Equal(t, pricing.SeasonOff, result.SeasonName)
	assert.Equal(t, int64(4500), result.TotalAmount)
	assert.Equal(t, int64(1125), result.AdvanceAmount)
	assert.Equal(t, int64(3375), result.RemainingAmount)
	assert.Equal(t, "₹4,500", result.TotalDisplay)
	assert.Equal(t, "₹1,125", result.AdvanceDisplay)
	assert.Equal(t, "Sedan", result.VehicleName)
}

func TestQuote_PeakFallsBackToOffSeason(t *testing.T) {
	svc, seasons, _ := quoteFixture()
	when := time.Now().AddDate(0, 0, 5)
	seasons.seasons = []pricing.Season{{
		Name:      pricing.SeasonPeak,
		StartDate: when.AddDate(0, 0, -1),
		EndDate:   when.AddDate(0, 0, 1),
		IsActive:  true,
	}}

	result, err := svc.Quote(context.Background(), QuoteRequest{
		PackageID:   uuid.New(),
		VehicleType: "suv_normal",
		TravelDate:  when.Format(bookingDomain.DateLayout),
	})
	require.NoError(t, err)

	// No peak row for this vehicle, so the off-season price applies while
	// the resolved season name stays "Season".
	assert.Equal(t, pricing.SeasonPeak, result.SeasonName)
	assert.Equal(t, int64(7000), result.TotalAmount)
}

func TestQuote_Errors(t *testing.T) {
	svc, _, _ := quoteFixture()
	futureDate := time.Now().AddDate(0, 0, 5).Format(bookingDomain.DateLayout)

	t.Run("invalid vehicle type", func(t *testing.T) {
		_, err := svc.Quote(context.Background(), QuoteRequest{
			PackageID: uuid.New(), VehicleType: "tempo", TravelDate: futureDate,
		})
		var domainErr *domain.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.KindValidation, domainErr.Kind)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := svc.Quote(context.Background(), QuoteRequest{
			PackageID: uuid.New(), VehicleType: "sedan", TravelDate: "15-09-2026",
		})
		var domainErr *domain.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.KindValidation, domainErr.Kind)
	})

	t.Run("price not configured", func(t *testing.T) {
		_, err := svc.Quote(context.Background(), QuoteRequest{
			PackageID: uuid.New(), VehicleType: "suv_luxury", TravelDate: futureDate,
		})
		var domainErr *domain.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.KindNotFound, domainErr.Kind)
	})
}

func TestSeasonInputValidation(t *testing.T) {
	svc, _, _ := quoteFixture()

	t.Run("unknown season name", func(t *testing.T) {
		_, err := svc.CreateSeason(context.Background(), SeasonInput{
			Name: "Monsoon", StartDate: "2026-06-01", EndDate: "2026-08-31", IsActive: true,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"Season" or "Off-Season"`)
	})

	t.Run("reversed fixed range", func(t *testing.T) {
		_, err := svc.CreateSeason(context.Background(), SeasonInput{
			Name: pricing.SeasonPeak, StartDate: "2026-06-01", EndDate: "2026-05-01", IsActive: true,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "end date must not be before start date")
	})

	t.Run("reversed recurring range wraps the year", func(t *testing.T) {
		_, err := svc.CreateSeason(context.Background(), SeasonInput{
			Name: pricing.SeasonPeak, StartDate: "2026-11-01", EndDate: "2026-02-28",
			IsRecurring: true, IsActive: true,
		})
		require.NoError(t, err)
	})

	t.Run("valid season", func(t *testing.T) {
		result, err := svc.CreateSeason(context.Background(), SeasonInput{
			Name: pricing.SeasonPeak, StartDate: "2026-04-01", EndDate: "2026-06-15", IsActive: true,
		})
		require.NoError(t, err)
		assert.Equal(t, pricing.SeasonPeak, result.Name)
		assert.Equal(t, "2026-04-01", result.StartDate)
	})
}

func TestPriceInputValidation(t *testing.T) {
	svc, _, _ := quoteFixture()

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := svc.CreatePrice(context.Background(), PriceInput{
			PackageID: uuid.New(), VehicleType: "sedan",
			SeasonName: pricing.SeasonOff, Price: -100, IsActive: true,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be negative")
	})

	t.Run("zero price is a configured price", func(t *testing.T) {
		result, err := svc.CreatePrice(context.Background(), PriceInput{
			PackageID: uuid.New(), VehicleType: "sedan",
			SeasonName: pricing.SeasonOff, Price: 0, IsActive: true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Price)
		assert.Equal(t, "₹0", result.PriceDisplay)
	})

	t.Run("rejects unknown vehicle", func(t *testing.T) {
		_, err := svc.CreatePrice(context.Background(), PriceInput{
			PackageID: uuid.New(), VehicleType: "tempo",
			SeasonName: pricing.SeasonOff, Price: 4500, IsActive: true,
		})
		require.Error(t, err)
	})

	t.Run("valid price", func(t *testing.T) {
		result, err := svc.CreatePrice(context.Background(), PriceInput{
			PackageID: uuid.New(), VehicleType: "sedan",
			SeasonName: pricing.SeasonPeak, Price: 6000, IsActive: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "₹6,000", result.PriceDisplay)
	})
}
