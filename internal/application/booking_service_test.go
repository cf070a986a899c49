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
	"github.com/nilgiri-travels/service-booking/internal/events"
)

// --- In-memory fakes ---

type fakeBookingRepo struct {
	byID     map[uuid.UUID]*bookingDomain.Booking
	saveErr  error
	saveCnt  int
	updErr   error
	statuses map[string]int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	bk, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return bk, nil
}

func (r *fakeBookingRepo) FindByNumber(_ context.Context, number string) (*bookingDomain.Booking, error) {
	for _, bk := range r.byID {
		if bk.BookingNumber() == number {
			return bk, nil
		}
	}
	return nil, domain.NewNotFoundError("Booking", number)
}

func (r *fakeBookingRepo) FindByPhone(_ context.Context, phone string, _, _ int) ([]*bookingDomain.Booking, int64, error) {
	var out []*bookingDomain.Booking
	for _, bk := range r.byID {
		if bk.Phone() == phone {
			out = append(out, bk)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) FindByTravelDate(_ context.Context, _ time.Time) ([]*bookingDomain.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) ListAll(_ context.Context, _, _ int) ([]*bookingDomain.Booking, int64, error) {
	var out []*bookingDomain.Booking
	for _, bk := range r.byID {
		out = append(out, bk)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	return r.statuses, nil
}

func (r *fakeBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	r.saveCnt++
	if r.saveErr != nil {
		err := r.saveErr
		r.saveErr = nil // Fail once, then succeed.
		return err
	}
	r.byID[bk.ID()] = bk
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	if r.updErr != nil {
		return r.updErr
	}
	r.byID[bk.ID()] = bk
	return nil
}

type fakeSeasonRepo struct {
	seasons []pricing.Season
}

func (r *fakeSeasonRepo) ListActive(_ context.Context) ([]pricing.Season, error) {
	return r.seasons, nil
}
func (r *fakeSeasonRepo) ListAll(_ context.Context) ([]pricing.SeasonRecord, error) {
	return nil, nil
}
func (r *fakeSeasonRepo) FindByID(_ context.Context, id uuid.UUID) (*pricing.SeasonRecord, error) {
	return nil, domain.NewNotFoundError("Season", id.String())
}
func (r *fakeSeasonRepo) Save(_ context.Context, _ *pricing.SeasonRecord) error   { return nil }
func (r *fakeSeasonRepo) Update(_ context.Context, _ *pricing.SeasonRecord) error { return nil }
func (r *fakeSeasonRepo) Delete(_ context.Context, _ uuid.UUID) error             { return nil }

type fakePriceRepo struct {
	entries []pricing.PriceEntry
}

func (r *fakePriceRepo) ListActiveByPackage(_ context.Context, _ uuid.UUID) ([]pricing.PriceEntry, error) {
	return r.entries, nil
}
func (r *fakePriceRepo) ListByPackage(_ context.Context, _ uuid.UUID) ([]pricing.PriceRecord, error) {
	return nil, nil
}
func (r *fakePriceRepo) FindByID(_ context.Context, id uuid.UUID) (*pricing.PriceRecord, error) {
	return nil, domain.NewNotFoundError("Price", id.String())
}
func (r *fakePriceRepo) Save(_ context.Context, _ *pricing.PriceRecord) error   { return nil }
func (r *fakePriceRepo) Update(_ context.Context, _ *pricing.PriceRecord) error { return nil }
func (r *fakePriceRepo) Delete(_ context.Context, _ uuid.UUID) error            { return nil }

type fakePublisher struct {
	published []events.CloudEvent
	topics    []string
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic string, event events.CloudEvent) error {
	p.published = append(p.published, event)
	p.topics = append(p.topics, topic)
	return nil
}

func (p *fakePublisher) lastType() string {
	if len(p.published) == 0 {
		return ""
	}
	return p.published[len(p.published)-1].Type
}

// --- Fixtures ---

func testStack(t *testing.T) (*BookingService, *fakeBookingRepo, *fakePublisher) {
	t.Helper()
	repo := newFakeBookingRepo()
	seasons := &fakeSeasonRepo{}
	prices := &fakePriceRepo{entries: []pricing.PriceEntry{
		{VehicleType: pricing.VehicleSedan, SeasonName: pricing.SeasonOff, Price: 4500, IsActive: true},
		{VehicleType: pricing.VehicleSedan, SeasonName: pricing.SeasonPeak, Price: 6000, IsActive: true},
	}}
	publisher := &fakePublisher{}
	svc := NewBookingService(repo, seasons, prices, publisher, zap.NewNop(), 24)
	return svc, repo, publisher
}

func validRequest() CreateBookingRequest {
	when := time.Now().AddDate(0, 0, 7)
	return CreateBookingRequest{
		CustomerName:   "Meena Krishnan",
		Phone:          "+919876543210",
		Email:          "meena@example.com",
		PackageID:      uuid.New(),
		VehicleType:    "sedan",
		TravelDate:     when.Format(bookingDomain.DateLayout),
		TravelTime:     "06:30",
		PickupLocation: "Coimbatore Airport",
	}
}

// --- Tests ---

func TestCreateBooking(t *testing.T) {
	svc, repo, publisher := testStack(t)

	result, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^NT-\d{8}-[A-Z0-9]{4}$`, result.BookingNumber)
	assert.Equal(t, "pending", result.Status)
	assert.Equal(t, pricing.SeasonOff, result.SeasonName)
	assert.Equal(t, int64(4500), result.TotalAmount)
	assert.Equal(t, int64(1125), result.AdvanceAmount)
	assert.Equal(t, int64(3375), result.RemainingAmount)
	assert.Equal(t, "9876543210", result.Phone)
	assert.Equal(t, "₹4,500", result.TotalDisplay)
	assert.Len(t, repo.byID, 1)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.BookingRequested, publisher.published[0].Type)
	assert.Equal(t, events.TopicBookingEvents, publisher.topics[0])
}

func TestCreateBooking_PeakSeasonPricing(t *testing.T) {
	svc, _, _ := testStack(t)
	req := validRequest()
	when, _ := time.ParseInLocation(bookingDomain.DateLayout, req.TravelDate, time.Local)

	seasons := &fakeSeasonRepo{seasons: []pricing.Season{{
		Name:      pricing.SeasonPeak,
		StartDate: when.AddDate(0, 0, -1),
		EndDate:   when.AddDate(0, 0, 1),
		IsActive:  true,
	}}}
	svc.seasons = seasons

	result, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, pricing.SeasonPeak, result.SeasonName)
	assert.Equal(t, int64(6000), result.TotalAmount)
	assert.Equal(t, int64(1500), result.AdvanceAmount)
}

func TestCreateBooking_RejectsShortNotice(t *testing.T) {
	svc, repo, _ := testStack(t)
	req := validRequest()
	soon := time.Now().Add(3 * time.Hour)
	req.TravelDate = soon.Format(bookingDomain.DateLayout)
	req.TravelTime = soon.Format(bookingDomain.TimeLayout)

	_, err := svc.CreateBooking(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "24 hours notice")
	assert.Empty(t, repo.byID)
}

func TestCreateBooking_PriceNotConfigured(t *testing.T) {
	svc, _, publisher := testStack(t)
	req := validRequest()
	req.VehicleType = "suv_luxury"

	_, err := svc.CreateBooking(context.Background(), req)
	require.Error(t, err)
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.KindNotFound, domainErr.Kind)
	assert.Empty(t, publisher.published, "nothing is published for a failed booking")
}

func TestCreateBooking_InvalidVehicleType(t *testing.T) {
	svc, _, _ := testStack(t)
	req := validRequest()
	req.VehicleType = "tempo"

	_, err := svc.CreateBooking(context.Background(), req)
	require.Error(t, err)
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.KindValidation, domainErr.Kind)
}

func TestCreateBooking_RetriesNumberCollision(t *testing.T) {
	svc, repo, _ := testStack(t)
	repo.saveErr = domain.NewConflictError("booking number already exists")

	result, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.saveCnt, "save is retried once on a number collision")
	assert.Len(t, repo.byID, 1)
	assert.NotEmpty(t, result.BookingNumber)
}

func TestConfirmBooking(t *testing.T) {
	svc, repo, publisher := testStack(t)
	created, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	result, err := svc.ConfirmBooking(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", result.Status)
	assert.NotNil(t, result.ConfirmedAt)
	assert.Equal(t, int64(2), result.Version)
	assert.Equal(t, events.BookingConfirmed, publisher.lastType())

	stored := repo.byID[created.ID]
	assert.Equal(t, bookingDomain.StatusConfirmed, stored.Status())
}

func TestConfirmBookingPayment_DelegatesToConfirm(t *testing.T) {
	svc, repo, _ := testStack(t)
	created, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmBookingPayment(context.Background(), created.ID))
	assert.Equal(t, bookingDomain.StatusConfirmed, repo.byID[created.ID].Status())
}

func TestConfirmBooking_NotFound(t *testing.T) {
	svc, _, _ := testStack(t)

	_, err := svc.ConfirmBooking(context.Background(), uuid.New())
	require.Error(t, err)
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.KindNotFound, domainErr.Kind)
}

func TestCompleteBooking_RequiresConfirmed(t *testing.T) {
	svc, _, _ := testStack(t)
	created, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.CompleteBooking(context.Background(), created.ID)
	require.Error(t, err, "pending bookings cannot complete")

	_, err = svc.ConfirmBooking(context.Background(), created.ID)
	require.NoError(t, err)

	result, err := svc.CompleteBooking(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)
}

func TestCancelBooking(t *testing.T) {
	svc, _, publisher := testStack(t)
	created, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	result, err := svc.CancelBooking(context.Background(), created.ID, "plans changed")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", result.Status)
	assert.Equal(t, "plans changed", result.CancelNote)
	assert.Equal(t, events.BookingCancelled, publisher.lastType())

	_, err = svc.CancelBooking(context.Background(), created.ID, "again")
	assert.Error(t, err, "cancelled is terminal")
}

func TestGetCustomerBookings(t *testing.T) {
	svc, _, _ := testStack(t)
	_, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	result, err := svc.GetCustomerBookings(context.Background(), "+91 98765 43210", 1, 20)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Total)

	_, err = svc.GetCustomerBookings(context.Background(), "12345", 1, 20)
	assert.Error(t, err, "invalid phone is rejected before hitting the repository")
}

func TestGetBookingByNumber(t *testing.T) {
	svc, _, _ := testStack(t)
	created, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	result, err := svc.GetBookingByNumber(context.Background(), created.BookingNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, result.ID)

	_, err = svc.GetBookingByNumber(context.Background(), "NT-20200101-ZZZZ")
	assert.Error(t, err)
}

func TestGetBookingStats(t *testing.T) {
	svc, repo, _ := testStack(t)
	repo.statuses = map[string]int64{"pending": 3, "confirmed": 2, "completed": 7}

	stats, err := svc.GetBookingStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalBookings)
	assert.Equal(t, int64(7), stats.ByStatus["completed"])
}
