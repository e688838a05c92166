package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingRepo "booklyo/database/repository/booking"
	establishmentRepo "booklyo/database/repository/establishment"
	"booklyo/models"
	"booklyo/security/crypto"
	"booklyo/services/audit"
)

// --- fakes ---

type fakeEstRepo struct {
	est *models.Establishment
}

func (f *fakeEstRepo) GetByID(_ context.Context, id string) (*models.Establishment, error) {
	if f.est == nil || f.est.ID != id {
		return nil, establishmentRepo.ErrNotFound
	}
	cp := *f.est
	return &cp, nil
}

func (f *fakeEstRepo) GetByOwnerUID(context.Context, string) (*models.Establishment, error) {
	return nil, establishmentRepo.ErrNotFound
}
func (f *fakeEstRepo) Create(context.Context, *models.Establishment) error { return nil }
func (f *fakeEstRepo) Update(context.Context, *models.Establishment) error { return nil }
func (f *fakeEstRepo) Delete(context.Context, string) error                { return nil }
func (f *fakeEstRepo) UpdateSchedule(context.Context, string, models.WeeklySchedule) error {
	return nil
}
func (f *fakeEstRepo) UpdateStaffSchedule(context.Context, string, string, models.WeeklySchedule) error {
	return nil
}
func (f *fakeEstRepo) UpsertService(context.Context, string, models.Service) error    { return nil }
func (f *fakeEstRepo) RemoveService(context.Context, string, string) error            { return nil }
func (f *fakeEstRepo) UpsertStaff(context.Context, string, models.StaffMember) error  { return nil }
func (f *fakeEstRepo) RemoveStaff(context.Context, string, string) error              { return nil }
func (f *fakeEstRepo) EnsureIndexes(context.Context) error                            { return nil }

type fakeBookingRepo struct {
	bookings []models.Booking
	nextID   int
}

func (f *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	f.nextID++
	if b.ID == "" {
		b.ID = "b-" + string(rune('0'+f.nextID))
	}
	if b.Status == "" {
		b.Status = models.BookingStatusConfirmed
	}
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			cp := f.bookings[i]
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeBookingRepo) ConfirmedStartsForDay(_ context.Context, estID, staffID string, dayStart, dayEnd time.Time) ([]time.Time, error) {
	var starts []time.Time
	for _, b := range f.bookings {
		if b.EstablishmentID != estID || b.StaffID != staffID {
			continue
		}
		if b.Status != models.BookingStatusConfirmed {
			continue
		}
		if b.Date.Before(dayStart) || !b.Date.Before(dayEnd) {
			continue
		}
		starts = append(starts, b.Date)
	}
	return starts, nil
}

func (f *fakeBookingRepo) ListForEntity(_ context.Context, estID, staffID string, from, to time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.EstablishmentID == estID && b.StaffID == staffID && !b.Date.Before(from) && b.Date.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = models.BookingStatusCancelled
			return nil
		}
	}
	return bookingRepo.ErrNotFound
}

func (f *fakeBookingRepo) EnsureIndexes(context.Context) error { return nil }

type recordingAudit struct {
	events []string
}

func (r *recordingAudit) Log(_ context.Context, eventType, _, _ string, _ map[string]any) {
	r.events = append(r.events, eventType)
}

// --- fixtures ---

func openAllWeek(start, end string) models.WeeklySchedule {
	ws := models.EmptyWeeklySchedule()
	for d := 0; d < 7; d++ {
		ws.SetEntry(models.ScheduleEntry{Day: models.Weekday(d), Enabled: true, Start: start, End: end})
	}
	return ws
}

func testService(t *testing.T) (*DefaultBookingService, *fakeBookingRepo, *recordingAudit) {
	t.Helper()
	est := &models.Establishment{
		ID:       "est-1",
		Name:     "Corner Barbers",
		Schedule: openAllWeek("09:00", "18:00"),
		Services: []models.Service{
			{ID: "svc-cut", Name: "Haircut", Price: 25, Duration: 30},
			{ID: "svc-full", Name: "Cut and shave", Price: 40, Duration: 60},
		},
		Staff: []models.StaffMember{
			{ID: "staff-a", Name: "Alex", Active: true},
			{ID: "staff-b", Name: "Sam", Active: true},
		},
	}
	repo := &fakeBookingRepo{}
	trail := &recordingAudit{}
	svc := &DefaultBookingService{
		EstRepo:     &fakeEstRepo{est: est},
		BookingRepo: repo,
		Audit:       trail,
		Logger:      zap.NewNop(),
		Now:         func() time.Time { return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC) },
	}
	return svc, repo, trail
}

var _ audit.AuditService = (*recordingAudit)(nil)

// --- tests ---

func TestGetAvailability(t *testing.T) {
	svc, repo, _ := testService(t)
	ctx := context.Background()

	resp, err := svc.GetAvailability(ctx, AvailabilityRequest{
		EstablishmentID: "est-1", ServiceID: "svc-cut", Date: "2026-03-02",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 18)
	assert.Equal(t, "09:00", resp.Slots[0])
	assert.Equal(t, "17:30", resp.Slots[len(resp.Slots)-1])
	assert.Equal(t, 30, resp.Duration)

	// An existing confirmed booking removes exactly its own slot.
	repo.bookings = append(repo.bookings, models.Booking{
		ID: "b-existing", EstablishmentID: "est-1", Status: models.BookingStatusConfirmed,
		Date: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	})
	resp, err = svc.GetAvailability(ctx, AvailabilityRequest{
		EstablishmentID: "est-1", ServiceID: "svc-cut", Date: "2026-03-02",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 17)
	assert.NotContains(t, resp.Slots, "10:00")
}

func TestOwnerAndStaffPoolsAreIsolated(t *testing.T) {
	svc, repo, _ := testService(t)
	ctx := context.Background()

	repo.bookings = append(repo.bookings, models.Booking{
		ID: "b-a", EstablishmentID: "est-1", StaffID: "staff-a",
		Status: models.BookingStatusConfirmed,
		Date:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	})

	for _, staffID := range []string{"", "staff-b"} {
		resp, err := svc.GetAvailability(ctx, AvailabilityRequest{
			EstablishmentID: "est-1", StaffID: staffID, ServiceID: "svc-cut", Date: "2026-03-02",
		})
		require.NoError(t, err)
		assert.Contains(t, resp.Slots, "10:00", "booking against staff-a must not leak into pool %q", staffID)
	}

	resp, err := svc.GetAvailability(ctx, AvailabilityRequest{
		EstablishmentID: "est-1", StaffID: "staff-a", ServiceID: "svc-cut", Date: "2026-03-02",
	})
	require.NoError(t, err)
	assert.NotContains(t, resp.Slots, "10:00")
}

func TestCreateBooking(t *testing.T) {
	svc, repo, trail := testService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, CreateBookingRequest{
		EstablishmentID: "est-1",
		ServiceID:       "svc-cut",
		Date:            "2026-03-02",
		Start:           "10:00",
		ClientName:      "  Jane <b>Doe</b> ",
		ClientEmail:     "Jane@Example.com",
		ClientPhone:     "+34 612 345 678",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", b.ClientName)
	assert.Equal(t, "jane@example.com", b.ClientEmail)
	assert.Equal(t, "Haircut", b.ServiceName)
	assert.Equal(t, 25.0, b.Price)
	assert.Equal(t, 30, b.Duration)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.Equal(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), b.Date)
	require.Len(t, repo.bookings, 1)
	assert.Contains(t, trail.events, models.AuditBookingCreated)
}

func TestCreateBookingConflict(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	req := CreateBookingRequest{
		EstablishmentID: "est-1", ServiceID: "svc-cut",
		Date: "2026-03-02", Start: "10:00",
		ClientName: "Jane", ClientEmail: "jane@example.com",
	}
	_, err := svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCreateBookingOffGrid(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, CreateBookingRequest{
		EstablishmentID: "est-1", ServiceID: "svc-cut",
		Date: "2026-03-02", Start: "10:10",
		ClientName: "Jane", ClientEmail: "jane@example.com",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCreateBookingPastSlot(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	// "Today" for the injected clock; 09:00 is already gone by noon.
	_, err := svc.CreateBooking(ctx, CreateBookingRequest{
		EstablishmentID: "est-1", ServiceID: "svc-cut",
		Date: "2026-02-01", Start: "09:00",
		ClientName: "Jane", ClientEmail: "jane@example.com",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	base := CreateBookingRequest{
		EstablishmentID: "est-1", ServiceID: "svc-cut",
		Date: "2026-03-02", Start: "10:00",
		ClientName: "Jane", ClientEmail: "jane@example.com",
	}

	t.Run("bad email", func(t *testing.T) {
		req := base
		req.ClientEmail = "not-an-email"
		_, err := svc.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty name", func(t *testing.T) {
		req := base
		req.ClientName = "   "
		_, err := svc.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown service", func(t *testing.T) {
		req := base
		req.ServiceID = "svc-nope"
		_, err := svc.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("unknown establishment", func(t *testing.T) {
		req := base
		req.EstablishmentID = "est-nope"
		_, err := svc.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, ErrEstablishmentNotFound)
	})
}

func TestCancelBookingFreesSlot(t *testing.T) {
	svc, repo, trail := testService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, CreateBookingRequest{
		EstablishmentID: "est-1", ServiceID: "svc-cut",
		Date: "2026-03-02", Start: "10:00",
		ClientName: "Jane", ClientEmail: "jane@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(ctx, b.ID, "jane@example.com"))
	assert.Equal(t, models.BookingStatusCancelled, repo.bookings[0].Status)
	assert.Contains(t, trail.events, models.AuditBookingCancelled)

	resp, err := svc.GetAvailability(ctx, AvailabilityRequest{
		EstablishmentID: "est-1", ServiceID: "svc-cut", Date: "2026-03-02",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Slots, "10:00")
}

func TestCancelUnknownBooking(t *testing.T) {
	svc, _, _ := testService(t)
	err := svc.CancelBooking(context.Background(), "missing", "x")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestContactEncryptedAtRest(t *testing.T) {
	svc, repo, _ := testService(t)
	cipher, err := crypto.New("test-passphrase")
	require.NoError(t, err)
	svc.Cipher = cipher
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, CreateBookingRequest{
		EstablishmentID: "est-1", ServiceID: "svc-cut",
		Date: "2026-03-02", Start: "10:00",
		ClientName: "Jane", ClientEmail: "jane@example.com",
		ClientPhone: "+15550001111",
	})
	require.NoError(t, err)

	// The caller gets the plaintext back; the stored record does not
	// hold it.
	assert.Equal(t, "+15550001111", b.ClientPhone)
	require.Len(t, repo.bookings, 1)
	stored := repo.bookings[0].ClientPhone
	assert.NotEqual(t, "+15550001111", stored)

	dec, err := cipher.Decrypt(stored)
	require.NoError(t, err)
	assert.Equal(t, "+15550001111", dec)

	listed, err := svc.ListBookings(ctx, ListBookingsRequest{
		EstablishmentID: "est-1", FromDate: "2026-03-02", ToDate: "2026-03-02",
	})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "+15550001111", listed[0].ClientPhone)
}

func TestListBookingsUsesEstablishmentTimezone(t *testing.T) {
	svc, repo, _ := testService(t)
	svc.EstRepo.(*fakeEstRepo).est.Timezone = "America/New_York"
	ctx := context.Background()

	// 2026-03-01 23:00 in New York, which is already 2026-03-02 in UTC.
	lateLocal := time.Date(2026, 3, 2, 4, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &models.Booking{
		EstablishmentID: "est-1", ServiceID: "svc-cut",
		Date: lateLocal, ClientName: "Jane", ClientEmail: "jane@example.com",
	}))

	listed, err := svc.ListBookings(ctx, ListBookingsRequest{
		EstablishmentID: "est-1", FromDate: "2026-03-01", ToDate: "2026-03-01",
	})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	listed, err = svc.ListBookings(ctx, ListBookingsRequest{
		EstablishmentID: "est-1", FromDate: "2026-03-02", ToDate: "2026-03-02",
	})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestListBookingsRejectsBadRange(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	_, err := svc.ListBookings(ctx, ListBookingsRequest{
		EstablishmentID: "est-1", FromDate: "not-a-date",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListBookings(ctx, ListBookingsRequest{
		EstablishmentID: "est-1", FromDate: "2026-03-05", ToDate: "2026-03-01",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListBookings(ctx, ListBookingsRequest{EstablishmentID: "est-missing"})
	assert.ErrorIs(t, err, ErrEstablishmentNotFound)
}
