package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	bookingRepo "booklyo/database/repository/booking"
	establishmentRepo "booklyo/database/repository/establishment"
	"booklyo/models"
	"booklyo/security/crypto"
	"booklyo/security/sanitize"
	"booklyo/services/audit"
	"booklyo/services/availability"
)

const dateLayout = "2006-01-02"

// DefaultBookingService wires the availability engine to the document
// store and the audit trail.
type DefaultBookingService struct {
	EstRepo     establishmentRepo.EstablishmentRepository
	BookingRepo bookingRepo.BookingRepository
	Audit       audit.AuditService
	Logger      *zap.Logger
	Cipher      *crypto.Cipher   // nil disables at-rest contact encryption
	Now         func() time.Time // nil means time.Now
}

// encryptContact protects the client phone number at rest. Email stays
// in the clear: the repo queries on it for the owner's client list.
func (s *DefaultBookingService) encryptContact(b *models.Booking) error {
	if s.Cipher == nil || b.ClientPhone == "" {
		return nil
	}
	enc, err := s.Cipher.Encrypt(b.ClientPhone)
	if err != nil {
		return fmt.Errorf("encrypt contact: %w", err)
	}
	b.ClientPhone = enc
	return nil
}

func (s *DefaultBookingService) decryptContact(b *models.Booking) {
	if s.Cipher == nil || b.ClientPhone == "" {
		return
	}
	// Records written before encryption was enabled stay as-is.
	if dec, err := s.Cipher.Decrypt(b.ClientPhone); err == nil {
		b.ClientPhone = dec
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// dayContext is everything availability needs for one (entity, service,
// date) triple, resolved from the store.
type dayContext struct {
	est      *models.Establishment
	service  models.Service
	schedule models.WeeklySchedule
	dayStart time.Time
	booked   []time.Time
}

func (s *DefaultBookingService) resolveDay(ctx context.Context, establishmentID, staffID, serviceID, date string) (*dayContext, error) {
	est, err := s.EstRepo.GetByID(ctx, establishmentID)
	if errors.Is(err, establishmentRepo.ErrNotFound) {
		return nil, ErrEstablishmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load establishment: %w", err)
	}

	svc, ok := est.ServiceByID(serviceID)
	if !ok {
		return nil, ErrServiceNotFound
	}

	schedule, err := availability.Resolve(*est, staffID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	loc := est.Location()
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidInput, date)
	}

	booked, err := s.BookingRepo.ConfirmedStartsForDay(ctx, establishmentID, staffID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	return &dayContext{
		est:      est,
		service:  svc,
		schedule: schedule,
		dayStart: day,
		booked:   booked,
	}, nil
}

func (s *DefaultBookingService) GetAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResponse, error) {
	dc, err := s.resolveDay(ctx, req.EstablishmentID, req.StaffID, req.ServiceID, req.Date)
	if err != nil {
		return nil, err
	}

	slots := availability.Slots(availability.Query{
		Schedule: dc.schedule,
		Date:     dc.dayStart,
		Duration: dc.service.Duration,
		Booked:   dc.booked,
		Now:      s.now(),
	})

	resp := &AvailabilityResponse{
		Date:     req.Date,
		Timezone: dc.est.Location().String(),
		Duration: dc.service.Duration,
		Slots:    make([]string, len(slots)),
	}
	for i, slot := range slots {
		resp.Slots[i] = slot.Format("15:04")
	}
	return resp, nil
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	name := sanitize.Text(req.ClientName)
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	email, err := sanitize.Email(req.ClientEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	phone := ""
	if req.ClientPhone != "" {
		phone, err = sanitize.Phone(req.ClientPhone)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	dc, err := s.resolveDay(ctx, req.EstablishmentID, req.StaffID, req.ServiceID, req.Date)
	if err != nil {
		return nil, err
	}

	startMinutes, err := models.ParseClock(req.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start time %q", ErrInvalidInput, req.Start)
	}
	start := dc.dayStart.Add(time.Duration(startMinutes) * time.Minute)

	// The availability check happens here, at read time; the insert
	// below is a separate unguarded write. Two clients holding the same
	// open slot can both get through. Known limitation of the design,
	// kept intentionally.
	slots := availability.Slots(availability.Query{
		Schedule: dc.schedule,
		Date:     dc.dayStart,
		Duration: dc.service.Duration,
		Booked:   dc.booked,
		Now:      s.now(),
	})
	if !containsSlot(slots, start) {
		return nil, ErrSlotUnavailable
	}

	booking := &models.Booking{
		EstablishmentID: req.EstablishmentID,
		StaffID:         req.StaffID,
		ServiceID:       dc.service.ID,
		ServiceName:     dc.service.Name,
		Price:           dc.service.Price,
		Duration:        dc.service.Duration,
		Date:            start,
		ClientName:      name,
		ClientEmail:     email,
		ClientPhone:     phone,
		Status:          models.BookingStatusConfirmed,
	}
	if err := s.encryptContact(booking); err != nil {
		return nil, err
	}
	if err := s.BookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	// The caller sees what they sent, not the ciphertext.
	booking.ClientPhone = phone

	s.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("establishmentId", booking.EstablishmentID),
		zap.String("staffId", booking.StaffID),
		zap.Time("start", booking.Date),
		zap.Time("end", booking.End()))
	s.Audit.Log(ctx, models.AuditBookingCreated, models.AuditSeverityInfo, email, map[string]any{
		"bookingId":       booking.ID,
		"establishmentId": booking.EstablishmentID,
		"staffId":         booking.StaffID,
		"serviceId":       booking.ServiceID,
		"start":           booking.Date,
		"end":             booking.End(),
	})
	return booking, nil
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, actor string) error {
	b, err := s.BookingRepo.GetByID(ctx, bookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("load booking: %w", err)
	}

	if err := s.BookingRepo.Cancel(ctx, bookingID); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	s.Logger.Info("booking cancelled", zap.String("bookingId", bookingID))
	s.Audit.Log(ctx, models.AuditBookingCancelled, models.AuditSeverityInfo, actor, map[string]any{
		"bookingId":       bookingID,
		"establishmentId": b.EstablishmentID,
		"staffId":         b.StaffID,
	})
	return nil
}

// ListBookings resolves the date window in the establishment's own
// timezone; a UTC window would shift the day boundary by the offset.
func (s *DefaultBookingService) ListBookings(ctx context.Context, req ListBookingsRequest) ([]models.Booking, error) {
	est, err := s.EstRepo.GetByID(ctx, req.EstablishmentID)
	if errors.Is(err, establishmentRepo.ErrNotFound) {
		return nil, ErrEstablishmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load establishment: %w", err)
	}
	loc := est.Location()

	var from time.Time
	if req.FromDate == "" {
		localNow := s.now().In(loc)
		from = time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)
	} else {
		from, err = time.ParseInLocation(dateLayout, req.FromDate, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrInvalidInput, req.FromDate)
		}
	}

	var to time.Time
	if req.ToDate == "" {
		to = from.AddDate(0, 0, 7)
	} else {
		to, err = time.ParseInLocation(dateLayout, req.ToDate, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrInvalidInput, req.ToDate)
		}
		// Inclusive end date.
		to = to.AddDate(0, 0, 1)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range ends before it starts", ErrInvalidInput)
	}

	bookings, err := s.BookingRepo.ListForEntity(ctx, est.ID, req.StaffID, from, to)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		s.decryptContact(&bookings[i])
	}
	return bookings, nil
}

func containsSlot(slots []time.Time, want time.Time) bool {
	for _, s := range slots {
		if s.Equal(want) {
			return true
		}
	}
	return false
}
