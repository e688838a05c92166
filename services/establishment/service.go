// Package establishment manages the business profile: its weekly
// schedule, its service catalogue and its staff roster.
package establishment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	establishmentRepo "booklyo/database/repository/establishment"
	"booklyo/models"
	"booklyo/security/sanitize"
	"booklyo/services/audit"
	"booklyo/services/availability"
)

var (
	ErrNotFound     = errors.New("establishment not found")
	ErrForbidden    = errors.New("not the establishment owner")
	ErrInvalidInput = errors.New("invalid establishment input")
)

// Every mutating operation takes the acting uid and is refused with
// ErrForbidden unless it matches the establishment's OwnerUID. The store
// enforces nothing on its own, so the ownership check lives here.
type EstablishmentService interface {
	Register(ctx context.Context, est *models.Establishment) (*models.Establishment, error)
	GetByID(ctx context.Context, id string) (*models.Establishment, error)
	GetByOwnerUID(ctx context.Context, uid string) (*models.Establishment, error)
	UpdateProfile(ctx context.Context, est *models.Establishment, actor string) error
	Delete(ctx context.Context, id, actor string) error

	UpdateSchedule(ctx context.Context, id string, ws models.WeeklySchedule, actor string) error
	// UpdateStaffSchedule returns soft warnings when the staff hours
	// fall outside the establishment's; the update still goes through.
	UpdateStaffSchedule(ctx context.Context, id, staffID string, ws models.WeeklySchedule, actor string) ([]string, error)

	UpsertService(ctx context.Context, id string, svc models.Service, actor string) (*models.Service, error)
	RemoveService(ctx context.Context, id, serviceID, actor string) error
	UpsertStaff(ctx context.Context, id string, member models.StaffMember, actor string) (*models.StaffMember, error)
	RemoveStaff(ctx context.Context, id, staffID, actor string) error
}

type DefaultEstablishmentService struct {
	Repo   establishmentRepo.EstablishmentRepository
	Audit  audit.AuditService
	Logger *zap.Logger
}

func (s *DefaultEstablishmentService) Register(ctx context.Context, est *models.Establishment) (*models.Establishment, error) {
	est.Name = sanitize.Text(est.Name)
	if est.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if est.OwnerUID == "" {
		return nil, fmt.Errorf("%w: owner uid is required", ErrInvalidInput)
	}
	if est.Email != "" {
		email, err := sanitize.Email(est.Email)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		est.Email = email
	}
	if est.Timezone != "" {
		if _, err := time.LoadLocation(est.Timezone); err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, est.Timezone)
		}
	}
	if err := est.Schedule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.Repo.Create(ctx, est); err != nil {
		return nil, fmt.Errorf("register establishment: %w", err)
	}
	s.Logger.Info("establishment registered", zap.String("id", est.ID), zap.String("name", est.Name))
	return est, nil
}

func (s *DefaultEstablishmentService) GetByID(ctx context.Context, id string) (*models.Establishment, error) {
	est, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, establishmentRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return est, err
}

func (s *DefaultEstablishmentService) GetByOwnerUID(ctx context.Context, uid string) (*models.Establishment, error) {
	est, err := s.Repo.GetByOwnerUID(ctx, uid)
	if errors.Is(err, establishmentRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return est, err
}

// authorize loads the establishment and verifies the actor owns it.
func (s *DefaultEstablishmentService) authorize(ctx context.Context, id, actor string) (*models.Establishment, error) {
	est, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == "" || est.OwnerUID != actor {
		return nil, ErrForbidden
	}
	return est, nil
}

func (s *DefaultEstablishmentService) UpdateProfile(ctx context.Context, est *models.Establishment, actor string) error {
	current, err := s.authorize(ctx, est.ID, actor)
	if err != nil {
		return err
	}
	est.OwnerUID = current.OwnerUID

	est.Name = sanitize.Text(est.Name)
	if est.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if est.Timezone != "" {
		if _, err := time.LoadLocation(est.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, est.Timezone)
		}
	}
	err = s.Repo.Update(ctx, est)
	if errors.Is(err, establishmentRepo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *DefaultEstablishmentService) Delete(ctx context.Context, id, actor string) error {
	if _, err := s.authorize(ctx, id, actor); err != nil {
		return err
	}
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, establishmentRepo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *DefaultEstablishmentService) UpdateSchedule(ctx context.Context, id string, ws models.WeeklySchedule, actor string) error {
	if err := ws.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.authorize(ctx, id, actor); err != nil {
		return err
	}
	err := s.Repo.UpdateSchedule(ctx, id, ws)
	if errors.Is(err, establishmentRepo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	s.Audit.Log(ctx, models.AuditScheduleUpdated, models.AuditSeverityInfo, actor, map[string]any{
		"establishmentId": id,
	})
	return nil
}

func (s *DefaultEstablishmentService) UpdateStaffSchedule(ctx context.Context, id, staffID string, ws models.WeeklySchedule, actor string) ([]string, error) {
	if err := ws.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	est, err := s.authorize(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if _, ok := est.StaffByID(staffID); !ok {
		return nil, fmt.Errorf("%w: unknown staff %s", ErrInvalidInput, staffID)
	}

	warnings := availability.StaffHoursWarnings(est.Schedule, ws)

	if err := s.Repo.UpdateStaffSchedule(ctx, id, staffID, ws); err != nil {
		if errors.Is(err, establishmentRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.Audit.Log(ctx, models.AuditScheduleUpdated, models.AuditSeverityInfo, actor, map[string]any{
		"establishmentId": id,
		"staffId":         staffID,
		"warnings":        warnings,
	})
	return warnings, nil
}

func (s *DefaultEstablishmentService) UpsertService(ctx context.Context, id string, svc models.Service, actor string) (*models.Service, error) {
	if _, err := s.authorize(ctx, id, actor); err != nil {
		return nil, err
	}
	svc.Name = sanitize.Text(svc.Name)
	if svc.Name == "" {
		return nil, fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if err := sanitize.Price(svc.Price); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := sanitize.Duration(svc.Duration); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}

	err := s.Repo.UpsertService(ctx, id, svc)
	if errors.Is(err, establishmentRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *DefaultEstablishmentService) RemoveService(ctx context.Context, id, serviceID, actor string) error {
	if _, err := s.authorize(ctx, id, actor); err != nil {
		return err
	}
	err := s.Repo.RemoveService(ctx, id, serviceID)
	if errors.Is(err, establishmentRepo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *DefaultEstablishmentService) UpsertStaff(ctx context.Context, id string, member models.StaffMember, actor string) (*models.StaffMember, error) {
	if _, err := s.authorize(ctx, id, actor); err != nil {
		return nil, err
	}
	member.Name = sanitize.Text(member.Name)
	if member.Name == "" {
		return nil, fmt.Errorf("%w: staff name is required", ErrInvalidInput)
	}
	if member.Email != "" {
		email, err := sanitize.Email(member.Email)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		member.Email = email
	}
	if member.Schedule != nil {
		if err := member.Schedule.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if member.ID == "" {
		member.ID = uuid.New().String()
	}

	err := s.Repo.UpsertStaff(ctx, id, member)
	if errors.Is(err, establishmentRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *DefaultEstablishmentService) RemoveStaff(ctx context.Context, id, staffID, actor string) error {
	if _, err := s.authorize(ctx, id, actor); err != nil {
		return err
	}
	err := s.Repo.RemoveStaff(ctx, id, staffID)
	if errors.Is(err, establishmentRepo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
