package establishment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	establishmentRepo "booklyo/database/repository/establishment"
	"booklyo/models"
)

type fakeEstRepo struct {
	byID map[string]*models.Establishment
}

func newFakeEstRepo(ests ...*models.Establishment) *fakeEstRepo {
	r := &fakeEstRepo{byID: map[string]*models.Establishment{}}
	for _, e := range ests {
		r.byID[e.ID] = e
	}
	return r
}

func (r *fakeEstRepo) Create(_ context.Context, est *models.Establishment) error {
	if est.ID == "" {
		est.ID = "est-new"
	}
	r.byID[est.ID] = est
	return nil
}

func (r *fakeEstRepo) GetByID(_ context.Context, id string) (*models.Establishment, error) {
	est, ok := r.byID[id]
	if !ok {
		return nil, establishmentRepo.ErrNotFound
	}
	return est, nil
}

func (r *fakeEstRepo) GetByOwnerUID(_ context.Context, uid string) (*models.Establishment, error) {
	for _, est := range r.byID {
		if est.OwnerUID == uid {
			return est, nil
		}
	}
	return nil, establishmentRepo.ErrNotFound
}

func (r *fakeEstRepo) Update(_ context.Context, est *models.Establishment) error {
	if _, ok := r.byID[est.ID]; !ok {
		return establishmentRepo.ErrNotFound
	}
	r.byID[est.ID] = est
	return nil
}

func (r *fakeEstRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return establishmentRepo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeEstRepo) UpdateSchedule(_ context.Context, id string, ws models.WeeklySchedule) error {
	est, ok := r.byID[id]
	if !ok {
		return establishmentRepo.ErrNotFound
	}
	est.Schedule = ws
	return nil
}

func (r *fakeEstRepo) UpdateStaffSchedule(_ context.Context, id, staffID string, ws models.WeeklySchedule) error {
	est, ok := r.byID[id]
	if !ok {
		return establishmentRepo.ErrNotFound
	}
	for i := range est.Staff {
		if est.Staff[i].ID == staffID {
			est.Staff[i].Schedule = &ws
			return nil
		}
	}
	return establishmentRepo.ErrNotFound
}

func (r *fakeEstRepo) UpsertService(_ context.Context, id string, svc models.Service) error {
	est, ok := r.byID[id]
	if !ok {
		return establishmentRepo.ErrNotFound
	}
	for i := range est.Services {
		if est.Services[i].ID == svc.ID {
			est.Services[i] = svc
			return nil
		}
	}
	est.Services = append(est.Services, svc)
	return nil
}

func (r *fakeEstRepo) RemoveService(_ context.Context, id, serviceID string) error {
	est, ok := r.byID[id]
	if !ok {
		return establishmentRepo.ErrNotFound
	}
	for i := range est.Services {
		if est.Services[i].ID == serviceID {
			est.Services = append(est.Services[:i], est.Services[i+1:]...)
			return nil
		}
	}
	return establishmentRepo.ErrNotFound
}

func (r *fakeEstRepo) UpsertStaff(_ context.Context, id string, member models.StaffMember) error {
	est, ok := r.byID[id]
	if !ok {
		return establishmentRepo.ErrNotFound
	}
	for i := range est.Staff {
		if est.Staff[i].ID == member.ID {
			est.Staff[i] = member
			return nil
		}
	}
	est.Staff = append(est.Staff, member)
	return nil
}

func (r *fakeEstRepo) RemoveStaff(_ context.Context, id, staffID string) error {
	est, ok := r.byID[id]
	if !ok {
		return establishmentRepo.ErrNotFound
	}
	for i := range est.Staff {
		if est.Staff[i].ID == staffID {
			est.Staff = append(est.Staff[:i], est.Staff[i+1:]...)
			return nil
		}
	}
	return establishmentRepo.ErrNotFound
}

func (r *fakeEstRepo) EnsureIndexes(context.Context) error { return nil }

var _ establishmentRepo.EstablishmentRepository = (*fakeEstRepo)(nil)

type recordingAudit struct {
	types []string
}

func (a *recordingAudit) Log(_ context.Context, eventType, _, _ string, _ map[string]any) {
	a.types = append(a.types, eventType)
}

func workweek(start, end string) models.WeeklySchedule {
	ws := models.EmptyWeeklySchedule()
	for _, day := range []models.Weekday{
		models.Weekday(1), models.Weekday(2), models.Weekday(3),
		models.Weekday(4), models.Weekday(5),
	} {
		ws.SetEntry(models.ScheduleEntry{Day: day, Enabled: true, Start: start, End: end})
	}
	return ws
}

func newService(repo *fakeEstRepo, audit *recordingAudit) *DefaultEstablishmentService {
	return &DefaultEstablishmentService{
		Repo:   repo,
		Audit:  audit,
		Logger: zap.NewNop(),
	}
}

func testEstablishment() *models.Establishment {
	return &models.Establishment{
		ID:       "est-1",
		OwnerUID: "owner-1",
		Name:     "Corner Barbers",
		Schedule: workweek("09:00", "17:00"),
		Services: []models.Service{
			{ID: "svc-cut", Name: "Haircut", Price: 25, Duration: 30},
		},
		Staff: []models.StaffMember{
			{ID: "staff-a", Name: "Alex", Active: true},
		},
	}
}

func TestRegisterSanitizesAndValidates(t *testing.T) {
	repo := newFakeEstRepo()
	svc := newService(repo, &recordingAudit{})

	est, err := svc.Register(context.Background(), &models.Establishment{
		OwnerUID: "owner-1",
		Name:     "  <b>Corner</b> Barbers ",
		Email:    " Owner@Example.COM ",
		Schedule: workweek("09:00", "17:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Corner Barbers", est.Name)
	assert.Equal(t, "owner@example.com", est.Email)
	assert.NotEmpty(t, est.ID)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	repo := newFakeEstRepo()
	svc := newService(repo, &recordingAudit{})

	cases := map[string]*models.Establishment{
		"empty name": {OwnerUID: "u", Name: "   "},
		"no owner":   {Name: "Shop"},
		"bad email":  {OwnerUID: "u", Name: "Shop", Email: "not-an-email"},
		"bad timezone": {
			OwnerUID: "u", Name: "Shop", Timezone: "Mars/Olympus",
		},
		"inverted hours": {
			OwnerUID: "u", Name: "Shop",
			Schedule: workweek("17:00", "09:00"),
		},
	}
	for name, est := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), est)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateScheduleAudits(t *testing.T) {
	repo := newFakeEstRepo(testEstablishment())
	aud := &recordingAudit{}
	svc := newService(repo, aud)

	err := svc.UpdateSchedule(context.Background(), "est-1", workweek("08:00", "16:00"), "owner-1")
	require.NoError(t, err)

	est, _ := repo.GetByID(context.Background(), "est-1")
	entry := est.Schedule.Entry(models.Weekday(1))
	assert.Equal(t, "08:00", entry.Start)
	assert.Equal(t, []string{models.AuditScheduleUpdated}, aud.types)
}

func TestUpdateScheduleRejectsInvalid(t *testing.T) {
	repo := newFakeEstRepo(testEstablishment())
	aud := &recordingAudit{}
	svc := newService(repo, aud)

	err := svc.UpdateSchedule(context.Background(), "est-1", workweek("10:00", "10:00"), "owner-1")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, aud.types)
}

func TestUpdateStaffScheduleWarnsOutsideHours(t *testing.T) {
	repo := newFakeEstRepo(testEstablishment())
	svc := newService(repo, &recordingAudit{})

	// Staff opens an hour before the establishment does.
	warnings, err := svc.UpdateStaffSchedule(context.Background(), "est-1", "staff-a", workweek("08:00", "17:00"), "owner-1")
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)

	est, _ := repo.GetByID(context.Background(), "est-1")
	require.NotNil(t, est.Staff[0].Schedule)
	assert.Equal(t, "08:00", est.Staff[0].Schedule.Entry(models.Weekday(1)).Start)
}

func TestUpdateStaffScheduleNoWarningsInside(t *testing.T) {
	repo := newFakeEstRepo(testEstablishment())
	svc := newService(repo, &recordingAudit{})

	warnings, err := svc.UpdateStaffSchedule(context.Background(), "est-1", "staff-a", workweek("10:00", "16:00"), "owner-1")
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestUpdateStaffScheduleUnknownStaff(t *testing.T) {
	repo := newFakeEstRepo(testEstablishment())
	svc := newService(repo, &recordingAudit{})

	_, err := svc.UpdateStaffSchedule(context.Background(), "est-1", "staff-zz", workweek("09:00", "17:00"), "owner-1")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertServiceValidatesBounds(t *testing.T) {
	repo := newFakeEstRepo(testEstablishment())
	svc := newService(repo, &recordingAudit{})

	t.Run("accepts sane service", func(t *testing.T) {
		out, err := svc.UpsertService(context.Background(), "est-1", models.Service{
			Name: " Beard Trim ", Price: 15, Duration: 15,
		}, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "Beard Trim", out.Name)
		assert.NotEmpty(t, out.ID)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := svc.UpsertService(context.Background(), "est-1", models.Service{
			Name: "Trim", Price: -1, Duration: 15,
		}, "owner-1")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects marathon duration", func(t *testing.T) {
		_, err := svc.UpsertService(context.Background(), "est-1", models.Service{
			Name: "Trim", Price: 10, Duration: 12 * 60,
		}, "owner-1")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpsertServiceUpdatesExisting(t *testing.T) {
	repo := newFakeEstRepo(testEstablishment())
	svc := newService(repo, &recordingAudit{})

	out, err := svc.UpsertService(context.Background(), "est-1", models.Service{
		ID: "svc-cut", Name: "Haircut", Price: 30, Duration: 30,
	}, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "svc-cut", out.ID)

	est, _ := repo.GetByID(context.Background(), "est-1")
	require.Len(t, est.Services, 1)
	assert.Equal(t, float64(30), est.Services[0].Price)
}

func TestStaffLifecycle(t *testing.T) {
	repo := newFakeEstRepo(testEstablishment())
	svc := newService(repo, &recordingAudit{})
	ctx := context.Background()

	member, err := svc.UpsertStaff(ctx, "est-1", models.StaffMember{
		Name: " Billie ", Email: "billie@example.com", Active: true,
	}, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Billie", member.Name)
	assert.NotEmpty(t, member.ID)

	require.NoError(t, svc.RemoveStaff(ctx, "est-1", member.ID, "owner-1"))

	est, _ := repo.GetByID(ctx, "est-1")
	assert.Len(t, est.Staff, 1) // staff-a remains
}

func TestNotFoundMapping(t *testing.T) {
	repo := newFakeEstRepo()
	svc := newService(repo, &recordingAudit{})
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "est-missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.UpdateSchedule(ctx, "est-missing", workweek("09:00", "17:00"), "x")
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.RemoveService(ctx, "est-missing", "svc-x", "owner-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.True(t, errors.Is(svc.Delete(ctx, "est-missing", "owner-1"), ErrNotFound))
}

func TestOwnershipRequiredForWrites(t *testing.T) {
	ctx := context.Background()

	cases := map[string]func(svc *DefaultEstablishmentService, actor string) error{
		"update profile": func(svc *DefaultEstablishmentService, actor string) error {
			return svc.UpdateProfile(ctx, testEstablishment(), actor)
		},
		"delete": func(svc *DefaultEstablishmentService, actor string) error {
			return svc.Delete(ctx, "est-1", actor)
		},
		"update schedule": func(svc *DefaultEstablishmentService, actor string) error {
			return svc.UpdateSchedule(ctx, "est-1", workweek("09:00", "17:00"), actor)
		},
		"update staff schedule": func(svc *DefaultEstablishmentService, actor string) error {
			_, err := svc.UpdateStaffSchedule(ctx, "est-1", "staff-a", workweek("09:00", "17:00"), actor)
			return err
		},
		"upsert service": func(svc *DefaultEstablishmentService, actor string) error {
			_, err := svc.UpsertService(ctx, "est-1", models.Service{Name: "Trim", Price: 10, Duration: 15}, actor)
			return err
		},
		"remove service": func(svc *DefaultEstablishmentService, actor string) error {
			return svc.RemoveService(ctx, "est-1", "svc-cut", actor)
		},
		"upsert staff": func(svc *DefaultEstablishmentService, actor string) error {
			_, err := svc.UpsertStaff(ctx, "est-1", models.StaffMember{Name: "Eve"}, actor)
			return err
		},
		"remove staff": func(svc *DefaultEstablishmentService, actor string) error {
			return svc.RemoveStaff(ctx, "est-1", "staff-a", actor)
		},
	}

	for name, op := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newFakeEstRepo(testEstablishment())
			svc := newService(repo, &recordingAudit{})

			assert.ErrorIs(t, op(svc, "someone-else"), ErrForbidden)
			assert.ErrorIs(t, op(svc, ""), ErrForbidden)

			// The denied attempts changed nothing.
			est, err := repo.GetByID(ctx, "est-1")
			require.NoError(t, err)
			assert.Equal(t, "owner-1", est.OwnerUID)
			assert.Len(t, est.Services, 1)
			assert.Len(t, est.Staff, 1)

			assert.NoError(t, op(svc, "owner-1"))
		})
	}
}
