package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escala-dev/escala/backend/internal/domain"
)

// fakeStore is an in-memory ScheduleStore keyed by establishment and week.
type fakeStore struct {
	schedules map[string]*domain.Schedule
	nextID    int64

	// missFirstGet makes the next GetActiveScheduleByWeek report not-found,
	// simulating a concurrent writer that commits between the orchestrator's
	// pre-check and its insert.
	missFirstGet bool
	createCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{schedules: map[string]*domain.Schedule{}, nextID: 1}
}

func (f *fakeStore) key(establishmentID, week string) string {
	return establishmentID + "|" + week
}

func (f *fakeStore) GetActiveScheduleByWeek(_ context.Context, establishmentID, weekStartDate string) (*domain.Schedule, error) {
	if f.missFirstGet {
		f.missFirstGet = false
		return nil, domain.ErrScheduleNotFound
	}
	s, ok := f.schedules[f.key(establishmentID, weekStartDate)]
	if !ok || s.Status == domain.ScheduleArchived {
		return nil, domain.ErrScheduleNotFound
	}
	return s, nil
}

func (f *fakeStore) CreateSchedule(_ context.Context, s *domain.Schedule) error {
	f.createCalls++
	if _, ok := f.schedules[f.key(s.EstablishmentID, s.WeekStartDate)]; ok {
		return ErrDuplicateSchedule
	}
	s.ID = f.nextID
	f.nextID++
	f.schedules[f.key(s.EstablishmentID, s.WeekStartDate)] = s
	return nil
}

func (f *fakeStore) UpdateScheduleStatus(_ context.Context, id int64, from, to domain.ScheduleStatus) (*domain.Schedule, error) {
	for _, s := range f.schedules {
		if s.ID == id && s.Status == from {
			s.Status = to
			return s, nil
		}
	}
	return nil, domain.ErrScheduleNotFound
}

type fakeNotifier struct {
	calls []int64
	err   error
}

func (f *fakeNotifier) SchedulePublished(_ context.Context, _ *domain.Establishment, s *domain.Schedule) error {
	f.calls = append(f.calls, s.ID)
	return f.err
}

func testEstablishment() *domain.Establishment {
	return &domain.Establishment{
		ID:                   "est-1",
		Name:                 "Padaria Bela Vista",
		OperatingHours:       weekdayHours("09:00", "17:00"),
		MinEmployeesPerShift: 2,
	}
}

func TestGenerateWeekCreatesDraft(t *testing.T) {
	store := newFakeStore()
	orch := NewOrchestrator(store, &fakeNotifier{})

	outcome, err := orch.GenerateWeek(context.Background(), testEstablishment(), testRoster("e1", "e2", "e3"), "2025-01-06")
	require.NoError(t, err)

	assert.True(t, outcome.Created)
	require.NotNil(t, outcome.Schedule)
	assert.Equal(t, domain.ScheduleDraft, outcome.Schedule.Status)
	assert.Equal(t, domain.GeneratedByEngine, outcome.Schedule.GeneratedBy)
	assert.Equal(t, "2025-01-06", outcome.Schedule.WeekStartDate)
	assert.Equal(t, "2025-01-12", outcome.Schedule.WeekEndDate)
	assert.Len(t, outcome.Schedule.Shifts, 10)
	assert.True(t, outcome.Validation.IsValid)
}

func TestGenerateWeekIsIdempotent(t *testing.T) {
	store := newFakeStore()
	orch := NewOrchestrator(store, &fakeNotifier{})
	est := testEstablishment()
	roster := testRoster("e1", "e2", "e3")

	first, err := orch.GenerateWeek(context.Background(), est, roster, "2025-01-06")
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := orch.GenerateWeek(context.Background(), est, roster, "2025-01-06")
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.Schedule.ID, second.Schedule.ID)
	// The second call returned the stored row without generating again.
	assert.Equal(t, 1, store.createCalls)
	// The verdict is still computed fresh for the stored shifts.
	assert.True(t, second.Validation.IsValid)
}

func TestGenerateWeekPersistsNonCompliantDraft(t *testing.T) {
	store := newFakeStore()
	orch := NewOrchestrator(store, &fakeNotifier{})

	// One employee against a minimum of two: every open day is understaffed.
	outcome, err := orch.GenerateWeek(context.Background(), testEstablishment(), testRoster("e1"), "2025-01-06")
	require.NoError(t, err)

	assert.True(t, outcome.Created)
	assert.False(t, outcome.Validation.IsValid)
	assert.NotEmpty(t, outcome.Validation.Errors)
	assert.Len(t, outcome.Warnings, 5)

	// The draft is stored despite the compliance errors.
	stored, err := store.GetActiveScheduleByWeek(context.Background(), "est-1", "2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, outcome.Schedule.ID, stored.ID)
}

func TestGenerateWeekSkipsInactiveEmployees(t *testing.T) {
	store := newFakeStore()
	orch := NewOrchestrator(store, &fakeNotifier{})
	roster := testRoster("e1", "e2", "e3")
	roster[2].Status = domain.EmployeeInactive

	outcome, err := orch.GenerateWeek(context.Background(), testEstablishment(), roster, "2025-01-06")
	require.NoError(t, err)

	for _, s := range outcome.Schedule.Shifts {
		assert.NotEqual(t, "e3", s.EmployeeID)
	}
}

func TestGenerateWeekEmptyRosterStoresEmptyDraft(t *testing.T) {
	store := newFakeStore()
	orch := NewOrchestrator(store, &fakeNotifier{})

	outcome, err := orch.GenerateWeek(context.Background(), testEstablishment(), nil, "2025-01-06")
	require.NoError(t, err)

	assert.True(t, outcome.Created)
	assert.Empty(t, outcome.Schedule.Shifts)
	assert.Equal(t, []string{"no employees available for scheduling"}, outcome.Warnings)
}

func TestGenerateWeekLosesCreationRace(t *testing.T) {
	store := newFakeStore()
	orch := NewOrchestrator(store, &fakeNotifier{})
	est := testEstablishment()

	// A concurrent writer committed this row between the orchestrator's
	// pre-check and its insert.
	winner := &domain.Schedule{
		EstablishmentID: est.ID,
		WeekStartDate:   "2025-01-06",
		WeekEndDate:     "2025-01-12",
		Shifts:          []domain.Shift{},
		Status:          domain.ScheduleDraft,
		GeneratedBy:     domain.GeneratedByEngine,
	}
	require.NoError(t, store.CreateSchedule(context.Background(), winner))
	store.missFirstGet = true

	outcome, err := orch.GenerateWeek(context.Background(), est, testRoster("e1", "e2"), "2025-01-06")
	require.NoError(t, err)

	// The orchestrator lost the race, re-fetched and returned the stored row.
	assert.False(t, outcome.Created)
	assert.Equal(t, winner.ID, outcome.Schedule.ID)
	assert.Equal(t, 2, store.createCalls)
}

func TestGenerateWeekRejectsMalformedWeekStart(t *testing.T) {
	orch := NewOrchestrator(newFakeStore(), &fakeNotifier{})

	_, err := orch.GenerateWeek(context.Background(), testEstablishment(), nil, "next monday")
	assert.Error(t, err)
}

func TestPublishTransitionsAndNotifies(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	orch := NewOrchestrator(store, notifier)
	est := testEstablishment()

	outcome, err := orch.GenerateWeek(context.Background(), est, testRoster("e1", "e2"), "2025-01-06")
	require.NoError(t, err)

	published, err := orch.Publish(context.Background(), est, outcome.Schedule.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.SchedulePublished, published.Status)
	assert.Equal(t, []int64{published.ID}, notifier.calls)
}

func TestPublishNonDraftFails(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	orch := NewOrchestrator(store, notifier)
	est := testEstablishment()

	outcome, err := orch.GenerateWeek(context.Background(), est, testRoster("e1", "e2"), "2025-01-06")
	require.NoError(t, err)

	_, err = orch.Publish(context.Background(), est, outcome.Schedule.ID)
	require.NoError(t, err)

	// Publishing an already published schedule fails and must not notify
	// again.
	_, err = orch.Publish(context.Background(), est, outcome.Schedule.ID)
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
	assert.Len(t, notifier.calls, 1)
}

func TestPublishSucceedsWhenNotifierFails(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{err: errors.New("broker down")}
	orch := NewOrchestrator(store, notifier)
	est := testEstablishment()

	outcome, err := orch.GenerateWeek(context.Background(), est, testRoster("e1", "e2"), "2025-01-06")
	require.NoError(t, err)

	published, err := orch.Publish(context.Background(), est, outcome.Schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SchedulePublished, published.Status)
}
