package reminder

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"memoria/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memReminderRepo is an in-memory repository used across the engine tests.
type memReminderRepo struct {
	mu    sync.Mutex
	items map[string]models.Reminder
}

func newMemRepo() *memReminderRepo {
	return &memReminderRepo{items: map[string]models.Reminder{}}
}

func (r *memReminderRepo) GetByID(id string) (*models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &rem, nil
}

func (r *memReminderRepo) ListByUser(userID string) ([]models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reminder
	for _, rem := range r.items {
		if rem.UserID == userID {
			out = append(out, rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	return out, nil
}

func (r *memReminderRepo) ListDueCandidates(now time.Time, window time.Duration) ([]models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	floor := now.Add(-window)
	var out []models.Reminder
	for _, rem := range r.items {
		if !rem.Completed && !rem.ScheduledFor.Before(floor) && !rem.ScheduledFor.After(now) {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *memReminderRepo) Create(rem *models.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[rem.ID] = *rem
	return nil
}

func (r *memReminderRepo) Update(rem *models.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[rem.ID]; !ok {
		return errors.New("not found")
	}
	r.items[rem.ID] = *rem
	return nil
}

func (r *memReminderRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// fakeDispatcher records dispatches and can simulate unavailability or
// transient failure.
type fakeDispatcher struct {
	mu         sync.Mutex
	ready      bool
	failNext   error
	dispatched []string
}

func (d *fakeDispatcher) Ready(userID string) bool { return d.ready }

func (d *fakeDispatcher) Dispatch(ctx context.Context, rem *models.Reminder) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failNext != nil {
		err := d.failNext
		d.failNext = nil
		return err
	}
	d.dispatched = append(d.dispatched, rem.ID)
	return nil
}

func (d *fakeDispatcher) sent() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.dispatched...)
}

func newTestService() (*DefaultReminderService, *memReminderRepo, *fakeDispatcher) {
	repo := newMemRepo()
	disp := &fakeDispatcher{ready: true}
	return &DefaultReminderService{Repo: repo, Dispatcher: disp}, repo, disp
}

func TestAdd_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Add(models.Reminder{UserID: "u1", ScheduledFor: time.Now()})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)

	_, err = svc.Add(models.Reminder{UserID: "u1", Title: "Take medication"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "scheduledFor", ve.Field)

	_, err = svc.Add(models.Reminder{Title: "Take medication", ScheduledFor: time.Now()})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "userId", ve.Field)
}

func TestAdd_AssignsIdentity(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Add(models.Reminder{
		UserID:       "u1",
		Title:        "Morning walk",
		Type:         models.ReminderRoutine,
		ScheduledFor: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Second)
	assert.False(t, created.Completed)
	assert.Nil(t, created.SnoozedUntil)
	assert.Nil(t, created.LastNotifiedAt)
}

func TestUpdate_SparsePatch(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.Add(models.Reminder{
		UserID:       "u1",
		Title:        "Lunch",
		Description:  "With Sarah",
		ScheduledFor: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	newTitle := "Lunch with Sarah"
	updated, err := svc.Update("u1", created.ID, models.ReminderUpdateRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "With Sarah", updated.Description, "untouched fields survive")

	_, err = svc.Update("u1", created.ID, models.ReminderUpdateRequest{})
	var ve ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Update("u1", "missing", models.ReminderUpdateRequest{Title: &newTitle})
	var nfe NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestComplete_Idempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	created, err := svc.Add(models.Reminder{
		UserID:       "u1",
		Title:        "Evening pills",
		ScheduledFor: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Complete("u1", created.ID))
	require.NoError(t, svc.Complete("u1", created.ID), "second completion is a no-op")

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)

	all, err := svc.ListAll("u1")
	require.NoError(t, err)
	assert.Len(t, all, 1, "idempotent completion must not duplicate state")
}

func TestComplete_RecurringSpawnsNext(t *testing.T) {
	svc, _, _ := newTestService()
	scheduled := time.Now().Add(time.Hour)
	created, err := svc.Add(models.Reminder{
		UserID:            "u1",
		Title:             "Water the plants",
		ScheduledFor:      scheduled,
		Recurring:         true,
		RecurrencePattern: "daily",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Complete("u1", created.ID))

	all, err := svc.ListAll("u1")
	require.NoError(t, err)
	require.Len(t, all, 2)

	var next *models.Reminder
	for i := range all {
		if all[i].ID != created.ID {
			next = &all[i]
		}
	}
	require.NotNil(t, next)
	assert.False(t, next.Completed)
	assert.Nil(t, next.LastNotifiedAt)
	assert.True(t, next.ScheduledFor.Equal(scheduled.AddDate(0, 0, 1)))
	assert.Equal(t, created.Title, next.Title)
}

func TestSnooze(t *testing.T) {
	svc, repo, _ := newTestService()
	created, err := svc.Add(models.Reminder{
		UserID:       "u1",
		Title:        "Call Sarah",
		ScheduledFor: time.Now().Add(-10 * time.Minute),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Snooze("u1", created.ID, 15))

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SnoozedUntil)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), *stored.SnoozedUntil, time.Second)
	assert.True(t, stored.ScheduledFor.Equal(created.ScheduledFor), "snooze never moves the schedule")

	// Snoozed reminders leave the overdue list.
	overdue, err := svc.ListOverdue("u1")
	require.NoError(t, err)
	assert.Empty(t, overdue)

	// Once the snooze lapses the reminder is overdue again.
	lapsed := time.Now().Add(-time.Second)
	stored.SnoozedUntil = &lapsed
	require.NoError(t, repo.Update(stored))
	overdue, err = svc.ListOverdue("u1")
	require.NoError(t, err)
	assert.Len(t, overdue, 1)

	var ve ValidationError
	assert.ErrorAs(t, svc.Snooze("u1", created.ID, 0), &ve)

	require.NoError(t, svc.Complete("u1", created.ID))
	assert.ErrorAs(t, svc.Snooze("u1", created.ID, 5), &ve, "completed reminders cannot be snoozed")
}

func TestLists_ClassifyAgainstNow(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Add(models.Reminder{UserID: "u1", Title: "later", ScheduledFor: time.Now().Add(2 * time.Hour)})
	require.NoError(t, err)
	_, err = svc.Add(models.Reminder{UserID: "u1", Title: "soon", ScheduledFor: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	_, err = svc.Add(models.Reminder{UserID: "u1", Title: "missed", ScheduledFor: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	_, err = svc.Add(models.Reminder{UserID: "u2", Title: "other user", ScheduledFor: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	upcoming, err := svc.ListUpcoming("u1")
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "soon", upcoming[0].Title, "upcoming is ordered by schedule ascending")
	assert.Equal(t, "later", upcoming[1].Title)

	overdue, err := svc.ListOverdue("u1")
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "missed", overdue[0].Title)
}

func TestSweep_DispatchesAtMostOnce(t *testing.T) {
	svc, repo, disp := newTestService()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	rem := models.Reminder{ID: "r1", UserID: "u1", Title: "Pills", ScheduledFor: now.Add(-10 * time.Second)}
	require.NoError(t, repo.Create(&rem))

	sweeper := NewSweeper(svc, 0, 0)
	sweeper.nowFn = func() time.Time { return now }

	sweeper.SweepOnce(context.Background())
	assert.Equal(t, []string{"r1"}, disp.sent())

	stored, err := repo.GetByID("r1")
	require.NoError(t, err)
	require.NotNil(t, stored.LastNotifiedAt)

	// A second sweep inside the window must not dispatch again.
	sweeper.nowFn = func() time.Time { return now.Add(30 * time.Second) }
	sweeper.SweepOnce(context.Background())
	assert.Equal(t, []string{"r1"}, disp.sent())
}

func TestSweep_SkipsWhenDispatcherNotReady(t *testing.T) {
	svc, repo, disp := newTestService()
	disp.ready = false
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	rem := models.Reminder{ID: "r1", UserID: "u1", Title: "Pills", ScheduledFor: now.Add(-10 * time.Second)}
	require.NoError(t, repo.Create(&rem))

	sweeper := NewSweeper(svc, 0, 0)
	sweeper.nowFn = func() time.Time { return now }
	sweeper.SweepOnce(context.Background())

	assert.Empty(t, disp.sent())
	stored, err := repo.GetByID("r1")
	require.NoError(t, err)
	assert.Nil(t, stored.LastNotifiedAt, "skipped dispatch must not be stamped")
}

func TestSweep_RetriesAfterDispatchFailure(t *testing.T) {
	svc, repo, disp := newTestService()
	disp.failNext = errors.New("fcm unreachable")
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	rem := models.Reminder{ID: "r1", UserID: "u1", Title: "Pills", ScheduledFor: now.Add(-5 * time.Second)}
	require.NoError(t, repo.Create(&rem))

	sweeper := NewSweeper(svc, 0, 0)
	sweeper.nowFn = func() time.Time { return now }

	sweeper.SweepOnce(context.Background())
	assert.Empty(t, disp.sent())
	stored, _ := repo.GetByID("r1")
	assert.Nil(t, stored.LastNotifiedAt)

	// Still inside the window: the next sweep succeeds exactly once.
	sweeper.nowFn = func() time.Time { return now.Add(20 * time.Second) }
	sweeper.SweepOnce(context.Background())
	assert.Equal(t, []string{"r1"}, disp.sent())
}

func TestSweep_IgnoresRemindersOutsideWindow(t *testing.T) {
	svc, repo, disp := newTestService()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	old := models.Reminder{ID: "old", UserID: "u1", Title: "Missed", ScheduledFor: now.Add(-5 * time.Minute)}
	future := models.Reminder{ID: "future", UserID: "u1", Title: "Later", ScheduledFor: now.Add(time.Minute)}
	require.NoError(t, repo.Create(&old))
	require.NoError(t, repo.Create(&future))

	sweeper := NewSweeper(svc, 0, 0)
	sweeper.nowFn = func() time.Time { return now }
	sweeper.SweepOnce(context.Background())

	assert.Empty(t, disp.sent())
}

func TestMutations_ScopedToOwner(t *testing.T) {
	svc, repo, _ := newTestService()
	created, err := svc.Add(models.Reminder{
		UserID:       "margaret",
		Title:        "Morning medication",
		ScheduledFor: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	// Another authenticated user cannot touch the reminder through any
	// mutation, and learns nothing beyond "not found".
	var nfe NotFoundError
	newTitle := "Hijacked"
	_, err = svc.Update("sarah", created.ID, models.ReminderUpdateRequest{Title: &newTitle})
	assert.ErrorAs(t, err, &nfe)
	assert.ErrorAs(t, svc.Complete("sarah", created.ID), &nfe)
	assert.ErrorAs(t, svc.Snooze("sarah", created.ID, 10), &nfe)
	assert.ErrorAs(t, svc.Delete("sarah", created.ID), &nfe)

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored, "reminder survives the foreign mutation attempts")
	assert.Equal(t, "Morning medication", stored.Title)
	assert.False(t, stored.Completed)
	assert.Nil(t, stored.SnoozedUntil)

	// The owner still can.
	require.NoError(t, svc.Complete("margaret", created.ID))
}

func TestSweep_DispatchesAtWindowEdge(t *testing.T) {
	svc, repo, disp := newTestService()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	// Scheduled exactly one full window ago: still due, not yet expired.
	edge := models.Reminder{ID: "edge", UserID: "u1", Title: "Lunch", ScheduledFor: now.Add(-DueWindow)}
	require.NoError(t, repo.Create(&edge))

	sweeper := NewSweeper(svc, 0, 0)
	sweeper.nowFn = func() time.Time { return now }
	sweeper.SweepOnce(context.Background())

	assert.Equal(t, []string{"edge"}, disp.sent())
}

func TestSweeper_StartStop(t *testing.T) {
	svc, repo, disp := newTestService()
	sweeper := NewSweeper(svc, 10*time.Millisecond, time.Minute)

	require.NoError(t, sweeper.Start(context.Background()))
	assert.True(t, sweeper.IsRunning())
	assert.Error(t, sweeper.Start(context.Background()), "a running sweeper rejects a second start")

	sweeper.Stop()
	assert.False(t, sweeper.IsRunning())
	sweeper.Stop() // stopping twice is safe

	// A reminder that comes due after the stop is never dispatched.
	rem := models.Reminder{ID: "r1", UserID: "u1", Title: "Pills", ScheduledFor: time.Now().Add(-time.Second)}
	require.NoError(t, repo.Create(&rem))
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, disp.sent())
}

func TestSweeper_ContextCancelStopsLoop(t *testing.T) {
	svc, repo, disp := newTestService()
	sweeper := NewSweeper(svc, 10*time.Millisecond, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, sweeper.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !sweeper.IsRunning() },
		time.Second, 5*time.Millisecond, "cancelling the context winds the loop down")

	rem := models.Reminder{ID: "r1", UserID: "u1", Title: "Pills", ScheduledFor: time.Now().Add(-time.Second)}
	require.NoError(t, repo.Create(&rem))
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, disp.sent())

	// A wound-down sweeper can be started again.
	require.NoError(t, sweeper.Start(context.Background()))
	sweeper.Stop()
}

func TestNextOccurrence(t *testing.T) {
	base := time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC)

	next, err := NextOccurrence("hourly", base)
	require.NoError(t, err)
	assert.True(t, next.Equal(base.Add(time.Hour)))

	next, err = NextOccurrence("weekly", base)
	require.NoError(t, err)
	assert.True(t, next.Equal(base.AddDate(0, 0, 7)))

	// Cron specs are accepted too: every day at 09:00.
	next, err = NextOccurrence("0 9 * * *", base)
	require.NoError(t, err)
	assert.Equal(t, 9, next.Hour())
	assert.True(t, next.After(base))

	_, err = NextOccurrence("sometimes", base)
	assert.Error(t, err)
}

func TestRequestNotificationPermission(t *testing.T) {
	svc, _, disp := newTestService()
	assert.True(t, svc.RequestNotificationPermission("u1"))

	disp.ready = false
	assert.False(t, svc.RequestNotificationPermission("u1"))

	svc.Dispatcher = nil
	assert.False(t, svc.RequestNotificationPermission("u1"))
}
