package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"remindbot/internal/scheduler"
	"remindbot/internal/timerule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRehydrateFixture() (*MemoryRepository, *scheduler.Engine, *Rehydrator) {
	repo := NewMemoryRepository(russianDays)
	engine := scheduler.NewEngine(zap.NewNop())
	return repo, engine, NewRehydrator(repo, engine, zap.NewNop())
}

func seed(t *testing.T, repo *MemoryRepository, owner, chat int64, day string, at interface{}, text string) int64 {
	t.Helper()
	id, err := repo.SeedRaw(owner, chat, day, at, text)
	require.NoError(t, err)
	return id
}

func TestRehydrator_RunArmsEveryRow(t *testing.T) {
	repo, engine, r := newRehydrateFixture()
	ctx := context.Background()

	a := seed(t, repo, 1, 100, "вторник", "09:00:00", "legacy row")
	b := seed(t, repo, 1, 100, "fri", []byte("18:30"), "canonical row")
	c := seed(t, repo, 2, 200, "7", time.Date(0, 1, 1, 7, 15, 0, 0, time.UTC), "numeric day")
	require.NoError(t, repo.UpsertTimezone(ctx, 2, "Asia/Tokyo"))

	armed, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, armed)
	assert.Equal(t, []int64{a, b, c}, engine.ArmedIDs())

	after := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)

	// owner 1 has no stored timezone and runs in UTC
	next, ok := engine.NextFire(a, after)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.May, 6, 9, 0, 0, 0, time.UTC), next.UTC())
	assert.False(t, repo.HasTimezoneRow(1))

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	next, ok = engine.NextFire(c, after)
	require.True(t, ok)
	assert.True(t, next.Equal(time.Date(2025, time.May, 11, 7, 15, 0, 0, tokyo)))
}

func TestRehydrator_RunOnlyOnce(t *testing.T) {
	repo, engine, r := newRehydrateFixture()
	seed(t, repo, 1, 100, "mon", "09:00", "x")

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	armed, err := r.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRehydrated)
	assert.Zero(t, armed)
	assert.Equal(t, 1, engine.Len())
}

func TestRehydrator_RunRetryableAfterStoreFailure(t *testing.T) {
	repo, engine, r := newRehydrateFixture()
	seed(t, repo, 1, 100, "mon", "09:00", "x")

	repo.FailOn("list_all", errors.New("connection refused"))
	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Zero(t, engine.Len())

	repo.FailOn("list_all", nil)
	armed, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, armed)
}

func TestRehydrator_EmptyStore(t *testing.T) {
	_, engine, r := newRehydrateFixture()

	armed, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, armed)
	assert.Zero(t, engine.Len())
}

func TestRehydrator_UnknownTimezoneFallsBackToUTC(t *testing.T) {
	repo, engine, r := newRehydrateFixture()
	id := seed(t, repo, 1, 100, "sun", "10:00", "x")
	require.NoError(t, repo.UpsertTimezone(context.Background(), 1, "Mars/Olympus"))

	armed, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, armed)

	next, ok := engine.NextFire(id, time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.May, 11, 10, 0, 0, 0, time.UTC), next.UTC())
}

func TestRehydrator_SkipsUnreadableRows(t *testing.T) {
	repo, engine, r := newRehydrateFixture()
	good := seed(t, repo, 1, 100, "mon", "09:00", "good")
	seed(t, repo, 1, 100, "someday", "09:00", "bad day")

	armed, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, armed)
	assert.Equal(t, []int64{good}, engine.ArmedIDs())
}

func TestRehydrator_ReconcileDisarmsOrphansAndRearms(t *testing.T) {
	repo, engine, r := newRehydrateFixture()
	ctx := context.Background()

	kept := seed(t, repo, 1, 100, "mon", "09:00", "kept")
	orphan := seed(t, repo, 2, 100, "tue", "09:00", "orphan")
	_, err := r.Run(ctx)
	require.NoError(t, err)

	// owner 2 disappears without the event reaching the engine
	_, _, err = repo.RemoveAllowedUser(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertTimezone(ctx, 1, "Europe/Berlin"))

	result, err := r.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{Rows: 1, Armed: 1, Disarmed: 1}, result)
	assert.Equal(t, []int64{kept}, engine.ArmedIDs())
	assert.False(t, engine.IsArmed(orphan))

	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	next, ok := engine.NextFire(kept, time.Date(2025, time.May, 5, 0, 0, 0, 0, berlin))
	require.True(t, ok)
	assert.True(t, next.Equal(time.Date(2025, time.May, 5, 9, 0, 0, 0, berlin)))
}

func TestRehydrator_FailedReconcileDisarmsNothing(t *testing.T) {
	repo, engine, r := newRehydrateFixture()
	seed(t, repo, 1, 100, "mon", "09:00", "x")

	require.NoError(t, engine.Schedule(500, timerule.TimeRule{Day: timerule.Monday}, scheduler.Payload{}))

	repo.FailOn("list_all", errors.New("timeout"))
	_, err := r.Reconcile(context.Background())
	require.Error(t, err)
	assert.True(t, engine.IsArmed(500))
}
