package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okapen/inkwell/pkg/adapters/memory"
	"github.com/okapen/inkwell/pkg/domain"
)

var base = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newSession(id string, at time.Time) *domain.Session {
	return domain.NewSession(id, "syllabus", domain.Identity{
		CourseCode: "CS101",
		Title:      "Intro",
	}, at)
}

func TestStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := New(memory.NewLog(), WithClock(fixedClock(base)))

	sess := newSession("cs101_syllabus_1", base)
	require.NoError(t, s.Create(ctx, sess))

	got, err := s.Get(ctx, "cs101_syllabus_1")
	require.NoError(t, err)
	assert.Equal(t, "cs101_syllabus_1", got.ID)
	assert.Equal(t, "syllabus", got.Kind)

	// The returned state is a copy; mutating it must not leak back.
	got.Fields["instructor_name"] = "mutated"
	again, err := s.Get(ctx, "cs101_syllabus_1")
	require.NoError(t, err)
	assert.NotContains(t, again.Fields, "instructor_name")
}

func TestStore_Get_Unknown(t *testing.T) {
	s := New(memory.NewLog())
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_Create_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := New(memory.NewLog(), WithClock(fixedClock(base)))

	require.NoError(t, s.Create(ctx, newSession("dup", base)))
	err := s.Create(ctx, newSession("dup", base.Add(time.Hour)))
	assert.ErrorIs(t, err, domain.ErrDuplicateSession)
}

func TestStore_Create_ReusesTombstonedID(t *testing.T) {
	ctx := context.Background()
	s := New(memory.NewLog(), WithClock(fixedClock(base)))

	require.NoError(t, s.Create(ctx, newSession("reborn", base)))
	require.NoError(t, s.Delete(ctx, "reborn"))

	// After deletion the id resolves to nothing, so create succeeds again.
	fresh := newSession("reborn", base.Add(time.Hour))
	fresh.LastUpdated = base.Add(time.Hour)
	require.NoError(t, s.Create(ctx, fresh))

	_, err := s.Get(ctx, "reborn")
	require.NoError(t, err)
}

func TestStore_Update_LatestWins(t *testing.T) {
	ctx := context.Background()
	s := New(memory.NewLog(), WithClock(fixedClock(base.Add(time.Minute))))

	sess := newSession("s1", base)
	require.NoError(t, s.Create(ctx, sess))

	sess.Fields["instructor_name"] = "Dr. Lovelace"
	updated, err := s.Update(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, base.Add(time.Minute), updated.LastUpdated)

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Lovelace", got.Fields["instructor_name"])
}

func TestStore_Update_MonotonicWithStalledClock(t *testing.T) {
	// With a clock that never advances, each update must still produce a
	// strictly greater LastUpdated than the last resolved state.
	ctx := context.Background()
	s := New(memory.NewLog(), WithClock(fixedClock(base)))

	sess := newSession("s1", base)
	require.NoError(t, s.Create(ctx, sess))

	first, err := s.Update(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, base.Add(time.Millisecond), first.LastUpdated)

	second, err := s.Update(ctx, sess)
	require.NoError(t, err)
	assert.True(t, second.LastUpdated.After(first.LastUpdated))

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, second.LastUpdated, got.LastUpdated)
}

func TestStore_Update_Deleted(t *testing.T) {
	ctx := context.Background()
	s := New(memory.NewLog(), WithClock(fixedClock(base)))

	sess := newSession("s1", base)
	require.NoError(t, s.Create(ctx, sess))
	require.NoError(t, s.Delete(ctx, "s1"))

	_, err := s.Update(ctx, sess)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_Delete_TombstoneOutlivesEarlierSnapshots(t *testing.T) {
	ctx := context.Background()
	log := memory.NewLog()
	s := New(log, WithClock(fixedClock(base)))

	sess := newSession("s1", base)
	require.NoError(t, s.Create(ctx, sess))
	require.NoError(t, s.Delete(ctx, "s1"))

	_, err := s.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// A snapshot replayed with a timestamp at or before the tombstone's
	// stays dead: the tombstone wins ties.
	stale := newSession("s1", base)
	require.NoError(t, log.Append(ctx, "s1", domain.NewSnapshot(stale)))
	_, err = s.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_Resolve_SnapshotNewerThanTombstoneSurvives(t *testing.T) {
	ctx := context.Background()
	log := memory.NewLog()
	s := New(log)

	// History written by another producer: snapshot, tombstone, then a
	// strictly newer snapshot. The session is live again.
	old := newSession("s1", base)
	require.NoError(t, log.Append(ctx, "s1", domain.NewSnapshot(old)))
	require.NoError(t, log.Append(ctx, "s1", domain.NewTombstone("s1", base.Add(time.Second))))

	revived := newSession("s1", base.Add(2*time.Second))
	revived.LastUpdated = base.Add(2 * time.Second)
	require.NoError(t, log.Append(ctx, "s1", domain.NewSnapshot(revived)))

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, base.Add(2*time.Second), got.LastUpdated)
}

func TestStore_Resolve_SeqBreaksSnapshotTies(t *testing.T) {
	ctx := context.Background()
	log := memory.NewLog()
	s := New(log)

	first := newSession("s1", base)
	first.Fields["instructor_name"] = "first"
	second := newSession("s1", base)
	second.Fields["instructor_name"] = "second"

	require.NoError(t, log.Append(ctx, "s1", domain.NewSnapshot(first)))
	require.NoError(t, log.Append(ctx, "s1", domain.NewSnapshot(second)))

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Fields["instructor_name"])
}

func TestStore_List_ExcludesDeleted(t *testing.T) {
	ctx := context.Background()
	s := New(memory.NewLog(), WithClock(fixedClock(base)))

	require.NoError(t, s.Create(ctx, newSession("b", base)))
	require.NoError(t, s.Create(ctx, newSession("a", base)))
	require.NoError(t, s.Create(ctx, newSession("c", base)))
	require.NoError(t, s.Delete(ctx, "b"))

	sessions, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "a", sessions[0].ID)
	assert.Equal(t, "c", sessions[1].ID)
}

func TestStore_Latest(t *testing.T) {
	ctx := context.Background()
	s := New(memory.NewLog())

	first := newSession("a", base)
	second := newSession("b", base.Add(time.Minute))
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", latest.ID)
}

func TestStore_Latest_TieGoesToGreaterID(t *testing.T) {
	ctx := context.Background()
	s := New(memory.NewLog())

	require.NoError(t, s.Create(ctx, newSession("a", base)))
	require.NoError(t, s.Create(ctx, newSession("b", base)))

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", latest.ID)
}

func TestStore_Latest_Empty(t *testing.T) {
	s := New(memory.NewLog())
	_, err := s.Latest(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_Cache_InvalidatedByOwnWrites(t *testing.T) {
	ctx := context.Background()
	log := memory.NewLog()
	s := New(log, WithClock(fixedClock(base)), WithCache())

	sess := newSession("s1", base)
	require.NoError(t, s.Create(ctx, sess))

	// Prime the cache.
	_, err := s.Get(ctx, "s1")
	require.NoError(t, err)

	sess.Fields["semester"] = "Fall 2026"
	_, err = s.Update(ctx, sess)
	require.NoError(t, err)

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Fall 2026", got.Fields["semester"])

	require.NoError(t, s.Delete(ctx, "s1"))
	_, err = s.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
