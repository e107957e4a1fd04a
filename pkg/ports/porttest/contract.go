// Package porttest provides reusable contract suites that verify adapter
// compliance with the ports interfaces.
package porttest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okapen/inkwell/pkg/domain"
	"github.com/okapen/inkwell/pkg/ports"
)

// RunEventLogContract verifies that log complies with ports.EventLog:
// per-key append order, sequence stamping, key isolation, and round-trip
// fidelity of full session snapshots.
func RunEventLogContract(t *testing.T, log ports.EventLog) {
	t.Helper()
	ctx := context.Background()

	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	session := domain.NewSession("CS101_syllabus_1", "syllabus", domain.Identity{
		CourseCode: "CS101",
		Title:      "Intro to Computer Science",
	}, base)
	session.Fields["instructor_name"] = "Dr. A"

	t.Run("ReadAll_Empty", func(t *testing.T) {
		recs, err := log.ReadAll(ctx, "no-such-key")
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("Append_PreservesOrderAndSeq", func(t *testing.T) {
		require.NoError(t, log.Append(ctx, session.ID, domain.NewSnapshot(session)))

		updated := session.Clone()
		updated.Fields["semester"] = "Fall 2025"
		updated.LastUpdated = base.Add(time.Minute)
		require.NoError(t, log.Append(ctx, session.ID, domain.NewSnapshot(updated)))

		recs, err := log.ReadAll(ctx, session.ID)
		require.NoError(t, err)
		require.Len(t, recs, 2)

		for i, rec := range recs {
			assert.Equal(t, int64(i), rec.Seq)
		}
		assert.Equal(t, "Dr. A", recs[0].Session.Fields["instructor_name"])
		assert.Equal(t, "Fall 2025", recs[1].Session.Fields["semester"])
	})

	t.Run("RoundTrip_FullSession", func(t *testing.T) {
		recs, err := log.ReadAll(ctx, session.ID)
		require.NoError(t, err)
		got := recs[0].Session
		assert.Equal(t, session.ID, got.ID)
		assert.Equal(t, session.Kind, got.Kind)
		assert.Equal(t, session.Identity, got.Identity)
		assert.True(t, got.CreatedAt.Equal(session.CreatedAt))
		assert.True(t, got.LastUpdated.Equal(session.LastUpdated))
	})

	t.Run("Tombstone_RoundTrip", func(t *testing.T) {
		tomb := domain.NewTombstone(session.ID, base.Add(2*time.Minute))
		require.NoError(t, log.Append(ctx, session.ID, tomb))

		recs, err := log.ReadAll(ctx, session.ID)
		require.NoError(t, err)
		last := recs[len(recs)-1]
		assert.True(t, last.Tombstone)
		assert.Nil(t, last.Session)
		assert.True(t, last.LastUpdated.Equal(tomb.LastUpdated))
	})

	t.Run("Keys_Isolated", func(t *testing.T) {
		other := domain.NewSession("MATH201_exam_1", "exam", domain.Identity{
			CourseCode: "MATH201",
			Title:      "Midterm",
		}, base)
		require.NoError(t, log.Append(ctx, other.ID, domain.NewSnapshot(other)))

		recs, err := log.ReadAll(ctx, other.ID)
		require.NoError(t, err)
		require.Len(t, recs, 1)

		keys, err := log.ListKeys(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, session.ID)
		assert.Contains(t, keys, other.ID)
	})
}
