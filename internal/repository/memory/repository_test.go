package memory

import (
	"context"
	"testing"
	"time"

	"maplemed-support-be/pkg/store"
	supportmem "maplemed-support-be/pkg/support/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryCopies(t *testing.T) {
	repo := NewSessionRepository(time.Minute, time.Minute)
	s := &store.Session{ID: "s1", UserID: "u1", Memory: supportmem.Map{"previous_intent": "advice"}}
	repo.Save(s)

	s.Memory["previous_intent"] = "mutated"
	got, ok := repo.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "advice", got.Memory["previous_intent"])

	got.Memory["x"] = "y"
	again, _ := repo.Get("s1")
	assert.NotContains(t, again.Memory, "x")
	assert.Equal(t, 1, repo.Count())
}

func TestSessionRepositoryExpiresAndDeletes(t *testing.T) {
	repo := NewSessionRepository(20*time.Millisecond, time.Minute)
	repo.Save(&store.Session{ID: "s1"})
	repo.Save(&store.Session{ID: "s2"})

	repo.Delete("s2")
	_, ok := repo.Get("s2")
	assert.False(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = repo.Get("s1")
	assert.False(t, ok)
}

func TestProfileRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository()

	missing, err := repo.FindByUserID(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	p := store.NewProfile("u1")
	p.Values["mood"] = "calm"
	require.NoError(t, repo.Save(ctx, p))
	p.Values["mood"] = "mutated"

	got, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "calm", got.Values["mood"])

	require.NoError(t, repo.Delete(ctx, "u1"))
	got, _ = repo.FindByUserID(ctx, "u1")
	assert.Nil(t, got)
}
