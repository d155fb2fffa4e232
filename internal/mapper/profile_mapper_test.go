package mapper

import (
	"testing"
	"time"

	"maplemed-support-be/pkg/store"
	"maplemed-support-be/pkg/support/memory"

	"github.com/stretchr/testify/assert"
)

func TestProfileMapperRoundTrip(t *testing.T) {
	m := NewProfileMapper()
	now := time.Now().UTC().Truncate(time.Second)

	in := &store.Profile{
		UserID:     "u1",
		Values:     memory.Map{"mood": "calm"},
		Persistent: memory.Map{"last_advice": "rest"},
		UpdatedAt:  now,
	}
	out := m.ToStore(m.ToModel(in))

	assert.Equal(t, in, out)
	assert.Nil(t, m.ToStore(nil))
	assert.Nil(t, m.ToModel(nil))
}

func TestProfileMapperNilMapsBecomeEmpty(t *testing.T) {
	m := NewProfileMapper()
	out := m.ToStore(m.ToModel(&store.Profile{UserID: "u2"}))

	assert.NotNil(t, out.Values)
	assert.NotNil(t, out.Persistent)
	assert.Empty(t, out.Values)
}
