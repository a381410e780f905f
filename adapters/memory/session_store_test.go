package memory

import (
	"context"
	"errors"
	"testing"

	"gamblelab/domain/core"
	"gamblelab/domain/experiment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := experiment.NewSession(42, 10)
	require.NoError(t, store.Create(ctx, session))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Participant, got.Participant)

	session.Phase = experiment.PhasePreTest
	require.NoError(t, store.Save(ctx, session))

	got, err = store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, experiment.PhasePreTest, got.Phase)
}

func TestSessionStoreMissing(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	_, err := store.Get(ctx, core.SessionID("missing"))
	assert.True(t, errors.Is(err, core.ErrSessionNotFound))

	err = store.Save(ctx, experiment.NewSession(1, 10))
	assert.True(t, errors.Is(err, core.ErrSessionNotFound))

	err = store.Delete(ctx, core.SessionID("missing"))
	assert.True(t, errors.Is(err, core.ErrSessionNotFound))
}

func TestSessionStoreDelete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := experiment.NewSession(42, 10)
	require.NoError(t, store.Create(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, err := store.Get(ctx, session.ID)
	assert.True(t, errors.Is(err, core.ErrSessionNotFound))
}

func TestSessionStoreListIsolation(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	a := experiment.NewSession(1, 10)
	b := experiment.NewSession(2, 10)
	require.NoError(t, store.Create(ctx, a))
	require.NoError(t, store.Create(ctx, b))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	// Two sessions never share participant identity or state.
	assert.NotEqual(t, a.Participant, b.Participant)
	assert.NotEqual(t, a.ID, b.ID)
}
