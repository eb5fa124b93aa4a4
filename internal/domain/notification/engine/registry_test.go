package engine

import (
	"testing"

	"github.com/ripple-lab/backend/internal/domain/notification/event"
	"github.com/ripple-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegistryAuthorize(t *testing.T) {
	ctx := testutil.MockContext()
	registry := NewRegistry()

	session1 := NewSession()
	session2 := NewSession()
	other := NewSession()
	registry.Register(session1)
	registry.Register(session2)
	registry.Register(other)

	registry.Authorize(ctx, session1.ID(), "user1")
	registry.Authorize(ctx, session2.ID(), "user1")
	registry.Authorize(ctx, other.ID(), "user2")

	sessions := registry.SessionsFor("user1")
	require.Len(t, sessions, 2)
	for _, s := range sessions {
		require.Equal(t, "user1", s.UserID())
	}

	require.Len(t, registry.SessionsFor("user2"), 1)
	require.Empty(t, registry.SessionsFor("user3"))

	// Authorizing an unknown session must not panic.
	registry.Authorize(ctx, "gone", "user1")
}

func TestRegistryFirstSessionVisible(t *testing.T) {
	ctx := testutil.MockContext()
	registry := NewRegistry()

	session := NewSession()
	registry.Register(session)
	registry.Authorize(ctx, session.ID(), "user1")

	// The hub the session registered into must be the one stored in the
	// user index, otherwise the first session of a user is never found.
	sessions := registry.SessionsFor("user1")
	require.Len(t, sessions, 1)
	require.Equal(t, session.ID(), sessions[0].ID())
}

func TestRegistryReauthorize(t *testing.T) {
	ctx := testutil.MockContext()
	registry := NewRegistry()

	session := NewSession()
	registry.Register(session)
	registry.Authorize(ctx, session.ID(), "user1")
	registry.Authorize(ctx, session.ID(), "user2")

	require.Empty(t, registry.SessionsFor("user1"))
	require.Len(t, registry.SessionsFor("user2"), 1)
}

func TestRegistryUnregister(t *testing.T) {
	ctx := testutil.MockContext()
	registry := NewRegistry()

	session1 := NewSession()
	session2 := NewSession()
	registry.Register(session1)
	registry.Register(session2)
	registry.Authorize(ctx, session1.ID(), "user1")
	registry.Authorize(ctx, session2.ID(), "user1")

	registry.Unregister(session1.ID())

	sessions := registry.SessionsFor("user1")
	require.Len(t, sessions, 1)
	require.Equal(t, session2.ID(), sessions[0].ID())

	// The closed session rejects further deliveries instead of panicking.
	err := session1.Deliver(event.New(&event.MessageDeletedEvent{MessageID: 1}))
	require.Error(t, err)

	registry.Unregister(session2.ID())
	require.Empty(t, registry.SessionsFor("user1"))

	// Unregistering twice is a no-op.
	registry.Unregister(session1.ID())
}

func TestRegistryContext(t *testing.T) {
	registry := NewRegistry()

	session := NewSession()
	registry.Register(session)

	require.Equal(t, PageContext{}, registry.ContextOf(session.ID()))

	registry.SetContext(session.ID(), ParseContext("/profile/alice"))
	require.Equal(t,
		PageContext{Kind: PageProfile, Profile: "alice"},
		registry.ContextOf(session.ID()))

	require.Equal(t, PageContext{}, registry.ContextOf("unknown"))
}
