package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseContext(t *testing.T) {
	tests := []struct {
		path string
		want PageContext
	}{
		{path: "/", want: PageContext{Kind: PageOwnFeed}},
		{path: "/profile/alice", want: PageContext{Kind: PageProfile, Profile: "alice"}},
		{path: "/profile/Alice", want: PageContext{Kind: PageProfile, Profile: "alice"}},
		{path: "/profile/alice/", want: PageContext{Kind: PageProfile, Profile: "alice"}},
		{path: "/profile/", want: PageContext{}},
		{path: "/profile/alice/followers", want: PageContext{}},
		{path: "/settings", want: PageContext{}},
		{path: "", want: PageContext{}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ParseContext(tt.path), "path %q", tt.path)
	}
}

func TestPageContextMatch(t *testing.T) {
	ownFeed := PageContext{Kind: PageOwnFeed}
	require.True(t, ownFeed.Match("user1", "user1", "alice"))
	require.False(t, ownFeed.Match("user2", "user1", "alice"))

	profile := PageContext{Kind: PageProfile, Profile: "alice"}
	require.True(t, profile.Match("user2", "user1", "alice"))
	require.True(t, profile.Match("user2", "user1", "Alice"))
	require.False(t, profile.Match("user2", "user2", "bob"))

	require.False(t, PageContext{}.Match("user1", "user1", "alice"))
}
