package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryCreatesOnFirstReference(t *testing.T) {
	reg := NewRegistry(DefaultOptions())

	_, ok := reg.Lookup("lobby-1")
	require.False(t, ok)

	room := reg.Get("lobby-1")
	require.NotNil(t, room)
	require.Same(t, room, reg.Get("lobby-1"))

	found, ok := reg.Lookup("lobby-1")
	require.True(t, ok)
	require.Same(t, room, found)
}

func TestRegistryEachVisitsAllRooms(t *testing.T) {
	reg := NewRegistry(DefaultOptions())
	reg.Get("a")
	reg.Get("b")

	seen := map[string]bool{}
	reg.Each(func(r *Room) { seen[r.ID] = true })
	require.Equal(t, map[string]bool{"a": true, "b": true}, seen)
}
