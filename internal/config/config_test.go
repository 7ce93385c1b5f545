package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultsWithoutLoadedConfig(t *testing.T) {
	require.Equal(t, 4, GetMaxSeats())
	require.Equal(t, time.Second, GetCPUDelay())
	require.Equal(t, time.Second, GetClearPause())
	require.Equal(t, 100*time.Millisecond, GetTickInterval())
}

func TestLoadGameConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.json")
	body := `{"max_seats":3,"cpu_delay_millis":250,"clear_pause_millis":500,"tick_millis":50}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	require.NoError(t, LoadGameConfig(path))
	t.Cleanup(func() { cfg = nil })

	require.Equal(t, 3, GetMaxSeats())
	require.Equal(t, 250*time.Millisecond, GetCPUDelay())
	require.Equal(t, 500*time.Millisecond, GetClearPause())
	require.Equal(t, 50*time.Millisecond, GetTickInterval())
}
