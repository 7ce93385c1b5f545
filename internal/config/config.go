package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

type GameConfig struct {
	MaxSeats int `json:"max_seats"`
	// CPUDelayMillis configures how long an automated seat waits before acting.
	CPUDelayMillis int `json:"cpu_delay_millis"`
	// ClearPauseMillis configures the pause between a field clear and the draw phase.
	ClearPauseMillis int `json:"clear_pause_millis"`
	TickMillis       int `json:"tick_millis"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetMaxSeats returns the configured table size, or the default of 4.
func GetMaxSeats() int {
	if cfg == nil || cfg.MaxSeats <= 0 {
		return 4
	}
	return cfg.MaxSeats
}

// GetCPUDelay returns how long an automated seat waits before acting.
func GetCPUDelay() time.Duration {
	if cfg == nil || cfg.CPUDelayMillis <= 0 {
		return time.Second
	}
	return time.Duration(cfg.CPUDelayMillis) * time.Millisecond
}

// GetClearPause returns the pause between a field clear and the draw phase.
func GetClearPause() time.Duration {
	if cfg == nil || cfg.ClearPauseMillis <= 0 {
		return time.Second
	}
	return time.Duration(cfg.ClearPauseMillis) * time.Millisecond
}

// GetTickInterval returns how often rooms are ticked for deferred effects.
func GetTickInterval() time.Duration {
	if cfg == nil || cfg.TickMillis <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(cfg.TickMillis) * time.Millisecond
}
