package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type ClientConfig struct {
	ServerHost string `json:"server_host"`
	ServerPort int    `json:"server_port"`
	ServerKey  string `json:"server_key"`
	UseSSL     bool   `json:"use_ssl"`
	// DeviceID authenticates the client. Empty generates a fresh identity on
	// each run.
	DeviceID string `json:"device_id"`

	PollIntervalMillis   int `json:"poll_interval_millis"`
	ResubmitWindowMillis int `json:"resubmit_window_millis"`
	DialogTimeoutMillis  int `json:"dialog_timeout_millis"`
	TurnDurationSeconds  int `json:"turn_duration_seconds"`
}

var (
	cfg      *ClientConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadClientConfig loads the client configuration from the given path.
func LoadClientConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read client config: %w", err)
			return
		}

		var c ClientConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal client config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetClientConfig returns the global client configuration.
func GetClientConfig() *ClientConfig {
	return cfg
}

// GetPollIntervalMillis returns the poll interval, or a safe default.
func GetPollIntervalMillis() int {
	if cfg == nil || cfg.PollIntervalMillis <= 0 {
		return 1000
	}
	return cfg.PollIntervalMillis
}

// GetResubmitWindowMillis returns the resubmit safety window, or the default.
func GetResubmitWindowMillis() int {
	if cfg == nil || cfg.ResubmitWindowMillis <= 0 {
		return 4000
	}
	return cfg.ResubmitWindowMillis
}
