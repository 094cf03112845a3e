package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:8080", "-g", "127.0.0.1:9090", "-d", "db",
				"-m", "4", "-t", "2", "-r", "7", "-p", "4", "-l", "DEBUG",
			},
			expected: &Config{
				HTTPAddr:         "127.0.0.1:8080",
				GRPCAddr:         "127.0.0.1:9090",
				DatabaseDSN:      "db",
				DBMaxConns:       4,
				DBConnectTimeout: 2 * time.Second,
				RequestTimeout:   7 * time.Second,
				PasswordCost:     4,
				LogLevel:         "DEBUG",
			},
		},
		{
			name: "unrelated flags ignored, durations untouched",
			args: []string{"-c", "cfg.json", "-test.v", "-a", ":1"},
			expected: &Config{
				HTTPAddr:         ":1",
				DBConnectTimeout: 1500 * time.Millisecond,
				RequestTimeout:   250 * time.Millisecond,
			},
		},
		{
			name:        "non-numeric int",
			args:        []string{"-m", "lots"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{
				DBConnectTimeout: 1500 * time.Millisecond,
				RequestTimeout:   250 * time.Millisecond,
			}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config, tt.args) })
			assert.Equal(t, tt.expected, config)
		})
	}
}
