package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "http://10.0.0.1:5000/api", "-i", "10", "-t", "20"}, expectPanic: false,
			expected: &Config{ServerURL: "http://10.0.0.1:5000/api", OnlineCheckInterval: 10 * time.Second, RequestTimeout: 20 * time.Second}},
		{name: "Test2 db path and log level", args: []string{"cmd", "-d", "/tmp/s.db", "-l", "debug"}, expectPanic: false,
			expected: &Config{DBPath: "/tmp/s.db", LogLevel: "debug"}},
		{name: "Test3 unrelated flags ignored", args: []string{"cmd", "-c", "cfg.json", "-x", "1"}, expectPanic: false,
			expected: &Config{}},
		{name: "Test4 incorrect check interval", args: []string{"cmd", "-a", "http://h/api", "-i", "abc"}, expectPanic: true, expected: &Config{}},
		{name: "Test5 incorrect timeout", args: []string{"cmd", "-t", "1.5"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
