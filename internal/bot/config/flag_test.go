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
		{name: "all flags", args: []string{"cmd",
			"-x", "console", "-t", "123:abc", "-d", "/srv/diary", "-k", "key", "-m", "gemini-2.0-flash",
			"-z", "UTC", "-o", "Europe/Berlin", "-n", "Berlin", "-a", "127.0.0.1:9090", "-l", "debug",
			"-w", "2", "-i", "30", "-r", "14", "-b", "s3", "-u", "user", "-p", "password",
			"-s", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
		},
			expected: &Config{
				Transport:          "console",
				TelegramToken:      "123:abc",
				DataDir:            "/srv/diary",
				GeminiAPIKey:       "key",
				GeminiModel:        "gemini-2.0-flash",
				ReferenceTimezone:  "UTC",
				OutputTimezone:     "Europe/Berlin",
				OutputTimezoneName: "Berlin",
				HealthAddr:         "127.0.0.1:9090",
				LogLevel:           "debug",
				Workers:            2,
				PollTimeout:        30 * time.Second,
				ReportWindow:       14,
				MediaBackend:       "s3",
				S3AccessKey:        "user",
				S3SecretKey:        "password",
				S3Bucket:           "bucket",
				S3Region:           "us-west-1",
				S3BaseEndpoint:     "http://endpoint",
			}},
		{name: "unrelated flags ignored", args: []string{"cmd", "-c", "bot.json", "-t", "tok", "--verbose"},
			expected: &Config{TelegramToken: "tok"}},
		{name: "bad int panics", args: []string{"cmd", "-w", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
