// Package config handles configuration for the diary bot, including
// defaults, a JSON overlay, environment variables and command-line flags.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/common"
)

const (
	TransportTelegram = "telegram"
	TransportConsole  = "console"

	MediaLocal = "local"
	MediaS3    = "s3"
)

// Config holds runtime settings for the bot.
//
// Fields:
//   - Transport: "telegram" (default) or "console" for local use.
//   - TelegramToken: bot API token, required for the telegram transport.
//   - DataDir: directory holding entries.jsonl and the media folder.
//   - GeminiAPIKey / GeminiModel: enable /cal when the key is set.
//   - ReferenceTimezone: zone in which /time words are read.
//   - OutputTimezone / OutputTimezoneName: zone /time reports in. An empty
//     name labels the zone by its id ("Helsinki" for Europe/Helsinki).
//   - HealthAddr: gRPC health endpoint; empty disables it.
//   - Workers / PollTimeout: update dispatch shards and long-poll timeout.
//   - MediaBackend and S3*: where photos are stored.
type Config struct {
	Transport          string
	TelegramToken      string
	DataDir            string
	GeminiAPIKey       string
	GeminiModel        string
	ReferenceTimezone  string
	OutputTimezone     string
	OutputTimezoneName string
	HealthAddr         string
	LogLevel           string
	Workers            int
	PollTimeout        time.Duration
	ReportWindow       int
	MediaBackend       string
	S3AccessKey        string
	S3SecretKey        string
	S3Bucket           string
	S3Region           string
	S3BaseEndpoint     string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Transport = TransportTelegram
	c.DataDir = "./data"
	c.GeminiModel = "gemini-1.5-flash"
	c.ReferenceTimezone = "Europe/Helsinki"
	c.OutputTimezone = "Europe/Helsinki"
	c.HealthAddr = ":50051"
	c.LogLevel = "info"
	c.Workers = 4
	c.PollTimeout = 60 * time.Second
	c.ReportWindow = common.DefaultReportWindow
	c.MediaBackend = MediaLocal
	c.S3Bucket = "fooddiary"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports settings the bot cannot start with.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportTelegram:
		if c.TelegramToken == "" {
			return fmt.Errorf("%w: set TELEGRAM_TOKEN or -t", common.ErrMissingToken)
		}
	case TransportConsole:
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}

	switch c.MediaBackend {
	case MediaLocal:
	case MediaS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3 media backend needs a bucket")
		}
	default:
		return fmt.Errorf("unknown media backend %q", c.MediaBackend)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory is not set")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// JournalPath is the location of the append-only diary log.
func (c *Config) JournalPath() string {
	return filepath.Join(c.DataDir, common.JournalFileName)
}

// MediaDir is where the local media backend keeps photos.
func (c *Config) MediaDir() string {
	return filepath.Join(c.DataDir, common.MediaDirName)
}
