package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fooddiary/internal/flagx"
	"github.com/dmitrijs2005/fooddiary/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept both "60s" and
// integer nanoseconds. Absent or zero fields leave the current value alone.
type JsonConfig struct {
	Transport          string         `json:"transport"`
	TelegramToken      string         `json:"telegram_token"`
	DataDir            string         `json:"data_dir"`
	GeminiAPIKey       string         `json:"gemini_api_key"`
	GeminiModel        string         `json:"gemini_model"`
	ReferenceTimezone  string         `json:"reference_timezone"`
	OutputTimezone     string         `json:"output_timezone"`
	OutputTimezoneName string         `json:"output_timezone_name"`
	HealthAddr         string         `json:"health_addr"`
	LogLevel           string         `json:"log_level"`
	Workers            int            `json:"workers"`
	PollTimeout        timex.Duration `json:"poll_timeout"`
	ReportWindow       int            `json:"report_window"`
	MediaBackend       string         `json:"media_backend"`
	S3AccessKey        string         `json:"s3_access_key"`
	S3SecretKey        string         `json:"s3_secret_key"`
	S3Bucket           string         `json:"s3_bucket"`
	S3Region           string         `json:"s3_region"`
	S3BaseEndpoint     string         `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c/-config into config. Without the
// flag nothing happens. An unreadable file or invalid JSON panics, since
// the process cannot start with a config it was explicitly pointed at.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.Transport, c.Transport)
	setString(&config.TelegramToken, c.TelegramToken)
	setString(&config.DataDir, c.DataDir)
	setString(&config.GeminiAPIKey, c.GeminiAPIKey)
	setString(&config.GeminiModel, c.GeminiModel)
	setString(&config.ReferenceTimezone, c.ReferenceTimezone)
	setString(&config.OutputTimezone, c.OutputTimezone)
	setString(&config.OutputTimezoneName, c.OutputTimezoneName)
	setString(&config.HealthAddr, c.HealthAddr)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.MediaBackend, c.MediaBackend)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.Workers != 0 {
		config.Workers = c.Workers
	}
	if c.ReportWindow != 0 {
		config.ReportWindow = c.ReportWindow
	}
	if c.PollTimeout.Duration != 0 {
		config.PollTimeout = c.PollTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
