package config

import (
	"strconv"

	"github.com/dmitrijs2005/fooddiary/internal/flagx"
)

// parseEnv overlays settings from environment variables. Empty variables
// are ignored.
//
//	TELEGRAM_TOKEN, DATA_DIR, GEMINI_API_KEY, GEMINI_MODEL, DIARY_TZ,
//	DIARY_OUTPUT_TZ, DIARY_OUTPUT_TZ_NAME, HEALTH_ADDR, LOG_LEVEL, DIARY_WORKERS, MEDIA_BACKEND,
//	S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET, S3_REGION, S3_ENDPOINT
func parseEnv(config *Config) {
	strs := []struct {
		dst   *string
		names []string
	}{
		{&config.TelegramToken, []string{"TELEGRAM_TOKEN"}},
		{&config.DataDir, []string{"DATA_DIR"}},
		{&config.GeminiAPIKey, []string{"GEMINI_API_KEY"}},
		{&config.GeminiModel, []string{"GEMINI_MODEL"}},
		{&config.ReferenceTimezone, []string{"DIARY_TZ"}},
		{&config.OutputTimezone, []string{"DIARY_OUTPUT_TZ"}},
		{&config.OutputTimezoneName, []string{"DIARY_OUTPUT_TZ_NAME"}},
		{&config.HealthAddr, []string{"HEALTH_ADDR"}},
		{&config.LogLevel, []string{"LOG_LEVEL"}},
		{&config.MediaBackend, []string{"MEDIA_BACKEND"}},
		{&config.S3AccessKey, []string{"S3_ACCESS_KEY", "MINIO_ROOT_USER"}},
		{&config.S3SecretKey, []string{"S3_SECRET_KEY", "MINIO_ROOT_PASSWORD"}},
		{&config.S3Bucket, []string{"S3_BUCKET"}},
		{&config.S3Region, []string{"S3_REGION"}},
		{&config.S3BaseEndpoint, []string{"S3_ENDPOINT"}},
	}

	for _, s := range strs {
		if v, ok := flagx.Getenv(s.names...); ok {
			*s.dst = v
		}
	}

	if v, ok := flagx.Getenv("DIARY_WORKERS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.Workers = n
		}
	}
}
