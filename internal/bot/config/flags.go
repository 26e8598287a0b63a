package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/flagx"
)

var ownFlags = []string{
	"-x", "-t", "-d", "-k", "-m", "-z", "-o", "-n", "-a", "-l", "-w", "-i", "-r",
	"-b", "-u", "-p", "-s", "-g", "-e",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-x string   transport: telegram or console
//	-t string   telegram bot token
//	-d string   data directory
//	-k string   Gemini API key
//	-m string   Gemini model
//	-z string   reference timezone for /time
//	-o string   output timezone for /time
//	-n string   display name of the output timezone
//	-a string   gRPC health address, empty disables
//	-l string   log level
//	-w int      dispatch workers
//	-i int      long-poll timeout, seconds
//	-r int      report window, days
//	-b string   media backend: local or s3
//	-u string   S3 access key
//	-p string   S3 secret key
//	-s string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Only the flags above are taken from os.Args (see flagx.FilterArgs), so
// -c/-config and unrelated arguments do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], ownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Transport, "x", config.Transport, "transport: telegram or console")
	fs.StringVar(&config.TelegramToken, "t", config.TelegramToken, "telegram bot token")
	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")
	fs.StringVar(&config.GeminiAPIKey, "k", config.GeminiAPIKey, "Gemini API key")
	fs.StringVar(&config.GeminiModel, "m", config.GeminiModel, "Gemini model")
	fs.StringVar(&config.ReferenceTimezone, "z", config.ReferenceTimezone, "reference timezone")
	fs.StringVar(&config.OutputTimezone, "o", config.OutputTimezone, "output timezone")
	fs.StringVar(&config.OutputTimezoneName, "n", config.OutputTimezoneName, "output timezone display name")
	fs.StringVar(&config.HealthAddr, "a", config.HealthAddr, "gRPC health address")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.IntVar(&config.Workers, "w", config.Workers, "dispatch workers")
	pollTimeout := fs.Int("i", int(config.PollTimeout.Seconds()), "long-poll timeout (in seconds)")
	fs.IntVar(&config.ReportWindow, "r", config.ReportWindow, "report window (in days)")
	fs.StringVar(&config.MediaBackend, "b", config.MediaBackend, "media backend: local or s3")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "s", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.PollTimeout = time.Duration(*pollTimeout) * time.Second
}
