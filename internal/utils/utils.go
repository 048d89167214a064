package utils

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
)

var Log = logrus.New()

func SetLogLevel(level string) {
	// We are not using logrus' trace and panic levels
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(log.DebugLevel)
	case "info":
		Log.SetLevel(log.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(log.WarnLevel)
	case "error":
		Log.SetLevel(log.ErrorLevel)
	case "fatal":
		Log.SetLevel(log.FatalLevel)
	default:
		log.Fatal("Bad error level string")
	}
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// ISOTimestamp formats t as an ISO-8601 string with millisecond precision,
// always in UTC. Records, backups and log entries all carry this format.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// ISONow is ISOTimestamp for the current time.
func ISONow() string {
	return ISOTimestamp(time.Now())
}

// DateStamp returns the YYYY-MM-DD part of t, used in export filenames.
func DateStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
