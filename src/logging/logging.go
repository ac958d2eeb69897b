package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// Setup configures the process-wide logger. file may be empty (stderr only),
// "auto" (timestamped file in the working directory) or an explicit path.
// The returned func closes the log file, if one was opened.
func Setup(level, file string) (func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if file == "" {
		return func() {}, nil
	}
	if file == "auto" {
		file = DefaultLogFilename(time.Now())
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

// DefaultLogFilename names a per-run log file, dfscan_YYYYMMDD_HHMMSS.log.
func DefaultLogFilename(now time.Time) string {
	return "dfscan_" + now.Format("20060102_150405") + ".log"
}
