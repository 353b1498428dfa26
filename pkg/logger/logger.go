package logger

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// SetupLogger configures the standard logrus logger. When auditFile is not
// empty every record is also appended to that file. The returned closer
// releases the audit file and is never nil.
func SetupLogger(level, auditFile string) io.Closer {
	loggerLevel, err := log.ParseLevel(level)
	log.SetReportCaller(true)

	log.SetFormatter(&log.JSONFormatter{
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			return "", fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
		},
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err != nil {
		log.Infof("Level setup default INFO, err: %v", err)
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(loggerLevel)
	}

	if auditFile == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}

	f, err := os.OpenFile(auditFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.WithField("audit_file", auditFile).Warnf("Audit file is unavailable: %v", err)
		return nopCloser{}
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))

	return f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
