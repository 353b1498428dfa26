package logginghelper

import (
	"github.com/Egor213/LogiScan/internal/domain"
	log "github.com/sirupsen/logrus"
)

func LogReceived(remoteIP, format string, size int64) {
	log.WithFields(log.Fields{
		"remote_ip": remoteIP,
		"format":    format,
		"size":      size,
	}).Info("Received log for analysis via HTTP")
}

func LogAnalyzed(remoteIP string, a domain.Analysis) {
	log.WithFields(log.Fields{
		"remote_ip": remoteIP,
		"requests":  a.Stats.TotalRequests,
		"incidents": len(a.Security.Incidents),
		"errors":    len(a.Stats.Errors),
		"skipped":   a.Lines.Skipped(),
	}).Info("Log analyzed successfully")
}

func LogError(remoteIP string, err error) {
	log.WithFields(log.Fields{
		"remote_ip": remoteIP,
		"error":     err,
	}).Error("Failed to analyze log")
}
