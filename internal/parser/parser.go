// Package parser decodes access-log lines of the form
//
//	IP - - [TIMESTAMP] "METHOD URL PROTOCOL" STATUS SIZE
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Egor213/LogiScan/internal/domain"
)

// accessLogPattern is anchored at the start only; referer and user agent
// columns after SIZE are ignored.
const accessLogPattern = `^(\S+) - - \[(.*?)\] "(\S+) (\S+) \S+" (\d+) (\d+)`

type LineParser struct {
	re *regexp.Regexp
}

func New() *LineParser {
	return &LineParser{re: regexp.MustCompile(accessLogPattern)}
}

// Parse returns ErrMalformedLine when raw does not match the grammar and a
// *ConversionError when STATUS or SIZE overflow an int.
func (p *LineParser) Parse(raw string) (domain.LogEntry, error) {
	m := p.re.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return domain.LogEntry{}, ErrMalformedLine
	}

	status, err := strconv.Atoi(m[5])
	if err != nil {
		return domain.LogEntry{}, &ConversionError{Field: "status", Value: m[5], Err: err}
	}

	size, err := strconv.Atoi(m[6])
	if err != nil {
		return domain.LogEntry{}, &ConversionError{Field: "size", Value: m[6], Err: err}
	}

	return domain.LogEntry{
		IP:        m[1],
		Timestamp: m[2],
		Method:    m[3],
		URL:       m[4],
		Status:    status,
		Size:      size,
	}, nil
}
