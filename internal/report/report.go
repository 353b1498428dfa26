// Package report renders the final analysis state as text artifacts.
//
// Every renderer is a pure function of domain.Analysis, so the three reports
// can be produced in any order or concurrently.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Egor213/LogiScan/internal/domain"
)

const topURLs = 5

var banner = strings.Repeat("=", 50)

type Kind string

const (
	Summary  Kind = "summary"
	Security Kind = "security"
	Errors   Kind = "errors"
)

// Kinds lists the reports in their canonical order.
var Kinds = []Kind{Summary, Security, Errors}

type RenderFunc func(w io.Writer, a domain.Analysis) error

func Renderer(k Kind) (RenderFunc, bool) {
	switch k {
	case Summary:
		return WriteSummary, true
	case Security:
		return WriteSecurity, true
	case Errors:
		return WriteErrors, true
	default:
		return nil, false
	}
}

func header(w *bufio.Writer, title string) {
	fmt.Fprintf(w, "%s\n%s\n\n", title, banner)
}

func WriteSummary(w io.Writer, a domain.Analysis) error {
	bw := bufio.NewWriter(w)
	header(bw, "SERVER LOG SUMMARY")

	fmt.Fprintf(bw, "Total Requests: %d\n", a.Stats.TotalRequests)
	fmt.Fprintf(bw, "Unique IP Addresses: %d\n\n", len(a.Stats.UniqueIPs))

	bw.WriteString("HTTP Methods:\n")
	for _, c := range a.Stats.MethodCounts.Items() {
		fmt.Fprintf(bw, "%s: %d\n", c.Key, c.Count)
	}

	bw.WriteString("\nTop 5 URLs:\n")
	for _, c := range a.Stats.URLCounts.MostCommon(topURLs) {
		fmt.Fprintf(bw, "%s: %d\n", c.Key, c.Count)
	}

	bw.WriteString("\nStatus Codes:\n")
	for _, c := range a.Stats.StatusCounts.SortedByKey() {
		fmt.Fprintf(bw, "%d: %d\n", c.Key, c.Count)
	}

	return bw.Flush()
}

func WriteSecurity(w io.Writer, a domain.Analysis) error {
	bw := bufio.NewWriter(w)
	header(bw, "SECURITY INCIDENTS")

	fmt.Fprintf(bw, "Total Incidents: %d\n\n", len(a.Security.Incidents))
	for _, inc := range a.Security.Incidents {
		bw.WriteString(inc.Message)
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func WriteErrors(w io.Writer, a domain.Analysis) error {
	bw := bufio.NewWriter(w)
	header(bw, "HTTP ERRORS")

	fmt.Fprintf(bw, "Total Errors: %d\n\n", len(a.Stats.Errors))
	for _, e := range a.Stats.Errors {
		fmt.Fprintf(bw, "[%s] %s - %s %s - Status %d\n", e.Timestamp, e.IP, e.Method, e.URL, e.Status)
	}

	return bw.Flush()
}

// WriteAll renders every report to w, one after another, separated by a blank line.
func WriteAll(w io.Writer, a domain.Analysis) error {
	for i, k := range Kinds {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		render, _ := Renderer(k)
		if err := render(w, a); err != nil {
			return err
		}
	}
	return nil
}
