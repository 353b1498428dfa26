package report

import "github.com/Egor213/LogiScan/internal/domain"

type SummaryDocument struct {
	TotalRequests int                    `json:"total_requests"`
	UniqueIPs     int                    `json:"unique_ips"`
	Methods       []domain.Count[string] `json:"methods"`
	TopURLs       []domain.Count[string] `json:"top_urls"`
	StatusCodes   []domain.Count[int]    `json:"status_codes"`
}

// Document is the JSON form of all three reports.
type Document struct {
	Summary   SummaryDocument   `json:"summary"`
	Incidents []domain.Incident `json:"incidents"`
	Errors    []domain.LogEntry `json:"errors"`
	Lines     domain.LineStats  `json:"lines"`
}

func NewDocument(a domain.Analysis) Document {
	doc := Document{
		Summary: SummaryDocument{
			TotalRequests: a.Stats.TotalRequests,
			UniqueIPs:     len(a.Stats.UniqueIPs),
			Methods:       a.Stats.MethodCounts.Items(),
			TopURLs:       a.Stats.URLCounts.MostCommon(topURLs),
			StatusCodes:   a.Stats.StatusCounts.SortedByKey(),
		},
		Incidents: a.Security.Incidents,
		Errors:    a.Stats.Errors,
		Lines:     a.Lines,
	}

	if doc.Incidents == nil {
		doc.Incidents = []domain.Incident{}
	}
	if doc.Errors == nil {
		doc.Errors = []domain.LogEntry{}
	}

	return doc
}
