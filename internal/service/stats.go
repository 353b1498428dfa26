package service

import "github.com/Egor213/LogiScan/internal/domain"

// StatisticsAggregator updates traffic counters from parsed entries.
type StatisticsAggregator struct {
	stats *domain.AggregateStats
}

func NewStatisticsAggregator(stats *domain.AggregateStats) *StatisticsAggregator {
	return &StatisticsAggregator{stats: stats}
}

func (a *StatisticsAggregator) Record(entry domain.LogEntry) {
	a.stats.TotalRequests++
	a.stats.UniqueIPs[entry.IP] = struct{}{}
	a.stats.MethodCounts.Inc(entry.Method)
	a.stats.URLCounts.Inc(entry.URL)
	a.stats.StatusCounts.Inc(entry.Status)

	if entry.IsError() {
		a.stats.Errors = append(a.stats.Errors, entry)
	}
}
