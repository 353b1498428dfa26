package service_test

import (
	"testing"

	"github.com/Egor213/LogiScan/internal/domain"
	"github.com/Egor213/LogiScan/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatisticsAggregator_Record(t *testing.T) {
	stats := domain.NewAggregateStats()
	agg := service.NewStatisticsAggregator(stats)

	entries := []domain.LogEntry{
		{IP: "1.1.1.1", Method: "GET", URL: "/", Status: 200},
		{IP: "2.2.2.2", Method: "POST", URL: "/login", Status: 401},
		{IP: "1.1.1.1", Method: "GET", URL: "/missing", Status: 404},
		{IP: "3.3.3.3", Method: "GET", URL: "/", Status: 500},
	}
	for _, e := range entries {
		agg.Record(e)
	}

	assert.Equal(t, 4, stats.TotalRequests)
	assert.Len(t, stats.UniqueIPs, 3)
	assert.Equal(t, []domain.Count[string]{{"GET", 3}, {"POST", 1}}, stats.MethodCounts.Items())
	assert.Equal(t, 2, stats.URLCounts.Get("/"))
	assert.Equal(t, 1, stats.StatusCounts.Get(404))
	assert.Equal(t, []domain.LogEntry{entries[1], entries[2], entries[3]}, stats.Errors)

	assert.Equal(t, stats.TotalRequests, stats.MethodCounts.Total())
	assert.Equal(t, stats.TotalRequests, stats.StatusCounts.Total())
	assert.LessOrEqual(t, len(stats.UniqueIPs), stats.TotalRequests)
}
