package domain_test

import (
	"testing"

	"github.com/Egor213/LogiScan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCounter_ItemsKeepFirstSeenOrder(t *testing.T) {
	c := domain.NewCounter[string]()
	for _, m := range []string{"POST", "GET", "POST", "DELETE", "GET", "GET"} {
		c.Inc(m)
	}

	assert.Equal(t, []domain.Count[string]{
		{Key: "POST", Count: 2},
		{Key: "GET", Count: 3},
		{Key: "DELETE", Count: 1},
	}, c.Items())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 6, c.Total())
	assert.Equal(t, 0, c.Get("PUT"))
}

func TestCounter_MostCommon(t *testing.T) {
	testCases := []struct {
		name string
		keys []string
		n    int
		want []domain.Count[string]
	}{
		{
			name: "ties keep first-seen order",
			keys: []string{"/b", "/a", "/c", "/a", "/b"},
			n:    5,
			want: []domain.Count[string]{{"/b", 2}, {"/a", 2}, {"/c", 1}},
		},
		{
			name: "truncated to n",
			keys: []string{"/1", "/2", "/3", "/4", "/5", "/6", "/6"},
			n:    5,
			want: []domain.Count[string]{{"/6", 2}, {"/1", 1}, {"/2", 1}, {"/3", 1}, {"/4", 1}},
		},
		{
			name: "empty",
			n:    5,
			want: []domain.Count[string]{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := domain.NewCounter[string]()
			for _, k := range tc.keys {
				c.Inc(k)
			}
			assert.Equal(t, tc.want, c.MostCommon(tc.n))
		})
	}
}

func TestCounter_SortedByKey(t *testing.T) {
	c := domain.NewCounter[int]()
	for _, s := range []int{404, 200, 500, 200, 301} {
		c.Inc(s)
	}

	assert.Equal(t, []domain.Count[int]{{200, 2}, {301, 1}, {404, 1}, {500, 1}}, c.SortedByKey())
}

func TestLogEntry_IsError(t *testing.T) {
	assert.True(t, domain.LogEntry{Status: 400}.IsError())
	assert.True(t, domain.LogEntry{Status: 503}.IsError())
	assert.False(t, domain.LogEntry{Status: 399}.IsError())
}
