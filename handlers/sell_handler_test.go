package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeSubmissionStats(t *testing.T) {
	stats := summarizeSubmissionStats([]submissionStatusCount{
		{OfferStatus: "Pending", Count: 4},
		{OfferStatus: "Accepted", Count: 2},
		{OfferStatus: "Rejected", Count: 1},
	})

	assert.Equal(t, int64(7), stats["totalSubmissions"])
	assert.Equal(t, int64(4), stats["pending"])
	assert.Equal(t, int64(0), stats["reviewed"])
	assert.Equal(t, int64(2), stats["accepted"])
	assert.Equal(t, int64(1), stats["rejected"])
}

func TestSummarizeSubmissionStatsEmpty(t *testing.T) {
	stats := summarizeSubmissionStats(nil)

	assert.Equal(t, int64(0), stats["totalSubmissions"])
	assert.Equal(t, int64(0), stats["pending"])
}
