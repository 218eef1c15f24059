package db

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestJobStatus_Progress(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   int
	}{
		{StatusQueued, 0},
		{StatusParsing, 25},
		{StatusExtracting, 50},
		{StatusInferring, 75},
		{StatusScoring, 90},
		{StatusDone, 100},
		{StatusError, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.Progress(), "status: %s", tt.status)
	}
}

func TestJobStatus_ProgressUnknownStatus(t *testing.T) {
	assert.Equal(t, 0, JobStatus("bogus").Progress())
}

func TestJobStatus_Terminal(t *testing.T) {
	assert.True(t, StatusDone.Terminal())
	assert.True(t, StatusError.Terminal())

	for _, s := range []JobStatus{StatusQueued, StatusParsing, StatusExtracting, StatusInferring, StatusScoring} {
		assert.False(t, s.Terminal(), "status: %s", s)
	}
}

func TestTruncateErrorDetail(t *testing.T) {
	short := "fetch failed"
	assert.Equal(t, short, TruncateErrorDetail(short))

	long := "x" + strings.Repeat("é", 300)
	out := TruncateErrorDetail(long)
	assert.True(t, utf8.ValidString(out))
	assert.LessOrEqual(t, len(out), MaxErrorDetailLen)
}
