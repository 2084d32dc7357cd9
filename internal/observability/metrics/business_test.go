package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPageAudited(t *testing.T) {
	tests := []struct {
		name     string
		language string
		passed   bool
		outcome  string
	}{
		{
			name:     "passed page",
			language: "english",
			passed:   true,
			outcome:  "passed",
		},
		{
			name:     "failed page",
			language: "german",
			passed:   false,
			outcome:  "failed",
		},
		{
			name:     "empty language",
			language: "",
			passed:   true,
			outcome:  "passed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(PagesAuditedTotal.WithLabelValues(tt.language, tt.outcome))
			RecordPageAudited(tt.language, tt.passed)
			after := testutil.ToFloat64(PagesAuditedTotal.WithLabelValues(tt.language, tt.outcome))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestRecordPageAuditError(t *testing.T) {
	for _, errorType := range []string{"validation", "empty_content", "fetch"} {
		t.Run(errorType, func(t *testing.T) {
			before := testutil.ToFloat64(PageAuditErrors.WithLabelValues(errorType))
			RecordPageAuditError(errorType)
			after := testutil.ToFloat64(PageAuditErrors.WithLabelValues(errorType))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestRecordAuditRun(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		results  int
	}{
		{"fast empty run", 100 * time.Millisecond, 0},
		{"normal run", 30 * time.Second, 120},
		{"long run", 20 * time.Minute, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordAuditRun(tt.duration, tt.results)
			})
		})
	}
}

func TestRecordContentFetch(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
	}{
		{"fast fetch", 50 * time.Millisecond},
		{"slow fetch", 8 * time.Second},
		{"zero duration", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordContentFetch(tt.duration)
			})
		})
	}
}
