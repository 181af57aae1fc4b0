package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestTrackCountsEvents(t *testing.T) {
	m := New()

	m.Track(context.Background(), "user-1", "drawer_opened", nil)
	m.Track(context.Background(), "user-2", "drawer_opened", map[string]any{"x": 1})
	m.Track(context.Background(), "user-1", "drawer_closed", nil)

	out := scrape(t, m)
	assert.Contains(t, out, `livro_caixa_drawer_events_total{event="drawer_opened"} 2`)
	assert.Contains(t, out, `livro_caixa_drawer_events_total{event="drawer_closed"} 1`)
}

func TestObserveHTTPRequest(t *testing.T) {
	m := New()

	done := m.RequestStarted()
	assert.Contains(t, scrape(t, m), "livro_caixa_http_inflight_requests 1")
	done()
	assert.Contains(t, scrape(t, m), "livro_caixa_http_inflight_requests 0")

	m.ObserveHTTPRequest("get", "/api/v1/sales", 200, 10*time.Millisecond)
	m.ObserveHTTPRequest("GET", "", 404, time.Millisecond)

	out := scrape(t, m)
	assert.Contains(t, out, `livro_caixa_http_requests_total{method="GET",route="/api/v1/sales",status="200"} 1`)
	assert.Contains(t, out, `livro_caixa_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}

func TestRecordJobRun(t *testing.T) {
	m := New()
	m.RecordJobRun("purge_deleted", 20*time.Millisecond, true)
	m.RecordJobRun("", time.Millisecond, false)

	out := scrape(t, m)
	assert.Contains(t, out, `livro_caixa_scheduler_job_runs_total{job="purge_deleted",success="true"} 1`)
	assert.Contains(t, out, `livro_caixa_scheduler_job_runs_total{job="unknown",success="false"} 1`)
}

type recordingTracker struct{ events []string }

func (r *recordingTracker) Track(_ context.Context, _ string, event string, _ map[string]any) {
	r.events = append(r.events, event)
}

func TestTrackersFanOut(t *testing.T) {
	a, b := &recordingTracker{}, &recordingTracker{}

	Trackers{a, nil, b}.Track(context.Background(), "user-1", "drawer_reopened", nil)

	assert.Equal(t, []string{"drawer_reopened"}, a.events)
	assert.Equal(t, []string{"drawer_reopened"}, b.events)
}
