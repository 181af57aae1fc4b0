package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHousekeeping struct {
	mock.Mock
}

func (m *mockHousekeeping) WarnStaleDrawers(ctx context.Context, maxAge time.Duration) (int, error) {
	args := m.Called(ctx, maxAge)
	return args.Int(0), args.Error(1)
}

func (m *mockHousekeeping) PurgeDeletedRecords(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.HousekeepingSvcFacade = (*mockHousekeeping)(nil)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordJobRun(job string, duration time.Duration, success bool) {
	m.Called(job, duration, success)
}

func testConfig() Config {
	return Config{
		StaleDrawerCron:  "0 0 * * * *",
		StaleDrawerAfter: 18 * time.Hour,
		PurgeCron:        "0 30 3 * * *",
		Retention:        365 * 24 * time.Hour,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_RegistersJobs(t *testing.T) {
	s, err := New(testConfig(), new(mockHousekeeping), nil, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, s.JobCount())
}

func TestNew_PurgeDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Retention = 0

	s, err := New(cfg, new(mockHousekeeping), nil, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, s.JobCount())
}

func TestNew_InvalidSchedule(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"stale drawer", func(c *Config) { c.StaleDrawerCron = "every hour" }},
		{"purge", func(c *Config) { c.PurgeCron = "* * *" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := New(cfg, new(mockHousekeeping), nil, quietLogger())
			assert.Error(t, err)
		})
	}
}

func TestRunStaleDrawerCheck_RecordsSuccess(t *testing.T) {
	hk := new(mockHousekeeping)
	rec := new(mockRecorder)
	hk.On("WarnStaleDrawers", mock.Anything, 18*time.Hour).Return(2, nil).Once()
	rec.On("RecordJobRun", JobStaleDrawers, mock.AnythingOfType("time.Duration"), true).Once()

	s, err := New(testConfig(), hk, rec, quietLogger())
	require.NoError(t, err)
	s.RunStaleDrawerCheck()

	hk.AssertExpectations(t)
	rec.AssertExpectations(t)
}

func TestRunPurge_RecordsFailure(t *testing.T) {
	hk := new(mockHousekeeping)
	rec := new(mockRecorder)
	hk.On("PurgeDeletedRecords", mock.Anything, 365*24*time.Hour).Return(int64(0), errors.New("connection refused")).Once()
	rec.On("RecordJobRun", JobPurgeDeleted, mock.AnythingOfType("time.Duration"), false).Once()

	s, err := New(testConfig(), hk, rec, quietLogger())
	require.NoError(t, err)
	s.RunPurge()

	hk.AssertExpectations(t)
	rec.AssertExpectations(t)
}

func TestRun_PassesDeadline(t *testing.T) {
	hk := new(mockHousekeeping)
	hk.On("WarnStaleDrawers", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything).Return(0, nil).Once()

	s, err := New(testConfig(), hk, nil, quietLogger())
	require.NoError(t, err)
	s.RunStaleDrawerCheck()

	hk.AssertExpectations(t)
}

func TestStartStop(t *testing.T) {
	s, err := New(testConfig(), new(mockHousekeeping), nil, quietLogger())
	require.NoError(t, err)

	s.Start()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
