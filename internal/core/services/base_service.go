package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/middleware"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock    datetime.Clock
	Location *time.Location
	Tracker  portssvc.EventTracker
}

// ServiceOption configures the BaseService embedded in every service.
type ServiceOption func(*BaseService)

// WithClock overrides time.Now, mostly for tests.
func WithClock(clock datetime.Clock) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

// WithLocation sets the business timezone used to date records.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *BaseService) {
		s.Location = loc
	}
}

// WithEventTracker reports business events to analytics and metrics.
func WithEventTracker(tracker portssvc.EventTracker) ServiceOption {
	return func(s *BaseService) {
		s.Tracker = tracker
	}
}

func newBaseService(opts []ServiceOption) BaseService {
	b := BaseService{Clock: time.Now, Location: time.UTC}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Now returns the current instant.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// BusinessLocation is the timezone records are dated in.
func (s *BaseService) BusinessLocation() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// Stamp returns the current instant, its business day and its HH:MM wall clock.
func (s *BaseService) Stamp() (time.Time, time.Time, string) {
	now := s.Now()
	loc := s.BusinessLocation()
	return now, datetime.BusinessDay(now, loc), datetime.ClockTime(now, loc)
}

// Track forwards an event to the tracker when one is configured.
func (s *BaseService) Track(ctx context.Context, userID, event string, properties map[string]any) {
	if s.Tracker != nil {
		s.Tracker.Track(ctx, userID, event, properties)
	}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}
