package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQueryThreshold is the duration after which queries are logged as warnings.
const slowQueryThreshold = 200 * time.Millisecond

// logger writes gorm logs to zerolog. When the statement context carries a
// request ID, it is added to every entry.
type logger struct {
	Logger        zerolog.Logger
	SlowThreshold time.Duration
	level         gorm_logger.LogLevel
}

func (l *logger) LogMode(level gorm_logger.LogLevel) gorm_logger.Interface {
	n := *l
	n.level = level
	return &n
}

func (l *logger) silent() bool {
	return l.level == gorm_logger.Silent
}

// withRequestID adds the request ID stored in ctx to the event.
func withRequestID(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if ctx == nil {
		return e
	}

	if id, ok := ctx.Value(string(DBContextRequestID)).(string); ok && id != "" {
		return e.Str("request-id", id)
	}

	return e
}

func (l *logger) Info(ctx context.Context, s string, args ...interface{}) {
	if l.silent() {
		return
	}
	withRequestID(ctx, l.Logger.Info()).Msgf(s, args...)
}

func (l *logger) Warn(ctx context.Context, s string, args ...interface{}) {
	if l.silent() {
		return
	}
	withRequestID(ctx, l.Logger.Warn()).Msgf(s, args...)
}

func (l *logger) Error(ctx context.Context, s string, args ...interface{}) {
	if l.silent() {
		return
	}
	withRequestID(ctx, l.Logger.Error()).Msgf(s, args...)
}

func (l *logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.silent() {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := map[string]interface{}{
		"sql":      sql,
		"rows":     rows,
		"duration": elapsed,
	}

	switch {
	// Missing resources are reported to the client, they are not server errors
	case err != nil && !errors.Is(err, ErrResourceNotFound):
		withRequestID(ctx, l.Logger.Error()).Err(err).Fields(fields).Msg("[GORM] query error")
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold:
		withRequestID(ctx, l.Logger.Warn()).Fields(fields).Msg("[GORM] slow query")
	default:
		withRequestID(ctx, l.Logger.Debug()).Fields(fields).Msg("[GORM] query")
	}
}
