package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger sends GORM's SQL trace to slog, tagged with the request id of ctx.
// Misses (gorm.ErrRecordNotFound) are not errors here: unit and contract
// lookups miss as part of normal validation.
type GormLogger struct {
	LogLevel      gormlogger.LogLevel
	SlowThreshold time.Duration
	// HideParams logs statements with placeholders instead of bound values.
	// Client names, national ids and amounts stay out of production logs.
	HideParams bool
}

func NewGormLogger(logLevel gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		LogLevel:      logLevel,
		SlowThreshold: slowThreshold,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

// ParamsFilter is consulted by GORM before rendering a statement for the log
func (l *GormLogger) ParamsFilter(ctx context.Context, sql string, params ...interface{}) (string, []interface{}) {
	if l.HideParams {
		return sql, nil
	}
	return sql, params
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		FromContext(ctx).Info(fmt.Sprintf(msg, data...), slog.String("source", "gorm"))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		FromContext(ctx).Warn(fmt.Sprintf(msg, data...), slog.String("source", "gorm"))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		FromContext(ctx).Error(fmt.Sprintf(msg, data...), slog.String("source", "gorm"))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.SlowThreshold > 0 && elapsed > l.SlowThreshold

	switch {
	case failed && l.LogLevel >= gormlogger.Error:
		sql, rows := fc()
		FromContext(ctx).Error("sql failed", traceAttrs(sql, rows, elapsed, err)...)
	case slow && l.LogLevel >= gormlogger.Warn:
		sql, rows := fc()
		FromContext(ctx).Warn("slow sql", append(traceAttrs(sql, rows, elapsed, nil),
			slog.Duration("threshold", l.SlowThreshold))...)
	case l.LogLevel >= gormlogger.Info:
		sql, rows := fc()
		FromContext(ctx).Debug("sql", traceAttrs(sql, rows, elapsed, nil)...)
	}
}

func traceAttrs(sql string, rows int64, elapsed time.Duration, err error) []any {
	attrs := []any{
		slog.String("sql", sql),
		slog.Duration("elapsed", elapsed),
	}
	// GORM reports -1 when the statement has no row count (e.g. Exec of DDL)
	if rows >= 0 {
		attrs = append(attrs, slog.Int64("rows", rows))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	return attrs
}
