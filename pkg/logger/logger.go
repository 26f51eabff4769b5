package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"
)

// Options configures the structured logger.
type Options struct {
	ServiceName string
	Level       zerolog.Level
	// WarnStack attaches a stack trace to warnings as well as errors.
	WarnStack bool
	// Format is "json" (default) or "console".
	Format string
	Output io.Writer
}

// Logger writes zerolog entries enriched with the fields carried by ctx.
type Logger struct {
	root      zerolog.Logger
	warnStack bool
}

func New(opts Options) *Logger {
	level := opts.Level
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	root := zerolog.New(writerFor(opts)).
		Level(level).
		With().
		Timestamp().
		Str("service", opts.ServiceName).
		Logger()
	return &Logger{root: root, warnStack: opts.WarnStack}
}

func writerFor(opts Options) io.Writer {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(strings.TrimSpace(opts.Format), "console") {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	return out
}

// ParseLevel maps a config value to a level, falling back to info.
func ParseLevel(value string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// from returns the logger stored in ctx by one of the With helpers, or the
// root logger. zerolog hands back a disabled logger when nothing is stored.
func (l *Logger) from(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if zl := zerolog.Ctx(ctx); zl.GetLevel() != zerolog.Disabled {
			return zl
		}
	}
	return &l.root
}

func (l *Logger) with(ctx context.Context, extend func(zerolog.Context) zerolog.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	child := extend(l.from(ctx).With()).Logger()
	return child.WithContext(ctx)
}

func (l *Logger) WithField(ctx context.Context, key string, value any) context.Context {
	return l.with(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Interface(key, value)
	})
}

func (l *Logger) WithFields(ctx context.Context, fields map[string]any) context.Context {
	return l.with(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Fields(fields)
	})
}

func (l *Logger) WithRequestID(ctx context.Context, requestID string) context.Context {
	return l.WithField(ctx, "request_id", requestID)
}

// WithSessionID tags entries produced on behalf of an admin session.
func (l *Logger) WithSessionID(ctx context.Context, sessionID string) context.Context {
	return l.WithField(ctx, "admin_session", sessionID)
}

func (l *Logger) Debug(ctx context.Context, msg string) {
	l.from(ctx).Debug().Msg(msg)
}

func (l *Logger) Info(ctx context.Context, msg string) {
	l.from(ctx).Info().Msg(msg)
}

func (l *Logger) Warn(ctx context.Context, msg string) {
	event := l.from(ctx).Warn()
	if l.warnStack {
		event = event.Str("stack", stackTrace())
	}
	event.Msg(msg)
}

// Error logs err with a stack. Errors combined with multierr are also
// listed one per cause.
func (l *Logger) Error(ctx context.Context, msg string, err error) {
	event := l.from(ctx).Error()
	if err != nil {
		event = event.Err(err)
		if causes := multierr.Errors(err); len(causes) > 1 {
			event = event.Errs("causes", causes)
		}
	}
	event.Str("stack", stackTrace()).Msg(msg)
}

func stackTrace() string {
	return strings.TrimSpace(string(debug.Stack()))
}
