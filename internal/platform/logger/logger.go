// Package logger provides a zerolog wrapper with opinionated defaults and
// request and cycle scoped logging support
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"facilities/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string
	Format  string // json or console
	Service string
	// Writer wins over Output when set
	Writer io.Writer
	// Output is stdout or stderr. facilitiesctl uses stderr so reports on stdout stay parseable
	Output      string
	WithCaller  bool
	SampleEvery int
}

// FromEnv reads LOG_* through the logging free raw config view
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       rc.Get("LEVEL", "info"),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", "facilities"),
		Output:      strings.ToLower(rc.Get("OUTPUT", "stdout")),
		WithCaller:  rc.GetBool("CALLER", false),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Init builds the root logger. Only the first call in a process has effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		w := opt.Writer
		if w == nil {
			w = os.Stdout
			if opt.Output == "stderr" {
				w = os.Stderr
			}
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		c := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
		if bi, ok := debug.ReadBuildInfo(); ok {
			c = c.Str("go_version", bi.GoVersion)
		}
		if opt.Service != "" {
			c = c.Str("service", opt.Service)
		}
		if opt.WithCaller {
			c = c.Caller()
		}
		l := c.Logger()
		if opt.SampleEvery > 1 {
			l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}
		root.Store(&l)
	})
}

// parseLevel accepts zerolog names plus "warning"; anything else is info
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

type ctxKey struct{ name string }

var (
	keyRequestID = ctxKey{"request_id"}
	keyCycleID   = ctxKey{"cycle_id"}
)

// fields C copies from the context, in output order
var ctxFields = []ctxKey{keyRequestID, keyCycleID}

func with(ctx context.Context, k ctxKey, v string) context.Context {
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, k, v)
}

func value(ctx context.Context, k ctxKey) string {
	s, _ := ctx.Value(k).(string)
	return s
}

// WithRequest annotates ctx with the http request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	return with(ctx, keyRequestID, reqID)
}

// WithCycle annotates ctx with the reload cycle id so every log line of a cycle can be joined
func WithCycle(ctx context.Context, cycleID string) context.Context {
	return with(ctx, keyCycleID, cycleID)
}

// RequestID returns the request id bound by WithRequest, if any
func RequestID(ctx context.Context) string { return value(ctx, keyRequestID) }

// CycleID returns the reload cycle id on ctx, if any
func CycleID(ctx context.Context) string { return value(ctx, keyCycleID) }

// C returns a child of the root logger carrying request_id and cycle_id from ctx
func C(ctx context.Context) *Logger {
	c := Get().With()
	for _, k := range ctxFields {
		if v := value(ctx, k); v != "" {
			c = c.Str(k.name, v)
		}
	}
	l := c.Logger()
	return &l
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
