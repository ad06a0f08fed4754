// Package console writes log entries as single `key=value` lines, the default
// output of the md2adapt CLI.
package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-md2adapt/internal/logging"
	"github.com/goliatone/go-md2adapt/pkg/interfaces"
)

// Level represents the severity attached to a log entry.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "INFO"
}

// ParseLevel maps a configuration string onto a Level. Unknown values fall
// back to LevelInfo and report false.
func ParseLevel(value string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "fatal":
		return LevelFatal, true
	}
	return LevelInfo, false
}

// Options configures the console provider. Zero values write to stderr with
// the wall clock and a minimum level of LevelInfo.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel Level
}

// Provider hands out console loggers sharing a single writer.
type Provider struct {
	out      io.Writer
	now      func() time.Time
	minLevel Level
	mu       sync.Mutex
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider constructs a console provider.
func NewProvider(opts Options) *Provider {
	p := &Provider{
		out:      opts.Writer,
		now:      opts.TimeFunc,
		minLevel: opts.MinLevel,
	}
	if p.out == nil {
		p.out = os.Stderr
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// GetLogger returns a logger whose entries carry logger=<name>.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	return &entryLogger{
		provider: p,
		fields:   map[string]any{"logger": name},
	}
}

func (p *Provider) write(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// Diagnostics are best effort.
	_, _ = io.WriteString(p.out, line+"\n")
}

type entryLogger struct {
	provider *Provider
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*entryLogger)(nil)
	_ interfaces.FieldsLogger = (*entryLogger)(nil)
)

func (l *entryLogger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args) }
func (l *entryLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }
func (l *entryLogger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args) }
func (l *entryLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args) }
func (l *entryLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }
func (l *entryLogger) Fatal(msg string, args ...any) { l.log(LevelFatal, msg, args) }

func (l *entryLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := maps.Clone(l.fields)
	maps.Copy(merged, fields)
	return &entryLogger{provider: l.provider, fields: merged, ctx: l.ctx}
}

func (l *entryLogger) WithContext(ctx context.Context) interfaces.Logger {
	return &entryLogger{provider: l.provider, fields: maps.Clone(l.fields), ctx: ctx}
}

func (l *entryLogger) log(level Level, msg string, args []any) {
	if l.provider == nil || level < l.provider.minLevel {
		return
	}

	fields := maps.Clone(l.fields)
	if fields == nil {
		fields = map[string]any{}
	}
	maps.Copy(fields, logging.ContextFields(l.ctx))
	appendArgs(fields, args)

	l.provider.write(formatEntry(l.provider.now().UTC(), level, msg, fields))
}

// appendArgs folds alternating key/value args into fields. A trailing value
// without a key, or a non-string key, is stored under arg_<n>.
func appendArgs(fields map[string]any, args []any) {
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			fields["arg_"+strconv.Itoa(i)] = args[i]
			return
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg_" + strconv.Itoa(i)
		}
		fields[key] = args[i+1]
	}
}

func formatEntry(ts time.Time, level Level, msg string, fields map[string]any) string {
	var b strings.Builder
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)

	for _, key := range slices.Sorted(maps.Keys(fields)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(fields[key]))
	}
	return b.String()
}

func formatValue(value any) string {
	var raw string
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		raw = v
	case time.Time:
		raw = v.UTC().Format(time.RFC3339Nano)
	case time.Duration:
		raw = v.String()
	case error:
		raw = v.Error()
	case fmt.Stringer:
		raw = v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		raw = fmt.Sprint(v)
	}
	return quote(raw)
}

func quote(value string) string {
	if value == "" {
		return `""`
	}
	if strings.ContainsFunc(value, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(value)
	}
	return value
}
