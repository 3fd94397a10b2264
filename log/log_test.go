package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	logger := Make(nil)

	if logger.Level() != DefaultLevel {
		t.Errorf("level = %v, want %v", logger.Level(), DefaultLevel)
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("format = %v, want %v", logger.Format(), DefaultFormat)
	}

	if logger.caller {
		t.Error("caller enabled by default")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at error", Logger.Error, LevelError, true},
		{"error at debug", Logger.Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithLevel(tt.minLevel))
			tt.logFunc(logger, "test message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("logged = %v, want %v (%q)", logged, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_Formats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false), WithLevel(LevelTrace))
		logger.Trace("test message", slog.String("key", "value"))

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("failed to parse JSON output %q: %v", buf.String(), err)
		}

		if entry["msg"] != "test message" || entry["key"] != "value" {
			t.Errorf("unexpected entry %v", entry)
		}

		if entry["level"] != "TRACE" {
			t.Errorf("level = %v, want TRACE", entry["level"])
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
		logger.Info("test message", slog.String("key", "value"))

		out := buf.String()
		if !strings.Contains(out, `msg="test message"`) || !strings.Contains(out, "key=value") {
			t.Errorf("unexpected text output %q", out)
		}
	})
}

func TestLogger_Pretty(t *testing.T) {
	t.Run("line", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithTimeLayout("none"), WithLevel(LevelTrace))

		logger.With(slog.String("component", "lang")).
			Trace("expand", slog.Int("depth", 2), slog.Bool("ok", true))

		want := "level=TRACE msg=expand component=lang depth=2 ok=true\n"
		if got := buf.String(); got != want {
			t.Errorf("got  %q\nwant %q", got, want)
		}
	})

	t.Run("object", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithTimeLayout("none"), WithFormat(FormatJSON))

		logger.Info("done", slog.Group("stats", slog.Int("args", 3)))

		want := "{\n  level: INFO,\n  msg: done,\n  stats.args: 3\n}\n"
		if got := buf.String(); got != want {
			t.Errorf("got  %q\nwant %q", got, want)
		}
	})

	t.Run("log valuer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithTimeLayout("none"))

		logger.Error("failed", slog.Any("error", valuer{}))

		if got := buf.String(); !strings.Contains(got, "error.kind=boom") {
			t.Errorf("LogValuer not resolved: %q", got)
		}
	})

	t.Run("error value", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithTimeLayout("none"))

		logger.Error("failed", slog.Any("error", errors.New("bad input")))

		if got := buf.String(); !strings.Contains(got, "error=bad input") {
			t.Errorf("error not rendered: %q", got)
		}
	})
}

type valuer struct{}

func (valuer) LogValue() slog.Value {
	return slog.GroupValue(slog.String("kind", "boom"))
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithCaller(true), WithPretty(false))
	logger.Info("test message")

	if out := buf.String(); !strings.Contains(out, "log_test.go") {
		t.Errorf("source does not name the caller: %q", out)
	}

	buf.Reset()
	Make(&buf, WithCaller(false), WithPretty(false)).Info("test message")

	if strings.Contains(buf.String(), "source") {
		t.Error("source included when disabled")
	}
}

func TestLogger_Wrap(t *testing.T) {
	var first, second bytes.Buffer

	base := Make(&first, WithLevel(LevelWarn), WithPretty(false))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Debug("to second")
	base.Debug("dropped")

	if first.Len() != 0 {
		t.Errorf("base logger wrote %q", first.String())
	}

	if !strings.Contains(second.String(), "to second") {
		t.Errorf("wrapped logger output %q", second.String())
	}

	if wrapped.Format() != base.Format() {
		t.Error("Wrap did not keep the base format")
	}
}

func TestLogger_ConcurrentCalls(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithPretty(false))

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Go(func() {
			logger.Info("concurrent message", slog.Int("id", i))
		})
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Errorf("expected 100 log lines, got %d", len(lines))
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("test")
	l.Debug("test")
	l.InfoContext(context.Background(), "test")
	l.Error("test")

	if l.With(slog.String("key", "value")).Logger != nil {
		t.Error("With on a zero Logger built a logger")
	}

	if l.Enabled(context.Background(), LevelError) {
		t.Error("zero Logger reports enabled")
	}
}

func TestPackage_DefaultLogger(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	var buf bytes.Buffer
	Config(&buf, WithLevel(LevelDebug), WithFormat(FormatJSON), WithPretty(false))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
		{"ErrorContext", func(msg string, attrs ...slog.Attr) {
			ErrorContext(context.Background(), msg, attrs...)
		}, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("invalid output %q: %v", buf.String(), err)
			}

			if entry["level"] != tt.level || entry["key"] != "value" {
				t.Errorf("unexpected entry %v", entry)
			}
		})
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := Make(&buf, WithPretty(false))

	for b.Loop() {
		buf.Reset()
		logger.Info("benchmark message", slog.Int("iteration", 1))
	}
}

func BenchmarkLogger_Info_Pretty(b *testing.B) {
	var buf bytes.Buffer
	logger := Make(&buf).With(slog.String("component", "test"))

	for b.Loop() {
		buf.Reset()
		logger.Info("benchmark message", slog.Int("iteration", 1))
	}
}
