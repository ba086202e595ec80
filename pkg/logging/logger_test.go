package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Expected default level to be Info, got %s", cfg.Level)
	}

	if cfg.Pretty {
		t.Error("Expected default pretty to be false")
	}

	if cfg.Output == nil {
		t.Error("Expected default output to be set")
	}
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name   string
		level  LogLevel
		pretty bool
		emit   func(zerolog.Logger, string)
	}{
		{
			name:  "info_level",
			level: LevelInfo,
			emit:  func(l zerolog.Logger, m string) { l.Info().Msg(m) },
		},
		{
			name:  "debug_level",
			level: LevelDebug,
			emit:  func(l zerolog.Logger, m string) { l.Debug().Msg(m) },
		},
		{
			name:  "warn_level",
			level: LevelWarn,
			emit:  func(l zerolog.Logger, m string) { l.Warn().Msg(m) },
		},
		{
			name:   "pretty_error_level",
			level:  LevelError,
			pretty: true,
			emit:   func(l zerolog.Logger, m string) { l.Error().Msg(m) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := Setup(Config{Level: tt.level, Pretty: tt.pretty, Output: buf})

			tt.emit(logger, "message for "+tt.name)

			if !strings.Contains(buf.String(), "message for "+tt.name) {
				t.Errorf("Expected output to contain message, got %q", buf.String())
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"invalid", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf})

	logger := NewLogger(ComponentOrchestrator)
	logger.Info().Msg("run started")

	output := buf.String()
	if !strings.Contains(output, `"component":"orchestrator"`) {
		t.Errorf("Expected component field, got %q", output)
	}
	if !strings.Contains(output, "run started") {
		t.Errorf("Expected message, got %q", output)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelWarn, Output: buf})

	logger := NewLogger("test")
	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")
	logger.Warn().Msg("warn message")
	logger.Error().Msg("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("Messages below warn should be filtered, got %q", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("Warn and error messages should be kept, got %q", output)
	}

	// restore for other tests in the package
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func TestNop(t *testing.T) {
	logger := Nop()
	if logger.GetLevel() != zerolog.Disabled {
		t.Errorf("Nop logger level = %v, want disabled", logger.GetLevel())
	}
}

func TestSetup_ConcurrentWriters(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf})
	defer Setup(DefaultConfig())

	const goroutines, perGoroutine = 8, 50
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger := NewLogger(ComponentOrchestrator)
			for j := 0; j < perGoroutine; j++ {
				logger.Info().Int("batch", j).Msg("Batch complete")
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != goroutines*perGoroutine {
		t.Fatalf("Expected %d log lines, got %d", goroutines*perGoroutine, len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
			t.Errorf("interleaved log line: %q", line)
			break
		}
	}
}
