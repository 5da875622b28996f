package logging

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := NewLogger(tt.level)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error for an unknown level")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger failed: %v", err)
			}
			if !logger.Core().Enabled(tt.want) {
				t.Errorf("level %s should be enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && logger.Core().Enabled(tt.want-1) {
				t.Errorf("level %s should be disabled", tt.want-1)
			}
		})
	}
}

func TestWithOperation(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	WithOperation(logger, "tier.negate", "abc").Info("charged")
	WithOperation(logger, "knn.fit", "").Info("fitted")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	first := entries[0].ContextMap()
	if first["operation"] != "tier.negate" || first["request_id"] != "abc" {
		t.Errorf("unexpected fields: %v", first)
	}
	second := entries[1].ContextMap()
	if _, ok := second["request_id"]; ok {
		t.Errorf("empty request id should be omitted: %v", second)
	}
}

func TestOperationError(t *testing.T) {
	base := errors.New("boom")

	err := NewOperationError("tier.blur", "s-1", base)
	if err.Error() != "tier.blur (request_id=s-1): boom" {
		t.Errorf("Error(): got %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("errors.Is should see the wrapped error")
	}

	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Operation != "tier.blur" {
		t.Errorf("errors.As failed: %v", err)
	}

	if got := NewOperationError("op", "", base).Error(); got != "op: boom" {
		t.Errorf("Error() without request id: got %q", got)
	}
	if NewOperationError("op", "id", nil) != nil {
		t.Error("wrapping nil should return nil")
	}
}
