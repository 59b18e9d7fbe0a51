//go:build !integration

package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "production")

	l.Info("ranking updated", "updated_count", 3)
	l.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, `"msg":"ranking updated"`) {
		t.Errorf("expected json message, got %q", out)
	}
	if !strings.Contains(out, `"updated_count":3`) {
		t.Errorf("expected updated_count field, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug log should be filtered in production")
	}
}

func TestNew_DevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "development")

	l.Debug("vendor metrics", "vendor_id", "abc")

	if !strings.Contains(buf.String(), "vendor_id=abc") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestSet_ReplacesGlobal(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { Set(prev) })

	var buf bytes.Buffer
	Set(New(&buf, "development"))
	Warn("slow recompute", "vendor_id", "v1")

	if !strings.Contains(buf.String(), "slow recompute") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}
