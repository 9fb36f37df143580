package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/D4rfT/SistemaGestaoCursos/config"
)

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(&config.LogConfig{Level: "loud", Format: "json"})
	if err == nil {
		t.Error("无效日志级别应报错")
	}
}

func TestNewLogger_Console(t *testing.T) {
	l, err := NewLogger(&config.LogConfig{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatalf("NewLogger 失败: %v", err)
	}
	if !l.Core().Enabled(zap.DebugLevel) {
		t.Error("debug 级别应启用")
	}
}

func TestFromContext_RequestScoped(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reqLogger := zap.New(core).With(zap.String("request_id", "rid-1"))

	ctx := WithContext(context.Background(), reqLogger)
	FromContext(ctx, zap.NewNop()).Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("期望 1 条日志，实际=%d", len(entries))
	}
	if entries[0].ContextMap()["request_id"] != "rid-1" {
		t.Errorf("日志应携带 request_id，实际=%v", entries[0].ContextMap())
	}
}

func TestFromContext_Fallback(t *testing.T) {
	fallback := zap.NewNop()
	if FromContext(context.Background(), fallback) != fallback {
		t.Error("context 中无 logger 时应返回 fallback")
	}
	if FromContext(context.Background(), nil) == nil {
		t.Error("fallback 为 nil 时应返回 Nop logger")
	}
}
