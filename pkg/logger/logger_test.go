package logger

import (
	"testing"

	"go.uber.org/zap"

	"github.com/mshabab123/hlqh-sub001/config"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("format=%s 期望成功，实际 %v", format, err)
		}
		if !l.Core().Enabled(zap.DebugLevel) {
			t.Errorf("format=%s 期望启用 debug 级别", format)
		}
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "loud"}); err == nil {
		t.Error("期望无效级别返回错误")
	}
}
