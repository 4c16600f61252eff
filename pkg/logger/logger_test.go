package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestID(ctx); got != "req-123" {
		t.Errorf("RequestID = %q, expected req-123", got)
	}
	if got := RequestID(context.Background()); got != "" {
		t.Errorf("无请求ID时应返回空串, got %q", got)
	}
}

func TestWithContextCarriesRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-456")

	var buf bytes.Buffer
	l := WithContext(ctx).Output(&buf)
	l.Info().Msg("测试")

	if !strings.Contains(buf.String(), `"request_id":"req-456"`) {
		t.Errorf("日志应包含请求ID, got %s", buf.String())
	}
}

func TestWithContextWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := WithContext(context.Background()).Output(&buf)
	l.Info().Msg("测试")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("无请求ID时不应写入该字段, got %s", buf.String())
	}
}
