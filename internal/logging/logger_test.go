package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Slog_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(BackendSlog, "warn", &buf)
	require.NoError(t, err)

	ctx := context.Background()
	log.Info(ctx, "hidden")
	log.Warn(ctx, "shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "k=v")
}

func TestNew_Zap_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(BackendZap, "info", &buf)
	require.NoError(t, err)

	log.With("request_id", "abc").Error(context.Background(), "request failed", "status", 500)

	line := strings.TrimSpace(buf.String())
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &m))
	assert.Equal(t, "error", m["level"])
	assert.Equal(t, "request failed", m["msg"])
	assert.Equal(t, "abc", m["request_id"])
	assert.EqualValues(t, 500, m["status"])
}

func TestNew_Zap_Named(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(BackendZap, "debug", &buf)
	require.NoError(t, err)

	log.Named("session").Debug(context.Background(), "cleared", "reason", "logout")

	var m map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m))
	assert.Equal(t, "session", m["logger"])
	assert.Equal(t, "logout", m["reason"])
}

func TestNew_Zap_DropsBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(BackendZap, "error", &buf)
	require.NoError(t, err)

	log.Debug(context.Background(), "dbg")
	log.Info(context.Background(), "inf")
	assert.Empty(t, buf.String())
}

func TestNew_Errors(t *testing.T) {
	_, err := New("logrus", "info", &bytes.Buffer{})
	require.Error(t, err)

	_, err = New(BackendSlog, "loud", &bytes.Buffer{})
	require.Error(t, err)

	_, err = New(BackendZap, "loud", &bytes.Buffer{})
	require.Error(t, err)
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	l.With("a", 1).Named("x").Info(context.Background(), "ignored")
}
