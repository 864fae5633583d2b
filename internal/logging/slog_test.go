package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newBufLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "k", "v1")
	log.Info(ctx, "inf", "k", "v2")
	log.Warn(ctx, "wrn", "k", "v3")
	log.Error(ctx, "err", "k", "v4")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "msg=dbg")
	assert.Contains(t, out, "msg=inf")
	assert.Contains(t, out, "msg=wrn")
	assert.Contains(t, out, "msg=err")
	assert.Contains(t, out, "k=v4")
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	log, buf := newBufLogger(t)

	child := log.With("article_id", "a1")
	child.Info(context.Background(), "applied")

	lines := strings.TrimSpace(buf.String())
	assert.Contains(t, lines, "article_id=a1")
	assert.Contains(t, lines, "msg=applied")
}
