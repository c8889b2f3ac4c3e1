package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel(" warning "))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("nope"))
}

func TestLogger_JSON_MergesFieldsAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "test-app", Output: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"request_id": "r-1"}).Warn("flagged", map[string]any{
		"user_id": "u-1",
		"err":     errors.New("boom"),
		"":        "ignored",
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "flagged", entry["msg"])
	assert.Equal(t, "test-app", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Equal(t, "boom", entry["err"])
}

func TestFromContext_FallsBack(t *testing.T) {
	fallback := Nop()
	assert.Equal(t, fallback, FromContext(context.Background(), fallback))

	scoped := Nop().With(map[string]any{"a": 1})
	ctx := WithContext(context.Background(), scoped)
	assert.Equal(t, scoped, FromContext(ctx, fallback))
}
