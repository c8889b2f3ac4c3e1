package vision

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdict(t *testing.T) {
	v := ParseVerdict("Sure! ```json\n{\"isValid\": true, \"confidence\": 86.6, \"detected\": [\"pill\", \" \", \"hand\"], \"reasoning\": \"pill in hand\"}\n```", "m1")
	assert.True(t, v.Accepted)
	assert.Equal(t, 87, v.Confidence)
	assert.Equal(t, []string{"pill", "hand"}, v.Tags)
	assert.Equal(t, "pill in hand", v.Rationale)
	assert.Equal(t, "m1", v.Model)
}

func TestParseVerdict_MalformedIsZeroConfidenceRejection(t *testing.T) {
	for _, in := range []string{"", "I cannot see a pill", "{not json}", "} {"} {
		v := ParseVerdict(in, "m1")
		assert.False(t, v.Accepted, in)
		assert.Equal(t, 0, v.Confidence, in)
		assert.Equal(t, []string{}, v.Tags, in)
		assert.Equal(t, "Failed to parse AI response", v.Rationale, in)
	}
}

func TestParseVerdict_ClampsAndDefaults(t *testing.T) {
	v := ParseVerdict(`{"isValid": true, "confidence": 180}`, "m1")
	assert.Equal(t, 100, v.Confidence)
	assert.Equal(t, "No reasoning provided", v.Rationale)
	assert.Equal(t, []string{}, v.Tags)
}

func TestParseVerdict_ClampsOutOfRangeConfidence(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`{"isValid": true, "confidence": 1e20}`, 100},
		{`{"isValid": true, "confidence": -1e20}`, 0},
		{`{"isValid": true, "confidence": 1.7e308}`, 100},
		{`{"isValid": false, "confidence": -3}`, 0},
		{`{"isValid": true, "confidence": 99.6}`, 100},
		{`{"isValid": true, "confidence": 42.4}`, 42},
	}
	for _, c := range cases {
		v := ParseVerdict(c.raw, "m1")
		assert.Equal(t, c.want, v.Confidence, c.raw)
	}
}

func TestAnthropic_Classify(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		require.Len(t, req.Messages[0].Content, 2)
		assert.Equal(t, "image", req.Messages[0].Content[0].Type)
		assert.Contains(t, req.Messages[0].Content[1].Text, "Expected medication: Lithium")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"model": "claude-test",
			"content": []map[string]any{
				{"type": "text", "text": `{"isValid": true, "confidence": 92, "detected": ["pill"], "reasoning": "ok"}`},
			},
		})
	}))
	defer ts.Close()

	a, err := NewAnthropic(AnthropicOptions{APIKey: "k", BaseURL: ts.URL})
	require.NoError(t, err)

	v, err := a.Classify(context.Background(), []byte("jpegbytes"), "Lithium")
	require.NoError(t, err)
	assert.True(t, v.Accepted)
	assert.Equal(t, 92, v.Confidence)
	assert.Equal(t, "claude-test", v.Model)
}

func TestAnthropic_UpstreamErrorIsReturned(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", 529)
	}))
	defer ts.Close()

	a, err := NewAnthropic(AnthropicOptions{APIKey: "k", BaseURL: ts.URL})
	require.NoError(t, err)

	_, err = a.Classify(context.Background(), []byte("x"), "Lithium")
	require.Error(t, err)
}

func TestOpenAI_Classify(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-test",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": `{"isValid": false, "confidence": 30, "detected": [], "reasoning": "no pill"}`,
				},
			}},
		})
	}))
	defer ts.Close()

	o, err := NewOpenAI(OpenAIOptions{APIKey: "k", BaseURL: ts.URL + "/v1"})
	require.NoError(t, err)

	v, err := o.Classify(context.Background(), []byte("\x89PNG\r\n\x1a\n"), "Lithium")
	require.NoError(t, err)
	assert.False(t, v.Accepted)
	assert.Equal(t, 30, v.Confidence)
	assert.Equal(t, "gpt-test", v.Model)
}

func TestStatic(t *testing.T) {
	s := NewStatic()
	v, err := s.Classify(context.Background(), nil, "x")
	require.NoError(t, err)
	assert.True(t, v.Accepted)
	assert.Equal(t, 90, v.Confidence)

	s.Err = errors.New("down")
	_, err = s.Classify(context.Background(), nil, "x")
	require.Error(t, err)
}
