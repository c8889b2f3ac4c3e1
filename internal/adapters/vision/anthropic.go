package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medication-adherence/internal/platform/httpclient"
	"medication-adherence/internal/ports/verification"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

type AnthropicOptions struct {
	APIKey  string
	Model   string
	BaseURL string // opcional, para tests
	Timeout time.Duration
}

// Anthropic implementa verification.Oracle contra la Messages API.
type Anthropic struct {
	http  *httpclient.Client
	model string
}

func NewAnthropic(opts AnthropicOptions) (*Anthropic, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("anthropic: api key required")
	}
	base := opts.BaseURL
	if base == "" {
		base = anthropicBaseURL
	}
	model := opts.Model
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}

	c, err := httpclient.New(httpclient.Options{
		BaseURL: base,
		Timeout: opts.Timeout,
		Headers: map[string]string{
			"x-api-key":         opts.APIKey,
			"anthropic-version": anthropicVersion,
		},
	})
	if err != nil {
		return nil, err
	}
	return &Anthropic{http: c, model: model}, nil
}

type anthropicSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicContent struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Model   string             `json:"model"`
	Content []anthropicContent `json:"content"`
}

func (a *Anthropic) Classify(ctx context.Context, image []byte, expectedLabel string) (verification.Verdict, error) {
	req := anthropicRequest{
		Model:     a.model,
		MaxTokens: 1024,
		Messages: []anthropicMessage{{
			Role: "user",
			Content: []anthropicContent{
				{
					Type: "image",
					Source: &anthropicSource{
						Type:      "base64",
						MediaType: mediaType(image),
						Data:      base64.StdEncoding.EncodeToString(image),
					},
				},
				{Type: "text", Text: Prompt(expectedLabel)},
			},
		}},
	}

	var resp anthropicResponse
	if err := a.http.DoJSON(ctx, http.MethodPost, "/v1/messages", req, &resp); err != nil {
		return verification.Verdict{Model: a.model}, fmt.Errorf("anthropic classify: %w", err)
	}

	text := ""
	for _, c := range resp.Content {
		if c.Type == "text" {
			text = c.Text
			break
		}
	}
	model := resp.Model
	if model == "" {
		model = a.model
	}
	return ParseVerdict(text, model), nil
}
