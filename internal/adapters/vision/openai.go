package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medication-adherence/internal/ports/verification"

	"github.com/sashabaranov/go-openai"
)

type OpenAIOptions struct {
	APIKey  string
	Model   string
	BaseURL string // opcional, para tests
	Timeout time.Duration
}

// OpenAI implementa verification.Oracle con chat completions multimodal.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(opts OpenAIOptions) (*OpenAI, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai: api key required")
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	model := opts.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (o *OpenAI) Classify(ctx context.Context, image []byte, expectedLabel string) (verification.Verdict, error) {
	dataURL := "data:" + mediaType(image) + ";base64," + base64.StdEncoding.EncodeToString(image)

	req := openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: 1024,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: Prompt(expectedLabel)},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    dataURL,
						Detail: openai.ImageURLDetailLow,
					},
				},
			},
		}},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return verification.Verdict{Model: o.model}, fmt.Errorf("openai classify: %w", err)
	}
	if len(resp.Choices) == 0 {
		return verification.Verdict{Model: o.model}, errors.New("openai classify: no choices")
	}

	model := resp.Model
	if model == "" {
		model = o.model
	}
	return ParseVerdict(resp.Choices[0].Message.Content, model), nil
}
