package rephrase

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultModel = "gpt-4o-mini"

const systemPrompt = `You are an AI assistant specialized in rephrasing text to improve clarity, conciseness, and style.

Rephrase the Markdown text given by the user. Your output should only contain the rephrased text, without any additional commentary or formatting beyond the rephrased content itself.`

// OpenAI rephrases through any OpenAI-compatible chat completion endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}
}

func (o *OpenAI) Rephrase(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptySelection
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	out = strings.TrimSuffix(strings.TrimPrefix(out, `"""`), `"""`)
	if out == "" {
		return "", errors.New("empty completion")
	}
	return out, nil
}
