package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dtnitsch/recipe-web-parser/models"
)

// ChatClient is the part of *openai.Client the OpenAI backend needs, so an
// OpenAI-compatible server or a fake can stand in.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

const systemPrompt = `You score paragraphs taken from recipe web pages.
For every paragraph give two independent numbers between 0 and 1:
how likely it is an ingredient line, and how likely it is a cooking instruction.
The numbers do not need to sum to 1. Navigation, ads, stories and comments score low on both.
Reply with a JSON object {"scores": [[ingredient, instruction], ...]} with exactly one pair per paragraph, in input order.`

// OpenAI scores a whole page in a single chat completion.
type OpenAI struct {
	client ChatClient
	model  string
}

// NewOpenAI builds a backend on an existing chat client.
func NewOpenAI(client ChatClient, model string) *OpenAI {
	return &OpenAI{client: client, model: model}
}

// NewOpenAIFromKey builds a backend talking to the OpenAI API, or to baseURL
// when it is not empty.
func NewOpenAIFromKey(apiKey, baseURL, model string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return NewOpenAI(openai.NewClientWithConfig(cfg), model)
}

type scoreReply struct {
	Scores [][]float64 `json:"scores"`
}

func (o *OpenAI) Classify(ctx context.Context, texts []string) ([]models.Scores, error) {
	if len(texts) == 0 {
		return []models.Scores{}, nil
	}
	payload, err := json.Marshal(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode paragraphs: %w", err)
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	var reply scoreReply
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}

	out := make([]models.Scores, len(reply.Scores))
	for i, pair := range reply.Scores {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: pair %d has %d values", ErrBatchMismatch, i, len(pair))
		}
		out[i] = models.Scores{Ingredient: pair[0], Instruction: pair[1]}
	}
	return out, nil
}
