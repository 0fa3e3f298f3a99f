package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// Message is the channel-neutral dialogue format handed to the model.
type Message struct {
	Role string // "user" | "assistant" | "system"
	Text string
}

// Client is the injected text-generation capability. The orchestrator and
// intent detector depend only on this contract, never on a concrete model.
type Client interface {
	// Complete answers a single one-shot prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// Chat answers the last user turn given the full conversation history.
	Chat(ctx context.Context, history []Message) (string, error)
	// Embed returns the embedding vector for a piece of text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

type openAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) Client {
	return &openAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *openAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("ai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *openAIClient) Chat(ctx context.Context, history []Message) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Text,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		Messages:    msgs,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("ai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *openAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.AdaEmbeddingV2,
		Input: []string{text},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("ai: empty embedding response")
	}
	return resp.Data[0].Embedding, nil
}
