package openai

import (
	"context"
	"os"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/pkg/errors"

	"github.com/personafy/personafy/internal/domain"
)

const providerName = "OpenAI"

type Client struct {
	client *oai.Client
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) GetName() string {
	return providerName
}

func (c *Client) configure() error {
	if c.client != nil {
		return nil
	}
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return errors.New("OPENAI_API_KEY is not set")
	}
	client := oai.NewClient(option.WithAPIKey(apiKey))
	c.client = &client
	return nil
}

func (c *Client) Send(ctx context.Context, prompt string, opts *domain.ChatOptions) (string, error) {
	if err := c.configure(); err != nil {
		return "", err
	}

	resp, err := c.client.Chat.Completions.New(ctx, c.buildChatParams(prompt, opts))
	if err != nil {
		return "", errors.Wrap(err, "openai request failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) SendStream(ctx context.Context, prompt string, opts *domain.ChatOptions, channel chan string) error {
	defer close(channel)
	if err := c.configure(); err != nil {
		return err
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, c.buildChatParams(prompt, opts))
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			select {
			case channel <- chunk.Choices[0].Delta.Content:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	if err := stream.Err(); err != nil {
		return errors.Wrap(err, "openai stream failed")
	}
	return nil
}

func (c *Client) buildChatParams(prompt string, opts *domain.ChatOptions) oai.ChatCompletionNewParams {
	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(opts.Model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.UserMessage(prompt),
		},
		Temperature:      oai.Float(opts.Temperature),
		PresencePenalty:  oai.Float(opts.PresencePenalty),
		FrequencyPenalty: oai.Float(opts.FrequencyPenalty),
	}
	if opts.MaxOutputTokens > 0 {
		params.MaxTokens = oai.Int(int64(opts.MaxOutputTokens))
	}
	if opts.JSONOutput {
		params.ResponseFormat = oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
	return params
}
