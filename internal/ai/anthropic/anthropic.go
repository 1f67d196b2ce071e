package anthropic

import (
	"context"
	"os"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"

	"github.com/personafy/personafy/internal/domain"
)

const providerName = "Anthropic"

// defaultMaxTokens applies when the caller supplies no output limit; the
// Anthropic API requires one.
const defaultMaxTokens = 8_000

type Client struct {
	client *sdk.Client
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
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return errors.New("ANTHROPIC_API_KEY is not set")
	}
	client := sdk.NewClient(option.WithAPIKey(apiKey))
	c.client = &client
	return nil
}

func (c *Client) Send(ctx context.Context, prompt string, opts *domain.ChatOptions) (string, error) {
	if err := c.configure(); err != nil {
		return "", err
	}

	message, err := c.client.Messages.New(ctx, c.buildMessageParams(prompt, opts))
	if err != nil {
		return "", errors.Wrap(err, "anthropic request failed")
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}

func (c *Client) SendStream(ctx context.Context, prompt string, opts *domain.ChatOptions, channel chan string) error {
	defer close(channel)
	if err := c.configure(); err != nil {
		return err
	}

	stream := c.client.Messages.NewStreaming(ctx, c.buildMessageParams(prompt, opts))
	for stream.Next() {
		event := stream.Current()
		switch eventVariant := event.AsAny().(type) {
		case sdk.ContentBlockDeltaEvent:
			switch delta := eventVariant.Delta.AsAny().(type) {
			case sdk.TextDelta:
				if delta.Text != "" {
					select {
					case channel <- delta.Text:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return errors.Wrap(err, "anthropic stream failed")
	}
	return nil
}

func (c *Client) buildMessageParams(prompt string, opts *domain.ChatOptions) sdk.MessageNewParams {
	maxTokens := int64(opts.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return sdk.MessageNewParams{
		Model:     sdk.Model(opts.Model),
		MaxTokens: maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
		Temperature: sdk.Float(opts.Temperature),
	}
}
