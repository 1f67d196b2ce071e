package gemini

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/personafy/personafy/internal/domain"
)

const providerName = "Gemini"

type Client struct {
	client *genai.Client
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) GetName() string {
	return providerName
}

func (c *Client) configure(ctx context.Context) error {
	if c.client != nil {
		return nil
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return errors.New("GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return errors.Wrap(err, "creating gemini client")
	}
	c.client = client
	return nil
}

func (c *Client) Send(ctx context.Context, prompt string, opts *domain.ChatOptions) (string, error) {
	if err := c.configure(ctx); err != nil {
		return "", err
	}

	resp, err := c.client.Models.GenerateContent(ctx, opts.Model, genai.Text(prompt), c.buildConfig(opts))
	if err != nil {
		return "", errors.Wrap(err, "gemini request failed")
	}
	return resp.Text(), nil
}

func (c *Client) SendStream(ctx context.Context, prompt string, opts *domain.ChatOptions, channel chan string) error {
	defer close(channel)
	if err := c.configure(ctx); err != nil {
		return err
	}

	for resp, err := range c.client.Models.GenerateContentStream(ctx, opts.Model, genai.Text(prompt), c.buildConfig(opts)) {
		if err != nil {
			return errors.Wrap(err, "gemini stream failed")
		}
		if text := resp.Text(); text != "" {
			select {
			case channel <- text:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

func (c *Client) buildConfig(opts *domain.ChatOptions) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(opts.Temperature)),
		PresencePenalty:  genai.Ptr(float32(opts.PresencePenalty)),
		FrequencyPenalty: genai.Ptr(float32(opts.FrequencyPenalty)),
	}
	if opts.MaxOutputTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxOutputTokens)
	}
	if opts.JSONOutput {
		config.ResponseMIMEType = "application/json"
	}
	return config
}
