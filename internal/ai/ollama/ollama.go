// Package ollama talks to a local Ollama daemon, located via OLLAMA_HOST.
package ollama

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/pkg/errors"

	"github.com/personafy/personafy/internal/domain"
)

const providerName = "Ollama"

type Client struct {
	client *api.Client
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
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return errors.Wrap(err, "configuring ollama client")
	}
	c.client = client
	return nil
}

func (c *Client) Send(ctx context.Context, prompt string, opts *domain.ChatOptions) (string, error) {
	if err := c.configure(); err != nil {
		return "", err
	}

	var text strings.Builder
	stream := false
	req := c.buildGenerateRequest(prompt, opts, &stream)
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		text.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "ollama request failed")
	}
	return text.String(), nil
}

func (c *Client) SendStream(ctx context.Context, prompt string, opts *domain.ChatOptions, channel chan string) error {
	defer close(channel)
	if err := c.configure(); err != nil {
		return err
	}

	stream := true
	req := c.buildGenerateRequest(prompt, opts, &stream)
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		if resp.Response != "" {
			select {
			case channel <- resp.Response:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "ollama stream failed")
	}
	return nil
}

func (c *Client) buildGenerateRequest(prompt string, opts *domain.ChatOptions, stream *bool) *api.GenerateRequest {
	req := &api.GenerateRequest{
		Model:  opts.Model,
		Prompt: prompt,
		Stream: stream,
		Options: map[string]any{
			"temperature":       opts.Temperature,
			"presence_penalty":  opts.PresencePenalty,
			"frequency_penalty": opts.FrequencyPenalty,
		},
	}
	if opts.MaxOutputTokens > 0 {
		req.Options["num_predict"] = opts.MaxOutputTokens
	}
	if opts.JSONOutput {
		req.Format = json.RawMessage(`"json"`)
	}
	return req
}
