// Package dryrun is an offline vendor that echoes what would be sent to a
// real backend. It backs the --dry-run flag and the test suites.
package dryrun

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/personafy/personafy/internal/domain"
)

const providerName = "DryRun"

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) GetName() string {
	return providerName
}

func (c *Client) Send(ctx context.Context, prompt string, opts *domain.ChatOptions) (string, error) {
	if opts.JSONOutput {
		// The template stub keeps dry runs flowing through callers that
		// expect one in the structured reply.
		encoded, err := json.Marshal(map[string]any{
			"dry_run":  true,
			"model":    opts.Model,
			"prompt":   prompt,
			"template": map[string]any{"dry_run": true},
		})
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}
	return c.format(prompt, opts), nil
}

func (c *Client) SendStream(ctx context.Context, prompt string, opts *domain.ChatOptions, channel chan string) error {
	defer close(channel)
	select {
	case channel <- c.format(prompt, opts):
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (c *Client) format(prompt string, opts *domain.ChatOptions) string {
	return fmt.Sprintf("Dry run: model %s, temperature %.2f\n\n%s", opts.Model, opts.Temperature, prompt)
}
