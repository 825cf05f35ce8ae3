package llm

import (
	"context"
)

// Option allows for optional parameters like Temperature or Model.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// Provider defines the contract for any chat-completion backend.
type Provider interface {
	// ChatWithSystem sends a system prompt plus one user message and returns
	// the completion text.
	ChatWithSystem(ctx context.Context, systemPrompt, userPrompt string, options ...Option) (string, error)
}
