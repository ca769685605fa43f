package service

import (
	"context"
	"fmt"
	"strings"
)

// Generator is an opaque text-generation capability
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// LLMOptions selects and configures a Generator
type LLMOptions struct {
	Provider string // groq or claude

	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	ClaudeAPIKey  string
	ClaudeBaseURL string
	ClaudeModel   string
}

// NewGenerator builds the configured provider's client
func NewGenerator(opts LLMOptions) (Generator, error) {
	switch strings.ToLower(opts.Provider) {
	case "", "groq":
		return NewGroqClient(opts.GroqAPIKey, opts.GroqBaseURL, opts.GroqModel), nil
	case "claude", "anthropic":
		return NewClaudeClient(opts.ClaudeAPIKey, opts.ClaudeBaseURL, opts.ClaudeModel), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", opts.Provider)
	}
}

// stripCodeFences removes markdown ```json ... ``` wrappers
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}

// jsonPayload trims any preamble or trailing chatter around the outermost
// JSON object or array in a model reply.
func jsonPayload(text string) string {
	text = stripCodeFences(text)

	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return text
	}
	closer := "}"
	if text[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(text, closer)
	if end < start {
		return text[start:]
	}
	return text[start : end+1]
}
