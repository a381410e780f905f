package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"gamblelab/domain/behavior"
	"gamblelab/domain/gamble"
	"gamblelab/ports"
)

const defaultBaseURL = "https://api.openai.com/v1"

// systemPrompt frames the model as a neutral decision coach. The message is
// deliberately strict: one short paragraph, no verdicts about the person.
const systemPrompt = "You are a neutral decision coach in a behavioral economics experiment. " +
	"Given a 50/50 mixed gamble, the participant's choice, and a heuristic flag, reply with " +
	"one short coaching paragraph (max 3 sentences). State the win/loss amounts and the " +
	"expected value. Never judge the participant; prompt them to reflect on probability " +
	"structure and long-run averages."

// Config holds the chat-completions client settings.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Coach composes coaching feedback via the OpenAI chat completions API.
// It satisfies the same boundary as the templated coach, so the session
// engine cannot tell them apart; on any transport or decode failure it
// falls back to the templated text rather than failing the trial.
type Coach struct {
	cfg      Config
	client   *http.Client
	fallback ports.CoachPort
}

// New creates a model-backed coach. fallback must not be nil.
func New(cfg Config, fallback ports.CoachPort) *Coach {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Coach{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		fallback: fallback,
	}
}

// Compose requests a coaching message from the model, falling back to the
// templated composer when the call fails.
func (c *Coach) Compose(ctx context.Context, g gamble.MixedGamble, decision behavior.Decision, flag behavior.FlagKind) (string, error) {
	text, err := c.complete(ctx, c.userPrompt(g, decision, flag))
	if err != nil {
		log.Printf("[Coach] model call failed, using templated feedback: %v", err)
		return c.fallback.Compose(ctx, g, decision, flag)
	}
	return text, nil
}

func (c *Coach) userPrompt(g gamble.MixedGamble, decision behavior.Decision, flag behavior.FlagKind) string {
	return fmt.Sprintf(
		"Gamble: 50%% chance to win %.0f, 50%% chance to lose %.0f. Expected value: %+.1f.\n"+
			"Participant decision: %s.\nHeuristic flag: %s.",
		g.Win, g.Lose, g.EV(), decision, flag)
}

func (c *Coach) complete(ctx context.Context, prompt string) (string, error) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type requestBody struct {
		Model               string    `json:"model"`
		Messages            []message `json:"messages"`
		Temperature         float64   `json:"temperature,omitempty"`
		MaxCompletionTokens int       `json:"max_completion_tokens,omitempty"`
	}

	reqBody := requestBody{
		Model: c.cfg.Model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:         c.cfg.Temperature,
		MaxCompletionTokens: c.cfg.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completions returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty completion")
	}
	return text, nil
}
