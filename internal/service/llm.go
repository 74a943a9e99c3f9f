package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Generator produces one JSON document for a system instruction and a user
// prompt. Implementations do not keep conversation state.
type Generator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// LLMConfig configures the chat-completions client
type LLMConfig struct {
	APIKey      string
	APIURL      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// LLMService talks to an OpenAI-compatible chat-completions endpoint
// (Mistral by default) and always asks for a JSON object response.
type LLMService struct {
	apiKey      string
	apiURL      string
	model       string
	temperature float64
	client      *http.Client
	log         logrus.FieldLogger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg LLMConfig, log logrus.FieldLogger) (*LLMService, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("LLM API URL must be set")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("LLM model must be set")
	}

	return &LLMService{
		apiKey:      cfg.APIKey,
		apiURL:      cfg.APIURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: cfg.Timeout},
		log:         log.WithField("component", "llm"),
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completions request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

// Response is the subset of the chat-completions response that is used
type Response struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one system and one user message and returns the content of
// the first choice. An empty string means the provider returned no content.
func (s *LLMService) Complete(ctx context.Context, system, prompt string) (string, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
		Temperature: s.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
		"bytes":    len(body),
	}).Debug("LLM response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("LLM API error: status %d: %s", resp.StatusCode, truncate(string(body), 512))
	}

	var response Response
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(response.Choices) == 0 || response.Choices[0].Message.Content == nil {
		return "", nil
	}
	return strings.TrimSpace(*response.Choices[0].Message.Content), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
