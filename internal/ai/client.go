// Package ai consumes the external text-generation service that supplies
// generated questions and section translations. The service is opaque; only
// its request and response shapes matter here.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"paper-service/internal/models"
)

type Client struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		// Generation can be slow; give the upstream plenty of room.
		HTTP:    &http.Client{Timeout: 120 * time.Second},
		BaseURL: baseURL,
		APIKey:  apiKey,
	}
}

// GenerationRequest asks the supplier for a batch of questions.
type GenerationRequest struct {
	Context    string            `json:"context"`
	Subject    string            `json:"subject"`
	Class      string            `json:"class"`
	Difficulty models.Difficulty `json:"difficulty"`
	Count      int               `json:"count"`
	Language   models.Language   `json:"language"`
}

// OptionDescriptor is one MCQ option as the supplier returns it.
type OptionDescriptor struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

// PairDescriptor is one match-the-following pair as the supplier returns it.
type PairDescriptor struct {
	Left  string `json:"left" validate:"required"`
	Right string `json:"right" validate:"required"`
}

// QuestionDescriptor is one generated question as the supplier returns it.
// Type is free text from the model and may be unrecognized.
type QuestionDescriptor struct {
	Type         string             `json:"type"`
	QuestionText string             `json:"questionText" validate:"required"`
	Marks        int                `json:"marks" validate:"gte=0"`
	Options      []OptionDescriptor `json:"options,omitempty" validate:"omitempty,dive"`
	MatchPairs   []PairDescriptor   `json:"matchPairs,omitempty" validate:"omitempty,dive"`
}

// GenerateQuestions requests a question batch from the supplier.
func (c *Client) GenerateQuestions(ctx context.Context, req GenerationRequest) ([]QuestionDescriptor, error) {
	var descriptors []QuestionDescriptor
	if err := c.post(ctx, "/generate", req, &descriptors); err != nil {
		return nil, err
	}
	return descriptors, nil
}

type translationRequest struct {
	Sections []models.Section `json:"sections"`
	Language models.Language  `json:"language"`
}

// TranslateSections sends the current section list and returns a same-shaped
// list with text fields translated into the target language.
func (c *Client) TranslateSections(ctx context.Context, sections []models.Section, lang models.Language) ([]models.Section, error) {
	var translated []models.Section
	if err := c.post(ctx, "/translate", translationRequest{Sections: sections, Language: lang}, &translated); err != nil {
		return nil, err
	}
	return translated, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("AI request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("AI service error (status %d): %s", resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
