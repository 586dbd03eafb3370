// Package workspace talks to the remote workspace that durably stores saved
// papers outside the local editor. Sync is best effort: a failure here never
// rolls back a local save.
package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"paper-service/internal/models"
)

type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		BaseURL: baseURL,
	}
}

// SaveRequest is the remote save body. Field names follow the workspace API,
// not the internal model tags.
type SaveRequest struct {
	ExamName string               `json:"examName"`
	Subject  string               `json:"subject"`
	Class    string               `json:"class"`
	Data     models.QuestionPaper `json:"data"`
}

type saveResponse struct {
	Success bool   `json:"success"`
	Slug    string `json:"slug"`
}

// PaperRecord is one stored paper as the workspace returns it.
type PaperRecord struct {
	ExamName  string               `json:"examName"`
	Subject   string               `json:"subject"`
	Class     string               `json:"class"`
	Year      string               `json:"year"`
	Data      models.QuestionPaper `json:"data"`
	CreatedAt time.Time            `json:"createdAt"`
}

// SavePaper posts the paper to the workspace and returns the assigned slug.
// Any non-2xx status is a sync failure.
func (c *Client) SavePaper(ctx context.Context, paper models.QuestionPaper) (string, error) {
	body, err := json.Marshal(SaveRequest{
		ExamName: paper.Metadata.ExamName,
		Subject:  paper.Metadata.Subject,
		Class:    paper.Metadata.Class,
		Data:     paper,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal paper: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/papers", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("workspace request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("workspace error (status %d): %s", resp.StatusCode, string(raw))
	}

	var out saveResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if !out.Success {
		return "", fmt.Errorf("workspace rejected the paper")
	}
	return out.Slug, nil
}

// ListPapers fetches stored papers filtered by subject and class. Either
// filter may be empty.
func (c *Client) ListPapers(ctx context.Context, subject, class string) ([]PaperRecord, error) {
	params := url.Values{}
	if subject != "" {
		params.Set("subject", subject)
	}
	if class != "" {
		params.Set("class", class)
	}
	endpoint := c.BaseURL + "/papers"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("workspace request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("workspace error (status %d): %s", resp.StatusCode, string(raw))
	}

	var records []PaperRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return records, nil
}
