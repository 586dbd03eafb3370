package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"paper-service/internal/models"
)

func TestGenerateQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Expected bearer auth, got %q", got)
		}
		var req GenerationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Count != 2 {
			t.Errorf("Expected count 2, got %d", req.Count)
		}
		json.NewEncoder(w).Encode([]QuestionDescriptor{
			{Type: "mcq", QuestionText: "Q1", Marks: 1},
			{Type: "essay", QuestionText: "Q2", Marks: 10},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	batch, err := client.GenerateQuestions(context.Background(), GenerationRequest{
		Subject:  "Physics",
		Count:    2,
		Language: models.LanguageEnglish,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(batch) != 2 || batch[0].QuestionText != "Q1" {
		t.Errorf("Unexpected batch: %+v", batch)
	}
}

func TestGenerateQuestionsServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.GenerateQuestions(context.Background(), GenerationRequest{}); err == nil {
		t.Error("Expected an error for a non-200 response")
	}
}

func TestTranslateSections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var req translationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Language != models.LanguageHindi {
			t.Errorf("Expected target language hindi, got %s", req.Language)
		}
		// Echo the sections back with a translated title.
		req.Sections[0].Title = "खंड A"
		json.NewEncoder(w).Encode(req.Sections)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	sections := []models.Section{models.NewSection("Section A")}
	translated, err := client.TranslateSections(context.Background(), sections, models.LanguageHindi)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(translated) != 1 || translated[0].Title != "खंड A" {
		t.Errorf("Unexpected result: %+v", translated)
	}
	if translated[0].ID != sections[0].ID {
		t.Error("Expected translation to preserve section identity")
	}
}
