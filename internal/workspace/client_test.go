package workspace

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"paper-service/internal/models"
)

func TestSavePaper(t *testing.T) {
	var received SaveRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/papers" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("Failed to decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "slug": "midterm-physics"})
	}))
	defer server.Close()

	paper := models.NewPaper(false)
	paper.Metadata.ExamName = "Midterm"
	paper.Metadata.Subject = "Physics"
	paper.Metadata.Class = "10"

	client := NewClient(server.URL)
	slug, err := client.SavePaper(context.Background(), paper)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if slug != "midterm-physics" {
		t.Errorf("Expected slug midterm-physics, got %q", slug)
	}
	if received.ExamName != "Midterm" || received.Subject != "Physics" || received.Class != "10" {
		t.Error("Expected metadata lifted into the request envelope")
	}
	if received.Data.ID != paper.ID {
		t.Error("Expected the full paper in the data field")
	}
}

func TestSavePaperNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.SavePaper(context.Background(), models.NewPaper(false)); err == nil {
		t.Error("Expected a non-2xx status to be a sync failure")
	}
}

func TestListPapers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("subject"); got != "Physics" {
			t.Errorf("Expected subject filter, got %q", got)
		}
		if got := r.URL.Query().Get("class"); got != "10" {
			t.Errorf("Expected class filter, got %q", got)
		}
		json.NewEncoder(w).Encode([]PaperRecord{
			{ExamName: "Midterm", Subject: "Physics", Class: "10", Data: models.NewPaper(false)},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	records, err := client.ListPapers(context.Background(), "Physics", "10")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].ExamName != "Midterm" {
		t.Errorf("Unexpected records: %+v", records)
	}
}
