package ai

import (
	"testing"

	"paper-service/internal/document"
	"paper-service/internal/models"
)

func TestMapType(t *testing.T) {
	testCases := []struct {
		raw      string
		expected models.QuestionType
	}{
		{"mcq", models.TypeMCQSingle},
		{"multiple-choice", models.TypeMCQSingle},
		{"mcq-multiple", models.TypeMCQMultiple},
		{"true-false", models.TypeTrueFalse},
		{"matching", models.TypeMatchFollowing},
		{"fill-in-blanks", models.TypeFillBlanks},
		{"essay", models.TypeEssay},
		{"mcq-single", models.TypeMCQSingle},
		{"custom", models.TypeCustom},
		// Anything unrecognized falls back to short-answer.
		{"riddle", models.TypeShortAnswer},
		{"", models.TypeShortAnswer},
	}

	for _, tc := range testCases {
		if got := MapType(tc.raw); got != tc.expected {
			t.Errorf("MapType(%q) expected %s, got %s", tc.raw, tc.expected, got)
		}
	}
}

func TestValidateBatchRejectsMalformed(t *testing.T) {
	m := NewMapper()

	if err := m.ValidateBatch(nil); err == nil {
		t.Error("Expected an empty batch to be rejected")
	}

	batch := []QuestionDescriptor{
		{Type: "mcq", QuestionText: "Valid?", Marks: 1},
		{Type: "essay", QuestionText: "", Marks: 5}, // missing text
	}
	if err := m.ValidateBatch(batch); err == nil {
		t.Error("Expected a batch with a malformed descriptor to be rejected")
	}

	batch[1].QuestionText = "Now valid"
	if err := m.ValidateBatch(batch); err != nil {
		t.Errorf("Expected a well-formed batch to pass, got %v", err)
	}
}

func TestIngestRejectsBatchBeforeMutating(t *testing.T) {
	store := document.NewStore()
	store.CreateDocument(false)
	secID := store.Current().Sections[0].ID

	batch := []QuestionDescriptor{
		{Type: "mcq", QuestionText: "First", Marks: 1},
		{Type: "essay", QuestionText: "", Marks: 5},
	}

	m := NewMapper()
	if err := m.Ingest(store, secID, batch); err == nil {
		t.Fatal("Expected the malformed batch to be rejected")
	}

	// Partial ingestion must never happen.
	if got := len(store.Current().Sections[0].Questions); got != 0 {
		t.Errorf("Expected no questions ingested, got %d", got)
	}
}

func TestIngest(t *testing.T) {
	store := document.NewStore()
	store.CreateDocument(false)
	secID := store.Current().Sections[0].ID

	batch := []QuestionDescriptor{
		{
			Type:         "mcq",
			QuestionText: "Which planet is largest?",
			Marks:        2,
			Options: []OptionDescriptor{
				{Text: "Earth"},
				{Text: "Jupiter", IsCorrect: true},
				{Text: "Mars"},
				{Text: "Venus"},
			},
		},
		{
			Type:         "matching",
			QuestionText: "Match the capitals",
			Marks:        4,
			MatchPairs: []PairDescriptor{
				{Left: "France", Right: "Paris"},
				{Left: "Japan", Right: "Tokyo"},
			},
		},
		{Type: "riddle", QuestionText: "Explain gravity", Marks: 0},
	}

	m := NewMapper()
	if err := m.Ingest(store, secID, batch); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	questions := store.Current().Sections[0].Questions
	if len(questions) != 3 {
		t.Fatalf("Expected 3 questions, got %d", len(questions))
	}

	mcq := questions[0]
	if mcq.Type != models.TypeMCQSingle {
		t.Errorf("Expected mcq-single, got %s", mcq.Type)
	}
	if mcq.QuestionText != "Which planet is largest?" {
		t.Errorf("Unexpected text %q", mcq.QuestionText)
	}
	if mcq.Marks != 2 {
		t.Errorf("Expected 2 marks, got %d", mcq.Marks)
	}
	if len(mcq.Options) != 4 || !mcq.Options[1].IsCorrect {
		t.Error("Expected the supplier's options with Jupiter correct")
	}
	if !mcq.IsAIGenerated {
		t.Error("Expected ingested question to carry the AI provenance mark")
	}

	matching := questions[1]
	if matching.Type != models.TypeMatchFollowing {
		t.Errorf("Expected match-following, got %s", matching.Type)
	}
	if len(matching.MatchPairs) != 2 || matching.MatchPairs[0].Left != "France" {
		t.Error("Expected the supplier's pairs")
	}

	fallback := questions[2]
	if fallback.Type != models.TypeShortAnswer {
		t.Errorf("Expected short-answer fallback, got %s", fallback.Type)
	}
	// Zero supplier marks keep the type default.
	if fallback.Marks != models.DefaultMarks[models.TypeShortAnswer] {
		t.Errorf("Expected default marks, got %d", fallback.Marks)
	}

	// The section total reflects the whole batch.
	if got := store.Current().Sections[0].TotalMarks; got != 2+4+3 {
		t.Errorf("Expected section total 9, got %d", got)
	}
}

func TestIngestUnknownSection(t *testing.T) {
	store := document.NewStore()
	store.CreateDocument(false)

	m := NewMapper()
	err := m.Ingest(store, "ghost", []QuestionDescriptor{{Type: "essay", QuestionText: "Q", Marks: 5}})
	if err == nil {
		t.Error("Expected an unknown section to be reported")
	}
}
