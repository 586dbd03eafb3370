package models

import (
	"testing"
)

func TestNewQuestionDefaults(t *testing.T) {
	testCases := []struct {
		qtype         QuestionType
		expectedMarks int
		optionCount   int
		pairCount     int
		blankCount    int
		correctAnswer string
	}{
		{TypeMCQSingle, 1, 4, 0, 0, ""},
		{TypeMCQMultiple, 2, 4, 0, 0, ""},
		{TypeTrueFalse, 1, 0, 0, 0, "true"},
		{TypeMatchFollowing, 4, 0, 4, 0, ""},
		{TypeFillBlanks, 2, 0, 0, 1, ""},
		{TypeOneSentence, 1, 0, 0, 0, ""},
		{TypeShortAnswer, 3, 0, 0, 0, ""},
		{TypeLongAnswer, 5, 0, 0, 0, ""},
		{TypeEssay, 10, 0, 0, 0, ""},
		{TypeShortNotes, 4, 0, 0, 0, ""},
		{TypeCustom, 1, 0, 0, 0, ""},
	}

	for _, tc := range testCases {
		t.Run(string(tc.qtype), func(t *testing.T) {
			q := NewQuestion(tc.qtype, LanguageEnglish)

			if q.ID == "" {
				t.Error("Expected a generated id")
			}
			if q.Type != tc.qtype {
				t.Errorf("Expected type %s, got %s", tc.qtype, q.Type)
			}
			if q.Marks != tc.expectedMarks {
				t.Errorf("Expected %d marks, got %d", tc.expectedMarks, q.Marks)
			}
			if q.Language != LanguageEnglish {
				t.Errorf("Expected language %s, got %s", LanguageEnglish, q.Language)
			}
			if q.IsAIGenerated {
				t.Error("Expected a fresh question to not be AI generated")
			}
			if len(q.Options) != tc.optionCount {
				t.Errorf("Expected %d options, got %d", tc.optionCount, len(q.Options))
			}
			for i, o := range q.Options {
				if o.IsCorrect {
					t.Errorf("Expected option %d to start incorrect", i)
				}
				if o.ID == "" {
					t.Errorf("Expected option %d to carry an id", i)
				}
			}
			if len(q.MatchPairs) != tc.pairCount {
				t.Errorf("Expected %d pairs, got %d", tc.pairCount, len(q.MatchPairs))
			}
			if len(q.BlankAnswers) != tc.blankCount {
				t.Errorf("Expected %d blanks, got %d", tc.blankCount, len(q.BlankAnswers))
			}
			if q.CorrectAnswer != tc.correctAnswer {
				t.Errorf("Expected correct answer %q, got %q", tc.correctAnswer, q.CorrectAnswer)
			}
		})
	}
}

func TestNewQuestionUnknownType(t *testing.T) {
	q := NewQuestion(QuestionType("riddle"), LanguageEnglish)

	if q.Marks != 1 {
		t.Errorf("Expected 1 mark for unknown type, got %d", q.Marks)
	}
	if len(q.Options) != 0 || len(q.MatchPairs) != 0 || len(q.BlankAnswers) != 0 {
		t.Error("Expected empty payload for unknown type")
	}
}

func TestIsValidType(t *testing.T) {
	for _, v := range ValidTypes {
		if !IsValidType(v) {
			t.Errorf("Expected %s to be valid", v)
		}
	}
	if IsValidType("riddle") {
		t.Error("Expected unknown type to be invalid")
	}
}

func TestQuestionCloneIsIndependent(t *testing.T) {
	q := NewQuestion(TypeMCQSingle, LanguageEnglish)
	q.Options[0].Text = "original"

	clone := q.Clone()
	clone.Options[0].Text = "changed"
	clone.Options[1].IsCorrect = true

	if q.Options[0].Text != "original" {
		t.Error("Editing the clone mutated the source option text")
	}
	if q.Options[1].IsCorrect {
		t.Error("Editing the clone mutated the source option correctness")
	}
	if clone.ID != q.ID {
		t.Error("Clone should keep the same id")
	}
}
