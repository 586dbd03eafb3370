package ai

import (
	"fmt"

	"paper-service/internal/document"
	"paper-service/internal/models"

	"github.com/go-playground/validator/v10"
)

// typeAliases maps supplier type strings onto the closed type vocabulary.
// The supplier is a language model and spells types loosely.
var typeAliases = map[string]models.QuestionType{
	"mcq":             models.TypeMCQSingle,
	"mcq-single":      models.TypeMCQSingle,
	"multiple-choice": models.TypeMCQSingle,
	"mcq-multiple":    models.TypeMCQMultiple,
	"multi-correct":   models.TypeMCQMultiple,
	"true-false":      models.TypeTrueFalse,
	"truefalse":       models.TypeTrueFalse,
	"match-following": models.TypeMatchFollowing,
	"matching":        models.TypeMatchFollowing,
	"fill-blanks":     models.TypeFillBlanks,
	"fill-in-blanks":  models.TypeFillBlanks,
	"one-sentence":    models.TypeOneSentence,
	"short-answer":    models.TypeShortAnswer,
	"long-answer":     models.TypeLongAnswer,
	"essay":           models.TypeEssay,
	"short-notes":     models.TypeShortNotes,
}

// MapType resolves a supplier type string, falling back to short-answer for
// anything unrecognized.
func MapType(raw string) models.QuestionType {
	if t, ok := typeAliases[raw]; ok {
		return t
	}
	if models.IsValidType(models.QuestionType(raw)) {
		return models.QuestionType(raw)
	}
	return models.TypeShortAnswer
}

// Mapper validates descriptor batches and turns them into mutation calls on
// the document store.
type Mapper struct {
	validate *validator.Validate
}

func NewMapper() *Mapper {
	return &Mapper{validate: validator.New()}
}

// ValidateBatch checks the whole batch before any mutation is issued. A
// malformed batch is rejected whole; partial ingestion must never happen.
func (m *Mapper) ValidateBatch(batch []QuestionDescriptor) error {
	if len(batch) == 0 {
		return fmt.Errorf("empty question batch")
	}
	for i, d := range batch {
		if err := m.validate.Struct(d); err != nil {
			return fmt.Errorf("descriptor %d invalid: %w", i, err)
		}
	}
	return nil
}

// Ingest validates the batch and then appends every descriptor to the named
// section, sequentially so question numbering stays stable. Each ingested
// question carries the AI provenance mark.
func (m *Mapper) Ingest(store *document.Store, sectionID string, batch []QuestionDescriptor) error {
	if err := m.ValidateBatch(batch); err != nil {
		return err
	}

	aiGenerated := true
	for _, d := range batch {
		qtype := MapType(d.Type)
		id := store.AddQuestion(sectionID, qtype)
		if id == "" {
			return fmt.Errorf("section %s not found", sectionID)
		}

		patch := document.QuestionPatch{
			QuestionText:  &d.QuestionText,
			IsAIGenerated: &aiGenerated,
		}
		if d.Marks > 0 {
			marks := d.Marks
			patch.Marks = &marks
		}
		if len(d.Options) > 0 && (qtype == models.TypeMCQSingle || qtype == models.TypeMCQMultiple) {
			options := make([]models.MCQOption, len(d.Options))
			for i, o := range d.Options {
				options[i] = models.MCQOption{ID: models.NewID(), Text: o.Text, IsCorrect: o.IsCorrect}
			}
			patch.Options = &options
		}
		if len(d.MatchPairs) > 0 && qtype == models.TypeMatchFollowing {
			pairs := make([]models.MatchPair, len(d.MatchPairs))
			for i, p := range d.MatchPairs {
				pairs[i] = models.MatchPair{ID: models.NewID(), Left: p.Left, Right: p.Right}
			}
			patch.MatchPairs = &pairs
		}

		store.UpdateQuestion(sectionID, id, patch)
	}
	return nil
}
