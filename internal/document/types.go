package document

import "paper-service/internal/models"

// Patch types express partial updates. A nil field leaves the current value
// untouched.

// MetadataPatch is a partial update of a paper's metadata block.
type MetadataPatch struct {
	InstitutionName *string          `json:"institution_name,omitempty"`
	ExamName        *string          `json:"exam_name,omitempty"`
	Subject         *string          `json:"subject,omitempty"`
	Class           *string          `json:"class,omitempty"`
	Date            *string          `json:"date,omitempty"`
	Duration        *string          `json:"duration,omitempty"`
	PaperCode       *string          `json:"paper_code,omitempty"`
	TotalMarks      *int             `json:"total_marks,omitempty"`
	Instructions    *string          `json:"instructions,omitempty"`
	Language        *models.Language `json:"language,omitempty"`
}

// SectionPatch is a partial update of a section's own fields. The cached mark
// total is derived and deliberately not patchable.
type SectionPatch struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Instructions *string `json:"instructions,omitempty"`
}

// QuestionPatch is a partial update of a question. Payload fields are applied
// only when they match the question's type; a payload patch of the wrong
// shape is ignored. An explicit IsAIGenerated value wins over the clear that
// a text edit performs, which is how AI ingestion marks freshly written
// questions as machine-authored.
type QuestionPatch struct {
	QuestionText  *string             `json:"question_text,omitempty"`
	IsAIGenerated *bool               `json:"is_ai_generated,omitempty"`
	Marks         *int                `json:"marks,omitempty"`
	Difficulty    *models.Difficulty  `json:"difficulty,omitempty"`
	Language      *models.Language    `json:"language,omitempty"`
	Options       *[]models.MCQOption `json:"options,omitempty"`
	MatchPairs    *[]models.MatchPair `json:"match_pairs,omitempty"`
	BlankAnswers  *[]string           `json:"blank_answers,omitempty"`
	CorrectAnswer *string             `json:"correct_answer,omitempty"`
}

func applyMetadataPatch(m *models.PaperMetadata, p MetadataPatch) {
	if p.InstitutionName != nil {
		m.InstitutionName = *p.InstitutionName
	}
	if p.ExamName != nil {
		m.ExamName = *p.ExamName
	}
	if p.Subject != nil {
		m.Subject = *p.Subject
	}
	if p.Class != nil {
		m.Class = *p.Class
	}
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Duration != nil {
		m.Duration = *p.Duration
	}
	if p.PaperCode != nil {
		m.PaperCode = *p.PaperCode
	}
	if p.TotalMarks != nil {
		m.TotalMarks = *p.TotalMarks
	}
	if p.Instructions != nil {
		m.Instructions = *p.Instructions
	}
	if p.Language != nil {
		m.Language = *p.Language
	}
}

func applySectionPatch(s *models.Section, p SectionPatch) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Instructions != nil {
		s.Instructions = *p.Instructions
	}
}

func applyQuestionPatch(q *models.QuestionBlock, p QuestionPatch) {
	if p.QuestionText != nil {
		q.QuestionText = *p.QuestionText
		// An authored edit of the text supersedes AI authorship. Only a text
		// edit clears the flag; every other field leaves it alone.
		q.IsAIGenerated = false
	}
	if p.Marks != nil {
		marks := *p.Marks
		if marks < 0 {
			marks = 0
		}
		q.Marks = marks
	}
	if p.Difficulty != nil {
		q.Difficulty = *p.Difficulty
	}
	if p.Language != nil {
		q.Language = *p.Language
	}
	if p.Options != nil && (q.Type == models.TypeMCQSingle || q.Type == models.TypeMCQMultiple) {
		incoming := make([]models.MCQOption, len(*p.Options))
		copy(incoming, *p.Options)
		if q.Type == models.TypeMCQSingle {
			incoming = normalizeSingleCorrect(q.Options, incoming)
		}
		q.Options = incoming
	}
	if p.MatchPairs != nil && q.Type == models.TypeMatchFollowing {
		pairs := make([]models.MatchPair, len(*p.MatchPairs))
		copy(pairs, *p.MatchPairs)
		q.MatchPairs = pairs
	}
	if p.BlankAnswers != nil && q.Type == models.TypeFillBlanks {
		blanks := make([]string, len(*p.BlankAnswers))
		copy(blanks, *p.BlankAnswers)
		q.BlankAnswers = blanks
	}
	if p.CorrectAnswer != nil && q.Type == models.TypeTrueFalse {
		q.CorrectAnswer = *p.CorrectAnswer
	}
	if p.IsAIGenerated != nil {
		q.IsAIGenerated = *p.IsAIGenerated
	}
}

// normalizeSingleCorrect enforces the single-correct rule for mcq-single
// options: marking one option correct clears its siblings. The winner is the
// option newly marked correct relative to the previous state; with no newly
// marked option the first correct entry wins.
func normalizeSingleCorrect(prev, next []models.MCQOption) []models.MCQOption {
	correct := 0
	for _, o := range next {
		if o.IsCorrect {
			correct++
		}
	}
	if correct <= 1 {
		return next
	}

	wasCorrect := make(map[string]bool, len(prev))
	for _, o := range prev {
		wasCorrect[o.ID] = o.IsCorrect
	}

	winner := -1
	for i, o := range next {
		if o.IsCorrect && !wasCorrect[o.ID] {
			winner = i
			break
		}
	}
	if winner < 0 {
		for i, o := range next {
			if o.IsCorrect {
				winner = i
				break
			}
		}
	}

	for i := range next {
		next[i].IsCorrect = i == winner
	}
	return next
}
