package models

import (
	"fmt"
	"time"
)

// PaperMetadata is the header block of a question paper. TotalMarks is the
// author's target for the whole paper, not a derived value.
type PaperMetadata struct {
	InstitutionName string   `bson:"institution_name" json:"institution_name"`
	ExamName        string   `bson:"exam_name" json:"exam_name"`
	Subject         string   `bson:"subject" json:"subject"`
	Class           string   `bson:"class" json:"class"`
	Date            string   `bson:"date" json:"date"`
	Duration        string   `bson:"duration" json:"duration"`
	PaperCode       string   `bson:"paper_code" json:"paper_code"`
	TotalMarks      int      `bson:"total_marks" json:"total_marks"`
	Instructions    string   `bson:"instructions" json:"instructions"`
	Language        Language `bson:"language" json:"language"`
}

// Section is a titled, ordered grouping of questions. TotalMarks is derived:
// it must equal the sum of the contained questions' marks after every
// mutation, and is never settable by callers directly.
type Section struct {
	ID           string          `bson:"id" json:"id"`
	Title        string          `bson:"title" json:"title"`
	Description  string          `bson:"description,omitempty" json:"description,omitempty"`
	Instructions string          `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Questions    []QuestionBlock `bson:"questions" json:"questions"`
	TotalMarks   int             `bson:"total_marks" json:"total_marks"`
}

// QuestionPaper is the root aggregate. A paper always holds at least one
// section.
type QuestionPaper struct {
	ID            string        `bson:"_id" json:"id"`
	Metadata      PaperMetadata `bson:"metadata" json:"metadata"`
	Sections      []Section     `bson:"sections" json:"sections"`
	IsAIGenerated bool          `bson:"is_ai_generated" json:"is_ai_generated"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}

const defaultTargetMarks = 100

// SectionTitle returns the auto-assigned title for a section created at the
// given zero-based position: "Section A" through "Section Z", then numeric
// ("Section 27", ...) once the alphabet runs out.
func SectionTitle(index int) string {
	if index < 26 {
		return fmt.Sprintf("Section %c", 'A'+index)
	}
	return fmt.Sprintf("Section %d", index+1)
}

// NewSection builds an empty, zero-mark section with the given title.
func NewSection(title string) Section {
	return Section{
		ID:        NewID(),
		Title:     title,
		Questions: []QuestionBlock{},
	}
}

// NewPaper builds a paper with blank metadata, one default section and the
// default target mark total.
func NewPaper(aiAssisted bool) QuestionPaper {
	now := time.Now()
	return QuestionPaper{
		ID: NewID(),
		Metadata: PaperMetadata{
			TotalMarks: defaultTargetMarks,
			Language:   LanguageEnglish,
		},
		Sections:      []Section{NewSection(SectionTitle(0))},
		IsAIGenerated: aiAssisted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// RecomputeTotalMarks re-sums the section's question marks from scratch.
// Always a full re-sum rather than an incremental delta, so a missed update
// path can never leave the cached total drifted.
func (s *Section) RecomputeTotalMarks() {
	total := 0
	for _, q := range s.Questions {
		total += q.Marks
	}
	s.TotalMarks = total
}

// QuestionIndex returns the position of the question with the given id, or -1.
func (s *Section) QuestionIndex(id string) int {
	for i, q := range s.Questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the section, identifiers included.
func (s Section) Clone() Section {
	out := s
	out.Questions = make([]QuestionBlock, len(s.Questions))
	for i, q := range s.Questions {
		out.Questions[i] = q.Clone()
	}
	return out
}

// SectionIndex returns the position of the section with the given id, or -1.
func (p *QuestionPaper) SectionIndex(id string) int {
	for i, s := range p.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Section returns the section with the given id, or nil.
func (p *QuestionPaper) Section(id string) *Section {
	if i := p.SectionIndex(id); i >= 0 {
		return &p.Sections[i]
	}
	return nil
}

// Clone returns a deep structural copy of the paper, identifiers included.
// No serialization round-trip is involved.
func (p QuestionPaper) Clone() QuestionPaper {
	out := p
	out.Sections = make([]Section, len(p.Sections))
	for i, s := range p.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// Reidentify assigns fresh identifiers to the paper, every section and every
// question, breaking all aliasing with the source ids.
func (p *QuestionPaper) Reidentify() {
	p.ID = NewID()
	for i := range p.Sections {
		p.Sections[i].ID = NewID()
		for j := range p.Sections[i].Questions {
			p.Sections[i].Questions[j].ID = NewID()
		}
	}
}
