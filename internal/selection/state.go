// Package selection tracks the editor focus: at most one selected section
// and at most one selected question. A selected question always implies its
// owning section is the selected section; the setters enforce that here,
// rather than trusting every call site to clear both.
package selection

// State holds the current focus. Not persisted.
type State struct {
	SectionID  string `json:"section_id"`
	QuestionID string `json:"question_id"`
}

// SetSection selects a section and clears any question selection. An empty
// id clears the focus entirely.
func (s *State) SetSection(id string) {
	s.SectionID = id
	s.QuestionID = ""
}

// SetQuestion selects a question together with its owning section. A question
// selection without an owning section is invalid, so an empty sectionID
// normalizes to no question selection.
func (s *State) SetQuestion(sectionID, questionID string) {
	if questionID == "" {
		s.QuestionID = ""
		return
	}
	if sectionID == "" {
		s.QuestionID = ""
		return
	}
	s.SectionID = sectionID
	s.QuestionID = questionID
}

// ClearQuestion drops the question selection, keeping the section.
func (s *State) ClearQuestion() {
	s.QuestionID = ""
}

// Clear drops the whole focus.
func (s *State) Clear() {
	s.SectionID = ""
	s.QuestionID = ""
}

// Valid reports whether the invariant holds: a question selection requires a
// section selection.
func (s State) Valid() bool {
	return s.QuestionID == "" || s.SectionID != ""
}
