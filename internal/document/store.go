// Package document owns the in-memory representation of the question papers
// being edited and is the sole authority for mutating them. Every operation
// either fully applies or is a no-op: a failed precondition (no document
// loaded, unknown section or question id, deleting the last section) is
// swallowed silently so the editing surface stays usable.
package document

import (
	"sync"
	"time"

	"paper-service/internal/models"
	"paper-service/internal/selection"
)

// Store holds the paper collection, the currently edited paper and the editor
// focus. The current paper is a deep copy of its collection entry; edits do
// not touch the collection until an explicit SaveDocument.
//
// Mutations are serialized through the mutex: one writer at a time, each
// operation running to completion before the next is accepted.
type Store struct {
	mu        sync.RWMutex
	papers    []models.QuestionPaper
	current   *models.QuestionPaper
	selection selection.State
	hydrated  bool

	subs    map[int]func()
	nextSub int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{subs: make(map[int]func())}
}

// Subscribe registers fn to run after every applied mutation. Callbacks run
// after the store lock is released, so a subscriber may read the store
// (Current, Selection, Papers) to re-render. The returned function
// unsubscribes. No-op operations do not notify.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// subscribers snapshots the callback list. Callers hold the write lock; the
// snapshot is what makes invoking the callbacks after unlock safe against a
// concurrent Subscribe or unsubscribe.
func (s *Store) subscribers() []func() {
	out := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

// notify invokes a subscriber snapshot. Mutating operations defer this before
// deferring the unlock, so it runs with the lock already released; a no-op
// path leaves the snapshot nil and nothing fires.
func notify(fns *[]func()) {
	for _, fn := range *fns {
		fn()
	}
}

// touch stamps the current paper's last-modified time.
func (s *Store) touch() {
	s.current.UpdatedAt = time.Now()
}

// Hydrate replaces the collection with papers restored from durable storage
// and marks the store hydrated. Consumers must wait for hydration before
// issuing LoadDocument.
func (s *Store) Hydrate(papers []models.QuestionPaper) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.papers = make([]models.QuestionPaper, len(papers))
	for i, p := range papers {
		s.papers[i] = p.Clone()
	}
	s.hydrated = true
	subs = s.subscribers()
}

// Hydrated reports whether startup restoration has completed.
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Papers returns a deep copy of the whole collection, for serialization.
func (s *Store) Papers() []models.QuestionPaper {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.QuestionPaper, len(s.papers))
	for i, p := range s.papers {
		out[i] = p.Clone()
	}
	return out
}

// Current returns a deep copy of the currently edited paper, or nil when no
// document is loaded.
func (s *Store) Current() *models.QuestionPaper {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	cur := s.current.Clone()
	return &cur
}

// Selection returns the current focus.
func (s *Store) Selection() selection.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// CreateDocument appends a freshly built paper to the collection, makes it
// current and selects its first section. Returns the new paper's id.
func (s *Store) CreateDocument(aiAssisted bool) string {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	paper := models.NewPaper(aiAssisted)
	s.papers = append(s.papers, paper)

	cur := paper.Clone()
	s.current = &cur
	s.selection.SetSection(cur.Sections[0].ID)
	subs = s.subscribers()
	return paper.ID
}

// LoadDocument makes the paper with the given id current, as a deep copy so
// edits do not alias the collection entry, and selects its first section.
// Unknown id is a no-op.
func (s *Store) LoadDocument(id string) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.papers {
		if p.ID == id {
			cur := p.Clone()
			s.current = &cur
			if len(cur.Sections) > 0 {
				s.selection.SetSection(cur.Sections[0].ID)
			} else {
				s.selection.Clear()
			}
			subs = s.subscribers()
			return
		}
	}
}

// SaveDocument copies the current paper back into its collection slot,
// recomputing every section's mark total and stamping the modified time.
// No-op when nothing is loaded or the slot no longer exists; the no-op is
// total, the current paper is not touched.
func (s *Store) SaveDocument() {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	slot := -1
	for i, p := range s.papers {
		if p.ID == s.current.ID {
			slot = i
			break
		}
	}
	if slot < 0 {
		return
	}

	for i := range s.current.Sections {
		s.current.Sections[i].RecomputeTotalMarks()
	}
	s.touch()
	s.papers[slot] = s.current.Clone()
	subs = s.subscribers()
}

// DeleteDocument removes a paper from the collection. Deleting the currently
// loaded paper also clears the current document and the focus.
func (s *Store) DeleteDocument(id string) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.papers {
		if p.ID == id {
			s.papers = append(s.papers[:i], s.papers[i+1:]...)
			if s.current != nil && s.current.ID == id {
				s.current = nil
				s.selection.Clear()
			}
			subs = s.subscribers()
			return
		}
	}
}

// DuplicateDocument deep-clones a paper with fresh identifiers throughout,
// appends " (Copy)" to the exam name, resets the timestamps and adds it to
// the collection. The clone is not made current. Returns the new id, or ""
// for an unknown source.
func (s *Store) DuplicateDocument(id string) string {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.papers {
		if p.ID == id {
			clone := p.Clone()
			clone.Reidentify()
			clone.Metadata.ExamName += " (Copy)"
			now := time.Now()
			clone.CreatedAt = now
			clone.UpdatedAt = now
			s.papers = append(s.papers, clone)
			subs = s.subscribers()
			return clone.ID
		}
	}
	return ""
}

// UpdateMetadata shallow-merges the patch into the current paper's metadata.
func (s *Store) UpdateMetadata(patch MetadataPatch) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	applyMetadataPatch(&s.current.Metadata, patch)
	s.touch()
	subs = s.subscribers()
}

// ReplaceSections swaps the current paper's whole section list, recomputing
// every mark total. Used by bulk operations such as translation ingestion.
func (s *Store) ReplaceSections(sections []models.Section) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	next := make([]models.Section, len(sections))
	for i, sec := range sections {
		next[i] = sec.Clone()
		next[i].RecomputeTotalMarks()
	}
	s.current.Sections = next
	s.touch()
	subs = s.subscribers()
}

// AddSection appends a new default section, titled by position in the letter
// sequence, and selects it.
func (s *Store) AddSection() {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	sec := models.NewSection(models.SectionTitle(len(s.current.Sections)))
	s.current.Sections = append(s.current.Sections, sec)
	s.selection.SetSection(sec.ID)
	s.touch()
	subs = s.subscribers()
}

// UpdateSection merges the patch into the named section.
func (s *Store) UpdateSection(id string, patch SectionPatch) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	sec := s.current.Section(id)
	if sec == nil {
		return
	}
	applySectionPatch(sec, patch)
	s.touch()
	subs = s.subscribers()
}

// DeleteSection removes the named section. Refused when it is the last
// remaining section: a paper always keeps at least one. On success the focus
// falls back to the new first section.
func (s *Store) DeleteSection(id string) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || len(s.current.Sections) <= 1 {
		return
	}
	i := s.current.SectionIndex(id)
	if i < 0 {
		return
	}
	s.current.Sections = append(s.current.Sections[:i], s.current.Sections[i+1:]...)
	s.selection.SetSection(s.current.Sections[0].ID)
	s.touch()
	subs = s.subscribers()
}

// ReorderSections re-sequences the section list to match the given id order.
// Unknown ids are dropped from the order; an order that would leave the paper
// without sections is a no-op. Entity identity is preserved, only position
// changes.
func (s *Store) ReorderSections(idOrder []string) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	byID := make(map[string]models.Section, len(s.current.Sections))
	for _, sec := range s.current.Sections {
		byID[sec.ID] = sec
	}

	next := make([]models.Section, 0, len(s.current.Sections))
	seen := make(map[string]bool, len(idOrder))
	for _, id := range idOrder {
		sec, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		next = append(next, sec)
	}
	if len(next) == 0 {
		return
	}
	s.current.Sections = next
	s.touch()
	subs = s.subscribers()
}

// AddQuestion appends a default question of the given type to the named
// section, updates the section's mark total and selects the new question.
// Returns the new question's id, or "" on a no-op.
func (s *Store) AddQuestion(sectionID string, qtype models.QuestionType) string {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ""
	}
	sec := s.current.Section(sectionID)
	if sec == nil {
		return ""
	}
	q := models.NewQuestion(qtype, s.current.Metadata.Language)
	sec.Questions = append(sec.Questions, q)
	sec.RecomputeTotalMarks()
	s.selection.SetQuestion(sectionID, q.ID)
	s.touch()
	subs = s.subscribers()
	return q.ID
}

// UpdateQuestion merges the patch into the named question and recomputes the
// containing section's mark total.
func (s *Store) UpdateQuestion(sectionID, questionID string, patch QuestionPatch) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	sec := s.current.Section(sectionID)
	if sec == nil {
		return
	}
	i := sec.QuestionIndex(questionID)
	if i < 0 {
		return
	}
	applyQuestionPatch(&sec.Questions[i], patch)
	sec.RecomputeTotalMarks()
	s.touch()
	subs = s.subscribers()
}

// DeleteQuestion removes the named question, recomputes the section's mark
// total and clears the question focus if the deleted question held it.
func (s *Store) DeleteQuestion(sectionID, questionID string) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	sec := s.current.Section(sectionID)
	if sec == nil {
		return
	}
	i := sec.QuestionIndex(questionID)
	if i < 0 {
		return
	}
	sec.Questions = append(sec.Questions[:i], sec.Questions[i+1:]...)
	sec.RecomputeTotalMarks()
	if s.selection.QuestionID == questionID {
		s.selection.ClearQuestion()
	}
	s.touch()
	subs = s.subscribers()
}

// DuplicateQuestion deep-clones the named question with a fresh identifier,
// appends the clone to the same section and selects it. Returns the clone's
// id, or "" on a no-op.
func (s *Store) DuplicateQuestion(sectionID, questionID string) string {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ""
	}
	sec := s.current.Section(sectionID)
	if sec == nil {
		return ""
	}
	i := sec.QuestionIndex(questionID)
	if i < 0 {
		return ""
	}
	clone := sec.Questions[i].Clone()
	clone.ID = models.NewID()
	sec.Questions = append(sec.Questions, clone)
	sec.RecomputeTotalMarks()
	s.selection.SetQuestion(sectionID, clone.ID)
	s.touch()
	subs = s.subscribers()
	return clone.ID
}

// MoveQuestion removes the question from its origin section and inserts it at
// newIndex in the destination, recomputing both mark totals. With equal
// section ids this degrades to a positional move. An out-of-range index
// clamps to an append. Identity is preserved, only position changes.
func (s *Store) MoveQuestion(fromSectionID, toSectionID, questionID string, newIndex int) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	from := s.current.Section(fromSectionID)
	to := s.current.Section(toSectionID)
	if from == nil || to == nil {
		return
	}
	i := from.QuestionIndex(questionID)
	if i < 0 {
		return
	}

	q := from.Questions[i]
	from.Questions = append(from.Questions[:i], from.Questions[i+1:]...)

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(to.Questions) {
		newIndex = len(to.Questions)
	}
	to.Questions = append(to.Questions, models.QuestionBlock{})
	copy(to.Questions[newIndex+1:], to.Questions[newIndex:])
	to.Questions[newIndex] = q

	from.RecomputeTotalMarks()
	to.RecomputeTotalMarks()
	s.touch()
	subs = s.subscribers()
}

// ReorderQuestions re-sequences one section's question list to match the
// given id order, with the same permutation semantics as ReorderSections.
func (s *Store) ReorderQuestions(sectionID string, idOrder []string) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	sec := s.current.Section(sectionID)
	if sec == nil {
		return
	}
	byID := make(map[string]models.QuestionBlock, len(sec.Questions))
	for _, q := range sec.Questions {
		byID[q.ID] = q
	}

	next := make([]models.QuestionBlock, 0, len(sec.Questions))
	seen := make(map[string]bool, len(idOrder))
	for _, id := range idOrder {
		q, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		next = append(next, q)
	}
	sec.Questions = next
	sec.RecomputeTotalMarks()
	s.touch()
	subs = s.subscribers()
}

// SelectSection sets the section focus, clearing any question focus. An empty
// id clears the focus. Unknown ids, and selections that change nothing, are
// no-ops.
func (s *Store) SelectSection(id string) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		if s.selection.SectionID == "" {
			return
		}
		s.selection.Clear()
		subs = s.subscribers()
		return
	}
	if s.current == nil || s.current.Section(id) == nil {
		return
	}
	if s.selection.SectionID == id && s.selection.QuestionID == "" {
		return
	}
	s.selection.SetSection(id)
	subs = s.subscribers()
}

// SelectQuestion sets the question focus together with its owning section,
// which the store resolves itself. An empty id clears only the question
// focus. Unknown ids, and selections that change nothing, are no-ops.
func (s *Store) SelectQuestion(id string) {
	var subs []func()
	defer notify(&subs)
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		if s.selection.QuestionID == "" {
			return
		}
		s.selection.ClearQuestion()
		subs = s.subscribers()
		return
	}
	if s.current == nil {
		return
	}
	if s.selection.QuestionID == id {
		return
	}
	for _, sec := range s.current.Sections {
		if sec.QuestionIndex(id) >= 0 {
			s.selection.SetQuestion(sec.ID, id)
			subs = s.subscribers()
			return
		}
	}
}
