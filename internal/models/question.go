package models

import "github.com/google/uuid"

type QuestionType string

const (
	TypeMCQSingle      QuestionType = "mcq-single"
	TypeMCQMultiple    QuestionType = "mcq-multiple"
	TypeTrueFalse      QuestionType = "true-false"
	TypeMatchFollowing QuestionType = "match-following"
	TypeFillBlanks     QuestionType = "fill-blanks"
	TypeOneSentence    QuestionType = "one-sentence"
	TypeShortAnswer    QuestionType = "short-answer"
	TypeLongAnswer     QuestionType = "long-answer"
	TypeEssay          QuestionType = "essay"
	TypeShortNotes     QuestionType = "short-notes"
	TypeCustom         QuestionType = "custom"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Language string

const (
	LanguageEnglish Language = "english"
	LanguageHindi   Language = "hindi"
)

type MCQOption struct {
	ID        string `bson:"id" json:"id"`
	Text      string `bson:"text" json:"text"`
	IsCorrect bool   `bson:"is_correct" json:"is_correct"`
}

// MatchPair order determines the displayed pairing labels (1,2,3 on the left,
// A,B,C on the right); correctness is positional index equality, nothing more.
type MatchPair struct {
	ID    string `bson:"id" json:"id"`
	Left  string `bson:"left" json:"left"`
	Right string `bson:"right" json:"right"`
}

// QuestionBlock is one testable item. Which payload fields are populated
// depends on Type: Options for the MCQ variants, MatchPairs for
// match-following, BlankAnswers for fill-blanks, CorrectAnswer for
// true-false. Switching Type after creation is not supported; the editor
// creates a fresh block per type.
type QuestionBlock struct {
	ID            string       `bson:"id" json:"id"`
	Type          QuestionType `bson:"type" json:"type"`
	QuestionText  string       `bson:"question_text" json:"question_text"`
	Marks         int          `bson:"marks" json:"marks"`
	Difficulty    Difficulty   `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Language      Language     `bson:"language" json:"language"`
	IsAIGenerated bool         `bson:"is_ai_generated" json:"is_ai_generated"`
	Options       []MCQOption  `bson:"options,omitempty" json:"options,omitempty"`
	MatchPairs    []MatchPair  `bson:"match_pairs,omitempty" json:"match_pairs,omitempty"`
	BlankAnswers  []string     `bson:"blank_answers,omitempty" json:"blank_answers,omitempty"`
	CorrectAnswer string       `bson:"correct_answer,omitempty" json:"correct_answer,omitempty"`
}

// DefaultMarks defines the mark value assigned to a freshly created question
// of each type. A new block must be immediately usable in the editor, so
// every type has an entry.
var DefaultMarks = map[QuestionType]int{
	TypeMCQSingle:      1,
	TypeMCQMultiple:    2,
	TypeTrueFalse:      1,
	TypeMatchFollowing: 4,
	TypeFillBlanks:     2,
	TypeOneSentence:    1,
	TypeShortAnswer:    3,
	TypeLongAnswer:     5,
	TypeEssay:          10,
	TypeShortNotes:     4,
	TypeCustom:         1,
}

// Default payload cardinality for the structured question types.
const (
	DefaultOptionCount = 4
	DefaultPairCount   = 4
	DefaultBlankCount  = 1
)

// ValidTypes lists every supported question type.
var ValidTypes = []QuestionType{
	TypeMCQSingle,
	TypeMCQMultiple,
	TypeTrueFalse,
	TypeMatchFollowing,
	TypeFillBlanks,
	TypeOneSentence,
	TypeShortAnswer,
	TypeLongAnswer,
	TypeEssay,
	TypeShortNotes,
	TypeCustom,
}

// IsValidType reports whether t is a known question type.
func IsValidType(t QuestionType) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}

// NewID returns a globally-unique opaque identifier. Callers must not read
// any ordering or structure out of it.
func NewID() string {
	return uuid.NewString()
}

// NewQuestion builds a default question of the given type with a
// type-appropriate payload and the mark value from DefaultMarks. An unknown
// type gets an empty payload and 1 mark.
func NewQuestion(qtype QuestionType, lang Language) QuestionBlock {
	q := QuestionBlock{
		ID:       NewID(),
		Type:     qtype,
		Marks:    1,
		Language: lang,
	}
	if marks, ok := DefaultMarks[qtype]; ok {
		q.Marks = marks
	}

	switch qtype {
	case TypeMCQSingle, TypeMCQMultiple:
		for i := 0; i < DefaultOptionCount; i++ {
			q.Options = append(q.Options, MCQOption{ID: NewID()})
		}
	case TypeMatchFollowing:
		for i := 0; i < DefaultPairCount; i++ {
			q.MatchPairs = append(q.MatchPairs, MatchPair{ID: NewID()})
		}
	case TypeFillBlanks:
		q.BlankAnswers = make([]string, DefaultBlankCount)
	case TypeTrueFalse:
		q.CorrectAnswer = "true"
	}
	return q
}

// Clone returns a deep copy of the question, identifiers included.
func (q QuestionBlock) Clone() QuestionBlock {
	out := q
	if q.Options != nil {
		out.Options = make([]MCQOption, len(q.Options))
		copy(out.Options, q.Options)
	}
	if q.MatchPairs != nil {
		out.MatchPairs = make([]MatchPair, len(q.MatchPairs))
		copy(out.MatchPairs, q.MatchPairs)
	}
	if q.BlankAnswers != nil {
		out.BlankAnswers = make([]string, len(q.BlankAnswers))
		copy(out.BlankAnswers, q.BlankAnswers)
	}
	return out
}
