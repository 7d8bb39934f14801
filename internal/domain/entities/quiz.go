package entities

import "strings"

// BlankMarker is the placeholder token the backend puts in place of a hidden word.
const BlankMarker = "____"

// QuestionType is the kind of quiz question served by the backend.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice" // pick companions and sources
	QuestionFillBlanks     QuestionType = "fill_blanks"     // type the missing words
)

// AllQuestionTypes lists every question type in display order.
var AllQuestionTypes = []QuestionType{QuestionMultipleChoice, QuestionFillBlanks}

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	return t == QuestionMultipleChoice || t == QuestionFillBlanks
}

// JoinQuestionTypes renders types as the comma separated list the API expects.
func JoinQuestionTypes(types []QuestionType) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ",")
}

// QuizQuestion is a transient, server-generated view of a hadith.
// A multiple choice question carries the full candidate lists; a fill-in question
// carries the blank template, the blanked words (used for sizing only) and their
// positions in the original token sequence.
type QuizQuestion struct {
	ID           int64        `json:"id"`
	Text         string       `json:"text"`
	Type         QuestionType `json:"type"`
	Companions   []Companion  `json:"companions,omitempty"`
	Sources      []Source     `json:"sources,omitempty"`
	BlankText    string       `json:"blank_text,omitempty"`
	BlankWords   []string     `json:"blank_words,omitempty"`
	BlankIndices []int        `json:"blank_indices,omitempty"`
}

// BlankCount is the number of inputs a fill-in question needs.
func (q *QuizQuestion) BlankCount() int {
	return len(q.BlankWords)
}

// CheckAnswerRequest is an answer submission built from the current selections.
type CheckAnswerRequest struct {
	HadithID     int64        `json:"hadith_id"`
	QuestionType QuestionType `json:"question_type"`
	CompanionIDs []int64      `json:"companion_ids,omitempty"`
	SourceIDs    []int64      `json:"source_ids,omitempty"`
	FilledWords  []string     `json:"filled_words,omitempty"`
	BlankIndices []int        `json:"blank_indices,omitempty"`
}

// CheckAnswerResponse only says whether the submission was correct.
type CheckAnswerResponse struct {
	IsCorrect bool `json:"is_correct"`
}

// CorrectAnswer is the authoritative answer for a question, fetched on demand.
type CorrectAnswer struct {
	CorrectCompanions []Companion `json:"correct_companions"`
	CorrectSources    []Source    `json:"correct_sources"`
	CorrectWords      []string    `json:"correct_words,omitempty"`
	FullText          string      `json:"full_text"`
}
