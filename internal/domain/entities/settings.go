package entities

import "slices"

// QuizSettings stores the quiz preferences of a single chat.
type QuizSettings struct {
	EnabledTypes []QuestionType // question types the backend may serve, never empty
}

// NewQuizSettings creates settings with every question type enabled.
func NewQuizSettings() *QuizSettings {
	return &QuizSettings{
		EnabledTypes: slices.Clone(AllQuestionTypes),
	}
}

// IsEnabled reports whether t is currently enabled.
func (s *QuizSettings) IsEnabled(t QuestionType) bool {
	return slices.Contains(s.EnabledTypes, t)
}

// Toggle enables or disables t. Disabling the last enabled type is a no-op,
// and the returned value reports whether anything changed.
func (s *QuizSettings) Toggle(t QuestionType) bool {
	if !t.Valid() {
		return false
	}

	if !s.IsEnabled(t) {
		s.EnabledTypes = append(s.EnabledTypes, t)
		return true
	}

	next := slices.DeleteFunc(slices.Clone(s.EnabledTypes), func(x QuestionType) bool { return x == t })
	if len(next) == 0 {
		return false
	}

	s.EnabledTypes = next
	return true
}

// Types returns a copy of the enabled types.
func (s *QuizSettings) Types() []QuestionType {
	return slices.Clone(s.EnabledTypes)
}
