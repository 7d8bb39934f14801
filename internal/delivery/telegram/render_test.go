package telegram

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/hadith-bot/internal/domain/entities"
	"github.com/aliskhannn/hadith-bot/internal/ui/addhadith"
	"github.com/aliskhannn/hadith-bot/internal/ui/hadithlist"
	"github.com/aliskhannn/hadith-bot/internal/ui/multiselect"
	"github.com/aliskhannn/hadith-bot/internal/ui/quiz"
)

func callbacks(kb *tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	if kb == nil {
		return out
	}
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil {
				out = append(out, *b.CallbackData)
			}
		}
	}
	return out
}

func TestRenderListStates(t *testing.T) {
	assert.Equal(t, []string{md(labelLoading)}, renderList(hadithlist.State{Status: hadithlist.StatusLoading}))
	assert.Equal(t, []string{md(hadithlist.MsgLoadFailed)}, renderList(hadithlist.State{Status: hadithlist.StatusError, Error: hadithlist.MsgLoadFailed}))

	empty := renderList(hadithlist.State{Status: hadithlist.StatusReady})
	require.Len(t, empty, 1)
	assert.Contains(t, empty[0], md(hadithlist.MsgEmpty))
}

func TestRenderListCard(t *testing.T) {
	chunks := renderList(hadithlist.State{
		Status: hadithlist.StatusReady,
		Hadiths: []entities.Hadith{{
			ID:         1,
			Text:       "إنما الأعمال بالنيات.",
			Companions: []entities.Companion{{ID: 1, Name: "عمر"}},
			Sources:    []entities.Source{{ID: 1, Name: "البخاري"}, {ID: 2, Name: "مسلم"}},
		}},
	})

	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], `إنما الأعمال بالنيات\.`)
	assert.Contains(t, chunks[0], "البخاري، مسلم")
}

func TestRenderListChunksLongLists(t *testing.T) {
	hadiths := make([]entities.Hadith, 40)
	for i := range hadiths {
		hadiths[i] = entities.Hadith{ID: int64(i), Text: strings.Repeat("ح", 300)}
	}

	chunks := renderList(hadithlist.State{Status: hadithlist.StatusReady, Hadiths: hadiths})

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), maxMessageLen)
	}
}

func TestMultiSelectRowsClosed(t *testing.T) {
	s := multiselect.Snapshot{
		Config:   multiselect.Config{Label: labelCompanions},
		Selected: []entities.Option{{ID: 3, Name: "Anas"}},
	}

	data := callbacks(&tgbotapi.InlineKeyboardMarkup{InlineKeyboard: buildMultiSelectRows(actionAdd, 0, s)})

	assert.Equal(t, []string{
		buildMultiSelectCallback(actionAdd, 0, msDropdown),
		buildMultiSelectOptionCallback(actionAdd, 0, msRemove, 3),
	}, data)
}

func TestMultiSelectRowsOpen(t *testing.T) {
	s := multiselect.Snapshot{
		Config:      multiselect.Config{Label: labelSources, Placeholder: "ابحث", AllowAddNew: true},
		Open:        true,
		Filter:      "zz",
		Items:       nil,
		TotalPages:  1,
		SelectedIDs: nil,
	}

	rows := buildMultiSelectRows(actionAdd, 1, s)
	data := callbacks(&tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows})

	assert.Contains(t, data, buildMultiSelectCallback(actionAdd, 1, msFind))
	assert.Contains(t, data, buildMultiSelectCallback(actionAdd, 1, msClear))
	assert.Contains(t, data, buildMultiSelectCallback(actionAdd, 1, msNew))
	assert.Equal(t, btnNoResults, rows[2][0].Text)
}

func TestPageRow(t *testing.T) {
	assert.Nil(t, buildPageRow(actionQuiz, 0, 0, 1))

	row := buildPageRow(actionQuiz, 0, 1, 3)
	require.Len(t, row, 3)
	assert.Equal(t, "2/3", row[1].Text)
}

func TestRenderAddFormSubmitting(t *testing.T) {
	s := renderAddForm(addhadith.State{Submitting: true, Notice: &addhadith.Notice{Kind: addhadith.NoticeError, Text: addhadith.MsgTextRequired}})

	assert.Contains(t, s.text, md(addhadith.MsgTextRequired))
	assert.Contains(t, s.text, italic(placeholderText))
	require.NotNil(t, s.kb)
	last := s.kb.InlineKeyboard[len(s.kb.InlineKeyboard)-1]
	assert.Equal(t, btnSubmitting, last[0].Text)
}

func TestRenderQuizFillBlanks(t *testing.T) {
	q := &entities.QuizQuestion{
		ID:         1,
		Type:       entities.QuestionFillBlanks,
		BlankText:  "قال ____ رسول الله ____",
		BlankWords: []string{"a", "b"},
	}
	st := quiz.State{
		Question: q,
		Segments: quiz.Segments(q),
		Inputs:   []string{"عمر", ""},
		Focused:  1,
	}

	s := renderQuiz(st)

	assert.Contains(t, s.text, bold("[1: عمر]"))
	assert.Contains(t, s.text, "__"+md("[2: ____]")+"__")
	data := callbacks(s.kb)
	assert.Contains(t, data, buildQuizBlankCallback(0))
	assert.Contains(t, data, buildQuizBlankCallback(1))
	assert.Contains(t, data, buildQuizCallback(quizCheck))
}

func TestRenderQuizIncorrect(t *testing.T) {
	no := false
	st := quiz.State{
		Question:    &entities.QuizQuestion{ID: 1, Type: entities.QuestionMultipleChoice, Text: "نص"},
		HasAnswered: true,
		IsCorrect:   &no,
		CanRetry:    true,
	}

	s := renderQuiz(st)

	assert.Contains(t, s.text, md(quiz.MsgIncorrect))
	data := callbacks(s.kb)
	assert.Contains(t, data, buildQuizCallback(quizRetry))
	assert.Contains(t, data, buildQuizCallback(quizReveal))
	assert.NotContains(t, data, buildQuizCallback(quizCheck))
}

func TestRenderQuizRevealed(t *testing.T) {
	yes := true
	st := quiz.State{
		Question:    &entities.QuizQuestion{ID: 1, Type: entities.QuestionFillBlanks},
		HasAnswered: true,
		IsCorrect:   &yes,
		ShowAnswer:  true,
		Inputs:      []string{"x"},
		Answer:      &entities.CorrectAnswer{CorrectWords: []string{"عمر"}, FullText: "قال عمر"},
	}

	s := renderQuiz(st)

	assert.Contains(t, s.text, bold(labelWords))
	assert.Contains(t, s.text, md("قال عمر"))
	data := callbacks(s.kb)
	assert.NotContains(t, data, buildQuizBlankCallback(0))
	assert.NotContains(t, data, buildQuizCallback(quizRetry))
	assert.NotContains(t, data, buildQuizCallback(quizReveal))
}

func TestRenderQuizSettings(t *testing.T) {
	st := quiz.State{
		Question:     &entities.QuizQuestion{ID: 1, Type: entities.QuestionMultipleChoice},
		SettingsOpen: true,
		EnabledTypes: []entities.QuestionType{entities.QuestionMultipleChoice},
	}

	s := renderQuiz(st)

	data := callbacks(s.kb)
	assert.Contains(t, data, buildQuizTypeCallback(entities.QuestionFillBlanks))
	assert.Contains(t, data, buildQuizCallback(quizApply))
	assert.Equal(t, "☑️ "+btnTypeMultiple, s.kb.InlineKeyboard[1][0].Text)
	assert.Equal(t, "⬜ "+btnTypeFill, s.kb.InlineKeyboard[2][0].Text)
}

func TestRenderQuizStates(t *testing.T) {
	assert.Equal(t, md(quiz.MsgLoading), renderQuiz(quiz.State{Loading: true}).text)
	assert.Equal(t, md(quiz.MsgLoadFailed), renderQuiz(quiz.State{Error: quiz.MsgLoadFailed}).text)
	assert.Equal(t, md(quiz.MsgNoQuestion), renderQuiz(quiz.State{}).text)
}
