package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/hadith-bot/internal/domain/entities"
	"github.com/aliskhannn/hadith-bot/internal/ui/multiselect"
	"github.com/aliskhannn/hadith-bot/internal/ui/quiz"
)

const tagsPerRow = 2

// buildNavKeyboard builds the persistent reply keyboard with the three screens.
func buildNavKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(navList),
			tgbotapi.NewKeyboardButton(navAdd),
			tgbotapi.NewKeyboardButton(navQuiz),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// buildListKeyboard builds keyboard under the last list message.
func buildListKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnRefresh, buildListRefreshCallback()),
		),
	)
}

// buildMultiSelectRows renders a multi-select control as keyboard rows: the
// dropdown toggle, the selected tags and, while open, the search entry, the
// current page of options and the inline add-new entry.
func buildMultiSelectRows(action string, field int, s multiselect.Snapshot) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton

	arrow := "▾ "
	if s.Open {
		arrow = "▴ "
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(arrow+s.Config.Label, buildMultiSelectCallback(action, field, msDropdown)),
	))

	var tags []tgbotapi.InlineKeyboardButton
	for _, o := range s.Selected {
		tags = append(tags, tgbotapi.NewInlineKeyboardButtonData(
			"✖ "+o.Name, buildMultiSelectOptionCallback(action, field, msRemove, o.ID),
		))
		if len(tags) == tagsPerRow {
			rows = append(rows, tags)
			tags = nil
		}
	}
	if len(tags) > 0 {
		rows = append(rows, tags)
	}

	if !s.Open {
		return rows
	}

	search := s.Config.Placeholder
	if s.Filter != "" {
		search = s.Filter
	}
	searchRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔍 "+search, buildMultiSelectCallback(action, field, msFind)),
	)
	if s.Filter != "" {
		searchRow = append(searchRow, tgbotapi.NewInlineKeyboardButtonData("✖", buildMultiSelectCallback(action, field, msClear)))
	}
	rows = append(rows, searchRow)

	for _, o := range s.Items {
		mark := "⬜ "
		if s.IsSelected(o.ID) {
			mark = "☑️ "
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(mark+o.Name, buildMultiSelectOptionCallback(action, field, msOption, o.ID)),
		))
	}

	if len(s.Items) == 0 && s.Filter != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnNoResults, buildNoopCallback()),
		))
	}

	if row := buildPageRow(action, field, s.Page, s.TotalPages); row != nil {
		rows = append(rows, row)
	}

	if !s.Config.AllowAddNew {
		return rows
	}

	if !s.AddingNew {
		return append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnAddNew, buildMultiSelectCallback(action, field, msNew)),
		))
	}

	name := s.Config.AddNewPlaceholder
	if s.NewName != "" {
		name = s.NewName
	}
	return append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ "+name, buildMultiSelectCallback(action, field, msNew)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnConfirmNew, buildMultiSelectCallback(action, field, msSave)),
			tgbotapi.NewInlineKeyboardButtonData(btnCancelNew, buildMultiSelectCallback(action, field, msCancel)),
		),
	)
}

// buildPageRow builds dropdown pagination, or nil for a single page.
func buildPageRow(action string, field, page, totalPages int) []tgbotapi.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️", buildMultiSelectPageCallback(action, field, page-1)))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("%d/%d", page+1, totalPages), buildNoopCallback(),
	))
	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("▶️", buildMultiSelectPageCallback(action, field, page+1)))
	}
	return row
}

// buildQuizSettingsRows builds the question type checkboxes and apply button.
func buildQuizSettingsRows(enabled []entities.QuestionType) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range entities.AllQuestionTypes {
		mark := "⬜ "
		for _, e := range enabled {
			if e == t {
				mark = "☑️ "
				break
			}
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(mark+questionTypeLabel(t), buildQuizTypeCallback(t)),
		))
	}
	return append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnApply, buildQuizCallback(quizApply)),
	))
}

// buildBlankRows builds one button per fill-in blank; pressing it moves the
// text focus to that blank.
func buildBlankRows(inputs []string, focused int) [][]tgbotapi.InlineKeyboardButton {
	const perRow = 3

	var (
		rows [][]tgbotapi.InlineKeyboardButton
		row  []tgbotapi.InlineKeyboardButton
	)
	for i, in := range inputs {
		label := fmt.Sprintf("%d: %s", i+1, in)
		if in == "" {
			label = fmt.Sprintf("%d: ____", i+1)
		}
		if i == focused {
			label = "👉 " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildQuizBlankCallback(i)))
		if len(row) == perRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// buildQuizActionRow builds the check, reveal, retry and new question buttons
// according to where the question is in its lifecycle.
func buildQuizActionRow(st quiz.State) []tgbotapi.InlineKeyboardButton {
	if st.Checking {
		return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btnChecking, buildNoopCallback()))
	}
	if !st.HasAnswered {
		return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btnCheck, buildQuizCallback(quizCheck)))
	}

	var row []tgbotapi.InlineKeyboardButton
	if !st.ShowAnswer {
		if st.LoadingAnswer {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(labelLoading, buildNoopCallback()))
		} else {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(btnReveal, buildQuizCallback(quizReveal)))
		}
		if st.CanRetry {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(btnRetry, buildQuizCallback(quizRetry)))
		}
	}
	return append(row, tgbotapi.NewInlineKeyboardButtonData(btnNewQuestion, buildQuizCallback(quizNew)))
}

func questionTypeLabel(t entities.QuestionType) string {
	if t == entities.QuestionFillBlanks {
		return btnTypeFill
	}
	return btnTypeMultiple
}
