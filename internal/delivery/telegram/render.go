package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/hadith-bot/internal/domain/entities"
	"github.com/aliskhannn/hadith-bot/internal/ui/addhadith"
	"github.com/aliskhannn/hadith-bot/internal/ui/hadithlist"
	"github.com/aliskhannn/hadith-bot/internal/ui/quiz"
)

// screen is a rendered message: MarkdownV2 text plus an optional keyboard.
type screen struct {
	text string
	kb   *tgbotapi.InlineKeyboardMarkup
}

func newScreen(text string, rows [][]tgbotapi.InlineKeyboardButton) screen {
	if len(rows) == 0 {
		return screen{text: text}
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return screen{text: text, kb: &kb}
}

// renderList renders the hadith list. Cards are packed into as many messages
// as the Telegram size limit requires.
func renderList(st hadithlist.State) []string {
	switch {
	case st.Status == hadithlist.StatusLoading:
		return []string{md(labelLoading)}
	case st.Status == hadithlist.StatusError:
		return []string{md(st.Error)}
	case st.Empty():
		return []string{bold(titleList) + "\n\n" + md(hadithlist.MsgEmpty)}
	}

	var (
		chunks []string
		sb     strings.Builder
	)
	sb.WriteString(bold(titleList))

	for i, h := range st.Hadiths {
		card := renderHadithCard(i+1, h)
		if sb.Len() > 0 && utf8.RuneCountInString(sb.String())+utf8.RuneCountInString(card)+2 > maxMessageLen {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
		if sb.Len() > 0 {
			sb.WriteString(listSeparator)
		}
		sb.WriteString(card)
	}

	if sb.Len() > 0 {
		chunks = append(chunks, sb.String())
	}
	return chunks
}

func renderHadithCard(n int, h entities.Hadith) string {
	return fmt.Sprintf(
		"*%s* %s\n%s %s\n%s %s",
		md(fmt.Sprintf("%d.", n)),
		md(h.Text),
		bold(labelCompanions),
		md(joinNames(h.CompanionNames())),
		bold(labelSources),
		md(joinNames(h.SourceNames())),
	)
}

// renderAddForm renders the add-hadith form with its keyboard.
func renderAddForm(st addhadith.State) screen {
	var sb strings.Builder

	sb.WriteString(bold(titleAdd))
	sb.WriteString("\n\n")

	if st.Notice != nil {
		icon := "✅ "
		if st.Notice.Kind == addhadith.NoticeError {
			icon = "❌ "
		}
		sb.WriteString(md(icon + st.Notice.Text))
		sb.WriteString("\n\n")
	}

	sb.WriteString(bold(labelText))
	sb.WriteString("\n")
	if strings.TrimSpace(st.Text) == "" {
		sb.WriteString(italic(placeholderText))
	} else {
		sb.WriteString(md(st.Text))
	}
	sb.WriteString("\n\n")

	sb.WriteString(bold(labelCompanions) + " " + md(joinNames(optionNames(st.Companions.Selected))))
	sb.WriteString("\n")
	sb.WriteString(bold(labelSources) + " " + md(joinNames(optionNames(st.Sources.Selected))))

	var rows [][]tgbotapi.InlineKeyboardButton
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnEditText, buildAddCallback(addText)),
	))
	rows = append(rows, buildMultiSelectRows(actionAdd, int(addhadith.FieldCompanions), st.Companions)...)
	rows = append(rows, buildMultiSelectRows(actionAdd, int(addhadith.FieldSources), st.Sources)...)

	submit := tgbotapi.NewInlineKeyboardButtonData(btnSubmit, buildAddCallback(addSubmit))
	if st.Submitting {
		submit = tgbotapi.NewInlineKeyboardButtonData(btnSubmitting, buildNoopCallback())
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(submit))

	return newScreen(sb.String(), rows)
}

// renderQuiz renders the quiz screen with its keyboard.
func renderQuiz(st quiz.State) screen {
	newQuestion := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnNewQuestion, buildQuizCallback(quizNew)),
	)

	switch {
	case st.Loading:
		return screen{text: md(quiz.MsgLoading)}
	case st.Error != "":
		return newScreen(md(st.Error), [][]tgbotapi.InlineKeyboardButton{newQuestion})
	case st.Question == nil:
		return newScreen(md(quiz.MsgNoQuestion), [][]tgbotapi.InlineKeyboardButton{newQuestion})
	}

	q := st.Question
	var sb strings.Builder

	sb.WriteString(bold(titleQuiz))
	sb.WriteString("\n\n")

	if st.Notice != "" {
		sb.WriteString(md("❌ " + st.Notice))
		sb.WriteString("\n\n")
	}

	if st.SettingsOpen {
		sb.WriteString(bold(labelTypes))
		sb.WriteString("\n\n")
	}

	if q.Type == entities.QuestionFillBlanks {
		sb.WriteString(bold(labelFillBlanks))
		sb.WriteString("\n")
		sb.WriteString(renderSegments(st.Segments, st.Inputs, st.Focused))
	} else {
		sb.WriteString(md(q.Text))
		sb.WriteString("\n\n")
		sb.WriteString(bold(st.Companions.Config.Label) + " " + md(joinNames(optionNames(st.Companions.Selected))))
		sb.WriteString("\n")
		sb.WriteString(bold(st.Sources.Config.Label) + " " + md(joinNames(optionNames(st.Sources.Selected))))
	}

	if st.IsCorrect != nil && !st.Checking {
		sb.WriteString("\n\n")
		if *st.IsCorrect {
			sb.WriteString(bold("✅ " + quiz.MsgCorrect))
		} else {
			sb.WriteString(bold("❌ " + quiz.MsgIncorrect))
		}
	}

	if st.ShowAnswer && st.Answer != nil {
		sb.WriteString("\n\n")
		sb.WriteString(renderCorrectAnswer(q.Type, st.Answer))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnSettings, buildQuizCallback(quizSettings)),
			tgbotapi.NewInlineKeyboardButtonData(btnNewQuestion, buildQuizCallback(quizNew)),
		),
	}
	if st.SettingsOpen {
		rows = append(rows, buildQuizSettingsRows(st.EnabledTypes)...)
	}

	if !st.ShowAnswer {
		if q.Type == entities.QuestionFillBlanks {
			rows = append(rows, buildBlankRows(st.Inputs, st.Focused)...)
		} else {
			rows = append(rows, buildMultiSelectRows(actionQuiz, int(quiz.FieldCompanions), st.Companions)...)
			rows = append(rows, buildMultiSelectRows(actionQuiz, int(quiz.FieldSources), st.Sources)...)
		}
	}

	rows = append(rows, buildQuizActionRow(st))
	return newScreen(sb.String(), rows)
}

// renderSegments interleaves template text with the typed words. Empty
// inputs show the blank marker; the focused one is underlined.
func renderSegments(segments []quiz.Segment, inputs []string, focused int) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(md(seg.Text))
		if !seg.HasInput {
			continue
		}

		word := entities.BlankMarker
		if seg.Input < len(inputs) && inputs[seg.Input] != "" {
			word = inputs[seg.Input]
		}
		word = fmt.Sprintf("[%d: %s]", seg.Input+1, word)

		if seg.Input == focused {
			sb.WriteString("__" + md(word) + "__")
		} else {
			sb.WriteString(bold(word))
		}
	}
	return sb.String()
}

func renderCorrectAnswer(t entities.QuestionType, a *entities.CorrectAnswer) string {
	var sb strings.Builder

	sb.WriteString(bold(labelAnswer))
	sb.WriteString("\n")

	if t == entities.QuestionFillBlanks {
		sb.WriteString(bold(labelWords) + " " + md(joinNames(a.CorrectWords)))
	} else {
		companions := make([]string, 0, len(a.CorrectCompanions))
		for _, c := range a.CorrectCompanions {
			companions = append(companions, c.Name)
		}
		sources := make([]string, 0, len(a.CorrectSources))
		for _, s := range a.CorrectSources {
			sources = append(sources, s.Name)
		}
		sb.WriteString(bold(labelCompanions) + " " + md(joinNames(companions)))
		sb.WriteString("\n")
		sb.WriteString(bold(labelSources) + " " + md(joinNames(sources)))
	}

	sb.WriteString("\n")
	sb.WriteString(bold(labelFullText))
	sb.WriteString("\n")
	sb.WriteString(md(a.FullText))

	return sb.String()
}

func optionNames(options []entities.Option) []string {
	names := make([]string, 0, len(options))
	for _, o := range options {
		names = append(names, o.Name)
	}
	return names
}
