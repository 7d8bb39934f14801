package telegram

import (
	"context"

	"github.com/aliskhannn/hadith-bot/internal/storage"
	"github.com/aliskhannn/hadith-bot/internal/ui/addhadith"
	"github.com/aliskhannn/hadith-bot/internal/ui/quiz"
)

// handleText writes a plain text message into whatever input has the focus
// and re-sends the affected screen below it.
func (h *Handler) handleText(sess *storage.Session, text string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		f := sess.Focus()

		switch f.Screen {
		case storage.ScreenAdd:
			switch f.Input {
			case storage.InputHadithText:
				sess.Add.SetText(text)
			case storage.InputFilter:
				sess.Add.SetFilter(addhadith.Field(f.Field), text)
			case storage.InputNewName:
				sess.Add.SetNewName(addhadith.Field(f.Field), text)
			default:
				return h.send(newPlainMessage(chatID, msgUseButtons))
			}
			return h.sendScreen(sess, storage.ScreenAdd, renderAddForm(sess.Add.State()))

		case storage.ScreenQuiz:
			switch f.Input {
			case storage.InputBlank:
				if !sess.Quiz.FillFocused(text) {
					return h.send(newPlainMessage(chatID, msgUseButtons))
				}
				focusBlank(sess)
			case storage.InputFilter:
				sess.Quiz.SetFilter(quiz.Field(f.Field), text)
			default:
				return h.send(newPlainMessage(chatID, msgUseButtons))
			}
			return h.sendScreen(sess, storage.ScreenQuiz, renderQuiz(sess.Quiz.State()))
		}

		return h.send(newPlainMessage(chatID, msgUseButtons))
	}
}
