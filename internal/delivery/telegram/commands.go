package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/hadith-bot/internal/storage"
)

// Bot commands.
const (
	cmdStart  = "start"
	cmdList   = "list"
	cmdAdd    = "add"
	cmdQuiz   = "quiz"
	cmdHelp   = "help"
	cmdCancel = "cancel"
)

// Commands returns the command menu registered with setMyCommands.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: cmdList, Description: navList},
		{Command: cmdAdd, Description: navAdd},
		{Command: cmdQuiz, Description: navQuiz},
		{Command: cmdCancel, Description: "إلغاء الإدخال الحالي"},
		{Command: cmdHelp, Description: "المساعدة"},
	}
}

func (h *Handler) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	sess := h.sessions.Get(chatID)

	if m.IsCommand() {
		switch m.Command() {
		case cmdStart:
			_ = h.withErrorHandling(h.handleStart(sess))(ctx, chatID)
		case cmdList:
			_ = h.withErrorHandling(h.showList(sess))(ctx, chatID)
		case cmdAdd:
			_ = h.withErrorHandling(h.showAdd(sess))(ctx, chatID)
		case cmdQuiz:
			_ = h.withErrorHandling(h.showQuiz(sess))(ctx, chatID)
		case cmdHelp:
			_ = h.withErrorHandling(h.handleHelp())(ctx, chatID)
		case cmdCancel:
			_ = h.withErrorHandling(h.handleCancel(sess))(ctx, chatID)
		default:
			msg := newPlainMessage(chatID, msgUnknownCommand+"\n\n"+msgHelp)
			_ = h.send(msg)
		}
		return
	}

	switch m.Text {
	case navList:
		_ = h.withErrorHandling(h.showList(sess))(ctx, chatID)
	case navAdd:
		_ = h.withErrorHandling(h.showAdd(sess))(ctx, chatID)
	case navQuiz:
		_ = h.withErrorHandling(h.showQuiz(sess))(ctx, chatID)
	default:
		_ = h.withErrorHandling(h.handleText(sess, m.Text))(ctx, chatID)
	}
}

// handleStart greets the user, installs the navigation keyboard and opens the list.
func (h *Handler) handleStart(sess *storage.Session) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, welcomeMarkdownV2())
		msg.ReplyMarkup = buildNavKeyboard()
		if err := h.send(msg); err != nil {
			return err
		}
		return h.showList(sess)(ctx, chatID)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		msg := newPlainMessage(chatID, msgHelp)
		msg.ReplyMarkup = buildNavKeyboard()
		return h.send(msg)
	}
}

// handleCancel closes every dropdown and drops the text focus.
func (h *Handler) handleCancel(sess *storage.Session) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		dismissAll(sess)
		sess.ClearFocus()
		msg := newPlainMessage(chatID, msgCancelled)
		msg.ReplyMarkup = buildNavKeyboard()
		return h.send(msg)
	}
}

// showList fetches all hadiths and sends them, chunked when needed. The last
// chunk carries the refresh button.
func (h *Handler) showList(sess *storage.Session) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		dismissAll(sess)
		sess.Navigate(storage.ScreenList)
		sess.List.Load(ctx)

		chunks := renderList(sess.List.State())
		for i, chunk := range chunks {
			msg := newMessage(chatID, chunk)
			last := i == len(chunks)-1
			if last {
				msg.ReplyMarkup = buildListKeyboard()
			}
			id, err := h.sendMessage(msg)
			if err != nil {
				return err
			}
			if last {
				h.replaceScreenMessage(sess, storage.ScreenList, id)
			}
		}
		return nil
	}
}

// showAdd opens the add form with the hadith text focused and reloads the
// companion and source options.
func (h *Handler) showAdd(sess *storage.Session) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		dismissAll(sess)
		sess.Navigate(storage.ScreenAdd)
		sess.SetFocus(storage.Focus{Screen: storage.ScreenAdd, Input: storage.InputHadithText})
		sess.Add.Load(ctx)
		return h.sendScreen(sess, storage.ScreenAdd, renderAddForm(sess.Add.State()))
	}
}

// showQuiz opens the quiz with a fresh question.
func (h *Handler) showQuiz(sess *storage.Session) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		dismissAll(sess)
		sess.Navigate(storage.ScreenQuiz)
		sess.Quiz.NewQuestion(ctx)
		focusBlank(sess)
		return h.sendScreen(sess, storage.ScreenQuiz, renderQuiz(sess.Quiz.State()))
	}
}

// sendScreen sends s as a new message and remembers it as the message of screen.
func (h *Handler) sendScreen(sess *storage.Session, scr storage.Screen, s screen) error {
	msg := newMessage(sess.ChatID, s.text)
	if s.kb != nil {
		msg.ReplyMarkup = *s.kb
	}
	id, err := h.sendMessage(msg)
	if err != nil {
		return err
	}
	h.replaceScreenMessage(sess, scr, id)
	return nil
}

// replaceScreenMessage records id as the message showing scr and strips the
// keyboard of the message that showed it before, so only one copy of a
// screen stays interactive.
func (h *Handler) replaceScreenMessage(sess *storage.Session, scr storage.Screen, id int) {
	if id == 0 {
		return
	}
	prev := sess.MessageID(scr)
	sess.SetMessageID(scr, id)
	if prev == 0 || prev == id {
		return
	}

	strip := tgbotapi.NewEditMessageReplyMarkup(sess.ChatID, prev, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: make([][]tgbotapi.InlineKeyboardButton, 0),
	})
	if _, err := h.bot.Request(strip); err != nil && !isNotModified(err) {
		h.logger.Warn("failed to strip old screen keyboard",
			zap.Int64("chat_id", sess.ChatID), zap.Int("message_id", prev), zap.Error(err))
	}
}

// editScreen replaces the content of an existing message with s.
func (h *Handler) editScreen(chatID int64, msgID int, s screen) error {
	edit := newEdit(chatID, msgID, s.text)
	edit.ReplyMarkup = s.kb
	return h.send(edit)
}

// dismissAll acts as a click outside every open dropdown.
func dismissAll(sess *storage.Session) {
	sess.Add.DismissAll()
	sess.Quiz.DismissAll()
}

// focusBlank points the text focus at the focused quiz blank, if any.
func focusBlank(sess *storage.Session) {
	if sess.Quiz.Focused() >= 0 {
		sess.SetFocus(storage.Focus{Screen: storage.ScreenQuiz, Input: storage.InputBlank})
		return
	}
	if sess.Focus().Screen == storage.ScreenQuiz {
		sess.ClearFocus()
	}
}
