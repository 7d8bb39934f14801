package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/hadith-bot/internal/domain/entities"
	"github.com/aliskhannn/hadith-bot/internal/storage"
	"github.com/aliskhannn/hadith-bot/internal/ui/addhadith"
	"github.com/aliskhannn/hadith-bot/internal/ui/quiz"
)

var addTextFocus = storage.Focus{Screen: storage.ScreenAdd, Input: storage.InputHadithText}

// handleCallback applies an inline button press and edits the pressed message
// in place with the new state of its screen.
func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, "")
		return
	}

	chatID := cb.Message.Chat.ID
	sess := h.sessions.Get(chatID)
	data := decodeCallback(cb.Data)

	var (
		s     screen
		toast string
		ok    bool
	)

	switch data.Action {
	case actionNoop:
		h.answerCallback(cb, "")
		return
	case actionList:
		h.answerCallback(cb, "")
		if data.param(0) == listRefresh {
			_ = h.withErrorHandling(h.showList(sess))(ctx, chatID)
		}
		return
	case actionAdd:
		s, toast, ok = h.handleAddCallback(ctx, sess, data)
	case actionQuiz:
		s, toast, ok = h.handleQuizCallback(ctx, sess, data)
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	h.answerCallback(cb, toast)
	if !ok {
		return
	}

	_ = h.editScreen(chatID, cb.Message.MessageID, s)
}

func (h *Handler) handleAddCallback(ctx context.Context, sess *storage.Session, data callbackData) (screen, string, bool) {
	v := sess.Add
	var toast string

	switch data.param(0) {
	case addText:
		v.DismissAll()
		sess.SetFocus(addTextFocus)
		toast = msgPromptText
	case addSubmit:
		v.DismissAll()
		sess.SetFocus(addTextFocus)
		v.Submit(ctx)
	case addReload:
		v.Load(ctx)
	case subMultiSelect:
		ms, ok := decodeMultiSelect(data.Params[1:])
		if !ok {
			h.logger.Warn("invalid multi-select callback", zap.String("data", data.Raw))
			return screen{}, "", false
		}
		if toast, ok = h.applyAddMultiSelect(ctx, sess, ms); !ok {
			h.logger.Warn("invalid multi-select callback", zap.String("data", data.Raw))
			return screen{}, "", false
		}
	default:
		h.logger.Warn("unknown add callback", zap.String("data", data.Raw))
		return screen{}, "", false
	}

	return renderAddForm(v.State()), toast, true
}

func (h *Handler) applyAddMultiSelect(ctx context.Context, sess *storage.Session, ms msCallback) (string, bool) {
	v := sess.Add
	field := addhadith.Field(ms.Field)

	switch ms.Op {
	case msDropdown:
		v.ToggleDropdown(field)
		sess.SetFocus(addTextFocus)
	case msOption, msRemove:
		id, err := strconv.ParseInt(ms.Arg, 10, 64)
		if err != nil {
			return "", false
		}
		if ms.Op == msOption {
			v.Toggle(field, id)
		} else {
			v.Remove(field, id)
		}
	case msPage:
		page, err := strconv.Atoi(ms.Arg)
		if err != nil {
			return "", false
		}
		v.SetPage(field, page)
	case msFind:
		sess.SetFocus(storage.Focus{Screen: storage.ScreenAdd, Input: storage.InputFilter, Field: ms.Field})
		return msgPromptFilter, true
	case msClear:
		v.SetFilter(field, "")
		sess.SetFocus(addTextFocus)
	case msNew:
		if !v.BeginAddNew(field) {
			return "", false
		}
		sess.SetFocus(storage.Focus{Screen: storage.ScreenAdd, Input: storage.InputNewName, Field: ms.Field})
		return msgPromptNewName, true
	case msSave:
		if !v.AddNew(ctx, field) {
			return msgNameRequired, true
		}
		sess.SetFocus(addTextFocus)
	case msCancel:
		v.CancelAddNew(field)
		sess.SetFocus(addTextFocus)
	default:
		return "", false
	}

	return "", true
}

func (h *Handler) handleQuizCallback(ctx context.Context, sess *storage.Session, data callbackData) (screen, string, bool) {
	v := sess.Quiz
	var toast string

	switch data.param(0) {
	case quizBlank:
		i, ok := data.intParam(1)
		if !ok || !v.FocusBlank(i) {
			return screen{}, "", false
		}
		sess.SetFocus(storage.Focus{Screen: storage.ScreenQuiz, Input: storage.InputBlank})
		toast = fmt.Sprintf(msgPromptBlank, i+1)
	case quizCheck:
		v.DismissAll()
		if err := v.Check(ctx); err != nil {
			h.logger.Debug("check ignored", zap.Int64("chat_id", sess.ChatID), zap.Error(err))
		}
	case quizRetry:
		v.Retry()
		focusBlank(sess)
	case quizReveal:
		if err := v.Reveal(ctx); errors.Is(err, quiz.ErrNotAnswered) {
			toast = msgNotAnsweredYet
		}
		focusBlank(sess)
	case quizNew:
		v.NewQuestion(ctx)
		focusBlank(sess)
	case quizSettings:
		v.ToggleSettings()
	case quizType:
		v.ToggleType(entities.QuestionType(data.param(1)))
	case quizApply:
		v.ApplySettings(ctx)
		focusBlank(sess)
	case subMultiSelect:
		ms, ok := decodeMultiSelect(data.Params[1:])
		if !ok {
			h.logger.Warn("invalid multi-select callback", zap.String("data", data.Raw))
			return screen{}, "", false
		}
		if toast, ok = applyQuizMultiSelect(sess, ms); !ok {
			h.logger.Warn("invalid multi-select callback", zap.String("data", data.Raw))
			return screen{}, "", false
		}
	default:
		h.logger.Warn("unknown quiz callback", zap.String("data", data.Raw))
		return screen{}, "", false
	}

	return renderQuiz(v.State()), toast, true
}

func applyQuizMultiSelect(sess *storage.Session, ms msCallback) (string, bool) {
	v := sess.Quiz
	field := quiz.Field(ms.Field)

	switch ms.Op {
	case msDropdown:
		v.ToggleDropdown(field)
		focusBlank(sess)
	case msOption, msRemove:
		id, err := strconv.ParseInt(ms.Arg, 10, 64)
		if err != nil {
			return "", false
		}
		if ms.Op == msOption {
			v.Toggle(field, id)
		} else {
			v.Remove(field, id)
		}
	case msPage:
		page, err := strconv.Atoi(ms.Arg)
		if err != nil {
			return "", false
		}
		v.SetPage(field, page)
	case msFind:
		sess.SetFocus(storage.Focus{Screen: storage.ScreenQuiz, Input: storage.InputFilter, Field: ms.Field})
		return msgPromptFilter, true
	case msClear:
		v.SetFilter(field, "")
		focusBlank(sess)
	default:
		return "", false
	}

	return "", true
}
