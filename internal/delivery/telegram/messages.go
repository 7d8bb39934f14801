// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Navigation labels of the persistent reply keyboard.
const (
	navList = "الأحاديث"
	navAdd  = "إضافة حديث"
	navQuiz = "الأسئلة"
)

// Screen titles and labels.
const (
	titleApp        = "تطبيق حفظ الأحاديث"
	titleList       = "قائمة الأحاديث"
	titleAdd        = "إضافة حديث جديد"
	titleQuiz       = "اختبار حفظ الأحاديث"
	labelCompanions = "الصحابة:"
	labelSources    = "المخرجون:"
	labelText       = "نص الحديث:"
	placeholderText = "أدخل نص الحديث هنا..."
	labelFillBlanks = "أكمل الكلمات المفقودة:"
	labelTypes      = "نوع الأسئلة:"
	labelAnswer     = "الإجابة الصحيحة:"
	labelWords      = "الكلمات الصحيحة:"
	labelFullText   = "النص الكامل:"
	labelLoading    = "جاري التحميل..."
)

// Button labels.
const (
	btnRefresh      = "🔄 تحديث"
	btnEditText     = "✏️ نص الحديث"
	btnSubmit       = "إضافة الحديث"
	btnSubmitting   = "جاري الإضافة..."
	btnAddNew       = "+ إضافة جديد"
	btnConfirmNew   = "إضافة"
	btnCancelNew    = "إلغاء"
	btnNoResults    = "لا توجد نتائج للبحث"
	btnSettings     = "⚙️ إعدادات"
	btnNewQuestion  = "سؤال جديد"
	btnCheck        = "فحص الإجابة"
	btnChecking     = "جاري التحقق..."
	btnReveal       = "عرض الإجابة الصحيحة"
	btnRetry        = "حاول مرة أخرى"
	btnApply        = "تطبيق الإعدادات"
	btnTypeMultiple = "اختيار متعدد (اختيار الصحابي والمخرج)"
	btnTypeFill     = "إكمال الحديث (تكملة الكلمات الناقصة)"
)

// Replies.
const (
	msgWelcome        = "السلام عليكم ورحمة الله وبركاته"
	msgHelp           = "الأوامر المتاحة:\n\n/list - عرض الأحاديث\n/add - إضافة حديث\n/quiz - الأسئلة\n/cancel - إلغاء الإدخال الحالي\n/help - المساعدة"
	msgUnknownCommand = "أمر غير معروف."
	msgUseButtons     = "استخدم الأزرار أو الأوامر للتنقل. /help"
	msgCancelled      = "تم الإلغاء."
	msgInternalError  = "حدث خطأ ما. حاول مرة أخرى لاحقاً."
	msgPromptText     = "أرسل نص الحديث في رسالة"
	msgPromptFilter   = "أرسل نص البحث في رسالة"
	msgPromptNewName  = "أرسل الاسم الجديد في رسالة"
	msgPromptBlank    = "أرسل الكلمة رقم %d في رسالة"
	msgNotAnsweredYet = "أجب عن السؤال أولاً"
	msgNameRequired   = "أدخل الاسم أولاً"
)

const (
	maxMessageLen  = 4000
	listSeparator  = "\n\n"
	namesSeparator = "، "
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMarkdownV2 builds the welcome message safely for MarkdownV2.
func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(md(msgWelcome))
	sb.WriteString("\n\n")
	sb.WriteString(bold(titleApp))
	sb.WriteString("\n\n")
	sb.WriteString(md(msgHelp))

	return sb.String()
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, namesSeparator)
}
