// Package quiz is the view model of the quiz screen: one question at a time,
// answered, checked by the backend, optionally retried or revealed.
package quiz

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/hadith-bot/internal/domain/entities"
	"github.com/aliskhannn/hadith-bot/internal/ui/multiselect"
	"github.com/aliskhannn/hadith-bot/internal/ui/reqseq"
)

// User-facing messages.
const (
	MsgLoadFailed   = "فشل في تحميل السؤال"
	MsgCheckFailed  = "فشل في التحقق من الإجابة"
	MsgRevealFailed = "فشل في تحميل الإجابة الصحيحة"
	MsgLoading      = "جاري تحميل السؤال..."
	MsgNoQuestion   = "لا يوجد سؤال متاح"
	MsgCorrect      = "إجابة صحيحة! أحسنت"
	MsgIncorrect    = "إجابة خاطئة، حاول مرة أخرى"
)

var (
	ErrNoQuestion  = errors.New("no question loaded")
	ErrNotAnswered = errors.New("question has not been answered yet")
	ErrRevealed    = errors.New("answer already revealed")
	ErrBusy        = errors.New("request already in flight")
)

// API is the part of the backend client the quiz needs.
type API interface {
	RandomQuestion(ctx context.Context, types []entities.QuestionType) (*entities.QuizQuestion, error)
	CheckAnswer(ctx context.Context, in entities.CheckAnswerRequest) (*entities.CheckAnswerResponse, error)
	CorrectAnswer(ctx context.Context, hadithID int64, questionType entities.QuestionType, blankIndices []int) (*entities.CorrectAnswer, error)
}

// Field selects one of the two multiple choice controls.
type Field int

const (
	FieldCompanions Field = iota
	FieldSources
)

// Segment is a piece of the fill-in template. When HasInput is set, the
// input with index Input follows the text.
type Segment struct {
	Text     string
	HasInput bool
	Input    int
}

// State is a render snapshot of the quiz.
type State struct {
	Loading  bool
	Error    string // full-view error, replaces the question
	Notice   string // inline error, question kept
	Question *entities.QuizQuestion

	Companions multiselect.Snapshot
	Sources    multiselect.Snapshot
	Segments   []Segment
	Inputs     []string
	Focused    int // index of the blank receiving text, -1 when none

	HasAnswered   bool
	Checking      bool
	IsCorrect     *bool
	CanRetry      bool
	LoadingAnswer bool
	ShowAnswer    bool
	Answer        *entities.CorrectAnswer

	SettingsOpen bool
	EnabledTypes []entities.QuestionType
}

// InputsFrozen reports whether blank inputs no longer accept text.
func (s State) InputsFrozen() bool { return s.ShowAnswer }

// View holds the quiz state of one chat.
type View struct {
	mu     sync.Mutex
	api    API
	logger *zap.Logger

	questionSeq reqseq.Sequence
	actionSeq   reqseq.Sequence
	current     reqseq.Ticket // ticket of the question on screen

	loading  bool
	err      string
	notice   string
	question *entities.QuizQuestion

	selectedCompanions []int64
	selectedSources    []int64
	companions         *multiselect.Control
	sources            *multiselect.Control
	inputs             []string
	focused            int

	hasAnswered   bool
	checking      bool
	isCorrect     *bool
	canRetry      bool
	loadingAnswer bool
	showAnswer    bool
	answer        *entities.CorrectAnswer

	settings     *entities.QuizSettings
	settingsOpen bool
}

// New creates a quiz with every question type enabled. Call NewQuestion to
// fetch the first question.
func New(api API, logger *zap.Logger) *View {
	return &View{
		api:     api,
		logger:  logger,
		loading: true,
		focused: -1,
		companions: multiselect.New(multiselect.Config{
			Label:       "اختر الصحابي/الصحابة:",
			Placeholder: "ابحث عن صحابي...",
		}),
		sources: multiselect.New(multiselect.Config{
			Label:       "اختر المخرج/المخرجين:",
			Placeholder: "ابحث عن مخرج...",
		}),
		settings: entities.NewQuizSettings(),
	}
}

// NewQuestion discards all per-question state and fetches a random question
// restricted to the enabled types. It reports false when the response was
// superseded by a newer request.
func (v *View) NewQuestion(ctx context.Context) bool {
	v.mu.Lock()
	ticket := v.questionSeq.Next()
	types := v.settings.Types()
	v.loading = true
	v.err = ""
	v.notice = ""
	v.actionSeq.Next()
	v.mu.Unlock()

	q, err := v.api.RandomQuestion(ctx, types)

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.questionSeq.Current(ticket) {
		v.logger.Debug("dropping stale quiz question", zap.Uint64("ticket", uint64(ticket)))
		return false
	}
	v.loading = false

	if err != nil {
		v.logger.Error("failed to load quiz question", zap.Error(err))
		v.err = MsgLoadFailed
		return true
	}

	v.question = q
	v.current = ticket
	v.resetAnswer()
	return true
}

// resetAnswer clears everything the user did for the current question.
func (v *View) resetAnswer() {
	v.selectedCompanions = nil
	v.selectedSources = nil
	v.companions.SetFilter("")
	v.companions.Dismiss()
	v.sources.SetFilter("")
	v.sources.Dismiss()
	v.inputs = nil
	v.focused = -1
	if v.question != nil && v.question.BlankCount() > 0 {
		v.inputs = make([]string, v.question.BlankCount())
		v.focused = 0
	}
	v.hasAnswered = false
	v.checking = false
	v.isCorrect = nil
	v.canRetry = false
	v.loadingAnswer = false
	v.showAnswer = false
	v.answer = nil
	v.notice = ""
	v.actionSeq.Next()
}

// Segments splits the fill-in template on the blank marker and places an
// input after segment i for every i below the blank count. Without a
// template the plain text is the only segment.
func Segments(q *entities.QuizQuestion) []Segment {
	if q == nil {
		return nil
	}
	if q.BlankText == "" {
		return []Segment{{Text: q.Text}}
	}

	parts := strings.Split(q.BlankText, entities.BlankMarker)
	out := make([]Segment, 0, len(parts))
	for i, p := range parts {
		seg := Segment{Text: p}
		if i < q.BlankCount() {
			seg.HasInput = true
			seg.Input = i
		}
		out = append(out, seg)
	}
	return out
}

// SetFillInput stores the word typed into blank i. It is ignored once the
// answer is revealed.
func (v *View) SetFillInput(i int, value string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.setFillInput(i, value)
}

func (v *View) setFillInput(i int, value string) bool {
	if v.showAnswer || i < 0 || i >= len(v.inputs) {
		return false
	}
	v.inputs[i] = value
	return true
}

// FocusBlank directs the next typed text to blank i.
func (v *View) FocusBlank(i int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.showAnswer || i < 0 || i >= len(v.inputs) {
		return false
	}
	v.focused = i
	return true
}

// FillFocused writes value into the focused blank and moves focus to the
// next blank, or clears it after the last one.
func (v *View) FillFocused(value string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.setFillInput(v.focused, strings.TrimSpace(value)) {
		return false
	}
	v.focused++
	if v.focused >= len(v.inputs) {
		v.focused = -1
	}
	return true
}

// Focused returns the index of the blank receiving text, or -1.
func (v *View) Focused() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.focused
}

// Toggle flips option id in the selection of field. Selections are frozen
// once the answer is revealed.
func (v *View) Toggle(field Field, id int64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.showAnswer {
		return false
	}
	switch field {
	case FieldCompanions:
		v.selectedCompanions = multiselect.Toggle(v.selectedCompanions, id)
	case FieldSources:
		v.selectedSources = multiselect.Toggle(v.selectedSources, id)
	default:
		return false
	}
	return true
}

// Remove drops option id from the selection of field.
func (v *View) Remove(field Field, id int64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.showAnswer {
		return false
	}
	switch field {
	case FieldCompanions:
		v.selectedCompanions = multiselect.Remove(v.selectedCompanions, id)
	case FieldSources:
		v.selectedSources = multiselect.Remove(v.selectedSources, id)
	default:
		return false
	}
	return true
}

// ToggleDropdown opens or closes the dropdown of field and dismisses the other.
func (v *View) ToggleDropdown(field Field) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if c, other := v.control(field); c != nil {
		other.Dismiss()
		c.ToggleOpen()
	}
}

// SetFilter sets the search text of field.
func (v *View) SetFilter(field Field, term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if c, other := v.control(field); c != nil {
		other.Dismiss()
		c.SetFilter(term)
	}
}

// SetPage moves the dropdown of field to page.
func (v *View) SetPage(field Field, page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if c, _ := v.control(field); c != nil {
		c.SetPage(page)
	}
}

// DismissAll closes both dropdowns.
func (v *View) DismissAll() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.companions.Dismiss()
	v.sources.Dismiss()
}

func (v *View) control(field Field) (c, other *multiselect.Control) {
	switch field {
	case FieldCompanions:
		return v.companions, v.sources
	case FieldSources:
		return v.sources, v.companions
	}
	return nil, nil
}

// Check submits the current answer. The backend alone decides correctness.
// A failed request leaves the question unanswered so it can be resubmitted.
func (v *View) Check(ctx context.Context) error {
	v.mu.Lock()
	switch {
	case v.question == nil:
		v.mu.Unlock()
		return ErrNoQuestion
	case v.checking, v.loadingAnswer:
		v.mu.Unlock()
		return ErrBusy
	case v.showAnswer:
		v.mu.Unlock()
		return ErrRevealed
	}

	q := v.question
	req := entities.CheckAnswerRequest{
		HadithID:     q.ID,
		QuestionType: q.Type,
	}
	if q.Type == entities.QuestionFillBlanks {
		req.FilledWords = slices.Clone(v.inputs)
		req.BlankIndices = slices.Clone(q.BlankIndices)
	} else {
		req.CompanionIDs = slices.Clone(v.selectedCompanions)
		req.SourceIDs = slices.Clone(v.selectedSources)
	}

	qTicket := v.current
	ticket := v.actionSeq.Next()
	v.checking = true
	v.hasAnswered = true
	v.notice = ""
	v.companions.Dismiss()
	v.sources.Dismiss()
	v.mu.Unlock()

	resp, err := v.api.CheckAnswer(ctx, req)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.current != qTicket || !v.actionSeq.Current(ticket) {
		v.logger.Debug("dropping stale answer check", zap.Int64("hadith_id", q.ID))
		if v.current == qTicket {
			v.checking = false
		}
		return nil
	}
	v.checking = false

	if err != nil {
		v.logger.Error("failed to check answer", zap.Int64("hadith_id", q.ID), zap.Error(err))
		v.hasAnswered = false
		v.notice = MsgCheckFailed
		return nil
	}

	correct := resp.IsCorrect
	v.isCorrect = &correct
	v.canRetry = !correct
	return nil
}

// Retry clears the answer of the current question without fetching a new one.
func (v *View) Retry() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.question == nil || !v.canRetry || v.showAnswer {
		return false
	}
	v.resetAnswer()
	return true
}

// Reveal fetches the authoritative answer. It is only allowed after at least
// one submission, and freezes the inputs once shown.
func (v *View) Reveal(ctx context.Context) error {
	v.mu.Lock()
	switch {
	case v.question == nil:
		v.mu.Unlock()
		return ErrNoQuestion
	case !v.hasAnswered:
		v.mu.Unlock()
		return ErrNotAnswered
	case v.showAnswer:
		v.mu.Unlock()
		return ErrRevealed
	case v.loadingAnswer || v.checking:
		v.mu.Unlock()
		return ErrBusy
	}

	q := v.question
	qTicket := v.current
	ticket := v.actionSeq.Next()
	v.loadingAnswer = true
	v.notice = ""
	v.mu.Unlock()

	answer, err := v.api.CorrectAnswer(ctx, q.ID, q.Type, q.BlankIndices)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.current != qTicket || !v.actionSeq.Current(ticket) {
		v.logger.Debug("dropping stale correct answer", zap.Int64("hadith_id", q.ID))
		if v.current == qTicket {
			v.loadingAnswer = false
		}
		return nil
	}
	v.loadingAnswer = false

	if err != nil {
		v.logger.Error("failed to load correct answer", zap.Int64("hadith_id", q.ID), zap.Error(err))
		v.notice = MsgRevealFailed
		return nil
	}

	v.answer = answer
	v.showAnswer = true
	v.canRetry = false
	v.focused = -1
	return nil
}

// ToggleSettings opens or closes the settings panel.
func (v *View) ToggleSettings() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.settingsOpen = !v.settingsOpen
}

// ToggleType enables or disables a question type. Disabling the last
// enabled type is a no-op.
func (v *View) ToggleType(t entities.QuestionType) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.settings.Toggle(t)
}

// ApplySettings closes the panel and fetches a question with the new types.
func (v *View) ApplySettings(ctx context.Context) bool {
	v.mu.Lock()
	v.settingsOpen = false
	v.mu.Unlock()
	return v.NewQuestion(ctx)
}

// State returns a render snapshot of the quiz.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	st := State{
		Loading:       v.loading,
		Error:         v.err,
		Notice:        v.notice,
		Inputs:        slices.Clone(v.inputs),
		Focused:       v.focused,
		HasAnswered:   v.hasAnswered,
		Checking:      v.checking,
		CanRetry:      v.canRetry,
		LoadingAnswer: v.loadingAnswer,
		ShowAnswer:    v.showAnswer,
		Answer:        v.answer,
		SettingsOpen:  v.settingsOpen,
		EnabledTypes:  v.settings.Types(),
	}
	if v.isCorrect != nil {
		c := *v.isCorrect
		st.IsCorrect = &c
	}
	if v.question != nil {
		q := *v.question
		st.Question = &q
		st.Segments = Segments(&q)
		st.Companions = v.companions.Snapshot(entities.CompanionOptions(q.Companions), v.selectedCompanions)
		st.Sources = v.sources.Snapshot(entities.SourceOptions(q.Sources), v.selectedSources)
	}
	return st
}
