package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/hadith-bot/internal/domain/entities"
)

type fakeAPI struct {
	questions []*entities.QuizQuestion
	next      int
	questErr  error
	lastTypes []entities.QuestionType

	correct  bool
	checkErr error
	checks   []entities.CheckAnswerRequest

	answer    *entities.CorrectAnswer
	answerErr error
	reveals   int

	onRandom func(call int)
	onCheck  func()
	onAnswer func()
}

func (f *fakeAPI) RandomQuestion(_ context.Context, types []entities.QuestionType) (*entities.QuizQuestion, error) {
	call := f.next
	f.next++
	f.lastTypes = types
	if f.onRandom != nil {
		f.onRandom(call)
	}
	if f.questErr != nil {
		return nil, f.questErr
	}
	return f.questions[call%len(f.questions)], nil
}

func (f *fakeAPI) CheckAnswer(_ context.Context, in entities.CheckAnswerRequest) (*entities.CheckAnswerResponse, error) {
	f.checks = append(f.checks, in)
	if f.onCheck != nil {
		hook := f.onCheck
		f.onCheck = nil
		hook()
	}
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return &entities.CheckAnswerResponse{IsCorrect: f.correct}, nil
}

func (f *fakeAPI) CorrectAnswer(context.Context, int64, entities.QuestionType, []int) (*entities.CorrectAnswer, error) {
	f.reveals++
	if f.onAnswer != nil {
		hook := f.onAnswer
		f.onAnswer = nil
		hook()
	}
	return f.answer, f.answerErr
}

func mcQuestion(id int64) *entities.QuizQuestion {
	return &entities.QuizQuestion{
		ID:         id,
		Text:       "إنما الأعمال بالنيات",
		Type:       entities.QuestionMultipleChoice,
		Companions: []entities.Companion{{ID: 1, Name: "Umar"}, {ID: 2, Name: "Aisha"}},
		Sources:    []entities.Source{{ID: 10, Name: "Bukhari"}},
	}
}

func fillQuestion(id int64) *entities.QuizQuestion {
	return &entities.QuizQuestion{
		ID:           id,
		Text:         "قال عمر رسول الله صلى",
		Type:         entities.QuestionFillBlanks,
		BlankText:    "قال ____ رسول الله ____",
		BlankWords:   []string{"عمر", "صلى"},
		BlankIndices: []int{1, 4},
	}
}

func loaded(t *testing.T, api *fakeAPI) *View {
	t.Helper()
	v := New(api, zap.NewNop())
	require.True(t, v.NewQuestion(context.Background()))
	return v
}

func TestNewQuestionLoadFailure(t *testing.T) {
	v := loaded(t, &fakeAPI{questErr: errors.New("down")})

	s := v.State()
	assert.False(t, s.Loading)
	assert.Equal(t, MsgLoadFailed, s.Error)
	assert.Nil(t, s.Question)
}

func TestSegmentsInterleaveInputs(t *testing.T) {
	segs := Segments(fillQuestion(1))

	require.Len(t, segs, 3)
	assert.Equal(t, Segment{Text: "قال ", HasInput: true, Input: 0}, segs[0])
	assert.Equal(t, Segment{Text: " رسول الله ", HasInput: true, Input: 1}, segs[1])
	assert.Equal(t, Segment{Text: ""}, segs[2])
}

func TestSegmentsWithoutTemplate(t *testing.T) {
	q := fillQuestion(1)
	q.BlankText = ""
	q.BlankWords = nil

	segs := Segments(q)

	require.Len(t, segs, 1)
	assert.Equal(t, q.Text, segs[0].Text)
	assert.False(t, segs[0].HasInput)
}

func TestIncorrectAnswerOffersRetry(t *testing.T) {
	api := &fakeAPI{questions: []*entities.QuizQuestion{mcQuestion(7)}}
	v := loaded(t, api)

	v.Toggle(FieldCompanions, 2)
	v.Toggle(FieldSources, 10)
	require.NoError(t, v.Check(context.Background()))

	require.Len(t, api.checks, 1)
	assert.Equal(t, []int64{2}, api.checks[0].CompanionIDs)
	assert.Equal(t, []int64{10}, api.checks[0].SourceIDs)
	assert.Nil(t, api.checks[0].FilledWords)

	s := v.State()
	require.NotNil(t, s.IsCorrect)
	assert.False(t, *s.IsCorrect)
	assert.True(t, s.CanRetry)
	assert.True(t, s.HasAnswered)
	assert.False(t, s.ShowAnswer)
	assert.Nil(t, s.Answer)
}

func TestCorrectAnswerNoRetry(t *testing.T) {
	api := &fakeAPI{questions: []*entities.QuizQuestion{mcQuestion(7)}, correct: true}
	v := loaded(t, api)

	require.NoError(t, v.Check(context.Background()))

	s := v.State()
	assert.True(t, *s.IsCorrect)
	assert.False(t, s.CanRetry)
	assert.False(t, v.Retry())
}

func TestRetryKeepsQuestion(t *testing.T) {
	api := &fakeAPI{questions: []*entities.QuizQuestion{fillQuestion(3)}}
	v := loaded(t, api)

	v.SetFillInput(0, "علي")
	v.SetFillInput(1, "صلى")
	require.NoError(t, v.Check(context.Background()))
	assert.Equal(t, []string{"علي", "صلى"}, api.checks[0].FilledWords)
	assert.Equal(t, []int{1, 4}, api.checks[0].BlankIndices)

	require.True(t, v.Retry())

	s := v.State()
	assert.Equal(t, int64(3), s.Question.ID)
	assert.Equal(t, []string{"", ""}, s.Inputs)
	assert.False(t, s.HasAnswered)
	assert.Nil(t, s.IsCorrect)
	assert.Equal(t, 1, api.next)
}

func TestRevealRequiresAnswer(t *testing.T) {
	api := &fakeAPI{
		questions: []*entities.QuizQuestion{fillQuestion(3)},
		answer:    &entities.CorrectAnswer{CorrectWords: []string{"عمر", "صلى"}, FullText: "قال عمر رسول الله صلى"},
	}
	v := loaded(t, api)

	assert.ErrorIs(t, v.Reveal(context.Background()), ErrNotAnswered)
	assert.Zero(t, api.reveals)

	require.NoError(t, v.Check(context.Background()))
	require.NoError(t, v.Reveal(context.Background()))

	s := v.State()
	assert.True(t, s.ShowAnswer)
	assert.True(t, s.InputsFrozen())
	assert.False(t, s.CanRetry)
	assert.Equal(t, "قال عمر رسول الله صلى", s.Answer.FullText)

	assert.False(t, v.SetFillInput(0, "x"))
	assert.Equal(t, "", v.State().Inputs[0])
	assert.ErrorIs(t, v.Check(context.Background()), ErrRevealed)
}

func TestRevealFailureKeepsState(t *testing.T) {
	api := &fakeAPI{questions: []*entities.QuizQuestion{mcQuestion(1)}, answerErr: errors.New("500")}
	v := loaded(t, api)
	require.NoError(t, v.Check(context.Background()))

	require.NoError(t, v.Reveal(context.Background()))

	s := v.State()
	assert.Equal(t, MsgRevealFailed, s.Notice)
	assert.False(t, s.ShowAnswer)
	assert.True(t, s.CanRetry)
}

func TestCheckFailureAllowsResubmit(t *testing.T) {
	api := &fakeAPI{questions: []*entities.QuizQuestion{mcQuestion(1)}, checkErr: errors.New("timeout")}
	v := loaded(t, api)
	v.Toggle(FieldCompanions, 1)

	require.NoError(t, v.Check(context.Background()))

	s := v.State()
	assert.Equal(t, MsgCheckFailed, s.Notice)
	assert.Empty(t, s.Error)
	assert.False(t, s.HasAnswered)
	assert.Equal(t, []int64{1}, s.Companions.SelectedIDs)
}

func TestNewQuestionResetsEverything(t *testing.T) {
	api := &fakeAPI{
		questions: []*entities.QuizQuestion{fillQuestion(1), fillQuestion(2)},
		answer:    &entities.CorrectAnswer{FullText: "x"},
	}
	v := loaded(t, api)
	v.SetFillInput(0, "a")
	require.NoError(t, v.Check(context.Background()))
	require.NoError(t, v.Reveal(context.Background()))

	require.True(t, v.NewQuestion(context.Background()))

	s := v.State()
	assert.Equal(t, int64(2), s.Question.ID)
	assert.False(t, s.HasAnswered)
	assert.False(t, s.ShowAnswer)
	assert.Nil(t, s.Answer)
	assert.Equal(t, []string{"", ""}, s.Inputs)
	assert.Equal(t, 0, s.Focused)
}

func TestFillFocusedAdvances(t *testing.T) {
	v := loaded(t, &fakeAPI{questions: []*entities.QuizQuestion{fillQuestion(1)}})

	require.True(t, v.FillFocused(" عمر "))
	assert.Equal(t, 1, v.Focused())
	require.True(t, v.FillFocused("صلى"))
	assert.Equal(t, -1, v.Focused())
	assert.False(t, v.FillFocused("extra"))

	require.True(t, v.FocusBlank(0))
	assert.Equal(t, []string{"عمر", "صلى"}, v.State().Inputs)
}

func TestSettingsLastTypeCannotBeDisabled(t *testing.T) {
	api := &fakeAPI{questions: []*entities.QuizQuestion{mcQuestion(1)}}
	v := loaded(t, api)

	require.True(t, v.ToggleType(entities.QuestionFillBlanks))
	assert.False(t, v.ToggleType(entities.QuestionMultipleChoice))
	assert.Equal(t, []entities.QuestionType{entities.QuestionMultipleChoice}, v.State().EnabledTypes)

	v.ToggleSettings()
	require.True(t, v.State().SettingsOpen)
	require.True(t, v.ApplySettings(context.Background()))

	assert.False(t, v.State().SettingsOpen)
	assert.Equal(t, []entities.QuestionType{entities.QuestionMultipleChoice}, api.lastTypes)
}

func TestStaleQuestionDropped(t *testing.T) {
	api := &fakeAPI{questions: []*entities.QuizQuestion{mcQuestion(1), mcQuestion(2)}}
	v := New(api, zap.NewNop())

	var inner bool
	api.onRandom = func(call int) {
		if call == 0 {
			inner = v.NewQuestion(context.Background())
		}
	}

	assert.False(t, v.NewQuestion(context.Background()))
	assert.True(t, inner)
	assert.Equal(t, int64(2), v.State().Question.ID)
}

func TestCheckRefusedWhileRevealInFlight(t *testing.T) {
	api := &fakeAPI{
		questions: []*entities.QuizQuestion{mcQuestion(1)},
		answer:    &entities.CorrectAnswer{FullText: "إنما الأعمال بالنيات"},
	}
	v := loaded(t, api)
	require.NoError(t, v.Check(context.Background()))

	var innerErr error
	api.onAnswer = func() {
		innerErr = v.Check(context.Background())
	}
	require.NoError(t, v.Reveal(context.Background()))

	assert.ErrorIs(t, innerErr, ErrBusy)
	assert.Len(t, api.checks, 1)

	s := v.State()
	assert.False(t, s.LoadingAnswer)
	assert.True(t, s.ShowAnswer)
	assert.Equal(t, "إنما الأعمال بالنيات", s.Answer.FullText)
}

func TestCheckResponseAfterNewQuestionDropped(t *testing.T) {
	api := &fakeAPI{questions: []*entities.QuizQuestion{mcQuestion(1), mcQuestion(2)}}
	v := loaded(t, api)

	api.onCheck = func() {
		require.True(t, v.NewQuestion(context.Background()))
	}
	require.NoError(t, v.Check(context.Background()))

	s := v.State()
	assert.Equal(t, int64(2), s.Question.ID)
	assert.Nil(t, s.IsCorrect)
	assert.False(t, s.HasAnswered)
	assert.False(t, s.Checking)
	assert.False(t, s.CanRetry)
}

func TestRevealResponseAfterNewQuestionDropped(t *testing.T) {
	api := &fakeAPI{
		questions: []*entities.QuizQuestion{mcQuestion(1), mcQuestion(2)},
		answer:    &entities.CorrectAnswer{FullText: "x"},
	}
	v := loaded(t, api)
	require.NoError(t, v.Check(context.Background()))

	api.onAnswer = func() {
		require.True(t, v.NewQuestion(context.Background()))
	}
	require.NoError(t, v.Reveal(context.Background()))

	s := v.State()
	assert.Equal(t, int64(2), s.Question.ID)
	assert.Nil(t, s.Answer)
	assert.False(t, s.ShowAnswer)
	assert.False(t, s.LoadingAnswer)
}

func TestRevealResponseAfterRetryDropped(t *testing.T) {
	api := &fakeAPI{
		questions: []*entities.QuizQuestion{mcQuestion(1)},
		answer:    &entities.CorrectAnswer{FullText: "x"},
	}
	v := loaded(t, api)
	require.NoError(t, v.Check(context.Background()))

	api.onAnswer = func() {
		require.True(t, v.Retry())
	}
	require.NoError(t, v.Reveal(context.Background()))

	s := v.State()
	assert.Equal(t, int64(1), s.Question.ID)
	assert.Nil(t, s.Answer)
	assert.False(t, s.ShowAnswer)
	assert.False(t, s.LoadingAnswer)
	assert.False(t, s.HasAnswered)

	require.NoError(t, v.Check(context.Background()))
	require.NoError(t, v.Reveal(context.Background()))
	assert.True(t, v.State().ShowAnswer)
}

func TestSelectionFrozenAfterReveal(t *testing.T) {
	api := &fakeAPI{
		questions: []*entities.QuizQuestion{mcQuestion(1)},
		answer:    &entities.CorrectAnswer{},
	}
	v := loaded(t, api)
	require.True(t, v.Toggle(FieldCompanions, 1))
	require.NoError(t, v.Check(context.Background()))
	require.NoError(t, v.Reveal(context.Background()))

	assert.False(t, v.Toggle(FieldCompanions, 2))
	assert.False(t, v.Remove(FieldCompanions, 1))
	assert.False(t, v.Toggle(FieldSources, 10))

	s := v.State()
	assert.Equal(t, []int64{1}, s.Companions.SelectedIDs)
	assert.Empty(t, s.Sources.SelectedIDs)
}
