package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/hadith-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionList = "list"
	actionAdd  = "add"
	actionQuiz = "quiz"
	actionNoop = "noop"
)

// List sub-actions.
const (
	listRefresh = "rl"
)

// Add-form sub-actions.
const (
	addText   = "txt"
	addSubmit = "sub"
	addReload = "rl"
)

// Quiz sub-actions.
const (
	quizBlank    = "blank"
	quizCheck    = "check"
	quizRetry    = "retry"
	quizReveal   = "reveal"
	quizNew      = "new"
	quizSettings = "set"
	quizType     = "type"
	quizApply    = "apply"
)

// Multi-select sub-action and its operations. A multi-select callback looks
// like "<screen>:ms:<field>:<op>[:<arg>]".
const (
	subMultiSelect = "ms"

	fieldCompanions = "c"
	fieldSources    = "s"

	msDropdown = "open"
	msOption   = "opt"
	msRemove   = "rm"
	msPage     = "page"
	msFind     = "find"
	msClear    = "clr"
	msNew      = "new"
	msSave     = "save"
	msCancel   = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as an int.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	return n, err == nil
}

// msCallback is a decoded multi-select operation.
type msCallback struct {
	Field int
	Op    string
	Arg   string
}

// decodeMultiSelect extracts a multi-select operation from params that start
// right after the "ms" marker.
func decodeMultiSelect(params []string) (msCallback, bool) {
	if len(params) < 2 {
		return msCallback{}, false
	}

	field, ok := fieldIndex(params[0])
	if !ok {
		return msCallback{}, false
	}

	cb := msCallback{Field: field, Op: params[1]}
	if len(params) > 2 {
		cb.Arg = params[2]
	}
	return cb, true
}

func fieldCode(field int) string {
	if field == 1 {
		return fieldSources
	}
	return fieldCompanions
}

func fieldIndex(code string) (int, bool) {
	switch code {
	case fieldCompanions:
		return 0, true
	case fieldSources:
		return 1, true
	}
	return 0, false
}

func buildNoopCallback() string {
	return actionNoop
}

func buildListRefreshCallback() string {
	return callbackData{Action: actionList, Params: []string{listRefresh}}.encode()
}

func buildAddCallback(sub string) string {
	return callbackData{Action: actionAdd, Params: []string{sub}}.encode()
}

// buildMultiSelectCallback builds callback data for a multi-select operation
// on the screen identified by action.
func buildMultiSelectCallback(action string, field int, op string, arg ...string) string {
	params := []string{subMultiSelect, fieldCode(field), op}
	params = append(params, arg...)
	return callbackData{Action: action, Params: params}.encode()
}

func buildMultiSelectOptionCallback(action string, field int, op string, id int64) string {
	return buildMultiSelectCallback(action, field, op, strconv.FormatInt(id, 10))
}

func buildMultiSelectPageCallback(action string, field, page int) string {
	return buildMultiSelectCallback(action, field, msPage, strconv.Itoa(page))
}

// buildQuizCallback builds callback data for quiz actions.
func buildQuizCallback(sub string, value ...string) string {
	params := []string{sub}
	params = append(params, value...)
	return callbackData{Action: actionQuiz, Params: params}.encode()
}

func buildQuizBlankCallback(i int) string {
	return buildQuizCallback(quizBlank, strconv.Itoa(i))
}

func buildQuizTypeCallback(t entities.QuestionType) string {
	return buildQuizCallback(quizType, string(t))
}
