// Package addhadith is the view model of the "add hadith" form.
package addhadith

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/hadith-bot/internal/domain/entities"
	"github.com/aliskhannn/hadith-bot/internal/ui/multiselect"
	"github.com/aliskhannn/hadith-bot/internal/ui/reqseq"
)

// User-facing messages.
const (
	MsgLoadFailed            = "فشل في تحميل البيانات"
	MsgTextRequired          = "يرجى إدخال نص الحديث"
	MsgCompanionRequired     = "يرجى اختيار صحابي واحد على الأقل"
	MsgSourceRequired        = "يرجى اختيار مخرج واحد على الأقل"
	MsgCreated               = "تم إضافة الحديث بنجاح"
	MsgCreateFailed          = "فشل في إضافة الحديث"
	MsgCreateCompanionFailed = "فشل في إضافة الصحابي"
	MsgCreateSourceFailed    = "فشل في إضافة المخرج"
)

// API is the part of the backend client the form needs.
type API interface {
	ListCompanions(ctx context.Context) ([]entities.Companion, error)
	ListSources(ctx context.Context) ([]entities.Source, error)
	CreateCompanion(ctx context.Context, name string) (*entities.Companion, error)
	CreateSource(ctx context.Context, name string) (*entities.Source, error)
	CreateHadith(ctx context.Context, in entities.CreateHadithRequest) (*entities.Hadith, error)
}

// Field selects one of the two multi-select controls of the form.
type Field int

const (
	FieldCompanions Field = iota
	FieldSources
)

// NoticeKind tells success notices from error notices.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is the message shown above the form.
type Notice struct {
	Kind NoticeKind
	Text string
}

// State is a render snapshot of the form.
type State struct {
	Text       string
	Companions multiselect.Snapshot
	Sources    multiselect.Snapshot
	Submitting bool
	Notice     *Notice
}

type selection struct {
	options  []entities.Option
	selected []int64
	control  *multiselect.Control
	adding   bool
}

// View is the add-hadith form. Its zero value is not usable; use New.
type View struct {
	mu     sync.Mutex
	api    API
	logger *zap.Logger

	loadSeq    reqseq.Sequence
	text       string
	fields     [2]*selection
	submitting bool
	notice     *Notice
}

// New creates an empty form. Call Load to fetch companions and sources.
func New(api API, logger *zap.Logger) *View {
	return &View{
		api:    api,
		logger: logger,
		fields: [2]*selection{
			FieldCompanions: {control: multiselect.New(multiselect.Config{
				Label:             "الصحابة:",
				Placeholder:       "ابحث عن صحابي...",
				AddNewPlaceholder: "اسم الصحابي الجديد",
				AllowAddNew:       true,
			})},
			FieldSources: {control: multiselect.New(multiselect.Config{
				Label:             "المخرجون:",
				Placeholder:       "ابحث عن مخرج...",
				AddNewPlaceholder: "اسم المخرج الجديد",
				AllowAddNew:       true,
			})},
		},
	}
}

// Load fetches companions and sources concurrently.
func (v *View) Load(ctx context.Context) bool {
	v.mu.Lock()
	ticket := v.loadSeq.Next()
	v.mu.Unlock()

	var (
		companions []entities.Companion
		sources    []entities.Source
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		companions, err = v.api.ListCompanions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		sources, err = v.api.ListSources(gctx)
		return err
	})
	err := g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.loadSeq.Current(ticket) {
		v.logger.Debug("dropping stale form data response", zap.Uint64("ticket", uint64(ticket)))
		return false
	}

	if err != nil {
		v.logger.Error("failed to load companions and sources", zap.Error(err))
		v.notice = &Notice{Kind: NoticeError, Text: MsgLoadFailed}
		return true
	}

	v.fields[FieldCompanions].options = entities.CompanionOptions(companions)
	v.fields[FieldSources].options = entities.SourceOptions(sources)
	v.notice = nil
	return true
}

// SetText replaces the hadith text.
func (v *View) SetText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.text = text
}

// Toggle flips the selection of option id in field.
func (v *View) Toggle(field Field, id int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s := v.field(field); s != nil {
		s.selected = multiselect.Toggle(s.selected, id)
	}
}

// Remove drops option id from the selection of field.
func (v *View) Remove(field Field, id int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s := v.field(field); s != nil {
		s.selected = multiselect.Remove(s.selected, id)
	}
}

// ToggleDropdown opens or closes the dropdown of field. Any other open
// dropdown is dismissed, like a click outside it.
func (v *View) ToggleDropdown(field Field) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focus(field)
	if s := v.field(field); s != nil {
		s.control.ToggleOpen()
	}
}

// SetFilter sets the search text of field and opens its dropdown.
func (v *View) SetFilter(field Field, term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focus(field)
	if s := v.field(field); s != nil {
		s.control.SetFilter(term)
	}
}

// SetPage moves the dropdown of field to page.
func (v *View) SetPage(field Field, page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s := v.field(field); s != nil {
		s.control.SetPage(page)
	}
}

// BeginAddNew opens the inline creation entry of field.
func (v *View) BeginAddNew(field Field) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focus(field)
	if s := v.field(field); s != nil {
		return s.control.BeginAddNew()
	}
	return false
}

// SetNewName stores the draft name of field.
func (v *View) SetNewName(field Field, name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s := v.field(field); s != nil {
		s.control.SetNewName(name)
	}
}

// CancelAddNew discards the draft of field.
func (v *View) CancelAddNew(field Field) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s := v.field(field); s != nil {
		s.control.CancelAddNew()
	}
}

// DismissAll closes every dropdown, keeping selections.
func (v *View) DismissAll() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, s := range v.fields {
		s.control.Dismiss()
	}
}

// AddNew creates the drafted option of field through the backend. On success
// the option is appended to the field's options and selected. Only one
// creation per field is in flight at a time.
func (v *View) AddNew(ctx context.Context, field Field) bool {
	v.mu.Lock()
	s := v.field(field)
	if s == nil || s.adding || !s.control.CanSubmitNew() {
		v.mu.Unlock()
		return false
	}
	name := s.control.NewName()
	s.adding = true
	v.mu.Unlock()

	var (
		created entities.Option
		err     error
	)
	switch field {
	case FieldCompanions:
		var c *entities.Companion
		if c, err = v.api.CreateCompanion(ctx, name); err == nil {
			created = entities.Option{ID: c.ID, Name: c.Name}
		}
	case FieldSources:
		var src *entities.Source
		if src, err = v.api.CreateSource(ctx, name); err == nil {
			created = entities.Option{ID: src.ID, Name: src.Name}
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	s.adding = false

	if err != nil {
		v.logger.Error("failed to create option", zap.Int("field", int(field)), zap.String("name", name), zap.Error(err))
		msg := MsgCreateCompanionFailed
		if field == FieldSources {
			msg = MsgCreateSourceFailed
		}
		v.notice = &Notice{Kind: NoticeError, Text: msg}
		return true
	}

	s.options = append(s.options, created)
	s.selected = multiselect.Select(s.selected, created.ID)
	s.control.CompleteAddNew()
	return true
}

// validate checks the form in order and returns the first violation, or "".
func (v *View) validate() string {
	switch {
	case strings.TrimSpace(v.text) == "":
		return MsgTextRequired
	case len(v.fields[FieldCompanions].selected) == 0:
		return MsgCompanionRequired
	case len(v.fields[FieldSources].selected) == 0:
		return MsgSourceRequired
	}
	return ""
}

// Submit validates the form and, if valid, creates the hadith. It reports
// whether a request was sent. On success the form is cleared; on failure it
// is kept so the user can resubmit.
func (v *View) Submit(ctx context.Context) bool {
	v.mu.Lock()
	if v.submitting {
		v.mu.Unlock()
		return false
	}

	if msg := v.validate(); msg != "" {
		v.notice = &Notice{Kind: NoticeError, Text: msg}
		v.mu.Unlock()
		return false
	}

	req := entities.CreateHadithRequest{
		Text:         v.text,
		CompanionIDs: slices.Clone(v.fields[FieldCompanions].selected),
		SourceIDs:    slices.Clone(v.fields[FieldSources].selected),
	}
	v.submitting = true
	v.mu.Unlock()

	_, err := v.api.CreateHadith(ctx, req)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitting = false

	if err != nil {
		v.logger.Error("failed to create hadith", zap.Error(err))
		v.notice = &Notice{Kind: NoticeError, Text: MsgCreateFailed}
		return true
	}

	v.notice = &Notice{Kind: NoticeSuccess, Text: MsgCreated}
	v.text = ""
	v.fields[FieldCompanions].selected = nil
	v.fields[FieldSources].selected = nil
	return true
}

// State returns a render snapshot of the form.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	st := State{
		Text:       v.text,
		Submitting: v.submitting,
		Companions: v.snapshot(FieldCompanions),
		Sources:    v.snapshot(FieldSources),
	}
	if v.notice != nil {
		n := *v.notice
		st.Notice = &n
	}
	return st
}

func (v *View) snapshot(field Field) multiselect.Snapshot {
	s := v.fields[field]
	return s.control.Snapshot(s.options, s.selected)
}

func (v *View) field(field Field) *selection {
	if field != FieldCompanions && field != FieldSources {
		return nil
	}
	return v.fields[field]
}

// focus dismisses every control except field.
func (v *View) focus(field Field) {
	for f, s := range v.fields {
		if Field(f) != field {
			s.control.Dismiss()
		}
	}
}
