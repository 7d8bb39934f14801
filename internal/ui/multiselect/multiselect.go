// Package multiselect holds the state of a searchable multi-selection list
// with optional inline creation of new options.
//
// The control never owns the option list or the selection. Both are passed in
// by the parent on every call, and selection changes are returned to the parent,
// which stores them and passes them back on the next render.
package multiselect

import (
	"slices"
	"strings"

	"github.com/aliskhannn/hadith-bot/internal/domain/entities"
)

const DefaultPageSize = 8

// Config describes a control instance.
type Config struct {
	Label             string
	Placeholder       string
	AddNewPlaceholder string
	AllowAddNew       bool // enables the inline "add new" sub-flow
	PageSize          int
}

// Control keeps the UI-local state of one multi-select: the filter text,
// whether the dropdown is open, the inline add-new draft and the dropdown page.
type Control struct {
	cfg       Config
	filter    string
	open      bool
	addingNew bool
	newName   string
	page      int
}

// New creates a closed control with an empty filter.
func New(cfg Config) *Control {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return &Control{cfg: cfg}
}

// Filter returns the options whose name contains term, ignoring case.
// Order of options is preserved.
func Filter(options []entities.Option, term string) []entities.Option {
	needle := strings.ToLower(term)
	out := make([]entities.Option, 0, len(options))
	for _, o := range options {
		if strings.Contains(strings.ToLower(o.Name), needle) {
			out = append(out, o)
		}
	}
	return out
}

// Toggle removes id from selected if present, otherwise appends it.
// The input slice is never modified.
func Toggle(selected []int64, id int64) []int64 {
	if slices.Contains(selected, id) {
		return Remove(selected, id)
	}
	return append(slices.Clone(selected), id)
}

// Select appends id unless it is already selected.
func Select(selected []int64, id int64) []int64 {
	if slices.Contains(selected, id) {
		return slices.Clone(selected)
	}
	return append(slices.Clone(selected), id)
}

// Remove drops id from selected.
func Remove(selected []int64, id int64) []int64 {
	return slices.DeleteFunc(slices.Clone(selected), func(x int64) bool { return x == id })
}

// SelectedOptions resolves selected ids against options in selection order.
// Ids with no matching option are skipped.
func SelectedOptions(options []entities.Option, selected []int64) []entities.Option {
	out := make([]entities.Option, 0, len(selected))
	for _, id := range selected {
		idx := slices.IndexFunc(options, func(o entities.Option) bool { return o.ID == id })
		if idx >= 0 {
			out = append(out, options[idx])
		}
	}
	return out
}

// SetFilter replaces the filter text and rewinds the dropdown to its first page.
func (c *Control) SetFilter(term string) {
	c.filter = term
	c.page = 0
	c.open = true
}

func (c *Control) FilterText() string { return c.filter }

// Visible returns the options matching the current filter.
func (c *Control) Visible(options []entities.Option) []entities.Option {
	return Filter(options, c.filter)
}

// ToggleOpen opens or closes the dropdown.
func (c *Control) ToggleOpen() {
	if c.open {
		c.Dismiss()
		return
	}
	c.open = true
}

func (c *Control) IsOpen() bool { return c.open }

// Dismiss closes the dropdown and cancels the add-new draft.
// The selection is left to the parent and therefore untouched.
func (c *Control) Dismiss() {
	c.open = false
	c.CancelAddNew()
}

// Page returns the visible options of the current page and the page count.
func (c *Control) Page(options []entities.Option) (items []entities.Option, page, totalPages int) {
	visible := c.Visible(options)
	totalPages = (len(visible) + c.cfg.PageSize - 1) / c.cfg.PageSize
	if totalPages == 0 {
		return nil, 0, 0
	}

	c.page = min(max(c.page, 0), totalPages-1)
	start := c.page * c.cfg.PageSize
	end := min(start+c.cfg.PageSize, len(visible))

	return visible[start:end], c.page, totalPages
}

// SetPage moves the dropdown to page; it is clamped on the next Page call.
func (c *Control) SetPage(page int) {
	c.page = page
}

// BeginAddNew opens the inline creation entry. It is a no-op when the
// control was configured without add-new support.
func (c *Control) BeginAddNew() bool {
	if !c.cfg.AllowAddNew {
		return false
	}
	c.open = true
	c.addingNew = true
	return true
}

func (c *Control) IsAddingNew() bool { return c.addingNew }

// SetNewName stores the draft name typed by the user.
func (c *Control) SetNewName(name string) {
	if c.addingNew {
		c.newName = name
	}
}

// NewName returns the trimmed draft name.
func (c *Control) NewName() string {
	return strings.TrimSpace(c.newName)
}

// CanSubmitNew reports whether the draft may be submitted.
func (c *Control) CanSubmitNew() bool {
	return c.addingNew && c.NewName() != ""
}

// CompleteAddNew resets the draft after the parent created the option.
func (c *Control) CompleteAddNew() {
	c.newName = ""
	c.addingNew = false
	c.filter = ""
	c.page = 0
}

// CancelAddNew discards the draft.
func (c *Control) CancelAddNew() {
	c.addingNew = false
	c.newName = ""
}

// Snapshot is everything a renderer needs to draw the control.
type Snapshot struct {
	Config       Config
	Selected     []entities.Option // tags, in selection order
	SelectedIDs  []int64
	Filter       string
	Open         bool
	Items        []entities.Option // current dropdown page
	Page         int
	TotalPages   int
	AddingNew    bool
	NewName      string
	CanSubmitNew bool
}

// IsSelected reports whether id is part of the selection.
func (s Snapshot) IsSelected(id int64) bool {
	return slices.Contains(s.SelectedIDs, id)
}

// Snapshot renders the control against the parent's options and selection.
func (c *Control) Snapshot(options []entities.Option, selected []int64) Snapshot {
	items, page, total := c.Page(options)
	return Snapshot{
		Config:       c.cfg,
		Selected:     SelectedOptions(options, selected),
		SelectedIDs:  slices.Clone(selected),
		Filter:       c.filter,
		Open:         c.open,
		Items:        items,
		Page:         page,
		TotalPages:   total,
		AddingNew:    c.addingNew,
		NewName:      c.newName,
		CanSubmitNew: c.CanSubmitNew(),
	}
}
