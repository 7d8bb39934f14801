// Package hadithlist is the view model of the hadith list screen.
package hadithlist

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/hadith-bot/internal/domain/entities"
	"github.com/aliskhannn/hadith-bot/internal/ui/reqseq"
)

const (
	MsgLoadFailed = "فشل في تحميل الأحاديث"
	MsgEmpty      = "لا توجد أحاديث مضافة بعد"
)

// API is the part of the backend client the list needs.
type API interface {
	ListHadiths(ctx context.Context) ([]entities.Hadith, error)
}

// Status is the rendered state of the list.
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusReady
)

// State is a render snapshot of the view.
type State struct {
	Status  Status
	Error   string
	Hadiths []entities.Hadith
}

// Empty reports whether the list loaded successfully but has no hadiths.
func (s State) Empty() bool {
	return s.Status == StatusReady && len(s.Hadiths) == 0
}

// View fetches every hadith once per Load and keeps the latest result.
type View struct {
	mu     sync.Mutex
	api    API
	logger *zap.Logger
	seq    reqseq.Sequence
	state  State
}

// New creates a view in the loading state. Call Load to fetch.
func New(api API, logger *zap.Logger) *View {
	return &View{
		api:    api,
		logger: logger,
		state:  State{Status: StatusLoading},
	}
}

// Load fetches all hadiths. It reports false when a newer Load superseded
// this one and the result was dropped.
func (v *View) Load(ctx context.Context) bool {
	v.mu.Lock()
	ticket := v.seq.Next()
	v.state = State{Status: StatusLoading}
	v.mu.Unlock()

	hadiths, err := v.api.ListHadiths(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.seq.Current(ticket) {
		v.logger.Debug("dropping stale hadith list response", zap.Uint64("ticket", uint64(ticket)))
		return false
	}

	if err != nil {
		v.logger.Error("failed to load hadiths", zap.Error(err))
		v.state = State{Status: StatusError, Error: MsgLoadFailed}
		return true
	}

	v.state = State{Status: StatusReady, Hadiths: hadiths}
	return true
}

// State returns a copy of the current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := v.state
	s.Hadiths = slices.Clone(v.state.Hadiths)
	return s
}
