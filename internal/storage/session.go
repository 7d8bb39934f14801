package storage

import (
	"sync"

	"github.com/aliskhannn/hadith-bot/internal/ui/addhadith"
	"github.com/aliskhannn/hadith-bot/internal/ui/hadithlist"
	"github.com/aliskhannn/hadith-bot/internal/ui/quiz"
)

// Screen is one of the three top-level screens of the bot.
type Screen int

const (
	ScreenNone Screen = iota
	ScreenList
	ScreenAdd
	ScreenQuiz
)

// Input names what the next plain text message of a chat is written into.
type Input int

const (
	InputNone       Input = iota
	InputHadithText       // add form: hadith text
	InputFilter           // search text of a multi-select control
	InputNewName          // draft name of an inline add-new entry
	InputBlank            // focused fill-in blank of the quiz
)

// Focus is the text input target of a chat. Field is the multi-select field
// of the screen and only matters for InputFilter and InputNewName.
type Focus struct {
	Screen Screen
	Input  Input
	Field  int
}

// Session holds the view models and message bookkeeping of one chat.
type Session struct {
	ChatID int64
	List   *hadithlist.View
	Add    *addhadith.View
	Quiz   *quiz.View

	mu       sync.Mutex
	screen   Screen
	focus    Focus
	messages map[Screen]int
}

// NewSession creates a session around already constructed views.
func NewSession(chatID int64, list *hadithlist.View, add *addhadith.View, q *quiz.View) *Session {
	return &Session{
		ChatID:   chatID,
		List:     list,
		Add:      add,
		Quiz:     q,
		messages: make(map[Screen]int),
	}
}

// Screen returns the screen the chat navigated to last.
func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// Navigate makes screen the active one and clears the text focus.
func (s *Session) Navigate(screen Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = screen
	s.focus = Focus{}
}

// Focus returns the current text input target.
func (s *Session) Focus() Focus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focus
}

// SetFocus directs the next text message to f.
func (s *Session) SetFocus(f Focus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = f
}

// ClearFocus drops the text input target.
func (s *Session) ClearFocus() {
	s.SetFocus(Focus{})
}

// MessageID returns the id of the message showing screen, or 0.
func (s *Session) MessageID(screen Screen) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages[screen]
}

// SetMessageID remembers the message showing screen.
func (s *Session) SetMessageID(screen Screen, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[screen] = id
}

// SessionFactory builds a fresh session for a chat.
type SessionFactory func(chatID int64) *Session

// SessionStorage provides in-memory storage for chat sessions by chat ID.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	factory  SessionFactory
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage(factory SessionFactory) *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*Session),
		factory:  factory,
	}
}

// Get returns the session of chatID, creating it on first use.
func (s *SessionStorage) Get(chatID int64) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[chatID]; ok {
		return sess
	}
	sess = s.factory(chatID)
	s.sessions[chatID] = sess
	return sess
}
