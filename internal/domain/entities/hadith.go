// Package entities contains domain entities used across the application.
package entities

// Hadith is a stored narration together with the companions who transmitted it
// and the sources that collected it. The backend owns it; the bot never edits it.
type Hadith struct {
	ID         int64       `json:"id"`         // backend identifier
	Text       string      `json:"text"`       // full text body
	Companions []Companion `json:"companions"` // ordered companion references
	Sources    []Source    `json:"sources"`    // ordered source references
}

// Companion is a narrator associated with a hadith's transmission chain.
type Companion struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Source is a reference work or collector a hadith is attributed to.
type Source struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Option is a generic selectable {id, name} pair.
type Option struct {
	ID   int64
	Name string
}

// CreateHadithRequest is the payload for creating a hadith.
type CreateHadithRequest struct {
	Text         string  `json:"text"`
	CompanionIDs []int64 `json:"companion_ids"`
	SourceIDs    []int64 `json:"source_ids"`
}

// CreateNamedRequest is the payload for creating a companion or a source.
type CreateNamedRequest struct {
	Name string `json:"name"`
}

// CompanionOptions converts companions into selectable options keeping their order.
func CompanionOptions(companions []Companion) []Option {
	opts := make([]Option, 0, len(companions))
	for _, c := range companions {
		opts = append(opts, Option{ID: c.ID, Name: c.Name})
	}
	return opts
}

// SourceOptions converts sources into selectable options keeping their order.
func SourceOptions(sources []Source) []Option {
	opts := make([]Option, 0, len(sources))
	for _, s := range sources {
		opts = append(opts, Option{ID: s.ID, Name: s.Name})
	}
	return opts
}

// CompanionNames returns companion display names in order.
func (h Hadith) CompanionNames() []string {
	names := make([]string, 0, len(h.Companions))
	for _, c := range h.Companions {
		names = append(names, c.Name)
	}
	return names
}

// SourceNames returns source display names in order.
func (h Hadith) SourceNames() []string {
	names := make([]string, 0, len(h.Sources))
	for _, s := range h.Sources {
		names = append(names, s.Name)
	}
	return names
}
