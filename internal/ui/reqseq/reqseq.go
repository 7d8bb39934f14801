// Package reqseq hands out monotonically increasing request tickets so a view
// can ignore responses that were overtaken by a newer request.
package reqseq

// Ticket identifies one issued request.
type Ticket uint64

// Sequence is not safe for concurrent use; callers guard it with the lock that
// protects the owning view.
type Sequence struct {
	last Ticket
}

// Next issues a new ticket, invalidating every earlier one.
func (s *Sequence) Next() Ticket {
	s.last++
	return s.last
}

// Current reports whether t is the most recently issued ticket.
func (s *Sequence) Current(t Ticket) bool {
	return t != 0 && t == s.last
}
