package message

import "sync"

// Store holds the current filtered message batch so that consumers beyond
// the interceptor (e.g. a message-count indicator) read the same data. The
// owning application creates one Store and passes it to every consumer;
// there is no package-level instance.
type Store struct {
	mu   sync.Mutex
	msgs []Message
	subs []func([]Message)
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps the stored batch wholesale. Prior contents are discarded,
// never merged. Subscribers are notified with a copy after the swap.
func (s *Store) Replace(msgs []Message) {
	s.mu.Lock()
	s.msgs = append([]Message(nil), msgs...)
	subs := s.subs
	snapshot := append([]Message(nil), s.msgs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Messages returns a copy of the current batch.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.msgs...)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

// Subscribe registers fn to run after every Replace. Subscriptions live for
// the Store's lifetime; there is no unsubscribe.
func (s *Store) Subscribe(fn func([]Message)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
