package app

import "sync"

// Store owns a State and applies actions to it through Reduce. Dispatches
// are serialized, so results of background requests may be reduced from any
// goroutine; each action sees the state left by the previous one.
type Store struct {
	mu    sync.Mutex
	state State
}

func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces each action in order and returns the resulting state.
func (s *Store) Dispatch(actions ...Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	return s.state
}

// Update replaces the state with fn's result. It is used by Tentative, whose
// Begin and Settle operate on whole states. fn must not call back into s.
func (s *Store) Update(fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}
