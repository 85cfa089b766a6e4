package health

import "sync/atomic"

// State tracks whether the server still accepts traffic. It is flipped once on SIGTERM.
type State struct {
	draining atomic.Bool
}

func NewState() *State {
	return &State{}
}

func (s *State) Drain() {
	s.draining.Store(true)
}

func (s *State) Draining() bool {
	return s.draining.Load()
}
