package tui

import tea "github.com/charmbracelet/bubbletea"

// doneMsg carries a completion back onto the Update goroutine.
type doneMsg struct{ apply func() }

// cmdScheduler turns presenter work into tea.Cmds. Work queued during an
// Update is handed to bubbletea when that Update returns.
type cmdScheduler struct {
	pending []tea.Cmd
}

func (s *cmdScheduler) Go(work func() func()) {
	s.pending = append(s.pending, func() tea.Msg {
		return doneMsg{apply: work()}
	})
}

func (s *cmdScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
