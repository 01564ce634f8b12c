package tuitest

import tea "github.com/charmbracelet/bubbletea"

// Messages runs cmd and returns the messages it produces, expanding batches.
// Commands that wait on timers, such as cursor blink or spinner ticks,
// block until they fire.
func Messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Messages(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// Apply sends msgs to m in order and returns the final model and the last
// non-nil command.
func Apply(m tea.Model, msgs ...tea.Msg) (tea.Model, tea.Cmd) {
	var last tea.Cmd
	for _, msg := range msgs {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		if cmd != nil {
			last = cmd
		}
	}
	return m, last
}
