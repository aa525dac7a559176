package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mabdulhai/studyflow/internal/chat"
	"github.com/mabdulhai/studyflow/internal/cli/formatter"
	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/mabdulhai/studyflow/internal/session"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// taskKeys are the key bindings active in the task view.
type taskKeys struct {
	SwitchFocus key.Binding
	Finish      key.Binding
	Quit        key.Binding
}

var defaultTaskKeys = taskKeys{
	SwitchFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
	Finish:      key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "finish task")),
	Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "abandon")),
}

// assistantReplyMsg carries the result of an assistant exchange back
// into the update loop.
type assistantReplyMsg struct {
	turns []domain.Turn
	err   error
}

// taskModel is the bubbletea model for the task phase: an essay editor
// plus, when the assistant is enabled, a chat pane. The conversation
// log itself is owned by the session; the view only renders from it.
type taskModel struct {
	sess     *session.Session
	exchange *chat.Exchange
	prompt   string

	essay textarea.Model
	input textinput.Model
	spin  spinner.Model
	keys  taskKeys

	chatFocused bool
	waiting     bool
	transcript  []string
	notice      string
}

func newTaskModel(sess *session.Session, exchange *chat.Exchange, prompt string) *taskModel {
	ta := textarea.New()
	ta.Placeholder = "Write your essay here..."
	ta.SetWidth(76)
	ta.SetHeight(12)
	ta.CharLimit = 0
	ta.SetValue(sess.Essay())
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "Ask the assistant..."
	ti.Prompt = ""
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &taskModel{
		sess:     sess,
		exchange: exchange,
		prompt:   prompt,
		essay:    ta,
		input:    ti,
		spin:     sp,
		keys:     defaultTaskKeys,
	}
	if conv := sess.Conversation(); conv != nil {
		for _, turn := range conv.Turns() {
			m.transcript = append(m.transcript, renderTurn(turn))
		}
	}
	return m
}

func renderTurn(turn domain.Turn) string {
	speaker := formatter.StyleBlue.Render("You")
	if turn.Role == domain.RoleAssistant {
		speaker = formatter.StylePurple.Render("Assistant")
	}
	return speaker + formatter.Dim(": ") + turn.Text
}

func (m *taskModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *taskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.SwitchFocus):
			if m.exchange != nil {
				m.toggleFocus()
			}
			return m, nil

		case key.Matches(msg, m.keys.Finish):
			return m, m.finish()
		}

		if m.chatFocused {
			if msg.Type == tea.KeyEnter && !m.waiting {
				return m, m.send()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.essay, cmd = m.essay.Update(msg)
		return m, cmd

	case assistantReplyMsg:
		m.waiting = false
		if msg.err != nil {
			m.notice = formatter.Errorf("%v", msg.err)
		}
		for _, turn := range msg.turns {
			m.transcript = append(m.transcript, renderTurn(turn))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.chatFocused {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.essay, cmd = m.essay.Update(msg)
	}
	return m, cmd
}

func (m *taskModel) toggleFocus() {
	m.chatFocused = !m.chatFocused
	if m.chatFocused {
		m.essay.Blur()
		m.input.Focus()
	} else {
		m.input.Blur()
		m.essay.Focus()
	}
}

// send dispatches the typed message to the assistant as a background
// command. Input stays disabled until the reply message arrives, so at
// most one exchange is in flight.
func (m *taskModel) send() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if text == "" || m.exchange == nil {
		return nil
	}

	m.waiting = true
	exchange := m.exchange
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		turns, err := exchange.Submit(context.Background(), text)
		return assistantReplyMsg{turns: turns, err: err}
	})
}

// finish records the essay draft and attempts the task exit. A refusal
// under the blocking artifact policy surfaces as an inline notice.
func (m *taskModel) finish() tea.Cmd {
	if err := m.sess.SetEssay(m.essay.Value()); err != nil {
		m.notice = formatter.Errorf("%v", err)
		return nil
	}
	if m.sess.EssayMissing() && m.sess.Config().RequireArtifact == domain.ArtifactAdvisory {
		m.notice = formatter.Warn("You are finishing without an essay.")
	}
	if err := m.sess.FinishTask(); err != nil {
		m.notice = formatter.Warn("Please write your essay before finishing.")
		return nil
	}
	return tea.Quit
}

func (m *taskModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("Writing task") + "\n")
	b.WriteString(formatter.Bold(m.prompt) + "\n\n")
	b.WriteString(m.essay.View() + "\n")

	if m.exchange != nil {
		b.WriteString("\n" + formatter.Header("Assistant") + "\n")
		for _, line := range m.transcript {
			b.WriteString(line + "\n")
		}
		if m.waiting {
			b.WriteString(m.spin.View() + formatter.Dim("thinking...") + "\n")
		} else {
			b.WriteString(formatter.StylePurple.Render("chat") + formatter.Dim("> ") + m.input.View() + "\n")
		}
	}

	if m.notice != "" {
		b.WriteString("\n" + m.notice + "\n")
	}

	help := fmt.Sprintf("%s · %s · %s",
		m.keys.SwitchFocus.Help().Key+" "+m.keys.SwitchFocus.Help().Desc,
		m.keys.Finish.Help().Key+" "+m.keys.Finish.Help().Desc,
		m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc,
	)
	b.WriteString("\n" + formatter.Dim(help) + "\n")

	return b.String()
}
