package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docwhisperer/internal/app"
	"docwhisperer/internal/model"
)

// AskPort is the TUI-facing subset of the whisper service.
type AskPort interface {
	Ask(ctx context.Context, question string, provider model.Provider) (*app.AskResult, error)
	ListDocuments() []app.DocumentInfo
}

// Model is the Bubble Tea model for the interactive Q&A session.
type Model struct {
	service  AskPort
	provider model.Provider
	input    textinput.Model
	viewport viewport.Model
	history  []string
	status   string
	ready    bool
	waiting  bool
}

type answerMsg struct {
	question string
	result   *app.AskResult
	err      error
}

// New creates an interactive session bound to one provider.
func New(service AskPort, provider model.Provider) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question, or type 'list' to see documents"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		provider: provider,
		input:    ti,
		viewport: vp,
		status:   fmt.Sprintf("Ready. Answering with %s. Ctrl+C to quit.", provider),
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := questionBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.transcript())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				break
			}
			m.input.SetValue("")
			if question == "list" || question == "quit" || question == "exit" {
				return m.handleCommand(question)
			}
			m.waiting = true
			m.status = "Thinking..."
			return m, m.askCmd(question)
		}
	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Answered with %s. Ctrl+C to quit.", m.provider)
		entry := questionStyle.Render("Q: "+msg.question) + "\n" + msg.result.Answer
		if len(msg.result.Chunks) > 0 {
			entry += "\n" + sourceStyle.Render(fmt.Sprintf("(%d chunks retrieved)", len(msg.result.Chunks)))
		}
		if msg.result.Cached {
			entry += "\n" + sourceStyle.Render("(cached)")
		}
		m.history = append(m.history, entry)
		m.viewport.SetContent(m.transcript())
		m.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleCommand(command string) (tea.Model, tea.Cmd) {
	switch command {
	case "quit", "exit":
		return m, tea.Quit
	case "list":
		docs := m.service.ListDocuments()
		if len(docs) == 0 {
			m.history = append(m.history, "No documents ingested yet.")
		} else {
			lines := make([]string, 0, len(docs)+1)
			lines = append(lines, questionStyle.Render("Ingested documents:"))
			for _, doc := range docs {
				lines = append(lines, fmt.Sprintf("  %s (%d chars)", doc.Path, doc.FileSize))
			}
			m.history = append(m.history, strings.Join(lines, "\n"))
		}
		m.viewport.SetContent(m.transcript())
		m.viewport.GotoBottom()
	}
	return m, nil
}

func (m Model) askCmd(question string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.service.Ask(context.Background(), question, m.provider)
		return answerMsg{question: question, result: result, err: err}
	}
}

// View renders the session transcript above the input line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Doc Whisperer")
	input := questionBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	answers := answerBoxStyle.Render(m.viewport.View())
	return header + "\n" + answers + "\n" + input + "\n" + status
}

func (m Model) transcript() string {
	if len(m.history) == 0 {
		return "Ask a question about your ingested documents."
	}
	return strings.Join(m.history, "\n\n")
}

var (
	answerBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	sourceStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
