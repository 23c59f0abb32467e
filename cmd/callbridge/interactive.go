package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/callbridge/bridge"
	"github.com/wippyai/callbridge/catalog"
	"github.com/wippyai/callbridge/registry"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	memberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectTarget modelState = iota
	stateInputArgs
	stateShowResult
)

type field struct {
	name string
	kind string
}

type interactiveModel struct {
	err      error
	agent    *bridge.Agent
	result   string
	targets  []*catalog.Target
	ids      map[*catalog.Target]registry.ID
	fields   []field
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type callResultMsg struct {
	err    error
	result string
}

func newInteractiveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Pick and invoke catalog targets in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("interactive mode needs a terminal")
			}
			_, err := tea.NewProgram(newInteractiveModel(s.agent)).Run()
			return err
		},
	}
}

func newInteractiveModel(agent *bridge.Agent) *interactiveModel {
	m := &interactiveModel{
		agent: agent,
		ids:   make(map[*catalog.Target]registry.ID),
		state: stateSelectTarget,
	}
	agent.Catalog().Each(func(t *catalog.Target) bool {
		m.targets = append(m.targets, t)
		return true
	})
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputArgs || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectTarget && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectTarget && m.selected < len(m.targets)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectTarget:
				if len(m.targets) == 0 {
					return m, nil
				}
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.call
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.call

			case stateShowResult:
				m.reset()
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			if m.state != stateSelectTarget {
				m.reset()
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) reset() {
	m.state = stateSelectTarget
	m.inputs = nil
	m.fields = nil
	m.result = ""
	m.err = nil
}

// prepareInputs builds one field per declared parameter. Methods get a leading
// receiver field; variadic targets get one field for the first tail element.
func (m *interactiveModel) prepareInputs() {
	t := m.targets[m.selected]
	m.fields = m.fields[:0]
	if t.Kind() == catalog.KindMethod {
		m.fields = append(m.fields, field{name: "self", kind: "handle"})
	}
	for i, p := range t.Params() {
		m.fields = append(m.fields, field{name: fmt.Sprintf("arg%d", i), kind: p.Kind.String()})
	}

	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		ti := textinput.New()
		ti.Placeholder = f.kind
		ti.Prompt = f.name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) call() tea.Msg {
	t := m.targets[m.selected]
	inputs := make([]string, 0, len(m.inputs))
	for _, in := range m.inputs {
		inputs = append(inputs, in.Value())
	}
	// An empty trailing variadic field means no tail arguments.
	if t.Variadic() && len(inputs) > 0 && strings.TrimSpace(inputs[len(inputs)-1]) == "" {
		inputs = inputs[:len(inputs)-1]
	}
	res, err := invokeTarget(context.Background(), m.agent, t, m.targetID(t), inputs)
	return callResultMsg{result: res, err: err}
}

// targetID registers t on first use and reuses that identifier afterwards.
func (m *interactiveModel) targetID(t *catalog.Target) registry.ID {
	id, ok := m.ids[t]
	if !ok {
		id = m.agent.Register(t)
		m.ids[t] = id
	}
	return id
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("callbridge"))
	b.WriteString(fmt.Sprintf(" %d targets\n\n", len(m.targets)))

	if len(m.targets) == 0 {
		b.WriteString("Catalog is empty.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	switch m.state {
	case stateSelectTarget:
		b.WriteString("Select a target to invoke:\n\n")
		for i, t := range m.targets {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + describeTarget(t)))
			} else {
				b.WriteString("  " + m.formatTarget(t))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter invoke • q quit"))

	case stateInputArgs:
		t := m.targets[m.selected]
		b.WriteString(fmt.Sprintf("Invoking %s\n\n", memberStyle.Render(t.FullName())))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(kindStyle.Render(m.fields[i].kind))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter invoke • esc back"))

	case stateShowResult:
		t := m.targets[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", memberStyle.Render(t.FullName())))
		if m.err != nil {
			b.WriteString(errorStyle.Render(m.result))
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatTarget(t *catalog.Target) string {
	return memberStyle.Render(t.FullName()) + " " + kindStyle.Render(t.WITSignature())
}
