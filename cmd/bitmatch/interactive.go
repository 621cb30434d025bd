package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var widths = []uint{8, 16, 32, 64}

type interactiveModel struct {
	caches   *caches
	inputs   []textinput.Model
	focusIdx int
	width    uint
	dynamic  bool
}

const (
	inputPattern = iota
	inputWords
)

func newInteractiveModel(patternText, words string, width uint, dynamic bool) *interactiveModel {
	m := &interactiveModel{
		caches:  newCaches(),
		width:   width,
		dynamic: dynamic,
	}

	pi := textinput.New()
	pi.Prompt = "pattern: "
	pi.Placeholder = "11aabb00"
	pi.CharLimit = 64
	pi.Width = 64
	pi.SetValue(patternText)
	pi.Focus()

	wi := textinput.New()
	wi.Prompt = "words:   "
	wi.Placeholder = "0xd8, 0b11000000"
	wi.Width = 64
	wi.SetValue(words)

	m.inputs = []textinput.Model{pi, wi}
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
			return m, m.inputs[m.focusIdx].Focus()

		case "ctrl+w":
			m.width = nextWidth(m.width)
			return m, nil

		case "ctrl+d":
			m.dynamic = !m.dynamic
			return m, nil
		}
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func nextWidth(w uint) uint {
	for i, v := range widths {
		if v == w {
			return widths[(i+1)%len(widths)]
		}
	}
	return widths[0]
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	mode := "build-time"
	if m.dynamic {
		mode = "dynamic"
	}
	b.WriteString(titleStyle.Render("bitmatch"))
	b.WriteString(" ")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%d-bit, %s", m.width, mode)))
	b.WriteString("\n\n")

	for _, input := range m.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	text := m.inputs[inputPattern].Value()
	if text == "" {
		b.WriteString(helpStyle.Render("type a pattern"))
		b.WriteString("\n")
	} else if rows, err := describeWidth(m.caches, m.width, text, m.dynamic, splitWords(m.inputs[inputWords].Value())); err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
		b.WriteString("\n")
	} else {
		b.WriteString(renderRows(rows, true))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab switch input • ctrl+w width • ctrl+d dynamic • esc quit"))
	return b.String()
}

func runInteractive(patternText, words string, width uint, dynamic bool) error {
	if !slices.Contains(widths, width) {
		return unsupportedWidth(width)
	}
	p := tea.NewProgram(newInteractiveModel(patternText, words, width, dynamic), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
