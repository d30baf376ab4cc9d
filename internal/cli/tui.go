package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/risk"
)

var (
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	promptDim     = lipgloss.NewStyle().Foreground(colorDim)
	promptChosen  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	promptCounter = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// ConfirmModel - yes/no question
// =============================================================================

// ConfirmModel asks one yes/no question. Left/right or tab move the
// selection, y/n answer directly, enter confirms.
type ConfirmModel struct {
	Question string
	Index    int // 1-based position, 0 hides the counter
	Yes      bool
	Answered bool
	Aborted  bool
}

// NewConfirmModel creates a model with "no" preselected.
func NewConfirmModel(question string, index int) ConfirmModel {
	return ConfirmModel{Question: question, Index: index}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "ctrl+c", "esc", "q":
		m.Aborted = true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.Yes = !m.Yes
	case "y":
		m.Yes, m.Answered = true, true
		return m, tea.Quit
	case "n":
		m.Yes, m.Answered = false, true
		return m, tea.Quit
	case "enter":
		m.Answered = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.Answered || m.Aborted {
		return ""
	}
	var b strings.Builder
	if m.Index > 0 {
		b.WriteString(promptCounter.Render(fmt.Sprintf("[%d] ", m.Index)))
	}
	b.WriteString(promptStyle.Render(m.Question))
	b.WriteString("\n  ")
	yes, no := promptDim.Render("yes"), promptDim.Render("no")
	if m.Yes {
		yes = promptChosen.Render("▸ yes")
	} else {
		no = promptChosen.Render("▸ no")
	}
	b.WriteString(yes + "   " + no)
	b.WriteString("\n" + promptDim.Render("  y/n answer  ←/→ toggle  ⏎ confirm  q abort") + "\n")
	return b.String()
}

// =============================================================================
// Asker
// =============================================================================

// newAsker returns an Asker that draws a bubbletea prompt on out for each
// question. Aborting the prompt fails the question, which ends the
// interrogation.
func newAsker(ctx context.Context, in io.Reader, out io.Writer) risk.Asker {
	n := 0
	return func(q *risk.Question) (bool, error) {
		n++
		final, err := tea.NewProgram(
			NewConfirmModel(q.Text, n),
			tea.WithContext(ctx),
			tea.WithInput(in),
			tea.WithOutput(out),
		).Run()
		if err != nil {
			return false, err
		}
		m := final.(ConfirmModel)
		if m.Aborted {
			return false, errors.New(errors.ErrCodeInvalidInput, "interrogation aborted")
		}
		fmt.Fprintf(out, "%s %s\n", promptDim.Render(q.Text), answerLabel(m.Yes))
		return m.Yes, nil
	}
}

func answerLabel(yes bool) string {
	if yes {
		return promptChosen.Render("yes")
	}
	return promptChosen.Render("no")
}
