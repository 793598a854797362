package dashboard

import (
	"fmt"
	"strings"

	"dark_patterns_game/internal/game"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#74c7ec")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
	statStyle  = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475a")).
			Padding(0, 1)

	tierColors = map[string]lipgloss.Color{
		"lightning": lipgloss.Color("#a6e3a1"),
		"excellent": lipgloss.Color("#89b4fa"),
		"good":      lipgloss.Color("#f9e2af"),
		"slowed":    lipgloss.Color("#fab387"),
		"trapped":   lipgloss.Color("#f38ba8"),
	}
)

// Render draws a snapshot as text.
func Render(snap Snapshot, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Dark Patterns Game - Leaderboard"))
	b.WriteString("\n")

	if snap.Err != nil {
		b.WriteString(errStyle.Render("⚠ update failed: " + snap.Err.Error()))
		b.WriteString("\n")
	}
	if snap.Board == nil {
		b.WriteString(mutedStyle.Render("Waiting for data..."))
		return b.String()
	}

	st := snap.Board.Statistics
	stats := []string{
		statStyle.Render(fmt.Sprintf("Participants\n%d", st.TotalUsers)),
		statStyle.Render(fmt.Sprintf("Finished\n%d", st.TotalScores)),
		statStyle.Render(fmt.Sprintf("Average\n%s", game.FormatElapsed(st.AverageScore))),
		statStyle.Render(fmt.Sprintf("Best\n%s", game.FormatElapsed(st.BestScore))),
		statStyle.Render(fmt.Sprintf("Worst\n%s", game.FormatElapsed(st.WorstScore))),
		statStyle.Render(fmt.Sprintf("Completion\n%d%%", st.CompletionRate)),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, stats...))
	b.WriteString("\n\n")

	ranked := Ranked(snap.Board.Scores)
	if len(ranked) == 0 {
		b.WriteString(mutedStyle.Render("No scores yet"))
		b.WriteString("\n")
	}
	for _, r := range ranked {
		rating := game.Rate(r.Score)
		line := fmt.Sprintf("%3d. %s %-24s %8s", r.Rank, rating.Emoji, truncate(r.UserName, 24), r.FormattedTime)
		b.WriteString(lipgloss.NewStyle().Foreground(tierColors[rating.Tier]).Render(line))
		b.WriteString("\n")
	}

	if pending := snap.Board.UsersWithoutScore; len(pending) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(fmt.Sprintf("In progress (%d)", len(pending))))
		b.WriteString("\n")
		names := make([]string, len(pending))
		for i, u := range pending {
			names[i] = u.Name
		}
		b.WriteString(mutedStyle.Width(max(width, 20)).Render(strings.Join(names, ", ")))
		b.WriteString("\n")
	}

	if !snap.UpdatedAt.IsZero() {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Updated " + snap.UpdatedAt.Format("15:04:05")))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

type snapshotMsg Snapshot

// Model is the live terminal board fed by a Poller subscription.
type Model struct {
	updates <-chan Snapshot
	snap    Snapshot
	width   int
}

func NewModel(updates <-chan Snapshot, initial Snapshot) Model {
	return Model{updates: updates, snap: initial, width: 80}
}

func (m Model) wait() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.updates
		if !ok {
			return tea.Quit()
		}
		return snapshotMsg(s)
	}
}

func (m Model) Init() tea.Cmd {
	return m.wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = Snapshot(msg)
		return m, m.wait()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	return Render(m.snap, m.width) + "\n" + mutedStyle.Render("q to quit")
}
