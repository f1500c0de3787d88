package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/mafios/pkg/state"
	"github.com/jwebster45206/mafios/pkg/textfilter"
)

const (
	PlaceHolderText = "Type a command, or help..."
	maxLogLines     = 500
)

// ConsoleUI is the BubbleTea model for the game.
type ConsoleUI struct {
	cmd     *commander
	text    *textfilter.Formatter
	gs      state.GameState
	updates <-chan state.GameState

	logViewport  viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	lines        []string
	ready        bool
	width        int
	height       int

	showQuitModal bool
}

type stateMsg state.GameState

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")). // blood red
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // amber
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cmd *commander, initial state.GameState, updates <-chan state.GameState) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	return ConsoleUI{
		cmd:          cmd,
		text:         cmd.text,
		gs:           initial,
		updates:      updates,
		textarea:     ta,
		logViewport:  logVp,
		metaViewport: viewport.New(30, 20),
		lines: []string{
			titleStyle.Render("MAFIOS"),
			"Run the chapter. Type help for commands. Ctrl+X copies your save.",
			"",
		},
	}
}

// waitForState blocks on the store subscription and hands the next snapshot
// to Update.
func waitForState(updates <-chan state.GameState) tea.Cmd {
	return func() tea.Msg {
		gs, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg(gs)
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForState(m.updates))
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		logWidth := int(float64(m.width)*0.6) - 2
		metaWidth := m.width - logWidth - 4

		m.logViewport.Width = logWidth - 2
		m.logViewport.Height = m.height - 5
		m.metaViewport.Width = metaWidth
		m.metaViewport.Height = m.height - 2
		m.textarea.SetWidth(logWidth - 4)
		m.ready = true

		m.writeLog()
		m.metaViewport.SetContent(writeMetadata(m.gs, m.text))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlX:
			m.appendLog(m.cmd.copySave(nil))
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			m.appendLog(inputStyle.Render("> " + input))
			if out := m.cmd.Run(input); out != "" {
				m.appendLog(out)
			}
			return m, nil
		}

	case stateMsg:
		next := state.GameState(msg)
		for _, line := range describeChanges(m.gs, next) {
			m.appendLog(line)
		}
		m.gs = next
		m.metaViewport.SetContent(writeMetadata(m.gs, m.text))
		return m, waitForState(m.updates)
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) appendLog(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	m.writeLog()
}

// writeLog rewraps the whole log for the current viewport width.
func (m *ConsoleUI) writeLog() {
	width := m.logViewport.Width - 2
	if width < 10 {
		width = 10
	}
	var content strings.Builder
	for _, line := range m.lines {
		content.WriteString(wordwrap.String(line, width) + "\n")
	}
	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

// describeChanges reports what the background jobs did between two snapshots.
func describeChanges(prev, next state.GameState) []string {
	var out []string
	for _, ev := range next.GangEvents {
		if slices.ContainsFunc(prev.GangEvents, func(p state.GangEvent) bool { return p.ID == ev.ID }) {
			continue
		}
		out = append(out, alertStyle.Render(fmt.Sprintf("[%s] %s", ev.ID[:min(8, len(ev.ID))], ev.Title))+
			" "+ev.Description)
	}
	for _, id := range next.ActiveEvents {
		if slices.Contains(prev.ActiveEvents, id) {
			continue
		}
		i := next.Event(id)
		if i < 0 {
			continue
		}
		e := next.Events[i]
		choices := make([]string, len(e.Choices))
		for j, c := range e.Choices {
			choices[j] = c.ID
		}
		out = append(out, eventStyle.Render(e.Title)+": "+e.Description+
			promptStyle.Render(fmt.Sprintf(" (choose %s %s)", e.ID, strings.Join(choices, "|"))))
	}
	if next.Player.Level > prev.Player.Level {
		out = append(out, headingStyle.Render(fmt.Sprintf("Level %d reached.", next.Player.Level)))
	}
	return out
}

func writeMetadata(gs state.GameState, text *textfilter.Formatter) string {
	var b strings.Builder
	p := gs.Player

	b.WriteString(titleStyle.Render(strings.ToUpper(gs.Chapter.Name)) + "\n\n")
	fmt.Fprintf(&b, "%s  level %d (%d/%d xp)\n", p.Name, p.Level, p.Experience, p.ExperienceToNext)
	fmt.Fprintf(&b, "Kontanter:      %s\n", text.Kronor(p.Cash))
	fmt.Fprintf(&b, "Respekt:        %s\n", text.Percent(p.Respekt))
	fmt.Fprintf(&b, "Polisbevakning: %s\n", text.Percent(p.Heat))
	fmt.Fprintf(&b, "Inflytande:     %d\n\n", p.Influence)

	b.WriteString(headingStyle.Render("Chapter") + "\n")
	for _, mem := range gs.Chapter.Members {
		fmt.Fprintf(&b, "• %s, %s (%s) L%d P%d\n", mem.Name, text.Label(string(mem.Role)),
			text.Label(string(mem.Status)), mem.Loyalty, mem.Power)
	}

	b.WriteString("\n" + headingStyle.Render("Territories") + "\n")
	for _, t := range gs.Territories {
		fmt.Fprintf(&b, "• %s: %s %d%% def %d\n", t.ID, text.Label(string(t.Status)), t.Control, t.DefenseLevel)
	}

	b.WriteString("\n" + headingStyle.Render("Businesses") + "\n")
	for _, biz := range gs.Businesses {
		fmt.Fprintf(&b, "• %s: %s", biz.ID, text.Label(string(biz.Status)))
		switch biz.Status {
		case state.BusinessOwned:
			fmt.Fprintf(&b, " lvl %d, %s/tick", biz.Level, text.Kronor(biz.EffectiveIncome()))
		case state.BusinessAvailable:
			fmt.Fprintf(&b, " %s", text.Kronor(biz.PurchasePrice))
		case state.BusinessLocked:
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + headingStyle.Render("Operations") + "\n")
	for _, op := range gs.Operations {
		fmt.Fprintf(&b, "• %s: %s %d/%d crew\n", op.ID, text.Label(string(op.Status)), len(op.AssignedMemberIDs), op.MaxMembers)
	}

	b.WriteString("\n" + headingStyle.Render("Rival gangs") + "\n")
	for _, g := range gs.RivalGangs {
		fmt.Fprintf(&b, "• %s: %s (%.0f)\n", g.ID, text.Label(string(g.RelationStatus)), g.Hostility)
	}

	if gs.GangStats.UnresolvedEvents > 0 {
		b.WriteString("\n" + alertStyle.Render("Gang trouble") + "\n")
		for _, ev := range gs.GangEvents {
			if ev.Resolved {
				continue
			}
			fmt.Fprintf(&b, "• %s %s (%s)\n", ev.ID[:min(8, len(ev.ID))], text.Label(string(ev.Type)), ev.GangID)
		}
	}

	if len(gs.ActiveEvents) > 0 {
		b.WriteString("\n" + eventStyle.Render("Events") + "\n")
		for _, id := range gs.ActiveEvents {
			if i := gs.Event(id); i >= 0 {
				fmt.Fprintf(&b, "• %s: %s\n", id, gs.Events[i].Title)
			}
		}
	}

	return b.String()
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyEsc:
			m.showQuitModal = false
			return m, nil
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}

	case stateMsg:
		m.gs = state.GameState(msg)
		return m, waitForState(m.updates)
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the city?"))
	content.WriteString("\n\n")
	content.WriteString("Your progress is saved on the way out.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.6) - 2
	metaWidth := m.width - logWidth - 4

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			separatorStyle.Render(strings.Repeat("─", max(0, logWidth-4))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 1).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}
