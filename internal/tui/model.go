package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"loci/internal/domain"
	"loci/internal/locus"
	"loci/internal/service"
)

// LociPort is the TUI-facing subset of the loci service.
type LociPort interface {
	Locate(citation string, window int) (service.Result, error)
}

// hit is one speech in the result list and why it matched.
type hit struct {
	speech domain.Speech
	intro  bool
}

// Model is the Bubble Tea model for the locus browser.
type Model struct {
	service  LociPort
	window   int
	input    textinput.Model
	viewport viewport.Model
	hits     []hit
	locus    string
	summary  string
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model instance.
func New(service LociPort, window int, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Citation (e.g. Book 3 line 45 or 3.45) and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, window: window, input: ti, viewport: vp, summary: summary, status: "Loaded. Type a citation."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header and summary, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrent())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m = m.locate(q)
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		case "down":
			if len(m.hits) > 0 {
				m.cursor = (m.cursor + 1) % len(m.hits)
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		case "up":
			if len(m.hits) > 0 {
				m.cursor = (m.cursor - 1 + len(m.hits)) % len(m.hits)
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) locate(q string) Model {
	res, err := m.service.Locate(q, m.window)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.hits = nil
		m.locus = ""
		return m
	}
	m.hits = nil
	for _, s := range res.Containing {
		m.hits = append(m.hits, hit{speech: s})
	}
	for _, s := range res.Introducing {
		m.hits = append(m.hits, hit{speech: s, intro: true})
	}
	m.cursor = 0
	m.locus = res.Locus
	m.status = fmt.Sprintf("%s: %d containing, %d introduced", res.Locus, len(res.Containing), len(res.Introducing))
	return m
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Loci Browser")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrent() string {
	if len(m.hits) == 0 {
		return "No speeches yet."
	}
	h := m.hits[m.cursor]
	kind := "contains"
	if h.intro {
		kind = "introduced by"
	}
	title := fmt.Sprintf("Speech %d/%d  %s %s  [%s] %s (%s-%s)",
		m.cursor+1, len(m.hits), kind, m.locus,
		h.speech.ID(), h.speech.Speaker(), h.speech.FirstLine(), h.speech.LastLine())
	return title + "\n\n" + renderLines(h.speech.Lines(), m.locus)
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	numberStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderLines prints the line array, highlighting the line whose number
// equals the last unit of loc.
func renderLines(lines domain.LineArray, loc string) string {
	if len(lines) == 0 {
		return "(no line array)"
	}
	units := locus.Units(loc)
	target := units[len(units)-1]
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(numberStyle.Render(fmt.Sprintf("%5s ", l.N)))
		if l.N == target {
			sb.WriteString(highlightStyle.Render(l.Text))
		} else {
			sb.WriteString(l.Text)
		}
	}
	return sb.String()
}
