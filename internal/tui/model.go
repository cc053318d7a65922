package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/embedding/count"
)

// Model is the Bubble Tea model for the interactive recipe search.
type Model struct {
	ctx       context.Context
	service   domain.RecipeService
	chunker   domain.Chunker
	input     textinput.Model
	viewport  viewport.Model
	results   domain.Results
	summary   string
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a new TUI model. Searches run under ctx; summary is shown
// under the title.
func New(ctx context.Context, service domain.RecipeService, chunker domain.Chunker, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter ingredients (comma-separated) and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	status := "Loaded. Type ingredients to search."
	if !service.Available() {
		status = "Dataset unavailable. Every search will come back empty."
	}
	return Model{ctx: ctx, service: service, chunker: chunker, input: ti, viewport: vp, summary: summary, status: status}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header+summary, status, spacer
		vh := max(3, msg.Height-reserved)
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.ToLower(strings.TrimSpace(m.input.Value()))
			if q != "" {
				m.search(q)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) search(q string) {
	res, err := m.service.Search(m.ctx, q)
	m.cursor = 0
	m.lastQuery = q
	switch {
	case err != nil:
		m.status = "Error: " + err.Error()
		m.results = nil
	case !res.Found():
		m.status = "No recipes found with the given ingredients."
		m.results = nil
	default:
		m.status = fmt.Sprintf("Found %d recipe(s) for %q. Up/down to browse.", len(res), q)
		m.results = res
	}
}

// View renders the layout and the selected result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Recipe Finder")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Recipe %d/%d  similarity=%.2f", m.cursor+1, len(m.results), r.Score)
	name := nameStyle.Render(r.Recipe.Name)
	return title + "\n\n" + name + "\n" + m.highlightPhrases(r.Recipe.IngredientsText)
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	nameStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// highlightPhrases lists the ingredient phrases one per line, highlighting the
// ones that share a token with the last query.
func (m Model) highlightPhrases(text string) string {
	phrases := m.chunker.Chunk(text)
	if len(phrases) == 0 {
		return text
	}
	qTokens := toTokenSet(m.lastQuery)
	lines := make([]string, len(phrases))
	for i, p := range phrases {
		if sharesToken(qTokens, p) {
			lines[i] = "• " + highlightStyle.Render(p)
		} else {
			lines[i] = "• " + p
		}
	}
	return strings.Join(lines, "\n")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := count.Tokenize(s, 1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func sharesToken(queryTokens map[string]struct{}, phrase string) bool {
	for _, t := range count.Tokenize(phrase, 1) {
		if _, ok := queryTokens[t]; ok {
			return true
		}
	}
	return false
}
