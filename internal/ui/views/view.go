package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"campushub/internal/campus"
)

// ChatLine is one exchange shown in the assistant popup
type ChatLine struct {
	Question string
	Reply    string
	Err      string
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Tabs           []string
	ActiveTab      int
	PageTitle      string
	NumericLabel   string
	Rows           []campus.Row
	Total          int
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	Criteria       string // summary of the active criteria
	FilterText     string
	View           string
	Toast          string
	StatusMessage  string
	StatusIsError  bool
	ShowHelp       bool
	HelpModel      help.Model
	Keys           help.KeyMap
	InputMode      string
	InputPrompt    string
	TextInput      string
	Chat           []ChatLine
	ChatPending    bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	rowRender   *RowRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showScores bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		rowRender:   NewRowRenderer(styles, showScores),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.InputMode == "ask" {
		return r.popupRender.RenderPopup(r.renderChat(state), state.Height, state.Width, r.styles.InfoBox)
	}
	if state.ShowHelp && state.Keys != nil {
		helpContent := r.styles.Title.Render("campushub help") + "\n\n" + state.HelpModel.FullHelpView(state.Keys.FullHelp())
		return r.popupRender.RenderPopup(helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	content := &strings.Builder{}
	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")
	content.WriteString(r.renderTabs(state))
	content.WriteString("\n\n")

	if state.InputMode != "" {
		content.WriteString(r.styles.Filter.Render(state.InputPrompt))
		content.WriteString(state.TextInput)
		content.WriteString("\n\n")
	}

	heading := fmt.Sprintf("%s · %s · %d of %d", state.PageTitle, state.View, len(state.Rows), state.Total)
	content.WriteString(r.styles.Dim.Render(heading))
	content.WriteString("\n")

	if len(state.Rows) == 0 {
		content.WriteString(r.styles.Dim.Render("Nothing matches. Press x to clear filters."))
	} else {
		content.WriteString(r.renderRows(state))
	}

	footer := r.renderFooter(state)

	// Pad so the footer sits at the bottom
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	footerLines := strings.Count(footer, "\n") + 1
	if padding := availableLines - currentLines - footerLines; padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("campushub")
	if state.Criteria == "" {
		return logo
	}

	rightContent := r.styles.Filter.Render(fmt.Sprintf("[%s]", state.Criteria))
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	return logo + "  " + rightContent
}

func (r *Renderer) renderTabs(state ViewState) string {
	tabs := make([]string, len(state.Tabs))
	for i, tab := range state.Tabs {
		label := fmt.Sprintf("%d %s", i+1, tab)
		if i == state.ActiveTab {
			tabs[i] = r.styles.ActiveTab.Render(label)
		} else {
			tabs[i] = r.styles.Tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderRows renders the visible window of the list with scroll indicators
func (r *Renderer) renderRows(state ViewState) string {
	total := len(state.Rows)
	offset := state.ViewportOffset
	if offset < 0 || offset >= total {
		offset = 0
	}
	height := state.ViewportHeight
	if height <= 0 {
		height = total
	}

	var lines []string
	if offset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset)))
	}

	end := min(offset+height, total)
	for i := offset; i < end; i++ {
		lines = append(lines, r.rowRender.RenderRow(state.Rows[i], i == state.SelectedIndex, state.NumericLabel, state.FilterText, state.Width-4))
	}

	if below := total - end; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderFooter(state ViewState) string {
	var lines []string
	switch {
	case state.StatusMessage != "" && state.StatusIsError:
		lines = append(lines, r.styles.StatusError.Render(state.StatusMessage))
	case state.Toast != "":
		lines = append(lines, r.styles.Toast.Render("● "+state.Toast))
	case state.StatusMessage != "":
		lines = append(lines, r.styles.Status.Render(state.StatusMessage))
	}
	if state.Keys != nil {
		lines = append(lines, state.HelpModel.View(state.Keys))
	} else {
		lines = append(lines, r.styles.Help.Render("Press ? for help"))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderChat(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Campus assistant"))
	b.WriteString("\n\n")

	width := min(max(state.Width-16, 20), 90)
	wrap := lipgloss.NewStyle().Width(width)

	if len(state.Chat) == 0 && !state.ChatPending {
		b.WriteString(r.styles.Dim.Render("Ask about events, clubs, exams, housing or jobs."))
		b.WriteString("\n")
	}
	for _, line := range state.Chat {
		b.WriteString(r.styles.ChatUser.Render("you: "))
		b.WriteString(wrap.Render(line.Question))
		b.WriteString("\n")
		if line.Err != "" {
			b.WriteString(r.styles.StatusError.Render(wrap.Render("error: " + line.Err)))
		} else if line.Reply != "" {
			b.WriteString(r.styles.ChatAssistant.Render(wrap.Render(line.Reply)))
		}
		b.WriteString("\n\n")
	}
	if state.ChatPending {
		b.WriteString(r.styles.Dim.Render("thinking..."))
		b.WriteString("\n\n")
	}

	b.WriteString(r.styles.Filter.Render(state.InputPrompt))
	b.WriteString(state.TextInput)
	b.WriteString("\n\n")
	hint := "enter send • ctrl+l new chat • esc close"
	if state.ChatPending {
		hint = "esc close"
	}
	b.WriteString(r.styles.Help.Render(hint))
	return b.String()
}
