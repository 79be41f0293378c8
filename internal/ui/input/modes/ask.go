package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"campushub/internal/ui/input/types"
)

// AskMode is the assistant chat. Enter sends the line and stays in the
// mode so the conversation can continue.
type AskMode struct {
	TextInputMode
}

func NewAskMode(ti *textinput.Model) *AskMode {
	return &AskMode{
		TextInputMode: NewTextInputMode(types.ModeAsk, "ask", "Ask: ", ti),
	}
}

func (m *AskMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.value())
		if text == "" {
			return nil, true
		}
		m.textInput.Reset()
		return []types.Action{types.SubmitTextAction{Text: text, Mode: types.ModeAsk}}, true
	case "ctrl+l":
		return []types.Action{types.ResetChatAction{}}, true
	default:
		return m.TextInputMode.HandleKey(msg, ctx)
	}
}
