package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"campushub/internal/ui/input/types"
)

// FilterMode edits the free-text criterion. The handler reports every
// keystroke, so the list narrows while typing; esc clears the text.
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", "Filter: ", ti),
	}
}
