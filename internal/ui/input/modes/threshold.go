package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"campushub/internal/ui/input/types"
)

// ThresholdMode edits the numeric bound of the current page. An empty
// value removes it.
type ThresholdMode struct {
	TextInputMode
}

func NewThresholdMode(ti *textinput.Model) *ThresholdMode {
	return &ThresholdMode{
		TextInputMode: NewTextInputMode(types.ModeThreshold, "threshold", "Threshold: ", ti),
	}
}
