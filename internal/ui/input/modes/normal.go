package modes

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"campushub/internal/ui/input/types"
)

type NormalMode struct {
	keys        KeyMap
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{keys: DefaultKeyMap}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	// gg goes to the top when pressed within the timeout
	if msg.String() == "g" {
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true
	}
	m.lastKeyWasG = false

	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, k.Top):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case key.Matches(msg, k.Bottom):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case key.Matches(msg, k.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case key.Matches(msg, k.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case key.Matches(msg, k.NextPage):
		return []types.Action{types.SwitchPageAction{Delta: 1}}, true
	case key.Matches(msg, k.PrevPage):
		return []types.Action{types.SwitchPageAction{Delta: -1}}, true
	case key.Matches(msg, k.JumpPage):
		index := int(msg.String()[0] - '1')
		if index >= ctx.PageCount() {
			return nil, true
		}
		return []types.Action{types.JumpPageAction{Index: index}}, true

	case key.Matches(msg, k.Filter):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter, Data: ctx.FilterText()}}, true
	case key.Matches(msg, k.Threshold):
		if !ctx.HasThreshold() {
			return nil, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeThreshold, Data: ctx.ThresholdText()}}, true
	case key.Matches(msg, k.Category):
		return []types.Action{types.CycleCategoryAction{}}, true
	case key.Matches(msg, k.Bucket):
		return []types.Action{types.CycleBucketAction{}}, true
	case key.Matches(msg, k.View):
		return []types.Action{types.CycleViewAction{}}, true
	case key.Matches(msg, k.Clear):
		return []types.Action{types.ClearFiltersAction{}}, true

	case key.Matches(msg, k.Detail):
		if ctx.CurrentEntityID() == "" {
			return nil, true
		}
		return []types.Action{types.ShowDetailAction{}}, true
	case key.Matches(msg, k.Ask):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeAsk}}, true
	case key.Matches(msg, k.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	for _, mk := range k.MutationKeys() {
		if !key.Matches(msg, mk.Binding) {
			continue
		}
		// Consume the key even when the page has no such transition
		if ctx.CurrentEntityID() == "" || !ctx.Supports(mk.Kind) {
			return nil, true
		}
		return []types.Action{types.MutateAction{Kind: mk.Kind}}, true
	}

	return nil, false
}
