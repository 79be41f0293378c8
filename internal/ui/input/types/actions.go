package types

import "campushub/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end", "pageup", "pagedown"
}

func (a NavigateAction) Type() string { return "navigate" }

type SwitchPageAction struct {
	Delta int
}

func (a SwitchPageAction) Type() string { return "switch_page" }

type JumpPageAction struct {
	Index int
}

func (a JumpPageAction) Type() string { return "jump_page" }

// Mode actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
	Mode Mode
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Criteria actions
type CycleCategoryAction struct{}

func (a CycleCategoryAction) Type() string { return "cycle_category" }

type CycleBucketAction struct{}

func (a CycleBucketAction) Type() string { return "cycle_bucket" }

type CycleViewAction struct{}

func (a CycleViewAction) Type() string { return "cycle_view" }

type ClearFiltersAction struct{}

func (a ClearFiltersAction) Type() string { return "clear_filters" }

// Entity actions
type MutateAction struct {
	Kind domain.TransitionKind
}

func (a MutateAction) Type() string { return "mutate" }

type ShowDetailAction struct{}

func (a ShowDetailAction) Type() string { return "show_detail" }

// Assistant actions
type ResetChatAction struct{}

func (a ResetChatAction) Type() string { return "reset_chat" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
