package modes

import (
	"github.com/charmbracelet/bubbles/key"

	"campushub/internal/domain"
)

// KeyMap holds the normal-mode bindings. It implements help.KeyMap.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	JumpPage   key.Binding
	Filter     key.Binding
	Threshold  key.Binding
	Category   key.Binding
	Bucket     key.Binding
	View       key.Binding
	Clear      key.Binding
	Detail     key.Binding
	Ask        key.Binding
	Help       key.Binding
	Quit       key.Binding
	Saved      key.Binding
	Registered key.Binding
	Interested key.Binding
	Joined     key.Binding
	Applied    key.Binding
	Connected  key.Binding
}

// DefaultKeyMap is the key map used by the normal mode
var DefaultKeyMap = KeyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Top:        key.NewBinding(key.WithKeys("home"), key.WithHelp("gg/home", "top")),
	Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G/end", "bottom")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	NextPage:   key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next page")),
	PrevPage:   key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab", "prev page")),
	JumpPage:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump to page")),
	Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Threshold:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "threshold")),
	Category:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
	Bucket:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "date")),
	View:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
	Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
	Detail:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Ask:        key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "ask assistant")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Saved:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Registered: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "register")),
	Interested: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "interested")),
	Joined:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "join")),
	Applied:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply")),
	Connected:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "connect")),
}

// MutationKeys pairs each transition with its binding
func (k KeyMap) MutationKeys() []struct {
	Kind    domain.TransitionKind
	Binding key.Binding
} {
	return []struct {
		Kind    domain.TransitionKind
		Binding key.Binding
	}{
		{domain.ToggleSaved, k.Saved},
		{domain.ToggleRegistered, k.Registered},
		{domain.ToggleInterested, k.Interested},
		{domain.ToggleJoined, k.Joined},
		{domain.ToggleApplied, k.Applied},
		{domain.ToggleConnected, k.Connected},
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.Filter, k.Category, k.View, k.Detail, k.Ask, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.NextPage, k.PrevPage, k.JumpPage, k.Detail},
		{k.Filter, k.Threshold, k.Category, k.Bucket, k.View, k.Clear},
		{k.Saved, k.Registered, k.Interested, k.Joined, k.Applied, k.Connected},
		{k.Ask, k.Help, k.Quit},
	}
}
