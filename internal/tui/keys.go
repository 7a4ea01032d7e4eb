package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextScenario key.Binding
	PrevScenario key.Binding
	Summary      key.Binding
	Records      key.Binding
	Forward      key.Binding
	Chart        key.Binding
	ChartMetric  key.Binding
	Up           key.Binding
	Down         key.Binding
	Reload       key.Binding
	Back         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextScenario: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next scenario")),
		PrevScenario: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab/←", "prev scenario")),
		Summary:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "summary")),
		Records:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "records")),
		Forward:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forward")),
		Chart:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chart")),
		ChartMetric:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "chart metric")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Reload:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload files")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextScenario, k.Summary, k.Records, k.Forward, k.Chart, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextScenario, k.PrevScenario, k.Up, k.Down},
		{k.Summary, k.Records, k.Forward, k.Chart},
		{k.ChartMetric, k.Reload, k.Back, k.Help, k.Quit},
	}
}
