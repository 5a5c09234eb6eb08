package cli

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every TUI key binding. Views pick the subset they show in
// the help bar.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Open   key.Binding
	Back   key.Binding
	Quit   key.Binding
	Reload key.Binding

	Search  key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Confirm key.Binding

	MovePrev        key.Binding
	MoveNext        key.Binding
	Complete        key.Binding
	AddTask         key.Binding
	TaskHistory     key.Binding
	StrategyHistory key.Binding
	EditStrategy    key.Binding
	EditMarkdown    key.Binding
	ViewMarkdown    key.Binding
	AddSubProject   key.Binding
	Parent          key.Binding
	EditProject     key.Binding

	Save key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "column")),
		Right:  key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "column")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),

		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new project")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),

		MovePrev:        key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "move ←")),
		MoveNext:        key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "move →")),
		Complete:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		AddTask:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		TaskHistory:     key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "history")),
		StrategyHistory: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "strategy log")),
		EditStrategy:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "strategy")),
		EditMarkdown:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "markdown")),
		ViewMarkdown:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "read markdown")),
		AddSubProject:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sub-project")),
		Parent:          key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "parent")),
		EditProject:     key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "edit project")),

		Save: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	}
}

func (k keyMap) dashboardHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Search, k.New, k.Edit, k.Delete, k.Reload, k.Quit}
}

func (k keyMap) detailHelp() []key.Binding {
	return []key.Binding{
		k.Left, k.Right, k.MovePrev, k.MoveNext, k.Complete, k.AddTask, k.Edit, k.Delete,
		k.TaskHistory, k.StrategyHistory, k.EditStrategy, k.EditMarkdown, k.ViewMarkdown, k.AddSubProject,
		k.Parent, k.EditProject, k.Back,
	}
}

func (k keyMap) editorHelp() []key.Binding {
	return []key.Binding{k.Save, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))}
}

func (k keyMap) historyHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close"))}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
