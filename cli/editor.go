package cli

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/yllada/chatdock/common"
	"github.com/yllada/chatdock/prefs"
)

// valueStore is the part of prefs.Store the editor writes through.
type valueStore interface {
	SetValue(ctx context.Context, key, value string) error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3584e4"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e01b24"))
	statusStyle = lipgloss.NewStyle().Padding(0, 2)
)

var changeKey = key.NewBinding(
	key.WithKeys("enter", " "),
	key.WithHelp("enter", "change"),
)

var prefLabels = map[string]string{
	prefs.KeyTheme:           "Theme",
	prefs.KeyShortcutEnabled: "Global shortcut",
	prefs.KeyShortcutKey:     "Shortcut keys",
	prefs.KeyAlwaysOnTop:     "Always on top",
}

type prefItem struct {
	key   string
	value string
}

func (i prefItem) Title() string       { return prefLabels[i.key] }
func (i prefItem) Description() string { return i.key + " = " + i.value }
func (i prefItem) FilterValue() string { return i.key }

type editorModel struct {
	ctx    context.Context
	store  valueStore
	list   list.Model
	status string
	err    error
}

func newEditorModel(ctx context.Context, store valueStore, p prefs.Preferences) editorModel {
	items := lo.Map(prefs.Keys, func(k string, _ int) list.Item {
		value, _ := p.Encode(k)
		return prefItem{key: k, value: value}
	})

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = common.AppName + " preferences"
	l.Styles.Title = titleStyle
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{changeKey} }

	return editorModel{ctx: ctx, store: store, list: l}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, changeKey) {
			return m.change()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// change advances the selected preference to its next value and saves it.
func (m editorModel) change() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(prefItem)
	if !ok {
		return m, nil
	}

	next := nextValue(item.key, item.value)
	if err := m.store.SetValue(m.ctx, item.key, next); err != nil {
		m.err = err
		m.status = ""
		return m, nil
	}

	item.value = next
	m.err = nil
	m.status = "Saved " + item.key + " = " + next
	return m, m.list.SetItem(m.list.Index(), item)
}

func (m editorModel) View() string {
	footer := m.status
	if m.err != nil {
		footer = errorStyle.Render(m.err.Error())
	}
	return m.list.View() + "\n" + statusStyle.Render(footer)
}

// nextValue cycles through the values a key accepts.
func nextValue(k, value string) string {
	switch k {
	case prefs.KeyTheme:
		if value == common.ThemeDark {
			return common.ThemeLight
		}
		return common.ThemeDark
	case prefs.KeyShortcutKey:
		idx := lo.IndexOf(common.SupportedShortcuts, value)
		return common.SupportedShortcuts[(idx+1)%len(common.SupportedShortcuts)]
	default:
		b, _ := strconv.ParseBool(value)
		return strconv.FormatBool(!b)
	}
}

func runEditor(ctx context.Context, store *prefs.Store) error {
	p, err := store.Load(ctx)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(newEditorModel(ctx, store, p), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
