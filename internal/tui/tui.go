// Package tui is the interactive terminal front end. It turns key presses
// into router events and redraws from the store after each one.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/router"
	"github.com/idilsaglam/shoplist/internal/store"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeSearch
)

// snapshot is what View needs from the store, copied under the router lock.
type snapshot struct {
	visible          []model.Item
	checked, pending int
	total            int
	hideCompleted    bool
	search           string
}

type Model struct {
	router *router.Router
	keys   keyMap
	help   help.Model
	input  textinput.Model

	mode   mode
	cursor int
	editID string // item being edited in modeEdit
	errMsg string

	width, height int
	snap          snapshot
}

// New builds the model over r.
func New(r *router.Router) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		router: r,
		keys:   defaultKeys(),
		help:   help.New(),
		input:  ti,
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(r *router.Router) error {
	p := tea.NewProgram(New(r), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) refresh() {
	m.router.Read(func(s *store.Store) {
		checked, pending := s.Stats()
		m.snap = snapshot{
			visible:       store.VisibleItems(s),
			checked:       checked,
			pending:       pending,
			total:         s.Len(),
			hideCompleted: s.HideCompleted(),
			search:        s.SearchWord(),
		}
	})
	if m.cursor >= len(m.snap.visible) {
		m.cursor = len(m.snap.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) dispatch(ev router.Event) error {
	err := m.router.Dispatch(ev)
	m.refresh()
	return err
}

// focusNewest puts the cursor on the item the last add inserted, when it
// passes the current filters.
func (m *Model) focusNewest() {
	var newest string
	m.router.Read(func(s *store.Store) {
		items := s.Items()
		if len(items) == 0 {
			return
		}
		if s.InsertPosition() == store.InsertBack {
			newest = items[len(items)-1].ID
		} else {
			newest = items[0].ID
		}
	})
	for i, it := range m.snap.visible {
		if it.ID == newest {
			m.cursor = i
			return
		}
	}
}

func (m Model) selected() (model.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.visible) {
		return model.Item{}, false
	}
	return m.snap.visible[m.cursor], true
}

func (m *Model) openInput(md mode, value, placeholder string) tea.Cmd {
	m.mode = md
	m.errMsg = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.editID = ""
	m.errMsg = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Interrupt):
		if m.mode == modeEdit {
			_ = m.dispatch(router.Event{Kind: router.EditCancel, ID: m.editID})
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		value := m.input.Value()
		var err error
		switch m.mode {
		case modeAdd:
			err = m.dispatch(router.Event{Kind: router.Add, Text: value})
			if err == nil {
				m.focusNewest()
			}
		case modeEdit:
			err = m.dispatch(router.Event{Kind: router.EditSave, ID: m.editID, Text: value})
		case modeSearch:
			err = m.dispatch(router.Event{Kind: router.Search, Text: value})
		}
		if err != nil {
			m.errMsg = describe(err)
			return m, nil
		}
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.mode == modeEdit {
			_ = m.dispatch(router.Event{Kind: router.EditCancel, ID: m.editID})
		}
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snap.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		return m, m.openInput(modeAdd, "", "New item name...")
	case key.Matches(msg, m.keys.Search):
		return m, m.openInput(modeSearch, m.snap.search, "Search...")
	case key.Matches(msg, m.keys.Clear):
		_ = m.dispatch(router.Event{Kind: router.ClearSearch})
	case key.Matches(msg, m.keys.Hide):
		_ = m.dispatch(router.Event{Kind: router.ToggleHideCompleted})
	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.selected(); ok {
			if err := m.dispatch(router.Event{Kind: router.Toggle, ID: it.ID}); err != nil {
				m.errMsg = describe(err)
			}
		}
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selected(); ok {
			_ = m.dispatch(router.Event{Kind: router.Delete, ID: it.ID})
		}
	case key.Matches(msg, m.keys.Edit):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		// EditStart toggles, so skip it when another front end already opened this item.
		if !it.IsEditing {
			if err := m.dispatch(router.Event{Kind: router.EditStart, ID: it.ID}); err != nil {
				m.errMsg = describe(err)
				return m, nil
			}
		}
		m.editID = it.ID
		cmd := m.openInput(modeEdit, it.Name, "Edit item name...")
		return m, cmd
	}
	return m, nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		return "Name cannot be empty"
	case errors.Is(err, store.ErrNotFound):
		return "Item no longer exists"
	}
	return err.Error()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(m.listView())

	if m.mode == modeAdd || m.mode == modeSearch {
		title := "Add new item"
		if m.mode == modeSearch {
			title = "Search"
		}
		b.WriteString("\n\n")
		b.WriteString(m.inputBar(title, m.input.View()))
	}
	if m.mode == modeEdit && m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}

	b.WriteString("\n\n")
	if m.mode == modeList {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(m.help.View(inputHelp{m.keys}))
	}

	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return panelStyle.Width(w).Render(b.String())
}

func (m Model) header() string {
	h := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Shopping list"),
		successStyle.Render("✔"), m.snap.checked,
		pendingStyle.Render("•"), m.snap.pending,
		accentStyle.Render("Total"), m.snap.total,
	)
	var filters []string
	if m.snap.hideCompleted {
		filters = append(filters, "hiding checked")
	}
	if m.snap.search != "" {
		filters = append(filters, fmt.Sprintf("search %q", m.snap.search))
	}
	if len(filters) > 0 {
		h += "\n" + mutedStyle.Render("filter: "+strings.Join(filters, ", "))
	}
	return h
}

func (m Model) listView() string {
	if len(m.snap.visible) == 0 {
		return mutedStyle.Render("no items")
	}
	lines := make([]string, 0, len(m.snap.visible))
	for i, it := range m.snap.visible {
		prefix := "  "
		if i == m.cursor {
			prefix = selectedStyle.Render(">") + " "
		}
		if m.mode == modeEdit && it.ID == m.editID {
			lines = append(lines, prefix+m.input.View())
			continue
		}
		box, name := mutedStyle.Render(boxUnchecked), it.Name
		if it.Checked {
			box, name = successStyle.Render(boxChecked), checkedStyle.Render(it.Name)
		}
		lines = append(lines, prefix+box+" "+name)
	}
	return strings.Join(lines, "\n")
}

func (m Model) inputBar(title, input string) string {
	if m.errMsg != "" {
		title += " - " + errorStyle.Render(m.errMsg)
	}
	bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	return bar.Render(title + "\n" + input)
}
