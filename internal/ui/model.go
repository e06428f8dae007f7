// Package ui is the interactive terminal browser for the paper trees.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rcliao/paper-catalog/internal/catalog"
	"github.com/rcliao/paper-catalog/internal/classify"
	"github.com/rcliao/paper-catalog/internal/model"
	"github.com/rcliao/paper-catalog/internal/render"
	"github.com/rcliao/paper-catalog/internal/tree"
)

// Tab selects which tree is shown.
type Tab int

const (
	TabPastPapers Tab = iota
	TabSpecimenPapers
)

func (t Tab) String() string {
	if t == TabSpecimenPapers {
		return "Specimen Papers"
	}
	return "Past Papers"
}

// chrome is the number of lines used by the header and footer.
const chrome = 6

// Model is the bubbletea model of the browser. Every filter, sort or
// search change rebuilds the current tree from the document.
type Model struct {
	doc     *model.Document
	builder *tree.Builder
	options catalog.FilterOptions
	styles  render.Styles

	tab      Tab
	mode     model.SortMode
	filters  model.FilterState
	specimen model.SpecimenFilter

	search    textinput.Model
	searching bool

	past  *tree.Tree[model.Paper]
	specs *tree.Tree[model.SpecimenPaper]

	expanded [2]map[string]bool
	rows     []row
	cursor   int
	offset   int

	width  int
	height int
}

// New returns a browser over doc, starting in the given sort mode.
func New(doc *model.Document, b *tree.Builder, mode model.SortMode, styles render.Styles) Model {
	if b == nil {
		b = tree.NewBuilder(nil)
	}
	if mode == "" {
		mode = model.SortByYear
	}

	ti := textinput.New()
	ti.Placeholder = "Search papers..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40

	m := Model{
		doc:      doc,
		builder:  b,
		options:  catalog.Options(doc),
		styles:   styles,
		mode:     mode,
		search:   ti,
		expanded: [2]map[string]bool{{}, {}},
	}
	m.rebuild()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setSearch(m.search.Value())
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.tab = (m.tab + 1) % 2
		m.search.SetValue(m.searchText())
		m.cursor, m.offset = 0, 0
		m.rebuild()

	case "/":
		m.searching = true
		return m, m.search.Focus()

	case "esc":
		m.search.SetValue("")
		m.setSearch("")

	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "home":
		m.move(-len(m.rows))
	case "end":
		m.move(len(m.rows))

	case "enter", " ":
		m.toggle()
	case "right":
		m.setOpen(true)
	case "left":
		m.setOpen(false)
	case "e":
		m.expandAll()
	case "x":
		m.expanded[m.tab] = map[string]bool{}
		m.rebuild()

	case "s":
		if m.tab == TabPastPapers {
			if m.mode == model.SortByYear {
				m.mode = model.SortBySubject
			} else {
				m.mode = model.SortByYear
			}
			m.expanded[m.tab] = map[string]bool{}
			m.cursor, m.offset = 0, 0
			m.rebuild()
		}

	case "y", "u", "l", "z", "p", "t", "g":
		m.cycleFilter(msg.String())
	case "c":
		m.filters = model.FilterState{Search: m.filters.Search}
		m.specimen = model.SpecimenFilter{Search: m.specimen.Search}
		m.rebuild()
	}
	return m, nil
}

func (m *Model) cycleFilter(key string) {
	if m.tab == TabSpecimenPapers {
		if key == "g" {
			m.specimen.Group = cycle(m.options.SpecimenGroups, m.specimen.Group)
			m.rebuild()
		}
		return
	}

	f := &m.filters
	switch key {
	case "y":
		f.Year = cycle(m.options.Years, f.Year)
	case "u":
		f.Subject = cycle(catalog.Values(m.options.Subjects), f.Subject)
	case "l":
		f.Level = cycle(catalog.Values(m.options.Levels), f.Level)
	case "z":
		f.Timezone = cycle(catalog.Values(m.options.Timezones), f.Timezone)
	case "p":
		f.PaperNumber = cycle(catalog.Values(m.options.PaperNumbers), f.PaperNumber)
	case "t":
		f.Type = cycle(catalog.Values(m.options.Types), f.Type)
	default:
		return
	}
	m.rebuild()
}

func (m *Model) searchText() string {
	if m.tab == TabSpecimenPapers {
		return m.specimen.Search
	}
	return m.filters.Search
}

func (m *Model) setSearch(s string) {
	if m.tab == TabSpecimenPapers {
		m.specimen.Search = s
	} else {
		m.filters.Search = s
	}
	m.rebuild()
}

// rebuild builds the current tab's tree from scratch and re-flattens it.
func (m *Model) rebuild() {
	expanded := m.expanded[m.tab]
	if m.tab == TabSpecimenPapers {
		m.specs = m.builder.BuildSpecimen(m.doc.SpecimenPapers, m.specimen)
		m.rows = flatten(m.specs, expanded, render.SpecimenCount, func(sp model.SpecimenPaper) (string, string) {
			return sp.Name, render.SpecimenLink(sp)
		})
	} else {
		m.past = m.builder.BuildPastPapers(m.doc.PastPapers, m.filters, m.mode)
		m.rows = flatten(m.past, expanded, render.PastPaperCount, func(p model.Paper) (string, string) {
			return paperLabel(p), render.PaperLink(p)
		})
	}
	m.clamp()
}

func paperLabel(p model.Paper) string {
	tags := render.PaperTags(p)
	if len(tags) == 0 {
		return render.PaperTitle(p)
	}
	return render.PaperTitle(p) + "  " + strings.Join(tags, " ")
}

func (m *Model) expandAll() {
	var paths []string
	if m.tab == TabSpecimenPapers {
		paths = folderPaths(m.specs)
	} else {
		paths = folderPaths(m.past)
	}
	for _, p := range paths {
		m.expanded[m.tab][p] = true
	}
	m.rebuild()
}

func (m *Model) toggle() {
	r, ok := m.selected()
	if !ok || !r.folder {
		return
	}
	m.setOpenPath(r.path, !m.expanded[m.tab][r.path])
}

func (m *Model) setOpen(open bool) {
	r, ok := m.selected()
	if !ok {
		return
	}
	if !r.folder {
		if open {
			return
		}
		// collapse the folder holding the paper and move onto it
		for i := m.cursor; i >= 0; i-- {
			if m.rows[i].folder && m.rows[i].path == r.path {
				m.cursor = i
				break
			}
		}
	}
	m.setOpenPath(r.path, open)
}

func (m *Model) setOpenPath(path string, open bool) {
	if open {
		m.expanded[m.tab][path] = true
	} else {
		delete(m.expanded[m.tab], path)
	}
	m.rebuild()
}

func (m *Model) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clamp()
}

func (m *Model) clamp() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	visible := m.visibleRows()
	if visible <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m Model) visibleRows() int {
	if m.height == 0 {
		return 0
	}
	if n := m.height - chrome; n > 0 {
		return n
	}
	return 1
}

func (m Model) View() string {
	var b strings.Builder
	st := m.styles

	var tabs []string
	for _, t := range []Tab{TabPastPapers, TabSpecimenPapers} {
		if t == m.tab {
			tabs = append(tabs, st.Selected.Render("["+t.String()+"]"))
		} else {
			tabs = append(tabs, " "+t.String()+" ")
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")
	b.WriteString(st.Count.Render(m.status()))
	b.WriteString("\n")
	if m.searching || m.searchText() != "" {
		b.WriteString(m.search.View())
	}
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		msg := render.NoPapers
		if m.tab == TabSpecimenPapers {
			msg = render.NoSpecimenPapers
		}
		b.WriteString(st.Empty.Render(msg))
		b.WriteString("\n")
	}

	start, end := 0, len(m.rows)
	if v := m.visibleRows(); v > 0 {
		start = m.offset
		if end > start+v {
			end = start + v
		}
	}
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(st.Count.Render(m.footer()))
	return b.String()
}

func (m Model) renderRow(r row, selected bool) string {
	st := m.styles
	indent := strings.Repeat("  ", r.depth)

	var line string
	if r.folder {
		icon := "▸"
		if m.expanded[m.tab][r.path] {
			icon = "▾"
		}
		line = icon + " " + st.Folder.Render(r.label) + " " + st.Count.Render(r.count)
	} else {
		line = "  " + st.Item.Render(r.label)
	}

	cursor := "  "
	if selected {
		cursor = st.Selected.Render("> ")
	}
	return cursor + indent + line
}

func (m Model) status() string {
	if m.tab == TabSpecimenPapers {
		return "group: " + orAny(m.specimen.Group)
	}
	f := m.filters
	subject := "any"
	if f.Subject != "" {
		subject = classify.FormatLabel(f.Subject)
	}
	return fmt.Sprintf("sort: %s  year: %s  subject: %s  level: %s  tz: %s  paper: %s  type: %s",
		m.mode, orAny(f.Year), subject, orAny(f.Level), orAny(f.Timezone), orAny(f.PaperNumber), orAny(f.Type))
}

func (m Model) footer() string {
	if r, ok := m.selected(); ok && !r.folder {
		return r.link
	}
	if m.tab == TabSpecimenPapers {
		return "tab switch · enter open · / search · g group · c clear · e/x expand/collapse all · q quit"
	}
	return "tab switch · enter open · / search · s sort · y u l z p t filters · c clear · e/x expand/collapse all · q quit"
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

// Run starts the browser on the terminal.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

var _ tea.Model = Model{}
