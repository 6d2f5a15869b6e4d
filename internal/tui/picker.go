package tui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	titleStyle        = AccentTextStyle.MarginLeft(2)
	itemStyle         = AltTextStyle.PaddingLeft(4)
	selectedItemStyle = AccentTextStyle.PaddingLeft(2)
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
)

// NewPicker builds the command palette: every command the terminal understands,
// ready to be submitted with enter.
func NewPicker(values []string) Picker {
	items := []list.Item{}
	minWidth := 9
	for _, command := range values {
		c := utf8.RuneCountInString(command) + 4
		if c > minWidth {
			minWidth = c
		}

		items = append(items, item(command))
	}
	minHeight := len(items) + 4

	l := list.New(items, itemDelegate{}, minWidth, minHeight)
	l.Title = "Commands"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle

	return Picker{
		List:      l,
		minWidth:  minWidth,
		minHeight: minHeight,
	}
}

type Picker struct {
	List list.Model

	minWidth  int
	minHeight int
}

// Resize shrinks the list to fit the window, growing back to its natural size when there is room.
func (p *Picker) Resize(width int, height int) {
	if width < p.minWidth {
		p.List.SetWidth(width)
	} else {
		p.List.SetWidth(p.minWidth)
	}

	if height < p.minHeight {
		p.List.SetHeight(max(1, height))
	} else {
		p.List.SetHeight(p.minHeight)
	}
}

// Selected returns the highlighted command.
func (p Picker) Selected() (string, bool) {
	i, ok := p.List.SelectedItem().(item)
	return string(i), ok
}

type item string

func (i item) FilterValue() string { return string(i) }

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(string(i)))
}
