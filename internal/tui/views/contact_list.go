package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/easekit/internal/chat"
	"github.com/matheus3301/easekit/internal/rpc"
	"github.com/matheus3301/easekit/internal/tui/ui"
	"github.com/rivo/tview"
)

// ContactList shows contacts grouped under their initial letter.
type ContactList struct {
	*tview.Table
	theme    *ui.Theme
	sections []rpc.Section
	rows     map[int]chat.Contact
	filter   string
}

// NewContactList creates a new contact table.
func NewContactList(theme *ui.Theme) *ContactList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitleColor(theme.TitleColor)

	cl := &ContactList{Table: table, theme: theme}
	cl.render()
	return cl
}

// Name implements ui.Component.
func (cl *ContactList) Name() string { return "contacts" }

// Hints implements ui.Component.
func (cl *ContactList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Card"},
		{Key: "/", Description: "Filter"},
	}
}

// Update refreshes the list with new sections.
func (cl *ContactList) Update(sections []rpc.Section) {
	cl.sections = sections
	cl.render()
}

// SetFilter restricts the list to contacts whose name contains filter.
func (cl *ContactList) SetFilter(filter string) {
	cl.filter = filter
	cl.render()
}

func (cl *ContactList) render() {
	cl.Clear()
	cl.rows = make(map[int]chat.Contact)

	row, total := 0, 0
	for _, sec := range cl.sections {
		header := false
		for _, c := range sec.Contacts {
			name := c.DisplayName()
			if cl.filter != "" && !containsFold(name, cl.filter) && !containsFold(c.Username, cl.filter) {
				continue
			}
			if !header {
				cl.SetCell(row, 0, tview.NewTableCell(" "+sec.Letter).
					SetSelectable(false).
					SetTextColor(cl.theme.SectionColor).
					SetAttributes(tcell.AttrBold))
				cl.SetCell(row, 1, tview.NewTableCell("").SetSelectable(false))
				row++
				header = true
			}
			cl.rows[row] = c
			cl.SetCell(row, 0, tview.NewTableCell("   "+cellText(name)).SetExpansion(1).SetTextColor(cl.theme.FgColor))
			cl.SetCell(row, 1, tview.NewTableCell(tview.Escape(c.Username)+" ").SetTextColor(cl.theme.FgColor).SetAlign(tview.AlignRight))
			row++
			total++
		}
	}

	cl.SetTitle(fmt.Sprintf(" Contacts (%d) ", total))
	// Skip the first section header so the cursor lands on a contact.
	if total > 0 {
		cl.Select(1, 0)
	}
}

// Selected returns the contact under the cursor.
func (cl *ContactList) Selected() (chat.Contact, bool) {
	row, _ := cl.GetSelection()
	c, ok := cl.rows[row]
	return c, ok
}
