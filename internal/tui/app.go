package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/easekit/internal/rpc"
	"github.com/matheus3301/easekit/internal/tui/client"
	"github.com/matheus3301/easekit/internal/tui/keys"
	"github.com/matheus3301/easekit/internal/tui/model"
	"github.com/matheus3301/easekit/internal/tui/ui"
	"github.com/matheus3301/easekit/internal/tui/views"
	"github.com/rivo/tview"
)

const (
	pageConversations = "conversations"
	pageMessages      = "messages"
	pageContacts      = "contacts"
	pageCard          = "card"
	pageDevice        = "device"
)

// App is the main TUI application shell.
type App struct {
	app       *tview.Application
	pages     *tview.Pages
	layout    *tview.Flex
	vm        *model.ViewModel
	registry  *keys.Registry
	theme     *ui.Theme
	prompt    *ui.Prompt
	statusBar *views.StatusBar
	convList  *views.ConversationList
	msgView   *views.MessageView
	contacts  *views.ContactList
	card      *views.ContactCard
	device    *views.DeviceView
	pageViews map[string]ui.Component
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(c *client.Client, profileName string) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()

	a := &App{
		app:       tview.NewApplication(),
		pages:     tview.NewPages(),
		vm:        model.NewViewModel(c),
		registry:  keys.NewRegistry(),
		theme:     theme,
		prompt:    ui.NewPrompt(theme),
		statusBar: views.NewStatusBar(theme),
		convList:  views.NewConversationList(theme),
		msgView:   views.NewMessageView(theme),
		contacts:  views.NewContactList(theme),
		card:      views.NewContactCard(theme),
		device:    views.NewDeviceView(theme),
		ctx:       ctx,
		cancel:    cancel,
	}
	a.pageViews = map[string]ui.Component{
		pageConversations: a.convList,
		pageMessages:      a.msgView,
		pageContacts:      a.contacts,
		pageCard:          a.card,
		pageDevice:        a.device,
	}

	a.statusBar.SetProfile(profileName)
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal("quit", &keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "Quit", Visible: true,
		Handler: func() { a.Stop() },
	})
	a.registry.AddGlobal("command", &keys.Action{
		Rune: ':', Key: tcell.KeyRune,
		Description: "Command", Visible: true,
		Handler: func() { a.showPrompt(ui.PromptCommand) },
	})
	a.registry.AddGlobal("conversations", &keys.Action{
		Rune: '1', Key: tcell.KeyRune,
		Description: "Conversations",
		Handler:     func() { a.switchTo(pageConversations) },
	})
	a.registry.AddGlobal("contacts", &keys.Action{
		Rune: '2', Key: tcell.KeyRune,
		Description: "Contacts",
		Handler:     func() { a.switchTo(pageContacts) },
	})
	a.registry.AddGlobal("device", &keys.Action{
		Rune: '3', Key: tcell.KeyRune,
		Description: "Device",
		Handler:     func() { a.switchTo(pageDevice) },
	})

	a.registry.AddView(pageConversations, "filter", &keys.Action{
		Rune: '/', Key: tcell.KeyRune,
		Handler: func() { a.showPrompt(ui.PromptFilter) },
	})
	a.registry.AddView(pageConversations, "read", &keys.Action{
		Rune: 'r', Key: tcell.KeyRune,
		Handler: func() {
			if c, ok := a.convList.Selected(); ok {
				a.markRead(c.ID)
			}
		},
	})
	a.registry.AddView(pageContacts, "filter", &keys.Action{
		Rune: '/', Key: tcell.KeyRune,
		Handler: func() { a.showPrompt(ui.PromptFilter) },
	})
}

func (a *App) setupCallbacks() {
	a.convList.SetSelectedFunc(func(_, _ int) {
		if c, ok := a.convList.Selected(); ok {
			a.openConversation(c)
		}
	})

	a.contacts.SetSelectedFunc(func(_, _ int) {
		if c, ok := a.contacts.Selected(); ok {
			a.card.Show(c)
			a.switchTo(pageCard)
		}
	})

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptFilter:
			a.applyFilter(text)
		case ui.PromptCommand:
			a.runCommand(ParseCommand(text))
		}
	})
	a.prompt.SetOnCancel(a.hidePrompt)
}

func (a *App) setupLayout() {
	for name, p := range a.pageViews {
		a.pages.AddPage(name, p.(tview.Primitive), true, name == pageConversations)
	}

	a.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(a.layout, true)
	a.statusBar.SetHints(a.hints(pageConversations))

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Let text input widgets handle all keys normally.
		if _, ok := a.app.GetFocus().(*tview.InputField); ok {
			return event
		}

		current, _ := a.pages.GetFrontPage()
		if event.Key() == tcell.KeyEscape {
			switch current {
			case pageMessages:
				a.switchTo(pageConversations)
				return nil
			case pageCard:
				a.switchTo(pageContacts)
				return nil
			case pageDevice, pageContacts:
				a.switchTo(pageConversations)
				return nil
			}
		}

		if a.registry.HandleEvent(current, event) {
			return nil
		}
		return event
	})
}

func (a *App) switchTo(page string) {
	a.pages.SwitchToPage(page)
	if p, ok := a.pageViews[page]; ok {
		a.app.SetFocus(p.(tview.Primitive))
		a.statusBar.SetHints(a.hints(page))
	}
	switch page {
	case pageContacts:
		a.refreshContacts()
	case pageDevice:
		a.refreshDevice()
	}
}

// hints lists the page's own hints followed by the registered key bindings.
func (a *App) hints(page string) []ui.MenuHint {
	var hints []ui.MenuHint
	if p, ok := a.pageViews[page]; ok {
		hints = append(hints, p.Hints()...)
	}
	return append(hints, a.registry.Hints(page)...)
}

func (a *App) showPrompt(mode ui.PromptMode) {
	a.vm.Flash.Clear()
	a.statusBar.SetFlash("")
	a.prompt.Activate(mode)
	a.layout.RemoveItem(a.statusBar)
	a.layout.AddItem(a.prompt, 3, 0, true)
	a.layout.AddItem(a.statusBar, 1, 0, false)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.layout.RemoveItem(a.prompt)
	current, _ := a.pages.GetFrontPage()
	if p, ok := a.pageViews[current]; ok {
		a.app.SetFocus(p.(tview.Primitive))
	}
}

func (a *App) applyFilter(text string) {
	current, _ := a.pages.GetFrontPage()
	switch current {
	case pageConversations:
		a.convList.SetFilter(text)
	case pageContacts:
		a.contacts.SetFilter(text)
	}
}

func (a *App) runCommand(cmd Command) {
	if page, ok := cmd.Page(); ok {
		a.switchTo(page)
		return
	}
	switch cmd.Name {
	case "q", "quit":
		a.Stop()
	case "dip", "sp":
		v, err := cmd.Value()
		if err != nil {
			a.flash(err.Error())
			return
		}
		go func() {
			px, err := a.vm.Convert(a.ctx, cmd.Name, v)
			if err != nil {
				a.flashAsync("Convert failed: " + err.Error())
				return
			}
			a.flashAsync(fmt.Sprintf("%g%s = %gpx", v, cmd.Name, px))
		}()
	case "letter":
		go func() {
			l, err := a.vm.InitialLetter(a.ctx, cmd.Args)
			if err != nil {
				a.flashAsync("Letter failed: " + err.Error())
				return
			}
			a.flashAsync(fmt.Sprintf("%q files under %s", cmd.Args, l))
		}()
	default:
		a.flash("unknown command: " + cmd.Name)
	}
}

func (a *App) flash(msg string) {
	a.vm.Flash.Show(msg)
	a.statusBar.SetFlash(a.vm.Flash.Get())
}

func (a *App) flashAsync(msg string) {
	a.vm.Flash.Show(msg)
	a.app.QueueUpdateDraw(func() {
		a.statusBar.SetFlash(a.vm.Flash.Get())
	})
}

func (a *App) openConversation(c rpc.Conversation) {
	name := c.Name
	if name == "" {
		name = c.ID
	}
	go func() {
		if err := a.vm.LoadMessages(a.ctx, c.ID); err != nil {
			a.flashAsync("Load failed: " + err.Error())
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.msgView.SetConversation(c.ID, name)
			a.msgView.Update(a.vm.GetMessages())
			a.switchTo(pageMessages)
		})
		if c.UnreadCount > 0 {
			a.markRead(c.ID)
		}
	}()
}

func (a *App) markRead(id string) {
	go func() {
		if err := a.vm.MarkRead(a.ctx, id); err != nil {
			a.flashAsync("Mark read failed: " + err.Error())
			return
		}
		a.refreshConversations()
	}()
}

func (a *App) refreshConversations() {
	if err := a.vm.LoadConversations(a.ctx); err != nil {
		a.flashAsync("Load failed: " + err.Error())
		return
	}
	a.app.QueueUpdateDraw(func() {
		a.convList.Update(a.vm.GetConversations())
	})
}

func (a *App) refreshContacts() {
	go func() {
		if err := a.vm.LoadContacts(a.ctx); err != nil {
			a.flashAsync("Load failed: " + err.Error())
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.contacts.Update(a.vm.GetSections())
		})
	}()
}

func (a *App) refreshDevice() {
	go func() {
		a.refreshStatus()
		a.app.QueueUpdateDraw(func() {
			a.device.Update(a.vm.GetEnvironment())
		})
	}()
}

func (a *App) refreshStatus() {
	if err := a.vm.LoadEnvironment(a.ctx); err != nil {
		a.vm.Flash.Show("Daemon unreachable: " + err.Error())
	}
	a.app.QueueUpdateDraw(func() {
		if env := a.vm.GetEnvironment(); env != nil {
			a.statusBar.SetStatus(env.Status)
		}
		a.statusBar.SetFlash(a.vm.Flash.Get())
	})
}

// Run starts the TUI application.
func (a *App) Run() error {
	go func() {
		a.refreshStatus()
		a.refreshConversations()
		a.startRefreshLoop()
	}()
	go func() {
		if err := a.vm.Watch(a.ctx); err != nil {
			a.flashAsync("Event stream closed: " + err.Error())
		}
	}()

	return a.app.Run()
}

// startRefreshLoop reloads on daemon events and refreshes the status every few seconds.
func (a *App) startRefreshLoop() {
	ticker := time.NewTicker(5 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-a.vm.RefreshCh():
				a.refreshConversations()
				if id := a.vm.GetActiveID(); id != "" {
					if err := a.vm.LoadMessages(a.ctx, id); err == nil {
						a.app.QueueUpdateDraw(func() {
							if a.msgView.ConversationID() == id {
								a.msgView.Update(a.vm.GetMessages())
							}
						})
					}
				}
			case <-ticker.C:
				a.refreshStatus()
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
