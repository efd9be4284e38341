// Package tui renders the storefront in the terminal. Views implement the
// presenter's setter interfaces and report keystrokes as bus events; App is
// the bubbletea model hosting them.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/presenter"
	"github.com/jask/storefront/internal/store"
)

// Options configure an App.
type Options struct {
	Service presenter.Service
	Journal presenter.Journal
	Logger  *zap.Logger
	CDNURL  string
	// Unit is appended to prices, "synapses" by default.
	Unit     string
	Language language.Tag
}

// App ties together views.
type App struct {
	bus       *events.Bus
	presenter *presenter.Presenter
	sched     *cmdScheduler
	keys      keyMap
	help      help.Model
	log       *zap.Logger

	header   *headerView
	catalog  *catalogView
	preview  *previewView
	basket   *basketView
	order    *orderFormView
	contacts *contactsFormView
	success  *successView
	modal    *modalView

	searching bool
	search    textinput.Model
	width     int
	height    int
}

// New builds the views, stores and presenter on bus.
func New(ctx context.Context, bus *events.Bus, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	prices := NewPriceFormatter(opts.Language, opts.Unit)
	a := &App{
		bus:      bus,
		sched:    &cmdScheduler{},
		keys:     newKeyMap(),
		help:     help.New(),
		log:      log,
		header:   &headerView{},
		catalog:  &catalogView{bus: bus, prices: prices},
		preview:  &previewView{bus: bus, prices: prices},
		basket:   &basketView{bus: bus, prices: prices},
		order:    newOrderFormView(bus),
		contacts: newContactsFormView(bus),
		success:  &successView{bus: bus, prices: prices},
		modal:    &modalView{},
		search:   newInput("search products", 64),
	}
	a.presenter = presenter.New(ctx, presenter.Deps{
		Bus:       bus,
		Catalog:   store.NewCatalog(bus),
		Cart:      store.NewCart(bus),
		Buyer:     store.NewBuyer(bus),
		Service:   opts.Service,
		Journal:   opts.Journal,
		Scheduler: a.sched,
		Logger:    log,
		CDNURL:    opts.CDNURL,
	}, presenter.Views{
		Header:   a.header,
		Catalog:  a.catalog,
		Preview:  a.preview,
		Basket:   a.basket,
		Order:    a.order,
		Contacts: a.contacts,
		Success:  a.success,
		Modal:    a.modal,
	})
	return a
}

// Presenter exposes the checkout state machine.
func (a *App) Presenter() *presenter.Presenter { return a.presenter }

func (a *App) Init() tea.Cmd {
	a.presenter.Start()
	return a.sched.drain()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.help.Width = m.Width
	case doneMsg:
		if m.apply != nil {
			m.apply()
		}
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if quit := a.handleKey(m, &cmd); quit {
			return a, tea.Quit
		}
	}
	return a, tea.Batch(cmd, a.sched.drain())
}

func (a *App) handleKey(m tea.KeyMsg, cmd *tea.Cmd) bool {
	if a.searching {
		a.handleSearchKey(m, cmd)
		return false
	}
	switch a.modal.content {
	case presenter.ContentPreview:
		a.preview.handleKey(m, a.keys)
	case presenter.ContentBasket:
		a.basket.handleKey(m, a.keys)
	case presenter.ContentOrder:
		*cmd = a.order.handleKey(m, a.keys)
	case presenter.ContentContacts:
		*cmd = a.contacts.handleKey(m, a.keys)
	case presenter.ContentSuccess:
		a.success.handleKey(m, a.keys)
	default:
		switch {
		case key.Matches(m, a.keys.Quit):
			return true
		case key.Matches(m, a.keys.Basket):
			a.bus.Emit(events.BasketOpened{})
		case key.Matches(m, a.keys.Reload):
			a.bus.Emit(events.CatalogReloadRequested{})
		case key.Matches(m, a.keys.Search):
			a.searching = true
			a.search.SetValue("")
			a.search.Focus()
		default:
			a.catalog.handleKey(m, a.keys)
		}
	}
	return false
}

func (a *App) handleSearchKey(m tea.KeyMsg, cmd *tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.searching = false
		a.search.Blur()
	case tea.KeyEnter:
		a.searching = false
		a.search.Blur()
		if q := strings.TrimSpace(a.search.Value()); q != "" {
			a.bus.Emit(events.CatalogSearched{Query: q})
		}
	default:
		a.search, *cmd = a.search.Update(m)
	}
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.header.render() + "\n\n")
	b.WriteString(a.catalog.render() + "\n")
	if a.searching {
		b.WriteString("\n/" + a.search.View() + "\n")
	}
	open := a.modal.content != presenter.ContentNone
	inline := open && (a.width == 0 || a.height == 0)
	if inline {
		b.WriteString("\n" + modalStyle.Render(a.renderModal()) + "\n")
	}
	if a.header.status != "" {
		b.WriteString("\n" + statusStyle.Render(a.header.status) + "\n")
	}
	if !open && !a.searching {
		b.WriteString("\n" + a.help.View(a.keys))
	}
	if open && !inline {
		return modalLayer(b.String(), modalStyle.Render(a.renderModal()), a.width, a.height)
	}
	return b.String()
}

func (a *App) renderModal() string {
	switch a.modal.content {
	case presenter.ContentPreview:
		return a.preview.render()
	case presenter.ContentBasket:
		return a.basket.render()
	case presenter.ContentOrder:
		return a.order.render()
	case presenter.ContentContacts:
		return a.contacts.render()
	case presenter.ContentSuccess:
		return a.success.render()
	}
	return ""
}
