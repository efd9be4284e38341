package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/model"
	"github.com/jask/storefront/internal/presenter"
	pt "github.com/jask/storefront/internal/presenter/presentertest"
)

func flowKey(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func flowApplyMsg(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	next, cmd := a.Update(msg)
	require.Same(t, a, next)
	flowDrainCmd(t, a, cmd, 0)
}

func flowDrainCmd(t *testing.T, a *App, cmd tea.Cmd, depth int) {
	t.Helper()
	if cmd == nil {
		return
	}
	if depth > 32 {
		t.Fatal("command chain exceeded max depth")
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			flowDrainCmd(t, a, c, depth+1)
		}
	default:
		_, next := a.Update(msg)
		flowDrainCmd(t, a, next, depth+1)
	}
}

func flowPress(t *testing.T, a *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		flowApplyMsg(t, a, flowKey(k))
	}
}

func flowType(t *testing.T, a *App, input string) {
	t.Helper()
	for _, r := range input {
		flowApplyMsg(t, a, flowKey(string(r)))
	}
}

func newFlowApp(t *testing.T, svc *pt.Service) *App {
	t.Helper()
	a := New(context.Background(), events.NewBus(), Options{
		Service:  svc,
		Journal:  &pt.Journal{},
		CDNURL:   "https://cdn.test",
		Language: language.English,
	})
	flowDrainCmd(t, a, a.Init(), 0)
	return a
}

func flowService() *pt.Service {
	return &pt.Service{
		Products: []model.Product{
			pt.Product("p1", "HEX mouse", 1450),
			pt.Product("p2", "Keep calm talisman", -1),
			pt.Product("p3", "Frontend fairy", 2500),
		},
		Result: model.OrderResult{ID: "o-1", Total: decimal.NewFromInt(3950)},
	}
}

func TestFlowCheckout(t *testing.T) {
	svc := flowService()
	a := newFlowApp(t, svc)
	require.Len(t, a.catalog.cards, 3)
	require.Contains(t, a.View(), "HEX mouse")

	// Add the first and third products through the preview.
	flowPress(t, a, "enter")
	require.Equal(t, presenter.ContentPreview, a.modal.content)
	require.Equal(t, presenter.ButtonAdd, a.preview.vm.ButtonText)
	flowPress(t, a, "space")
	require.Equal(t, presenter.ButtonRemove, a.preview.vm.ButtonText)
	flowPress(t, a, "esc", "down", "down", "enter", "space", "esc")
	require.Equal(t, 2, a.header.counter)

	flowPress(t, a, "b")
	require.Equal(t, presenter.ContentBasket, a.modal.content)
	require.True(t, a.basket.total.Equal(decimal.NewFromInt(3950)))
	flowPress(t, a, "enter")
	require.Equal(t, presenter.ContentOrder, a.modal.content)
	require.False(t, a.order.submitEnabled)

	flowPress(t, a, "1", "tab")
	flowType(t, a, "Main st 1")
	require.True(t, a.order.submitEnabled)
	flowPress(t, a, "enter")
	require.Equal(t, presenter.ContentContacts, a.modal.content)

	flowType(t, a, "me@shop")
	require.Contains(t, a.View(), "enter a valid email")
	flowType(t, a, ".io")
	flowPress(t, a, "tab")
	flowType(t, a, "89123456789")
	require.True(t, a.contacts.submitEnabled)
	flowPress(t, a, "enter")

	require.Len(t, svc.Orders, 1)
	require.Equal(t, []string{"p1", "p3"}, svc.Orders[0].Items)
	require.Equal(t, model.PaymentCard, svc.Orders[0].Payment)
	require.Equal(t, "Main st 1", svc.Orders[0].Address)
	require.Equal(t, presenter.ContentSuccess, a.modal.content)
	require.Contains(t, a.View(), "3,950 synapses")
	require.Zero(t, a.header.counter)

	flowPress(t, a, "enter")
	require.Equal(t, presenter.ContentNone, a.modal.content)
	require.Equal(t, presenter.Browsing, a.Presenter().Stage())
}

func TestFlowPricelessPreview(t *testing.T) {
	a := newFlowApp(t, flowService())
	flowPress(t, a, "down", "enter")
	require.True(t, a.preview.vm.ButtonDisabled)
	flowPress(t, a, "space")
	require.Zero(t, a.header.counter)
	require.Contains(t, a.View(), "Priceless")
}

func TestFlowErrorsOnlyForTouchedFields(t *testing.T) {
	a := newFlowApp(t, flowService())
	flowPress(t, a, "enter", "space", "esc", "b", "enter")
	require.Equal(t, presenter.ContentOrder, a.modal.content)

	// Both fields fail but nothing was touched yet.
	require.Len(t, a.order.errs, 2)
	require.Empty(t, a.order.VisibleErrors())

	flowPress(t, a, "tab")
	flowType(t, a, "x")
	flowApplyMsg(t, a, tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, []string{"enter a delivery address"}, a.order.VisibleErrors())

	flowPress(t, a, "esc")
	flowPress(t, a, "b", "enter")
	require.Empty(t, a.order.VisibleErrors())
}

func TestFlowBackKeepsOrderFields(t *testing.T) {
	a := newFlowApp(t, flowService())
	flowPress(t, a, "enter", "space", "esc", "b", "enter", "2", "tab")
	flowType(t, a, "Elm st")
	flowPress(t, a, "enter")
	require.Equal(t, presenter.ContactsStep, a.Presenter().Stage())

	flowPress(t, a, "esc")
	require.Equal(t, presenter.OrderStep, a.Presenter().Stage())
	require.Equal(t, model.PaymentCash, a.order.payment)
	require.Equal(t, "Elm st", a.order.address.Value())
	require.True(t, a.order.submitEnabled)
}

func TestFlowRejectedOrderStays(t *testing.T) {
	svc := flowService()
	svc.OrderErr = errors.New("connection reset")
	a := newFlowApp(t, svc)
	flowPress(t, a, "enter", "space", "esc", "b", "enter", "1", "tab")
	flowType(t, a, "Main st 1")
	flowPress(t, a, "enter")
	flowType(t, a, "me@shop.io")
	flowPress(t, a, "tab")
	flowType(t, a, "89123456789")
	flowPress(t, a, "enter")

	require.Equal(t, presenter.ContentContacts, a.modal.content)
	require.Contains(t, a.View(), "Order failed: connection reset")
	require.Equal(t, 1, a.header.counter)

	svc.OrderErr = nil
	flowPress(t, a, "enter")
	require.Len(t, svc.Orders, 2)
	require.Equal(t, presenter.ContentSuccess, a.modal.content)
}

func TestFlowSearchAndReload(t *testing.T) {
	svc := flowService()
	a := newFlowApp(t, svc)

	flowPress(t, a, "/")
	require.True(t, a.searching)
	flowType(t, a, "fairy")
	flowPress(t, a, "enter")
	require.False(t, a.searching)
	require.Equal(t, presenter.ContentPreview, a.modal.content)
	require.Equal(t, "p3", a.preview.vm.ID)

	flowPress(t, a, "esc")
	svc.Products = svc.Products[:1]
	flowPress(t, a, "r")
	require.Len(t, a.catalog.cards, 1)
	require.Equal(t, 2, svc.Lists)
}

func TestFlowQuit(t *testing.T) {
	a := newFlowApp(t, flowService())
	_, cmd := a.Update(flowKey("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFlowClearBasket(t *testing.T) {
	a := newFlowApp(t, flowService())
	flowPress(t, a, "enter", "space", "esc", "down", "down", "enter", "space", "esc")
	require.Equal(t, 2, a.header.counter)

	flowPress(t, a, "b", "c")
	require.Equal(t, presenter.ContentBasket, a.modal.content)
	require.Empty(t, a.basket.rows)
	require.False(t, a.basket.checkoutEnabled)
	require.Equal(t, 0, a.header.counter)
	require.Contains(t, a.View(), "Your basket is empty.")
}
