package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/model"
	"github.com/jask/storefront/internal/presenter"
)

type headerView struct {
	counter int
	status  string
}

func (h *headerView) SetCounter(n int)     { h.counter = n }
func (h *headerView) SetStatus(msg string) { h.status = msg }

func (h *headerView) render() string {
	return headerStyle.Render(fmt.Sprintf("Storefront   [b] Basket (%d)", h.counter))
}

type catalogView struct {
	bus    *events.Bus
	prices PriceFormatter
	cards  []presenter.CardModel
	cursor int
}

func (c *catalogView) SetCards(cards []presenter.CardModel) {
	c.cards = cards
	if c.cursor >= len(cards) {
		c.cursor = max(len(cards)-1, 0)
	}
}

func (c *catalogView) handleKey(m tea.KeyMsg, keys keyMap) {
	switch {
	case key.Matches(m, keys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(m, keys.Down):
		if c.cursor < len(c.cards)-1 {
			c.cursor++
		}
	case key.Matches(m, keys.Select):
		if len(c.cards) == 0 {
			return
		}
		card := c.cards[c.cursor]
		c.bus.Emit(events.CardSelected{Product: model.Product{
			ID:       card.ID,
			Title:    card.Title,
			Category: card.Category,
			Price:    card.Price,
		}})
	}
}

func (c *catalogView) render() string {
	if len(c.cards) == 0 {
		return mutedStyle.Render("No products.")
	}
	var b strings.Builder
	for i, card := range c.cards {
		marker := "  "
		title := card.Title
		if i == c.cursor {
			marker = cursorStyle.Render("▶ ")
			title = cursorStyle.Render(title)
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n", marker, title,
			mutedStyle.Render("["+card.Category+"]"), priceStyle.Render(c.prices.Price(card.Price)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

type previewView struct {
	bus    *events.Bus
	prices PriceFormatter
	vm     presenter.PreviewModel
}

func (p *previewView) SetProduct(vm presenter.PreviewModel) { p.vm = vm }

func (p *previewView) handleKey(m tea.KeyMsg, keys keyMap) {
	switch {
	case key.Matches(m, keys.Toggle):
		if !p.vm.ButtonDisabled {
			p.bus.Emit(events.CardAction{ProductID: p.vm.ID})
		}
	case key.Matches(m, keys.Basket):
		p.bus.Emit(events.BasketOpened{})
	case key.Matches(m, keys.Back):
		p.bus.Emit(events.ModalClosed{})
	}
}

func (p *previewView) render() string {
	vm := p.vm
	var b strings.Builder
	b.WriteString(titleStyle.Render(vm.Title) + "\n")
	b.WriteString(mutedStyle.Render(vm.Category) + "\n")
	if vm.Description != "" {
		b.WriteString(vm.Description + "\n")
	}
	if vm.Image != "" {
		b.WriteString(mutedStyle.Render(vm.Image) + "\n")
	}
	b.WriteString(priceStyle.Render(p.prices.Price(vm.Price)) + "\n\n")
	if vm.ButtonDisabled {
		b.WriteString(disabledStyle.Render("[" + vm.ButtonText + "]"))
	} else {
		b.WriteString(cursorStyle.Render("[space] " + vm.ButtonText))
	}
	b.WriteString(mutedStyle.Render("  [b] Basket  [esc] Close"))
	return b.String()
}

type basketView struct {
	bus             *events.Bus
	prices          PriceFormatter
	rows            []presenter.BasketRow
	total           decimal.Decimal
	checkoutEnabled bool
	cursor          int
}

func (v *basketView) SetItems(rows []presenter.BasketRow) {
	v.rows = rows
	if v.cursor >= len(rows) {
		v.cursor = max(len(rows)-1, 0)
	}
}

func (v *basketView) SetTotal(total decimal.Decimal)  { v.total = total }
func (v *basketView) SetCheckoutEnabled(enabled bool) { v.checkoutEnabled = enabled }

func (v *basketView) handleKey(m tea.KeyMsg, keys keyMap) {
	switch {
	case key.Matches(m, keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(m, keys.Down):
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
	case key.Matches(m, keys.Remove):
		if len(v.rows) > 0 {
			v.bus.Emit(events.BasketItemRemoved{ID: v.rows[v.cursor].ID})
		}
	case key.Matches(m, keys.Clear):
		if len(v.rows) > 0 {
			v.bus.Emit(events.BasketCleared{})
		}
	case key.Matches(m, keys.Checkout):
		if v.checkoutEnabled {
			v.bus.Emit(events.CheckoutInitiated{})
		}
	case key.Matches(m, keys.Back):
		v.bus.Emit(events.ModalClosed{})
	}
}

func (v *basketView) render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Basket") + "\n")
	if len(v.rows) == 0 {
		b.WriteString(mutedStyle.Render("Your basket is empty.") + "\n")
	}
	for i, row := range v.rows {
		marker := "  "
		if i == v.cursor {
			marker = "▶ "
		}
		fmt.Fprintf(&b, "%s%d. %-24s %s\n", marker, row.Index, row.Title, v.prices.Price(row.Price))
	}
	fmt.Fprintf(&b, "Total: %s\n", v.prices.Amount(v.total))
	checkout := "[enter] Checkout"
	if v.checkoutEnabled {
		b.WriteString(cursorStyle.Render(checkout))
	} else {
		b.WriteString(disabledStyle.Render(checkout))
	}
	b.WriteString(mutedStyle.Render("  [x] Remove  [c] Clear  [esc] Close"))
	return b.String()
}

type orderFormView struct {
	form
	bus     *events.Bus
	payment model.Payment
	address textinput.Model
	focus   int // 0 payment, 1 address
}

func newOrderFormView(bus *events.Bus) *orderFormView {
	return &orderFormView{
		form:    newForm(model.OrderStepFields...),
		bus:     bus,
		address: newInput("Delivery address", 256),
	}
}

func (f *orderFormView) SetPayment(p model.Payment) { f.payment = p }
func (f *orderFormView) SetAddress(a string)        { f.address.SetValue(a) }

func (f *orderFormView) setFocus(i int) {
	if f.focus == 1 && i != 1 {
		f.blur(model.FieldAddress, f.address.Value())
	}
	f.focus = i
	if i == 1 {
		f.address.Focus()
	} else {
		f.address.Blur()
	}
}

func (f *orderFormView) choose(p model.Payment) {
	f.touch(model.FieldPayment)
	f.bus.Emit(events.PaymentSelected{Payment: p})
}

func (f *orderFormView) handleKey(m tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(m, keys.Next), key.Matches(m, keys.Prev):
		f.setFocus(1 - f.focus)
		return nil
	case key.Matches(m, keys.Submit):
		if f.submitEnabled {
			f.bus.Emit(events.OrderSubmitted{Payment: f.payment, Address: f.address.Value()})
		}
		return nil
	case key.Matches(m, keys.Back):
		f.bus.Emit(events.ModalClosed{})
		return nil
	}
	if f.focus == 0 {
		switch m.String() {
		case "left", "h", "1":
			f.choose(model.PaymentCard)
		case "right", "l", "2":
			f.choose(model.PaymentCash)
		case " ":
			if f.payment == model.PaymentCard {
				f.choose(model.PaymentCash)
			} else {
				f.choose(model.PaymentCard)
			}
		}
		return nil
	}
	before := f.address.Value()
	var cmd tea.Cmd
	f.address, cmd = f.address.Update(m)
	if v := f.address.Value(); v != before {
		f.touch(model.FieldAddress)
		f.bus.Emit(events.OrderFieldChanged{Field: model.FieldAddress, Value: v})
	}
	return cmd
}

func (f *orderFormView) render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Payment and delivery") + "\n")
	label := "  Payment: "
	if f.focus == 0 {
		label = cursorStyle.Render("▶ Payment: ")
	}
	b.WriteString(label)
	for _, p := range []model.Payment{model.PaymentCard, model.PaymentCash} {
		opt := "( ) " + string(p)
		if f.payment == p {
			opt = successStyle.Render("(•) " + string(p))
		}
		b.WriteString(opt + "  ")
	}
	b.WriteString("\n")
	label = "  Address: "
	if f.focus == 1 {
		label = cursorStyle.Render("▶ Address: ")
	}
	b.WriteString(label + f.address.View() + "\n\n")
	b.WriteString(f.footer("Next"))
	b.WriteString(mutedStyle.Render("  [tab] Field  [esc] Close"))
	return b.String()
}

type contactsFormView struct {
	form
	bus   *events.Bus
	email textinput.Model
	phone textinput.Model
	focus int // 0 email, 1 phone
}

func newContactsFormView(bus *events.Bus) *contactsFormView {
	v := &contactsFormView{
		form:  newForm(model.ContactsStepFields...),
		bus:   bus,
		email: newInput("you@example.com", 128),
		phone: newInput("+7 (000) 000-00-00", 32),
	}
	v.email.Focus()
	return v
}

func (f *contactsFormView) SetEmail(e string) { f.email.SetValue(e) }
func (f *contactsFormView) SetPhone(p string) { f.phone.SetValue(p) }

func (f *contactsFormView) input(i int) (*textinput.Model, model.Field) {
	if i == 1 {
		return &f.phone, model.FieldPhone
	}
	return &f.email, model.FieldEmail
}

func (f *contactsFormView) setFocus(i int) {
	in, field := f.input(f.focus)
	f.blur(field, in.Value())
	in.Blur()
	f.focus = i
	in, _ = f.input(i)
	in.Focus()
}

func (f *contactsFormView) handleKey(m tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(m, keys.Next), key.Matches(m, keys.Prev):
		f.setFocus(1 - f.focus)
		return nil
	case key.Matches(m, keys.Submit):
		if f.submitEnabled {
			f.bus.Emit(events.ContactsSubmitted{Email: f.email.Value(), Phone: f.phone.Value()})
		}
		return nil
	case key.Matches(m, keys.Back):
		f.bus.Emit(events.ContactsBack{})
		return nil
	}
	in, field := f.input(f.focus)
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(m)
	if v := in.Value(); v != before {
		f.touch(field)
		f.bus.Emit(events.ContactsFieldChanged{Field: field, Value: v})
	}
	return cmd
}

func (f *contactsFormView) render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Contacts") + "\n")
	for i, name := range []string{"Email: ", "Phone: "} {
		in, _ := f.input(i)
		label := "  " + name
		if i == f.focus {
			label = cursorStyle.Render("▶ " + name)
		}
		b.WriteString(label + in.View() + "\n")
	}
	b.WriteString("\n" + f.footer("Pay"))
	b.WriteString(mutedStyle.Render("  [tab] Field  [esc] Back"))
	return b.String()
}

type successView struct {
	bus    *events.Bus
	prices PriceFormatter
	total  decimal.Decimal
}

func (s *successView) SetTotal(total decimal.Decimal) { s.total = total }

func (s *successView) handleKey(m tea.KeyMsg, keys keyMap) {
	if key.Matches(m, keys.Submit) || key.Matches(m, keys.Back) {
		s.bus.Emit(events.SuccessClosed{})
	}
}

func (s *successView) render() string {
	return successStyle.Render("Order placed") + "\n" +
		"Charged " + s.prices.Amount(s.total) + "\n\n" +
		cursorStyle.Render("[enter] Continue shopping")
}

type modalView struct {
	content presenter.Content
}

func (m *modalView) Show(c presenter.Content) { m.content = c }
func (m *modalView) Close()                   { m.content = presenter.ContentNone }
