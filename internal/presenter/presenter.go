// Package presenter holds the checkout state machine. It is the only party
// that subscribes to both store notifications and view events: view intent is
// turned into store mutations or service calls, and store changes are
// rendered back into the views.
package presenter

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/model"
	"github.com/jask/storefront/internal/store"
)

// Stage is the checkout stage.
type Stage int

const (
	Browsing Stage = iota
	OrderStep
	ContactsStep
	Success
)

func (s Stage) String() string {
	switch s {
	case OrderStep:
		return "order"
	case ContactsStep:
		return "contacts"
	case Success:
		return "success"
	}
	return "browsing"
}

// Service is the remote API.
type Service interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateOrder(ctx context.Context, o model.Order) (model.OrderResult, error)
}

// Journal records accepted orders locally.
type Journal interface {
	Record(ctx context.Context, o model.Order, res model.OrderResult) error
}

// Scheduler runs blocking work away from the UI thread. The func returned by
// work is applied back on the UI thread once work finishes.
type Scheduler interface {
	Go(work func() (apply func()))
}

// Inline runs work and its completion immediately on the calling goroutine.
type Inline struct{}

func (Inline) Go(work func() func()) {
	if apply := work(); apply != nil {
		apply()
	}
}

// Deps are the collaborators of a Presenter.
type Deps struct {
	Bus       *events.Bus
	Catalog   *store.Catalog
	Cart      *store.Cart
	Buyer     *store.Buyer
	Service   Service
	Journal   Journal // optional
	Scheduler Scheduler
	Logger    *zap.Logger
	// CDNURL is prefixed to product image paths.
	CDNURL string
}

// Presenter wires stores, service and views together.
type Presenter struct {
	ctx     context.Context
	bus     *events.Bus
	catalog *store.Catalog
	cart    *store.Cart
	buyer   *store.Buyer
	service Service
	journal Journal
	sched   Scheduler
	log     *zap.Logger
	cdnURL  string
	views   Views

	stage Stage
	// basket is set while the basket view is the live render target.
	basket     BasketView
	loadSeq    uint64
	submitting bool
	subs       []events.Subscription
}

// New subscribes a presenter to the bus. ctx bounds every service call.
func New(ctx context.Context, d Deps, v Views) *Presenter {
	p := &Presenter{
		ctx:     ctx,
		bus:     d.Bus,
		catalog: d.Catalog,
		cart:    d.Cart,
		buyer:   d.Buyer,
		service: d.Service,
		journal: d.Journal,
		sched:   d.Scheduler,
		log:     d.Logger,
		cdnURL:  d.CDNURL,
		views:   v,
	}
	if p.sched == nil {
		p.sched = Inline{}
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	p.subscribe()
	return p
}

func (p *Presenter) subscribe() {
	b := p.bus
	p.subs = append(p.subs,
		events.Subscribe(b, func(events.CatalogChanged) { p.renderCatalog() }),
		events.Subscribe(b, func(events.CartChanged) { p.onCartChanged() }),
		events.Subscribe(b, func(events.SelectedItemChanged) { p.renderPreview() }),
		events.Subscribe(b, p.onBuyerChanged),
		events.Subscribe(b, p.onCardSelected),
		events.Subscribe(b, p.onCardAction),
		events.Subscribe(b, func(events.BasketOpened) { p.openBasket() }),
		events.Subscribe(b, func(ev events.BasketItemRemoved) { p.cart.RemoveItem(ev.ID) }),
		events.Subscribe(b, func(events.BasketCleared) { p.cart.Clear() }),
		events.Subscribe(b, func(events.CheckoutInitiated) { p.onCheckout() }),
		events.Subscribe(b, p.onPaymentSelected),
		events.Subscribe(b, p.onOrderField),
		events.Subscribe(b, p.onContactsField),
		events.Subscribe(b, p.onOrderSubmitted),
		events.Subscribe(b, p.onContactsSubmitted),
		events.Subscribe(b, func(events.ContactsBack) { p.onContactsBack() }),
		events.Subscribe(b, func(events.SuccessClosed) { p.closeModal() }),
		events.Subscribe(b, func(events.ModalClosed) { p.closeModal() }),
		events.Subscribe(b, func(events.CatalogReloadRequested) { p.LoadCatalog() }),
		events.Subscribe(b, p.onSearch),
	)
}

// Close removes every subscription.
func (p *Presenter) Close() {
	for _, s := range p.subs {
		p.bus.Off(s)
	}
	p.subs = nil
}

// Start renders the initial header and requests the catalog.
func (p *Presenter) Start() {
	p.views.Header.SetCounter(p.cart.Count())
	p.LoadCatalog()
}

// Stage returns the current checkout stage.
func (p *Presenter) Stage() Stage { return p.stage }

// Submitting reports whether an order request is in flight.
func (p *Presenter) Submitting() bool { return p.submitting }

// LoadCatalog fetches the product list. Only the most recent request may
// update the catalog; a failed fetch leaves it untouched.
func (p *Presenter) LoadCatalog() {
	p.loadSeq++
	seq := p.loadSeq
	p.views.Header.SetStatus("Loading products...")
	p.sched.Go(func() func() {
		products, err := p.service.ListProducts(p.ctx)
		return func() {
			if seq != p.loadSeq {
				p.log.Debug("Dropping superseded catalog response", zap.Uint64("seq", seq))
				return
			}
			if err != nil {
				p.log.Warn("Catalog load failed", zap.Error(err))
				p.views.Header.SetStatus("Could not load products: " + err.Error())
				return
			}
			p.views.Header.SetStatus("")
			p.catalog.SetItems(products)
		}
	})
}

func (p *Presenter) card(prod model.Product) CardModel {
	img := prod.Image
	if img != "" {
		img = p.cdnURL + img
	}
	return CardModel{
		ID:       prod.ID,
		Title:    prod.Title,
		Category: prod.Category,
		Image:    img,
		Price:    prod.Price,
	}
}

func (p *Presenter) renderCatalog() {
	items := p.catalog.Items()
	cards := make([]CardModel, 0, len(items))
	for _, prod := range items {
		cards = append(cards, p.card(prod))
	}
	p.views.Catalog.SetCards(cards)
}

func (p *Presenter) renderPreview() {
	prod, ok := p.catalog.SelectedItem()
	if !ok {
		return
	}
	vm := PreviewModel{CardModel: p.card(prod), Description: prod.Description}
	switch {
	case !prod.Priced():
		vm.ButtonText, vm.ButtonDisabled = ButtonUnavailable, true
	case p.cart.Contains(prod.ID):
		vm.ButtonText = ButtonRemove
	default:
		vm.ButtonText = ButtonAdd
	}
	p.views.Preview.SetProduct(vm)
	p.views.Modal.Show(ContentPreview)
}

func (p *Presenter) renderBasket() {
	if p.basket == nil {
		return
	}
	items := p.cart.Items()
	rows := make([]BasketRow, 0, len(items))
	for i, prod := range items {
		rows = append(rows, BasketRow{Index: i + 1, ID: prod.ID, Title: prod.Title, Price: prod.Price})
	}
	p.basket.SetItems(rows)
	p.basket.SetTotal(p.cart.Total())
	p.basket.SetCheckoutEnabled(len(items) > 0)
}

func (p *Presenter) onCartChanged() {
	p.views.Header.SetCounter(p.cart.Count())
	p.renderBasket()
}

func (p *Presenter) onBuyerChanged(ev events.BuyerChanged) {
	if ev.Data.IsEmpty() {
		p.views.Order.ResetTouched()
		p.views.Contacts.ResetTouched()
	}
}

func (p *Presenter) onCardSelected(ev events.CardSelected) {
	prod, ok := p.catalog.ItemByID(ev.Product.ID)
	if !ok {
		prod = ev.Product
	}
	p.catalog.SetSelectedItem(prod)
}

func (p *Presenter) onCardAction(ev events.CardAction) {
	prod, ok := p.catalog.ItemByID(ev.ProductID)
	if !ok || !prod.Priced() {
		return
	}
	if p.cart.Contains(prod.ID) {
		p.cart.RemoveItem(prod.ID)
	} else {
		p.cart.AddItem(prod)
	}
	p.renderPreview()
}

func (p *Presenter) openBasket() {
	p.basket = p.views.Basket
	p.renderBasket()
	p.views.Modal.Show(ContentBasket)
}

func (p *Presenter) onCheckout() {
	if p.basket == nil || p.cart.Count() == 0 {
		return
	}
	p.openOrderStep()
}

func (p *Presenter) openOrderStep() {
	d := p.buyer.Data()
	form := p.views.Order
	form.SetPayment(model.Payment(d.Value(model.FieldPayment)))
	form.SetAddress(d.Value(model.FieldAddress))
	form.ResetTouched()
	form.SetErrors(nil)
	form.SetStatus("")
	p.validateOrderStep()
	p.setStage(OrderStep)
	p.views.Modal.Show(ContentOrder)
}

func (p *Presenter) openContactsStep() {
	d := p.buyer.Data()
	form := p.views.Contacts
	form.SetEmail(d.Value(model.FieldEmail))
	form.SetPhone(d.Value(model.FieldPhone))
	form.ResetTouched()
	form.SetErrors(nil)
	form.SetStatus("")
	p.validateContactsStep()
	p.setStage(ContactsStep)
	p.views.Modal.Show(ContentContacts)
}

func (p *Presenter) validateOrderStep() model.Errors {
	errs := p.buyer.Validate(model.OrderStepFields...)
	p.views.Order.SetErrors(errs)
	p.views.Order.SetSubmitEnabled(errs == nil && p.buyer.IsOrderStepComplete())
	return errs
}

func (p *Presenter) validateContactsStep() model.Errors {
	errs := p.buyer.Validate(model.ContactsStepFields...)
	p.views.Contacts.SetErrors(errs)
	p.views.Contacts.SetSubmitEnabled(errs == nil && p.buyer.IsContactsStepComplete() && !p.submitting)
	return errs
}

func (p *Presenter) onPaymentSelected(ev events.PaymentSelected) {
	p.buyer.SetData(model.Buyer{Payment: model.Ptr(ev.Payment)})
	p.views.Order.SetPayment(ev.Payment)
	p.validateOrderStep()
}

func (p *Presenter) onOrderField(ev events.OrderFieldChanged) {
	if ev.Field != model.FieldAddress && ev.Field != model.FieldPayment {
		return
	}
	p.buyer.SetData(model.Set(ev.Field, ev.Value))
	p.validateOrderStep()
}

func (p *Presenter) onContactsField(ev events.ContactsFieldChanged) {
	if ev.Field != model.FieldEmail && ev.Field != model.FieldPhone {
		return
	}
	p.buyer.SetData(model.Set(ev.Field, ev.Value))
	p.validateContactsStep()
}

func (p *Presenter) onOrderSubmitted(ev events.OrderSubmitted) {
	if p.stage != OrderStep {
		return
	}
	p.buyer.SetData(model.Buyer{Payment: model.Ptr(ev.Payment), Address: model.Ptr(ev.Address)})
	if errs := p.validateOrderStep(); errs != nil || !p.buyer.IsOrderStepComplete() {
		p.log.Debug("Order step rejected", zap.Any("errors", errs))
		return
	}
	p.openContactsStep()
}

func (p *Presenter) onContactsSubmitted(ev events.ContactsSubmitted) {
	if p.stage != ContactsStep || p.submitting {
		return
	}
	p.buyer.SetData(model.Buyer{Email: model.Ptr(ev.Email), Phone: model.Ptr(ev.Phone)})
	if errs := p.validateContactsStep(); errs != nil {
		return
	}
	if errs := p.buyer.Validate(); errs != nil {
		p.log.Debug("Order step no longer valid", zap.Any("errors", errs))
		p.openOrderStep()
		return
	}
	order, err := p.buyer.Order(p.cart.IDs(), p.cart.Total())
	if err != nil {
		p.views.Contacts.SetStatus(err.Error())
		return
	}
	p.submit(order)
}

func (p *Presenter) submit(order model.Order) {
	p.submitting = true
	p.views.Contacts.SetSubmitEnabled(false)
	p.views.Contacts.SetStatus("Placing order...")
	p.sched.Go(func() func() {
		res, err := p.service.CreateOrder(p.ctx, order)
		if err == nil && p.journal != nil {
			if jerr := p.journal.Record(p.ctx, order, res); jerr != nil {
				p.log.Warn("Receipt not journaled", zap.String("order", res.ID), zap.Error(jerr))
			}
		}
		return func() { p.orderDone(res, err) }
	})
}

func (p *Presenter) orderDone(res model.OrderResult, err error) {
	p.submitting = false
	if err != nil {
		p.log.Warn("Order submission failed", zap.Error(err))
		p.views.Contacts.SetStatus(orderFailure(err))
		p.validateContactsStep()
		return
	}
	p.log.Info("Order placed", zap.String("order", res.ID), zap.Stringer("total", res.Total))
	p.cart.Clear()
	p.buyer.Clear()
	p.views.Order.ResetTouched()
	p.views.Contacts.ResetTouched()
	p.views.Contacts.SetStatus("")
	p.views.Success.SetTotal(res.Total)
	p.setStage(Success)
	p.views.Modal.Show(ContentSuccess)
}

func orderFailure(err error) string {
	var se interface{ ServiceMessage() string }
	if errors.As(err, &se) {
		return "Order rejected: " + se.ServiceMessage()
	}
	return fmt.Sprintf("Order failed: %v", err)
}

func (p *Presenter) onContactsBack() {
	if p.stage != ContactsStep || p.submitting {
		return
	}
	p.openOrderStep()
}

// closeModal is a no-op while an order is in flight; the submission owns the
// contacts form until it completes.
func (p *Presenter) closeModal() {
	if p.submitting {
		return
	}
	p.views.Modal.Close()
	p.basket = nil
	p.setStage(Browsing)
}

func (p *Presenter) onSearch(ev events.CatalogSearched) {
	prod, ok := p.catalog.Match(ev.Query)
	if !ok {
		p.views.Header.SetStatus(fmt.Sprintf("Nothing matches %q", ev.Query))
		return
	}
	p.views.Header.SetStatus("")
	p.catalog.SetSelectedItem(prod)
}

func (p *Presenter) setStage(s Stage) {
	if p.stage != s {
		p.log.Debug("Checkout stage", zap.Stringer("from", p.stage), zap.Stringer("to", s))
	}
	p.stage = s
}
