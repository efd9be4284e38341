// Package presentertest provides recording views, a scripted service and a
// manual scheduler for driving a presenter in tests.
package presentertest

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/model"
	"github.com/jask/storefront/internal/presenter"
)

// Header records header renders.
type Header struct {
	Counter int
	Status  string
	Renders int
}

func (h *Header) SetCounter(n int)     { h.Counter = n; h.Renders++ }
func (h *Header) SetStatus(msg string) { h.Status = msg }

// Catalog records card renders.
type Catalog struct {
	Cards   []presenter.CardModel
	Renders int
}

func (c *Catalog) SetCards(cards []presenter.CardModel) { c.Cards = cards; c.Renders++ }

// Preview records the last preview model.
type Preview struct {
	Model   presenter.PreviewModel
	Renders int
}

func (p *Preview) SetProduct(vm presenter.PreviewModel) { p.Model = vm; p.Renders++ }

// Basket records basket renders.
type Basket struct {
	Rows            []presenter.BasketRow
	Total           decimal.Decimal
	CheckoutEnabled bool
	Renders         int
}

func (b *Basket) SetItems(rows []presenter.BasketRow) { b.Rows = rows; b.Renders++ }
func (b *Basket) SetTotal(total decimal.Decimal)      { b.Total = total }
func (b *Basket) SetCheckoutEnabled(enabled bool)     { b.CheckoutEnabled = enabled }

// Form records the state shared by both checkout forms.
type Form struct {
	Errors        model.Errors
	SubmitEnabled bool
	Status        string
	Resets        int
}

func (f *Form) SetErrors(errs model.Errors)   { f.Errors = errs }
func (f *Form) SetSubmitEnabled(enabled bool) { f.SubmitEnabled = enabled }
func (f *Form) ResetTouched()                 { f.Resets++ }
func (f *Form) SetStatus(msg string)          { f.Status = msg }

// OrderForm records the order step.
type OrderForm struct {
	Form
	Payment model.Payment
	Address string
}

func (f *OrderForm) SetPayment(p model.Payment) { f.Payment = p }
func (f *OrderForm) SetAddress(a string)        { f.Address = a }

// ContactsForm records the contacts step.
type ContactsForm struct {
	Form
	Email string
	Phone string
}

func (f *ContactsForm) SetEmail(e string) { f.Email = e }
func (f *ContactsForm) SetPhone(p string) { f.Phone = p }

// Success records the confirmed total.
type Success struct {
	Total decimal.Decimal
}

func (s *Success) SetTotal(total decimal.Decimal) { s.Total = total }

// Modal records what is shown.
type Modal struct {
	Content presenter.Content
	Open    bool
	History []presenter.Content
}

func (m *Modal) Show(c presenter.Content) {
	m.Content, m.Open = c, true
	m.History = append(m.History, c)
}

func (m *Modal) Close() { m.Content, m.Open = presenter.ContentNone, false }

// Views bundles one recorder per view.
type Views struct {
	Header   *Header
	Catalog  *Catalog
	Preview  *Preview
	Basket   *Basket
	Order    *OrderForm
	Contacts *ContactsForm
	Success  *Success
	Modal    *Modal
}

// NewViews returns fresh recorders.
func NewViews() *Views {
	return &Views{
		Header:   &Header{},
		Catalog:  &Catalog{},
		Preview:  &Preview{},
		Basket:   &Basket{},
		Order:    &OrderForm{},
		Contacts: &ContactsForm{},
		Success:  &Success{},
		Modal:    &Modal{},
	}
}

// Presenter converts the recorders into presenter.Views.
func (v *Views) Presenter() presenter.Views {
	return presenter.Views{
		Header:   v.Header,
		Catalog:  v.Catalog,
		Preview:  v.Preview,
		Basket:   v.Basket,
		Order:    v.Order,
		Contacts: v.Contacts,
		Success:  v.Success,
		Modal:    v.Modal,
	}
}

// Service is a scripted presenter.Service.
type Service struct {
	mu       sync.Mutex
	Products []model.Product
	ListErr  error
	Result   model.OrderResult
	OrderErr error
	Orders   []model.Order
	Lists    int
}

func (s *Service) ListProducts(context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lists++
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return append([]model.Product(nil), s.Products...), nil
}

func (s *Service) CreateOrder(_ context.Context, o model.Order) (model.OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Orders = append(s.Orders, o)
	if s.OrderErr != nil {
		return model.OrderResult{}, s.OrderErr
	}
	return s.Result, nil
}

// Journal collects recorded receipts.
type Journal struct {
	Receipts []model.OrderResult
	Err      error
}

func (j *Journal) Record(_ context.Context, _ model.Order, res model.OrderResult) error {
	if j.Err != nil {
		return j.Err
	}
	j.Receipts = append(j.Receipts, res)
	return nil
}

// Scheduler queues work until Run is called, so tests control when
// responses arrive.
type Scheduler struct {
	queue []func() func()
}

func (s *Scheduler) Go(work func() func()) { s.queue = append(s.queue, work) }

// Pending returns the number of queued jobs.
func (s *Scheduler) Pending() int { return len(s.queue) }

// RunAt runs the i-th queued job and applies its completion.
func (s *Scheduler) RunAt(i int) {
	work := s.queue[i]
	s.queue = append(s.queue[:i:i], s.queue[i+1:]...)
	if apply := work(); apply != nil {
		apply()
	}
}

// Run drains the queue in order, including jobs queued by completions.
func (s *Scheduler) Run() {
	for len(s.queue) > 0 {
		s.RunAt(0)
	}
}

// Product builds a priced product; pass a negative price for a priceless one.
func Product(id, title string, price int64) model.Product {
	p := model.Product{ID: id, Title: title, Category: "other", Image: "/" + id + ".svg"}
	if price >= 0 {
		p.Price = decimal.NewNullDecimal(decimal.NewFromInt(price))
	}
	return p
}
