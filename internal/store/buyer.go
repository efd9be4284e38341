package store

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/model"
)

// ErrIncompleteBuyer is returned by Order when a buyer field is still unset.
var ErrIncompleteBuyer = errors.New("buyer data incomplete")

// ErrEmptyCart is returned by Order when there is nothing to buy.
var ErrEmptyCart = errors.New("cart is empty")

// Buyer holds the checkout record filled across the two checkout steps.
// Writes are accepted unconditionally; validity is only checked on demand.
type Buyer struct {
	bus  *events.Bus
	data model.Buyer
}

func NewBuyer(bus *events.Bus) *Buyer {
	return &Buyer{bus: bus}
}

// SetData merges partial over the current record and always emits, even for
// an empty partial.
func (b *Buyer) SetData(partial model.Buyer) {
	b.data = b.data.Merge(partial)
	b.bus.Emit(events.BuyerChanged{Data: b.Data()})
}

// Data returns a copy of the current record.
func (b *Buyer) Data() model.Buyer {
	return b.data.Clone()
}

// Clear resets to an empty record.
func (b *Buyer) Clear() {
	b.data = model.Buyer{}
	b.bus.Emit(events.BuyerChanged{Data: b.Data()})
}

// Validate checks the requested fields (all four when none are given) and
// returns only the failing ones, or nil.
func (b *Buyer) Validate(fields ...model.Field) model.Errors {
	return Validate(b.data, fields...)
}

// IsOrderStepComplete reports whether payment and address are present.
func (b *Buyer) IsOrderStepComplete() bool {
	return present(b.data, model.OrderStepFields...)
}

// IsContactsStepComplete reports whether email and phone are present.
func (b *Buyer) IsContactsStepComplete() bool {
	return present(b.data, model.ContactsStepFields...)
}

// Order builds the submission payload for the given cart contents.
func (b *Buyer) Order(items []string, total decimal.Decimal) (model.Order, error) {
	if !present(b.data, model.AllFields...) {
		return model.Order{}, ErrIncompleteBuyer
	}
	if len(items) == 0 {
		return model.Order{}, ErrEmptyCart
	}
	return model.Order{
		Payment: *b.data.Payment,
		Email:   *b.data.Email,
		Phone:   *b.data.Phone,
		Address: *b.data.Address,
		Items:   append([]string(nil), items...),
		Total:   total,
	}, nil
}

func present(d model.Buyer, fields ...model.Field) bool {
	for _, f := range fields {
		if model.Blank(d.Value(f)) {
			return false
		}
	}
	return true
}
