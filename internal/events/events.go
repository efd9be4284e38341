package events

import "github.com/jask/storefront/internal/model"

// Name is an event name on the bus.
type Name string

// Event is implemented by every payload carried on the bus; the name
// discriminates the payload shape.
type Event interface {
	EventName() Name
}

// Store notifications.
const (
	NameCatalogChanged      Name = "catalog:changed"
	NameSelectedItemChanged Name = "selected-item:changed"
	NameCartChanged         Name = "cart:changed"
	NameBuyerChanged        Name = "buyer:changed"
)

// View events.
const (
	NameCardSelected         Name = "card:select"
	NameCardAction           Name = "card:action"
	NameBasketOpened         Name = "basket:open"
	NameBasketItemRemoved    Name = "basket:remove"
	NameBasketCleared        Name = "basket:clear"
	NameCheckoutInitiated    Name = "basket:checkout"
	NamePaymentSelected      Name = "payment:selected"
	NameOrderFieldChanged    Name = "order:field-changed"
	NameContactsFieldChanged Name = "contacts:field-changed"
	NameOrderSubmitted       Name = "order:submit"
	NameContactsSubmitted    Name = "contacts:submit"
	NameContactsBack         Name = "contacts:back"
	NameSuccessClosed        Name = "success:close"
	NameModalClosed          Name = "modal:close"
	NameCatalogReload        Name = "catalog:reload"
	NameCatalogSearched      Name = "catalog:search"
)

// CatalogChanged carries a copy of the full product list.
type CatalogChanged struct{ Products []model.Product }

// SelectedItemChanged carries the newly selected product.
type SelectedItemChanged struct{ Product model.Product }

// CartChanged carries a copy of the cart contents.
type CartChanged struct{ Items []model.Product }

// BuyerChanged carries the full merged buyer record.
type BuyerChanged struct{ Data model.Buyer }

// CardSelected is emitted when a catalog card is chosen.
type CardSelected struct{ Product model.Product }

// CardAction is emitted by the preview's add/remove button.
type CardAction struct{ ProductID string }

// BasketOpened is emitted by the header basket button.
type BasketOpened struct{}

// BasketItemRemoved is emitted by a basket row's delete button.
type BasketItemRemoved struct{ ID string }

// BasketCleared is emitted by the basket's clear control.
type BasketCleared struct{}

// CheckoutInitiated is emitted by the basket checkout button.
type CheckoutInitiated struct{}

// PaymentSelected is emitted when a payment option is picked.
type PaymentSelected struct{ Payment model.Payment }

// OrderFieldChanged carries raw input from the order step form.
type OrderFieldChanged struct {
	Field model.Field
	Value string
}

// ContactsFieldChanged carries raw input from the contacts step form.
type ContactsFieldChanged struct {
	Field model.Field
	Value string
}

// OrderSubmitted is emitted by the order step submit control.
type OrderSubmitted struct {
	Payment model.Payment
	Address string
}

// ContactsSubmitted is emitted by the contacts step submit control.
type ContactsSubmitted struct {
	Email string
	Phone string
}

// ContactsBack navigates from the contacts step back to the order step.
type ContactsBack struct{}

// SuccessClosed is emitted by the success view close control.
type SuccessClosed struct{}

// ModalClosed is emitted when the user dismisses the modal.
type ModalClosed struct{}

// CatalogReloadRequested asks for a fresh product list.
type CatalogReloadRequested struct{}

// CatalogSearched asks to select the product best matching Query.
type CatalogSearched struct{ Query string }

// Named is an ad-hoc event produced by Bus.Trigger.
type Named struct {
	Name    Name
	Payload any
}

func (CatalogChanged) EventName() Name         { return NameCatalogChanged }
func (SelectedItemChanged) EventName() Name    { return NameSelectedItemChanged }
func (CartChanged) EventName() Name            { return NameCartChanged }
func (BuyerChanged) EventName() Name           { return NameBuyerChanged }
func (CardSelected) EventName() Name           { return NameCardSelected }
func (CardAction) EventName() Name             { return NameCardAction }
func (BasketOpened) EventName() Name           { return NameBasketOpened }
func (BasketItemRemoved) EventName() Name      { return NameBasketItemRemoved }
func (BasketCleared) EventName() Name          { return NameBasketCleared }
func (CheckoutInitiated) EventName() Name      { return NameCheckoutInitiated }
func (PaymentSelected) EventName() Name        { return NamePaymentSelected }
func (OrderFieldChanged) EventName() Name      { return NameOrderFieldChanged }
func (ContactsFieldChanged) EventName() Name   { return NameContactsFieldChanged }
func (OrderSubmitted) EventName() Name         { return NameOrderSubmitted }
func (ContactsSubmitted) EventName() Name      { return NameContactsSubmitted }
func (ContactsBack) EventName() Name           { return NameContactsBack }
func (SuccessClosed) EventName() Name          { return NameSuccessClosed }
func (ModalClosed) EventName() Name            { return NameModalClosed }
func (CatalogReloadRequested) EventName() Name { return NameCatalogReload }
func (CatalogSearched) EventName() Name        { return NameCatalogSearched }
func (n Named) EventName() Name                { return n.Name }
