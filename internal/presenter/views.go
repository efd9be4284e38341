package presenter

import (
	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/model"
)

// Preview button labels.
const (
	ButtonAdd         = "Add to basket"
	ButtonRemove      = "Remove from basket"
	ButtonUnavailable = "Unavailable"
)

// Content is what the modal currently hosts.
type Content int

const (
	ContentNone Content = iota
	ContentPreview
	ContentBasket
	ContentOrder
	ContentContacts
	ContentSuccess
)

func (c Content) String() string {
	switch c {
	case ContentPreview:
		return "preview"
	case ContentBasket:
		return "basket"
	case ContentOrder:
		return "order"
	case ContentContacts:
		return "contacts"
	case ContentSuccess:
		return "success"
	}
	return "none"
}

// CardModel is the display data of a catalog card.
type CardModel struct {
	ID       string
	Title    string
	Category string
	Image    string
	Price    decimal.NullDecimal
}

// PreviewModel is the display data of the product preview.
type PreviewModel struct {
	CardModel
	Description    string
	ButtonText     string
	ButtonDisabled bool
}

// BasketRow is one numbered line of the basket.
type BasketRow struct {
	Index int
	ID    string
	Title string
	Price decimal.NullDecimal
}

// View contracts. Views only receive display data; they report user intent
// by emitting events on the bus.
type (
	HeaderView interface {
		SetCounter(n int)
		SetStatus(msg string)
	}

	CatalogView interface {
		SetCards(cards []CardModel)
	}

	PreviewView interface {
		SetProduct(vm PreviewModel)
	}

	BasketView interface {
		SetItems(rows []BasketRow)
		SetTotal(total decimal.Decimal)
		SetCheckoutEnabled(enabled bool)
	}

	// FormView is shared by both checkout steps. SetErrors receives every
	// failing field of the step; the view shows only those the user touched.
	FormView interface {
		SetErrors(errs model.Errors)
		SetSubmitEnabled(enabled bool)
		ResetTouched()
		SetStatus(msg string)
	}

	OrderFormView interface {
		FormView
		SetPayment(p model.Payment)
		SetAddress(address string)
	}

	ContactsFormView interface {
		FormView
		SetEmail(email string)
		SetPhone(phone string)
	}

	SuccessView interface {
		SetTotal(total decimal.Decimal)
	}

	ModalView interface {
		Show(c Content)
		Close()
	}
)

// Views is the set of view collaborators the presenter renders into.
type Views struct {
	Header   HeaderView
	Catalog  CatalogView
	Preview  PreviewView
	Basket   BasketView
	Order    OrderFormView
	Contacts ContactsFormView
	Success  SuccessView
	Modal    ModalView
}
