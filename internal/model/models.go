package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Payment is the buyer's chosen payment method.
type Payment string

const (
	PaymentCard Payment = "card"
	PaymentCash Payment = "cash"
)

// Valid reports whether p is one of the recognized payment methods.
func (p Payment) Valid() bool {
	return p == PaymentCard || p == PaymentCash
}

// Product represents a catalog item. A product without a price is "priceless"
// and cannot be bought.
type Product struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Category    string              `json:"category"`
	Price       decimal.NullDecimal `json:"price"`
}

// Priced reports whether the product carries a price.
func (p Product) Priced() bool { return p.Price.Valid }

// PriceOrZero returns the price, treating a priceless product as zero.
func (p Product) PriceOrZero() decimal.Decimal {
	if !p.Price.Valid {
		return decimal.Zero
	}
	return p.Price.Decimal
}

// Field names a buyer field subject to validation.
type Field string

const (
	FieldPayment Field = "payment"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldAddress Field = "address"
)

// AllFields lists every buyer field in display order.
var AllFields = []Field{FieldPayment, FieldAddress, FieldEmail, FieldPhone}

// Step field sets.
var (
	OrderStepFields    = []Field{FieldPayment, FieldAddress}
	ContactsStepFields = []Field{FieldEmail, FieldPhone}
)

// Errors maps a failing field to its message. A nil Errors means valid.
type Errors map[Field]string

// Only returns the subset of e whose field is in fields.
func (e Errors) Only(fields ...Field) Errors {
	out := Errors{}
	for _, f := range fields {
		if msg, ok := e[f]; ok {
			out[f] = msg
		}
	}
	return out
}

// Buyer is the partially filled checkout record. Nil fields are unset.
type Buyer struct {
	Payment *Payment `json:"payment,omitempty"`
	Email   *string  `json:"email,omitempty"`
	Phone   *string  `json:"phone,omitempty"`
	Address *string  `json:"address,omitempty"`
}

// Merge returns b with every set field of partial written over it.
func (b Buyer) Merge(partial Buyer) Buyer {
	if partial.Payment != nil {
		b.Payment = Ptr(*partial.Payment)
	}
	if partial.Email != nil {
		b.Email = Ptr(*partial.Email)
	}
	if partial.Phone != nil {
		b.Phone = Ptr(*partial.Phone)
	}
	if partial.Address != nil {
		b.Address = Ptr(*partial.Address)
	}
	return b
}

// Clone returns a deep copy so callers cannot alias store internals.
func (b Buyer) Clone() Buyer {
	return Buyer{}.Merge(b)
}

// IsEmpty reports whether no field is set.
func (b Buyer) IsEmpty() bool {
	return b.Payment == nil && b.Email == nil && b.Phone == nil && b.Address == nil
}

// Value returns the raw string value of field, or "" when unset.
func (b Buyer) Value(f Field) string {
	switch f {
	case FieldPayment:
		if b.Payment != nil {
			return string(*b.Payment)
		}
	case FieldEmail:
		return deref(b.Email)
	case FieldPhone:
		return deref(b.Phone)
	case FieldAddress:
		return deref(b.Address)
	}
	return ""
}

// Set returns a partial Buyer carrying only field set to value.
func Set(f Field, value string) Buyer {
	switch f {
	case FieldPayment:
		return Buyer{Payment: Ptr(Payment(value))}
	case FieldEmail:
		return Buyer{Email: Ptr(value)}
	case FieldPhone:
		return Buyer{Phone: Ptr(value)}
	case FieldAddress:
		return Buyer{Address: Ptr(value)}
	}
	return Buyer{}
}

// Blank reports whether s is empty after trimming whitespace.
func Blank(s string) bool { return strings.TrimSpace(s) == "" }

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T { return &v }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Order is the submission payload sent to the order service.
type Order struct {
	Payment Payment
	Email   string
	Phone   string
	Address string
	Items   []string
	Total   decimal.Decimal
}

// OrderResult is the service confirmation of a created order.
type OrderResult struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}
