package store

import (
	"regexp"
	"strings"

	"github.com/jask/storefront/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[78][-\(]?\d{3}\)?-?\d{3}-?\d{2}-?\d{2}$`)
)

// Validation messages.
const (
	MsgPaymentMissing = "select a payment method"
	MsgPaymentInvalid = "select a known payment method"
	MsgEmailMissing   = "enter an email"
	MsgEmailInvalid   = "enter a valid email"
	MsgPhoneMissing   = "enter a phone number"
	MsgPhoneInvalid   = "enter a valid phone number"
	MsgAddressMissing = "enter a delivery address"
)

type rule func(d model.Buyer) string

var rules = map[model.Field]rule{
	model.FieldPayment: func(d model.Buyer) string {
		switch {
		case d.Payment == nil || *d.Payment == "":
			return MsgPaymentMissing
		case !d.Payment.Valid():
			return MsgPaymentInvalid
		}
		return ""
	},
	model.FieldEmail: func(d model.Buyer) string {
		v := strings.TrimSpace(d.Value(model.FieldEmail))
		switch {
		case v == "":
			return MsgEmailMissing
		case !emailPattern.MatchString(v):
			return MsgEmailInvalid
		}
		return ""
	},
	model.FieldPhone: func(d model.Buyer) string {
		v := strings.TrimSpace(d.Value(model.FieldPhone))
		switch {
		case v == "":
			return MsgPhoneMissing
		case !phonePattern.MatchString(v):
			return MsgPhoneInvalid
		}
		return ""
	},
	model.FieldAddress: func(d model.Buyer) string {
		if model.Blank(d.Value(model.FieldAddress)) {
			return MsgAddressMissing
		}
		return ""
	},
}

// Validate runs the per-field rules for fields against d. It is pure.
func Validate(d model.Buyer, fields ...model.Field) model.Errors {
	if len(fields) == 0 {
		fields = model.AllFields
	}
	var errs model.Errors
	for _, f := range fields {
		check, ok := rules[f]
		if !ok {
			continue
		}
		if msg := check(d); msg != "" {
			if errs == nil {
				errs = model.Errors{}
			}
			errs[f] = msg
		}
	}
	return errs
}
