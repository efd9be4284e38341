package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/model"
)

func TestSetDataAlwaysEmits(t *testing.T) {
	bus := events.NewBus()
	b := NewBuyer(bus)
	var got []model.Buyer
	events.Subscribe(bus, func(ev events.BuyerChanged) { got = append(got, ev.Data) })

	b.SetData(model.Buyer{})
	b.SetData(model.Buyer{Address: model.Ptr("Main st")})
	b.SetData(model.Buyer{Email: model.Ptr("a@b.co")})

	require.Len(t, got, 3)
	require.True(t, got[0].IsEmpty())
	require.Equal(t, "Main st", got[2].Value(model.FieldAddress), "merge keeps earlier fields")
	require.Equal(t, "a@b.co", got[2].Value(model.FieldEmail))
}

func TestClearResetsAndEmits(t *testing.T) {
	bus := events.NewBus()
	b := NewBuyer(bus)
	got := recordAll(bus)
	b.SetData(model.Buyer{Phone: model.Ptr("1")})
	b.Clear()
	b.Clear()

	require.True(t, b.Data().IsEmpty())
	require.Len(t, *got, 3)
	require.True(t, (*got)[2].(events.BuyerChanged).Data.IsEmpty())
}

func TestDataIsACopy(t *testing.T) {
	b := NewBuyer(events.NewBus())
	b.SetData(model.Buyer{Address: model.Ptr("A")})
	d := b.Data()
	*d.Address = "B"
	require.Equal(t, "A", b.Data().Value(model.FieldAddress))
}

func TestValidateRules(t *testing.T) {
	card, bogus := model.PaymentCard, model.Payment("crypto")
	cases := []struct {
		name   string
		data   model.Buyer
		fields []model.Field
		want   model.Errors
	}{
		{
			name: "empty record fails every field",
			want: model.Errors{
				model.FieldPayment: MsgPaymentMissing,
				model.FieldEmail:   MsgEmailMissing,
				model.FieldPhone:   MsgPhoneMissing,
				model.FieldAddress: MsgAddressMissing,
			},
		},
		{
			name:   "unknown payment",
			data:   model.Buyer{Payment: &bogus, Address: model.Ptr("x")},
			fields: model.OrderStepFields,
			want:   model.Errors{model.FieldPayment: MsgPaymentInvalid},
		},
		{
			name:   "blank address is missing",
			data:   model.Buyer{Payment: &card, Address: model.Ptr("   ")},
			fields: model.OrderStepFields,
			want:   model.Errors{model.FieldAddress: MsgAddressMissing},
		},
		{
			name:   "bad email and phone shapes",
			data:   model.Buyer{Email: model.Ptr("nobody"), Phone: model.Ptr("12345")},
			fields: model.ContactsStepFields,
			want:   model.Errors{model.FieldEmail: MsgEmailInvalid, model.FieldPhone: MsgPhoneInvalid},
		},
		{
			name:   "valid contacts",
			data:   model.Buyer{Email: model.Ptr("me@shop.io"), Phone: model.Ptr("+7(912)345-67-89")},
			fields: model.ContactsStepFields,
			want:   nil,
		},
		{
			name: "fully valid record",
			data: model.Buyer{
				Payment: &card, Address: model.Ptr("X"),
				Email: model.Ptr("me@shop.io"), Phone: model.Ptr("89123456789"),
			},
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Validate(tc.data, tc.fields...))
		})
	}
}

func TestOrderStepValidationIgnoresContacts(t *testing.T) {
	b := NewBuyer(events.NewBus())
	require.NotNil(t, b.Validate(model.OrderStepFields...))

	b.SetData(model.Buyer{Payment: model.Ptr(model.PaymentCash), Address: model.Ptr("X")})
	require.Nil(t, b.Validate(model.OrderStepFields...), "email/phone are not part of the order step")
	require.NotNil(t, b.Validate(model.ContactsStepFields...))

	b.SetData(model.Buyer{Address: model.Ptr("")})
	require.Equal(t, model.Errors{model.FieldAddress: MsgAddressMissing}, b.Validate(model.OrderStepFields...))
}

func TestStepCompletenessIgnoresFormat(t *testing.T) {
	b := NewBuyer(events.NewBus())
	require.False(t, b.IsOrderStepComplete())
	require.False(t, b.IsContactsStepComplete())

	b.SetData(model.Buyer{Email: model.Ptr("not-an-email"), Phone: model.Ptr("1")})
	require.True(t, b.IsContactsStepComplete())
	require.NotNil(t, b.Validate(model.ContactsStepFields...))

	b.SetData(model.Buyer{Payment: model.Ptr(model.PaymentCard), Address: model.Ptr(" ")})
	require.False(t, b.IsOrderStepComplete())
}

func TestOrderRequiresCompleteBuyerAndItems(t *testing.T) {
	b := NewBuyer(events.NewBus())
	_, err := b.Order([]string{"a"}, decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrIncompleteBuyer)

	b.SetData(model.Buyer{
		Payment: model.Ptr(model.PaymentCard), Address: model.Ptr("X"),
		Email: model.Ptr("me@shop.io"), Phone: model.Ptr("89123456789"),
	})
	_, err = b.Order(nil, decimal.Zero)
	require.ErrorIs(t, err, ErrEmptyCart)

	o, err := b.Order([]string{"a", "b"}, decimal.NewFromInt(300))
	require.NoError(t, err)
	require.Equal(t, model.PaymentCard, o.Payment)
	require.Equal(t, []string{"a", "b"}, o.Items)
	require.Equal(t, "300", o.Total.String())
}
