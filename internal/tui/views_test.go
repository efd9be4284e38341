package tui

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/presenter"
)

func TestBasketRender(t *testing.T) {
	v := &basketView{bus: events.NewBus(), prices: NewPriceFormatter(language.English, "")}
	v.SetItems([]presenter.BasketRow{
		{Index: 1, ID: "a", Title: "HEX mouse", Price: decimal.NewNullDecimal(decimal.NewFromInt(1450))},
		{Index: 2, ID: "b", Title: "Keep calm talisman"},
	})
	v.SetTotal(decimal.NewFromInt(1450))
	v.SetCheckoutEnabled(true)

	goldie.New(t).Assert(t, "basket", []byte(v.render()))
}

func TestBasketRenderEmpty(t *testing.T) {
	v := &basketView{bus: events.NewBus(), prices: NewPriceFormatter(language.English, "")}
	v.SetItems(nil)
	v.SetTotal(decimal.Zero)

	goldie.New(t).Assert(t, "basket_empty", []byte(v.render()))
}
