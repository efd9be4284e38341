package store

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/model"
)

func product(id string, price int64) model.Product {
	return model.Product{ID: id, Title: "Item " + id, Price: decimal.NewNullDecimal(decimal.NewFromInt(price))}
}

func priceless(id string) model.Product {
	return model.Product{ID: id, Title: "Item " + id}
}

func recordAll(bus *events.Bus) *[]events.Event {
	var got []events.Event
	bus.On(events.Wildcard, func(ev events.Event) { got = append(got, ev) })
	return &got
}

func TestCartTotalAndCountFollowRandomOperations(t *testing.T) {
	bus := events.NewBus()
	cart := NewCart(bus)
	pool := []model.Product{product("a", 100), product("b", 250), priceless("c"), product("d", 1)}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		p := pool[rng.Intn(len(pool))]
		if rng.Intn(3) == 0 {
			cart.RemoveItem(p.ID)
		} else {
			cart.AddItem(p)
		}

		want := decimal.Zero
		for _, it := range cart.Items() {
			want = want.Add(it.PriceOrZero())
		}
		require.True(t, want.Equal(cart.Total()), "step %d", i)
		require.Equal(t, len(cart.Items()), cart.Count())
	}
}

func TestCartRemoveItemRemovesAllMatches(t *testing.T) {
	cart := NewCart(events.NewBus())
	cart.AddItem(product("a", 1))
	cart.AddItem(product("b", 2))
	cart.AddItem(product("a", 1))

	cart.RemoveItem("a")
	require.Equal(t, []string{"b"}, cart.IDs())
	require.False(t, cart.Contains("a"))
}

func TestCartClearIsIdempotent(t *testing.T) {
	bus := events.NewBus()
	cart := NewCart(bus)
	got := recordAll(bus)
	cart.AddItem(product("a", 1))

	cart.Clear()
	cart.Clear()
	require.Empty(t, cart.Items())
	require.True(t, cart.Total().IsZero())
	require.Len(t, *got, 3)
	require.Empty(t, (*got)[2].(events.CartChanged).Items)
}

func TestCartEventCarriesSnapshot(t *testing.T) {
	bus := events.NewBus()
	cart := NewCart(bus)
	var snap []model.Product
	events.Subscribe(bus, func(ev events.CartChanged) { snap = ev.Items })

	cart.AddItem(product("a", 1))
	snap[0].Title = "mutated"
	require.Equal(t, "Item a", cart.Items()[0].Title)
}

func TestCartTotalToleratesPriceless(t *testing.T) {
	cart := NewCart(events.NewBus())
	cart.AddItem(priceless("x"))
	cart.AddItem(product("y", 40))
	require.Equal(t, "40", cart.Total().String())
}

func TestCatalogSetItemsAndSelection(t *testing.T) {
	bus := events.NewBus()
	cat := NewCatalog(bus)
	got := recordAll(bus)

	require.Empty(t, cat.Items())
	_, ok := cat.SelectedItem()
	require.False(t, ok)

	cat.SetItems([]model.Product{product("1", 10), product("2", 20)})
	cat.SetSelectedItem(product("2", 20))

	require.Len(t, *got, 2)
	require.Len(t, (*got)[0].(events.CatalogChanged).Products, 2)
	require.Equal(t, "2", (*got)[1].(events.SelectedItemChanged).Product.ID)

	p, ok := cat.ItemByID("1")
	require.True(t, ok)
	require.Equal(t, "Item 1", p.Title)
	_, ok = cat.ItemByID("nope")
	require.False(t, ok)

	sel, ok := cat.SelectedItem()
	require.True(t, ok)
	require.Equal(t, "2", sel.ID)
}

func TestCatalogMatch(t *testing.T) {
	cat := NewCatalog(events.NewBus())
	cat.SetItems([]model.Product{
		{ID: "1", Title: "+1 hour to the day"},
		{ID: "2", Title: "HEX mouse"},
		{ID: "3", Title: "Mouse"},
	})

	p, ok := cat.Match("mouse")
	require.True(t, ok)
	require.Equal(t, "3", p.ID, "closest containing title wins")

	p, ok = cat.Match("hex mose")
	require.True(t, ok)
	require.Equal(t, "2", p.ID)

	_, ok = cat.Match("zzzzzzzzzzzz")
	require.False(t, ok)
	_, ok = cat.Match("  ")
	require.False(t, ok)
}
