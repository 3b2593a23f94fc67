package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lankacraft/marketapi/internal/domain"
)

func woodenMask() Item {
	return Item{
		ID:        "p1",
		Name:      "Raksha Mask",
		UnitPrice: 1000,
		SellerID:  "s1",
		ShopName:  "Heritage Crafts",
	}
}

func TestAddItemNew(t *testing.T) {
	state := Empty().AddItem(woodenMask(), 2)

	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
	assert.Equal(t, 2, state.TotalItems)
	assert.Equal(t, 2000.0, state.TotalAmount)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	state := Empty().AddItem(woodenMask(), 0)

	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Quantity)
}

func TestAddItemMergesExisting(t *testing.T) {
	item := woodenMask()
	item.MaxQuantity = 5

	state := Empty().AddItem(item, 1).AddItem(item, 3)

	require.Len(t, state.Items, 1, "re-adding the same id must not duplicate")
	assert.Equal(t, 4, state.Items[0].Quantity)
	assert.Equal(t, 4000.0, state.TotalAmount)
}

func TestAddItemClampsToMaxQuantity(t *testing.T) {
	item := woodenMask()
	item.MaxQuantity = 5

	state := Empty().AddItem(item, 4).AddItem(item, 4)

	assert.Equal(t, 5, state.Items[0].Quantity)
	assert.Equal(t, 5000.0, state.TotalAmount)
}

func TestAddItemClampsToDefaultCap(t *testing.T) {
	state := Empty().AddItem(woodenMask(), 50).AddItem(woodenMask(), 60)

	assert.Equal(t, DefaultMaxQuantity, state.Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	state := Empty().AddItem(woodenMask(), 2).RemoveItem("p1")

	assert.Empty(t, state.Items)
	assert.Zero(t, state.TotalItems)
	assert.Zero(t, state.TotalAmount)
}

func TestRemoveItemUnknownIDIsNoop(t *testing.T) {
	before := Empty().AddItem(woodenMask(), 2)
	after := before.RemoveItem("nope")

	assert.Equal(t, before, after)
}

func TestUpdateQuantity(t *testing.T) {
	state := Empty().AddItem(woodenMask(), 1).UpdateQuantity("p1", 3)

	assert.Equal(t, 3, state.Items[0].Quantity)
	assert.Equal(t, 3000.0, state.TotalAmount)
}

func TestUpdateQuantityClampsToCap(t *testing.T) {
	item := woodenMask()
	item.MaxQuantity = 5

	state := Empty().AddItem(item, 1).UpdateQuantity("p1", 10)

	assert.Equal(t, 5, state.Items[0].Quantity)
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	state := Empty().AddItem(woodenMask(), 2).UpdateQuantity("p1", 0)

	assert.Empty(t, state.Items)
	assert.Zero(t, state.TotalItems)
}

func TestUpdateQuantityNegativeRemoves(t *testing.T) {
	state := Empty().AddItem(woodenMask(), 2).UpdateQuantity("p1", -5)

	assert.Empty(t, state.Items)
	assert.Zero(t, state.TotalAmount)
}

func TestClearResetsEverything(t *testing.T) {
	state := Empty().
		AddItem(woodenMask(), 3).
		SetPaymentMethod(domain.PaymentMethod{ID: "cod", Type: domain.PaymentTypeCOD}).
		Clear()

	assert.Equal(t, Empty(), state)
}

func TestSetPaymentMethodLeavesTotalsAlone(t *testing.T) {
	state := Empty().AddItem(woodenMask(), 2)
	state = state.SetPaymentMethod(domain.PaymentMethod{ID: "card", Type: domain.PaymentTypeCard})

	require.NotNil(t, state.SelectedPaymentMethod)
	assert.Equal(t, "card", state.SelectedPaymentMethod.ID)
	assert.Equal(t, 2, state.TotalItems)
	assert.Equal(t, 2000.0, state.TotalAmount)
}

func TestItemQuantity(t *testing.T) {
	state := Empty().AddItem(woodenMask(), 2)

	assert.Equal(t, 2, state.ItemQuantity("p1"))
	assert.Equal(t, 0, state.ItemQuantity("absent"))
}

// Totals must equal the sums over items after any sequence of operations.
func TestTotalsAlwaysDerivedFromItems(t *testing.T) {
	second := Item{ID: "p2", Name: "Batik Scarf", UnitPrice: 750, SellerID: "s2", ShopName: "Ceylon Textiles"}

	state := Empty().
		AddItem(woodenMask(), 2).
		AddItem(second, 1).
		UpdateQuantity("p1", 4).
		AddItem(second, 2).
		RemoveItem("p1")

	wantItems := 0
	wantAmount := 0.0
	for _, item := range state.Items {
		wantItems += item.Quantity
		wantAmount += item.UnitPrice * float64(item.Quantity)
	}
	assert.Equal(t, wantItems, state.TotalItems)
	assert.Equal(t, wantAmount, state.TotalAmount)
}
