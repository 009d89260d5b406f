package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tomatoes(qty int) Line {
	return Line{ID: "p1", Name: "Tomatoes", UnitPrice: 2.50, Quantity: qty, Farmer: "Sítio Boa Vista"}
}

func TestNewStateDefaults(t *testing.T) {
	s := NewState()

	assert.Empty(t, s.Lines())
	assert.Equal(t, DeliveryPickup, s.DeliveryOption())
	assert.Equal(t, 0.0, s.DeliveryCost())
	assert.Equal(t, PaymentPix, s.PaymentMethod())
	assert.Equal(t, 0.0, s.Total())
}

func TestAddItemMergesSameID(t *testing.T) {
	s := NewState()

	require.NoError(t, s.AddItem(tomatoes(2)))
	require.NoError(t, s.AddItem(tomatoes(3)))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.InDelta(t, 12.50, s.Subtotal(), 1e-9)
}

func TestAddItemMergeKeepsExistingFields(t *testing.T) {
	s := NewState()

	require.NoError(t, s.AddItem(tomatoes(1)))
	require.NoError(t, s.AddItem(Line{ID: "p1", Name: "Different", UnitPrice: 9.99, Quantity: 1, Farmer: "Other"}))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Tomatoes", lines[0].Name)
	assert.Equal(t, 2.50, lines[0].UnitPrice)
	assert.Equal(t, "Sítio Boa Vista", lines[0].Farmer)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	s := NewState()

	assert.ErrorIs(t, s.AddItem(tomatoes(0)), ErrInvalidQuantity)
	assert.ErrorIs(t, s.AddItem(tomatoes(-2)), ErrInvalidQuantity)
	assert.Empty(t, s.Lines())
}

func TestRemoveItem(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddItem(tomatoes(2)))
	require.NoError(t, s.AddItem(Line{ID: "p2", Name: "Eggs", UnitPrice: 8, Quantity: 1}))

	s.RemoveItem("p1")

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ID)

	// missing ID is a no-op
	s.RemoveItem("nope")
	assert.Len(t, s.Lines(), 1)
}

func TestUpdateQuantity(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddItem(tomatoes(2)))

	s.UpdateQuantity("p1", 7)
	assert.Equal(t, 7, s.Lines()[0].Quantity)

	// below 1 leaves the line untouched
	s.UpdateQuantity("p1", 0)
	s.UpdateQuantity("p1", -3)
	assert.Equal(t, 7, s.Lines()[0].Quantity)

	// unknown ID is a no-op
	s.UpdateQuantity("nope", 3)
	require.Len(t, s.Lines(), 1)
	assert.Equal(t, 7, s.Lines()[0].Quantity)
}

func TestClearKeepsDeliverySelection(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddItem(tomatoes(4)))
	s.SetDeliveryOption(DeliveryDelivery)
	s.SetDeliveryCost(5.00)
	s.SetPaymentMethod(PaymentCard)

	s.Clear()

	assert.Empty(t, s.Lines())
	assert.Equal(t, 0.0, s.Subtotal())
	assert.Equal(t, DeliveryDelivery, s.DeliveryOption())
	assert.Equal(t, 5.00, s.DeliveryCost())
	assert.Equal(t, PaymentCard, s.PaymentMethod())
	assert.InDelta(t, 5.00, s.Total(), 1e-9)
}

func TestTotalIncludesDeliveryCost(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddItem(Line{ID: "p1", Name: "Honey", UnitPrice: 20, Quantity: 1}))

	s.SetDeliveryOption(DeliveryDelivery)
	s.SetDeliveryCost(5.00)

	assert.InDelta(t, 20.0, s.Subtotal(), 1e-9)
	assert.InDelta(t, 25.0, s.Total(), 1e-9)
}

// total stays consistent with subtotal plus delivery cost after every mutation
func TestTotalConsistency(t *testing.T) {
	s := NewState()
	check := func() {
		assert.InDelta(t, s.Subtotal()+s.DeliveryCost(), s.Total(), 1e-9)
	}

	check()
	require.NoError(t, s.AddItem(tomatoes(2)))
	check()
	require.NoError(t, s.AddItem(Line{ID: "p2", Name: "Eggs", UnitPrice: 8, Quantity: 3}))
	check()
	s.SetDeliveryCost(5.00)
	check()
	s.UpdateQuantity("p2", 1)
	check()
	s.RemoveItem("p1")
	check()
	s.Clear()
	check()
}

func TestLinesReturnsCopy(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddItem(tomatoes(2)))

	lines := s.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 2, s.Lines()[0].Quantity)
}
