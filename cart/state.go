package cart

import "errors"

// ErrInvalidQuantity is returned when an add carries a non-positive quantity.
var ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")

// Delivery options.
const (
	DeliveryPickup   = "pickup"
	DeliveryDelivery = "delivery"
)

// Payment methods. Informational only, never validated against totals.
const (
	PaymentPix  = "pix"
	PaymentCard = "card"
	PaymentCash = "cash"
)

// Line is one distinct product selection in the cart.
type Line struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Farmer    string  `json:"farmer"`
}

// State owns the lines of one cart plus the delivery and payment selection.
// Totals are derived on every read so they can never go stale. State itself is
// not safe for concurrent use; Store serializes access per user.
type State struct {
	lines          []Line
	deliveryOption string
	deliveryCost   float64
	paymentMethod  string
}

// NewState returns an empty cart with pickup delivery and PIX payment
// preselected, matching the defaults the client starts from.
func NewState() *State {
	return &State{
		deliveryOption: DeliveryPickup,
		paymentMethod:  PaymentPix,
	}
}

// AddItem appends line, or merges quantities when a line with the same ID
// already exists. On merge the existing name, price and farmer are kept.
func (s *State) AddItem(line Line) error {
	if line.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range s.lines {
		if s.lines[i].ID == line.ID {
			s.lines[i].Quantity += line.Quantity
			return nil
		}
	}
	s.lines = append(s.lines, line)
	return nil
}

// RemoveItem deletes the line with the given ID. Removing a missing ID is a
// no-op, not an error.
func (s *State) RemoveItem(id string) {
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of the line with the given ID. A quantity
// below 1 is a no-op guard (removal is explicit via RemoveItem), and an
// unknown ID is a no-op, not an error.
func (s *State) UpdateQuantity(id string, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the lines. The delivery and payment selection is untouched.
func (s *State) Clear() {
	s.lines = nil
}

// SetDeliveryOption records the delivery choice. Cost is set separately; the
// caller keeps option and cost consistent.
func (s *State) SetDeliveryOption(option string) {
	s.deliveryOption = option
}

func (s *State) SetDeliveryCost(cost float64) {
	s.deliveryCost = cost
}

func (s *State) SetPaymentMethod(method string) {
	s.paymentMethod = method
}

// Lines returns a copy of the cart lines in insertion order.
func (s *State) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *State) DeliveryOption() string { return s.deliveryOption }
func (s *State) DeliveryCost() float64  { return s.deliveryCost }
func (s *State) PaymentMethod() string  { return s.paymentMethod }

// Subtotal is the sum of unit price times quantity over all lines.
func (s *State) Subtotal() float64 {
	var sum float64
	for _, l := range s.lines {
		sum += l.UnitPrice * float64(l.Quantity)
	}
	return sum
}

// Total is the subtotal plus the delivery cost.
func (s *State) Total() float64 {
	return s.Subtotal() + s.deliveryCost
}
