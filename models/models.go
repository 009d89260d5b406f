package models

import "time"

// User is a login account. Role decides which dashboard the client shows.
type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"password"`
	Role          string    `json:"role" bson:"role"` // "consumer" | "producer"
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"-" bson:"last_login,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// Producer is a farm/producer profile with its pickup coordinates.
type Producer struct {
	ProducerID string    `json:"id" bson:"producerid"`
	UserID     string    `json:"userId" bson:"userid"`
	Name       string    `json:"name" bson:"name"`
	Latitude   float64   `json:"latitude" bson:"latitude"`
	Longitude  float64   `json:"longitude" bson:"longitude"`
	Category   string    `json:"category" bson:"category"` // e.g. "Frutas", "Verduras", "Legumes"
	Contact    string    `json:"contact,omitempty" bson:"contact,omitempty"`
	Photo      string    `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Product is something a producer sells.
type Product struct {
	ProductID  string    `json:"id" bson:"productid"`
	ProducerID string    `json:"producerId" bson:"producerid"`
	Name       string    `json:"name" bson:"name"`
	Category   string    `json:"category" bson:"category"`
	Price      float64   `json:"price" bson:"price"` // unit price
	Unit       string    `json:"unit,omitempty" bson:"unit,omitempty"`
	Photo      string    `json:"photo,omitempty" bson:"photo,omitempty"`
	Thumb      string    `json:"thumb,omitempty" bson:"thumb,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// OrderItem is a cart line frozen into an order.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productid"`
	Name      string  `json:"name" bson:"name"`
	UnitPrice float64 `json:"unitPrice" bson:"unitprice"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Farmer    string  `json:"farmer" bson:"farmer"`
}

// Order statuses.
const (
	OrderPending   = "pending"
	OrderAccepted  = "accepted"
	OrderRejected  = "rejected"
	OrderDelivered = "delivered"
)

// Order represents a finalized checkout.
type Order struct {
	OrderID        string      `json:"orderId" bson:"orderid"`
	ConsumerID     string      `json:"consumerId" bson:"consumerid"`
	ProducerID     string      `json:"producerId" bson:"producerid"`
	Items          []OrderItem `json:"items" bson:"items"`
	DeliveryOption string      `json:"deliveryOption" bson:"deliveryoption"` // "pickup" | "delivery"
	DeliveryCost   float64     `json:"deliveryCost" bson:"deliverycost"`
	PaymentMethod  string      `json:"paymentMethod" bson:"paymentmethod"` // "pix" | "card" | "cash"
	Subtotal       float64     `json:"subtotal" bson:"subtotal"`
	Total          float64     `json:"total" bson:"total"`
	Status         string      `json:"status" bson:"status"`
	PixPayload     string      `json:"pixPayload,omitempty" bson:"pixpayload,omitempty"`
	CreatedAt      time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// ProducerMetrics backs the farmer dashboard counters.
type ProducerMetrics struct {
	ProducerID    string    `json:"producerId" bson:"producerid"`
	TotalSales    float64   `json:"totalSales" bson:"totalsales"`
	OrdersCount   int       `json:"ordersCount" bson:"orderscount"`
	ProductsCount int       `json:"productsCount" bson:"productscount"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}
