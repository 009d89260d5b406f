package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"feira/cart"
	"feira/db"
	"feira/models"
	"feira/mq"
	"feira/producers"
	"feira/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Handler wires checkout to the cart store and order persistence.
type Handler struct {
	Carts *cart.Store
}

func NewHandler(store *cart.Store) *Handler {
	return &Handler{Carts: store}
}

// PlaceOrder snapshots the caller's cart into an order, clears the cart and
// emits an order event. Totals come from the aggregator, never the client.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ProducerID string `json:"producerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("PlaceOrder decode error:", err)
		http.Error(w, "Invalid order payload", http.StatusBadRequest)
		return
	}
	if input.ProducerID == "" {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "producerId is required"})
		return
	}

	var (
		lines          []cart.Line
		deliveryOption string
		deliveryCost   float64
		paymentMethod  string
		subtotal       float64
		total          float64
	)
	h.Carts.With(userID, func(s *cart.State) {
		lines = s.Lines()
		deliveryOption = s.DeliveryOption()
		deliveryCost = s.DeliveryCost()
		paymentMethod = s.PaymentMethod()
		subtotal = s.Subtotal()
		total = s.Total()
	})

	if len(lines) == 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Cart is empty"})
		return
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID: l.ID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Farmer:    l.Farmer,
		})
	}

	order := models.Order{
		OrderID:        uuid.NewString(),
		ConsumerID:     userID,
		ProducerID:     input.ProducerID,
		Items:          items,
		DeliveryOption: deliveryOption,
		DeliveryCost:   deliveryCost,
		PaymentMethod:  paymentMethod,
		Subtotal:       subtotal,
		Total:          total,
		Status:         models.OrderPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if paymentMethod == cart.PaymentPix {
		order.PixPayload = pixPayload(order.OrderID, order.Total)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		log.Println("PlaceOrder InsertOne error:", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Order creation failed"})
		return
	}

	h.Carts.With(userID, func(s *cart.State) {
		s.Clear()
	})

	go mq.Emit(context.Background(), mq.OrderEvent{
		OrderID:    order.OrderID,
		ProducerID: order.ProducerID,
		ConsumerID: order.ConsumerID,
		Status:     order.Status,
		Total:      order.Total,
	})

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// GetMyOrders lists orders the caller placed, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listOrders(w, r, "consumerid")
}

// GetIncomingOrders lists orders received by the caller's producer profile.
func GetIncomingOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var producer models.Producer
	if err := db.ProducersCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&producer); err != nil {
		utils.RespondWithJSON(w, http.StatusForbidden, utils.M{"success": false, "message": "No producer profile"})
		return
	}

	cursor, err := db.OrdersCollection.Find(ctx,
		bson.M{"producerid": producer.ProducerID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Could not retrieve orders"})
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Error reading orders"})
		return
	}
	if len(orders) == 0 {
		orders = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

func listOrders(w http.ResponseWriter, r *http.Request, field string) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.OrdersCollection.Find(ctx,
		bson.M{field: userID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Could not retrieve orders"})
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Error reading orders"})
		return
	}
	if len(orders) == 0 {
		orders = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// AcceptOrder moves a pending order to accepted and records the sale in the
// producer's metrics.
func AcceptOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	transitionOrder(w, r, ps.ByName("orderid"), models.OrderPending, models.OrderAccepted, true)
}

// RejectOrder moves a pending order to rejected.
func RejectOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	transitionOrder(w, r, ps.ByName("orderid"), models.OrderPending, models.OrderRejected, false)
}

// MarkOrderDelivered moves an accepted order to delivered.
func MarkOrderDelivered(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	transitionOrder(w, r, ps.ByName("orderid"), models.OrderAccepted, models.OrderDelivered, false)
}

// transitionOrder enforces producer ownership and the from->to status step.
func transitionOrder(w http.ResponseWriter, r *http.Request, orderID, from, to string, recordSale bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var producer models.Producer
	if err := db.ProducersCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&producer); err != nil {
		utils.RespondWithJSON(w, http.StatusForbidden, utils.M{"success": false, "message": "No producer profile"})
		return
	}

	var order models.Order
	err := db.OrdersCollection.FindOneAndUpdate(ctx,
		bson.M{"orderid": orderID, "producerid": producer.ProducerID, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{"success": false, "message": "Order not found or not in a valid state"})
		return
	}

	if recordSale {
		if err := producers.RecordSale(ctx, order.ProducerID, order.Total); err != nil {
			log.Println("transitionOrder RecordSale error:", err)
		}
	}

	go mq.Emit(context.Background(), mq.OrderEvent{
		OrderID:    order.OrderID,
		ProducerID: order.ProducerID,
		ConsumerID: order.ConsumerID,
		Status:     order.Status,
		Total:      order.Total,
	})

	utils.RespondWithJSON(w, http.StatusOK, order)
}
