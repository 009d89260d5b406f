package cart

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"feira/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler exposes the cart aggregator over HTTP. The store is injected so
// cart state has a single owner instead of living in a package global.
type Handler struct {
	Carts *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Carts: store}
}

// AddItem merges the posted line into the user's cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var line Line
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		log.Println("AddItem decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if line.ID == "" || line.UnitPrice < 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Missing or invalid fields"})
		return
	}

	var addErr error
	h.Carts.With(userID, func(s *State) {
		addErr = s.AddItem(line)
	})
	if addErr != nil {
		if errors.Is(addErr, ErrInvalidQuantity) {
			utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Quantity must be at least 1"})
			return
		}
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to add to cart"})
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "status": "added"})
}

// RemoveItem deletes one line. Unknown IDs succeed silently.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.Carts.With(userID, func(s *State) {
		s.RemoveItem(ps.ByName("itemid"))
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": "removed"})
}

// UpdateQuantity sets a line's quantity. Quantities below 1 and unknown IDs
// leave the cart unchanged; removal stays an explicit operation.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateQuantity decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	h.Carts.With(userID, func(s *State) {
		s.UpdateQuantity(ps.ByName("itemid"), payload.Quantity)
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": "updated"})
}

// Clear empties the cart lines. Delivery selection survives.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.Carts.With(userID, func(s *State) {
		s.Clear()
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": "cleared"})
}

// SetDelivery records the delivery option and/or cost. The two are
// independent setters; the client sets cost 0 together with pickup.
func (h *Handler) SetDelivery(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Option *string  `json:"option"`
		Cost   *float64 `json:"cost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("SetDelivery decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if payload.Option != nil && *payload.Option != DeliveryPickup && *payload.Option != DeliveryDelivery {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Unknown delivery option"})
		return
	}
	if payload.Cost != nil && *payload.Cost < 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Delivery cost cannot be negative"})
		return
	}

	h.Carts.With(userID, func(s *State) {
		if payload.Option != nil {
			s.SetDeliveryOption(*payload.Option)
		}
		if payload.Cost != nil {
			s.SetDeliveryCost(*payload.Cost)
		}
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": "updated"})
}

// SetPaymentMethod records the payment choice. Informational only.
func (h *Handler) SetPaymentMethod(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Method string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("SetPaymentMethod decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	switch payload.Method {
	case PaymentPix, PaymentCard, PaymentCash:
	default:
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Unknown payment method"})
		return
	}

	h.Carts.With(userID, func(s *State) {
		s.SetPaymentMethod(payload.Method)
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": "updated"})
}

// Summary returns the cart lines with derived totals.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var resp utils.M
	h.Carts.With(userID, func(s *State) {
		resp = utils.M{
			"items":          s.Lines(),
			"deliveryOption": s.DeliveryOption(),
			"deliveryCost":   s.DeliveryCost(),
			"paymentMethod":  s.PaymentMethod(),
			"subtotal":       s.Subtotal(),
			"total":          s.Total(),
		}
	})

	utils.RespondWithJSON(w, http.StatusOK, resp)
}
