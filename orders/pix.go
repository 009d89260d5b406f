package orders

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"feira/db"
	"feira/models"
	"feira/utils"

	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func pixSecret() []byte {
	if s := os.Getenv("PIX_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev-only-pix-secret")
}

// pixPayload returns a signed payload string: orderID|amount|timestamp|signature.
// The signature keeps the QR from being tampered with between screens.
func pixPayload(orderID string, amount float64) string {
	data := fmt.Sprintf("%s|%.2f|%d", orderID, amount, time.Now().Unix())

	h := hmac.New(sha256.New, pixSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// verifyPixPayload checks the HMAC over a payload produced by pixPayload.
func verifyPixPayload(payload string) bool {
	idx := strings.LastIndex(payload, "|")
	if idx < 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, pixSecret())
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(sig), []byte(expected))
}

// GetPixQR renders the order's PIX payload as a QR PNG for the payment screen.
func GetPixQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{
		"orderid":    ps.ByName("orderid"),
		"consumerid": userID,
	}).Decode(&order)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"success": false, "message": "Order not found"})
		return
	}

	if order.PixPayload == "" {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"success": false, "message": "Order has no PIX payment"})
		return
	}

	png, err := qrcode.Encode(order.PixPayload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "QR generation failed"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
