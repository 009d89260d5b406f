package orders

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"feira/db"
	"feira/models"
	"feira/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
)

// DownloadReceipt renders the order as a PDF. Consumers get receipts for
// orders they placed; the producer side uses the incoming list instead.
func DownloadReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 15, "Order Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Order: %s", order.OrderID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Status: %s", order.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Payment: %s", order.PaymentMethod), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(80, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.CellFormat(80, 8, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("R$ %.2f", item.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("R$ %.2f", item.UnitPrice*float64(item.Quantity)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	pdf.CellFormat(140, 8, "Subtotal", "T", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("R$ %.2f", order.Subtotal), "T", 1, "R", false, 0, "")
	pdf.CellFormat(140, 8, "Delivery", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("R$ %.2f", order.DeliveryCost), "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(140, 10, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("R$ %.2f", order.Total), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{"success": false, "message": "Failed to generate receipt"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", order.OrderID))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
