package orders

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"projbank/db"
	"projbank/globals"
	"projbank/models"
	"projbank/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// ReceiptQRPayload returns a signed payload string: orderID|projectID|timestamp|signature.
// Admins can scan it to confirm a receipt was issued by this service.
func ReceiptQRPayload(orderID, projectID string) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, projectID, time.Now().Unix())

	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// OrderReceipt renders a PDF receipt for a completed order.
func OrderReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var order models.Order
	if err := db.OrdersCollection.FindOne(r.Context(), bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if order.UserID != utils.GetUserIDFromRequest(r) && !utils.IsAdminRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}
	if order.Status != models.OrderCompleted {
		utils.RespondWithError(w, http.StatusConflict, "Receipt is only available for completed orders")
		return
	}

	qrPNG, err := qrcode.Encode(ReceiptQRPayload(order.OrderID, order.ProjectID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "ProjectBank Receipt")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Project: %s", order.ProjectTitle))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Buyer: %s", order.UserEmail))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Amount: NGN %d", order.AmountNGN))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Ordered: %s", order.OrderedAt.Format("2 Jan 2006 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 8, "Status: completed")
	pdf.Ln(12)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("receipt-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("receipt-qr", 10, pdf.GetY(), 50, 50, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, order.OrderID))
	w.Write(buf.Bytes())
}
