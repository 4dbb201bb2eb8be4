package orders

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"projbank/db"
	"projbank/globals"
	"projbank/models"
	"projbank/mq"
	"projbank/pager"
	"projbank/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateOrder opens a pending order for the authenticated user and hands
// back the pre-filled chat link for the bank-transfer conversation.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		ProjectID string `json:"projectid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProjectID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Project id is required")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unknown user")
		return
	}
	if utils.Contains(user.PurchasedProjects, body.ProjectID) {
		utils.RespondWithError(w, http.StatusConflict, "Project already purchased")
		return
	}

	var project models.Project
	if err := db.ProjectsCollection.FindOne(ctx, bson.M{"projectid": body.ProjectID}).Decode(&project); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	order := models.Order{
		OrderID:      "o" + utils.GenerateID(12),
		ProjectID:    project.ProjectID,
		ProjectTitle: project.Title,
		UserID:       user.UserID,
		UserEmail:    user.Email,
		AmountNGN:    project.PriceNGN,
		Status:       models.OrderPending,
		OrderedAt:    time.Now(),
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	m := models.Index{EntityType: "order", EntityId: order.OrderID, Method: "POST", ItemType: "project", ItemId: project.ProjectID}
	go mq.Emit(ctx, "order-created", m)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"ok":       true,
		"order":    order,
		"chatLink": BuildChatLink(globals.ChatPhone, project.Title, project.PriceNGN),
	})
}

// GetMyOrders lists the authenticated user's orders, newest first by
// default; ?sort=amount or ?sort=-ordered override.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	skip, limit := utils.ParsePagination(r, 20, 100)
	sort := utils.ParseSort(r.URL.Query().Get("sort"),
		bson.D{{Key: "ordered_at", Value: -1}},
		map[string]string{"ordered": "ordered_at", "amount": "amount_ngn"})
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)

	orders, err := utils.FindAndDecode[models.Order](r.Context(), db.OrdersCollection, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "orders": orders})
}

// GetOrders is the admin listing, cursor-paged with an optional status
// filter.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := bson.M{}
	if status := q.Get("status"); status == models.OrderPending || status == models.OrderCompleted {
		filter["status"] = status
	}

	spec := pager.Spec{
		Field:   "ordered_at",
		IDField: "orderid",
		Desc:    true,
		Limit:   limit,
		Parse:   func(s string) (any, error) { return time.Parse(time.RFC3339Nano, s) },
	}

	last := func(o models.Order) pager.Token {
		return pager.Token{Value: o.OrderedAt.Format(time.RFC3339Nano), ID: o.OrderID}
	}

	records, next, err := pager.FindPage(r.Context(), db.OrdersCollection, spec, filter, q.Get("cursor"), last)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "orders": records, "nextCursor": next})
}

// GetOrder returns one order to its owner or an admin.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	utils.RespondWithJSON(w, http.StatusOK, order)
}
