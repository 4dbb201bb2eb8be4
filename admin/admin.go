package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"projbank/catalog"
	"projbank/db"
	"projbank/models"
	"projbank/pager"
	"projbank/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetStats aggregates the dashboard numbers: totals per collection plus
// revenue over completed orders.
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	projects, err := db.ProjectsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count projects")
		return
	}
	users, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}
	pending, err := db.OrdersCollection.CountDocuments(ctx, bson.M{"status": models.OrderPending})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count orders")
		return
	}

	pipeline := []bson.M{
		{"$match": bson.M{"status": models.OrderCompleted}},
		{"$group": bson.M{
			"_id":     nil,
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$amount_ngn"},
		}},
	}
	cursor, err := db.OrdersCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to aggregate orders")
		return
	}
	defer cursor.Close(ctx)

	var agg []struct {
		Count   int64 `bson:"count"`
		Revenue int64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &agg); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to aggregate orders")
		return
	}

	var completed, revenue int64
	if len(agg) > 0 {
		completed = agg[0].Count
		revenue = agg[0].Revenue
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok": true,
		"stats": utils.M{
			"projects":        projects,
			"users":           users,
			"pendingOrders":   pending,
			"completedOrders": completed,
			"revenueNGN":      revenue,
		},
	})
}

// GetUsers pages through accounts for the admin user table. ?q narrows the
// page by name or email substring after the fetch.
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	limit, _ := strconv.ParseInt(query.Get("limit"), 10, 64)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	spec := pager.Spec{
		Field:   "created_at",
		IDField: "userid",
		Desc:    true,
		Limit:   limit,
		Parse:   func(s string) (any, error) { return time.Parse(time.RFC3339Nano, s) },
	}

	users, next, err := pager.FindPage(r.Context(), db.UserCollection, spec, bson.M{}, query.Get("cursor"),
		func(u models.User) pager.Token {
			return pager.Token{Value: u.CreatedAt.Format(time.RFC3339Nano), ID: u.UserID}
		})
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to retrieve users")
		return
	}

	if q := query.Get("q"); q != "" {
		filtered := []models.User{}
		for _, u := range users {
			if catalog.MatchText(q, u.Name, u.Email) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "users": users, "nextCursor": next})
}

// SetUserStatus flips an account between Active and Suspended.
func SetUserStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Status != "Active" && input.Status != "Suspended" {
		utils.RespondWithError(w, http.StatusBadRequest, "Status must be Active or Suspended")
		return
	}

	result, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "User status updated"})
}
