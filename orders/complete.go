package orders

import (
	"fmt"
	"net/http"

	"projbank/db"
	"projbank/models"
	"projbank/mq"
	"projbank/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CompleteOrder confirms a bank transfer. The status flip and the append to
// the buyer's purchased list are committed in one transaction: either the
// order is completed AND the purchase is recorded, or neither happened.
// $addToSet keeps the append idempotent if the same completion is retried.
func CompleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	orderID := ps.ByName("orderid")

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if order.Status == models.OrderCompleted {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Order already completed"})
		return
	}

	session, err := db.Client.StartSession()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := db.OrdersCollection.UpdateOne(sc,
			bson.M{"orderid": orderID, "status": models.OrderPending},
			bson.M{"$set": bson.M{"status": models.OrderCompleted}},
		)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			// raced with a concurrent completion; nothing to do
			return nil, errAlreadyCompleted
		}

		_, err = db.UserCollection.UpdateOne(sc,
			bson.M{"userid": order.UserID},
			bson.M{"$addToSet": bson.M{"purchased_projects": order.ProjectID}},
		)
		return nil, err
	})

	if err == errAlreadyCompleted {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Order already completed"})
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to complete order")
		return
	}

	m := models.Index{EntityType: "order", EntityId: orderID, Method: "PUT", ItemType: "project", ItemId: order.ProjectID}
	go mq.Emit(ctx, "order-completed", m)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Order completed"})
}

var errAlreadyCompleted = fmt.Errorf("order already completed")
