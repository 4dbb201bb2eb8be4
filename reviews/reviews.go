package reviews

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"projbank/db"
	"projbank/models"
	"projbank/mq"
	"projbank/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProjectReviews lists the approved reviews for one project. Pending
// reviews never leave the moderation queue.
func GetProjectReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	projectID := ps.ByName("projectid")

	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})

	filter := bson.M{"projectid": projectID, "is_approved": true}
	reviews, err := utils.FindAndDecode[models.Review](r.Context(), db.ReviewsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "reviews": reviews})
}

// AddReview accepts a review from a buyer of the project. It lands
// unapproved and stays invisible until moderation.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	projectID := ps.ByName("projectid")
	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unknown user")
		return
	}
	if !utils.Contains(user.PurchasedProjects, projectID) {
		utils.RespondWithError(w, http.StatusForbidden, "Only buyers can review a project")
		return
	}

	count, err := db.ReviewsCollection.CountDocuments(ctx, bson.M{"userid": userID, "projectid": projectID})
	if err != nil {
		log.Printf("Error checking for existing review: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this project")
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil || review.Rating < 1 || review.Rating > 5 || review.Comment == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	review.ReviewID = "r" + utils.GenerateID(12)
	review.ProjectID = projectID
	review.UserID = userID
	review.UserName = user.Name
	review.IsApproved = false
	review.CreatedAt = time.Now()

	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert review")
		return
	}

	m := models.Index{EntityType: "review", EntityId: review.ReviewID, Method: "POST", ItemType: "project", ItemId: projectID}
	go mq.Emit(ctx, "review-added", m)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "reviewid": review.ReviewID})
}

// GetModerationQueue lists reviews by approval state for the admin UI.
// ?state=approved flips the filter; the default is the pending queue.
func GetModerationQueue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	approved := r.URL.Query().Get("state") == "approved"

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})

	reviews, err := utils.FindAndDecode[models.Review](r.Context(), db.ReviewsCollection, bson.M{"is_approved": approved}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "reviews": reviews})
}

// ApproveReview publishes a pending review.
func ApproveReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	reviewID := ps.ByName("reviewid")

	result, err := db.ReviewsCollection.UpdateOne(ctx,
		bson.M{"reviewid": reviewID},
		bson.M{"$set": bson.M{"is_approved": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to approve review")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	m := models.Index{EntityType: "review", EntityId: reviewID, Method: "PUT"}
	go mq.Emit(ctx, "review-approved", m)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Review approved"})
}

// DeleteReview removes a review at any approval state.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	reviewID := ps.ByName("reviewid")

	result, err := db.ReviewsCollection.DeleteOne(ctx, bson.M{"reviewid": reviewID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	m := models.Index{EntityType: "review", EntityId: reviewID, Method: "DELETE"}
	go mq.Emit(ctx, "review-deleted", m)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Review deleted"})
}
