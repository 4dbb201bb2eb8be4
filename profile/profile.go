package profile

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"projbank/db"
	"projbank/models"
	"projbank/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProfile returns the authenticated user's account.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "user": user})
}

// EditProfile updates the display name.
func EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name cannot be empty")
		return
	}

	result, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"name": input.Name, "updated_at": time.Now()}},
	)
	if err != nil || result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Profile updated"})
}

// GetPurchasedProjects resolves the user's purchased ids to full project
// records. Projects deleted since purchase simply drop out of the list.
func GetPurchasedProjects(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if len(user.PurchasedProjects) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "projects": []models.Project{}})
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	projects, err := utils.FindAndDecode[models.Project](ctx, db.ProjectsCollection,
		bson.M{"projectid": bson.M{"$in": user.PurchasedProjects}}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve projects")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "projects": projects})
}
