package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"projbank/db"
	"projbank/rdx"
	"projbank/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 30 * time.Minute

// RequestPasswordReset issues a short-lived reset token. The response is the
// same whether or not the email exists, so the endpoint cannot be used to
// probe registered addresses.
func RequestPasswordReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	err := db.UserCollection.FindOne(r.Context(), bson.M{"email": email}).Err()
	if err == nil {
		token, tokenErr := generateRefreshToken()
		if tokenErr == nil {
			if setErr := rdx.SetWithExpiry("pwreset:"+token, email, resetTokenTTL); setErr != nil {
				log.Printf("Failed to store reset token: %v", setErr)
			} else {
				// Delivery would go out by email; log for now.
				log.Printf("Password reset token issued for %s", email)
			}
		}
	}

	utils.SendResponse(w, http.StatusOK, nil, "If that email is registered, a reset link has been sent", nil)
}

// ResetPassword consumes a reset token and sets a new password.
func ResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Token == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(input.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	email, err := rdx.RdxGet("pwreset:" + input.Token)
	if err != nil || email == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired reset token")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process password")
		return
	}

	result, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"password":   string(hashedPassword),
			"updated_at": time.Now(),
		}, "$unset": bson.M{"refreshtoken": ""}},
	)
	if err != nil || result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	if err := rdx.RdxDel("pwreset:" + input.Token); err != nil {
		log.Printf("Failed to delete reset token: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, nil, "Password reset successful", nil)
}
