package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"feira/db"
	"feira/rdx"
	"feira/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const resetCodeTTL = 10 * time.Minute

// RequestResetCode stores a 6-digit code in Redis keyed by email. The code is
// returned in the response body until a mail sender is hooked up.
// TODO: send resetCode over SMTP instead of echoing it back.
func RequestResetCode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil || count == 0 {
		// Respond 200 either way so the endpoint cannot be used to probe emails.
		utils.SendResponse(w, http.StatusOK, nil, "If the email exists, a code was sent", nil)
		return
	}

	code := utils.GenerateRandomDigitString(6)
	if err := rdx.RdxSetWithTTL("reset:"+input.Email, code, resetCodeTTL); err != nil {
		log.Println("RequestResetCode redis error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue reset code")
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{"code": code}, "If the email exists, a code was sent", nil)
}

// VerifyResetCode checks the code and, when a new password is supplied,
// replaces the stored password hash and burns the code.
func VerifyResetCode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	stored, err := rdx.RdxGet("reset:" + input.Email)
	if err != nil || stored != input.Code {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired code")
		return
	}

	if input.NewPassword == "" {
		utils.SendResponse(w, http.StatusOK, nil, "Code verified", nil)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"email": input.Email},
		bson.M{"$set": bson.M{"password": string(hashed)}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	if err := rdx.RdxDel("reset:" + input.Email); err != nil {
		log.Println("VerifyResetCode redis cleanup error:", err)
	}

	utils.SendResponse(w, http.StatusOK, nil, "Password updated", nil)
}
