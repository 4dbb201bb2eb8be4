package utils

import (
	"net/http"

	"projbank/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRoleFromRequest(r *http.Request) []string {
	roles, ok := r.Context().Value(globals.RoleKey).([]string)
	if !ok {
		return nil
	}
	return roles
}

func IsAdminRequest(r *http.Request) bool {
	for _, role := range GetRoleFromRequest(r) {
		if role == "admin" {
			return true
		}
	}
	return false
}
