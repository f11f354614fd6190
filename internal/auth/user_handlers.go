package auth

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bookstore-api/internal/api/middlewares"
	jwtutil "bookstore-api/internal/security/jwt"
	"bookstore-api/internal/security/password"
)

// Me returns the current user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserIDFrom(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}
	u, err := h.Store.FindUserByID(r.Context(), userID)
	if err != nil {
		writeErr(w, http.StatusNotFound, "not_found", "User not found")
		return
	}
	writeJSON(w, http.StatusOK, MeResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	})
}

// ChangePassword verifies the old password, sets the new hash and bumps
// token_version so every outstanding access token dies with it.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserIDFrom(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_input", "Invalid input")
		return
	}
	np, warn, err := password.Validate(req.NewPassword)
	if err != nil || req.OldPassword == "" {
		writeErr(w, http.StatusBadRequest, "invalid_input", "Invalid input")
		return
	}

	u, err := h.Store.FindUserByID(r.Context(), userID)
	if err != nil {
		writeErr(w, http.StatusNotFound, "not_found", "User not found")
		return
	}

	okPass, _, err := password.Verify(req.OldPassword, u.PasswordHash)
	if err != nil || !okPass {
		writeErr(w, http.StatusForbidden, "forbidden", "Invalid old password")
		return
	}

	// Warn-only strength signal in headers, keeps the 200 JSON shape.
	if warn != nil {
		w.Header().Set("X-Password-Score", strconv.Itoa(warn.Score))
		if warn.Message != "" {
			w.Header().Set("X-Password-Warning", warn.Message)
		} else {
			w.Header().Set("X-Password-Warning", "Password could be stronger")
		}
	}

	newPHC, err := password.Hash(np)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "hash_error", "Failed to hash new password")
		return
	}
	if err := h.Store.UpdateUserPasswordHash(r.Context(), userID, newPHC); err != nil {
		writeErr(w, http.StatusInternalServerError, "update_failed", "Failed to update password")
		return
	}
	tv, err := h.Store.BumpTokenVersion(r.Context(), userID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "update_failed", "Failed to update token version")
		return
	}

	// issue fresh tokens at the new version
	access, _, err := jwtutil.SignAccess(userID, tv, jwtutil.DefaultAccessTTL())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "jwt_error", "Failed to sign access token")
		return
	}
	newRefresh, err := h.issueRefresh(r.Context(), userID, tv)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "refresh_error", "Failed to issue refresh token")
		return
	}

	writeJSON(w, http.StatusOK, TokenPair{AccessToken: access, RefreshToken: newRefresh})
}

// LogoutAll invalidates all sessions by bumping token_version.
func (h *Handler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserIDFrom(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}
	if _, err := h.Store.BumpTokenVersion(r.Context(), userID); err != nil {
		writeErr(w, http.StatusInternalServerError, "update_failed", "Failed to update token version")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteAccount verifies the password, removes the user row and returns
// the deleted profile.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserIDFrom(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	var req DeleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		writeErr(w, http.StatusBadRequest, "invalid_input", "Invalid input")
		return
	}

	u, err := h.Store.FindUserByID(r.Context(), userID)
	if err != nil {
		writeErr(w, http.StatusNotFound, "not_found", "User not found")
		return
	}
	okPass, _, err := password.Verify(req.Password, u.PasswordHash)
	if err != nil || !okPass {
		writeErr(w, http.StatusForbidden, "forbidden", "Invalid password")
		return
	}

	deleted, err := h.Store.DeleteUser(r.Context(), userID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "delete_failed", "Failed to delete account")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"deleted": MeResponse{
			ID:        deleted.ID,
			Email:     deleted.Email,
			Username:  deleted.Username,
			CreatedAt: deleted.CreatedAt,
		},
	})
}
