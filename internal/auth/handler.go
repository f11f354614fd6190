package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	jwtutil "bookstore-api/internal/security/jwt"
	"bookstore-api/internal/security/password"
	"bookstore-api/internal/validate"

	"github.com/redis/go-redis/v9"
)

type Handler struct {
	Store UserStore
	RDB   *redis.Client
}

func New(store UserStore, rdb *redis.Client) *Handler {
	return &Handler{Store: store, RDB: rdb}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "Invalid JSON")
		return
	}
	email, err := validate.RequireEmail(req.Email)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	username, err := validate.RequireBounded("username", req.Username, 3, 40)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	// Password policy blocks only on length; strength is warn-only.
	pwd, warn, err := password.Validate(req.Password, req.Email, req.Username)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_input", "Invalid email or password")
		return
	}

	hash, err := password.Hash(pwd)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "hash_error", "Failed to hash password")
		return
	}

	u, err := h.Store.CreateUser(r.Context(), email, username, hash)
	if err != nil {
		writeErr(w, http.StatusConflict, "conflict", "Cannot create user")
		return
	}

	access, _, err := jwtutil.SignAccess(u.ID, u.TokenVersion, jwtutil.DefaultAccessTTL())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "jwt_error", "Failed to sign access token")
		return
	}
	refresh, err := h.issueRefresh(r.Context(), u.ID, u.TokenVersion)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "refresh_error", "Failed to issue refresh token")
		return
	}

	resp := map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
	}
	if warn != nil {
		resp["password_warning"] = warn
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "Invalid JSON")
		return
	}
	u, err := h.Store.FindUserByEmail(r.Context(), req.Email)
	if err != nil || u.ID == "" {
		writeErr(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}
	ok, needsRehash, err := password.Verify(req.Password, u.PasswordHash)
	if err != nil || !ok {
		writeErr(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}
	if needsRehash {
		if newPHC, err := password.Hash(req.Password); err == nil {
			_ = h.Store.UpdateUserPasswordHash(r.Context(), u.ID, newPHC)
		}
	}

	access, _, err := jwtutil.SignAccess(u.ID, u.TokenVersion, jwtutil.DefaultAccessTTL())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "jwt_error", "Failed to sign access token")
		return
	}
	refresh, err := h.issueRefresh(r.Context(), u.ID, u.TokenVersion)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "refresh_error", "Failed to issue refresh token")
		return
	}

	writeJSON(w, http.StatusOK, TokenPair{AccessToken: access, RefreshToken: refresh})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeErr(w, http.StatusBadRequest, "bad_request", "Invalid JSON")
		return
	}
	key := "rt:" + req.RefreshToken

	ctx := r.Context()
	val, err := h.RDB.Get(ctx, key).Result()
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "invalid_refresh", "Invalid refresh token")
		return
	}

	parts := strings.SplitN(val, "|", 2) // value: userID|tokenVersion
	if len(parts) != 2 {
		writeErr(w, http.StatusUnauthorized, "invalid_refresh", "Invalid refresh token")
		return
	}
	userID := parts[0]
	tv, _ := strconv.Atoi(parts[1])

	// token_version must still be current
	u, err := h.Store.FindUserByID(ctx, userID)
	if err != nil || u.TokenVersion != tv {
		writeErr(w, http.StatusUnauthorized, "token_revoked", "Token has been revoked")
		return
	}

	// rotate refresh
	_ = h.RDB.Del(ctx, key).Err()
	newRefresh, err := h.issueRefresh(ctx, userID, u.TokenVersion)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "refresh_error", "Failed to issue refresh token")
		return
	}

	access, _, err := jwtutil.SignAccess(userID, u.TokenVersion, jwtutil.DefaultAccessTTL())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "jwt_error", "Failed to sign access token")
		return
	}

	writeJSON(w, http.StatusOK, TokenPair{AccessToken: access, RefreshToken: newRefresh})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.RefreshToken == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	_ = h.RDB.Del(r.Context(), "rt:"+req.RefreshToken).Err()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- refresh helpers (Redis allowlist) ----

func (h *Handler) issueRefresh(ctx context.Context, userID string, tokenVersion int) (string, error) {
	token, err := randToken()
	if err != nil {
		return "", err
	}
	if h.RDB == nil {
		return "", errors.New("redis not configured")
	}
	key := "rt:" + token
	val := userID + "|" + strconv.Itoa(tokenVersion)
	if err := h.RDB.Set(ctx, key, val, refreshTTL()).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func refreshTTL() time.Duration {
	if s := os.Getenv("AUTH_REFRESH_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return 30 * 24 * time.Hour
}

func randToken() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
