package handlers

import (
	"admin-service/internal/auth"
	"admin-service/internal/models"
	"admin-service/internal/service"
	"context"
	"net/http"
	"strings"
)

type AuthService interface {
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
	Logout(ctx context.Context, userID string) error
	TokenTTL(ctx context.Context, userID string) (*service.TokenTTL, error)
	RefreshToken(ctx context.Context, userID string) error
}

type UserService interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, email string, in service.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id string) (*models.User, error)
}

// AuthHandler serves both the session endpoints and user administration,
// which share the /api/auth prefix.
type AuthHandler struct {
	auth  AuthService
	users UserService
}

func NewAuthHandler(authSvc AuthService, users UserService) *AuthHandler {
	return &AuthHandler{auth: authSvc, users: users}
}

type userIDRequest struct {
	UserID string `json:"userId"`
}

type userResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// sessionOwner resolves whose session a request targets. An empty id means
// the caller; anyone else's session needs the admin role.
func sessionOwner(w http.ResponseWriter, r *http.Request, userID string) (string, bool) {
	userID = strings.TrimSpace(userID)
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		return userID, true
	}
	if userID == "" {
		return claims.UserID, true
	}
	if userID != claims.UserID && claims.Role != RoleAdmin {
		writeError(w, http.StatusForbidden, "forbidden", "cannot act on another user's session", nil)
		return "", false
	}
	return userID, true
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	result, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Logout revokes the session of the given user, or of the caller when the
// body names nobody.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req userIDRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}
	userID, ok := sessionOwner(w, r, req.UserID)
	if !ok {
		return
	}

	if err := h.auth.Logout(r.Context(), userID); err != nil {
		writeServiceError(w, err, "failed to log out")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *AuthHandler) TokenTTL(w http.ResponseWriter, r *http.Request) {
	var req userIDRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	userID, ok := sessionOwner(w, r, req.UserID)
	if !ok {
		return
	}

	ttl, err := h.auth.TokenTTL(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "failed to read token lifetime")
		return
	}

	writeJSON(w, http.StatusOK, ttl)
}

func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionOwner(w, r, r.URL.Query().Get("userId"))
	if !ok {
		return
	}

	if err := h.auth.RefreshToken(r.Context(), userID); err != nil {
		writeServiceError(w, err, "failed to refresh token")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "token refreshed"})
}

// GetAll lists active users, or returns the single active user matching
// the userEmail query parameter.
func (h *AuthHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if email := strings.TrimSpace(r.URL.Query().Get("userEmail")); email != "" {
		user, err := h.users.GetByEmail(r.Context(), email)
		if err != nil {
			writeServiceError(w, err, "failed to get user")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": user})
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to get users")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"userList": users})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "failed to register user")
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{Message: "user registered", User: user})
}

func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	var req service.UpdateUserInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	user, err := h.users.Update(r.Context(), email, req)
	if err != nil {
		writeServiceError(w, err, "failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{Message: "user updated", User: user})
}

func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	user, err := h.users.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{Message: "user deleted", User: user})
}
