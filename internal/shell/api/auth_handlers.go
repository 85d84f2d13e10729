package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gardenhq/gardenapi/internal/core/auth"
	"github.com/gardenhq/gardenapi/internal/core/domain"
	"github.com/gardenhq/gardenapi/internal/shell/api/middleware"
	"github.com/gardenhq/gardenapi/internal/shell/store"
	"github.com/gorilla/mux"
)

// =============================================================================
// Auth and Account Handlers
// =============================================================================

// AuthHandlers provides registration, login, and account management
// endpoints.
type AuthHandlers struct {
	store  store.Store
	tokens *auth.TokenIssuer
	logger *slog.Logger
}

// NewAuthHandlers creates a new auth handlers instance.
func NewAuthHandlers(s store.Store, tokens *auth.TokenIssuer, logger *slog.Logger) *AuthHandlers {
	return &AuthHandlers{store: s, tokens: tokens, logger: logger}
}

// RegisterRoutes registers the auth and account routes.
func (h *AuthHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/auth/user", middleware.RequireAuth(h.ListUsers)).Methods("GET")
	r.HandleFunc("/auth/user/{id}", middleware.RequireAuth(h.GetUser)).Methods("GET")
	r.HandleFunc("/auth/user/{id}", middleware.RequireAuth(h.UpdateUser)).Methods("PUT", "PATCH")
	r.HandleFunc("/auth/user/{id}", middleware.RequireAuth(h.DeleteUser)).Methods("DELETE")
}

// callerFromRequest resolves the authenticated caller to a full user
// record. Ownership and the admin flag are read fresh on every request,
// never cached from the token. Returns nil when the request is
// unauthenticated or the account no longer exists, which makes every
// predicate fail closed.
func callerFromRequest(r *http.Request, s store.Store) *domain.User {
	authCtx := auth.FromContext(r.Context())
	if !authCtx.Authenticated {
		return nil
	}
	user, err := s.GetUser(r.Context(), authCtx.UserID)
	if err != nil {
		return nil
	}
	return user
}

// pathID extracts an integer path variable.
func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

// =============================================================================
// Register
// =============================================================================

type registerRequest struct {
	Username string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new user account.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []error
	if err := domain.ValidateUsername(req.Username); err != nil {
		errs = append(errs, err)
	}
	if err := domain.ValidateEmail(req.Email); err != nil {
		errs = append(errs, err)
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("password hashing failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "An error occurred while registering the user")
		return
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.store.CreateUser(ctx, user); err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, userRegisterView{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// =============================================================================
// Login
// =============================================================================

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues an identity token.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusUnauthorized, "Please provide your email and password")
		return
	}

	user, err := h.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		writeJSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("token issuance failed", "user_id", user.ID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "An error occurred while logging in")
		return
	}

	writeJSON(w, http.StatusOK, loginView{
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	})
}

// =============================================================================
// List Users
// =============================================================================

// ListUsers returns all user accounts. Admin only.
func (h *AuthHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller := callerFromRequest(r, h.store)
	if !auth.CanAdminister(caller) {
		writeJSONError(w, http.StatusForbidden, "Not authorized to perform action")
		return
	}

	users, err := h.store.ListUsers(ctx)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	result := make([]userView, 0, len(users))
	for i := range users {
		result = append(result, newUserView(&users[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// Get User
// =============================================================================

// GetUser returns a single user account with its gardens. Admin only.
func (h *AuthHandlers) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller := callerFromRequest(r, h.store)
	if !auth.CanAdminister(caller) {
		writeJSONError(w, http.StatusForbidden, "Not authorized to perform action")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}

	user, err := h.store.GetUser(ctx, id)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("User", id))
		return
	}

	view, err := buildUserDetailView(ctx, h.store, user)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// =============================================================================
// Update User
// =============================================================================

type updateUserRequest struct {
	Username string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  *bool  `json:"is_admin"`
}

// UpdateUser applies a partial update to a user account. Empty fields
// keep their prior values. The admin flag is pointer-typed so an
// explicit false is distinguishable from an omitted field, and changing
// it requires admin rights regardless of account ownership.
func (h *AuthHandlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}

	caller := callerFromRequest(r, h.store)
	if !auth.CanManageAccount(caller, id) {
		writeJSONError(w, http.StatusForbidden, "Not authorized to perform action")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []error
	if req.Username != "" {
		if err := domain.ValidateUsername(req.Username); err != nil {
			errs = append(errs, err)
		}
	}
	if req.Email != "" {
		if err := domain.ValidateEmail(req.Email); err != nil {
			errs = append(errs, err)
		}
	}
	if req.Password != "" {
		if err := domain.ValidatePassword(req.Password); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	var updated *domain.User
	txErr := h.store.WithTx(ctx, func(tx store.Store) error {
		user, err := tx.GetUser(ctx, id)
		if err != nil {
			return err
		}

		if req.Username != "" {
			user.Username = req.Username
		}
		if req.Email != "" {
			user.Email = req.Email
		}
		if req.Password != "" {
			hash, err := auth.HashPassword(req.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		if req.IsAdmin != nil && *req.IsAdmin != user.IsAdmin {
			if !auth.CanSetAdminFlag(caller) {
				return errAdminFlagForbidden
			}
			user.IsAdmin = *req.IsAdmin
		}

		if err := tx.UpdateUser(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if txErr != nil {
		if txErr == errAdminFlagForbidden {
			writeJSONError(w, http.StatusForbidden, "Not authorized to modify 'admin' status")
			return
		}
		writeStoreError(w, h.logger, txErr)
		return
	}

	writeJSON(w, http.StatusOK, newUserView(updated))
}

// errAdminFlagForbidden aborts the update transaction when a non-admin
// tries to change the admin flag.
var errAdminFlagForbidden = fmt.Errorf("not authorized to modify admin status")

// =============================================================================
// Delete User
// =============================================================================

// DeleteUser removes a user account, cascading its gardens and
// comments.
func (h *AuthHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}

	caller := callerFromRequest(r, h.store)
	if !auth.CanManageAccount(caller, id) {
		writeJSONError(w, http.StatusForbidden, "Not authorized to perform action")
		return
	}

	user, err := h.store.GetUser(ctx, id)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("User", id))
		return
	}

	if err := h.store.DeleteUser(ctx, id); err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeMessage(w, fmt.Sprintf("User: '%s' successfully deleted.", user.Email))
}
