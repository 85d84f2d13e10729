package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gardenhq/gardenapi/internal/core/auth"
	"github.com/gardenhq/gardenapi/internal/core/domain"
	"github.com/gardenhq/gardenapi/internal/shell/api/middleware"
	"github.com/gardenhq/gardenapi/internal/shell/store"
	"github.com/gorilla/mux"
)

// =============================================================================
// Comment Handlers
// =============================================================================

// CommentHandlers provides comment endpoints, scoped under their
// garden. Any authenticated user may comment on any garden; editing and
// deleting are restricted to the author or an admin.
type CommentHandlers struct {
	store  store.Store
	logger *slog.Logger
}

// NewCommentHandlers creates a new comment handlers instance.
func NewCommentHandlers(s store.Store, logger *slog.Logger) *CommentHandlers {
	return &CommentHandlers{store: s, logger: logger}
}

// RegisterRoutes registers the comment routes.
func (h *CommentHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/garden/{gardenId}/comment/", middleware.RequireAuth(h.CreateComment)).Methods("POST")
	r.HandleFunc("/garden/{gardenId}/comment/", middleware.RequireAuth(h.ListComments)).Methods("GET")
	r.HandleFunc("/garden/{gardenId}/comment/{id}", middleware.RequireAuth(h.UpdateComment)).Methods("PUT", "PATCH")
	r.HandleFunc("/garden/{gardenId}/comment/{id}", middleware.RequireAuth(h.DeleteComment)).Methods("DELETE")
}

func commentNotFoundMessage(id, gardenID int) string {
	return fmt.Sprintf("Comment id:'%d' not found for garden id:'%d'", id, gardenID)
}

// =============================================================================
// Create Comment
// =============================================================================

type commentRequest struct {
	Message string `json:"message"`
}

// CreateComment posts a comment on a garden by the caller.
func (h *CommentHandlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gardenID, err := pathID(r, "gardenId")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}

	caller := callerFromRequest(r, h.store)
	if caller == nil {
		writeJSONError(w, http.StatusUnauthorized, "Invalid or missing JWT")
		return
	}

	if _, err := h.store.GetGarden(ctx, gardenID); err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Garden", gardenID))
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := domain.NewComment(req.Message, caller.ID, gardenID)
	if err != nil {
		writeValidationErrors(w, []error{err})
		return
	}

	if err := h.store.CreateComment(ctx, comment); err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	view, err := buildCommentView(ctx, h.store, *comment)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// =============================================================================
// List Comments
// =============================================================================

// ListComments returns all comments on a garden, newest first.
func (h *CommentHandlers) ListComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gardenID, err := pathID(r, "gardenId")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}

	if _, err := h.store.GetGarden(ctx, gardenID); err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Garden", gardenID))
		return
	}

	comments, err := h.store.ListComments(ctx, gardenID)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	result := make([]commentItemView, 0, len(comments))
	for _, c := range comments {
		item, err := buildCommentItemView(ctx, h.store, c)
		if err != nil {
			writeStoreError(w, h.logger, err)
			return
		}
		result = append(result, item)
	}
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// Update Comment
// =============================================================================

// UpdateComment edits a comment's message. Author or admin only.
func (h *CommentHandlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gardenID, err := pathID(r, "gardenId")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}

	if _, err := h.store.GetGarden(ctx, gardenID); err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Garden", gardenID))
		return
	}

	comment, err := h.store.GetComment(ctx, gardenID, id)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, commentNotFoundMessage(id, gardenID))
		return
	}

	caller := callerFromRequest(r, h.store)
	if !auth.CanManageComment(caller, *comment) {
		writeJSONError(w, http.StatusForbidden, "Not authorized to perform action")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Message != "" {
		if err := domain.ValidateMessage(req.Message); err != nil {
			writeValidationErrors(w, []error{err})
			return
		}
	}

	var updated domain.Comment
	txErr := h.store.WithTx(ctx, func(tx store.Store) error {
		current, err := tx.GetComment(ctx, gardenID, id)
		if err != nil {
			return err
		}
		if req.Message != "" {
			current.Message = req.Message
		}
		if err := tx.UpdateComment(ctx, current); err != nil {
			return err
		}
		updated = *current
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, commentNotFoundMessage(id, gardenID))
			return
		}
		writeStoreError(w, h.logger, txErr)
		return
	}

	item, err := buildCommentItemView(ctx, h.store, updated)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// =============================================================================
// Delete Comment
// =============================================================================

// DeleteComment removes a comment. Author or admin only.
func (h *CommentHandlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gardenID, err := pathID(r, "gardenId")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}

	if _, err := h.store.GetGarden(ctx, gardenID); err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Garden", gardenID))
		return
	}

	comment, err := h.store.GetComment(ctx, gardenID, id)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, commentNotFoundMessage(id, gardenID))
		return
	}

	caller := callerFromRequest(r, h.store)
	if !auth.CanManageComment(caller, *comment) {
		writeJSONError(w, http.StatusForbidden, "Not authorized to perform action")
		return
	}

	if err := h.store.DeleteComment(ctx, gardenID, id); err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeMessage(w, fmt.Sprintf("Comment message:'%s' was deleted successfully", comment.Message))
}
