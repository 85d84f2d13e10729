package api

import (
	"encoding/json"
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
// Garden Handlers
// =============================================================================

// GardenHandlers provides garden CRUD endpoints.
type GardenHandlers struct {
	store  store.Store
	logger *slog.Logger
}

// NewGardenHandlers creates a new garden handlers instance.
func NewGardenHandlers(s store.Store, logger *slog.Logger) *GardenHandlers {
	return &GardenHandlers{store: s, logger: logger}
}

// RegisterRoutes registers the garden routes.
func (h *GardenHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/garden/", h.ListGardens).Methods("GET")
	r.HandleFunc("/garden/{id}", h.GetGarden).Methods("GET")
	r.HandleFunc("/garden/", middleware.RequireAuth(h.CreateGarden)).Methods("POST")
	r.HandleFunc("/garden/{id}", middleware.RequireAuth(h.UpdateGarden)).Methods("PUT", "PATCH")
	r.HandleFunc("/garden/{id}", middleware.RequireAuth(h.DeleteGarden)).Methods("DELETE")
}

// ListGardens returns all gardens, newest first.
func (h *GardenHandlers) ListGardens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gardens, err := h.store.ListGardens(ctx)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	result := make([]gardenView, 0, len(gardens))
	for _, g := range gardens {
		view, err := buildGardenView(ctx, h.store, g)
		if err != nil {
			writeStoreError(w, h.logger, err)
			return
		}
		result = append(result, view)
	}
	writeJSON(w, http.StatusOK, result)
}

// GetGarden returns a single garden with its placements and comments.
func (h *GardenHandlers) GetGarden(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}

	garden, err := h.store.GetGarden(ctx, id)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Garden", id))
		return
	}

	view, err := buildGardenView(ctx, h.store, *garden)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// =============================================================================
// Create Garden
// =============================================================================

type gardenRequest struct {
	Name        string `json:"garden_name"`
	Description string `json:"description"`
}

// CreateGarden creates a garden owned by the caller.
func (h *GardenHandlers) CreateGarden(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller := callerFromRequest(r, h.store)
	if caller == nil {
		writeJSONError(w, http.StatusUnauthorized, "Invalid or missing JWT")
		return
	}

	var req gardenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	garden, err := domain.NewGarden(req.Name, req.Description, caller.ID)
	if err != nil {
		writeValidationErrors(w, []error{err})
		return
	}

	if err := h.store.CreateGarden(ctx, garden); err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, buildGardenUpdateView(*garden, caller))
}

// =============================================================================
// Update Garden
// =============================================================================

// UpdateGarden applies a partial update to a garden. Owner or admin
// only.
func (h *GardenHandlers) UpdateGarden(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}

	garden, err := h.store.GetGarden(ctx, id)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Garden", id))
		return
	}

	caller := callerFromRequest(r, h.store)
	if !auth.CanManageGarden(caller, *garden) {
		writeJSONError(w, http.StatusForbidden, "Not authorized to perform action")
		return
	}

	var req gardenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []error
	if req.Name != "" {
		if err := domain.ValidateGardenName(req.Name); err != nil {
			errs = append(errs, err)
		}
	}
	if req.Description != "" {
		if err := domain.ValidateDescription(req.Description); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	var updated domain.Garden
	txErr := h.store.WithTx(ctx, func(tx store.Store) error {
		current, err := tx.GetGarden(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != "" {
			current.Name = req.Name
		}
		if req.Description != "" {
			current.Description = req.Description
		}
		if err := tx.UpdateGarden(ctx, current); err != nil {
			return err
		}
		updated = *current
		return nil
	})
	if txErr != nil {
		writeStoreError(w, h.logger, txErr)
		return
	}

	owner, err := h.store.GetUser(ctx, updated.UserID)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, buildGardenUpdateView(updated, owner))
}

// =============================================================================
// Delete Garden
// =============================================================================

// DeleteGarden removes a garden, cascading its placements and comments.
// Owner or admin only.
func (h *GardenHandlers) DeleteGarden(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}

	garden, err := h.store.GetGarden(ctx, id)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Garden", id))
		return
	}

	caller := callerFromRequest(r, h.store)
	if !auth.CanManageGarden(caller, *garden) {
		writeJSONError(w, http.StatusForbidden, "Not authorized to perform action")
		return
	}

	if err := h.store.DeleteGarden(ctx, id); err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeMessage(w, fmt.Sprintf("Garden '%s' deleted successfully", garden.Name))
}
