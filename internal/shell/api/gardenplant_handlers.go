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
// Garden Plant Handlers
// =============================================================================

// GardenPlantHandlers provides placement endpoints, scoped under their
// owning garden.
type GardenPlantHandlers struct {
	store  store.Store
	logger *slog.Logger
}

// NewGardenPlantHandlers creates a new garden plant handlers instance.
func NewGardenPlantHandlers(s store.Store, logger *slog.Logger) *GardenPlantHandlers {
	return &GardenPlantHandlers{store: s, logger: logger}
}

// RegisterRoutes registers the placement routes.
func (h *GardenPlantHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/garden/{gardenId}/plant/{plantId}", middleware.RequireAuth(h.CreateGardenPlant)).Methods("POST")
	r.HandleFunc("/garden/{gardenId}/garden_plants", h.ListGardenPlants).Methods("GET")
	r.HandleFunc("/garden/{gardenId}/garden_plant/{id}", middleware.RequireAuth(h.UpdateGardenPlant)).Methods("PUT", "PATCH")
	r.HandleFunc("/garden/{gardenId}/garden_plant/{id}", middleware.RequireAuth(h.DeleteGardenPlant)).Methods("DELETE")
}

// errPositionTaken aborts a placement transaction when the in-tx
// occupancy pre-check finds the target position already filled. The
// unique constraint on (garden_id, position) remains the authoritative
// backstop for races that slip past the check.
type errPositionTaken struct {
	pos domain.Position
}

func (e errPositionTaken) Error() string {
	return positionOccupiedMessage(e.pos)
}

// =============================================================================
// Create Garden Plant
// =============================================================================

type gardenPlantRequest struct {
	Color    string `json:"color"`
	Position string `json:"position"`
	Size     string `json:"size"`
}

// CreateGardenPlant places a plant in a garden. Garden owner or admin
// only. The position check and insert run in one transaction so two
// concurrent requests cannot both claim the same empty slot.
func (h *GardenPlantHandlers) CreateGardenPlant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gardenID, err := pathID(r, "gardenId")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}
	plantID, err := pathID(r, "plantId")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}

	garden, err := h.store.GetGarden(ctx, gardenID)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Garden", gardenID))
		return
	}

	caller := callerFromRequest(r, h.store)
	if !auth.CanManageGarden(caller, *garden) {
		writeJSONError(w, http.StatusForbidden, "Not authorized to perform action")
		return
	}

	if _, err := h.store.GetPlant(ctx, plantID); err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Plant", plantID))
		return
	}

	var req gardenPlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	gp, err := domain.NewGardenPlant(gardenID, plantID,
		domain.Color(req.Color), domain.Position(req.Position), domain.Size(req.Size))
	if err != nil {
		writeValidationErrors(w, []error{err})
		return
	}

	txErr := h.store.WithTx(ctx, func(tx store.Store) error {
		count, err := tx.CountGardenPlantsAtPosition(ctx, gardenID, gp.Position)
		if err != nil {
			return err
		}
		if count > 0 {
			return errPositionTaken{pos: gp.Position}
		}
		return tx.CreateGardenPlant(ctx, gp)
	})
	if txErr != nil {
		var taken errPositionTaken
		if errors.As(txErr, &taken) {
			writeJSONError(w, http.StatusConflict, taken.Error())
			return
		}
		writeStoreError(w, h.logger, txErr)
		return
	}

	view, err := buildGardenPlantView(ctx, h.store, *gp)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// =============================================================================
// List Garden Plants
// =============================================================================

// ListGardenPlants returns all placements in a garden.
func (h *GardenPlantHandlers) ListGardenPlants(w http.ResponseWriter, r *http.Request) {
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

	placements, err := h.store.ListGardenPlants(ctx, gardenID)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	result := make([]gardenPlantItemView, 0, len(placements))
	for _, gp := range placements {
		item, err := buildGardenPlantItemView(ctx, h.store, gp)
		if err != nil {
			writeStoreError(w, h.logger, err)
			return
		}
		result = append(result, item)
	}
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// Update Garden Plant
// =============================================================================

// UpdateGardenPlant applies a partial update to a placement. Garden
// owner or admin only. The occupancy check is skipped when the
// requested position equals the current one, since re-checking would
// fail against the row's own occupancy.
func (h *GardenPlantHandlers) UpdateGardenPlant(w http.ResponseWriter, r *http.Request) {
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

	garden, err := h.store.GetGarden(ctx, gardenID)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Garden", gardenID))
		return
	}

	caller := callerFromRequest(r, h.store)
	if !auth.CanManageGarden(caller, *garden) {
		writeJSONError(w, http.StatusForbidden, "Not authorized to perform action")
		return
	}

	var req gardenPlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []error
	if req.Color != "" && !domain.Color(req.Color).IsValid() {
		errs = append(errs, domain.ErrInvalidColor)
	}
	if req.Position != "" && !domain.Position(req.Position).IsValid() {
		errs = append(errs, domain.ErrInvalidPosition)
	}
	if req.Size != "" && !domain.Size(req.Size).IsValid() {
		errs = append(errs, domain.ErrInvalidSize)
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	var updated domain.GardenPlant
	txErr := h.store.WithTx(ctx, func(tx store.Store) error {
		gp, err := tx.GetGardenPlant(ctx, gardenID, id)
		if err != nil {
			return err
		}

		if req.Color != "" {
			gp.Color = domain.Color(req.Color)
		}
		if req.Size != "" {
			gp.Size = domain.Size(req.Size)
		}
		if req.Position != "" && domain.Position(req.Position) != gp.Position {
			newPos := domain.Position(req.Position)
			count, err := tx.CountGardenPlantsAtPosition(ctx, gardenID, newPos)
			if err != nil {
				return err
			}
			if count > 0 {
				return errPositionTaken{pos: newPos}
			}
			gp.Position = newPos
		}

		if err := tx.UpdateGardenPlant(ctx, gp); err != nil {
			return err
		}
		updated = *gp
		return nil
	})
	if txErr != nil {
		var taken errPositionTaken
		if errors.As(txErr, &taken) {
			writeJSONError(w, http.StatusConflict, taken.Error())
			return
		}
		if errors.Is(txErr, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound,
				fmt.Sprintf("Garden plant id:'%d' not found for garden id:'%d'", id, gardenID))
			return
		}
		writeStoreError(w, h.logger, txErr)
		return
	}

	view, err := buildGardenPlantView(ctx, h.store, updated)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// =============================================================================
// Delete Garden Plant
// =============================================================================

// DeleteGardenPlant removes a placement. Garden owner or admin only.
func (h *GardenPlantHandlers) DeleteGardenPlant(w http.ResponseWriter, r *http.Request) {
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

	garden, err := h.store.GetGarden(ctx, gardenID)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Garden", gardenID))
		return
	}

	caller := callerFromRequest(r, h.store)
	if !auth.CanManageGarden(caller, *garden) {
		writeJSONError(w, http.StatusForbidden, "Not authorized to perform action")
		return
	}

	if _, err := h.store.GetGardenPlant(ctx, gardenID, id); err != nil {
		writeJSONError(w, http.StatusNotFound,
			fmt.Sprintf("Garden plant id:'%d' not found for garden id:'%d'", id, gardenID))
		return
	}

	if err := h.store.DeleteGardenPlant(ctx, gardenID, id); err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeMessage(w, fmt.Sprintf("Garden plant id:'%d' deleted successfully", id))
}
