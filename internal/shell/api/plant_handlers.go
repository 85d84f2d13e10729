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
// Plant Handlers
// =============================================================================

// PlantHandlers provides plant catalog endpoints. Reads are public,
// mutations are admin only since the catalog is shared across gardens.
type PlantHandlers struct {
	store  store.Store
	logger *slog.Logger
}

// NewPlantHandlers creates a new plant handlers instance.
func NewPlantHandlers(s store.Store, logger *slog.Logger) *PlantHandlers {
	return &PlantHandlers{store: s, logger: logger}
}

// RegisterRoutes registers the plant routes.
func (h *PlantHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/plant/", h.ListPlants).Methods("GET")
	r.HandleFunc("/plant/{id}", h.GetPlant).Methods("GET")
	r.HandleFunc("/plant/", middleware.RequireAuth(h.CreatePlant)).Methods("POST")
	r.HandleFunc("/plant/{id}", middleware.RequireAuth(h.UpdatePlant)).Methods("PUT", "PATCH")
	r.HandleFunc("/plant/{id}", middleware.RequireAuth(h.DeletePlant)).Methods("DELETE")
}

// ListPlants returns the full plant catalog. The collection view omits
// placements; only the single-plant view embeds them.
func (h *PlantHandlers) ListPlants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	plants, err := h.store.ListPlants(ctx)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	result := make([]plantUpdateView, 0, len(plants))
	for i := range plants {
		result = append(result, newPlantUpdateView(&plants[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

// GetPlant returns a single plant with its placements.
func (h *PlantHandlers) GetPlant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Resource not found")
		return
	}

	plant, err := h.store.GetPlant(ctx, id)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Plant", id))
		return
	}

	view, err := buildPlantView(ctx, h.store, *plant)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// =============================================================================
// Create Plant
// =============================================================================

type plantRequest struct {
	Name       string `json:"plant_name"`
	Genus      string `json:"genus"`
	Watering   string `json:"watering"`
	GrowthRate string `json:"growth_rate"`
}

// CreatePlant adds a plant to the catalog. Admin only.
func (h *PlantHandlers) CreatePlant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller := callerFromRequest(r, h.store)
	if !auth.CanAdminister(caller) {
		writeJSONError(w, http.StatusForbidden, "Not authorized to perform action")
		return
	}

	var req plantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	plant, err := domain.NewPlant(req.Name, req.Genus, domain.Watering(req.Watering), domain.GrowthRate(req.GrowthRate))
	if err != nil {
		writeValidationErrors(w, []error{err})
		return
	}

	if err := h.store.CreatePlant(ctx, plant); err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, newPlantUpdateView(plant))
}

// =============================================================================
// Update Plant
// =============================================================================

// UpdatePlant applies a partial update to a plant. Admin only.
func (h *PlantHandlers) UpdatePlant(w http.ResponseWriter, r *http.Request) {
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

	var req plantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []error
	if req.Name != "" {
		if err := domain.ValidatePlantName(req.Name); err != nil {
			errs = append(errs, err)
		}
	}
	if req.Genus != "" {
		if err := domain.ValidateGenus(req.Genus); err != nil {
			errs = append(errs, err)
		}
	}
	if req.Watering != "" && !domain.Watering(req.Watering).IsValid() {
		errs = append(errs, domain.ErrInvalidWatering)
	}
	if req.GrowthRate != "" && !domain.GrowthRate(req.GrowthRate).IsValid() {
		errs = append(errs, domain.ErrInvalidGrowthRate)
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	var updated *domain.Plant
	txErr := h.store.WithTx(ctx, func(tx store.Store) error {
		plant, err := tx.GetPlant(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != "" {
			plant.Name = req.Name
		}
		if req.Genus != "" {
			plant.Genus = req.Genus
		}
		if req.Watering != "" {
			plant.Watering = domain.Watering(req.Watering)
		}
		if req.GrowthRate != "" {
			plant.GrowthRate = domain.GrowthRate(req.GrowthRate)
		}
		if err := tx.UpdatePlant(ctx, plant); err != nil {
			return err
		}
		updated = plant
		return nil
	})
	if txErr != nil {
		writeStoreError(w, h.logger, txErr)
		return
	}

	writeJSON(w, http.StatusOK, newPlantUpdateView(updated))
}

// =============================================================================
// Delete Plant
// =============================================================================

// DeletePlant removes a plant, cascading its placements. Admin only.
func (h *PlantHandlers) DeletePlant(w http.ResponseWriter, r *http.Request) {
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

	plant, err := h.store.GetPlant(ctx, id)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, notFoundMessage("Plant", id))
		return
	}

	if err := h.store.DeletePlant(ctx, id); err != nil {
		writeStoreError(w, h.logger, err)
		return
	}

	writeMessage(w, fmt.Sprintf("Plant '%s' deleted successfully", plant.Name))
}
