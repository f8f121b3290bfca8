package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/service"
)

type CollectionHandler struct {
	collectionService *service.CollectionService
	spawnService      *service.SpawnPointService
}

func NewCollectionHandler(collectionService *service.CollectionService, spawnService *service.SpawnPointService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		spawnService:      spawnService,
	}
}

func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	collections, err := h.collectionService.ListCollections(r.Context())
	if err != nil {
		respondInternal(w, "CollectionHandler.List", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"collections": collections})
}

func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid collection id")
		return
	}

	collection, err := h.collectionService.GetCollection(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCollectionNotFound) {
			respondError(w, http.StatusNotFound, CodeNotFound, "Collection not found")
			return
		}
		respondInternal(w, "CollectionHandler.Get", err)
		return
	}
	respondJSON(w, http.StatusOK, collection)
}

// ListSpawnPoints returns the active points for map display.
func (h *CollectionHandler) ListSpawnPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.spawnService.ListActive(r.Context())
	if err != nil {
		respondInternal(w, "CollectionHandler.ListSpawnPoints", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"spawnPoints": points})
}
