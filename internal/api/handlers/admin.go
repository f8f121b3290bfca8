package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/service"
)

type AdminHandler struct {
	collectionService *service.CollectionService
	spawnService      *service.SpawnPointService
}

func NewAdminHandler(collectionService *service.CollectionService, spawnService *service.SpawnPointService) *AdminHandler {
	return &AdminHandler{
		collectionService: collectionService,
		spawnService:      spawnService,
	}
}

type CreateCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (h *AdminHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Collection name is required")
		return
	}

	collection, err := h.collectionService.CreateCollection(r.Context(), service.CreateCollectionInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondInternal(w, "AdminHandler.CreateCollection", err)
		return
	}
	respondJSON(w, http.StatusCreated, collection)
}

type CreateCardRequest struct {
	Name      string `json:"name"`
	Rarity    string `json:"rarity"`
	SupplyCap int    `json:"supplyCap"`
	ImageURL  string `json:"imageUrl"`
}

func (h *AdminHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	collectionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid collection id")
		return
	}

	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Card name is required")
		return
	}

	card, err := h.collectionService.CreateCard(r.Context(), service.CreateCardInput{
		CollectionID: collectionID,
		Name:         req.Name,
		Rarity:       domain.Rarity(req.Rarity),
		SupplyCap:    req.SupplyCap,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrCollectionNotFound) {
			respondError(w, http.StatusNotFound, CodeNotFound, "Collection not found")
			return
		}
		respondInternal(w, "AdminHandler.CreateCard", err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

type CreateSpawnPointRequest struct {
	ShardID   string     `json:"shardId"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	RadiusM   float64    `json:"radiusM"`
	Quantity  int        `json:"quantity"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func (h *AdminHandler) CreateSpawnPoint(w http.ResponseWriter, r *http.Request) {
	var req CreateSpawnPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
		return
	}

	shardID, err := uuid.Parse(req.ShardID)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid shard id")
		return
	}

	point, err := h.spawnService.CreateSpawnPoint(r.Context(), service.CreateSpawnPointInput{
		ShardID:   shardID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		RadiusM:   req.RadiusM,
		Quantity:  req.Quantity,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSpawnPointNotFound) {
			respondError(w, http.StatusNotFound, CodeNotFound, "Shard not found")
			return
		}
		respondInternal(w, "AdminHandler.CreateSpawnPoint", err)
		return
	}
	respondJSON(w, http.StatusCreated, point)
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

func (h *AdminHandler) SetSpawnPointActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid spawn point id")
		return
	}

	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
		return
	}

	point, err := h.spawnService.SetActive(r.Context(), id, req.Active)
	if err != nil {
		if errors.Is(err, domain.ErrSpawnPointNotFound) {
			respondError(w, http.StatusNotFound, CodeNotFound, "Spawn point not found")
			return
		}
		respondInternal(w, "AdminHandler.SetSpawnPointActive", err)
		return
	}
	respondJSON(w, http.StatusOK, point)
}

func (h *AdminHandler) DeleteSpawnPoint(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid spawn point id")
		return
	}

	if err := h.spawnService.DeleteSpawnPoint(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrSpawnPointNotFound) {
			respondError(w, http.StatusNotFound, CodeNotFound, "Spawn point not found")
			return
		}
		respondInternal(w, "AdminHandler.DeleteSpawnPoint", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
