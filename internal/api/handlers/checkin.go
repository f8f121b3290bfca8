package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/api/middleware"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/service"
	"github.com/qora-app/qora-server/internal/websocket"
)

type CheckinHandler struct {
	checkinService *service.CheckinService
	hub            *websocket.Hub
}

func NewCheckinHandler(checkinService *service.CheckinService, hub *websocket.Hub) *CheckinHandler {
	return &CheckinHandler{checkinService: checkinService, hub: hub}
}

type CheckinRequest struct {
	SpawnPointID string  `json:"spawnPointId"`
	UserLat      float64 `json:"userLat"`
	UserLng      float64 `json:"userLng"`
	Accuracy     float64 `json:"accuracy"`
}

type CheckinShardResponse struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	CardName    string    `json:"cardName"`
	ImageURL    string    `json:"imageUrl"`
	CollectedAt time.Time `json:"collectedAt"`
}

type CheckinResponse struct {
	Success   bool                 `json:"success"`
	Shard     CheckinShardResponse `json:"shard"`
	DistanceM float64              `json:"distanceM"`
}

type TooFarResponse struct {
	Error     string  `json:"error"`
	Message   string  `json:"message"`
	DistanceM float64 `json:"distanceM"`
	RadiusM   float64 `json:"radiusM"`
}

func (h *CheckinHandler) Checkin(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeInvalidRequest, "Unauthorized")
		return
	}

	var req CheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
		return
	}

	spawnPointID, err := uuid.Parse(req.SpawnPointID)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid spawn point id")
		return
	}

	result, err := h.checkinService.Checkin(r.Context(), service.CheckinInput{
		UserID:       userID,
		SpawnPointID: spawnPointID,
		Latitude:     req.UserLat,
		Longitude:    req.UserLng,
		AccuracyM:    req.Accuracy,
	})
	if err != nil {
		h.respondCheckinError(w, err)
		return
	}

	h.hub.Broadcast(websocket.Event{
		Type: websocket.EventShardCollected,
		Payload: websocket.ShardCollectedPayload{
			SpawnPointID:      spawnPointID,
			QuantityRemaining: result.QuantityLeft,
			CollectedAt:       result.Entry.CollectedAt,
		},
	})

	respondJSON(w, http.StatusOK, CheckinResponse{
		Success: true,
		Shard: CheckinShardResponse{
			ID:          result.Entry.ID.String(),
			Label:       string(result.Shard.Label),
			CardName:    result.CardName,
			ImageURL:    result.Shard.ImageURL,
			CollectedAt: result.Entry.CollectedAt,
		},
		DistanceM: result.DistanceM,
	})
}

func (h *CheckinHandler) respondCheckinError(w http.ResponseWriter, err error) {
	var tooFar *domain.TooFarError
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinates):
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Coordinates out of range")
	case errors.Is(err, domain.ErrSpawnPointNotFound):
		respondError(w, http.StatusNotFound, CodeNotFound, "Spawn point not found")
	case errors.Is(err, domain.ErrSpawnPointInactive):
		respondError(w, http.StatusBadRequest, CodeInactive, "Spawn point is not active")
	case errors.Is(err, domain.ErrSpawnPointExpired):
		respondError(w, http.StatusBadRequest, CodeExpired, "Spawn point has expired")
	case errors.Is(err, domain.ErrAlreadyCollected):
		respondError(w, http.StatusConflict, CodeAlreadyCollected, "Shard already collected from this spawn point")
	case errors.As(err, &tooFar):
		respondJSON(w, http.StatusBadRequest, TooFarResponse{
			Error:     CodeTooFar,
			Message:   tooFar.Error(),
			DistanceM: tooFar.DistanceM,
			RadiusM:   tooFar.RadiusM,
		})
	case errors.Is(err, domain.ErrLowAccuracy):
		respondError(w, http.StatusBadRequest, CodeLowAccuracy, "GPS accuracy too low")
	default:
		respondInternal(w, "CheckinHandler.Checkin", err)
	}
}
