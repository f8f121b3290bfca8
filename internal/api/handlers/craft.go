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

type CraftHandler struct {
	craftService *service.CraftService
	hub          *websocket.Hub
}

func NewCraftHandler(craftService *service.CraftService, hub *websocket.Hub) *CraftHandler {
	return &CraftHandler{craftService: craftService, hub: hub}
}

type CraftRequest struct {
	ShardIDs []string `json:"shardIds"`
}

type CraftedCardResponse struct {
	ID         string     `json:"id"`
	Serial     int64      `json:"serial"`
	CardID     string     `json:"cardId"`
	CardName   string     `json:"cardName"`
	Rarity     string     `json:"rarity"`
	Model      string     `json:"model"`
	Background string     `json:"background"`
	ImageURL   string     `json:"imageUrl"`
	CraftedAt  time.Time  `json:"craftedAt"`
	MintChain  *string    `json:"mintChain"`
	MintTxHash *string    `json:"mintTxHash"`
	MintedAt   *time.Time `json:"mintedAt"`
}

type CraftResponse struct {
	Success bool                `json:"success"`
	Card    CraftedCardResponse `json:"card"`
}

func (h *CraftHandler) Craft(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeInvalidRequest, "Unauthorized")
		return
	}

	var req CraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
		return
	}

	shardIDs := make([]uuid.UUID, 0, len(req.ShardIDs))
	for _, raw := range req.ShardIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid shard id")
			return
		}
		shardIDs = append(shardIDs, id)
	}

	crafted, err := h.craftService.Craft(r.Context(), service.CraftInput{
		UserID:        userID,
		ShardEntryIDs: shardIDs,
	})
	if err != nil {
		h.respondCraftError(w, err)
		return
	}

	h.hub.Broadcast(websocket.Event{
		Type: websocket.EventCardCrafted,
		Payload: websocket.CardCraftedPayload{
			CardID:    crafted.CardID,
			CardName:  crafted.Card.Name,
			Rarity:    string(crafted.Card.Rarity),
			CraftedAt: crafted.CraftedAt,
		},
	})

	respondJSON(w, http.StatusOK, CraftResponse{
		Success: true,
		Card:    toCraftedCardResponse(crafted),
	})
}

func toCraftedCardResponse(crafted *domain.CraftedCard) CraftedCardResponse {
	return CraftedCardResponse{
		ID:         crafted.ID.String(),
		Serial:     crafted.Serial,
		CardID:     crafted.CardID.String(),
		CardName:   crafted.Card.Name,
		Rarity:     string(crafted.Card.Rarity),
		Model:      crafted.Model,
		Background: crafted.Background,
		ImageURL:   crafted.Card.ImageURL,
		CraftedAt:  crafted.CraftedAt,
		MintChain:  crafted.MintChain,
		MintTxHash: crafted.MintTxHash,
		MintedAt:   crafted.MintedAt,
	}
}

func (h *CraftHandler) respondCraftError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCombination):
		respondError(w, http.StatusBadRequest, CodeInvalidCombination, "Need exactly 3 distinct shards")
	case errors.Is(err, domain.ErrShardsNotOwned):
		respondError(w, http.StatusNotFound, CodeNotFound, "Shards not found in inventory")
	case errors.Is(err, domain.ErrMixedCardShards):
		respondError(w, http.StatusBadRequest, CodeMixedCardShards, "Shards belong to different cards")
	case errors.Is(err, domain.ErrWrongShardTypes):
		respondError(w, http.StatusBadRequest, CodeWrongShardTypes, "Wrong shard types for this card")
	default:
		respondInternal(w, "CraftHandler.Craft", err)
	}
}
