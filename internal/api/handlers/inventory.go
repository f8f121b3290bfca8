package handlers

import (
	"net/http"
	"time"

	"github.com/qora-app/qora-server/internal/api/middleware"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/service"
)

type InventoryHandler struct {
	inventoryService *service.InventoryService
}

func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

type InventoryShardResponse struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	CardID       string    `json:"cardId"`
	CardName     string    `json:"cardName"`
	ImageURL     string    `json:"imageUrl"`
	SpawnPointID string    `json:"spawnPointId"`
	CollectedAt  time.Time `json:"collectedAt"`
}

type InventoryResponse struct {
	Shards map[string][]InventoryShardResponse `json:"shards"`
	Cards  map[string][]CraftedCardResponse    `json:"cards"`
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeInvalidRequest, "Unauthorized")
		return
	}

	inv, err := h.inventoryService.GetInventory(r.Context(), userID)
	if err != nil {
		respondInternal(w, "InventoryHandler.Get", err)
		return
	}

	resp := InventoryResponse{
		Shards: make(map[string][]InventoryShardResponse),
		Cards:  make(map[string][]CraftedCardResponse),
	}
	for rarity, entries := range inv.Shards {
		for _, e := range entries {
			resp.Shards[string(rarity)] = append(resp.Shards[string(rarity)], toInventoryShardResponse(e))
		}
	}
	for rarity, cards := range inv.Cards {
		for _, c := range cards {
			resp.Cards[string(rarity)] = append(resp.Cards[string(rarity)], toCraftedCardResponse(c))
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func toInventoryShardResponse(e *domain.CollectedShard) InventoryShardResponse {
	return InventoryShardResponse{
		ID:           e.ID.String(),
		Label:        string(e.Shard.Label),
		CardID:       e.CardID.String(),
		CardName:     e.Card.Name,
		ImageURL:     e.Shard.ImageURL,
		SpawnPointID: e.SpawnPointID.String(),
		CollectedAt:  e.CollectedAt,
	}
}
