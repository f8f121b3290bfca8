package websocket

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventShardCollected = "shard_collected"
	EventCardCrafted    = "card_crafted"
	EventCardMinted     = "card_minted"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type ShardCollectedPayload struct {
	SpawnPointID      uuid.UUID `json:"spawnPointId"`
	QuantityRemaining int       `json:"quantityRemaining"`
	CollectedAt       time.Time `json:"collectedAt"`
}

type CardCraftedPayload struct {
	CardID    uuid.UUID `json:"cardId"`
	CardName  string    `json:"cardName"`
	Rarity    string    `json:"rarity"`
	CraftedAt time.Time `json:"craftedAt"`
}

type CardMintedPayload struct {
	CardID   uuid.UUID `json:"cardId"`
	CardName string    `json:"cardName"`
	Chain    string    `json:"chain"`
}
