package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CollectedShard is one inventory entry. The composite unique index on
// (user_id, spawn_point_id) makes check-in idempotent per spawn point even
// under concurrent duplicate submits.
type CollectedShard struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_user_spawn_point"`
	SpawnPointID uuid.UUID `json:"spawnPointId" gorm:"type:uuid;not null;uniqueIndex:idx_user_spawn_point"`
	ShardID      uuid.UUID `json:"shardId" gorm:"type:uuid;not null;index"`
	CardID       uuid.UUID `json:"cardId" gorm:"type:uuid;not null;index"`
	CollectedAt  time.Time `json:"collectedAt" gorm:"not null"`

	Shard Shard `json:"shard,omitempty" gorm:"foreignKey:ShardID"`
	Card  Card  `json:"card,omitempty" gorm:"foreignKey:CardID"`
}

// CraftedCard records a successful craft. Serial doubles as the token id
// embedded in mint payloads. Mint fields stay nil until the wallet reports a
// broadcast transaction.
type CraftedCard struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Serial           int64          `json:"serial" gorm:"autoIncrement;uniqueIndex"`
	UserID           uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index"`
	CardID           uuid.UUID      `json:"cardId" gorm:"type:uuid;not null;index"`
	ConsumedShardIDs datatypes.JSON `json:"consumedShardIds" gorm:"type:jsonb"`
	Model            string         `json:"model" gorm:"not null"`
	Background       string         `json:"background" gorm:"not null"`
	CraftedAt        time.Time      `json:"craftedAt" gorm:"not null"`
	MintChain        *string        `json:"mintChain"`
	MintTxHash       *string        `json:"mintTxHash"`
	MintedAt         *time.Time     `json:"mintedAt"`

	Card Card `json:"card,omitempty" gorm:"foreignKey:CardID"`
}

func (c *CraftedCard) Minted() bool {
	return c.MintChain != nil
}
