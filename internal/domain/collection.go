package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

var AllRarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// ShardLabel is one of the fixed fragment slots a card is assembled from.
type ShardLabel string

const (
	ShardLabelA ShardLabel = "A"
	ShardLabelB ShardLabel = "B"
	ShardLabelC ShardLabel = "C"
)

var AllShardLabels = []ShardLabel{ShardLabelA, ShardLabelB, ShardLabelC}

type Collection struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Cards []Card `json:"cards,omitempty" gorm:"foreignKey:CollectionID"`
}

// Card is static reference data: the thing three distinct shards craft into.
// RequiredShards holds the full label set, e.g. ["A","B","C"].
type Card struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CollectionID   uuid.UUID      `json:"collectionId" gorm:"type:uuid;not null;index"`
	Name           string         `json:"name" gorm:"not null"`
	Rarity         Rarity         `json:"rarity" gorm:"not null;default:'common'"`
	RequiredShards datatypes.JSON `json:"requiredShards" gorm:"type:jsonb"`
	SupplyCap      int            `json:"supplyCap" gorm:"not null;default:0"`
	MintedCount    int            `json:"mintedCount" gorm:"not null;default:0"`
	ImageURL       string         `json:"imageUrl"`
	MetadataURI    string         `json:"metadataUri"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`

	Shards []Shard `json:"shards,omitempty" gorm:"foreignKey:CardID"`
}

type Shard struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CardID    uuid.UUID  `json:"cardId" gorm:"type:uuid;not null;index;uniqueIndex:idx_card_label"`
	Label     ShardLabel `json:"label" gorm:"not null;uniqueIndex:idx_card_label"`
	ImageURL  string     `json:"imageUrl"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Cosmetic attribute pools a crafted card draws from.
var (
	CardModels      = []string{"classic", "holo", "gilded", "obsidian"}
	CardBackgrounds = []string{"dawn", "dusk", "aurora", "void", "ember"}
)
