package domain

import (
	"time"

	"github.com/google/uuid"
)

// SpawnPoint anchors a shard to a real-world coordinate. A check-in inside
// RadiusM collects one unit of Quantity.
type SpawnPoint struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ShardID   uuid.UUID  `json:"shardId" gorm:"type:uuid;not null;index"`
	Latitude  float64    `json:"latitude" gorm:"not null"`
	Longitude float64    `json:"longitude" gorm:"not null"`
	RadiusM   float64    `json:"radiusM" gorm:"not null;default:5"`
	Active    bool       `json:"active" gorm:"not null;default:true"`
	ExpiresAt *time.Time `json:"expiresAt"`
	Quantity  int        `json:"quantity" gorm:"not null;default:0"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Shard Shard `json:"shard,omitempty" gorm:"foreignKey:ShardID"`
}

func (sp *SpawnPoint) Expired(now time.Time) bool {
	return sp.ExpiresAt != nil && sp.ExpiresAt.Before(now)
}
