package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type CollectionRepository interface {
	Create(ctx context.Context, collection *domain.Collection) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
	GetAll(ctx context.Context) ([]*domain.Collection, error)
	Update(ctx context.Context, collection *domain.Collection) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	GetByCollectionID(ctx context.Context, collectionID uuid.UUID) ([]*domain.Card, error)
	Update(ctx context.Context, card *domain.Card) error
}

type ShardRepository interface {
	CreateMany(ctx context.Context, shards []*domain.Shard) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shard, error)
	GetByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.Shard, error)
}

type SpawnPointRepository interface {
	Create(ctx context.Context, point *domain.SpawnPoint) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SpawnPoint, error)
	GetActive(ctx context.Context) ([]*domain.SpawnPoint, error)
	Update(ctx context.Context, point *domain.SpawnPoint) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeactivateStale flips off points that are expired or depleted and
	// returns how many were touched.
	DeactivateStale(ctx context.Context, now time.Time) (int64, error)
}

type InventoryRepository interface {
	HasCollected(ctx context.Context, userID, spawnPointID uuid.UUID) (bool, error)
	// Collect decrements the spawn point quantity and inserts the inventory
	// entry in one transaction, returning the quantity left afterwards.
	// Returns domain.ErrAlreadyCollected on a duplicate (user, spawn point)
	// pair and domain.ErrSpawnPointInactive when the quantity is gone.
	Collect(ctx context.Context, entry *domain.CollectedShard) (int, error)
	GetByIDsForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*domain.CollectedShard, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.CollectedShard, error)
	// ConsumeForCraft deletes the consumed entries, creates the crafted card
	// and bumps the card's minted counter atomically.
	ConsumeForCraft(ctx context.Context, userID uuid.UUID, shardEntryIDs []uuid.UUID, crafted *domain.CraftedCard) error
}

type CraftedCardRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CraftedCard, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.CraftedCard, error)
	Update(ctx context.Context, card *domain.CraftedCard) error
}

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	Collection  CollectionRepository
	Card        CardRepository
	Shard       ShardRepository
	SpawnPoint  SpawnPointRepository
	Inventory   InventoryRepository
	CraftedCard CraftedCardRepository
}
