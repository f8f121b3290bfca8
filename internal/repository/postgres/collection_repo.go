package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/domain"
	"gorm.io/gorm"
)

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *collectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, collection *domain.Collection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

func (r *collectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	var collection domain.Collection
	err := r.db.WithContext(ctx).
		Preload("Cards").
		Preload("Cards.Shards").
		First(&collection, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) GetAll(ctx context.Context) ([]*domain.Collection, error) {
	var collections []*domain.Collection
	err := r.db.WithContext(ctx).
		Preload("Cards").
		Order("created_at DESC").
		Find(&collections).Error
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *collectionRepository) Update(ctx context.Context, collection *domain.Collection) error {
	return r.db.WithContext(ctx).Save(collection).Error
}

func (r *collectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Collection{}, "id = ?", id).Error
}

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *cardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *cardRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var card domain.Card
	err := r.db.WithContext(ctx).
		Preload("Shards").
		First(&card, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) GetByCollectionID(ctx context.Context, collectionID uuid.UUID) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.WithContext(ctx).
		Preload("Shards").
		Where("collection_id = ?", collectionID).
		Order("created_at").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) Update(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

type shardRepository struct {
	db *gorm.DB
}

func NewShardRepository(db *gorm.DB) *shardRepository {
	return &shardRepository{db: db}
}

func (r *shardRepository) CreateMany(ctx context.Context, shards []*domain.Shard) error {
	if len(shards) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(shards).Error
}

func (r *shardRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shard, error) {
	var shard domain.Shard
	err := r.db.WithContext(ctx).First(&shard, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &shard, nil
}

func (r *shardRepository) GetByCardID(ctx context.Context, cardID uuid.UUID) ([]*domain.Shard, error) {
	var shards []*domain.Shard
	err := r.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("label").
		Find(&shards).Error
	if err != nil {
		return nil, err
	}
	return shards, nil
}
