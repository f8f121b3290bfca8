package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/config"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/repository"
	"gorm.io/gorm"
)

var ErrCollectionNotFound = errors.New("collection not found")

type CollectionService struct {
	collectionRepo repository.CollectionRepository
	cardRepo       repository.CardRepository
	shardRepo      repository.ShardRepository
}

func NewCollectionService(collectionRepo repository.CollectionRepository, cardRepo repository.CardRepository, shardRepo repository.ShardRepository) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		cardRepo:       cardRepo,
		shardRepo:      shardRepo,
	}
}

type CreateCollectionInput struct {
	Name        string
	Description string
	ImageURL    string
}

func (s *CollectionService) CreateCollection(ctx context.Context, input CreateCollectionInput) (*domain.Collection, error) {
	collection := &domain.Collection{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *CollectionService) GetCollection(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	collection, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return collection, nil
}

func (s *CollectionService) ListCollections(ctx context.Context) ([]*domain.Collection, error) {
	return s.collectionRepo.GetAll(ctx)
}

type CreateCardInput struct {
	CollectionID uuid.UUID
	Name         string
	Rarity       domain.Rarity
	SupplyCap    int
	ImageURL     string
}

// CreateCard creates the card together with its full shard set. The required
// label set is always the complete fixed set; partial cards do not exist.
func (s *CollectionService) CreateCard(ctx context.Context, input CreateCardInput) (*domain.Card, error) {
	if _, err := s.GetCollection(ctx, input.CollectionID); err != nil {
		return nil, err
	}

	rarity := input.Rarity
	if rarity == "" {
		rarity = domain.RarityCommon
	}

	required, err := json.Marshal(domain.AllShardLabels)
	if err != nil {
		return nil, err
	}

	card := &domain.Card{
		ID:             uuid.New(),
		CollectionID:   input.CollectionID,
		Name:           input.Name,
		Rarity:         rarity,
		RequiredShards: required,
		SupplyCap:      input.SupplyCap,
		ImageURL:       input.ImageURL,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}

	shards := make([]*domain.Shard, 0, len(domain.AllShardLabels))
	for _, label := range domain.AllShardLabels {
		shards = append(shards, &domain.Shard{
			ID:        uuid.New(),
			CardID:    card.ID,
			Label:     label,
			CreatedAt: time.Now(),
		})
	}
	if err := s.shardRepo.CreateMany(ctx, shards); err != nil {
		return nil, err
	}

	for _, sh := range shards {
		card.Shards = append(card.Shards, *sh)
	}
	return card, nil
}

type SpawnPointService struct {
	spawnRepo repository.SpawnPointRepository
	shardRepo repository.ShardRepository
	cfg       *config.Config
}

func NewSpawnPointService(spawnRepo repository.SpawnPointRepository, shardRepo repository.ShardRepository, cfg *config.Config) *SpawnPointService {
	return &SpawnPointService{
		spawnRepo: spawnRepo,
		shardRepo: shardRepo,
		cfg:       cfg,
	}
}

type CreateSpawnPointInput struct {
	ShardID   uuid.UUID
	Latitude  float64
	Longitude float64
	RadiusM   float64
	Quantity  int
	ExpiresAt *time.Time
}

func (s *SpawnPointService) CreateSpawnPoint(ctx context.Context, input CreateSpawnPointInput) (*domain.SpawnPoint, error) {
	if _, err := s.shardRepo.GetByID(ctx, input.ShardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSpawnPointNotFound
		}
		return nil, err
	}

	radius := input.RadiusM
	if radius <= 0 {
		radius = s.cfg.DefaultSpawnRadiusM
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	point := &domain.SpawnPoint{
		ID:        uuid.New(),
		ShardID:   input.ShardID,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		RadiusM:   radius,
		Active:    true,
		ExpiresAt: input.ExpiresAt,
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.spawnRepo.Create(ctx, point); err != nil {
		return nil, err
	}
	return point, nil
}

func (s *SpawnPointService) ListActive(ctx context.Context) ([]*domain.SpawnPoint, error) {
	return s.spawnRepo.GetActive(ctx)
}

func (s *SpawnPointService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.SpawnPoint, error) {
	point, err := s.spawnRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSpawnPointNotFound
		}
		return nil, err
	}
	point.Active = active
	point.UpdatedAt = time.Now()
	if err := s.spawnRepo.Update(ctx, point); err != nil {
		return nil, err
	}
	return point, nil
}

func (s *SpawnPointService) DeleteSpawnPoint(ctx context.Context, id uuid.UUID) error {
	if _, err := s.spawnRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSpawnPointNotFound
		}
		return err
	}
	return s.spawnRepo.Delete(ctx, id)
}
