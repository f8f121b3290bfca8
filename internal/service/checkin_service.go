package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/config"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/geo"
	"github.com/qora-app/qora-server/internal/repository"
	"gorm.io/gorm"
)

type CheckinService struct {
	spawnRepo     repository.SpawnPointRepository
	inventoryRepo repository.InventoryRepository
	cardRepo      repository.CardRepository
	cfg           *config.Config
}

func NewCheckinService(spawnRepo repository.SpawnPointRepository, inventoryRepo repository.InventoryRepository, cardRepo repository.CardRepository, cfg *config.Config) *CheckinService {
	return &CheckinService{
		spawnRepo:     spawnRepo,
		inventoryRepo: inventoryRepo,
		cardRepo:      cardRepo,
		cfg:           cfg,
	}
}

type CheckinInput struct {
	UserID       uuid.UUID
	SpawnPointID uuid.UUID
	Latitude     float64
	Longitude    float64
	// AccuracyM is the reported GPS accuracy; zero means not provided.
	AccuracyM float64
}

type CheckinResult struct {
	Entry        *domain.CollectedShard
	Shard        *domain.Shard
	CardName     string
	DistanceM    float64
	QuantityLeft int
}

// Checkin decides whether the user may be credited a shard from the spawn
// point right now. Gates run in order; the first failure wins.
func (s *CheckinService) Checkin(ctx context.Context, input CheckinInput) (*CheckinResult, error) {
	if !geo.ValidCoordinates(input.Latitude, input.Longitude) {
		return nil, domain.ErrInvalidCoordinates
	}

	point, err := s.spawnRepo.GetByID(ctx, input.SpawnPointID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSpawnPointNotFound
		}
		return nil, err
	}

	if !point.Active {
		return nil, domain.ErrSpawnPointInactive
	}
	if point.Expired(time.Now()) {
		return nil, domain.ErrSpawnPointExpired
	}

	collected, err := s.inventoryRepo.HasCollected(ctx, input.UserID, point.ID)
	if err != nil {
		return nil, err
	}
	if collected {
		return nil, domain.ErrAlreadyCollected
	}

	distance := geo.Distance(point.Latitude, point.Longitude, input.Latitude, input.Longitude)
	if distance > point.RadiusM {
		return nil, &domain.TooFarError{DistanceM: distance, RadiusM: point.RadiusM}
	}

	if input.AccuracyM > s.cfg.CheckinMaxAccuracyM {
		return nil, domain.ErrLowAccuracy
	}

	card, err := s.cardRepo.GetByID(ctx, point.Shard.CardID)
	if err != nil {
		return nil, err
	}

	entry := &domain.CollectedShard{
		ID:           uuid.New(),
		UserID:       input.UserID,
		SpawnPointID: point.ID,
		ShardID:      point.ShardID,
		CardID:       card.ID,
		CollectedAt:  time.Now(),
	}

	remaining, err := s.inventoryRepo.Collect(ctx, entry)
	if err != nil {
		return nil, err
	}

	return &CheckinResult{
		Entry:        entry,
		Shard:        &point.Shard,
		CardName:     card.Name,
		DistanceM:    distance,
		QuantityLeft: remaining,
	}, nil
}
