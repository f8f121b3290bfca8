package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/repository"
)

// craftShardCount is fixed by the game rules: one of each label A, B, C.
const craftShardCount = 3

type CraftService struct {
	inventoryRepo repository.InventoryRepository
	cardRepo      repository.CardRepository
}

func NewCraftService(inventoryRepo repository.InventoryRepository, cardRepo repository.CardRepository) *CraftService {
	return &CraftService{
		inventoryRepo: inventoryRepo,
		cardRepo:      cardRepo,
	}
}

type CraftInput struct {
	UserID        uuid.UUID
	ShardEntryIDs []uuid.UUID
}

// Craft converts exactly 3 held shards into 1 crafted card. Validation order
// follows the game rules: count, ownership, distinct labels, single card,
// label set match. The consume+create mutation is atomic.
func (s *CraftService) Craft(ctx context.Context, input CraftInput) (*domain.CraftedCard, error) {
	if len(input.ShardEntryIDs) != craftShardCount {
		return nil, domain.ErrInvalidCombination
	}
	distinctIDs := map[uuid.UUID]struct{}{}
	for _, id := range input.ShardEntryIDs {
		distinctIDs[id] = struct{}{}
	}
	if len(distinctIDs) != craftShardCount {
		return nil, domain.ErrInvalidCombination
	}

	entries, err := s.inventoryRepo.GetByIDsForUser(ctx, input.UserID, input.ShardEntryIDs)
	if err != nil {
		return nil, err
	}
	if len(entries) != craftShardCount {
		return nil, domain.ErrShardsNotOwned
	}

	labels := map[domain.ShardLabel]struct{}{}
	for _, e := range entries {
		labels[e.Shard.Label] = struct{}{}
	}
	if len(labels) != craftShardCount {
		return nil, domain.ErrInvalidCombination
	}

	cardID := entries[0].CardID
	for _, e := range entries[1:] {
		if e.CardID != cardID {
			return nil, domain.ErrMixedCardShards
		}
	}

	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	var required []domain.ShardLabel
	if err := json.Unmarshal(card.RequiredShards, &required); err != nil {
		return nil, err
	}
	if len(required) != len(labels) {
		return nil, domain.ErrWrongShardTypes
	}
	for _, label := range required {
		if _, ok := labels[label]; !ok {
			return nil, domain.ErrWrongShardTypes
		}
	}

	consumedIDs, err := json.Marshal(input.ShardEntryIDs)
	if err != nil {
		return nil, err
	}

	crafted := &domain.CraftedCard{
		ID:               uuid.New(),
		UserID:           input.UserID,
		CardID:           cardID,
		ConsumedShardIDs: consumedIDs,
		Model:            domain.CardModels[rand.Intn(len(domain.CardModels))],
		Background:       domain.CardBackgrounds[rand.Intn(len(domain.CardBackgrounds))],
		CraftedAt:        time.Now(),
	}

	if err := s.inventoryRepo.ConsumeForCraft(ctx, input.UserID, input.ShardEntryIDs, crafted); err != nil {
		return nil, err
	}

	crafted.Card = *card
	return crafted, nil
}
