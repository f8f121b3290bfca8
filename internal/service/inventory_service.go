package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/repository"
)

type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	craftedRepo   repository.CraftedCardRepository
}

func NewInventoryService(inventoryRepo repository.InventoryRepository, craftedRepo repository.CraftedCardRepository) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		craftedRepo:   craftedRepo,
	}
}

// Inventory is a user's holdings grouped by card rarity for display.
type Inventory struct {
	Shards map[domain.Rarity][]*domain.CollectedShard
	Cards  map[domain.Rarity][]*domain.CraftedCard
}

func (s *InventoryService) GetInventory(ctx context.Context, userID uuid.UUID) (*Inventory, error) {
	entries, err := s.inventoryRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	crafted, err := s.craftedRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	inv := &Inventory{
		Shards: make(map[domain.Rarity][]*domain.CollectedShard),
		Cards:  make(map[domain.Rarity][]*domain.CraftedCard),
	}
	for _, e := range entries {
		inv.Shards[e.Card.Rarity] = append(inv.Shards[e.Card.Rarity], e)
	}
	for _, c := range crafted {
		inv.Cards[c.Card.Rarity] = append(inv.Cards[c.Card.Rarity], c)
	}
	return inv, nil
}
