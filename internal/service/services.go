package service

import (
	"github.com/qora-app/qora-server/internal/config"
	"github.com/qora-app/qora-server/internal/repository"
)

type Services struct {
	Auth       *AuthService
	Checkin    *CheckinService
	Craft      *CraftService
	Inventory  *InventoryService
	Mint       *MintService
	Collection *CollectionService
	SpawnPoint *SpawnPointService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, repos.Session, cfg),
		Checkin:    NewCheckinService(repos.SpawnPoint, repos.Inventory, repos.Card, cfg),
		Craft:      NewCraftService(repos.Inventory, repos.Card),
		Inventory:  NewInventoryService(repos.Inventory, repos.CraftedCard),
		Mint:       NewMintService(repos.CraftedCard, cfg),
		Collection: NewCollectionService(repos.Collection, repos.Card, repos.Shard),
		SpawnPoint: NewSpawnPointService(repos.SpawnPoint, repos.Shard, cfg),
	}
}
