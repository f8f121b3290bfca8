package postgres

import (
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.Collection{},
		&domain.Card{},
		&domain.Shard{},
		&domain.SpawnPoint{},
		&domain.CollectedShard{},
		&domain.CraftedCard{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:        NewUserRepository(db),
		Session:     NewSessionRepository(db),
		Collection:  NewCollectionRepository(db),
		Card:        NewCardRepository(db),
		Shard:       NewShardRepository(db),
		SpawnPoint:  NewSpawnPointRepository(db),
		Inventory:   NewInventoryRepository(db),
		CraftedCard: NewCraftedCardRepository(db),
	}
}
