package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/domain"
	"gorm.io/gorm"
)

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) HasCollected(ctx context.Context, userID, spawnPointID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CollectedShard{}).
		Where("user_id = ? AND spawn_point_id = ?", userID, spawnPointID).
		Count(&count).Error
	return count > 0, err
}

// Collect runs the quantity decrement and the inventory insert in one
// transaction. The conditional UPDATE and the (user_id, spawn_point_id)
// unique index decide races between duplicate submits, so losers get a clean
// domain error instead of a double credit. The returned count is the quantity
// as this transaction left it, not a stale pre-decrement read.
func (r *inventoryRepository) Collect(ctx context.Context, entry *domain.CollectedShard) (int, error) {
	var remaining int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.SpawnPoint{}).
			Where("id = ? AND active = ? AND quantity > 0", entry.SpawnPointID, true).
			UpdateColumn("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrSpawnPointInactive
		}

		if err := tx.Model(&domain.SpawnPoint{}).
			Select("quantity").
			Where("id = ?", entry.SpawnPointID).
			Scan(&remaining).Error; err != nil {
			return err
		}

		if err := tx.Create(entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyCollected
			}
			return err
		}

		// Depleted points go dark immediately rather than waiting for the
		// sweeper.
		if remaining <= 0 {
			return tx.Model(&domain.SpawnPoint{}).
				Where("id = ?", entry.SpawnPointID).
				UpdateColumn("active", false).Error
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *inventoryRepository) GetByIDsForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*domain.CollectedShard, error) {
	var entries []*domain.CollectedShard
	err := r.db.WithContext(ctx).
		Preload("Shard").
		Preload("Card").
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *inventoryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.CollectedShard, error) {
	var entries []*domain.CollectedShard
	err := r.db.WithContext(ctx).
		Preload("Shard").
		Preload("Card").
		Where("user_id = ?", userID).
		Order("collected_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ConsumeForCraft is all-or-nothing: the three inventory rows disappear, the
// crafted card appears and the card counter moves, or none of it happens. The
// ownership re-check inside the DELETE closes the duplicate-craft race.
func (r *inventoryRepository) ConsumeForCraft(ctx context.Context, userID uuid.UUID, shardEntryIDs []uuid.UUID, crafted *domain.CraftedCard) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND id IN ?", userID, shardEntryIDs).
			Delete(&domain.CollectedShard{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(shardEntryIDs)) {
			return domain.ErrShardsNotOwned
		}

		if err := tx.Create(crafted).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Card{}).
			Where("id = ?", crafted.CardID).
			UpdateColumn("minted_count", gorm.Expr("minted_count + 1")).Error
	})
}

type craftedCardRepository struct {
	db *gorm.DB
}

func NewCraftedCardRepository(db *gorm.DB) *craftedCardRepository {
	return &craftedCardRepository{db: db}
}

func (r *craftedCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CraftedCard, error) {
	var card domain.CraftedCard
	err := r.db.WithContext(ctx).
		Preload("Card").
		First(&card, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *craftedCardRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.CraftedCard, error) {
	var cards []*domain.CraftedCard
	err := r.db.WithContext(ctx).
		Preload("Card").
		Where("user_id = ?", userID).
		Order("crafted_at DESC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *craftedCardRepository) Update(ctx context.Context, card *domain.CraftedCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}
