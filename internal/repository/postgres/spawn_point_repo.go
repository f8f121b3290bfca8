package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/domain"
	"gorm.io/gorm"
)

type spawnPointRepository struct {
	db *gorm.DB
}

func NewSpawnPointRepository(db *gorm.DB) *spawnPointRepository {
	return &spawnPointRepository{db: db}
}

func (r *spawnPointRepository) Create(ctx context.Context, point *domain.SpawnPoint) error {
	return r.db.WithContext(ctx).Create(point).Error
}

func (r *spawnPointRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SpawnPoint, error) {
	var point domain.SpawnPoint
	err := r.db.WithContext(ctx).
		Preload("Shard").
		First(&point, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *spawnPointRepository) GetActive(ctx context.Context) ([]*domain.SpawnPoint, error) {
	var points []*domain.SpawnPoint
	err := r.db.WithContext(ctx).
		Preload("Shard").
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

func (r *spawnPointRepository) Update(ctx context.Context, point *domain.SpawnPoint) error {
	return r.db.WithContext(ctx).Save(point).Error
}

func (r *spawnPointRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.SpawnPoint{}, "id = ?", id).Error
}

func (r *spawnPointRepository) DeactivateStale(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.SpawnPoint{}).
		Where("active = ?", true).
		Where("(expires_at IS NOT NULL AND expires_at < ?) OR quantity <= 0", now).
		Update("active", false)
	return res.RowsAffected, res.Error
}
