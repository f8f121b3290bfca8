package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/geo"
	"github.com/qora-app/qora-server/internal/service"
	"github.com/qora-app/qora-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offset of roughly 50m north at any longitude
const fiftyMetersLat = 0.00045

func TestCheckin(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ctx := context.Background()

	t.Run("collects shard at exact location", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		card := ts.NewCard().Build(t)
		shard := testutil.ShardByLabel(t, card, domain.ShardLabelA)
		point := ts.NewSpawnPoint(shard.ID).WithQuantity(5).Build(t)

		result, err := ts.Services.Checkin.Checkin(ctx, service.CheckinInput{
			UserID:       user.ID,
			SpawnPointID: point.ID,
			Latitude:     point.Latitude,
			Longitude:    point.Longitude,
			AccuracyM:    10,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.ShardLabelA, result.Shard.Label)
		assert.Equal(t, card.Name, result.CardName)
		assert.InDelta(t, 0, result.DistanceM, 0.001)
		assert.Equal(t, 4, result.QuantityLeft)

		entries, err := ts.Repos.Inventory.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, shard.ID, entries[0].ShardID)

		// quantity decremented on the spawn point itself
		updated, err := ts.Repos.SpawnPoint.GetByID(ctx, point.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, updated.Quantity)
	})

	t.Run("accepts check-in inside the radius", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		card := ts.NewCard().Build(t)
		shard := testutil.ShardByLabel(t, card, domain.ShardLabelA)
		point := ts.NewSpawnPoint(shard.ID).WithRadius(100).Build(t)

		result, err := ts.Services.Checkin.Checkin(ctx, service.CheckinInput{
			UserID:       user.ID,
			SpawnPointID: point.ID,
			Latitude:     point.Latitude + fiftyMetersLat,
			Longitude:    point.Longitude,
			AccuracyM:    10,
		})
		require.NoError(t, err)
		assert.InDelta(t, 50, result.DistanceM, 1)
	})

	t.Run("accepts check-in exactly at the radius boundary", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		card := ts.NewCard().Build(t)
		shard := testutil.ShardByLabel(t, card, domain.ShardLabelA)

		lat, lng := 42.8746, 74.6122
		userLat := lat + fiftyMetersLat
		boundary := geo.Distance(lat, lng, userLat, lng)
		point := ts.NewSpawnPoint(shard.ID).WithLocation(lat, lng).WithRadius(boundary).Build(t)

		result, err := ts.Services.Checkin.Checkin(ctx, service.CheckinInput{
			UserID:       user.ID,
			SpawnPointID: point.ID,
			Latitude:     userLat,
			Longitude:    lng,
			AccuracyM:    10,
		})
		require.NoError(t, err)
		assert.Equal(t, boundary, result.DistanceM)
	})

	t.Run("rejects check-in outside the radius", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		card := ts.NewCard().Build(t)
		shard := testutil.ShardByLabel(t, card, domain.ShardLabelA)
		point := ts.NewSpawnPoint(shard.ID).WithRadius(5).Build(t)

		_, err := ts.Services.Checkin.Checkin(ctx, service.CheckinInput{
			UserID:       user.ID,
			SpawnPointID: point.ID,
			Latitude:     point.Latitude + fiftyMetersLat,
			Longitude:    point.Longitude,
			AccuracyM:    10,
		})

		var tooFar *domain.TooFarError
		require.ErrorAs(t, err, &tooFar)
		assert.InDelta(t, 50, tooFar.DistanceM, 1)
		assert.Equal(t, float64(5), tooFar.RadiusM)

		// nothing credited, quantity untouched
		entries, err := ts.Repos.Inventory.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, entries)

		updated, err := ts.Repos.SpawnPoint.GetByID(ctx, point.ID)
		require.NoError(t, err)
		assert.Equal(t, point.Quantity, updated.Quantity)
	})

	t.Run("rejects duplicate collection from the same spawn point", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		card := ts.NewCard().Build(t)
		shard := testutil.ShardByLabel(t, card, domain.ShardLabelA)
		point := ts.NewSpawnPoint(shard.ID).WithQuantity(5).Build(t)

		input := service.CheckinInput{
			UserID:       user.ID,
			SpawnPointID: point.ID,
			Latitude:     point.Latitude,
			Longitude:    point.Longitude,
			AccuracyM:    10,
		}

		_, err := ts.Services.Checkin.Checkin(ctx, input)
		require.NoError(t, err)

		_, err = ts.Services.Checkin.Checkin(ctx, input)
		assert.ErrorIs(t, err, domain.ErrAlreadyCollected)
	})

	t.Run("rejects inactive spawn point", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		card := ts.NewCard().Build(t)
		shard := testutil.ShardByLabel(t, card, domain.ShardLabelA)
		point := ts.NewSpawnPoint(shard.ID).Inactive().Build(t)

		_, err := ts.Services.Checkin.Checkin(ctx, service.CheckinInput{
			UserID:       user.ID,
			SpawnPointID: point.ID,
			Latitude:     point.Latitude,
			Longitude:    point.Longitude,
			AccuracyM:    10,
		})
		assert.ErrorIs(t, err, domain.ErrSpawnPointInactive)
	})

	t.Run("rejects expired spawn point", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		card := ts.NewCard().Build(t)
		shard := testutil.ShardByLabel(t, card, domain.ShardLabelA)
		point := ts.NewSpawnPoint(shard.ID).WithExpiry(time.Now().Add(-time.Hour)).Build(t)

		_, err := ts.Services.Checkin.Checkin(ctx, service.CheckinInput{
			UserID:       user.ID,
			SpawnPointID: point.ID,
			Latitude:     point.Latitude,
			Longitude:    point.Longitude,
			AccuracyM:    10,
		})
		assert.ErrorIs(t, err, domain.ErrSpawnPointExpired)
	})

	t.Run("rejects low GPS accuracy", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		card := ts.NewCard().Build(t)
		shard := testutil.ShardByLabel(t, card, domain.ShardLabelA)
		point := ts.NewSpawnPoint(shard.ID).Build(t)

		_, err := ts.Services.Checkin.Checkin(ctx, service.CheckinInput{
			UserID:       user.ID,
			SpawnPointID: point.ID,
			Latitude:     point.Latitude,
			Longitude:    point.Longitude,
			AccuracyM:    80,
		})
		assert.ErrorIs(t, err, domain.ErrLowAccuracy)
	})

	t.Run("rejects unknown spawn point", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)

		_, err := ts.Services.Checkin.Checkin(ctx, service.CheckinInput{
			UserID:       user.ID,
			SpawnPointID: uuid.New(),
			Latitude:     42.8746,
			Longitude:    74.6122,
			AccuracyM:    10,
		})
		assert.ErrorIs(t, err, domain.ErrSpawnPointNotFound)
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		card := ts.NewCard().Build(t)
		shard := testutil.ShardByLabel(t, card, domain.ShardLabelA)
		point := ts.NewSpawnPoint(shard.ID).Build(t)

		_, err := ts.Services.Checkin.Checkin(ctx, service.CheckinInput{
			UserID:       user.ID,
			SpawnPointID: point.ID,
			Latitude:     91,
			Longitude:    74.6122,
			AccuracyM:    10,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
	})

	t.Run("reports the quantity the decrement left behind", func(t *testing.T) {
		ts.DB.Truncate(t)
		first := ts.NewUser().Build(t)
		second := ts.NewUser().Build(t)
		card := ts.NewCard().Build(t)
		shard := testutil.ShardByLabel(t, card, domain.ShardLabelA)
		point := ts.NewSpawnPoint(shard.ID).WithQuantity(3).Build(t)

		input := service.CheckinInput{
			SpawnPointID: point.ID,
			Latitude:     point.Latitude,
			Longitude:    point.Longitude,
			AccuracyM:    10,
		}

		input.UserID = first.ID
		result, err := ts.Services.Checkin.Checkin(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, 2, result.QuantityLeft)

		input.UserID = second.ID
		result, err = ts.Services.Checkin.Checkin(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, 1, result.QuantityLeft)

		updated, err := ts.Repos.SpawnPoint.GetByID(ctx, point.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Quantity)
	})

	t.Run("deactivates spawn point when the last unit is taken", func(t *testing.T) {
		ts.DB.Truncate(t)
		first := ts.NewUser().Build(t)
		second := ts.NewUser().Build(t)
		card := ts.NewCard().Build(t)
		shard := testutil.ShardByLabel(t, card, domain.ShardLabelA)
		point := ts.NewSpawnPoint(shard.ID).WithQuantity(1).Build(t)

		result, err := ts.Services.Checkin.Checkin(ctx, service.CheckinInput{
			UserID:       first.ID,
			SpawnPointID: point.ID,
			Latitude:     point.Latitude,
			Longitude:    point.Longitude,
			AccuracyM:    10,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, result.QuantityLeft)

		updated, err := ts.Repos.SpawnPoint.GetByID(ctx, point.ID)
		require.NoError(t, err)
		assert.False(t, updated.Active)

		_, err = ts.Services.Checkin.Checkin(ctx, service.CheckinInput{
			UserID:       second.ID,
			SpawnPointID: point.ID,
			Latitude:     point.Latitude,
			Longitude:    point.Longitude,
			AccuracyM:    10,
		})
		assert.True(t, errors.Is(err, domain.ErrSpawnPointInactive))
	})
}
