package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/api/handlers"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/service"
	"github.com/qora-app/qora-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectShards checks the user in at one spawn point per label and returns
// the inventory entry ids as strings, craft-request ready.
func collectShards(t *testing.T, ts *testutil.TestServer, user *domain.User, card *domain.Card, labels ...domain.ShardLabel) []string {
	t.Helper()

	ids := make([]string, 0, len(labels))
	for _, label := range labels {
		shard := testutil.ShardByLabel(t, card, label)
		point := ts.NewSpawnPoint(shard.ID).Build(t)

		result, err := ts.Services.Checkin.Checkin(context.Background(), service.CheckinInput{
			UserID:       user.ID,
			SpawnPointID: point.ID,
			Latitude:     point.Latitude,
			Longitude:    point.Longitude,
			AccuracyM:    10,
		})
		require.NoError(t, err)
		ids = append(ids, result.Entry.ID.String())
	}
	return ids
}

func TestCraftEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("crafts a card", func(t *testing.T) {
		ts.DB.Truncate(t)
		user, token := ts.NewUser().BuildAndAuthenticate(t)
		card := ts.NewCard().WithRarity(domain.RarityLegendary).Build(t)
		shardIDs := collectShards(t, ts, user, card,
			domain.ShardLabelA, domain.ShardLabelB, domain.ShardLabelC)

		resp := postJSON(t, ts.APIURL("/craft"), token, handlers.CraftRequest{ShardIDs: shardIDs})
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body handlers.CraftResponse
		testutil.AssertJSONResponse(t, resp, &body)
		assert.True(t, body.Success)
		assert.Equal(t, card.Name, body.Card.CardName)
		assert.Equal(t, "legendary", body.Card.Rarity)
		assert.Positive(t, body.Card.Serial)
		assert.Contains(t, domain.CardModels, body.Card.Model)
		assert.Nil(t, body.Card.MintChain)
	})

	t.Run("rejects fewer than three shards", func(t *testing.T) {
		ts.DB.Truncate(t)
		user, token := ts.NewUser().BuildAndAuthenticate(t)
		card := ts.NewCard().Build(t)
		shardIDs := collectShards(t, ts, user, card, domain.ShardLabelA, domain.ShardLabelB)

		resp := postJSON(t, ts.APIURL("/craft"), token, handlers.CraftRequest{ShardIDs: shardIDs})
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "invalid_combination")
	})

	t.Run("rejects shards spanning two cards", func(t *testing.T) {
		ts.DB.Truncate(t)
		user, token := ts.NewUser().BuildAndAuthenticate(t)
		first := ts.NewCard().Build(t)
		second := ts.NewCard().Build(t)

		shardIDs := collectShards(t, ts, user, first, domain.ShardLabelA, domain.ShardLabelB)
		shardIDs = append(shardIDs, collectShards(t, ts, user, second, domain.ShardLabelC)...)

		resp := postJSON(t, ts.APIURL("/craft"), token, handlers.CraftRequest{ShardIDs: shardIDs})
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "mixed_card_shards")
	})

	t.Run("rejects shards the user does not hold", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := ts.NewUser().BuildAndAuthenticate(t)

		resp := postJSON(t, ts.APIURL("/craft"), token, handlers.CraftRequest{
			ShardIDs: []string{uuid.New().String(), uuid.New().String(), uuid.New().String()},
		})
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "not_found")
	})

	t.Run("rejects malformed shard ids", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := ts.NewUser().BuildAndAuthenticate(t)

		resp := postJSON(t, ts.APIURL("/craft"), token, handlers.CraftRequest{
			ShardIDs: []string{"one", "two", "three"},
		})
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "invalid_request")
	})
}
