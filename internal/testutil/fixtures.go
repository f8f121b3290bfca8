package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// UserBuilder creates test users with sensible defaults
type UserBuilder struct {
	ts          *TestServer
	displayName string
	password    string
	admin       bool
}

func (ts *TestServer) NewUser() *UserBuilder {
	return &UserBuilder{
		ts:          ts,
		displayName: fmt.Sprintf("user-%s", uuid.New().String()[:8]),
		password:    "password123",
	}
}

func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithAdmin() *UserBuilder {
	b.admin = true
	return b
}

// Build creates the user directly through the repository
func (b *UserBuilder) Build(t *testing.T) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		PasswordHash: string(hash),
		DisplayName:  b.displayName,
		IsAdmin:      b.admin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := b.ts.Repos.User.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// BuildAndAuthenticate creates the user and returns it with a valid access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T) (*domain.User, string) {
	t.Helper()

	user := b.Build(t)

	result, err := b.ts.Services.Auth.Login(context.Background(), service.LoginInput{
		DisplayName: b.displayName,
		Password:    b.password,
	})
	if err != nil {
		t.Fatalf("failed to authenticate test user: %v", err)
	}

	return user, result.AccessToken
}

// CardBuilder creates a card with its full shard set, creating a parent
// collection when none is given
type CardBuilder struct {
	ts           *TestServer
	collectionID uuid.UUID
	name         string
	rarity       domain.Rarity
	supplyCap    int
}

func (ts *TestServer) NewCard() *CardBuilder {
	return &CardBuilder{
		ts:        ts,
		name:      fmt.Sprintf("card-%s", uuid.New().String()[:8]),
		rarity:    domain.RarityCommon,
		supplyCap: 100,
	}
}

func (b *CardBuilder) WithCollection(id uuid.UUID) *CardBuilder {
	b.collectionID = id
	return b
}

func (b *CardBuilder) WithName(name string) *CardBuilder {
	b.name = name
	return b
}

func (b *CardBuilder) WithRarity(rarity domain.Rarity) *CardBuilder {
	b.rarity = rarity
	return b
}

func (b *CardBuilder) WithSupplyCap(supplyCap int) *CardBuilder {
	b.supplyCap = supplyCap
	return b
}

func (b *CardBuilder) Build(t *testing.T) *domain.Card {
	t.Helper()

	ctx := context.Background()

	if b.collectionID == uuid.Nil {
		collection, err := b.ts.Services.Collection.CreateCollection(ctx, service.CreateCollectionInput{
			Name: fmt.Sprintf("collection-%s", uuid.New().String()[:8]),
		})
		if err != nil {
			t.Fatalf("failed to create test collection: %v", err)
		}
		b.collectionID = collection.ID
	}

	card, err := b.ts.Services.Collection.CreateCard(ctx, service.CreateCardInput{
		CollectionID: b.collectionID,
		Name:         b.name,
		Rarity:       b.rarity,
		SupplyCap:    b.supplyCap,
	})
	if err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}

	return card
}

// ShardByLabel finds a shard of the given label on a built card
func ShardByLabel(t *testing.T, card *domain.Card, label domain.ShardLabel) *domain.Shard {
	t.Helper()

	for i := range card.Shards {
		if card.Shards[i].Label == label {
			return &card.Shards[i]
		}
	}
	t.Fatalf("card %s has no shard with label %s", card.Name, label)
	return nil
}

// SpawnPointBuilder creates spawn points anchored to a shard
type SpawnPointBuilder struct {
	ts        *TestServer
	shardID   uuid.UUID
	latitude  float64
	longitude float64
	radiusM   float64
	quantity  int
	expiresAt *time.Time
	inactive  bool
}

func (ts *TestServer) NewSpawnPoint(shardID uuid.UUID) *SpawnPointBuilder {
	return &SpawnPointBuilder{
		ts:        ts,
		shardID:   shardID,
		latitude:  42.8746,
		longitude: 74.6122,
		radiusM:   5,
		quantity:  10,
	}
}

func (b *SpawnPointBuilder) WithLocation(lat, lng float64) *SpawnPointBuilder {
	b.latitude = lat
	b.longitude = lng
	return b
}

func (b *SpawnPointBuilder) WithRadius(radiusM float64) *SpawnPointBuilder {
	b.radiusM = radiusM
	return b
}

func (b *SpawnPointBuilder) WithQuantity(quantity int) *SpawnPointBuilder {
	b.quantity = quantity
	return b
}

func (b *SpawnPointBuilder) WithExpiry(expiresAt time.Time) *SpawnPointBuilder {
	b.expiresAt = &expiresAt
	return b
}

func (b *SpawnPointBuilder) Inactive() *SpawnPointBuilder {
	b.inactive = true
	return b
}

func (b *SpawnPointBuilder) Build(t *testing.T) *domain.SpawnPoint {
	t.Helper()

	ctx := context.Background()

	point, err := b.ts.Services.SpawnPoint.CreateSpawnPoint(ctx, service.CreateSpawnPointInput{
		ShardID:   b.shardID,
		Latitude:  b.latitude,
		Longitude: b.longitude,
		RadiusM:   b.radiusM,
		Quantity:  b.quantity,
		ExpiresAt: b.expiresAt,
	})
	if err != nil {
		t.Fatalf("failed to create test spawn point: %v", err)
	}

	if b.inactive {
		point, err = b.ts.Services.SpawnPoint.SetActive(ctx, point.ID, false)
		if err != nil {
			t.Fatalf("failed to deactivate test spawn point: %v", err)
		}
	}

	return point
}
