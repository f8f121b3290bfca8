// Command seed populates a development database with a demo collection, one
// card with its three shards, and spawn points around the Bishkek history
// museum.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/qora-app/qora-server/internal/config"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/repository/postgres"
	"github.com/qora-app/qora-server/internal/service"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	repos := postgres.NewRepositories(db)
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	// Admin account for the dashboard.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	admin := &domain.User{
		PasswordHash: string(hash),
		DisplayName:  "admin",
		IsAdmin:      true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := repos.User.Create(ctx, admin); err != nil {
		log.Printf("admin user not created (may already exist): %v", err)
	}

	collection, err := services.Collection.CreateCollection(ctx, service.CreateCollectionInput{
		Name:        "Museum Collection",
		Description: "Cards hidden around the national history museum",
	})
	if err != nil {
		log.Fatalf("failed to create collection: %v", err)
	}

	card, err := services.Collection.CreateCard(ctx, service.CreateCardInput{
		CollectionID: collection.ID,
		Name:         "museum-1",
		Rarity:       domain.RarityRare,
		SupplyCap:    100,
	})
	if err != nil {
		log.Fatalf("failed to create card: %v", err)
	}

	// One spawn point per shard, a few meters apart.
	coords := [][2]float64{
		{42.8746, 74.6122},
		{42.8748, 74.6125},
		{42.8744, 74.6119},
	}
	for i, shard := range card.Shards {
		point, err := services.SpawnPoint.CreateSpawnPoint(ctx, service.CreateSpawnPointInput{
			ShardID:   shard.ID,
			Latitude:  coords[i][0],
			Longitude: coords[i][1],
			Quantity:  50,
		})
		if err != nil {
			log.Fatalf("failed to create spawn point: %v", err)
		}
		log.Printf("spawn point %s for shard %s at (%f, %f)", point.ID, shard.Label, point.Latitude, point.Longitude)
	}

	log.Printf("seeded collection %s with card %s", collection.ID, card.ID)
}
