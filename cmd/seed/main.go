package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"pokedex/internal/config"
	"pokedex/internal/database"
	"pokedex/internal/modules/pokemon"
	"pokedex/internal/pokeapi"
	"pokedex/internal/repository"
)

// Preloads the first 151 pokemon into the local catalog so fresh
// deployments do not start with an empty listing.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	pokemonRepo := repository.NewPokemonRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	upstream := pokeapi.New(cfg.PokeAPIBaseURL, cfg.PokeAPITimeout)
	service := pokemon.NewService(pokemonRepo, ledgerRepo, upstream)

	ctx := context.Background()

	log.Println("Seeding generation 1 (ids 1..151)...")
	seeded := 0
	for id := int64(1); id <= 151; id++ {
		p, err := service.Resolve(ctx, id)
		if err != nil {
			log.Printf("skip id %d: %v", id, err)
			continue
		}
		seeded++
		log.Printf("cached %s (id %d)", p.Name, p.ID)
	}

	log.Printf("Done: %d/151 pokemon cached", seeded)
}
