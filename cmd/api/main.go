package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pokedex/internal/config"
	"pokedex/internal/database"
	"pokedex/internal/middleware"
	"pokedex/internal/modules/auth"
	"pokedex/internal/modules/pokemon"
	"pokedex/internal/pokeapi"
	jwtsvc "pokedex/internal/pkg/jwt"
	"pokedex/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	pokemonRepo := repository.NewPokemonRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	upstream := pokeapi.New(cfg.PokeAPIBaseURL, cfg.PokeAPITimeout)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	pokemonService := pokemon.NewService(pokemonRepo, ledgerRepo, upstream)
	pokemonHandler := pokemon.NewHandler(pokemonService)

	r := gin.Default()
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		pokemonHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			pokemonHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
