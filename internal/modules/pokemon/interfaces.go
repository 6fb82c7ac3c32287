package pokemon

import (
	"context"

	"pokedex/internal/domain"
	"pokedex/internal/pokeapi"
)

// PokemonRepositoryInterface — local catalog storage
type PokemonRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Pokemon, error)
	Create(ctx context.Context, p *domain.Pokemon) error
	GetOrCreateType(ctx context.Context, name string) (*domain.PokemonType, error)
	List(ctx context.Context, page, perPage int, name string) ([]domain.Pokemon, int64, error)
}

// LedgerRepositoryInterface — per-user favorite / battle group relation
type LedgerRepositoryInterface interface {
	MarkFavorite(ctx context.Context, userID, pokemonID int64) error
	Unfavorite(ctx context.Context, userID, pokemonID int64) error
	FavoriteEntries(ctx context.Context, userID int64, pokemonIDs []int64) ([]domain.UserPokemon, error)
	ReplaceBattleGroup(ctx context.Context, userID int64, entryIDs []int64) error
	Favorites(ctx context.Context, userID int64) ([]domain.UserPokemon, error)
	BattleGroup(ctx context.Context, userID int64) ([]domain.UserPokemon, error)
}

// UpstreamClient — the external pokemon data API
type UpstreamClient interface {
	Fetch(ctx context.Context, id int64) (*pokeapi.Creature, error)
	Raw(ctx context.Context, name string) ([]byte, error)
}
