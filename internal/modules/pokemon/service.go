package pokemon

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pokedex/internal/domain"
	"pokedex/internal/pokeapi"
)

const (
	maxBattleGroupSize = 6
	defaultPage        = 1
	defaultPerPage     = 12
)

type Service struct {
	pokemons PokemonRepositoryInterface
	ledger   LedgerRepositoryInterface
	upstream UpstreamClient
}

func NewService(
	pokemons PokemonRepositoryInterface,
	ledger LedgerRepositoryInterface,
	upstream UpstreamClient,
) *Service {
	return &Service{pokemons: pokemons, ledger: ledger, upstream: upstream}
}

// Resolve returns the local catalog entry for id, fetching and persisting it
// from the upstream API on first access. Cached entries never trigger a
// network call. On upstream failure nothing is persisted.
func (s *Service) Resolve(ctx context.Context, id int64) (*domain.Pokemon, error) {
	p, err := s.pokemons.GetByID(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	creature, err := s.upstream.Fetch(ctx, id)
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			return nil, ErrPokemonNotFound
		}
		return nil, err
	}

	p = &domain.Pokemon{
		ID:             id,
		Name:           creature.Name,
		ImageURL:       creature.ImageURL,
		HP:             creature.HP,
		Attack:         creature.Attack,
		Defense:        creature.Defense,
		SpecialAttack:  creature.SpecialAttack,
		SpecialDefense: creature.SpecialDefense,
		Speed:          creature.Speed,
	}

	// Primary type is the first entry of the upstream type list.
	if len(creature.Types) > 0 {
		t, err := s.pokemons.GetOrCreateType(ctx, creature.Types[0])
		if err != nil {
			return nil, err
		}
		p.TypeID = &t.ID
		p.Type = t
	}

	if err := s.pokemons.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Search proxies the raw upstream payload for a pokemon looked up by name.
func (s *Service) Search(ctx context.Context, name string) ([]byte, error) {
	body, err := s.upstream.Raw(ctx, name)
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			return nil, ErrPokemonNotFound
		}
		return nil, err
	}
	return body, nil
}

func (s *Service) List(ctx context.Context, page, perPage int, name string) (*ListingResponse, error) {
	if page < 1 {
		page = defaultPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}

	items, total, err := s.pokemons.List(ctx, page, perPage, name)
	if err != nil {
		return nil, err
	}

	views := make([]CreatureView, 0, len(items))
	for i := range items {
		views = append(views, toView(&items[i]))
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))

	return &ListingResponse{
		Items:   views,
		Total:   total,
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
	}, nil
}

// SetFavorite marks the pokemon as a favorite of the user, resolving it into
// the local catalog first. Favoriting an already-favorited pokemon is
// idempotent.
func (s *Service) SetFavorite(ctx context.Context, userID, pokemonID int64) (*domain.Pokemon, error) {
	p, err := s.Resolve(ctx, pokemonID)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.MarkFavorite(ctx, userID, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// Unfavorite clears the favorite flag. Group membership is not cascaded.
func (s *Service) Unfavorite(ctx context.Context, userID, pokemonID int64) error {
	err := s.ledger.Unfavorite(ctx, userID, pokemonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFavorite
		}
		return err
	}
	return nil
}

func (s *Service) Favorites(ctx context.Context, userID int64) ([]CreatureView, error) {
	entries, err := s.ledger.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entriesToViews(entries), nil
}

// SetBattleGroup replaces the user's battle group with the given pokemon
// ids. Every id is validated against the user's favorites before any row is
// touched; the swap itself is one transaction, so a failed assignment leaves
// the previous group intact.
func (s *Service) SetBattleGroup(ctx context.Context, userID int64, ids []int64) error {
	if len(ids) > maxBattleGroupSize {
		return ErrGroupTooLarge
	}

	entries, err := s.ledger.FavoriteEntries(ctx, userID, ids)
	if err != nil {
		return err
	}
	entryByPokemon := make(map[int64]int64, len(entries))
	for _, e := range entries {
		entryByPokemon[e.PokemonID] = e.ID
	}

	entryIDs := make([]int64, 0, len(ids))
	for _, id := range ids {
		entryID, ok := entryByPokemon[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotInFavorites, s.describe(ctx, id))
		}
		entryIDs = append(entryIDs, entryID)
	}

	return s.ledger.ReplaceBattleGroup(ctx, userID, entryIDs)
}

func (s *Service) BattleGroup(ctx context.Context, userID int64) ([]CreatureView, error) {
	entries, err := s.ledger.BattleGroup(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entriesToViews(entries), nil
}

// describe names a pokemon for error messages: local name when resolvable,
// raw id otherwise.
func (s *Service) describe(ctx context.Context, id int64) string {
	if p, err := s.pokemons.GetByID(ctx, id); err == nil {
		return p.Name
	}
	return fmt.Sprintf("ID %d", id)
}
