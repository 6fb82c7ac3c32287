package pokemon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"pokedex/internal/domain"
	"pokedex/internal/pokeapi"
)

type mockPokemonRepo struct {
	mock.Mock
}

func (m *mockPokemonRepo) GetByID(ctx context.Context, id int64) (*domain.Pokemon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pokemon), args.Error(1)
}

func (m *mockPokemonRepo) Create(ctx context.Context, p *domain.Pokemon) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPokemonRepo) GetOrCreateType(ctx context.Context, name string) (*domain.PokemonType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PokemonType), args.Error(1)
}

func (m *mockPokemonRepo) List(ctx context.Context, page, perPage int, name string) ([]domain.Pokemon, int64, error) {
	args := m.Called(ctx, page, perPage, name)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Pokemon), args.Get(1).(int64), args.Error(2)
}

type mockLedgerRepo struct {
	mock.Mock
}

func (m *mockLedgerRepo) MarkFavorite(ctx context.Context, userID, pokemonID int64) error {
	args := m.Called(ctx, userID, pokemonID)
	return args.Error(0)
}

func (m *mockLedgerRepo) Unfavorite(ctx context.Context, userID, pokemonID int64) error {
	args := m.Called(ctx, userID, pokemonID)
	return args.Error(0)
}

func (m *mockLedgerRepo) FavoriteEntries(ctx context.Context, userID int64, pokemonIDs []int64) ([]domain.UserPokemon, error) {
	args := m.Called(ctx, userID, pokemonIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserPokemon), args.Error(1)
}

func (m *mockLedgerRepo) ReplaceBattleGroup(ctx context.Context, userID int64, entryIDs []int64) error {
	args := m.Called(ctx, userID, entryIDs)
	return args.Error(0)
}

func (m *mockLedgerRepo) Favorites(ctx context.Context, userID int64) ([]domain.UserPokemon, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserPokemon), args.Error(1)
}

func (m *mockLedgerRepo) BattleGroup(ctx context.Context, userID int64) ([]domain.UserPokemon, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserPokemon), args.Error(1)
}

type mockUpstream struct {
	mock.Mock
}

func (m *mockUpstream) Fetch(ctx context.Context, id int64) (*pokeapi.Creature, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pokeapi.Creature), args.Error(1)
}

func (m *mockUpstream) Raw(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func newTestService() (*Service, *mockPokemonRepo, *mockLedgerRepo, *mockUpstream) {
	pokemons := new(mockPokemonRepo)
	ledger := new(mockLedgerRepo)
	upstream := new(mockUpstream)
	return NewService(pokemons, ledger, upstream), pokemons, ledger, upstream
}

func TestService_Resolve_CacheHit(t *testing.T) {
	service, pokemons, _, upstream := newTestService()

	cached := &domain.Pokemon{ID: 25, Name: "pikachu"}
	pokemons.On("GetByID", mock.Anything, int64(25)).Return(cached, nil)

	p, err := service.Resolve(context.Background(), 25)

	assert.NoError(t, err)
	assert.Equal(t, cached, p)
	upstream.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestService_Resolve_FetchesAndPersistsOnMiss(t *testing.T) {
	service, pokemons, _, upstream := newTestService()

	img := "https://img.example/1.png"
	pokemons.On("GetByID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)
	upstream.On("Fetch", mock.Anything, int64(1)).Return(&pokeapi.Creature{
		Name:     "bulbasaur",
		ImageURL: &img,
		Types:    []string{"grass", "poison"},
		HP:       45,
		Attack:   49,
		Defense:  49,
	}, nil)
	pokemons.On("GetOrCreateType", mock.Anything, "grass").Return(&domain.PokemonType{ID: 3, Name: "grass"}, nil)
	pokemons.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Pokemon) bool {
		return p.ID == 1 && p.Name == "bulbasaur" && p.TypeID != nil && *p.TypeID == 3 && p.HP == 45
	})).Return(nil)

	p, err := service.Resolve(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "bulbasaur", p.Name)
	// Primary type is the first of the upstream list, not "poison".
	assert.Equal(t, int64(3), *p.TypeID)
	pokemons.AssertExpectations(t)
}

func TestService_Resolve_NoTypeList(t *testing.T) {
	service, pokemons, _, upstream := newTestService()

	pokemons.On("GetByID", mock.Anything, int64(2)).Return(nil, gorm.ErrRecordNotFound)
	upstream.On("Fetch", mock.Anything, int64(2)).Return(&pokeapi.Creature{Name: "typeless"}, nil)
	pokemons.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Pokemon) bool {
		return p.TypeID == nil
	})).Return(nil)

	p, err := service.Resolve(context.Background(), 2)

	assert.NoError(t, err)
	assert.Nil(t, p.TypeID)
	pokemons.AssertNotCalled(t, "GetOrCreateType", mock.Anything, mock.Anything)
}

func TestService_Resolve_UpstreamNotFound(t *testing.T) {
	service, pokemons, _, upstream := newTestService()

	pokemons.On("GetByID", mock.Anything, int64(99999)).Return(nil, gorm.ErrRecordNotFound)
	upstream.On("Fetch", mock.Anything, int64(99999)).Return(nil, pokeapi.ErrNotFound)

	_, err := service.Resolve(context.Background(), 99999)

	assert.ErrorIs(t, err, ErrPokemonNotFound)
	// Nothing persisted on a failed resolution.
	pokemons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	pokemons.AssertNotCalled(t, "GetOrCreateType", mock.Anything, mock.Anything)
}

func TestService_SetFavorite_ResolvesFirst(t *testing.T) {
	service, pokemons, ledger, _ := newTestService()

	cached := &domain.Pokemon{ID: 4, Name: "charmander"}
	pokemons.On("GetByID", mock.Anything, int64(4)).Return(cached, nil)
	ledger.On("MarkFavorite", mock.Anything, int64(10), int64(4)).Return(nil)

	p, err := service.SetFavorite(context.Background(), 10, 4)

	assert.NoError(t, err)
	assert.Equal(t, "charmander", p.Name)
	ledger.AssertExpectations(t)
}

func TestService_SetFavorite_UnknownPokemon(t *testing.T) {
	service, pokemons, ledger, upstream := newTestService()

	pokemons.On("GetByID", mock.Anything, int64(424242)).Return(nil, gorm.ErrRecordNotFound)
	upstream.On("Fetch", mock.Anything, int64(424242)).Return(nil, pokeapi.ErrNotFound)

	_, err := service.SetFavorite(context.Background(), 10, 424242)

	assert.ErrorIs(t, err, ErrPokemonNotFound)
	ledger.AssertNotCalled(t, "MarkFavorite", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Unfavorite_NotFavorited(t *testing.T) {
	service, _, ledger, _ := newTestService()

	ledger.On("Unfavorite", mock.Anything, int64(10), int64(4)).Return(gorm.ErrRecordNotFound)

	err := service.Unfavorite(context.Background(), 10, 4)
	assert.ErrorIs(t, err, ErrNotFavorite)
}

func TestService_SetBattleGroup_TooLarge(t *testing.T) {
	service, _, ledger, _ := newTestService()

	err := service.SetBattleGroup(context.Background(), 10, []int64{1, 2, 3, 4, 5, 6, 7})

	assert.ErrorIs(t, err, ErrGroupTooLarge)
	// Rejected before any read or mutation.
	ledger.AssertNotCalled(t, "FavoriteEntries", mock.Anything, mock.Anything, mock.Anything)
	ledger.AssertNotCalled(t, "ReplaceBattleGroup", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SetBattleGroup_EmptyClearsGroup(t *testing.T) {
	service, _, ledger, _ := newTestService()

	ledger.On("FavoriteEntries", mock.Anything, int64(10), mock.Anything).Return(nil, nil)
	ledger.On("ReplaceBattleGroup", mock.Anything, int64(10), []int64{}).Return(nil)

	err := service.SetBattleGroup(context.Background(), 10, []int64{})
	assert.NoError(t, err)
	ledger.AssertExpectations(t)
}

func TestService_SetBattleGroup_RejectsNonFavorite(t *testing.T) {
	service, pokemons, ledger, _ := newTestService()

	ledger.On("FavoriteEntries", mock.Anything, int64(10), []int64{1, 4}).Return([]domain.UserPokemon{
		{ID: 100, UserID: 10, PokemonID: 1, Favorite: true},
	}, nil)
	pokemons.On("GetByID", mock.Anything, int64(4)).Return(&domain.Pokemon{ID: 4, Name: "charmander"}, nil)

	err := service.SetBattleGroup(context.Background(), 10, []int64{1, 4})

	assert.ErrorIs(t, err, ErrNotInFavorites)
	assert.Contains(t, err.Error(), "charmander")
	ledger.AssertNotCalled(t, "ReplaceBattleGroup", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SetBattleGroup_NamesUnresolvableByID(t *testing.T) {
	service, pokemons, ledger, _ := newTestService()

	ledger.On("FavoriteEntries", mock.Anything, int64(10), []int64{777}).Return(nil, nil)
	pokemons.On("GetByID", mock.Anything, int64(777)).Return(nil, gorm.ErrRecordNotFound)

	err := service.SetBattleGroup(context.Background(), 10, []int64{777})

	assert.ErrorIs(t, err, ErrNotInFavorites)
	assert.Contains(t, err.Error(), "ID 777")
}

func TestService_SetBattleGroup_Success(t *testing.T) {
	service, _, ledger, _ := newTestService()

	ledger.On("FavoriteEntries", mock.Anything, int64(10), []int64{1, 4}).Return([]domain.UserPokemon{
		{ID: 101, UserID: 10, PokemonID: 4, Favorite: true},
		{ID: 100, UserID: 10, PokemonID: 1, Favorite: true},
	}, nil)
	ledger.On("ReplaceBattleGroup", mock.Anything, int64(10), []int64{100, 101}).Return(nil)

	err := service.SetBattleGroup(context.Background(), 10, []int64{1, 4})

	assert.NoError(t, err)
	ledger.AssertExpectations(t)
}

func TestService_List_PaginationMath(t *testing.T) {
	service, pokemons, _, _ := newTestService()

	pokemons.On("List", mock.Anything, 2, 12, "char").Return([]domain.Pokemon{
		{ID: 6, Name: "charizard"},
	}, int64(13), nil)

	listing, err := service.List(context.Background(), 2, 12, "char")

	assert.NoError(t, err)
	assert.Equal(t, int64(13), listing.Total)
	assert.Equal(t, 2, listing.Pages)
	assert.Equal(t, 2, listing.Page)
	assert.Equal(t, 12, listing.PerPage)
	assert.Len(t, listing.Items, 1)
	assert.Equal(t, "N/A", listing.Items[0].Type)
}

func TestService_List_DefaultsApplied(t *testing.T) {
	service, pokemons, _, _ := newTestService()

	pokemons.On("List", mock.Anything, 1, 12, "").Return([]domain.Pokemon{}, int64(0), nil)

	listing, err := service.List(context.Background(), 0, -5, "")

	assert.NoError(t, err)
	assert.Equal(t, 1, listing.Page)
	assert.Equal(t, 12, listing.PerPage)
	assert.Equal(t, 0, listing.Pages)
	assert.Empty(t, listing.Items)
}

func TestService_Favorites_SkipsVanishedPokemon(t *testing.T) {
	service, _, ledger, _ := newTestService()

	ledger.On("Favorites", mock.Anything, int64(10)).Return([]domain.UserPokemon{
		{ID: 1, UserID: 10, PokemonID: 1, Favorite: true, Pokemon: &domain.Pokemon{ID: 1, Name: "bulbasaur"}},
		{ID: 2, UserID: 10, PokemonID: 999, Favorite: true, Pokemon: nil},
	}, nil)

	views, err := service.Favorites(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "bulbasaur", views[0].Name)
}
